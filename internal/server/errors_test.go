package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "color", Message: "required"}
	assert.Equal(t, "validation error: color - required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestFromValidator(t *testing.T) {
	req := &types.SetColorRequest{}
	err := fromValidator(req.Validate())

	var verr *ErrValidation
	if assert.ErrorAs(t, err, &verr) {
		assert.Equal(t, "Color", verr.Field)
		assert.Equal(t, "failed on required", verr.Message)
	}

	sel := &types.SelectTemplateRequest{TemplateID: "fancy"}
	err = fromValidator(sel.Validate())
	if assert.ErrorAs(t, err, &verr) {
		assert.Equal(t, "TemplateID", verr.Field)
		assert.Contains(t, verr.Message, "oneof=")
	}

	assert.Equal(t, assert.AnError, fromValidator(assert.AnError))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "NotFound", err: &session.NotFoundError{ID: "x"}, expected: http.StatusNotFound},
		{name: "Wrapped NotFound", err: fmt.Errorf("lookup: %w", &session.NotFoundError{ID: "x"}), expected: http.StatusNotFound},
		{name: "ErrValidation", err: &ErrValidation{Field: "body", Message: "bad"}, expected: http.StatusBadRequest},
		{name: "Schema validation", err: &schemas.ValidationError{}, expected: http.StatusBadRequest},
		{name: "Export in progress", err: export.ErrExportInProgress, expected: http.StatusConflict},
		{name: "Nothing to export", err: export.ErrNothingToExport, expected: http.StatusUnprocessableEntity},
		{name: "Unknown error", err: assert.AnError, expected: http.StatusInternalServerError},
		{name: "Nil error", err: nil, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
