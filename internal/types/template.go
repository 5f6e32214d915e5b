// Package types provides type definitions for structured data used throughout the cv-builder system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// TemplateID identifies one of the visual templates
type TemplateID string

const (
	TemplateProfessional TemplateID = "professional"
	TemplateCreative     TemplateID = "creative"
	TemplateExecutive    TemplateID = "executive"
	TemplateMinimal      TemplateID = "minimal"
)

// TemplateIDs lists the known template identifiers in display order.
var TemplateIDs = []TemplateID{TemplateProfessional, TemplateCreative, TemplateExecutive, TemplateMinimal}

// Known reports whether id is one of the built-in templates.
func (id TemplateID) Known() bool {
	for _, known := range TemplateIDs {
		if id == known {
			return true
		}
	}
	return false
}

// Template is the selected template. ID is fixed at selection time;
// Color can change afterwards independently of the identity.
type Template struct {
	ID       TemplateID `json:"id" validate:"required,oneof=professional creative executive minimal"`
	Columns  int        `json:"columns" validate:"min=1,max=2"`
	HasPhoto bool       `json:"hasPhoto"`
	Color    string     `json:"color"`
}

// SelectTemplateRequest represents a template selection from the form layer.
type SelectTemplateRequest struct {
	TemplateID string `json:"templateId" validate:"required,oneof=professional creative executive minimal"`
	Color      string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// SetColorRequest changes the color of the current template.
type SetColorRequest struct {
	Color string `json:"color" validate:"required,max=32"`
}

// ExportRequest carries optional overrides for a single export.
type ExportRequest struct {
	Filename string `json:"filename,omitempty" validate:"omitempty,max=128"`
}

// Validate validates the Template using the validator.
func (t *Template) Validate() error {
	validate := validator.New()
	return validate.Struct(t)
}

// Validate validates the SelectTemplateRequest using the validator.
func (r *SelectTemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetColorRequest using the validator.
func (r *SetColorRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
