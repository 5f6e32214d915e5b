package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVDataSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(CVDataSchema()), &v))
	assert.Equal(t, "CVData", v["title"])
}

func TestValidateCVData_Fixtures(t *testing.T) {
	for name, data := range map[string]types.CVData{
		"sample":      types.SampleCVData(),
		"placeholder": types.NewPlaceholderCVData(),
		"zero":        {},
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(data)
			require.NoError(t, err)
			assert.NoError(t, ValidateCVData(raw))
		})
	}
}

func TestValidateCVData_UnknownLevelIsAccepted(t *testing.T) {
	raw := `{"personalInfo": {}, "skills": [{"name": "Go", "level": "Wizard"}]}`
	assert.NoError(t, ValidateCVData([]byte(raw)))
}

func TestValidateCVData_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{"missing personal info", `{"summary": "x"}`, "(root)"},
		{"unknown top-level field", `{"personalInfo": {}, "hobbies": []}`, "(root)"},
		{"current not boolean", `{"personalInfo": {}, "workExperience": [{"current": "yes"}]}`, "workExperience.0.current"},
		{"skills not array", `{"personalInfo": {}, "skills": "Go"}`, "skills"},
		{"name wrong type", `{"personalInfo": {"fullName": 42}}`, "personalInfo.fullName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCVData([]byte(tt.json))
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %T: %v", err, err)
			fields := make([]string, 0, len(ve.Errors))
			for _, fe := range ve.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateCVData_Malformed(t *testing.T) {
	err := ValidateCVData([]byte("{ invalid json }"))
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestDecodeCVData(t *testing.T) {
	raw, err := json.Marshal(types.SampleCVData())
	require.NoError(t, err)

	data, err := DecodeCVData(raw)
	require.NoError(t, err)
	assert.Equal(t, types.SampleCVData(), data)
}

func TestLoadCVDataFile(t *testing.T) {
	data, err := LoadCVDataFile(filepath.Join("testdata", "valid_cv.json"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", data.PersonalInfo.FullName)
	assert.True(t, data.WorkExperience[0].Current)
	assert.Equal(t, types.SkillExpert, data.Skills[0].Level)

	_, err = LoadCVDataFile(filepath.Join("testdata", "invalid_cv.json"))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.GreaterOrEqual(t, len(ve.Errors), 2)

	_, err = LoadCVDataFile(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	dir := t.TempDir()
	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{"), 0644))
	_, err = LoadCVDataFile(malformed)
	assert.Error(t, err)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	assert.NoError(t, ValidateJSONString(schema, `{"person": {"name": "Jane"}}`))

	err := ValidateJSONString(schema, `{"person": {}}`)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.NotEmpty(t, ve.Errors)
	assert.True(t, strings.HasPrefix(ve.Errors[0].Field, "person"))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "personalInfo", Message: "is required"},
			{Field: "skills", Message: "must be an array"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. personalInfo: is required")
	assert.Contains(t, msg, "2. skills: must be an array")
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := errors.New("bad ref")
	err := &SchemaLoadError{Path: "x.json", Message: "load failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load schema x.json: load failed: bad ref", err.Error())
}
