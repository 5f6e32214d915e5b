// Package schemas validates incoming CV documents against the embedded JSON Schema.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/cv-builder/internal/types"
)

//go:embed cv_data.schema.json
var cvDataSchema string

// CVDataSchema returns the JSON Schema for CVData documents.
func CVDataSchema() string {
	return cvDataSchema
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// validate runs the loaders and turns a failed result into a *ValidationError.
func validate(schemaName string, schema, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

// ValidateCVData validates a raw CVData document.
func ValidateCVData(raw []byte) error {
	return validate("cv_data.schema.json", gojsonschema.NewStringLoader(cvDataSchema), gojsonschema.NewBytesLoader(raw))
}

// DecodeCVData validates raw against the schema and decodes it.
func DecodeCVData(raw []byte) (types.CVData, error) {
	if err := ValidateCVData(raw); err != nil {
		return types.CVData{}, err
	}
	var data types.CVData
	if err := json.Unmarshal(raw, &data); err != nil {
		return types.CVData{}, fmt.Errorf("failed to decode CV data: %w", err)
	}
	return data, nil
}

// LoadCVDataFile reads, validates and decodes a CVData JSON file.
func LoadCVDataFile(path string) (types.CVData, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return types.CVData{}, fmt.Errorf("failed to resolve data path: %w", err)
	}
	raw, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return types.CVData{}, fmt.Errorf("data file not found: %s", absPath)
		}
		return types.CVData{}, fmt.Errorf("failed to read data file: %w", err)
	}
	return DecodeCVData(raw)
}
