package export

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToExport is returned when no rendered tree is available.
	ErrNothingToExport = errors.New("nothing to export")
	// ErrExportInProgress is returned when an export is triggered while another is running.
	ErrExportInProgress = errors.New("an export is already in progress")
)

// User-facing messages. Root causes are only logged.
const (
	FailureMessage  = "Failed to generate PDF. Please try again."
	RejectedMessage = "An export is already in progress."
	SuccessMessage  = "PDF generated successfully."
)

// Error represents a failure inside the export pipeline or its collaborator
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PanicError wraps a value recovered from a panicking collaborator
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("export collaborator panicked: %v", e.Value)
}
