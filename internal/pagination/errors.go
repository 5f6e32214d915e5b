package pagination

import "fmt"

// Error represents a failure while slicing a raster or assembling a PDF
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pagination error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pagination error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
