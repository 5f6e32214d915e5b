package session

import "fmt"

// NotFoundError is returned for unknown or evicted session ids
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}
