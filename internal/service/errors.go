package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for draft ids that were never created or are
	// already saved or discarded.
	ErrNotFound = errors.New("draft not found")
	// ErrClosed is returned by Create once the draft service has shut down.
	ErrClosed = errors.New("draft service closed")
)

// ValidationError reports a draft or request field that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RequiredError reports a missing field.
func RequiredError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}
