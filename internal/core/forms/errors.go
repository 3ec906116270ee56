package forms

import (
	"errors"
	"fmt"
)

// Sentinel errors for form operations
var (
	// ErrFormNotFound is returned when a form lookup finds no matching record
	ErrFormNotFound = errors.New("form not found")

	// ErrNotOwner is returned when the caller does not own the form
	ErrNotOwner = errors.New("caller does not own this form")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
