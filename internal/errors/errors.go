// Package errors defines the domain errors shared by the terminal's layers.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = stderrors.New("not found")

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string            `json:"field"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: map[string]string{field: message},
	}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return stderrors.As(err, &v)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}
