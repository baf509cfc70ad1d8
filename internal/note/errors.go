package note

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("note not found")
	ErrValidation = errors.New("validation error")
)

// FieldError describes a validation failure for one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists the field-level problems of a rejected input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
