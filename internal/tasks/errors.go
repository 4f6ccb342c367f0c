package tasks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task not found")

// NotFoundError carries the id that could not be found.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field string
	// Type is a short machine-readable reason such as "missing" or "string_too_short".
	Type    string
	Message string
}

// ValidationError is returned when task input violates required-field or
// value constraints.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *ValidationError) Add(field, typ, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Type: typ, Message: msg})
}

// errOrNil returns e if it holds any field errors.
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
