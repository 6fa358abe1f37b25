package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the caller supplied unusable input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates that a uniqueness constraint was violated.
	ErrConflict = errors.New("entity already exists")
)

// ValidationError describes which field failed validation and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets callers match any ValidationError with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
