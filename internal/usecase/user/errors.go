// Package user implements account registration.
package user

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"duo-blog/internal/domain/entity"
)

// ErrDuplicateEmail is returned when the email is already registered.
var ErrDuplicateEmail = fmt.Errorf("email already registered: %w", entity.ErrConflict)

// ErrUserNotFound is returned by Get for unknown ids.
var ErrUserNotFound = errors.New("user not found")

// ValidationError maps JSON field names to messages.
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

func (e *ValidationError) Unwrap() error { return entity.ErrInvalidInput }
