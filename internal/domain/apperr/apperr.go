// Package apperr holds the two error kinds the domain services return.
// Callers match them with errors.Is and translate them for their transport.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// InvalidInput reports an absent or empty required argument.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound reports an identifier that does not resolve, e.g. NotFound("Employee", "ID", id).
func NotFound(resource, field string, value any) error {
	return fmt.Errorf("%w: %s not found with %s: '%v'", ErrNotFound, resource, field, value)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
