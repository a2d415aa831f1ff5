package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence marks a store failure on the write path. No partial
	// session is committed when it is returned.
	ErrPersistence = errors.New("persistence failed")

	// ErrQuery marks a read-side failure on listing or aggregate queries.
	ErrQuery = errors.New("query failed")

	// ErrNoValidatedSets rejects a save with zero captured exercise sets.
	ErrNoValidatedSets = &ValidationError{Field: "sets", Message: "at least one validated exercise set is required"}
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is reports ErrValidation so callers can test the category with errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError with a formatted message.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
