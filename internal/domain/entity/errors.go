package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned for malformed or missing required input,
	// always before any persistence call is attempted
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrStateConflict is returned when an operation's precondition on
	// current state no longer holds (e.g. deciding a resolved approval)
	ErrStateConflict = errors.New("state conflict")

	// ErrPartialFailure is returned when a multi-step workflow succeeded
	// partially; callers should surface it as actionable rather than generic
	ErrPartialFailure = errors.New("partial failure")
)

// PersistenceError reports a failed persistence gateway call. The operation
// name identifies which write or read failed; Err carries the gateway error.
type PersistenceError struct {
	Op  string
	Err error
}

// Error returns the error message
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying gateway error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps a gateway failure with its operation name
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
