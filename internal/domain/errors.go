package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicate signals that a post's source id already maps to a complaint.
// It is a terminal decision, not a failure.
var ErrDuplicate = errors.New("duplicate complaint")

// ErrNotFound signals a missing record.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing required input. Surfaced as
// a 4xx and never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// NewValidationError builds a ValidationError with the given reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// StorageError wraps a persistence transport or database fault. Fatal for
// the current resolution.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// RateLimitedError reports an upstream rate limit with a retry-after hint.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// UnreachableError reports an upstream collaborator that could not be reached.
type UnreachableError struct {
	Upstream string
	Err      error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Upstream, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}
