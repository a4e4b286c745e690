package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the checkout lifecycle. Callers classify failures with
// errors.Is so wrapped context (ids, upstream messages) survives.
var (
	// ErrUnauthenticated means no valid user identity was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means a valid user acted on another user's resource.
	ErrForbidden = errors.New("resource belongs to another user")
	// ErrNotFound means the referenced cart/order/address/session does not
	// exist or is not visible to the caller. Never retried.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidState means the operation violates a lifecycle invariant,
	// such as checking out an empty cart.
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrTransient means a network or processor outage; safe to retry with
	// backoff, never a definitive payment failure.
	ErrTransient = errors.New("temporary failure, retry later")
	// ErrConsistency means an external response contradicts a required
	// invariant (e.g. a paid session without order metadata). Requires
	// operator attention, never auto-recovered.
	ErrConsistency = errors.New("external response violates invariants")
)

// ValidationError reports malformed input with field-level detail. It
// matches errs.ErrValidation under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

// ErrValidation is the class sentinel for ValidationError values.
var ErrValidation = errors.New("invalid input")

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: field %q %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validation builds a field-level validation error.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
