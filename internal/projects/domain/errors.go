package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrForbidden = errors.New("project belongs to another user")
)

// ValidationError marks malformed or policy-violating input. Always
// recoverable by correcting the payload; never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExternalServiceError wraps a failure of the plan-generation collaborator.
// A project save that committed before the failure is kept.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
