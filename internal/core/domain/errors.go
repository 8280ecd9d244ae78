package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")

	ErrConditionUnsatisfied = errors.New("join condition not satisfied")
	ErrCapacityExhausted    = errors.New("no join slots left")

	// ErrUnsupportedCondition means a stored campaign references a condition
	// kind with no registered implementation.
	ErrUnsupportedCondition = errors.New("unsupported condition kind")
	// ErrInvalidConditionConfig means a stored condition configuration no
	// longer passes validation.
	ErrInvalidConditionConfig = errors.New("condition configuration invalid")

	// ErrLockTimeout is returned when the campaign row lock could not be
	// acquired in time. Nothing was written; the caller may retry.
	ErrLockTimeout = errors.New("campaign lock wait timed out")
)

// ValidationError describes malformed input. Reason is safe to show to
// clients verbatim.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a missing campaign or user.
type NotFoundError struct {
	Entity string
}

func NewNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Entity) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
