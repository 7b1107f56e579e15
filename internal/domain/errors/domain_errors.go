package errors

import (
	"errors"
	"fmt"
)

var (
	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMissingCoachID      = errors.New("transaction has no coach reference")

	// Statistics errors
	ErrStatsNotFound  = errors.New("statistics record not found")
	ErrReportNotFound = errors.New("report record not found")

	// Plan generation errors
	ErrIntakeIncomplete = errors.New("intake profile is missing or incomplete")
	ErrEmptyCompletion  = errors.New("completion service returned empty output")
	ErrMalformedPlan    = errors.New("completion output is not a valid plan")

	// External service errors
	ErrExternalServiceUnavailable = errors.New("external service unavailable")
)

// NotFoundError wraps an error with not found context
type NotFoundError struct {
	Entity string
	ID     string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' not found: %v", e.Entity, e.ID, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
