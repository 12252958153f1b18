package sqldml

import (
	"errors"
	"fmt"
)

// ErrExpectation is returned when a statement outcome fails its
// expectation check.
var ErrExpectation = errors.New("sqldml: unexpected statement outcome")

// ValidationError represents a malformed override declaration.
type ValidationError struct {
	Name string // Field that failed validation.
	Err  error  // Underlying validation error.
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("sqldml: validation failed for %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given field.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// ExpectationError represents a statement whose outcome did not satisfy
// its expectation.
type ExpectationError struct {
	Query string // Statement that was executed.
	Want  int64  // Expected row count.
	Got   int64  // Reported row count.
}

// Error returns the error string.
func (e *ExpectationError) Error() string {
	if e.Got < e.Want {
		return fmt.Sprintf("sqldml: statement affected %d rows, expected %d (possible stale state): %s", e.Got, e.Want, e.Query)
	}
	return fmt.Sprintf("sqldml: statement affected %d rows, expected %d: %s", e.Got, e.Want, e.Query)
}

// Is reports whether the target error matches ExpectationError.
// This allows errors.Is(err, ErrExpectation) to return true.
func (e *ExpectationError) Is(err error) bool {
	return err == ErrExpectation
}

// NewExpectationError returns a new ExpectationError for the given
// statement.
func NewExpectationError(query string, want, got int64) *ExpectationError {
	return &ExpectationError{Query: query, Want: want, Got: got}
}

// IsExpectationError returns true if the error is an ExpectationError.
func IsExpectationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ExpectationError
	return errors.As(err, &e) || errors.Is(err, ErrExpectation)
}

// ConstraintError represents a database constraint violation error.
type ConstraintError struct {
	msg  string
	wrap error
}

// Error returns the error string.
func (e ConstraintError) Error() string {
	return fmt.Sprintf("sqldml: constraint failed: %s", e.msg)
}

// Unwrap returns the underlying error.
func (e ConstraintError) Unwrap() error {
	return e.wrap
}

// NewConstraintError returns a new ConstraintError with the given message.
func NewConstraintError(msg string, wrap error) error {
	return ConstraintError{msg: msg, wrap: wrap}
}

// IsConstraintError returns true if the error is a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e ConstraintError
	return errors.As(err, &e)
}

// MutationError wraps a statement-execution error with entity context.
type MutationError struct {
	Entity string // Entity type being written.
	Op     string // Operation (e.g., "insert", "update", "delete").
	Err    error  // Underlying error.
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("sqldml: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError returns a new MutationError.
func NewMutationError(entity, op string, err error) *MutationError {
	return &MutationError{Entity: entity, Op: op, Err: err}
}

// IsMutationError returns true if the error is a MutationError.
func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MutationError
	return errors.As(err, &e)
}
