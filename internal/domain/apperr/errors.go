// Package apperr defines the error taxonomy shared by all layers.
// Domain errors are pure: no infrastructure dependency.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFound creates a NotFoundError for the given entity and identifier.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError signals malformed or inconsistent input
// (e.g. a payment schedule that does not sum to 100%).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidation creates a ValidationError with a formatted message.
func NewValidation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// BusinessRuleError signals a violated accounting rule: an unresolvable
// account, an account type mismatch, an illegal state transition, or an
// unbalanced entry. These are configuration or business errors, never
// transient I/O failures, so callers must not retry.
type BusinessRuleError struct {
	Msg string
}

func (e *BusinessRuleError) Error() string { return e.Msg }

// NewBusinessRule creates a BusinessRuleError with a formatted message.
func NewBusinessRule(format string, args ...any) error {
	return &BusinessRuleError{Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsBusinessRule reports whether err is (or wraps) a BusinessRuleError.
func IsBusinessRule(err error) bool {
	var target *BusinessRuleError
	return errors.As(err, &target)
}
