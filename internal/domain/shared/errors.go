// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound = errors.New("entity not found")

	// Validation errors
	ErrValidation    = errors.New("validation error")
	ErrEmptyValue    = errors.New("value cannot be empty")
	ErrNegativeValue = errors.New("value cannot be negative")

	// Argument errors (malformed query parameters, negative limits)
	ErrInvalidArgument = errors.New("invalid argument")

	// Persistence errors (store write/read did not complete as expected)
	ErrPersistence = errors.New("persistence error")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "game", "stats", "leaderboard"
	Op      string // Operation that failed, e.g., "Save", "Compute"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ValidationFieldError is a validation failure tied to a specific input field,
// surfaced to the caller with field-level detail.
type ValidationFieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationFieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// Is makes every ValidationFieldError match ErrValidation.
func (e *ValidationFieldError) Is(target error) bool {
	return errors.Is(ErrValidation, target)
}

// NewFieldError creates a validation error for a specific field.
func NewFieldError(field, message string) *ValidationFieldError {
	return &ValidationFieldError{Field: field, Message: message}
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue)
}

// IsInvalidArgument checks if the error is a malformed-argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsPersistence checks if the error came from the underlying store.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
