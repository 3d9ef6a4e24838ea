// Package common defines shared constants and sentinel errors used across
// client and server layers of the forum. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorForbidden          = errors.New("forbidden")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Input errors.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid, malformed, expired or revoked token).
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports a rejected input field. It matches ErrorValidation
// under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateError reports a uniqueness collision on field. It matches
// ErrorAlreadyExists under errors.Is.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already exists"
}

func (e *DuplicateError) Unwrap() error {
	return ErrorAlreadyExists
}
