// Package apperr defines the error classes shared by services and handlers.
// Services wrap one of these sentinels; handlers translate them to an HTTP
// status with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a malformed or rule-violating payload (400).
	ErrValidation = errors.New("validation failed")
	// ErrAuthRequired marks a missing or invalid credential (401).
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden marks an authenticated actor with insufficient privilege (403).
	ErrForbidden = errors.New("permission denied")
	// ErrNotFound marks an absent referenced resource (404).
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation (400 or 409 depending on surface).
	ErrConflict = errors.New("already exists")
)

// Validationf wraps ErrValidation with a caller-facing detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a caller-facing detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a caller-facing detail message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
