// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLocale indicates a locale outside the supported set.
	ErrUnsupportedLocale = errors.New("unsupported locale")

	// ErrStaleResponse indicates a fetch result was superseded by a newer request.
	ErrStaleResponse = errors.New("stale response")

	// ErrUnavailable indicates an upstream collaborator is not configured or not reachable.
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// IsInvalidInput reports whether err is or wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnsupportedLocale reports whether err is or wraps ErrUnsupportedLocale.
func IsUnsupportedLocale(err error) bool {
	return errors.Is(err, ErrUnsupportedLocale)
}

// IsStaleResponse reports whether err is or wraps ErrStaleResponse.
func IsStaleResponse(err error) bool {
	return errors.Is(err, ErrStaleResponse)
}

// IsTimeout reports whether err is ErrTimeout, a context deadline or a
// network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// APIError represents a failed call to a remote JSON API (content or weather).
type APIError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api error (url=%s, status=%d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api error (url=%s): %v", e.URL, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new API error.
func NewAPIError(url string, statusCode int, err error) *APIError {
	return &APIError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}
