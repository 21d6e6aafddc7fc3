package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		checkFn  func(error) bool
		expected bool
	}{
		{
			name:     "ErrInvalidInput is recognized",
			err:      ErrInvalidInput,
			checkFn:  IsInvalidInput,
			expected: true,
		},
		{
			name:     "Wrapped ErrInvalidInput is recognized",
			err:      fmt.Errorf("submit: %w", ErrInvalidInput),
			checkFn:  IsInvalidInput,
			expected: true,
		},
		{
			name:     "ValidationError unwraps to ErrInvalidInput",
			err:      NewValidationError("text", "too long"),
			checkFn:  IsInvalidInput,
			expected: true,
		},
		{
			name:     "Different error is not ErrInvalidInput",
			err:      ErrUnsupportedLocale,
			checkFn:  IsInvalidInput,
			expected: false,
		},
		{
			name:     "ErrUnsupportedLocale is recognized",
			err:      errors.Join(ErrUnsupportedLocale, errors.New("fr")),
			checkFn:  IsUnsupportedLocale,
			expected: true,
		},
		{
			name:     "ErrStaleResponse is recognized",
			err:      fmt.Errorf("seq 3: %w", ErrStaleResponse),
			checkFn:  IsStaleResponse,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.checkFn(tt.err)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("text", "exceeds 2000 characters")

	if err.Field != "text" {
		t.Errorf("expected field 'text', got %s", err.Field)
	}
	expected := "validation failed on text: exceeds 2000 characters"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestAPIError(t *testing.T) {
	baseErr := errors.New("unexpected status")

	t.Run("with status code", func(t *testing.T) {
		err := NewAPIError("https://example.com/api/main-chapters", 502, baseErr)
		expected := "api error (url=https://example.com/api/main-chapters, status=502): unexpected status"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
		if !errors.Is(err, baseErr) {
			t.Error("expected APIError to unwrap to base error")
		}
	})

	t.Run("without status code", func(t *testing.T) {
		err := NewAPIError("https://example.com", 0, baseErr)
		expected := "api error (url=https://example.com): unexpected status"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.As finds APIError", func(t *testing.T) {
		wrapped := fmt.Errorf("refresh: %w", NewAPIError("u", 404, baseErr))
		var apiErr *APIError
		if !errors.As(wrapped, &apiErr) {
			t.Fatal("expected errors.As to find APIError")
		}
		if apiErr.StatusCode != 404 {
			t.Errorf("expected status 404, got %d", apiErr.StatusCode)
		}
	})
}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"sentinel", ErrTimeout, true},
		{"wrapped sentinel", fmt.Errorf("fetch: %w", ErrTimeout), true},
		{"context deadline", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, false},
		{"other", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.want {
				t.Errorf("IsTimeout(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
