// Package apperrors tests verify the custom error types, their Error()
// messages, Is() matching semantics, and compatibility with errors.Is()
// including through fmt.Errorf wrapping.
package apperrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrNotFound
// ---------------------------------------------------------------------------

func TestErrNotFound_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrNotFound
		expected string
	}{
		{
			name:     "with int ID",
			err:      &ErrNotFound{Resource: "show", ID: 42},
			expected: "show with ID 42 not found",
		},
		{
			name:     "with nil ID",
			err:      &ErrNotFound{Resource: "show", ID: nil},
			expected: "show not found",
		},
		{
			name:     "constructor",
			err:      NewShowNotFoundError(7),
			expected: "show with ID 7 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrNotFound_IsThroughWrapping(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("get episodes: %w", NewShowNotFoundError(1))
	if !errors.Is(wrapped, &ErrNotFound{}) {
		t.Error("Expected wrapped ErrNotFound to match")
	}
	if errors.Is(wrapped, &ErrUpstreamStatus{}) {
		t.Error("ErrNotFound must not match ErrUpstreamStatus")
	}
}

// ---------------------------------------------------------------------------
// ErrUpstreamStatus
// ---------------------------------------------------------------------------

func TestErrUpstreamStatus(t *testing.T) {
	t.Parallel()
	err := &ErrUpstreamStatus{Endpoint: "search", StatusCode: 503}
	if got := err.Error(); got != "upstream search returned status 503" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := fmt.Errorf("search shows: %w", err)
	var target *ErrUpstreamStatus
	if !errors.As(wrapped, &target) {
		t.Fatal("Expected errors.As to find ErrUpstreamStatus")
	}
	if target.StatusCode != 503 {
		t.Errorf("Expected status 503, got %d", target.StatusCode)
	}
}

// ---------------------------------------------------------------------------
// ErrMalformedResponse
// ---------------------------------------------------------------------------

func TestErrMalformedResponse_Unwrap(t *testing.T) {
	t.Parallel()
	var syntaxErr *json.SyntaxError
	decodeErr := json.Unmarshal([]byte("{"), &struct{}{})
	err := &ErrMalformedResponse{Endpoint: "episodes", Err: decodeErr}

	if !errors.Is(err, &ErrMalformedResponse{}) {
		t.Error("Expected Is to match ErrMalformedResponse")
	}
	if !errors.As(err, &syntaxErr) {
		t.Errorf("Expected to unwrap to *json.SyntaxError, got %T", decodeErr)
	}
}

// ---------------------------------------------------------------------------
// Caller errors
// ---------------------------------------------------------------------------

func TestIsCallerError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"empty query", ErrEmptyQuery, true},
		{"wrapped empty query", fmt.Errorf("search: %w", ErrEmptyQuery), true},
		{"invalid show id", &ErrInvalidShowID{Value: "abc"}, true},
		{"upstream status", &ErrUpstreamStatus{Endpoint: "search", StatusCode: 500}, false},
		{"not found", NewShowNotFoundError(1), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsCallerError(tt.err); got != tt.want {
				t.Errorf("IsCallerError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrInvalidShowID_Error(t *testing.T) {
	t.Parallel()
	err := &ErrInvalidShowID{Value: "-3"}
	if got := err.Error(); got != `invalid show ID "-3"` {
		t.Errorf("Error() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Reporting
// ---------------------------------------------------------------------------

func TestReport_DisabledWithoutDSN(t *testing.T) {
	if err := InitReporting("", "test"); err != nil {
		t.Fatalf("InitReporting with empty DSN failed: %v", err)
	}
	if Report(context.Background(), errors.New("boom")) {
		t.Error("Expected Report to be a no-op without a DSN")
	}
	FlushReporting(0)
}

func TestReport_NilError(t *testing.T) {
	if Report(context.Background(), nil) {
		t.Error("Expected nil error to never be reported")
	}
}
