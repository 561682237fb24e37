package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeUnresolvedReference, "color.alias", "reference to %q not found", "color.missing")

	if err.Code != CodeUnresolvedReference {
		t.Errorf("Code = %v, want %v", err.Code, CodeUnresolvedReference)
	}

	if err.Message != `reference to "color.missing" not found` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `unresolved-reference at color.alias: reference to "color.missing" not found`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestNewWithoutPath(t *testing.T) {
	err := New(CodeInvalidInput, "", "bad input")
	if err.Error() != "invalid-input: bad input" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeIO, cause, "read tokens.json")

	if err.Code != CodeIO {
		t.Errorf("Code = %v, want %v", err.Code, CodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestCyclic(t *testing.T) {
	cycle := []string{"a", "b", "a"}
	err := Cyclic("a", cycle)
	cycle[0] = "mutated"

	if err.Code != CodeCircularReference {
		t.Errorf("Code = %v", err.Code)
	}
	if err.Cycle[0] != "a" {
		t.Error("Cyclic should copy the cycle slice")
	}
	if err.Message != "circular reference: a -> b -> a" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(CodeSchemaViolation, "a", "test"),
			code:     CodeSchemaViolation,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(CodeSchemaViolation, "a", "test"),
			code:     CodeParseFailure,
			expected: false,
		},
		{
			name:     "wrapped with fmt",
			err:      fmt.Errorf("resolve: %w", New(CodeCircularReference, "a", "loop")),
			code:     CodeCircularReference,
			expected: true,
		},
		{
			name:     "outer code wins",
			err:      Wrap(CodeIO, New(CodeInvalidInput, "", "inner"), "outer"),
			code:     CodeIO,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     CodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     CodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(CodeTypeValueMismatch, "n", "test"), CodeTypeValueMismatch},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(CodeInvalidInput, "", "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
