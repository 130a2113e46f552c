package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/groupgen/groupgen/pkg/gen"
	"github.com/groupgen/groupgen/pkg/registry"
	"github.com/groupgen/groupgen/pkg/resolve"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidOption, "test message: %s", "value")

	if err.Code != ErrCodeInvalidOption {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidOption)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_OPTION: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "failed to connect")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
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
			err:      New(ErrCodeInvalidOption, "test"),
			code:     ErrCodeInvalidOption,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidOption, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidOption, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidOption,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidOption,
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
		{
			name:     "Error type",
			err:      New(ErrCodeGroupNotFound, "test"),
			expected: ErrCodeGroupNotFound,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidOption, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFromEngine(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name: "missing reference",
			err: &resolve.MissingReferenceError{
				Group: "Scatter",
				Ref:   "Offset",
				Err:   registry.ErrGroupNotFound,
			},
			expected: ErrCodeMissingReference,
		},
		{
			name: "missing root is a lookup failure",
			err: &resolve.MissingReferenceError{
				Group: "Scatter",
				Ref:   "Scatter",
				Err:   registry.ErrGroupNotFound,
			},
			expected: ErrCodeGroupNotFound,
		},
		{
			name:     "cycle",
			err:      &resolve.CycleError{Members: []string{"A", "B"}},
			expected: ErrCodeCyclicDependency,
		},
		{
			name:     "unsupported node type",
			err:      &gen.UnsupportedNodeTypeError{Group: "G", Node: "ramp", TypeTag: "ShaderNodeValToRGB"},
			expected: ErrCodeUnsupportedNodeType,
		},
		{
			name:     "unsupported property",
			err:      &gen.UnsupportedPropertyError{Group: "G", Node: "n", Property: "p", Reason: "x"},
			expected: ErrCodeUnsupportedProperty,
		},
		{
			name:     "bare registry miss",
			err:      fmt.Errorf("lookup: %w", registry.ErrGroupNotFound),
			expected: ErrCodeGroupNotFound,
		},
		{
			name:     "already coded passes through",
			err:      New(ErrCodeInvalidOption, "bad"),
			expected: ErrCodeInvalidOption,
		},
		{
			name:     "unknown becomes internal",
			err:      errors.New("boom"),
			expected: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromEngine(tt.err).Code; got != tt.expected {
				t.Errorf("FromEngine().Code = %v, want %v", got, tt.expected)
			}
		})
	}
}
