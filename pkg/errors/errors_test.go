package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfiguration, "test message: %s", "value")

	if err.Code != ErrCodeConfiguration {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConfiguration)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "CONFIGURATION: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRender, cause, "failed to render")

	if err.Code != ErrCodeRender {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRender)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

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
			err:      New(ErrCodeShape, "test"),
			code:     ErrCodeShape,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeShape, "test"),
			code:     ErrCodeRender,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeRender, New(ErrCodeShape, "inner"), "outer"),
			code:     ErrCodeRender,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("build: %w", Configuration("template is required")),
			code:     ErrCodeConfiguration,
			expected: true,
		},
		{
			name:     "unknown style",
			err:      UnknownStyle("h9", []string{"h1"}),
			code:     ErrCodeUnknownStyle,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeNotFound)
	}
	if got := GetCode(UnknownStyle("x", nil)); got != ErrCodeUnknownStyle {
		t.Errorf("GetCode(UnknownStyle) = %v, want %v", got, ErrCodeUnknownStyle)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad %s", "thing")); got != "bad thing" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad thing")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain")
	}
}

func TestUnknownStyleError(t *testing.T) {
	err := UnknownStyle("magic", []string{"h1", "h2"})

	if err.Error() != `UNKNOWN_STYLE: unknown style "magic"` {
		t.Errorf("Error() = %q", err.Error())
	}

	var target *UnknownStyleError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &target) {
		t.Fatal("errors.As should find *UnknownStyleError")
	}
	if target.Name != "magic" || len(target.Available) != 2 {
		t.Errorf("unexpected target: %+v", target)
	}
}

func TestShape(t *testing.T) {
	err := Shape("body_rows", "not rows")
	if err.Code != ErrCodeShape {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeShape)
	}
	if err.Message != "body_rows must be a sequence, got string" {
		t.Errorf("Message = %q", err.Message)
	}
}
