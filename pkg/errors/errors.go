// Package errors provides structured error types for folio.
//
// Every failure the document core can produce carries a machine-readable
// [Code] so that the CLI, the HTTP service and library callers can branch on
// the category instead of matching strings.
//
// # Error Codes
//
//   - CONFIGURATION: a required declaration is missing or the settings
//     describe an impossible document (for example a negative body height)
//   - UNKNOWN_STYLE: a style identifier is not registered in the cascade
//   - SHAPE: a value expected to be a sequence was something else
//   - INVALID_*: input validation failures at the outer surfaces
//   - RENDER: the rendering surface failed to produce output
//   - INTERNAL: programmer errors such as re-entrant region draws
//
// None of these are transient. The core never retries; a failed build
// returns no partial output.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "template is required")
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // Handle missing declaration
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRender, origErr, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Document core errors
	ErrCodeConfiguration Code = "CONFIGURATION"
	ErrCodeUnknownStyle  Code = "UNKNOWN_STYLE"
	ErrCodeShape         Code = "SHAPE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Output errors
	ErrCodeRender Code = "RENDER"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Configuration reports a missing declaration or an impossible setting.
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
}

// UnknownStyleError is returned when a style identifier is not registered.
// It carries the requested name and the names that were available so callers
// can print a useful hint.
type UnknownStyleError struct {
	Name      string
	Available []string
}

// Error implements the error interface.
func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("%s: unknown style %q", ErrCodeUnknownStyle, e.Name)
}

// Code returns the error code for this error type.
func (e *UnknownStyleError) Code() Code {
	return ErrCodeUnknownStyle
}

// Unwrap exposes the coded form so Is(err, ErrCodeUnknownStyle) holds.
func (e *UnknownStyleError) Unwrap() error {
	return New(ErrCodeUnknownStyle, "unknown style %q", e.Name)
}

// UnknownStyle creates an UnknownStyleError.
func UnknownStyle(name string, available []string) *UnknownStyleError {
	return &UnknownStyleError{Name: name, Available: available}
}

// Shape reports a value that was expected to be a sequence.
// The got argument is only used for its dynamic type.
func Shape(field string, got any) *Error {
	return New(ErrCodeShape, "%s must be a sequence, got %T", field, got)
}
