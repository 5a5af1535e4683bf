package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches six digit hex colors without a leading '#'.
var hexColorRegex = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ValidateHexColor validates a color in the RRGGBB form used by style definitions.
func ValidateHexColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeConfiguration, "invalid color %q (want 6 hex digits, e.g. 666666)", color)
	}
	return nil
}

// ValidatePositive validates that a numeric setting is strictly positive.
func ValidatePositive(field string, v float64) error {
	if v <= 0 {
		return New(ErrCodeConfiguration, "%s must be positive, got %g", field, v)
	}
	return nil
}

// ValidateNonNegative validates that a numeric setting is zero or positive.
func ValidateNonNegative(field string, v float64) error {
	if v < 0 {
		return New(ErrCodeConfiguration, "%s must not be negative, got %g", field, v)
	}
	return nil
}

// ValidateStyleName validates an identifier used to register a style.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 64 characters
//   - Lowercase letters, digits and underscores only
//   - Must start with a letter
func ValidateStyleName(name string) error {
	if name == "" {
		return New(ErrCodeConfiguration, "style name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeConfiguration, "style name too long (max 64 characters)")
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r == '_' || unicode.IsDigit(r)):
		default:
			return New(ErrCodeConfiguration, "invalid style name %q", name)
		}
	}
	return nil
}

// ValidatePath validates a settings or content file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
