package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// methodRefRegex matches "name" or "name/arity".
var methodRefRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(/[0-9]{1,3})?$`)

// ValidateMethodRef validates a method reference of the form "name" or
// "name/arity" before it is used to look up a method.
func ValidateMethodRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidInput, "method reference cannot be empty")
	}

	if len(ref) > 256 {
		return New(ErrCodeInvalidInput, "method reference too long (max 256 characters)")
	}

	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "method reference contains invalid control characters")
		}
	}

	if !methodRefRegex.MatchString(ref) {
		return New(ErrCodeInvalidInput, "invalid method reference: %q (want name or name/arity)", ref)
	}

	return nil
}

// ValidateLine validates a 1-based source line used to pick the method
// enclosing it.
func ValidateLine(line int) error {
	if line < 1 {
		return New(ErrCodeInvalidInput, "line must be positive, got %d", line)
	}
	return nil
}

// ValidatePath validates a relative output path, such as the per-method
// file names written by batch rendering. It prevents path traversal and
// ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
