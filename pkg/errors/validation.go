package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateID validates a node, edge, or view identifier supplied by an API
// client. It rejects values that could be used for path traversal or key
// injection when IDs end up in cache keys and store queries.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateViewName validates a human-facing view name.
func ValidateViewName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidView, "view name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidView, "view name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidView, "view name contains invalid control characters")
		}
	}

	return nil
}

// fieldKeyRegex matches property keys: letters, digits, underscores and
// hyphens, starting with a letter or underscore.
var fieldKeyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateFieldKey validates a property key referenced by a view
// configuration (sort fields, date fields, grouping keys).
func ValidateFieldKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidField, "field key cannot be empty")
	}

	if len(key) > 128 {
		return New(ErrCodeInvalidField, "field key too long (max 128 characters)")
	}

	if !fieldKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidField, "invalid field key: %q", key)
	}

	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal and ensures reasonable path length.
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

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
