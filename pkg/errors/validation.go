package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateName validates an XML element or attribute name.
// An optional namespace prefix ("space:local") is accepted; each part must
// satisfy the XML 1.0 Name production closely enough for any conforming
// parser to read it back.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	if strings.HasPrefix(name, ":") || strings.HasSuffix(name, ":") || strings.Count(name, ":") > 1 {
		return New(ErrCodeInvalidName, "invalid namespace prefix in %q", name)
	}

	for i, r := range name {
		if r == utf8.RuneError {
			return New(ErrCodeInvalidName, "name %q is not valid UTF-8", name)
		}
		if i == 0 || name[i-1] == ':' {
			if !isNameStart(r) {
				return New(ErrCodeInvalidName, "name %q cannot start with %q", name, r)
			}
			continue
		}
		if !isNameChar(r) {
			return New(ErrCodeInvalidName, "name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

func isNameStart(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	if isNameStart(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '-', '.', '·':
		return true
	}
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

// ValidateCharData validates that s only contains characters allowed by the
// XML 1.0 Char production. Invalid UTF-8 sequences are rejected as well.
func ValidateCharData(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return New(ErrCodeInvalidInput, "invalid UTF-8 at byte %d", i)
		}
		if !isXMLChar(r) {
			return New(ErrCodeInvalidInput, "character %U at byte %d is not allowed in XML", r, i)
		}
		i += size
	}
	return nil
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// ValidatePath validates an element path used by edit scripts.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
