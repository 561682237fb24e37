package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNamespace validates a projection namespace.
// Namespaces become the prefix of styling custom-property names, so they are
// restricted to characters that are valid in a CSS identifier:
//   - No empty names (use no namespace instead)
//   - Letters, digits, dash and underscore only
//   - Must not start with a digit
//   - Maximum length of 64 characters
func ValidateNamespace(ns string) error {
	if ns == "" {
		return New(CodeInvalidInput, "", "namespace cannot be empty")
	}
	if len(ns) > 64 {
		return New(CodeInvalidInput, "", "namespace too long (max 64 characters)")
	}
	if !namespaceRegex.MatchString(ns) {
		return New(CodeInvalidInput, "", "invalid namespace %q: use letters, digits, '-' and '_'", ns)
	}
	return nil
}

var namespaceRegex = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)

// ValidateTokenPath validates a dotted token path supplied by a caller
// (for example on the command line or in an HTTP request).
//
// Validation rules:
//   - Path cannot be empty
//   - No empty segments ("a..b", leading or trailing dots)
//   - Segments cannot start with '$' (reserved keys)
//   - No braces or control characters
func ValidateTokenPath(path string) error {
	if path == "" {
		return New(CodeInvalidInput, "", "token path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(CodeInvalidInput, path, "token path contains control characters")
		}
	}
	if strings.ContainsAny(path, "{}") {
		return New(CodeInvalidInput, path, "token path cannot contain braces")
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return New(CodeInvalidInput, path, "token path contains an empty segment")
		}
		if strings.HasPrefix(seg, "$") {
			return New(CodeInvalidInput, path, "token path segment %q uses a reserved '$' prefix", seg)
		}
	}
	return nil
}

// ValidateDocumentName validates the name of a stored token document.
// Names are used as file names by the directory store, so path traversal
// patterns are rejected.
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(CodeInvalidInput, "", "document name cannot be empty")
	}
	if len(name) > 256 {
		return New(CodeInvalidInput, "", "document name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(CodeInvalidInput, "", "document name contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(name, pattern) {
			return New(CodeInvalidInput, "", "document name contains invalid characters: %q", pattern)
		}
	}
	return nil
}
