package token

import "strings"

// Join builds a dot-separated path, skipping empty segments.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ".")
}

// Split breaks a path into its segments. The empty path has none.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Dashed replaces the dots of a path with dashes: "size.small.padding"
// becomes "size-small-padding".
func Dashed(path string) string {
	return strings.ReplaceAll(path, ".", "-")
}

// Parent returns the path without its last segment.
func Parent(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return ""
}

// Within reports whether path equals root or lies beneath it.
func Within(path, root string) bool {
	if root == "" {
		return true
	}
	return path == root || strings.HasPrefix(path, root+".")
}

// Trim removes root and its trailing dot from path. Paths outside root are
// returned unchanged.
func Trim(path, root string) string {
	if root == "" || !Within(path, root) {
		return path
	}
	return strings.TrimPrefix(strings.TrimPrefix(path, root), ".")
}
