package token

import (
	"regexp"
	"slices"
	"strings"
)

// braceRef matches any curly-brace reference inside a larger string.
var braceRef = regexp.MustCompile(`\{([^{}]*)\}`)

// ParseReference returns the referenced path when s, once trimmed, is
// exactly "{path}" with a non-empty path and no nested braces. Spaces
// just inside the braces are not part of the path.
func ParseReference(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", false
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if strings.ContainsAny(inner, "{}") || inner == "" {
		return "", false
	}
	return inner, true
}

// IsReference reports whether v is a reference string.
func IsReference(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, ok = ParseReference(s)
	return ok
}

// HasInterpolation reports whether s embeds a brace expression alongside
// other text. A pure reference is not interpolation.
func HasInterpolation(s string) bool {
	if _, ok := ParseReference(s); ok {
		return false
	}
	return braceRef.MatchString(s)
}

// Class is the outcome of [Classify].
type Class int

const (
	// Literal values are used as-is: numbers, booleans and strings of
	// non-composite types.
	Literal Class = iota
	// Reference is a string of the exact form "{path}".
	Reference
	// Interpolated is a string mixing a brace expression with other text.
	// It is never valid.
	Interpolated
	// RawComposite values still need coercion: strings of a composite type,
	// or plain objects and arrays.
	RawComposite
	// Composite values are already typed: [Color], [Dimension], [Shadow]
	// or []Shadow.
	Composite
)

func (c Class) String() string {
	switch c {
	case Literal:
		return "literal"
	case Reference:
		return "reference"
	case Interpolated:
		return "interpolated"
	case RawComposite:
		return "raw-composite"
	case Composite:
		return "composite"
	}
	return "unknown"
}

// Classify decides what kind of value v is for a token of type t.
func Classify(v any, t Type) Class {
	switch x := v.(type) {
	case string:
		if _, ok := ParseReference(x); ok {
			return Reference
		}
		if braceRef.MatchString(x) {
			return Interpolated
		}
		if t.Composite() {
			return RawComposite
		}
		return Literal
	case Color, Dimension, Shadow, []Shadow:
		return Composite
	case map[string]any, []any:
		return RawComposite
	}
	return Literal
}

// References returns every path referenced by v, walking into objects and
// arrays. Object keys are visited in sorted order. Duplicates are kept.
func References(v any) []string {
	var out []string
	walkStrings(v, func(s string) {
		if p, ok := ParseReference(s); ok {
			out = append(out, p)
		}
	})
	return out
}

// Interpolations returns every string inside v that mixes a brace
// expression with other text.
func Interpolations(v any) []string {
	var out []string
	walkStrings(v, func(s string) {
		if HasInterpolation(s) {
			out = append(out, s)
		}
	})
	return out
}

func walkStrings(v any, fn func(string)) {
	switch x := v.(type) {
	case string:
		fn(x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			walkStrings(x[k], fn)
		}
	case []any:
		for _, e := range x {
			walkStrings(e, fn)
		}
	}
}
