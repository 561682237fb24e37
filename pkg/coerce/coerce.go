// Package coerce converts raw token values into structured composites.
//
// Coercion is total: every function either returns a structured value or
// reports false, and [Value] falls back to the input unchanged. Raw strings
// that fail to parse are left for the validator to flag.
package coerce

import (
	"reflect"

	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// Value returns the canonical form of raw for a token of type t. References,
// interpolated strings, literals of non-composite types and anything that
// fails to parse are returned as given.
func Value(raw any, t token.Type) any {
	switch token.Classify(raw, t) {
	case token.Reference, token.Interpolated:
		return raw
	}
	switch t.Canonical() {
	case token.TypeColor:
		if c, ok := Color(raw); ok {
			return c
		}
	case token.TypeDimension:
		if d, ok := Dimension(raw); ok {
			return d
		}
	case token.TypeShadow:
		if s, ok := Shadow(raw); ok {
			return s
		}
	case token.TypeBorder:
		return subfields(raw, map[string]token.Type{
			"color": token.TypeColor,
			"width": token.TypeDimension,
		})
	case token.TypeTypography:
		return subfields(raw, map[string]token.Type{
			"fontSize":      token.TypeDimension,
			"letterSpacing": token.TypeDimension,
		})
	}
	return raw
}

// subfields coerces the named members of a composite object, leaving the
// rest untouched. Non-objects are returned unchanged.
func subfields(raw any, fields map[string]token.Type) any {
	m, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if t, ok := fields[k]; ok {
			out[k] = Value(v, t)
			continue
		}
		out[k] = v
	}
	return out
}

// Stats counts what [Tree] rewrote.
type Stats struct {
	Values int // $value entries converted to structured form
	Types  int // $type aliases replaced by canonical names
}

// Changed reports whether anything was rewritten.
func (s Stats) Changed() bool { return s.Values > 0 || s.Types > 0 }

// Tree returns a coerced copy of doc: legacy "$type" aliases are replaced by
// canonical types and every "$value" is coerced with its declared or
// inherited type. Unrelated keys are copied as-is; doc is not modified.
func Tree(doc map[string]any) (map[string]any, Stats) {
	var st Stats
	out := tree(doc, "", &st)
	return out, st
}

func tree(node map[string]any, inherited token.Type, st *Stats) map[string]any {
	out := make(map[string]any, len(node))
	typ := inherited
	if s, ok := node[token.KeyType].(string); ok {
		declared := token.Type(s)
		typ = declared.Canonical()
		if declared.IsAlias() {
			st.Types++
		}
	}

	for k, v := range node {
		switch {
		case k == token.KeyType:
			if s, ok := v.(string); ok {
				out[k] = string(token.Type(s).Canonical())
				continue
			}
			out[k] = token.Clone(v)
		case k == token.KeyValue:
			coerced := Value(v, typ)
			if rewritten(v, coerced) {
				st.Values++
			}
			out[k] = token.Clone(coerced)
		case token.IsReserved(k):
			out[k] = token.Clone(v)
		default:
			if child, ok := v.(map[string]any); ok {
				out[k] = tree(child, typ, st)
				continue
			}
			out[k] = token.Clone(v)
		}
	}
	return out
}

// rewritten reports whether coercion changed the document form of a value.
// Values already in canonical form compare equal once numbers are widened.
func rewritten(before, after any) bool {
	return !reflect.DeepEqual(plainForm(before), plainForm(after))
}

func plainForm(v any) any {
	switch t := token.Plain(v).(type) {
	case string, bool, nil:
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainForm(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainForm(e)
		}
		return out
	default:
		if f, ok := token.Number(t); ok {
			return f
		}
		return t
	}
}
