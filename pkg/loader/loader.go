// Package loader merges ordered token sources into one document.
//
// Sources are applied in order and later sources win at the same path. No
// I/O happens here: documents arrive already parsed (see pkg/io and
// pkg/store for reading them).
package loader

import (
	"maps"
	"slices"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// Kind is the shape of a [Source].
type Kind string

const (
	// KindJSON sources carry a parsed token document.
	KindJSON Kind = "json"
	// KindInline sources carry a flat map of dotted paths to values, used
	// for ad-hoc overrides.
	KindInline Kind = "inline"
)

// Source is one layer of token input.
type Source struct {
	Kind   Kind           `json:"type" msgpack:"type"`
	Name   string         `json:"name,omitempty" msgpack:"name,omitempty"`
	Data   map[string]any `json:"data,omitempty" msgpack:"data,omitempty"`
	Tokens map[string]any `json:"tokens,omitempty" msgpack:"tokens,omitempty"`
}

// JSON returns a document source. Name identifies it in logs and errors.
func JSON(name string, data map[string]any) Source {
	return Source{Kind: KindJSON, Name: name, Data: data}
}

// Inline returns an override source from dotted paths to values. A value
// that is itself a token object (it has "$value") is merged as a node;
// anything else becomes the "$value" at that path.
func Inline(name string, tokens map[string]any) Source {
	return Source{Kind: KindInline, Name: name, Tokens: tokens}
}

// Merge combines sources in order into a new document. The inputs are
// never modified.
func Merge(sources ...Source) (map[string]any, error) {
	out := make(map[string]any)
	for i, src := range sources {
		switch src.Kind {
		case KindJSON:
			mergeNode(out, src.Data)
		case KindInline:
			if err := mergeInline(out, src.Tokens); err != nil {
				return nil, errors.Wrap(errors.CodeInvalidInput, err, "source %d (%s)", i, src.Name)
			}
		default:
			return nil, errors.New(errors.CodeInvalidInput, "", "source %d (%s): unknown source type %q", i, src.Name, src.Kind)
		}
	}
	return out, nil
}

// mergeNode merges src into dst. Reserved keys replace the earlier value
// wholesale; child objects merge recursively. A child carrying "$value"
// re-declares the token, so none of the earlier node's reserved keys survive.
func mergeNode(dst, src map[string]any) {
	for k, v := range src {
		if token.IsReserved(k) {
			dst[k] = token.Clone(v)
			continue
		}
		child, ok := v.(map[string]any)
		if !ok {
			dst[k] = token.Clone(v)
			continue
		}
		existing, ok := dst[k].(map[string]any)
		if !ok {
			existing = make(map[string]any, len(child))
			dst[k] = existing
		}
		if _, isToken := child[token.KeyValue]; isToken {
			dropReserved(existing)
		}
		mergeNode(existing, child)
	}
}

func dropReserved(node map[string]any) {
	maps.DeleteFunc(node, func(k string, _ any) bool { return token.IsReserved(k) })
}

func mergeInline(dst map[string]any, tokens map[string]any) error {
	for _, path := range slices.Sorted(maps.Keys(tokens)) {
		v := tokens[path]
		if err := errors.ValidateTokenPath(path); err != nil {
			return err
		}
		node := dst
		segs := token.Split(path)
		for _, seg := range segs[:len(segs)-1] {
			next, ok := node[seg].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[seg] = next
			}
			node = next
		}

		leafKey := segs[len(segs)-1]
		leaf, ok := node[leafKey].(map[string]any)
		if !ok {
			leaf = make(map[string]any)
			node[leafKey] = leaf
		}
		if obj, ok := v.(map[string]any); ok {
			if _, isToken := obj[token.KeyValue]; isToken {
				dropReserved(leaf)
				mergeNode(leaf, obj)
				continue
			}
		}
		leaf[token.KeyValue] = token.Clone(v)
	}
	return nil
}
