package project

import (
	"slices"
	"strings"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// Enum is an enum-like component input such as a size or variant name.
type Enum struct {
	Name    string   `json:"name"`
	Allowed []string `json:"allowed"`
	Default string   `json:"default"`
}

// Normalize returns v when the allow-list contains it and Default
// otherwise.
func (e Enum) Normalize(v string) string {
	if slices.Contains(e.Allowed, v) {
		return v
	}
	return e.Default
}

func (e Enum) validate() error {
	if e.Name == "" {
		return errors.New(errors.CodeInvalidInput, "", "enum name cannot be empty")
	}
	if strings.ContainsAny(e.Name, ".{}") {
		return errors.New(errors.CodeInvalidInput, "", "enum name %q must be a single path segment", e.Name)
	}
	if len(e.Allowed) == 0 {
		return errors.New(errors.CodeInvalidInput, "", "enum %q allows no values", e.Name)
	}
	if !slices.Contains(e.Allowed, e.Default) {
		return errors.New(errors.CodeInvalidInput, "", "enum %q default %q is not in %v", e.Name, e.Default, e.Allowed)
	}
	return nil
}

// Options controls a projection.
type Options struct {
	// Namespace prefixes every key, typically a component name.
	Namespace string `json:"namespace,omitempty"`
	// Root restricts the projection to a subtree and strips it from keys.
	Root string `json:"root,omitempty"`
	// Fallbacks are used for keys no token produces.
	Fallbacks map[string]any `json:"fallbacks,omitempty"`
	// Overrides win over everything.
	Overrides map[string]any `json:"overrides,omitempty"`
	// Enums declares the allowed values of enum-like inputs.
	Enums []Enum `json:"enums,omitempty"`
	// Select holds the caller's raw enum inputs by enum name. Missing or
	// disallowed inputs fall back to the enum default.
	Select map[string]string `json:"select,omitempty"`
}

// Validate checks the options for malformed namespaces, roots and enums.
func (o Options) Validate() error {
	if o.Namespace != "" {
		if err := errors.ValidateNamespace(o.Namespace); err != nil {
			return err
		}
	}
	if o.Root != "" {
		if err := errors.ValidateTokenPath(o.Root); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(o.Enums))
	for _, e := range o.Enums {
		if err := e.validate(); err != nil {
			return err
		}
		if seen[e.Name] {
			return errors.New(errors.CodeInvalidInput, "", "enum %q declared twice", e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}

// Selected returns the normalized value of every declared enum.
func (o Options) Selected() map[string]string {
	out := make(map[string]string, len(o.Enums))
	for _, e := range o.Enums {
		out[e.Name] = e.Normalize(o.Select[e.Name])
	}
	return out
}

// Key returns the projected key of a token path.
func (o Options) Key(path string) string {
	rel := token.Dashed(token.Trim(path, o.Root))
	switch {
	case o.Namespace == "":
		return rel
	case rel == "":
		return o.Namespace
	}
	return o.Namespace + "-" + rel
}
