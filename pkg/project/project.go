package project

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/darianrosebrook/portfolio-sub007/pkg/resolve"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// Origin records which layer produced a projected value.
type Origin string

const (
	OriginFallback Origin = "fallback"
	OriginToken    Origin = "token"
	OriginVariant  Origin = "variant"
	OriginOverride Origin = "override"
)

// Projection is the flat output of [Project].
type Projection struct {
	Namespace string            `json:"namespace,omitempty" msgpack:"namespace"`
	Values    map[string]string `json:"values" msgpack:"values"`
	Origins   map[string]Origin `json:"origins,omitempty" msgpack:"origins"`
	// Enums holds the normalized value of every declared enum.
	Enums map[string]string `json:"enums,omitempty" msgpack:"enums"`
	// Skipped lists tokens under the root that failed to resolve.
	Skipped []string `json:"skipped,omitempty" msgpack:"skipped"`
}

// Keys returns the projected keys in sorted order.
func (p *Projection) Keys() []string {
	return slices.Sorted(maps.Keys(p.Values))
}

// Get returns the value projected under key.
func (p *Projection) Get(key string) (string, bool) {
	v, ok := p.Values[key]
	return v, ok
}

// CSS renders a custom property block. An empty selector means ":root".
func (p *Projection) CSS(selector string) string {
	if selector == "" {
		selector = ":root"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s {\n", selector)
	for _, k := range p.Keys() {
		fmt.Fprintf(&buf, "  --%s: %s;\n", k, p.Values[k])
	}
	buf.WriteString("}\n")
	return buf.String()
}

// Project flattens resolved results. Results carrying an error are listed
// in [Projection.Skipped] instead of being projected, so a fallback or
// override can still fill their keys.
func Project(results []*resolve.Result, opts Options) (*Projection, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := &Projection{
		Namespace: opts.Namespace,
		Values:    make(map[string]string),
		Origins:   make(map[string]Origin),
		Enums:     opts.Selected(),
	}
	set := func(origin Origin) func(key, value string) {
		return func(key, value string) {
			p.Values[key] = value
			p.Origins[key] = origin
		}
	}

	for _, k := range slices.Sorted(maps.Keys(opts.Fallbacks)) {
		Flatten(k, opts.Fallbacks[k], "", set(OriginFallback))
	}

	inRoot := make([]*resolve.Result, 0, len(results))
	for _, r := range results {
		if !token.Within(r.Path, opts.Root) || r.Path == opts.Root {
			continue
		}
		if !r.OK() {
			p.Skipped = append(p.Skipped, r.Path)
			continue
		}
		inRoot = append(inRoot, r)
	}
	slices.SortFunc(inRoot, func(a, b *resolve.Result) int { return cmp.Compare(a.Path, b.Path) })
	slices.Sort(p.Skipped)

	for _, r := range inRoot {
		Flatten(opts.Key(r.Path), r.Value, r.Type, set(OriginToken))
	}

	// The selected variant of each enum also projects without its
	// "<name>.<value>" qualifier. Enums apply in declaration order.
	for _, e := range opts.Enums {
		variant := token.Join(opts.Root, e.Name, p.Enums[e.Name])
		for _, r := range inRoot {
			if r.Path == variant || !token.Within(r.Path, variant) {
				continue
			}
			unqualified := token.Join(opts.Root, token.Trim(r.Path, variant))
			Flatten(opts.Key(unqualified), r.Value, r.Type, set(OriginVariant))
		}
	}

	for _, k := range slices.Sorted(maps.Keys(opts.Overrides)) {
		Flatten(k, opts.Overrides[k], "", set(OriginOverride))
	}
	return p, nil
}
