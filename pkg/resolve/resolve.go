// Package resolve turns token references into concrete values.
//
// A [Resolver] works on one indexed document. It follows "{path}"
// references, including those nested inside composite values, coerces the
// final value with the token's type and memoizes every result for the
// lifetime of the resolver.
//
// Resolution is fail-soft: problems come back as typed *errors.Error values
// on the [Result] rather than panics, so one bad token never stops the
// others from resolving. Cycles are caught with an explicit recursion stack
// and a hard depth ceiling, not by running out of call stack.
//
// A Resolver is not safe for concurrent use; create one per pass.
package resolve

import (
	"maps"
	"slices"
	"strings"

	"github.com/darianrosebrook/portfolio-sub007/pkg/coerce"
	"github.com/darianrosebrook/portfolio-sub007/pkg/dag"
	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/index"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// DefaultMaxDepth bounds the length of a reference chain.
const DefaultMaxDepth = 1024

// Result is the outcome of resolving one token.
type Result struct {
	Path  string
	Type  token.Type
	Value any // final coerced value; the raw value when Err is set
	// Trail lists the paths followed, starting with Path. A token holding
	// a literal has a trail of one.
	Trail []string
	Err   *errors.Error
}

// OK reports whether the token resolved without error.
func (r *Result) OK() bool { return r.Err == nil }

// Option configures a [Resolver].
type Option func(*Resolver)

// WithMaxDepth overrides [DefaultMaxDepth].
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// Resolver resolves the tokens of one index.
type Resolver struct {
	ix       *index.Index
	memo     map[string]*Result
	stack    []string
	onStack  map[string]int
	maxDepth int
}

// New creates a resolver over ix.
func New(ix *index.Index, opts ...Option) *Resolver {
	r := &Resolver{
		ix:       ix,
		memo:     make(map[string]*Result),
		onStack:  make(map[string]int),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the final value of the token at path.
func (r *Resolver) Resolve(path string) (any, error) {
	res := r.Result(path)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Value, nil
}

// Result returns the full resolution record for path. Unknown paths and
// groups produce a result carrying an error.
func (r *Resolver) Result(path string) *Result {
	n, ok := r.ix.Lookup(path)
	if !ok {
		return &Result{Path: path, Trail: []string{path},
			Err: errors.New(errors.CodeUnresolvedReference, path, "no token at %q", path)}
	}
	if !n.IsToken() {
		return &Result{Path: path, Type: n.Type, Trail: []string{path},
			Err: errors.New(errors.CodeReferenceToNonToken, path, "%q is a group, not a token", path)}
	}
	return r.resolve(n)
}

// ResolveAll resolves every token and returns the results sorted by path.
func (r *Resolver) ResolveAll() []*Result {
	tokens := r.ix.Tokens()
	out := make([]*Result, 0, len(tokens))
	for _, n := range tokens {
		out = append(out, r.resolve(n))
	}
	slices.SortFunc(out, func(a, b *Result) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// Values returns the resolved value of every token that resolved cleanly.
func (r *Resolver) Values() map[string]any {
	out := make(map[string]any)
	for _, res := range r.ResolveAll() {
		if res.OK() {
			out[res.Path] = res.Value
		}
	}
	return out
}

func (r *Resolver) resolve(n *index.Node) *Result {
	if res, ok := r.memo[n.Path]; ok {
		return res
	}
	if i, ok := r.onStack[n.Path]; ok {
		cycle := append(slices.Clone(r.stack[i:]), n.Path)
		return &Result{Path: n.Path, Type: n.Type, Value: n.Value, Trail: cycle,
			Err: errors.Cyclic(n.Path, dag.CanonicalCycle(cycle))}
	}
	if len(r.stack) >= r.maxDepth {
		return &Result{Path: n.Path, Type: n.Type, Value: n.Value, Trail: []string{n.Path},
			Err: errors.New(errors.CodeSchemaViolation, n.Path, "reference chain deeper than %d", r.maxDepth)}
	}

	r.onStack[n.Path] = len(r.stack)
	r.stack = append(r.stack, n.Path)
	res := r.evaluate(n)
	r.stack = r.stack[:len(r.stack)-1]
	delete(r.onStack, n.Path)

	r.memo[n.Path] = res
	return res
}

func (r *Resolver) evaluate(n *index.Node) *Result {
	res := &Result{Path: n.Path, Type: n.Type, Value: n.Value, Trail: []string{n.Path}}

	switch token.Classify(n.Value, n.Type) {
	case token.Reference:
		target, _ := token.ParseReference(n.Value.(string))
		tr, err := r.follow(n.Path, target)
		if err != nil {
			res.Err = err
			if tr != nil {
				res.Trail = append(res.Trail, tr.Trail...)
			}
			return res
		}
		res.Trail = append(res.Trail, tr.Trail...)
		res.Value = coerce.Value(tr.Value, n.Type)
		if n.Type == "" {
			res.Type = tr.Type
		}
	case token.Interpolated:
		res.Err = errors.New(errors.CodeInterpolationNotAllowed, n.Path,
			"%q mixes a reference with other text", n.Value)
	default:
		v, err := r.nested(n.Path, n.Value)
		if err != nil {
			res.Err = err
			return res
		}
		res.Value = coerce.Value(v, n.Type)
	}
	return res
}

// follow resolves target on behalf of the token at from. The returned
// error is attributed to from.
func (r *Resolver) follow(from, target string) (*Result, *errors.Error) {
	tn, ok := r.ix.Lookup(target)
	if !ok {
		return nil, errors.New(errors.CodeUnresolvedReference, from, "reference {%s} does not resolve", target)
	}
	if !tn.IsToken() {
		return nil, errors.New(errors.CodeReferenceToNonToken, from, "reference {%s} points at a group", target)
	}
	tr := r.resolve(tn)
	if tr.Err == nil {
		return tr, nil
	}
	if tr.Err.Code == errors.CodeCircularReference {
		return tr, errors.Cyclic(from, tr.Err.Cycle)
	}
	return tr, &errors.Error{
		Code:    tr.Err.Code,
		Path:    from,
		Message: "via {" + target + "}",
		Cause:   tr.Err,
	}
}

// nested replaces references inside objects and arrays with their resolved
// values.
func (r *Resolver) nested(from string, v any) (any, *errors.Error) {
	switch x := v.(type) {
	case string:
		if target, ok := token.ParseReference(x); ok {
			tr, err := r.follow(from, target)
			if err != nil {
				return nil, err
			}
			return tr.Value, nil
		}
		if token.HasInterpolation(x) {
			return nil, errors.New(errors.CodeInterpolationNotAllowed, from, "%q mixes a reference with other text", x)
		}
		return x, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			e, err := r.nested(from, x[k])
			if err != nil {
				return nil, err
			}
			out[k] = e
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			v, err := r.nested(from, e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	return v, nil
}
