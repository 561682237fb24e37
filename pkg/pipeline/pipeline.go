// Package pipeline runs a complete resolution pass.
//
// A pass merges the ordered sources, indexes and resolves the merged
// document, optionally validates it, and projects the resolved values:
//
//  1. Merge: combine sources, later sources winning (see [loader.Merge])
//  2. Resolve: follow references and coerce values
//  3. Validate: collect structural and semantic issues (optional)
//  4. Project: flatten into namespaced keys
//
// Passes are memoized: the same inputs produce the same cache key, and a
// cached payload is returned without recomputation.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Run(ctx, pipeline.Request{
//	    Sources: []loader.Source{loader.JSON("tokens.json", doc)},
//	    Project: project.Options{Namespace: "button", Root: "button"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	css := result.Projection.CSS(":root")
//
// [loader.Merge]: github.com/darianrosebrook/portfolio-sub007/pkg/loader.Merge
package pipeline

import (
	"time"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
	"github.com/darianrosebrook/portfolio-sub007/pkg/project"
	"github.com/darianrosebrook/portfolio-sub007/pkg/resolve"
	"github.com/darianrosebrook/portfolio-sub007/pkg/validate"
)

// DefaultTTL is how long a pass stays cached.
const DefaultTTL = 24 * time.Hour

// Request is the input of one pass. It supports JSON for API requests.
type Request struct {
	// Sources are merged in order; later sources win.
	Sources []loader.Source `json:"sources"`
	// Project configures the projection, including fallbacks and
	// escape-hatch overrides.
	Project project.Options `json:"project"`

	// Validate runs the validator and fills [Result.Report].
	Validate    bool `json:"validate,omitempty"`
	StrictUnits bool `json:"strict_units,omitempty"`
	MaxIssues   int  `json:"max_issues,omitempty"`
	MaxDepth    int  `json:"max_depth,omitempty"`

	// Refresh bypasses the cache lookup; the fresh result is still stored.
	Refresh bool `json:"-"`
}

// Check rejects malformed requests before any work is done.
func (r *Request) Check() error {
	if len(r.Sources) == 0 {
		return errors.New(errors.CodeInvalidInput, "", "at least one source is required")
	}
	for i, s := range r.Sources {
		if s.Kind != loader.KindJSON && s.Kind != loader.KindInline {
			return errors.New(errors.CodeInvalidInput, "", "source %d: unknown source type %q", i, s.Kind)
		}
	}
	if r.MaxIssues < 0 || r.MaxDepth < 0 {
		return errors.New(errors.CodeInvalidInput, "", "limits cannot be negative")
	}
	return r.Project.Validate()
}

func (r *Request) validateOptions() []validate.Option {
	var opts []validate.Option
	if r.StrictUnits {
		opts = append(opts, validate.WithStrictUnits())
	}
	if r.MaxIssues > 0 {
		opts = append(opts, validate.WithMaxIssues(r.MaxIssues))
	}
	return opts
}

func (r *Request) resolveOptions() []resolve.Option {
	if r.MaxDepth > 0 {
		return []resolve.Option{resolve.WithMaxDepth(r.MaxDepth)}
	}
	return nil
}

// keyOptions is everything besides sources, fallbacks and overrides that
// changes the outcome of a pass.
type keyOptions struct {
	Namespace   string            `json:"namespace"`
	Root        string            `json:"root"`
	Enums       []project.Enum    `json:"enums"`
	Select      map[string]string `json:"select"`
	Validate    bool              `json:"validate"`
	StrictUnits bool              `json:"strict_units"`
	MaxIssues   int               `json:"max_issues"`
	MaxDepth    int               `json:"max_depth"`
}

func (r *Request) keyOptions() keyOptions {
	return keyOptions{
		Namespace:   r.Project.Namespace,
		Root:        r.Project.Root,
		Enums:       r.Project.Enums,
		Select:      r.Project.Selected(),
		Validate:    r.Validate,
		StrictUnits: r.StrictUnits,
		MaxIssues:   r.MaxIssues,
		MaxDepth:    r.MaxDepth,
	}
}

// Stats describes a pass.
type Stats struct {
	Sources  int `json:"sources" msgpack:"sources"`
	Tokens   int `json:"tokens" msgpack:"tokens"`
	Resolved int `json:"resolved" msgpack:"resolved"`
	Failed   int `json:"failed" msgpack:"failed"`
	Keys     int `json:"keys" msgpack:"keys"`

	ResolveTime  time.Duration `json:"resolve_time" msgpack:"resolve_time"`
	ValidateTime time.Duration `json:"validate_time,omitempty" msgpack:"validate_time"`
	ProjectTime  time.Duration `json:"project_time" msgpack:"project_time"`
}

// Result is the output of [Runner.Run].
//
// PassID is unique per call, cache hits included. Resolved maps every token
// path that resolved to its value in plain document form; Failures holds
// the error of every token that did not. Report is nil unless the request
// asked for validation.
type Result struct {
	PassID     string              `json:"pass_id"`
	Projection *project.Projection `json:"projection"`
	Resolved   map[string]any      `json:"resolved"`
	Failures   map[string]string   `json:"failures,omitempty"`
	Report     *validate.Report    `json:"report,omitempty"`
	Stats      Stats               `json:"stats"`
	CacheHit   bool                `json:"cache_hit"`
}
