package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/darianrosebrook/portfolio-sub007/pkg/cache"
	"github.com/darianrosebrook/portfolio-sub007/pkg/index"
	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
	"github.com/darianrosebrook/portfolio-sub007/pkg/observability"
	"github.com/darianrosebrook/portfolio-sub007/pkg/project"
	"github.com/darianrosebrook/portfolio-sub007/pkg/resolve"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
	"github.com/darianrosebrook/portfolio-sub007/pkg/validate"
)

const cacheKeyType = "resolution"

// Runner encapsulates pass execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Run executes one pass. Token-level failures (broken references, invalid
// values) are reported in the result, not as an error; Run only fails on
// malformed requests, cancellation and projection option errors.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	passID := uuid.NewString()
	key := r.Keyer.ResolutionKey(req.Sources, req.Project.Fallbacks, req.Project.Overrides, req.keyOptions())

	if !req.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.PassID = passID
			r.Logger.Debug("resolution cache hit", "pass", passID, "keys", res.Stats.Keys)
			return res, nil
		}
	}

	res, err := r.compute(ctx, passID, req)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, res)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	res, err := decodeResult(data)
	if err != nil {
		// stale or foreign payload, recompute
		r.Logger.Debug("discarding cached payload", "err", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	res.CacheHit = true
	return res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := encodeResult(res)
	if err != nil {
		r.Logger.Warn("cannot encode result for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (r *Runner) compute(ctx context.Context, passID string, req Request) (*Result, error) {
	hooks := observability.Pipeline()
	res := &Result{PassID: passID, Stats: Stats{Sources: len(req.Sources)}}

	doc, err := loader.Merge(req.Sources...)
	if err != nil {
		return nil, err
	}
	ix := index.Build(doc)
	res.Stats.Tokens = ix.Len()

	start := time.Now()
	hooks.OnResolveStart(ctx, passID, ix.Len())
	resolver := resolve.New(ix, req.resolveOptions()...)
	results := resolver.ResolveAll()
	res.Resolved = make(map[string]any, len(results))
	for _, rr := range results {
		if rr.OK() {
			res.Resolved[rr.Path] = token.Plain(rr.Value)
			continue
		}
		if res.Failures == nil {
			res.Failures = make(map[string]string)
		}
		res.Failures[rr.Path] = rr.Err.Error()
	}
	res.Stats.Resolved = len(res.Resolved)
	res.Stats.Failed = len(res.Failures)
	res.Stats.ResolveTime = time.Since(start)
	hooks.OnResolveComplete(ctx, passID, res.Stats.Resolved, res.Stats.Failed, res.Stats.ResolveTime, nil)

	r.Logger.Info("resolved tokens",
		"pass", passID,
		"tokens", res.Stats.Tokens,
		"failed", res.Stats.Failed,
		"duration", res.Stats.ResolveTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.Validate {
		start = time.Now()
		res.Report = validate.Index(ix, resolver, req.validateOptions()...)
		res.Stats.ValidateTime = time.Since(start)
		hooks.OnValidateComplete(ctx, passID, len(res.Report.Errors), len(res.Report.Warnings), res.Stats.ValidateTime)
		r.Logger.Info("validated tokens",
			"pass", passID,
			"errors", len(res.Report.Errors),
			"warnings", len(res.Report.Warnings))
	}

	start = time.Now()
	p, err := project.Project(results, req.Project)
	res.Stats.ProjectTime = time.Since(start)
	if err != nil {
		hooks.OnProjectComplete(ctx, passID, 0, res.Stats.ProjectTime, err)
		return nil, fmt.Errorf("project: %w", err)
	}
	res.Projection = p
	res.Stats.Keys = len(p.Values)
	hooks.OnProjectComplete(ctx, passID, res.Stats.Keys, res.Stats.ProjectTime, nil)

	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
