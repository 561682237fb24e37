// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the defaults do
// nothing. Binaries register implementations at startup, which keeps the
// engine free of any particular metrics or tracing backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnResolveStart(ctx, passID, tokens)
//	// ... resolve ...
//	observability.Pipeline().OnResolveComplete(ctx, passID, resolved, failed, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from a resolution pass. passID identifies
// the pass across events.
type PipelineHooks interface {
	OnResolveStart(ctx context.Context, passID string, tokens int)
	OnResolveComplete(ctx context.Context, passID string, resolved, failed int, duration time.Duration, err error)

	OnValidateComplete(ctx context.Context, passID string, errors, warnings int, duration time.Duration)

	OnProjectComplete(ctx context.Context, passID string, keys int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from document stores. store names the
// backend ("dir" or "mongo").
type StoreHooks interface {
	OnDocumentsLoaded(ctx context.Context, store string, documents int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnResolveStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnResolveComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnValidateComplete(context.Context, string, int, int, time.Duration)  {}
func (NoopPipelineHooks) OnProjectComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnDocumentsLoaded(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	store    StoreHooks
	http     HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		store:    NoopStoreHooks{},
		http:     NoopHTTPHooks{},
	}
}

// set stores h in *slot unless h is nil.
func set[H any](slot *H, h H, isNil bool) {
	if isNil {
		return
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	*slot = h
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
// Call it at startup, before the first pass runs.
func SetPipelineHooks(h PipelineHooks) { set(&hooks.pipeline, h, h == nil) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { set(&hooks.cache, h, h == nil) }

// SetStoreHooks registers store hooks. A nil h is ignored.
func SetStoreHooks(h StoreHooks) { set(&hooks.store, h, h == nil) }

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { set(&hooks.http, h, h == nil) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.store
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset restores the no-op defaults. Tests call it in cleanup.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.store = NoopStoreHooks{}
	hooks.http = NoopHTTPHooks{}
}
