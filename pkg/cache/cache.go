// Package cache stores resolution results between runs.
//
// Four backends implement [Cache]:
//   - [NullCache] stores nothing, for tests and --no-cache
//   - [MemoryCache] lives inside one process, for the HTTP server
//   - [FileCache] persists under a directory, for the CLI
//   - [RedisCache] is shared between server instances
//
// Keys come from a [Keyer] so the same inputs always map to the same entry:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ResolutionKey(sources, fallbacks, overrides, opts)
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. A miss is not an error:
// Get reports it through its second result.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero keeps it until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
