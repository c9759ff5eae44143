// Package cache stores solved layouts keyed by the content hash of their
// inputs.
//
// Solving is deterministic, so a layout computed once for a requirement record
// and solver config can be served again without re-running placement. The
// [Cache] interface has four backends:
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [MemoryCache]: bounded in-process LRU, used by the server by default
//   - [RedisCache]: shared cache for multi-instance server deployments
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are built by a [Keyer] so that callers never assemble key strings by
// hand.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	// ResultTTL bounds how long a solved layout is served from cache. Layouts
	// never go stale for identical inputs; the TTL only caps cache growth.
	ResultTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Get reports a miss as (nil, false, nil). Errors are reserved for backend
// failures; callers treat them as misses and carry on.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
