// Package cache stores solver and render output between runs.
//
// A [Cache] is a byte store with per-entry TTLs. Three backends are
// provided: [NullCache] (caching disabled), [FileCache] (a directory, used
// by the CLI) and [RedisCache] (shared between server instances). Keys come
// from a [Keyer], which hashes the inputs that determine each output.
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().MovesKey(8)
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind. Move lists never change for a disk count, so
// they live longest.
const (
	TTLMoves    = 30 * 24 * time.Hour
	TTLTimeline = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
