package cache

import (
	"context"
	"time"
)

// NullCache is the "none" backend: every lookup misses and writes vanish.
// Runs behave exactly as with a real cache that is always cold.
type NullCache struct{}

// NewNullCache returns the "none" backend.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

// IsNull reports whether c discards everything, so callers can skip work
// such as clearing or reporting hit rates.
func IsNull(c Cache) bool {
	switch c.(type) {
	case nil, NullCache, *NullCache:
		return true
	}
	return false
}

var _ Cache = NullCache{}
