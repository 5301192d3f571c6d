// Package observability provides hooks for instrumenting pipeline runs and
// cache traffic without tying libraries to a metrics backend.
//
// Register hooks once at startup:
//
//	stats := observability.NewStats()
//	observability.SetPipelineHooks(stats)
//	observability.SetCacheHooks(stats)
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageSolve, disks)
//	// ... solve ...
//	observability.Pipeline().OnStageComplete(ctx, observability.StageSolve, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Pipeline stage names.
const (
	StageSolve    = "solve"
	StageSimulate = "simulate"
	StageRender   = "render"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// PipelineHooks receives events from pipeline stages.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string, disks int)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is the kind of
// entry: "moves", "timeline" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Counting Implementation
// =============================================================================

// Stats counts stage runs and cache traffic. It implements both hook
// interfaces and is safe for concurrent use.
type Stats struct {
	runs      atomic.Int64
	failures  atomic.Int64
	hits      atomic.Int64
	misses    atomic.Int64
	bytesSet  atomic.Int64
	stageTime sync.Map // stage -> *atomic.Int64 (nanoseconds)
}

// NewStats returns zeroed counters.
func NewStats() *Stats { return &Stats{} }

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	StageRuns     int64            `json:"stage_runs"`
	StageFailures int64            `json:"stage_failures"`
	CacheHits     int64            `json:"cache_hits"`
	CacheMisses   int64            `json:"cache_misses"`
	CacheBytesSet int64            `json:"cache_bytes_set"`
	StageTime     map[string]int64 `json:"stage_time_ms"`
}

func (s *Stats) OnStageStart(context.Context, string, int) {}

func (s *Stats) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	s.runs.Add(1)
	if err != nil {
		s.failures.Add(1)
	}
	v, _ := s.stageTime.LoadOrStore(stage, new(atomic.Int64))
	v.(*atomic.Int64).Add(int64(d))
}

func (s *Stats) OnCacheHit(context.Context, string)  { s.hits.Add(1) }
func (s *Stats) OnCacheMiss(context.Context, string) { s.misses.Add(1) }
func (s *Stats) OnCacheSet(_ context.Context, _ string, size int) {
	s.bytesSet.Add(int64(size))
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		StageRuns:     s.runs.Load(),
		StageFailures: s.failures.Load(),
		CacheHits:     s.hits.Load(),
		CacheMisses:   s.misses.Load(),
		CacheBytesSet: s.bytesSet.Load(),
		StageTime:     make(map[string]int64),
	}
	s.stageTime.Range(func(k, v any) bool {
		snap.StageTime[k.(string)] = time.Duration(v.(*atomic.Int64).Load()).Milliseconds()
		return true
	})
	return snap
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
