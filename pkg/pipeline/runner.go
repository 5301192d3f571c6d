package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/cache"
	"github.com/matzehuels/hanoitower/pkg/observability"
	"github.com/matzehuels/hanoitower/pkg/scene"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-stage default TTLs when non-zero.
	TTL time.Duration
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
	}
}

// Execute runs the complete solve → simulate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Disks: opts.Disks}

	// Stage 1: Solve
	solveStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageSolve, opts.Disks)
	moves, solveHit, err := r.SolveWithCacheInfo(ctx, opts)
	observability.Pipeline().OnStageComplete(ctx, observability.StageSolve, time.Since(solveStart), err)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Moves = moves
	result.Stats.MoveCount = len(moves)
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved puzzle",
		"disks", opts.Disks,
		"moves", len(moves),
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 2: Simulate
	simStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageSimulate, opts.Disks)
	sc, tl, simHit, err := r.SimulateWithCacheInfo(ctx, moves, opts)
	observability.Pipeline().OnStageComplete(ctx, observability.StageSimulate, time.Since(simStart), err)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	result.Scene = sc
	result.Timeline = tl
	result.Stats.Duration = tl.Total()
	result.Stats.SimulateTime = time.Since(simStart)
	result.CacheInfo.SimulateHit = simHit

	r.Logger.Info("recorded animation",
		"segments", len(tl.Segments),
		"length", tl.Total(),
		"cached", simHit,
		"duration", result.Stats.SimulateTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageRender, opts.Disks)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sc, moves, tl, opts)
	observability.Pipeline().OnStageComplete(ctx, observability.StageRender, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo computes the move list with caching and returns cache
// hit info. Cached lists are replayed before use; a list that fails replay is
// discarded and recomputed.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, opts Options) (solver.MoveList, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSolve(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.MovesKey(opts.Disks)

	if !opts.Refresh {
		if data, hit, err := r.load(ctx, keyMoves, cacheKey); err == nil && hit {
			var moves solver.MoveList
			if err := json.Unmarshal(data, &moves); err == nil {
				err = solver.Verify(opts.Disks, moves)
				if err == nil {
					return moves, true, nil
				}
				opts.Logger.Warn("discarding cached move list", "key", cacheKey, "err", err)
			}
		} else if err != nil {
			opts.Logger.Debug("cache read failed", "key", cacheKey, "err", err)
		}
	}

	moves, err := solver.Solve(opts.Disks)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(moves); err == nil {
		r.store(ctx, opts.Logger, keyMoves, cacheKey, data, cache.TTLMoves)
	}
	return moves, false, nil
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, opts Options) (solver.MoveList, error) {
	moves, _, err := r.SolveWithCacheInfo(ctx, opts)
	return moves, err
}

// SimulateWithCacheInfo builds a scene and records moves on it. The timeline
// cache key covers the move list, so any valid list may be passed. The
// returned scene has its disks back at their starting positions so it can be
// rendered together with the timeline.
func (r *Runner) SimulateWithCacheInfo(ctx context.Context, moves solver.MoveList, opts Options) (*scene.Scene, *animation.Timeline, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSimulate(); err != nil {
		return nil, nil, false, err
	}

	sc, err := scene.Build(opts.Disks, opts.Scene)
	if err != nil {
		return nil, nil, false, err
	}

	cacheKey := r.Keyer.TimelineKey(opts.Disks, opts.TimelineKeyOpts(moves))
	if !opts.Refresh {
		if data, hit, err := r.load(ctx, keyTimeline, cacheKey); err == nil && hit {
			var tl animation.Timeline
			if err := json.Unmarshal(data, &tl); err == nil && len(tl.Initial) == sc.DiskCount() {
				return sc, &tl, true, nil
			}
		}
	}

	rec := animation.NewRecorder(sc)
	player, err := animation.NewPlayer(moves, sc, rec,
		animation.WithBaseDuration(opts.EffectiveBaseDuration()),
		animation.WithLogger(opts.Logger))
	if err != nil {
		return nil, nil, false, err
	}
	if err := player.Play(ctx); err != nil {
		return nil, nil, false, err
	}
	sc.Reset()

	tl := rec.Timeline()
	if data, err := json.Marshal(tl); err == nil {
		r.store(ctx, opts.Logger, keyTimeline, cacheKey, data, cache.TTLTimeline)
	}
	return sc, tl, false, nil
}

// Simulate is a convenience wrapper that calls SimulateWithCacheInfo and discards the cache hit info.
func (r *Runner) Simulate(ctx context.Context, moves solver.MoveList, opts Options) (*scene.Scene, *animation.Timeline, error) {
	sc, tl, _, err := r.SimulateWithCacheInfo(ctx, moves, opts)
	return sc, tl, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc *scene.Scene, moves solver.MoveList, tl *animation.Timeline, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	tlData, err := json.Marshal(tl)
	if err != nil {
		return nil, false, fmt.Errorf("serialize timeline for cache key: %w", err)
	}
	tlHash := cache.Hash(tlData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(tlHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.load(ctx, keyArtifact, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, sc, moves, tl, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(tlHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, opts.Logger, keyArtifact, cacheKey, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// Cache key types reported to observability hooks.
const (
	keyMoves    = "moves"
	keyTimeline = "timeline"
	keyArtifact = "artifact"
)

func (r *Runner) load(ctx context.Context, keyType, key string) ([]byte, bool, error) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit, err
}

// store writes to the cache, logging instead of failing: a cache outage
// never fails a run.
func (r *Runner) store(ctx context.Context, logger *log.Logger, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL != 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
