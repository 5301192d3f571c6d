// Package pkg provides the core libraries for Hanoitower.
//
// # Overview
//
// Hanoitower solves the Towers of Hanoi and turns the solution into timed
// disk motion. The pkg directory is organized into four main areas:
//
//  1. Domain logic: [solver], [scene], [animation], [geom]
//  2. Output: [render/sink] (animated SVG, JSON timelines, recursion trees)
//  3. Orchestration: [pipeline] (solve → simulate → render, with caching)
//  4. Infrastructure: [cache], [config], [observability], [realtime], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	disk count
//	     ↓
//	[solver] (2^n-1 moves)
//	     ↓
//	[scene] (board, pegs and disks in 3D)
//	     ↓
//	[animation] (lift, traverse, descend per move)
//	     ↓
//	SVG/JSON/DOT output, a live terminal view, or server-sent events
//
// # Quick Start
//
//	moves, _ := solver.Solve(5)
//	sc, _ := scene.Build(5, scene.DefaultConfig())
//	rec := animation.NewRecorder(sc)
//	p, _ := animation.NewPlayer(moves, sc, rec)
//	_ = p.Play(ctx)
//	svg := sink.RenderSVG(sc, rec.Timeline(), sink.WithLoop())
//
// The [pipeline] package wraps the same steps behind a cache:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Disks: 5, Formats: []string{"svg"}})
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//
// [solver]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/solver
// [scene]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/scene
// [animation]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/animation
// [geom]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/geom
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/observability
// [realtime]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/realtime
// [errors]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/errors
package pkg
