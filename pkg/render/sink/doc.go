// Package sink writes solver and animation output to files.
//
// Three sinks are provided:
//
//   - [RenderSVG] draws a side view of the scene with one SMIL
//     animateTransform per disk, so the whole solution plays in any browser
//     without script.
//   - [RenderJSON] writes the move list and timeline segments for external
//     players.
//   - [ToDOT] and [RenderTreeSVG] draw the solver's recursion tree with
//     Graphviz.
//
// SVG and JSON take the [animation.Timeline] produced by an
// [animation.Recorder]:
//
//	rec := animation.NewRecorder(sc)
//	p, _ := animation.NewPlayer(moves, sc, rec)
//	_ = p.Play(ctx)
//	sc.Reset()
//	svg := sink.RenderSVG(sc, rec.Timeline(), sink.WithSize(800, 0))
//
// [animation.Timeline]: github.com/matzehuels/hanoitower/pkg/animation.Timeline
// [animation.Recorder]: github.com/matzehuels/hanoitower/pkg/animation.Recorder
package sink
