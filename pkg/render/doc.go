// Package render groups the output writers for solved puzzles.
//
// Rendering itself lives in the [sink] subpackage: an animated side view as
// SVG with SMIL transforms, the move list and motion segments as JSON, and the
// solver's recursion tree as Graphviz DOT or SVG.
//
//	svg := sink.RenderSVG(sc, tl, sink.WithSize(800, 0))
//	data, err := sink.RenderJSON(n, moves, tl)
//	dot := sink.ToDOT(solver.CallTree(n), sink.DOTOptions{})
//
// [sink]: https://pkg.go.dev/github.com/matzehuels/hanoitower/pkg/render/sink
package render
