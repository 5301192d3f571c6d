package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/render/sink"
	"github.com/matzehuels/hanoitower/pkg/scene"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// Render generates output artifacts in the requested formats. sc must hold
// the disks at the positions the timeline starts from.
func Render(ctx context.Context, sc *scene.Scene, moves solver.MoveList, tl *animation.Timeline, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	treeDOT := func() string {
		if dot == "" {
			dot = sink.ToDOT(solver.CallTree(sc.DiskCount()), sink.DOTOptions{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(sc, tl, buildSVGOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(sc.DiskCount(), moves, tl, sink.WithJSONScene(sc), sink.WithJSONIndent())
		case FormatDOT:
			data = []byte(treeDOT())
		case FormatTree:
			data, err = sink.RenderTreeSVG(ctx, treeDOT())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithSize(opts.Width, opts.Height)}
	if opts.Loop {
		svgOpts = append(svgOpts, sink.WithLoop())
	}
	return svgOpts
}
