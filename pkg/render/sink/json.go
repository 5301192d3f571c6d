package sink

import (
	"encoding/json"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/geom"
	"github.com/matzehuels/hanoitower/pkg/scene"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	scene  *scene.Scene
	indent bool
}

// WithJSONScene includes board, peg and disk geometry so a consumer can draw
// the scene without rebuilding it.
func WithJSONScene(sc *scene.Scene) JSONOption { return func(r *jsonRenderer) { r.scene = sc } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Disks    int           `json:"disks"`
	Duration float64       `json:"duration"`
	Moves    []solver.Move `json:"moves"`
	Segments []jsonSegment `json:"segments,omitempty"`
	Scene    *jsonScene    `json:"scene,omitempty"`
}

type jsonSegment struct {
	Move     int             `json:"move"`
	Disk     int             `json:"disk"`
	Phase    animation.Phase `json:"phase"`
	From     geom.Vec3       `json:"from"`
	To       geom.Vec3       `json:"to"`
	Start    float64         `json:"start"`
	Duration float64         `json:"duration"`
}

type jsonScene struct {
	Board scene.Board  `json:"board"`
	Pegs  []scene.Peg  `json:"pegs"`
	Disks []scene.Disk `json:"disks"`
}

// RenderJSON encodes moves and, when tl is not nil, its segments. Times are
// in seconds.
func RenderJSON(disks int, moves solver.MoveList, tl *animation.Timeline, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Disks: disks, Moves: moves}
	if out.Moves == nil {
		out.Moves = solver.MoveList{}
	}
	if tl != nil {
		out.Duration = tl.Total().Seconds()
		out.Segments = make([]jsonSegment, len(tl.Segments))
		for i, s := range tl.Segments {
			out.Segments[i] = jsonSegment{
				Move:     s.Move,
				Disk:     s.Disk,
				Phase:    s.Phase,
				From:     s.From,
				To:       s.To,
				Start:    s.Start.Seconds(),
				Duration: s.Duration.Seconds(),
			}
		}
	}
	if r.scene != nil {
		pegs := r.scene.Pegs()
		disks := r.scene.Disks()
		if tl != nil {
			for i := range disks {
				if i < len(tl.Initial) {
					disks[i].Position = tl.Initial[i]
				}
			}
		}
		out.Scene = &jsonScene{Board: r.scene.Board(), Pegs: pegs[:], Disks: disks}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
