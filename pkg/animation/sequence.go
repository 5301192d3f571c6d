package animation

import (
	"time"

	"github.com/matzehuels/hanoitower/pkg/geom"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// Phase names one of the three motions of a move.
type Phase string

const (
	PhaseLift     Phase = "lift"
	PhaseTraverse Phase = "traverse"
	PhaseDescend  Phase = "descend"
)

// Step moves a disk in a straight line from From to To over Duration.
type Step struct {
	Phase    Phase
	From     geom.Vec3
	To       geom.Vec3
	Duration time.Duration
}

// Sequence is the ordered motion for one move.
type Sequence struct {
	Index int // position of the move in its MoveList
	Move  solver.Move
	Disk  int
	Steps []Step
}

// Total returns the summed duration of all steps.
func (s Sequence) Total() time.Duration {
	var d time.Duration
	for _, st := range s.Steps {
		d += st.Duration
	}
	return d
}

// Final returns where the disk rests once the sequence completes.
func (s Sequence) Final() geom.Vec3 {
	return s.Steps[len(s.Steps)-1].To
}

// PositionAt returns the disk position elapsed into the sequence.
func (s Sequence) PositionAt(elapsed time.Duration) geom.Vec3 {
	for _, st := range s.Steps {
		if elapsed < st.Duration {
			return geom.Lerp(st.From, st.To, float64(elapsed)/float64(st.Duration))
		}
		elapsed -= st.Duration
	}
	return s.Final()
}

// ForMove builds the lift, traverse and descend steps for move index i,
// starting from the disk's current position in s. base is the duration of one
// reference length; zero or negative means [BaseDuration].
func ForMove(i int, m solver.Move, s Spatial, base time.Duration) (Sequence, error) {
	if err := checkMove(i, m, s); err != nil {
		return Sequence{}, err
	}
	if base <= 0 {
		base = BaseDuration
	}

	ref := ReferenceLength(s)
	start := s.DiskPosition(m.DiskIndex)
	top := start.WithY(ClearanceHeight(s))
	side := s.PegPosition(m.DestinationPegIndex).WithY(top.Y)
	bottom := side.WithY(LandingHeight(s, m.DestinationDiskCount))

	step := func(p Phase, from, to geom.Vec3) Step {
		return Step{Phase: p, From: from, To: to, Duration: NormalizeDuration(from, to, ref, base)}
	}

	return Sequence{
		Index: i,
		Move:  m,
		Disk:  m.DiskIndex,
		Steps: []Step{
			step(PhaseLift, start, top),
			step(PhaseTraverse, top, side),
			step(PhaseDescend, side, bottom),
		},
	}, nil
}
