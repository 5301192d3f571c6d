package animation

import (
	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/geom"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// Spatial is the scene as the animation driver sees it. Disk and peg indices
// are the solver's identifiers: disk i is the solver's disk i, so the scene
// must size disks by identifier the same way the solver orders them.
//
// *scene.Scene implements Spatial.
type Spatial interface {
	DiskCount() int
	PegCount() int
	DiskPosition(i int) geom.Vec3
	SetDiskPosition(i int, p geom.Vec3)
	PegPosition(i int) geom.Vec3
	PegHeight() float64
	DiskHeight() float64
	BoardHeight() float64
}

func checkMove(i int, m solver.Move, s Spatial) error {
	if m.DiskIndex < 0 || m.DiskIndex >= s.DiskCount() {
		return errors.New(errors.ErrCodeIndexOutOfRange,
			"move %d: disk %d outside scene with %d disks", i, m.DiskIndex, s.DiskCount())
	}
	if m.DestinationPegIndex < 0 || m.DestinationPegIndex >= s.PegCount() {
		return errors.New(errors.ErrCodeIndexOutOfRange,
			"move %d: peg %d outside scene with %d pegs", i, m.DestinationPegIndex, s.PegCount())
	}
	return nil
}

// Validate checks that every move addresses a disk and peg the scene has.
func Validate(moves solver.MoveList, s Spatial) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "nil spatial model")
	}
	if s.PegCount() < 1 {
		return errors.New(errors.ErrCodeIndexOutOfRange, "scene has no pegs")
	}
	for i, m := range moves {
		if err := checkMove(i, m, s); err != nil {
			return err
		}
	}
	return nil
}
