// Package scene builds the spatial model of the puzzle: a board, three pegs
// and a stack of disks, all positioned in a Y-up scene space.
//
// The numbers follow the classic 3D demo: the board is centred at the origin,
// pegs stand 2·DiskRadius apart, and pegs are tall enough for every disk plus
// three spare slots. Disk identifiers match pkg/solver: identifier 0 is the
// smallest disk and starts on top of peg 0, identifier n-1 is the largest and
// starts at the bottom.
//
// A [Scene] is the spatial model the animation driver reads. Peg positions
// are fixed; disk positions are mutable and are written by animators as moves
// play out:
//
//	s, err := scene.Build(4, scene.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	top := s.DiskPosition(0)
package scene
