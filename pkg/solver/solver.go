package solver

import (
	"fmt"

	"github.com/matzehuels/hanoitower/pkg/errors"
)

// MaxDisks bounds the disk count accepted by [New]. A solution has 2^n-1
// moves, so anything larger would not fit in memory comfortably.
const MaxDisks = 24

// Move is a single relocation of the topmost disk of one peg onto another.
// Moves are values and are never mutated after the solver creates them.
type Move struct {
	// DiskIndex identifies the disk that moves.
	DiskIndex int `json:"disk"`
	// DestinationPegIndex is the peg the disk lands on (0, 1 or 2).
	DestinationPegIndex int `json:"to_peg"`
	// DestinationDiskCount is the number of disks already on the destination
	// peg before this move lands.
	DestinationDiskCount int `json:"to_count"`
}

func (m Move) String() string {
	return fmt.Sprintf("disk %d -> peg %d (on %d)", m.DiskIndex, m.DestinationPegIndex, m.DestinationDiskCount)
}

// MoveList is the complete ordered solution for a disk count.
type MoveList []Move

// ExpectedMoves returns 2^n - 1, the length of every solution for n disks.
func ExpectedMoves(n int) int {
	if n <= 0 {
		return 0
	}
	return 1<<n - 1
}

// Solver computes Towers of Hanoi solutions for a fixed disk count.
//
// Peg state lives only for the duration of [Solver.ComputeMove]; the
// resulting MoveList is kept and returned by [Solver.Moves].
type Solver struct {
	numberOfDisks int
	pegs          [PegCount]peg
	moves         MoveList
}

// New creates a solver for numberOfDisks disks. Negative counts and counts
// above [MaxDisks] are rejected with ErrCodeInvalidConfiguration. Zero disks is
// valid and yields an empty solution.
func New(numberOfDisks int) (*Solver, error) {
	if numberOfDisks < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration,
			"number of disks must be >= 0, got %d", numberOfDisks)
	}
	if numberOfDisks > MaxDisks {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration,
			"number of disks must be <= %d, got %d", MaxDisks, numberOfDisks)
	}
	return &Solver{numberOfDisks: numberOfDisks}, nil
}

// Solve is a shortcut for New(n) followed by ComputeMove.
func Solve(numberOfDisks int) (MoveList, error) {
	s, err := New(numberOfDisks)
	if err != nil {
		return nil, err
	}
	return s.ComputeMove(), nil
}

// NumberOfDisks returns the disk count the solver was created with.
func (s *Solver) NumberOfDisks() int { return s.numberOfDisks }

// Moves returns the list produced by the last ComputeMove call, or nil if it
// has not run yet.
func (s *Solver) Moves() MoveList { return s.moves }

// ComputeMove resets the pegs and recomputes the solution from scratch.
// Calling it again returns an identical list.
func (s *Solver) ComputeMove() MoveList {
	s.pegs = newPegs(s.numberOfDisks)
	s.moves = make(MoveList, 0, ExpectedMoves(s.numberOfDisks))

	if s.numberOfDisks > 0 {
		s.hanoi(s.numberOfDisks, Source, Auxiliary, Destination)
	}

	errors.Invariant(len(s.moves) == ExpectedMoves(s.numberOfDisks),
		"solution for %d disks has %d moves, want %d", s.numberOfDisks, len(s.moves), ExpectedMoves(s.numberOfDisks))

	moves := s.moves
	s.pegs = [PegCount]peg{}
	return moves
}

func (s *Solver) hanoi(n, from, using, to int) {
	if n == 1 {
		s.move(from, to)
		return
	}
	s.hanoi(n-1, from, to, using)
	s.move(from, to)
	s.hanoi(n-1, using, from, to)
}

func (s *Solver) move(from, to int) {
	disk := s.pegs[from].pop(from)
	count := len(s.pegs[to])
	s.pegs[to].push(disk)

	s.moves = append(s.moves, Move{
		DiskIndex:            disk,
		DestinationPegIndex:  to,
		DestinationDiskCount: count,
	})
}
