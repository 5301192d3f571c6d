package solver

import (
	"github.com/matzehuels/hanoitower/pkg/errors"
)

// Replay plays moves against a fresh n-disk peg model and returns the final
// peg layout. It fails with ErrCodeInvalidMove on the first move that
// addresses an unknown disk or peg, picks up a disk that is not on top of a
// peg, places a disk on a smaller one, or whose DestinationDiskCount does not
// match the destination peg.
//
// Replay never panics, so it is safe to run against untrusted lists.
func Replay(n int, moves MoveList) (Pegs, error) {
	if n < 0 {
		return Pegs{}, errors.New(errors.ErrCodeInvalidConfiguration, "number of disks must be >= 0, got %d", n)
	}
	pegs := newPegs(n)

	for i, m := range moves {
		if m.DiskIndex < 0 || m.DiskIndex >= n {
			return Pegs{}, errors.New(errors.ErrCodeInvalidMove, "move %d: unknown disk %d", i, m.DiskIndex)
		}
		if m.DestinationPegIndex < 0 || m.DestinationPegIndex >= PegCount {
			return Pegs{}, errors.New(errors.ErrCodeInvalidMove, "move %d: unknown peg %d", i, m.DestinationPegIndex)
		}

		from := -1
		for p := range pegs {
			if top, ok := pegs[p].top(); ok && top == m.DiskIndex {
				from = p
				break
			}
		}
		if from < 0 {
			return Pegs{}, errors.New(errors.ErrCodeInvalidMove, "move %d: disk %d is not on top of any peg", i, m.DiskIndex)
		}
		if from == m.DestinationPegIndex {
			return Pegs{}, errors.New(errors.ErrCodeInvalidMove, "move %d: disk %d already on peg %d", i, m.DiskIndex, from)
		}

		to := &pegs[m.DestinationPegIndex]
		if top, ok := to.top(); ok && top < m.DiskIndex {
			return Pegs{}, errors.New(errors.ErrCodeInvalidMove, "move %d: disk %d placed on smaller disk %d", i, m.DiskIndex, top)
		}
		if len(*to) != m.DestinationDiskCount {
			return Pegs{}, errors.New(errors.ErrCodeInvalidMove, "move %d: destination count %d, peg %d holds %d",
				i, m.DestinationDiskCount, m.DestinationPegIndex, len(*to))
		}

		to.push(pegs[from].pop(from))
	}
	return snapshot(pegs), nil
}

// Verify replays moves and additionally checks that the list is complete:
// it has 2^n-1 moves and ends with every disk on the destination peg in the
// original order.
func Verify(n int, moves MoveList) error {
	if len(moves) != ExpectedMoves(n) {
		return errors.New(errors.ErrCodeInvalidMove, "got %d moves for %d disks, want %d", len(moves), n, ExpectedMoves(n))
	}
	final, err := Replay(n, moves)
	if err != nil {
		return err
	}
	want := InitialPegs(n)[Source]
	got := final[Destination]
	if len(got) != len(want) {
		return errors.New(errors.ErrCodeInvalidMove, "destination holds %d disks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return errors.New(errors.ErrCodeInvalidMove, "destination position %d holds disk %d, want %d", i, got[i], want[i])
		}
	}
	return nil
}
