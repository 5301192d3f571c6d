// Package solver generates the move sequence that solves the Towers of Hanoi.
//
// The solver is a pure, deterministic computation: given a disk count it
// produces the classic recursive solution as an ordered [MoveList] that
// transfers every disk from peg 0 (source) to peg 2 (destination) using peg 1
// as auxiliary. It has no dependency on rendering.
//
// # Disk Identifiers
//
// Disks are identified by integers 0..n-1 and the identifier doubles as a
// size key: identifier 0 is the smallest disk and n-1 the largest. Peg 0
// initially holds, bottom to top, n-1, n-2, ..., 0, so the first move always
// picks up disk 0. Spatial renderers must size disks by the same order (see
// pkg/scene).
//
// # Moves
//
// Every [Move] records the disk moved, the destination peg and the number of
// disks already on the destination before the move landed. The last field
// lets an animation compute the stacking height without re-querying peg
// state:
//
//	moves, err := solver.Solve(3)
//	if err != nil {
//	    return err
//	}
//	for _, m := range moves {
//	    fmt.Println(m) // disk 0 -> peg 2 (on 0)
//	}
//
// # Verification
//
// [Replay] plays a move list against a fresh peg model and reports the first
// illegal move, and [CallTree] exposes the recursion that produced a list so
// it can be visualized.
package solver
