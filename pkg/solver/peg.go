package solver

import (
	"github.com/matzehuels/hanoitower/pkg/errors"
)

// PegCount is the number of pegs in the puzzle.
const PegCount = 3

// Peg indices.
const (
	Source      = 0
	Auxiliary   = 1
	Destination = 2
)

// peg is a stack of disk identifiers. The last element is the topmost disk.
type peg []int

func (p *peg) push(disk int) {
	*p = append(*p, disk)
}

// pop removes the topmost disk. Popping an empty peg means the recursion is
// broken and panics.
func (p *peg) pop(index int) int {
	n := len(*p)
	errors.Invariant(n > 0, "pop from empty peg %d", index)
	disk := (*p)[n-1]
	*p = (*p)[:n-1]
	return disk
}

func (p peg) top() (int, bool) {
	if len(p) == 0 {
		return 0, false
	}
	return p[len(p)-1], true
}

// Pegs is a snapshot of the three peg stacks. Each slice lists disk
// identifiers bottom to top.
type Pegs [PegCount][]int

// newPegs returns the initial state for n disks: peg 0 holds n-1..0 bottom to
// top, pegs 1 and 2 are empty.
func newPegs(n int) [PegCount]peg {
	var pegs [PegCount]peg
	pegs[Source] = make(peg, 0, n)
	for disk := n - 1; disk >= 0; disk-- {
		pegs[Source].push(disk)
	}
	return pegs
}

// InitialPegs returns the starting peg layout for n disks.
func InitialPegs(n int) Pegs {
	return snapshot(newPegs(n))
}

func snapshot(pegs [PegCount]peg) Pegs {
	var out Pegs
	for i, p := range pegs {
		out[i] = append([]int(nil), p...)
	}
	return out
}
