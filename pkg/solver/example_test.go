package solver_test

import (
	"fmt"

	"github.com/matzehuels/hanoitower/pkg/solver"
)

func ExampleSolve() {
	moves, err := solver.Solve(2)
	if err != nil {
		panic(err)
	}
	for _, m := range moves {
		fmt.Println(m)
	}
	// Output:
	// disk 0 -> peg 1 (on 0)
	// disk 1 -> peg 2 (on 0)
	// disk 0 -> peg 2 (on 1)
}

func ExampleReplay() {
	moves, _ := solver.Solve(3)
	pegs, err := solver.Replay(3, moves)
	if err != nil {
		panic(err)
	}
	fmt.Println("destination:", pegs[solver.Destination])
	// Output:
	// destination: [2 1 0]
}

func ExampleCallTree() {
	solver.CallTree(2).Walk(func(c *solver.Call, depth int) bool {
		fmt.Printf("%*shanoi(%d, %d, %d, %d) -> move %d\n", depth*2, "", c.Disks, c.From, c.Using, c.To, c.MoveIndex)
		return true
	})
	// Output:
	// hanoi(2, 0, 1, 2) -> move 1
	//   hanoi(1, 0, 2, 1) -> move 0
	//   hanoi(1, 1, 0, 2) -> move 2
}
