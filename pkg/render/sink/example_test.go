package sink_test

import (
	"fmt"

	"github.com/matzehuels/hanoitower/pkg/render/sink"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

func ExampleToDOT() {
	fmt.Print(sink.ToDOT(solver.CallTree(2), sink.DOTOptions{}))
	// Output:
	// digraph G {
	//   rankdir=TB;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.15,0.05"];
	//   ranksep=0.4;
	//   nodesep=0.2;
	//
	//   "m1" [label="hanoi(2, 0 → 2)"];
	//   "m0" [label="hanoi(1, 0 → 1)", fillcolor=lightgrey];
	//   "m2" [label="hanoi(1, 1 → 2)", fillcolor=lightgrey];
	//
	//   "m1" -> "m0";
	//   "m1" -> "m2";
	// }
}
