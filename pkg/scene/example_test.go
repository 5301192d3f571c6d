package scene_test

import (
	"fmt"

	"github.com/matzehuels/hanoitower/pkg/scene"
)

func ExampleBuild() {
	s, err := scene.Build(3, scene.DefaultConfig())
	if err != nil {
		panic(err)
	}
	for _, p := range s.Pegs() {
		fmt.Printf("peg %d at x=%.1f\n", p.Index, p.Position.X)
	}
	for _, d := range s.Disks() {
		fmt.Printf("disk %d radius %.1f y=%.1f\n", d.Index, d.Radius, d.Position.Y)
	}
	// Output:
	// peg 0 at x=-2.0
	// peg 1 at x=0.0
	// peg 2 at x=2.0
	// disk 0 radius 0.8 y=0.6
	// disk 1 radius 0.9 y=0.4
	// disk 2 radius 1.0 y=0.2
}
