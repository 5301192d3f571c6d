package scene

import (
	"math"
	"sync"
	"testing"

	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/geom"
)

const eps = 1e-9

func TestBuildDefaultGeometry(t *testing.T) {
	s, err := Build(4, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	b := s.Board()
	if math.Abs(b.Width-6.8) > eps || math.Abs(b.Length-2.8) > eps || math.Abs(b.Height-0.2) > eps {
		t.Errorf("Board() = %+v, want 6.8 x 2.8 x 0.2", b)
	}

	if math.Abs(s.PegHeight()-1.4) > eps {
		t.Errorf("PegHeight() = %v, want 1.4", s.PegHeight())
	}

	wantX := []float64{-2, 0, 2}
	for i, p := range s.Pegs() {
		want := geom.V(wantX[i], 0.8, 0)
		if !geom.ApproxEqual(p.Position, want, eps) {
			t.Errorf("peg %d at %v, want %v", i, p.Position, want)
		}
		if math.Abs(p.Top()-1.5) > eps {
			t.Errorf("peg %d top = %v, want 1.5", i, p.Top())
		}
	}
}

func TestBuildDiskStack(t *testing.T) {
	s, err := Build(4, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if s.DiskCount() != 4 {
		t.Fatalf("DiskCount() = %d, want 4", s.DiskCount())
	}

	// Identifier 3 is the largest disk at the bottom, identifier 0 on top.
	wantY := []float64{0.8, 0.6, 0.4, 0.2}
	wantR := []float64{0.7, 0.8, 0.9, 1.0}
	for i, d := range s.Disks() {
		if d.Index != i {
			t.Errorf("disk %d has Index %d", i, d.Index)
		}
		if !geom.ApproxEqual(d.Position, geom.V(-2, wantY[i], 0), eps) {
			t.Errorf("disk %d at %v, want y=%v on peg 0", i, d.Position, wantY[i])
		}
		if math.Abs(d.Radius-wantR[i]) > eps {
			t.Errorf("disk %d radius = %v, want %v", i, d.Radius, wantR[i])
		}
		if len(d.Color) != 7 || d.Color[0] != '#' {
			t.Errorf("disk %d color = %q, want #rrggbb", i, d.Color)
		}
	}
	if s.Disks()[3].Color != "#ff0000" {
		t.Errorf("largest disk color = %q, want #ff0000 (hue 0)", s.Disks()[3].Color)
	}
}

func TestBuildShrinksRadiusStep(t *testing.T) {
	const n = 12
	s, err := Build(n, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	disks := s.Disks()
	for i := 1; i < n; i++ {
		if disks[i].Radius <= disks[i-1].Radius {
			t.Errorf("disk %d radius %v not larger than disk %d radius %v", i, disks[i].Radius, i-1, disks[i-1].Radius)
		}
	}
	if disks[0].Radius <= DefaultConfig().PegRadius {
		t.Errorf("smallest radius %v not wider than peg", disks[0].Radius)
	}
}

func TestBuildErrors(t *testing.T) {
	bad := DefaultConfig()
	bad.PegRadius = 2

	tests := []struct {
		name string
		n    int
		cfg  Config
	}{
		{"negative disks", -1, DefaultConfig()},
		{"zero disk height", 3, Config{DiskRadius: 1, PegRadius: 0.1, BoardHeight: 0.2}},
		{"peg wider than disk", 3, bad},
		{"negative step", 3, Config{DiskHeight: 0.2, DiskRadius: 1, RadiusStep: -1, PegRadius: 0.1, BoardHeight: 0.2}},
		{"zero board", 3, Config{DiskHeight: 0.2, DiskRadius: 1, PegRadius: 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.n, tt.cfg)
			if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
				t.Errorf("Build() error = %v, want INVALID_CONFIGURATION", err)
			}
		})
	}
}

func TestBuildZeroDisks(t *testing.T) {
	s, err := Build(0, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if s.DiskCount() != 0 {
		t.Errorf("DiskCount() = %d, want 0", s.DiskCount())
	}
	if math.Abs(s.PegHeight()-0.6) > eps {
		t.Errorf("PegHeight() = %v, want 0.6", s.PegHeight())
	}
}

func TestSetDiskPositionAndReset(t *testing.T) {
	s, _ := Build(3, DefaultConfig())
	start := s.DiskPosition(0)

	p := geom.V(2, 1, 0)
	s.SetDiskPosition(0, p)
	if s.DiskPosition(0) != p {
		t.Errorf("DiskPosition() = %v, want %v", s.DiskPosition(0), p)
	}
	if s.InitialPosition(0) != start {
		t.Errorf("InitialPosition() changed to %v", s.InitialPosition(0))
	}

	s.Reset()
	if s.DiskPosition(0) != start {
		t.Errorf("after Reset DiskPosition() = %v, want %v", s.DiskPosition(0), start)
	}
}

func TestConcurrentPositionAccess(t *testing.T) {
	s, _ := Build(5, DefaultConfig())
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.SetDiskPosition(w, geom.V(float64(i), 0, 0))
				_ = s.Disks()
			}
		}(w)
	}
	wg.Wait()
}

func TestBounds(t *testing.T) {
	s, _ := Build(4, DefaultConfig())
	minX, maxX, minY, maxY := s.Bounds()
	if math.Abs(minX+3.4) > eps || math.Abs(maxX-3.4) > eps {
		t.Errorf("x bounds = [%v, %v], want [-3.4, 3.4]", minX, maxX)
	}
	if math.Abs(minY+0.1) > eps {
		t.Errorf("minY = %v, want -0.1", minY)
	}
	// peg top 1.5 + four disks 0.8 + one disk of headroom
	if math.Abs(maxY-2.5) > eps {
		t.Errorf("maxY = %v, want 2.5", maxY)
	}
}
