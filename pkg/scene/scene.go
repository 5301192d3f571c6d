package scene

import (
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/geom"
)

// PegCount is the number of pegs on the board.
const PegCount = 3

// Board is the slab the pegs stand on. It is centred at the origin.
type Board struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// Peg is a fixed cylinder. Position is its centre.
type Peg struct {
	Index    int       `json:"index"`
	Position geom.Vec3 `json:"position"`
	Radius   float64   `json:"radius"`
	Height   float64   `json:"height"`
}

// Top returns the Y coordinate of the peg's upper end.
func (p Peg) Top() float64 { return p.Position.Y + p.Height/2 }

// Disk is a tube threaded on a peg. Position is its centre.
type Disk struct {
	Index    int       `json:"index"`
	Radius   float64   `json:"radius"`
	Hue      float64   `json:"hue"`
	Color    string    `json:"color"`
	Position geom.Vec3 `json:"position"`
}

// Scene is the spatial model for one puzzle. Peg geometry never changes after
// Build; disk positions are safe to read and write from several goroutines.
type Scene struct {
	cfg       Config
	board     Board
	pegHeight float64
	pegs      [PegCount]Peg

	mu      sync.RWMutex
	disks   []Disk
	initial []geom.Vec3
}

// Build lays out a board, three pegs and n disks stacked on peg 0.
func Build(n int, cfg Config) (*Scene, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "number of disks must be >= 0, got %d", n)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{cfg: cfg}
	s.buildBoard()
	s.buildPegs(n)
	s.buildDisks(n)
	return s, nil
}

func (s *Scene) buildBoard() {
	s.board = Board{
		Width:  s.cfg.DiskRadius*6 + s.cfg.BoardPadding,
		Length: s.cfg.DiskRadius*2 + s.cfg.BoardPadding,
		Height: s.cfg.BoardHeight,
	}
}

func (s *Scene) buildPegs(n int) {
	s.pegHeight = float64(n+3) * s.cfg.DiskHeight

	x := -s.board.Width/2 + s.cfg.BoardPadding/2 + s.cfg.DiskRadius
	for i := range s.pegs {
		s.pegs[i] = Peg{
			Index:    i,
			Position: geom.V(x, s.pegHeight/2+s.cfg.BoardHeight/2, 0),
			Radius:   s.cfg.PegRadius,
			Height:   s.pegHeight,
		}
		x += s.cfg.DiskRadius * 2
	}
}

// buildDisks stacks disks on peg 0, largest (identifier n-1) at the bottom.
func (s *Scene) buildDisks(n int) {
	step := s.cfg.effectiveStep(n)
	base := s.pegs[0].Position

	s.disks = make([]Disk, n)
	s.initial = make([]geom.Vec3, n)
	for id := 0; id < n; id++ {
		level := n - 1 - id
		hue := float64(level) / float64(n+1)
		pos := geom.V(base.X, s.cfg.BoardHeight/2+s.cfg.DiskHeight/2+float64(level)*s.cfg.DiskHeight, 0)

		s.disks[id] = Disk{
			Index:    id,
			Radius:   s.cfg.DiskRadius - step*float64(level),
			Hue:      hue,
			Color:    colorful.Hsv(hue*360, 1, 1).Hex(),
			Position: pos,
		}
		s.initial[id] = pos
	}
}

// Config returns the dimensions the scene was built with.
func (s *Scene) Config() Config { return s.cfg }

// Board returns the board geometry.
func (s *Scene) Board() Board { return s.board }

// Pegs returns the three pegs.
func (s *Scene) Pegs() [PegCount]Peg { return s.pegs }

// Disks returns a snapshot of every disk, indexed by identifier.
func (s *Scene) Disks() []Disk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Disk(nil), s.disks...)
}

// DiskCount returns the number of disks.
func (s *Scene) DiskCount() int { return len(s.disks) }

// PegCount returns the number of pegs.
func (s *Scene) PegCount() int { return PegCount }

// DiskPosition returns the current centre of disk i.
func (s *Scene) DiskPosition(i int) geom.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disks[i].Position
}

// SetDiskPosition moves disk i.
func (s *Scene) SetDiskPosition(i int, p geom.Vec3) {
	s.mu.Lock()
	s.disks[i].Position = p
	s.mu.Unlock()
}

// PegPosition returns the centre of peg i.
func (s *Scene) PegPosition(i int) geom.Vec3 { return s.pegs[i].Position }

// PegHeight returns the height shared by all pegs.
func (s *Scene) PegHeight() float64 { return s.pegHeight }

// DiskHeight returns the thickness of a disk.
func (s *Scene) DiskHeight() float64 { return s.cfg.DiskHeight }

// BoardHeight returns the thickness of the board.
func (s *Scene) BoardHeight() float64 { return s.cfg.BoardHeight }

// InitialPosition returns where disk i starts.
func (s *Scene) InitialPosition(i int) geom.Vec3 { return s.initial[i] }

// Reset puts every disk back on peg 0.
func (s *Scene) Reset() {
	s.mu.Lock()
	for i := range s.disks {
		s.disks[i].Position = s.initial[i]
	}
	s.mu.Unlock()
}

// Bounds returns the X and Y extent a side view must show to contain the
// board, the pegs and a disk lifted to clearance height above the pegs. The
// top is the upper edge of a lifted disk: peg top plus n+1 disk heights.
func (s *Scene) Bounds() (minX, maxX, minY, maxY float64) {
	minX, maxX = -s.board.Width/2, s.board.Width/2
	minY = -s.board.Height / 2
	maxY = s.pegs[0].Top() + s.cfg.DiskHeight*float64(len(s.disks)+1)
	return minX, maxX, minY, maxY
}
