package animation

import (
	"sync"
	"time"

	"github.com/matzehuels/hanoitower/pkg/geom"
)

// Clock is an Animator that runs sequences in wall-clock time. Disk
// positions are written to the scene when a sequence completes; in between,
// Sample interpolates so a renderer can draw smooth motion.
type Clock struct {
	spatial Spatial
	speed   float64
	now     func() time.Time

	mu     sync.Mutex
	active map[int]running
	timers map[*time.Timer]struct{}
}

type running struct {
	seq   Sequence
	start time.Time
}

// NewClock returns a wall-clock animator. speed scales playback: 2 plays
// twice as fast. Non-positive speeds mean 1.
func NewClock(s Spatial, speed float64) *Clock {
	if speed <= 0 {
		speed = 1
	}
	return &Clock{
		spatial: s,
		speed:   speed,
		now:     time.Now,
		active:  make(map[int]running),
		timers:  make(map[*time.Timer]struct{}),
	}
}

// Speed returns the playback speed multiplier.
func (c *Clock) Speed() float64 { return c.speed }

// Animate schedules seq and calls done from a timer goroutine once it has
// run for its scaled duration.
func (c *Clock) Animate(seq Sequence, done func()) {
	wall := time.Duration(float64(seq.Total()) / c.speed)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[seq.Disk] = running{seq: seq, start: c.now()}

	var t *time.Timer
	t = time.AfterFunc(wall, func() {
		c.spatial.SetDiskPosition(seq.Disk, seq.Final())
		c.mu.Lock()
		delete(c.active, seq.Disk)
		delete(c.timers, t)
		c.mu.Unlock()
		done()
	})
	c.timers[t] = struct{}{}
}

// Sample returns every disk's position right now.
func (c *Clock) Sample() []geom.Vec3 {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	pos := make([]geom.Vec3, c.spatial.DiskCount())
	for i := range pos {
		if r, ok := c.active[i]; ok {
			elapsed := time.Duration(float64(now.Sub(r.start)) * c.speed)
			pos[i] = r.seq.PositionAt(elapsed)
			continue
		}
		pos[i] = c.spatial.DiskPosition(i)
	}
	return pos
}

// Busy reports whether a sequence is in flight.
func (c *Clock) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active) > 0
}

// Stop cancels pending completions. Sequences in flight never complete and
// their disks stay where they were when the sequence started.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for t := range c.timers {
		t.Stop()
	}
	c.timers = make(map[*time.Timer]struct{})
	c.active = make(map[int]running)
}
