package animation

import (
	"sync"
	"time"

	"github.com/matzehuels/hanoitower/pkg/geom"
)

// Segment is one step of one move placed on a timeline.
type Segment struct {
	Move     int
	Disk     int
	Phase    Phase
	From     geom.Vec3
	To       geom.Vec3
	Start    time.Duration
	Duration time.Duration
}

// End returns Start + Duration.
func (s Segment) End() time.Duration { return s.Start + s.Duration }

// Timeline is a complete playback laid out on a virtual clock. Segments are
// back to back and in playback order.
type Timeline struct {
	Initial  []geom.Vec3
	Segments []Segment
}

// Total returns the length of the playback.
func (t *Timeline) Total() time.Duration {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End()
}

// Sample returns every disk's position at time at.
func (t *Timeline) Sample(at time.Duration) []geom.Vec3 {
	pos := append([]geom.Vec3(nil), t.Initial...)
	for _, s := range t.Segments {
		if at >= s.End() {
			pos[s.Disk] = s.To
			continue
		}
		if at > s.Start {
			pos[s.Disk] = geom.Lerp(s.From, s.To, float64(at-s.Start)/float64(s.Duration))
		}
		break
	}
	return pos
}

// Keyframe is a disk position at a point in time.
type Keyframe struct {
	At       time.Duration
	Position geom.Vec3
}

// Keyframes returns the waypoints of one disk: its initial position at 0,
// then the start and end of each of its segments. Linear interpolation
// between consecutive keyframes reproduces Sample.
func (t *Timeline) Keyframes(disk int) []Keyframe {
	frames := []Keyframe{{At: 0, Position: t.Initial[disk]}}
	for _, s := range t.Segments {
		if s.Disk != disk {
			continue
		}
		last := frames[len(frames)-1]
		if last.At != s.Start || last.Position != s.From {
			frames = append(frames, Keyframe{At: s.Start, Position: s.From})
		}
		frames = append(frames, Keyframe{At: s.End(), Position: s.To})
	}
	return frames
}

// Recorder is an Animator on a virtual clock. Each sequence completes
// instantly: the disk jumps to its final position, the steps are appended to
// the timeline, and done is called before Animate returns.
type Recorder struct {
	spatial Spatial

	mu       sync.Mutex
	clock    time.Duration
	timeline Timeline
}

// NewRecorder starts a timeline at the scene's current disk positions.
func NewRecorder(s Spatial) *Recorder {
	initial := make([]geom.Vec3, s.DiskCount())
	for i := range initial {
		initial[i] = s.DiskPosition(i)
	}
	return &Recorder{spatial: s, timeline: Timeline{Initial: initial}}
}

// Animate records seq and completes it immediately.
func (r *Recorder) Animate(seq Sequence, done func()) {
	r.mu.Lock()
	for _, st := range seq.Steps {
		r.timeline.Segments = append(r.timeline.Segments, Segment{
			Move:     seq.Index,
			Disk:     seq.Disk,
			Phase:    st.Phase,
			From:     st.From,
			To:       st.To,
			Start:    r.clock,
			Duration: st.Duration,
		})
		r.clock += st.Duration
	}
	r.mu.Unlock()

	r.spatial.SetDiskPosition(seq.Disk, seq.Final())
	done()
}

// Timeline returns a copy of everything recorded so far.
func (r *Recorder) Timeline() *Timeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Timeline{
		Initial:  append([]geom.Vec3(nil), r.timeline.Initial...),
		Segments: append([]Segment(nil), r.timeline.Segments...),
	}
}
