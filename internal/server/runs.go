package server

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/geom"
	"github.com/matzehuels/hanoitower/pkg/realtime"
	"github.com/matzehuels/hanoitower/pkg/scene"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// run is one live playback.
type run struct {
	ID      string
	Disks   int
	Speed   float64
	Created time.Time

	scene  *scene.Scene
	clock  *animation.Clock
	player *animation.Player
	hub    *realtime.Broadcaster
	cancel context.CancelFunc
}

// runStatus is the JSON view of a run.
type runStatus struct {
	ID        string      `json:"id"`
	Disks     int         `json:"disks"`
	Speed     float64     `json:"speed"`
	State     string      `json:"state"`
	Cursor    int         `json:"cursor"`
	Total     int         `json:"total"`
	Created   time.Time   `json:"created"`
	Positions []geom.Vec3 `json:"positions"`
}

// moveEvent is the data of a "move" server-sent event.
type moveEvent struct {
	Index    int         `json:"index"`
	Total    int         `json:"total"`
	Move     solver.Move `json:"move"`
	Duration float64     `json:"duration"`
}

func (r *run) status() runStatus {
	state, cursor := r.player.State()
	return runStatus{
		ID:        r.ID,
		Disks:     r.Disks,
		Speed:     r.Speed,
		State:     state.String(),
		Cursor:    cursor,
		Total:     r.player.Len(),
		Created:   r.Created,
		Positions: r.clock.Sample(),
	}
}

// newRun builds a scene and wall-clock player for moves and starts it. The
// run outlives the request that created it, so it gets its own context.
func newRun(disks int, moves solver.MoveList, cfg scene.Config, base time.Duration, speed float64, logger *log.Logger) (*run, error) {
	sc, err := scene.Build(disks, cfg)
	if err != nil {
		return nil, err
	}

	r := &run{
		ID:      uuid.NewString(),
		Disks:   disks,
		Speed:   speed,
		Created: time.Now().UTC(),
		scene:   sc,
		clock:   animation.NewClock(sc, speed),
		hub:     realtime.NewBroadcaster(),
	}

	player, err := animation.NewPlayer(moves, sc, r.clock,
		animation.WithBaseDuration(base),
		animation.WithLogger(logger.With("run", r.ID)),
		animation.WithObserver(r.publish))
	if err != nil {
		return nil, err
	}
	r.player = player

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	if err := player.Start(ctx); err != nil {
		cancel()
		return nil, err
	}
	go func() {
		<-player.Done()
		r.clock.Stop()
		r.hub.Close()
	}()
	return r, nil
}

// publish forwards player events to stream subscribers.
func (r *run) publish(e animation.Event) {
	var data []byte
	switch e.Kind {
	case animation.EventMove:
		data, _ = json.Marshal(moveEvent{
			Index:    e.Index,
			Total:    e.Total,
			Move:     e.Move,
			Duration: e.Sequence.Total().Seconds() / r.Speed,
		})
	default:
		data, _ = json.Marshal(map[string]int{"index": e.Index, "total": e.Total})
	}
	r.hub.Publish(string(e.Kind), string(data))
}

func (r *run) stop() {
	r.cancel()
}

// runStore holds live runs by ID.
type runStore struct {
	mu   sync.RWMutex
	max  int
	runs map[string]*run
}

func newRunStore(max int) *runStore {
	return &runStore{max: max, runs: make(map[string]*run)}
}

// add stores r, evicting finished runs when the store is full.
func (s *runStore) add(r *run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.runs) >= s.max {
		for id, old := range s.runs {
			if state, _ := old.player.State(); state == animation.Finished || state == animation.Cancelled {
				delete(s.runs, id)
			}
		}
	}
	if len(s.runs) >= s.max {
		return errors.New(errors.ErrCodeUnavailable, "too many live runs (max %d)", s.max)
	}
	s.runs[r.ID] = r
	return nil
}

func (s *runStore) get(id string) (*run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "run %q not found", id)
	}
	return r, nil
}

func (s *runStore) remove(id string) (*run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "run %q not found", id)
	}
	delete(s.runs, id)
	return r, nil
}

// list returns runs oldest first.
func (s *runStore) list() []*run {
	s.mu.RLock()
	out := make([]*run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out
}

func (s *runStore) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.runs {
		r.stop()
		delete(s.runs, id)
	}
}
