package animation

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// Animator runs a sequence on the rendering substrate. It must return
// promptly and call done exactly once when the disk has reached
// seq.Final(). done may be called from any goroutine, including synchronously
// from Animate.
type Animator interface {
	Animate(seq Sequence, done func())
}

// AnimatorFunc adapts a function to the Animator interface.
type AnimatorFunc func(seq Sequence, done func())

// Animate calls f(seq, done).
func (f AnimatorFunc) Animate(seq Sequence, done func()) { f(seq, done) }

// State is the playback state.
type State int

const (
	NotStarted State = iota
	Playing
	Finished
	Cancelled
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// EventKind identifies a playback event.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventMove      EventKind = "move"
	EventFinished  EventKind = "finished"
	EventCancelled EventKind = "cancelled"
)

// Event reports playback progress to observers. For EventMove, Index is the
// move that just completed and Sequence its motion.
type Event struct {
	Kind     EventKind
	Index    int
	Total    int
	Move     solver.Move
	Sequence Sequence
	Err      error
}

// Option configures a Player.
type Option func(*Player)

// WithBaseDuration sets how long one reference length of travel takes.
func WithBaseDuration(d time.Duration) Option {
	return func(p *Player) { p.base = d }
}

// WithObserver registers fn to receive every playback event. Observers run on
// the player's goroutine and must not block for long.
func WithObserver(fn func(Event)) Option {
	return func(p *Player) { p.observers = append(p.observers, fn) }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// Player plays a move list through an Animator, one move at a time.
type Player struct {
	moves     solver.MoveList
	spatial   Spatial
	animator  Animator
	base      time.Duration
	observers []func(Event)
	logger    *log.Logger

	mu      sync.Mutex
	state   State
	cursor  int
	err     error
	started bool
	done    chan struct{}
}

// NewPlayer validates moves against the spatial model and returns a player in
// the NotStarted state. Moves that address missing disks or pegs fail with
// ErrCodeIndexOutOfRange.
func NewPlayer(moves solver.MoveList, s Spatial, a Animator, opts ...Option) (*Player, error) {
	if a == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "nil animator")
	}
	if err := Validate(moves, s); err != nil {
		return nil, err
	}

	p := &Player{
		moves:    moves,
		spatial:  s,
		animator: a,
		base:     BaseDuration,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return p, nil
}

// Start begins playback and returns immediately. Cancelling ctx stops the
// player from issuing further moves; the sequence in flight is abandoned.
// A player can be started once.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return errors.New(errors.ErrCodeInvalidInput, "player already started")
	}
	p.started = true
	p.state = Playing
	p.cursor = 0
	p.mu.Unlock()

	go p.run(ctx)
	return nil
}

// Wait blocks until playback ends or ctx is done. It returns nil when every
// move played, and the cancellation cause when playback was cancelled.
func (p *Player) Wait(ctx context.Context) error {
	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Play starts playback and waits for it to end.
func (p *Player) Play(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	return p.Wait(ctx)
}

// Done is closed when playback has finished or been cancelled.
func (p *Player) Done() <-chan struct{} { return p.done }

// State returns the current state and move cursor. While Playing the cursor is
// the index of the move in flight; once Finished it equals the move count.
func (p *Player) State() (State, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.cursor
}

// Len returns the number of moves.
func (p *Player) Len() int { return len(p.moves) }

func (p *Player) run(ctx context.Context) {
	defer close(p.done)

	total := len(p.moves)
	p.emit(Event{Kind: EventStarted, Total: total})

	for i, m := range p.moves {
		if err := ctx.Err(); err != nil {
			p.cancel(i, err)
			return
		}
		p.advance(i)

		seq, err := ForMove(i, m, p.spatial, p.base)
		if err != nil {
			// Validate ran in NewPlayer, so only a scene that shrank since
			// can get here.
			p.cancel(i, err)
			return
		}

		completed := make(chan struct{})
		var once sync.Once
		p.animator.Animate(seq, func() { once.Do(func() { close(completed) }) })

		select {
		case <-completed:
		case <-ctx.Done():
			p.cancel(i, ctx.Err())
			return
		}

		p.logger.Debug("move complete", "index", i, "disk", m.DiskIndex, "peg", m.DestinationPegIndex, "duration", seq.Total())
		p.emit(Event{Kind: EventMove, Index: i, Total: total, Move: m, Sequence: seq})
	}

	p.mu.Lock()
	p.state = Finished
	p.cursor = total
	p.mu.Unlock()
	p.emit(Event{Kind: EventFinished, Index: total, Total: total})
}

func (p *Player) advance(i int) {
	p.mu.Lock()
	p.cursor = i
	p.mu.Unlock()
}

func (p *Player) cancel(i int, cause error) {
	p.mu.Lock()
	p.state = Cancelled
	p.cursor = i
	p.err = cause
	p.mu.Unlock()
	p.logger.Debug("playback cancelled", "index", i, "err", cause)
	p.emit(Event{Kind: EventCancelled, Index: i, Total: len(p.moves), Err: cause})
}

func (p *Player) emit(e Event) {
	for _, fn := range p.observers {
		fn(e)
	}
}
