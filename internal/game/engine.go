package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/termpong/internal/pong"
)

// Frame is everything that went into and came out of one step. Observers
// receive it by value.
type Frame struct {
	Seq      uint64          `json:"seq"`
	DT       float64         `json:"dt"`
	Input    pong.Input      `json:"input"`
	Bounds   pong.Bounds     `json:"bounds"`
	Result   pong.StepResult `json:"result"`
	Snapshot pong.Snapshot   `json:"snapshot"`
}

// Observer is notified after every step, on the engine's goroutine.
// Implementations must not block.
type Observer interface {
	ObserveFrame(Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (f ObserverFunc) ObserveFrame(fr Frame) { f(fr) }

// Engine drives a pong.State from a clock. It owns the state for the whole
// session and is the state's only writer.
type Engine struct {
	state     *pong.State
	clock     quartz.Clock
	logger    *log.Logger
	maxFrame  time.Duration
	observers []Observer

	last   time.Time
	seq    uint64
	paused bool
	bounds pong.Bounds
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxFrame caps the dt of a single step. Long stalls (a suspended
// terminal, a debugger) would otherwise teleport the ball.
func WithMaxFrame(d time.Duration) Option {
	return func(e *Engine) { e.maxFrame = d }
}

// WithObserver registers o to receive every frame.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// NewEngine creates an engine around state. The first Step has a dt of zero.
func NewEngine(state *pong.State, clock quartz.Clock, logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		state:    state,
		clock:    clock,
		logger:   logger.WithPrefix("engine"),
		maxFrame: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddObserver registers o after construction.
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// Step advances the simulation by the time elapsed since the previous step.
// While paused the state is left alone and the returned frame has a zero dt.
func (e *Engine) Step(in pong.Input, bounds pong.Bounds) Frame {
	now := e.clock.Now()
	elapsed := time.Duration(0)
	if !e.last.IsZero() {
		elapsed = now.Sub(e.last)
	}
	e.last = now
	e.bounds = bounds

	if e.paused {
		return Frame{Seq: e.seq, Bounds: bounds, Snapshot: e.state.Snapshot(bounds)}
	}

	if elapsed > e.maxFrame {
		e.logger.Debug("Clamping long frame", "elapsed", elapsed, "max", e.maxFrame)
		elapsed = e.maxFrame
	}
	if elapsed < 0 {
		elapsed = 0
	}

	dt := elapsed.Seconds()
	res := e.state.Advance(dt, in, bounds)
	e.seq++

	if res.Scorer != pong.NoSide {
		e.logger.Info("Point scored",
			"side", res.Scorer,
			"score", e.state.Score.String(),
			"frame", e.seq)
	}

	fr := Frame{
		Seq:      e.seq,
		DT:       dt,
		Input:    in,
		Bounds:   bounds,
		Result:   res,
		Snapshot: e.state.Snapshot(bounds),
	}
	for _, o := range e.observers {
		o.ObserveFrame(fr)
	}
	return fr
}

// SetPaused pauses or resumes the simulation. Resuming restarts the frame
// timer so the pause is not replayed as one long step.
func (e *Engine) SetPaused(p bool) {
	if e.paused == p {
		return
	}
	e.paused = p
	e.last = time.Time{}
	e.logger.Debug("Pause toggled", "paused", p)
}

// Paused reports whether the engine is paused.
func (e *Engine) Paused() bool {
	return e.paused
}

// Snapshot returns a copy of the current state against the last bounds seen.
func (e *Engine) Snapshot() pong.Snapshot {
	return e.state.Snapshot(e.bounds)
}

// Frames returns how many steps have been simulated.
func (e *Engine) Frames() uint64 {
	return e.seq
}
