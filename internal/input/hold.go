package input

import (
	"time"

	"github.com/coder/quartz"
	"github.com/lox/termpong/internal/pong"
)

// HoldTracker approximates held keys from a stream of presses. Terminals
// report a press and then auto-repeats, never a release, so a key counts as
// held until window has passed since its most recent press. The window must
// outlast the terminal's initial repeat delay or paddles stutter.
//
// HoldTracker is not safe for concurrent use; the UI loop owns it.
type HoldTracker struct {
	clock  quartz.Clock
	window time.Duration
	last   [numActions]time.Time
}

// NewHoldTracker returns a tracker reading time from clock.
func NewHoldTracker(clock quartz.Clock, window time.Duration) *HoldTracker {
	return &HoldTracker{clock: clock, window: window}
}

// Press records a press of a. The opposite direction of the same paddle is
// released immediately.
func (h *HoldTracker) Press(a Action) {
	h.last[a] = h.clock.Now()
	h.last[a.opposite()] = time.Time{}
}

// Release forgets a.
func (h *HoldTracker) Release(a Action) {
	h.last[a] = time.Time{}
}

// Reset releases every key.
func (h *HoldTracker) Reset() {
	h.last = [numActions]time.Time{}
}

// Held reports whether a is currently considered down.
func (h *HoldTracker) Held(a Action) bool {
	t := h.last[a]
	if t.IsZero() {
		return false
	}
	return h.clock.Since(t) < h.window
}

// Snapshot returns the held keys as simulation input.
func (h *HoldTracker) Snapshot() pong.Input {
	return pong.Input{
		Left:  pong.PaddleInput{Up: h.Held(LeftUp), Down: h.Held(LeftDown)},
		Right: pong.PaddleInput{Up: h.Held(RightUp), Down: h.Held(RightDown)},
	}
}
