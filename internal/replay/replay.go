// Package replay records sessions as seed plus per-frame input so they can be
// re-simulated exactly.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lox/termpong/internal/fileutil"
	"github.com/lox/termpong/internal/game"
	"github.com/lox/termpong/internal/pong"
	"github.com/lox/termpong/internal/randutil"
)

// FormatVersion is bumped whenever the file layout or the step semantics
// change in a way that breaks old recordings.
const FormatVersion = 2

// ErrDiverged is returned by Play when the re-simulated session does not end
// in the recorded state.
var ErrDiverged = errors.New("replay diverged from recording")

// Header describes how a session was created.
type Header struct {
	Version   int         `json:"version"`
	SessionID string      `json:"session_id"`
	Seed      int64       `json:"seed"`
	Params    pong.Params `json:"params"`
	Bounds    pong.Bounds `json:"bounds"`
	Final     pong.Score  `json:"final_score"`
	// Last is the snapshot after the final recorded step.
	Last pong.Snapshot `json:"last"`
}

// Step is the input side of one frame.
type Step struct {
	DT     float64     `json:"dt"`
	Input  pong.Input  `json:"input"`
	Bounds pong.Bounds `json:"bounds"`
}

// Recording is a complete session.
type Recording struct {
	Header Header `json:"header"`
	Steps  []Step `json:"steps"`
}

// Recorder collects frames from an engine. It implements game.Observer.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a session built from seed, params and
// the bounds it was created with.
func NewRecorder(sessionID string, seed int64, params pong.Params, bounds pong.Bounds) *Recorder {
	return &Recorder{rec: Recording{Header: Header{
		Version:   FormatVersion,
		SessionID: sessionID,
		Seed:      seed,
		Params:    params,
		Bounds:    bounds,
	}}}
}

// ObserveFrame appends the frame's inputs and tracks the resulting state.
func (r *Recorder) ObserveFrame(f game.Frame) {
	r.rec.Steps = append(r.rec.Steps, Step{DT: f.DT, Input: f.Input, Bounds: f.Bounds})
	r.rec.Header.Final = f.Snapshot.Score
	r.rec.Header.Last = f.Snapshot
}

// Recording returns what has been captured so far.
func (r *Recorder) Recording() *Recording {
	return &r.rec
}

// Save writes the recording to path atomically.
func (r *Recorder) Save(path string) error {
	return fileutil.WriteJSONAtomic(path, &r.rec, 0o644)
}

// Load reads a recording from path.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}

	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode recording: %w", err)
	}
	if rec.Header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported recording version %d (want %d)", rec.Header.Version, FormatVersion)
	}
	if err := rec.Header.Params.Validate(); err != nil {
		return nil, fmt.Errorf("recording has bad params: %w", err)
	}
	return &rec, nil
}

// Play re-simulates rec from its seed and returns the final state. The
// returned error wraps ErrDiverged if the final score or, for a non-empty
// recording, the final snapshot differs from the one recorded.
func Play(rec *Recording) (pong.Snapshot, error) {
	h := rec.Header
	state := pong.NewState(h.Bounds, h.Params, randutil.NewCoin(h.Seed))

	bounds := h.Bounds
	for _, st := range rec.Steps {
		bounds = st.Bounds
		state.Advance(st.DT, st.Input, bounds)
	}

	snap := state.Snapshot(bounds)
	if snap.Score != h.Final {
		return snap, fmt.Errorf("%w: got %s, recorded %s", ErrDiverged, snap.Score, h.Final)
	}
	if len(rec.Steps) > 0 && snap != h.Last {
		return snap, fmt.Errorf("%w: final state differs (ball at %.2f,%.2f, recorded %.2f,%.2f)",
			ErrDiverged, snap.Ball.Pos.X, snap.Ball.Pos.Y, h.Last.Ball.Pos.X, h.Last.Ball.Pos.Y)
	}
	return snap, nil
}
