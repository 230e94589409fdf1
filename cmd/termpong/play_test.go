package main

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/termpong/internal/game"
	"github.com/lox/termpong/internal/pong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStart(t *testing.T) {
	newSession := func(record bool) *session {
		return &session{
			id:       "play-test",
			seed:     3,
			params:   pong.DefaultParams(),
			clock:    quartz.NewMock(t),
			maxFrame: 100 * time.Millisecond,
			record:   record,
			logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		}
	}
	bounds := pong.Bounds{Width: 780, Height: 400}

	t.Run("state is centered in the terminal arena", func(t *testing.T) {
		engine := newSession(false).start(bounds)
		engine.Step(pong.Input{}, bounds)

		snap := engine.Snapshot()
		assert.Equal(t, bounds.Center(), snap.Ball.Pos)
		assert.Equal(t, bounds.Height/2, snap.LeftPaddle.Pos.Y)
		assert.Equal(t, bounds.Height/2, snap.RightPaddle.Pos.Y)
	})

	t.Run("recording starts from the same bounds", func(t *testing.T) {
		s := newSession(true)
		s.start(bounds).Step(pong.Input{}, bounds)

		require.NotNil(t, s.recorder)
		rec := s.recorder.Recording()
		assert.Equal(t, bounds, rec.Header.Bounds)
		assert.Len(t, rec.Steps, 1)
	})

	t.Run("no recorder unless asked", func(t *testing.T) {
		s := newSession(false)
		s.start(bounds)
		assert.Nil(t, s.recorder)
	})

	t.Run("observers see every frame", func(t *testing.T) {
		s := newSession(false)
		var frames int
		s.observers = append(s.observers, game.ObserverFunc(func(game.Frame) { frames++ }))

		engine := s.start(bounds)
		engine.Step(pong.Input{}, bounds)
		engine.Step(pong.Input{}, bounds)

		assert.Equal(t, 2, frames)
	})
}
