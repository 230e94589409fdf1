package input

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"github.com/lox/termpong/internal/config"
	"github.com/lox/termpong/internal/pong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	km := NewKeyMap(config.Default().Keys)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Action
		ok   bool
	}{
		{"w is left up", runeKey('w'), LeftUp, true},
		{"s is left down", runeKey('s'), LeftDown, true},
		{"arrow up is right up", tea.KeyMsg{Type: tea.KeyUp}, RightUp, true},
		{"arrow down is right down", tea.KeyMsg{Type: tea.KeyDown}, RightDown, true},
		{"x is unbound", runeKey('x'), 0, false},
		{"quit is not a paddle action", runeKey('q'), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.Action(tt.msg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := NewKeyMap(config.Default().Keys)
	require.Len(t, km.ShortHelp(), 6)
	assert.Equal(t, "↑", km.RightUp.Help().Key)
	assert.Equal(t, "p/space", km.Pause.Help().Key)

	watch := WatchKeyMap(config.Default().Keys)
	require.Len(t, watch.ShortHelp(), 1)
	assert.Equal(t, "quit", watch.ShortHelp()[0].Help().Desc)
}

func TestHoldTracker(t *testing.T) {
	ctx := context.Background()

	t.Run("press holds for the window", func(t *testing.T) {
		clock := quartz.NewMock(t)
		h := NewHoldTracker(clock, 150*time.Millisecond)

		assert.False(t, h.Held(LeftUp))
		h.Press(LeftUp)
		assert.True(t, h.Held(LeftUp))

		clock.Advance(149 * time.Millisecond).MustWait(ctx)
		assert.True(t, h.Held(LeftUp))

		clock.Advance(time.Millisecond).MustWait(ctx)
		assert.False(t, h.Held(LeftUp))
	})

	t.Run("repeat extends the hold", func(t *testing.T) {
		clock := quartz.NewMock(t)
		h := NewHoldTracker(clock, 150*time.Millisecond)

		h.Press(RightDown)
		clock.Advance(100 * time.Millisecond).MustWait(ctx)
		h.Press(RightDown)
		clock.Advance(100 * time.Millisecond).MustWait(ctx)

		assert.True(t, h.Held(RightDown))
	})

	t.Run("opposite direction releases", func(t *testing.T) {
		clock := quartz.NewMock(t)
		h := NewHoldTracker(clock, time.Second)

		h.Press(LeftUp)
		h.Press(LeftDown)

		assert.False(t, h.Held(LeftUp))
		assert.True(t, h.Held(LeftDown))
	})

	t.Run("paddles are independent", func(t *testing.T) {
		clock := quartz.NewMock(t)
		h := NewHoldTracker(clock, time.Second)

		h.Press(LeftUp)
		h.Press(RightDown)

		assert.Equal(t, pong.Input{
			Left:  pong.PaddleInput{Up: true},
			Right: pong.PaddleInput{Down: true},
		}, h.Snapshot())
	})

	t.Run("release and reset", func(t *testing.T) {
		clock := quartz.NewMock(t)
		h := NewHoldTracker(clock, time.Second)

		h.Press(LeftUp)
		h.Press(RightUp)
		h.Release(LeftUp)
		assert.Equal(t, pong.Input{Right: pong.PaddleInput{Up: true}}, h.Snapshot())

		h.Reset()
		assert.Equal(t, pong.Input{}, h.Snapshot())
	})
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "left-up", LeftUp.String())
	assert.Equal(t, "right-down", RightDown.String())
	assert.Equal(t, LeftDown, LeftUp.opposite())
	assert.Equal(t, RightUp, RightDown.opposite())
}
