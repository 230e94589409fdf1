package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCoin replays a fixed sequence of flips, wrapping around.
type scriptedCoin struct {
	flips []bool
	next  int
}

func (c *scriptedCoin) Flip() bool {
	f := c.flips[c.next%len(c.flips)]
	c.next++
	return f
}

func coin(flips ...bool) *scriptedCoin {
	return &scriptedCoin{flips: flips}
}

var arena = Bounds{Width: 800, Height: 600}

func TestNewState(t *testing.T) {
	t.Run("paddles start centered on their sides", func(t *testing.T) {
		s := NewState(arena, DefaultParams(), coin(true))

		assert.Equal(t, Vec2{X: 50, Y: 300}, s.LeftPaddle.Pos)
		assert.Equal(t, Vec2{X: 750, Y: 300}, s.RightPaddle.Pos)
		assert.Equal(t, Left, s.LeftPaddle.Side)
		assert.Equal(t, Right, s.RightPaddle.Side)
		assert.Equal(t, DefaultPaddleHeight, s.LeftPaddle.Height)
		assert.Equal(t, DefaultPaddleWidth, s.RightPaddle.Width)
	})

	t.Run("ball starts centered with scores at zero", func(t *testing.T) {
		s := NewState(arena, DefaultParams(), coin(true))

		assert.Equal(t, Vec2{X: 400, Y: 300}, s.Ball.Pos)
		assert.Equal(t, DefaultBallSize, s.Ball.Size)
		assert.Equal(t, Score{}, s.Score)
	})

	t.Run("velocity follows the coin, x then y", func(t *testing.T) {
		tests := []struct {
			flips []bool
			want  Vec2
		}{
			{[]bool{true, true}, Vec2{X: 200, Y: 200}},
			{[]bool{true, false}, Vec2{X: 200, Y: -200}},
			{[]bool{false, true}, Vec2{X: -200, Y: 200}},
			{[]bool{false, false}, Vec2{X: -200, Y: -200}},
		}
		for _, tt := range tests {
			s := NewState(arena, DefaultParams(), coin(tt.flips...))
			assert.Equal(t, tt.want, s.Ball.Vel)
		}
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewState(arena, DefaultParams(), coin(true))
	snap := s.Snapshot(arena)

	s.Ball.Pos.X = 1
	s.Score.Left = 9

	assert.Equal(t, 400.0, snap.Ball.Pos.X)
	assert.Equal(t, 0, snap.Score.Left)
	assert.Equal(t, arena, snap.Bounds)
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero paddle width", func(p *Params) { p.PaddleWidth = 0 }},
		{"negative paddle height", func(p *Params) { p.PaddleHeight = -1 }},
		{"zero paddle speed", func(p *Params) { p.PaddleSpeed = 0 }},
		{"zero ball size", func(p *Params) { p.BallSize = 0 }},
		{"negative ball speed", func(p *Params) { p.BallSpeed = -200 }},
		{"negative padding", func(p *Params) { p.PaddlePadding = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestSideText(t *testing.T) {
	for _, s := range []Side{NoSide, Left, Right} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back Side
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	var s Side
	assert.Error(t, s.UnmarshalText([]byte("middle")))
}

func TestRectOverlaps(t *testing.T) {
	a := RectAround(Vec2{X: 0, Y: 0}, 10, 10)

	assert.True(t, a.Overlaps(RectAround(Vec2{X: 5, Y: 5}, 10, 10)))
	assert.True(t, a.Overlaps(RectAround(Vec2{X: 0, Y: 0}, 2, 2)), "containment overlaps")
	assert.False(t, a.Overlaps(RectAround(Vec2{X: 10, Y: 0}, 10, 10)), "shared edge does not overlap")
	assert.False(t, a.Overlaps(RectAround(Vec2{X: 0, Y: 30}, 10, 10)))
}
