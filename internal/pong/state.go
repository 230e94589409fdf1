package pong

// Coin is a fair two-sided random source. Implementations must return true
// and false with equal probability.
type Coin interface {
	Flip() bool
}

// State is the full mutable state of a session. It has a single owner; the
// exported fields are there so the presentation layer can read them.
type State struct {
	LeftPaddle  Paddle
	RightPaddle Paddle
	Ball        Ball
	Score       Score

	params Params
	coin   Coin
}

// NewState creates a session with both paddles vertically centered and the
// ball in the middle of bounds, heading in a random diagonal direction.
func NewState(bounds Bounds, params Params, coin Coin) *State {
	center := bounds.Center()
	s := &State{
		LeftPaddle: Paddle{
			Side:   Left,
			Pos:    Vec2{X: params.PaddleX(Left, bounds), Y: center.Y},
			Width:  params.PaddleWidth,
			Height: params.PaddleHeight,
		},
		RightPaddle: Paddle{
			Side:   Right,
			Pos:    Vec2{X: params.PaddleX(Right, bounds), Y: center.Y},
			Width:  params.PaddleWidth,
			Height: params.PaddleHeight,
		},
		Ball: Ball{
			Pos:  center,
			Size: params.BallSize,
		},
		params: params,
		coin:   coin,
	}
	s.Ball.Vel = s.randomVelocity()
	return s
}

// Params returns the tuning the state was created with.
func (s *State) Params() Params {
	return s.params
}

// Paddle returns the paddle of side sd.
func (s *State) Paddle(sd Side) *Paddle {
	if sd == Right {
		return &s.RightPaddle
	}
	return &s.LeftPaddle
}

// randomVelocity flips the coin once per axis, x first.
func (s *State) randomVelocity() Vec2 {
	speed := s.params.BallSpeed
	v := Vec2{X: -speed, Y: -speed}
	if s.coin.Flip() {
		v.X = speed
	}
	if s.coin.Flip() {
		v.Y = speed
	}
	return v
}

// Snapshot is a copy of a State for readers that must not touch the live
// value, such as renderers on another goroutine or a network feed.
type Snapshot struct {
	Bounds      Bounds `json:"bounds"`
	LeftPaddle  Paddle `json:"left_paddle"`
	RightPaddle Paddle `json:"right_paddle"`
	Ball        Ball   `json:"ball"`
	Score       Score  `json:"score"`
}

// Snapshot copies the state together with the bounds it was last advanced
// against.
func (s *State) Snapshot(bounds Bounds) Snapshot {
	return Snapshot{
		Bounds:      bounds,
		LeftPaddle:  s.LeftPaddle,
		RightPaddle: s.RightPaddle,
		Ball:        s.Ball,
		Score:       s.Score,
	}
}
