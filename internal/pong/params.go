package pong

import (
	"errors"
	"fmt"
)

// Default tuning, in arena units and units per second.
const (
	DefaultPaddleWidth   = 20.0
	DefaultPaddleHeight  = 100.0
	DefaultPaddleSpeed   = 600.0
	DefaultPaddlePadding = 40.0
	DefaultBallSize      = 30.0
	DefaultBallSpeed     = 200.0
)

// ErrInvalidParams is wrapped by Params.Validate failures.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// Params are the fixed dimensions and speeds of a session.
type Params struct {
	PaddleWidth   float64 `json:"paddle_width"`
	PaddleHeight  float64 `json:"paddle_height"`
	PaddleSpeed   float64 `json:"paddle_speed"`
	PaddlePadding float64 `json:"paddle_padding"`
	BallSize      float64 `json:"ball_size"`
	BallSpeed     float64 `json:"ball_speed"`
}

// DefaultParams returns the classic table.
func DefaultParams() Params {
	return Params{
		PaddleWidth:   DefaultPaddleWidth,
		PaddleHeight:  DefaultPaddleHeight,
		PaddleSpeed:   DefaultPaddleSpeed,
		PaddlePadding: DefaultPaddlePadding,
		BallSize:      DefaultBallSize,
		BallSpeed:     DefaultBallSpeed,
	}
}

// Validate rejects parameters the simulation cannot run with.
func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"paddle width", p.PaddleWidth},
		{"paddle height", p.PaddleHeight},
		{"paddle speed", p.PaddleSpeed},
		{"ball size", p.BallSize},
		{"ball speed", p.BallSpeed},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParams, c.name, c.value)
		}
	}
	if p.PaddlePadding < 0 {
		return fmt.Errorf("%w: paddle padding cannot be negative, got %v", ErrInvalidParams, p.PaddlePadding)
	}
	return nil
}

// HalfBall is half the ball's edge length.
func (p Params) HalfBall() float64 {
	return p.BallSize * 0.5
}

// PaddleX returns the fixed horizontal center of side s's paddle.
func (p Params) PaddleX(s Side, b Bounds) float64 {
	inset := p.PaddlePadding + p.PaddleWidth*0.5
	if s == Right {
		return b.Width - inset
	}
	return inset
}
