package pong

import "fmt"

// Side identifies one half of the table.
type Side uint8

const (
	NoSide Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	case "none", "":
		*s = NoSide
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

// Paddle is a player's racket. X is pinned to its side of the arena, Y is
// driven by input.
type Paddle struct {
	Side   Side    `json:"side"`
	Pos    Vec2    `json:"pos"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the paddle's extent.
func (p Paddle) Rect() Rect {
	return RectAround(p.Pos, p.Width, p.Height)
}

// Ball is the square the players hit back and forth.
type Ball struct {
	Pos  Vec2    `json:"pos"`
	Vel  Vec2    `json:"vel"`
	Size float64 `json:"size"`
}

// Rect returns the ball's extent.
func (b Ball) Rect() Rect {
	return RectAround(b.Pos, b.Size, b.Size)
}

// Score holds the points won by each side.
type Score struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Of returns the points of side s.
func (sc Score) Of(s Side) int {
	switch s {
	case Left:
		return sc.Left
	case Right:
		return sc.Right
	default:
		return 0
	}
}

func (sc *Score) award(s Side) {
	switch s {
	case Left:
		sc.Left++
	case Right:
		sc.Right++
	}
}

func (sc Score) String() string {
	return fmt.Sprintf("%d-%d", sc.Left, sc.Right)
}

// PaddleInput is the pair of direction keys owned by one player.
type PaddleInput struct {
	Up   bool `json:"up,omitempty"`
	Down bool `json:"down,omitempty"`
}

// Input is the set of keys held during a step.
type Input struct {
	Left  PaddleInput `json:"left"`
	Right PaddleInput `json:"right"`
}

// For returns the keys belonging to side s.
func (in Input) For(s Side) PaddleInput {
	if s == Right {
		return in.Right
	}
	return in.Left
}
