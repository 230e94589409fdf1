package pong

import "math"

// StepResult describes what happened during one Advance call.
type StepResult struct {
	Scorer     Side `json:"scorer,omitempty"`
	WallBounce bool `json:"wall_bounce,omitempty"`
	HitLeft    bool `json:"hit_left,omitempty"`
	HitRight   bool `json:"hit_right,omitempty"`
}

// Advance moves the simulation forward by dt seconds. in holds the keys down
// during the step and bounds is the arena as it is right now; neither is
// retained. dt must be non-negative and bounds positive.
func (s *State) Advance(dt float64, in Input, bounds Bounds) StepResult {
	var res StepResult

	s.movePaddle(&s.LeftPaddle, in.Left, dt, bounds)
	s.movePaddle(&s.RightPaddle, in.Right, dt, bounds)

	s.Ball.Pos = s.Ball.Pos.Add(s.Ball.Vel.Scale(dt))

	// Only one side can score per step.
	if s.Ball.Pos.X < 0 {
		res.Scorer = Right
	} else if s.Ball.Pos.X > bounds.Width {
		res.Scorer = Left
	}
	if res.Scorer != NoSide {
		s.Score.award(res.Scorer)
		s.Ball.Pos = bounds.Center()
		s.Ball.Vel = s.randomVelocity()
	}

	half := s.params.HalfBall()
	if s.Ball.Pos.Y < half {
		s.Ball.Pos.Y = half
		s.Ball.Vel.Y = math.Abs(s.Ball.Vel.Y)
		res.WallBounce = true
	} else if s.Ball.Pos.Y > bounds.Height-half {
		s.Ball.Pos.Y = bounds.Height - half
		s.Ball.Vel.Y = -math.Abs(s.Ball.Vel.Y)
		res.WallBounce = true
	}

	ball := s.Ball.Rect()
	if ball.Overlaps(s.LeftPaddle.Rect()) {
		s.Ball.Vel.X = math.Abs(s.Ball.Vel.X)
		res.HitLeft = true
	}
	if ball.Overlaps(s.RightPaddle.Rect()) {
		s.Ball.Vel.X = -math.Abs(s.Ball.Vel.X)
		res.HitRight = true
	}

	return res
}

// movePaddle pins the paddle to its side of bounds, then applies up before
// down, clamping after each. Holding both keys is a no-op away from the walls.
func (s *State) movePaddle(p *Paddle, keys PaddleInput, dt float64, bounds Bounds) {
	p.Pos.X = s.params.PaddleX(p.Side, bounds)

	low := p.Height * 0.5
	high := bounds.Height - p.Height*0.5
	step := s.params.PaddleSpeed * dt

	if keys.Up {
		p.Pos.Y -= step
	}
	p.Pos.Y = clamp(p.Pos.Y, low, high)
	if keys.Down {
		p.Pos.Y += step
	}
	p.Pos.Y = clamp(p.Pos.Y, low, high)
}
