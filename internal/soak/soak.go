// Package soak drives many headless sessions with random held keys and
// checks the simulation's invariants after every step.
package soak

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/termpong/internal/pong"
	"github.com/lox/termpong/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// maxViolations caps how many violations a report keeps.
const maxViolations = 50

// Config holds configuration for a soak run.
type Config struct {
	Sessions int
	Duration time.Duration // simulated time per session
	FPS      int
	Bounds   pong.Bounds
	Params   pong.Params
	Seed     int64
	Workers  int
	Logger   *log.Logger
}

// Violation is one broken invariant.
type Violation struct {
	Session int
	Step    int
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("session %d step %d: %s", v.Session, v.Step, v.Message)
}

// Report summarises a run.
type Report struct {
	Sessions   int
	Steps      int
	Score      pong.Score
	Hits       int
	Violations []Violation
	Truncated  int // violations beyond the kept ones
}

// OK reports whether no invariant was violated.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

type sessionResult struct {
	steps      int
	score      pong.Score
	hits       int
	violations []Violation
}

// Run plays cfg.Sessions sessions across cfg.Workers goroutines. Session i
// is seeded from cfg.Seed+i, so a report is reproducible.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Sessions <= 0 || cfg.FPS <= 0 || cfg.Duration <= 0 {
		return nil, fmt.Errorf("sessions, fps and duration must be positive")
	}
	if cfg.Bounds.Width <= 0 || cfg.Bounds.Height <= 0 {
		return nil, fmt.Errorf("arena must have positive size, got %vx%v", cfg.Bounds.Width, cfg.Bounds.Height)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("soak")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	report := &Report{Sessions: cfg.Sessions}

	for i := 0; i < cfg.Sessions; i++ {
		g.Go(func() error {
			res, err := runSession(ctx, cfg, i)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			report.Steps += res.steps
			report.Score.Left += res.score.Left
			report.Score.Right += res.score.Right
			report.Hits += res.hits
			for _, v := range res.violations {
				if len(report.Violations) < maxViolations {
					report.Violations = append(report.Violations, v)
				} else {
					report.Truncated++
				}
			}
			logger.Debug("Session finished", "session", i, "score", res.score.String(), "violations", len(res.violations))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func runSession(ctx context.Context, cfg Config, session int) (sessionResult, error) {
	seed := cfg.Seed + int64(session)
	rng := randutil.New(seed)
	state := pong.NewState(cfg.Bounds, cfg.Params, randutil.CoinFrom(rng))
	driver := newRandomDriver(rng)

	dt := 1.0 / float64(cfg.FPS)
	steps := int(cfg.Duration.Seconds() * float64(cfg.FPS))

	var res sessionResult
	for step := 0; step < steps; step++ {
		if step%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		before := state.Score
		sr := state.Advance(dt, driver.next(), cfg.Bounds)
		res.steps++
		if sr.HitLeft || sr.HitRight {
			res.hits++
		}

		for _, msg := range check(state, before, sr, cfg) {
			res.violations = append(res.violations, Violation{Session: session, Step: step, Message: msg})
		}
	}
	res.score = state.Score
	return res, nil
}

// check returns a message for every invariant the post-step state breaks.
func check(s *pong.State, before pong.Score, sr pong.StepResult, cfg Config) []string {
	var out []string
	p := cfg.Params
	b := cfg.Bounds

	for _, pad := range []pong.Paddle{s.LeftPaddle, s.RightPaddle} {
		if pad.Pos.Y < pad.Height/2 || pad.Pos.Y > b.Height-pad.Height/2 {
			out = append(out, fmt.Sprintf("%s paddle outside arena at y=%v", pad.Side, pad.Pos.Y))
		}
	}

	dl, dr := s.Score.Left-before.Left, s.Score.Right-before.Right
	if dl < 0 || dr < 0 || dl+dr > 1 {
		out = append(out, fmt.Sprintf("score moved from %s to %s", before, s.Score))
	}
	if (dl+dr == 1) != (sr.Scorer != pong.NoSide) {
		out = append(out, fmt.Sprintf("score change does not match reported scorer %s", sr.Scorer))
	}
	if sr.Scorer != pong.NoSide && s.Ball.Pos != b.Center() {
		out = append(out, fmt.Sprintf("ball not recentered after point: %+v", s.Ball.Pos))
	}

	half := p.HalfBall()
	if s.Ball.Pos.Y < half || s.Ball.Pos.Y > b.Height-half {
		out = append(out, fmt.Sprintf("ball outside vertical walls at y=%v", s.Ball.Pos.Y))
	}
	if math.Abs(s.Ball.Vel.X) != p.BallSpeed || math.Abs(s.Ball.Vel.Y) != p.BallSpeed {
		out = append(out, fmt.Sprintf("ball speed changed: %+v", s.Ball.Vel))
	}
	return out
}

// randomDriver holds keys for random stretches, like a person mashing them.
type randomDriver struct {
	rng   *rand.Rand
	in    pong.Input
	until int
	step  int
}

func newRandomDriver(rng *rand.Rand) *randomDriver {
	return &randomDriver{rng: rng}
}

func (d *randomDriver) next() pong.Input {
	d.step++
	if d.step >= d.until {
		d.in = pong.Input{
			Left:  d.paddle(),
			Right: d.paddle(),
		}
		d.until = d.step + 1 + d.rng.IntN(45)
	}
	return d.in
}

func (d *randomDriver) paddle() pong.PaddleInput {
	switch d.rng.IntN(5) {
	case 0, 1:
		return pong.PaddleInput{Up: true}
	case 2, 3:
		return pong.PaddleInput{Down: true}
	default:
		return pong.PaddleInput{Up: true, Down: true}
	}
}
