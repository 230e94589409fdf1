package soak

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/termpong/internal/pong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Sessions: 8,
		Duration: 30 * time.Second,
		FPS:      60,
		Bounds:   pong.Bounds{Width: 800, Height: 600},
		Params:   pong.DefaultParams(),
		Seed:     42,
		Workers:  4,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	}
}

func TestRunFindsNoViolations(t *testing.T) {
	report, err := Run(context.Background(), testConfig())
	require.NoError(t, err)

	assert.True(t, report.OK(), "violations: %v", report.Violations)
	assert.Equal(t, 8, report.Sessions)
	assert.Equal(t, 8*30*60, report.Steps)
	assert.Positive(t, report.Score.Left+report.Score.Right)
	assert.Positive(t, report.Hits)
}

func TestRunIsReproducible(t *testing.T) {
	a, err := Run(context.Background(), testConfig())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Workers = 1
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Hits, b.Hits)
}

func TestRunRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no sessions", func(c *Config) { c.Sessions = 0 }},
		{"no fps", func(c *Config) { c.FPS = 0 }},
		{"empty arena", func(c *Config) { c.Bounds = pong.Bounds{} }},
		{"bad params", func(c *Config) { c.Params.BallSpeed = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := Run(context.Background(), cfg)
			assert.Error(t, err)
		})
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckFlagsBrokenState(t *testing.T) {
	cfg := testConfig()
	s := pong.NewState(cfg.Bounds, cfg.Params, fixedCoin(true))
	s.LeftPaddle.Pos.Y = -5
	s.Ball.Vel.X = 10
	before := pong.Score{Left: 3}

	msgs := check(s, before, pong.StepResult{}, cfg)

	assert.Len(t, msgs, 3)
}

type fixedCoin bool

func (c fixedCoin) Flip() bool { return bool(c) }
