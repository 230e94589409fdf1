package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/termpong/cmd/termpong/shared"
	"github.com/lox/termpong/internal/config"
	"github.com/lox/termpong/internal/pong"
	"github.com/lox/termpong/internal/soak"
)

type SimulateCmd struct {
	Config   string        `short:"c" default:"termpong.hcl" type:"path" help:"Path to HCL config file"`
	Sessions int           `short:"n" default:"200" help:"Number of sessions to play"`
	Duration time.Duration `default:"60s" help:"Simulated time per session"`
	FPS      int           `default:"60" help:"Fixed steps per simulated second"`
	Width    float64       `default:"800" help:"Arena width"`
	Height   float64       `default:"600" help:"Arena height"`
	Seed     int64         `default:"1" help:"Seed of the first session"`
	Workers  int           `help:"Sessions played in parallel (0 uses every CPU)"`
	Debug    bool          `help:"Log at debug level"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := shared.SetupLogger(os.Stderr, cfg.UI.LogLevel, c.Debug)
	if err != nil {
		return err
	}
	ctx := shared.SetupSignalHandler(logger)

	start := time.Now()
	report, err := soak.Run(ctx, soak.Config{
		Sessions: c.Sessions,
		Duration: c.Duration,
		FPS:      c.FPS,
		Bounds:   pong.Bounds{Width: c.Width, Height: c.Height},
		Params:   cfg.Game.Params(),
		Seed:     c.Seed,
		Workers:  c.Workers,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Sessions:   %d\n", report.Sessions)
	fmt.Printf("Steps:      %d (%.0f/s)\n", report.Steps, float64(report.Steps)/elapsed.Seconds())
	fmt.Printf("Points:     left %d, right %d\n", report.Score.Left, report.Score.Right)
	fmt.Printf("Returns:    %d\n", report.Hits)
	fmt.Printf("Violations: %d\n", len(report.Violations)+report.Truncated)

	if report.OK() {
		return nil
	}
	for _, v := range report.Violations {
		fmt.Printf("  %s\n", v)
	}
	if report.Truncated > 0 {
		fmt.Printf("  ... and %d more\n", report.Truncated)
	}
	return fmt.Errorf("%d invariant violations", len(report.Violations)+report.Truncated)
}
