package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/termpong/cmd/termpong/shared"
	"github.com/lox/termpong/internal/config"
	"github.com/lox/termpong/internal/game"
	"github.com/lox/termpong/internal/input"
	"github.com/lox/termpong/internal/pong"
	"github.com/lox/termpong/internal/randutil"
	"github.com/lox/termpong/internal/replay"
	"github.com/lox/termpong/internal/sessionid"
	"github.com/lox/termpong/internal/spectate"
	"github.com/lox/termpong/internal/tui"
	"golang.org/x/sync/errgroup"
)

type PlayCmd struct {
	Config       string `short:"c" default:"termpong.hcl" type:"path" help:"Path to HCL config file"`
	Seed         int64  `help:"Random seed for serve directions (0 picks one)"`
	Debug        bool   `help:"Log at debug level"`
	Theme        string `help:"Colour theme: default, mono or neon"`
	SpectateAddr string `name:"spectate-addr" help:"Serve a read-only frame feed on this address, e.g. :8080"`
	Record       string `type:"path" help:"Write a replay of the session to this file on exit"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Theme != "" {
		cfg.UI.Theme = c.Theme
	}
	if c.SpectateAddr != "" {
		cfg.Spectate.Addr = c.SpectateAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := shared.OpenLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = logFile.Close()
	}()

	logger, err := shared.SetupLogger(logFile, cfg.UI.LogLevel, c.Debug)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	id := sessionid.Generate()
	logger = logger.With("session", id)
	logger.Info("Starting session", "seed", seed, "config", c.Config)

	clock := quartz.NewReal()
	params := cfg.Game.Params()
	sess := &session{
		id:       id,
		seed:     seed,
		params:   params,
		clock:    clock,
		maxFrame: cfg.Game.MaxFrame(),
		record:   c.Record != "",
		logger:   logger,
	}

	theme, err := tui.NewTheme(cfg.UI.Theme, os.Stdout)
	if err != nil {
		return err
	}

	model := tui.NewPlayModel(tui.PlayConfig{
		NewEngine:  sess.start,
		Keys:       input.NewKeyMap(cfg.Keys),
		Hold:       input.NewHoldTracker(clock, cfg.Keys.Hold()),
		Theme:      theme,
		CellWidth:  cfg.UI.CellWidth,
		CellHeight: cfg.UI.CellHeight,
		Interval:   cfg.Game.FrameInterval(),
		Logger:     logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	g, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if addr := cfg.Spectate.Addr; addr != "" {
		feed := spectate.NewServer(spectate.HelloData{SessionID: id, Params: params}, clock, logger)
		sess.observers = append(sess.observers, feed)
		g.Go(func() error {
			return feed.ListenAndServe(ctx, addr)
		})
	}

	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("terminal UI: %w", err)
		}
		return nil
	})

	// A failing feed takes the UI down with it.
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	runErr := g.Wait()

	score := model.Score()
	if engine := model.Engine(); engine != nil {
		logger.Info("Session finished", "score", score.String(), "frames", engine.Frames())
	}

	if recorder := sess.recorder; recorder != nil {
		if err := recorder.Save(c.Record); err != nil {
			logger.Error("Failed to save recording", "path", c.Record, "error", err)
			if runErr == nil {
				runErr = err
			}
		} else {
			fmt.Printf("Recording saved to %s\n", c.Record)
		}
	}

	if runErr != nil {
		return runErr
	}
	fmt.Printf("Final score %s\n", score)
	return nil
}

// session holds what is needed to start a game once the terminal size is
// known.
type session struct {
	id        string
	seed      int64
	params    pong.Params
	clock     quartz.Clock
	maxFrame  time.Duration
	record    bool
	observers []game.Observer
	logger    *log.Logger

	recorder *replay.Recorder
}

// start creates the state and engine for bounds. The recording, if any,
// starts from the same bounds so it replays exactly.
func (s *session) start(bounds pong.Bounds) *game.Engine {
	state := pong.NewState(bounds, s.params, randutil.NewCoin(s.seed))
	engine := game.NewEngine(state, s.clock, s.logger, game.WithMaxFrame(s.maxFrame))

	if s.record {
		s.recorder = replay.NewRecorder(s.id, s.seed, s.params, bounds)
		engine.AddObserver(s.recorder)
	}
	for _, o := range s.observers {
		engine.AddObserver(o)
	}
	return engine
}
