package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/termpong/cmd/termpong/shared"
	"github.com/lox/termpong/internal/config"
	"github.com/lox/termpong/internal/input"
	"github.com/lox/termpong/internal/spectate"
	"github.com/lox/termpong/internal/tui"
)

type WatchCmd struct {
	URL    string `default:"ws://localhost:8080/ws" help:"Frame feed URL"`
	Config string `short:"c" default:"termpong.hcl" type:"path" help:"Path to HCL config file"`
	Theme  string `help:"Colour theme: default, mono or neon"`
	Debug  bool   `help:"Log at debug level"`
}

func (c *WatchCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Theme != "" {
		cfg.UI.Theme = c.Theme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := shared.OpenLogFile(cfg.UI.WatchLogFile)
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
	ctx := shared.SetupSignalHandler(logger)

	client, err := spectate.Dial(ctx, c.URL, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	theme, err := tui.NewTheme(cfg.UI.Theme, os.Stdout)
	if err != nil {
		return err
	}

	model := tui.NewWatchModel(tui.WatchConfig{
		Feed:   client,
		Keys:   input.WatchKeyMap(cfg.Keys),
		Theme:  theme,
		Logger: logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal UI: %w", err)
	}

	if err := model.Err(); err != nil {
		return fmt.Errorf("feed lost: %w", err)
	}
	return nil
}
