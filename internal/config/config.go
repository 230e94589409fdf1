// Package config loads termpong settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/termpong/internal/pong"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete settings file. Every block is optional.
type Config struct {
	Game     *GameSettings     `hcl:"game,block"`
	Keys     *KeySettings      `hcl:"keys,block"`
	UI       *UISettings       `hcl:"ui,block"`
	Spectate *SpectateSettings `hcl:"spectate,block"`
}

// GameSettings tunes the table.
type GameSettings struct {
	PaddleWidth   float64 `hcl:"paddle_width,optional"`
	PaddleHeight  float64 `hcl:"paddle_height,optional"`
	PaddleSpeed   float64 `hcl:"paddle_speed,optional"`
	PaddlePadding float64 `hcl:"paddle_padding,optional"`
	BallSize      float64 `hcl:"ball_size,optional"`
	BallSpeed     float64 `hcl:"ball_speed,optional"`
	TickRate      int     `hcl:"tick_rate,optional"`
	MaxFrameMs    int     `hcl:"max_frame_ms,optional"`
}

// KeySettings maps keys to actions. Key names are the ones Bubble Tea
// reports, e.g. "w", "up", "ctrl+c", " ".
type KeySettings struct {
	LeftUp    []string `hcl:"left_up,optional"`
	LeftDown  []string `hcl:"left_down,optional"`
	RightUp   []string `hcl:"right_up,optional"`
	RightDown []string `hcl:"right_down,optional"`
	Quit      []string `hcl:"quit,optional"`
	Pause     []string `hcl:"pause,optional"`
	HoldMs    int      `hcl:"hold_ms,optional"`
}

// UISettings contains terminal presentation settings.
type UISettings struct {
	CellWidth  float64 `hcl:"cell_width,optional"`
	CellHeight float64 `hcl:"cell_height,optional"`
	Theme      string  `hcl:"theme,optional"`
	LogLevel   string  `hcl:"log_level,optional"`
	LogFile    string  `hcl:"log_file,optional"`
	// WatchLogFile is used by spectators so a viewer in the same directory
	// does not truncate the player's log.
	WatchLogFile string `hcl:"watch_log_file,optional"`
}

// SpectateSettings configures the read-only frame feed.
type SpectateSettings struct {
	Addr string `hcl:"addr,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			PaddleWidth:   pong.DefaultPaddleWidth,
			PaddleHeight:  pong.DefaultPaddleHeight,
			PaddleSpeed:   pong.DefaultPaddleSpeed,
			PaddlePadding: pong.DefaultPaddlePadding,
			BallSize:      pong.DefaultBallSize,
			BallSpeed:     pong.DefaultBallSpeed,
			TickRate:      60,
			MaxFrameMs:    100,
		},
		Keys: &KeySettings{
			LeftUp:    []string{"w"},
			LeftDown:  []string{"s"},
			RightUp:   []string{"up"},
			RightDown: []string{"down"},
			Quit:      []string{"q", "esc", "ctrl+c"},
			Pause:     []string{"p", " "},
			HoldMs:    500,
		},
		UI: &UISettings{
			CellWidth:    10,
			CellHeight:   20,
			Theme:        "default",
			LogLevel:     "warn",
			LogFile:      "termpong.log",
			WatchLogFile: "termpong-watch.log",
		},
		Spectate: &SpectateSettings{},
	}
}

// Load reads filename. A missing file yields the defaults; values left out
// of the file are filled from the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults(Default())
	return &cfg, nil
}

func (c *Config) applyDefaults(d *Config) {
	if c.Game == nil {
		c.Game = d.Game
	} else {
		g := c.Game
		setFloat(&g.PaddleWidth, d.Game.PaddleWidth)
		setFloat(&g.PaddleHeight, d.Game.PaddleHeight)
		setFloat(&g.PaddleSpeed, d.Game.PaddleSpeed)
		setFloat(&g.PaddlePadding, d.Game.PaddlePadding)
		setFloat(&g.BallSize, d.Game.BallSize)
		setFloat(&g.BallSpeed, d.Game.BallSpeed)
		setInt(&g.TickRate, d.Game.TickRate)
		setInt(&g.MaxFrameMs, d.Game.MaxFrameMs)
	}

	if c.Keys == nil {
		c.Keys = d.Keys
	} else {
		k := c.Keys
		setKeys(&k.LeftUp, d.Keys.LeftUp)
		setKeys(&k.LeftDown, d.Keys.LeftDown)
		setKeys(&k.RightUp, d.Keys.RightUp)
		setKeys(&k.RightDown, d.Keys.RightDown)
		setKeys(&k.Quit, d.Keys.Quit)
		setKeys(&k.Pause, d.Keys.Pause)
		setInt(&k.HoldMs, d.Keys.HoldMs)
	}

	if c.UI == nil {
		c.UI = d.UI
	} else {
		u := c.UI
		setFloat(&u.CellWidth, d.UI.CellWidth)
		setFloat(&u.CellHeight, d.UI.CellHeight)
		setString(&u.Theme, d.UI.Theme)
		setString(&u.LogLevel, d.UI.LogLevel)
		setString(&u.LogFile, d.UI.LogFile)
		setString(&u.WatchLogFile, d.UI.WatchLogFile)
	}

	if c.Spectate == nil {
		c.Spectate = d.Spectate
	}
}

func setFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func setKeys(v *[]string, def []string) {
	if len(*v) == 0 {
		*v = append([]string(nil), def...)
	}
}

// Themes known to the terminal UI.
var Themes = []string{"default", "mono", "neon"}

// Validate checks the configuration for values the game cannot run with.
func (c *Config) Validate() error {
	if err := c.Game.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Game.TickRate <= 0 || c.Game.TickRate > 240 {
		return fmt.Errorf("%w: tick rate must be between 1 and 240, got %d", ErrInvalidConfig, c.Game.TickRate)
	}
	if c.Game.MaxFrameMs <= 0 {
		return fmt.Errorf("%w: max frame must be positive", ErrInvalidConfig)
	}
	if c.Keys.HoldMs <= 0 {
		return fmt.Errorf("%w: key hold must be positive", ErrInvalidConfig)
	}
	if c.UI.CellWidth <= 0 || c.UI.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidConfig)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("%w: invalid log level: %s", ErrInvalidConfig, c.UI.LogLevel)
	}
	if c.UI.LogFile == c.UI.WatchLogFile {
		return fmt.Errorf("%w: log_file and watch_log_file must differ, both are %s", ErrInvalidConfig, c.UI.LogFile)
	}
	if !ValidTheme(c.UI.Theme) {
		return fmt.Errorf("%w: invalid theme: %s", ErrInvalidConfig, c.UI.Theme)
	}

	// a key bound to two actions would make the second unreachable
	seen := map[string]string{}
	for action, keys := range c.Keys.bindings() {
		for _, k := range keys {
			if prev, ok := seen[k]; ok && prev != action {
				return fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalidConfig, k, prev, action)
			}
			seen[k] = action
		}
	}

	return nil
}

func (k *KeySettings) bindings() map[string][]string {
	return map[string][]string{
		"left_up":    k.LeftUp,
		"left_down":  k.LeftDown,
		"right_up":   k.RightUp,
		"right_down": k.RightDown,
		"quit":       k.Quit,
		"pause":      k.Pause,
	}
}

// ValidTheme reports whether name is a known theme.
func ValidTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// Params converts the game block to simulation parameters.
func (g *GameSettings) Params() pong.Params {
	return pong.Params{
		PaddleWidth:   g.PaddleWidth,
		PaddleHeight:  g.PaddleHeight,
		PaddleSpeed:   g.PaddleSpeed,
		PaddlePadding: g.PaddlePadding,
		BallSize:      g.BallSize,
		BallSpeed:     g.BallSpeed,
	}
}

// MaxFrame is the longest dt a single step may consume.
func (g *GameSettings) MaxFrame() time.Duration {
	return time.Duration(g.MaxFrameMs) * time.Millisecond
}

// FrameInterval is the time between ticks requested from the UI.
func (g *GameSettings) FrameInterval() time.Duration {
	return time.Second / time.Duration(g.TickRate)
}

// Hold is how long a key counts as held after its last press.
func (k *KeySettings) Hold() time.Duration {
	return time.Duration(k.HoldMs) * time.Millisecond
}
