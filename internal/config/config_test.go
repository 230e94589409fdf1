package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/termpong/internal/pong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termpong.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, pong.DefaultParams(), cfg.Game.Params())
	assert.Equal(t, 100*time.Millisecond, cfg.Game.MaxFrame())
	assert.Equal(t, time.Second/60, cfg.Game.FrameInterval())
	assert.Equal(t, 500*time.Millisecond, cfg.Keys.Hold())
	assert.NotEqual(t, cfg.UI.LogFile, cfg.UI.WatchLogFile)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `
game {
  ball_speed = 320
  tick_rate  = 30
}

keys {
  left_up   = ["e"]
  left_down = ["d"]
}

ui {
  theme = "mono"
}

spectate {
  addr = ":9090"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 320.0, cfg.Game.BallSpeed)
	assert.Equal(t, 30, cfg.Game.TickRate)
	assert.Equal(t, pong.DefaultPaddleHeight, cfg.Game.PaddleHeight, "unset values fall back to defaults")
	assert.Equal(t, 100, cfg.Game.MaxFrameMs)

	assert.Equal(t, []string{"e"}, cfg.Keys.LeftUp)
	assert.Equal(t, []string{"d"}, cfg.Keys.LeftDown)
	assert.Equal(t, []string{"up"}, cfg.Keys.RightUp)
	assert.Equal(t, 500, cfg.Keys.HoldMs)

	assert.Equal(t, "mono", cfg.UI.Theme)
	assert.Equal(t, "warn", cfg.UI.LogLevel)
	assert.Equal(t, 10.0, cfg.UI.CellWidth)
	assert.Equal(t, "termpong-watch.log", cfg.UI.WatchLogFile)

	assert.Equal(t, ":9090", cfg.Spectate.Addr)
}

func TestLoadOmittedBlocks(t *testing.T) {
	path := writeConfig(t, `ui { log_level = "debug" }`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.Equal(t, Default().Game, cfg.Game)
	assert.Equal(t, Default().Keys, cfg.Keys)
	assert.Equal(t, "", cfg.Spectate.Addr)
}

func TestLoadErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(writeConfig(t, `game {`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := Load(writeConfig(t, `game { spin = 3 }`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative ball speed", func(c *Config) { c.Game.BallSpeed = -1 }, "ball speed"},
		{"tick rate too high", func(c *Config) { c.Game.TickRate = 1000 }, "tick rate"},
		{"negative max frame", func(c *Config) { c.Game.MaxFrameMs = -5 }, "max frame"},
		{"negative hold", func(c *Config) { c.Keys.HoldMs = -1 }, "key hold"},
		{"zero cell width", func(c *Config) { c.UI.CellWidth = 0 }, "cell size"},
		{"bad log level", func(c *Config) { c.UI.LogLevel = "trace" }, "log level"},
		{"bad theme", func(c *Config) { c.UI.Theme = "sepia" }, "theme"},
		{"shared log file", func(c *Config) { c.UI.WatchLogFile = c.UI.LogFile }, "watch_log_file"},
		{"shared key", func(c *Config) { c.Keys.RightUp = []string{"w"} }, `"w"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
