package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/termpong/internal/game"
	"github.com/lox/termpong/internal/input"
	"github.com/lox/termpong/internal/pong"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// EngineFactory creates the session once the arena size is known.
type EngineFactory func(bounds pong.Bounds) *game.Engine

// PlayConfig holds everything a local game needs.
type PlayConfig struct {
	NewEngine  EngineFactory
	Keys       input.KeyMap
	Hold       *input.HoldTracker
	Theme      *Theme
	CellWidth  float64 // simulation units per terminal column
	CellHeight float64 // simulation units per terminal row
	Interval   time.Duration
	Logger     *log.Logger
}

// PlayModel is the Bubble Tea model for a local two-player game. The session
// starts on the first usable terminal size; after that the arena follows the
// terminal and every resize changes the bounds passed to the next step.
type PlayModel struct {
	newEngine EngineFactory
	engine    *game.Engine
	keys      input.KeyMap
	hold      *input.HoldTracker
	theme     *Theme
	help      help.Model
	logger    *log.Logger
	cellW     float64
	cellH     float64
	interval  time.Duration

	width, height int
	cols, rows    int
	bounds        pong.Bounds
	last          game.Frame
	quitting      bool
}

// NewPlayModel creates the model. Nothing is simulated until the terminal
// size is known.
func NewPlayModel(cfg PlayConfig) *PlayModel {
	h := help.New()
	h.Styles.ShortKey = cfg.Theme.Status.Bold(true)
	h.Styles.ShortDesc = cfg.Theme.Status
	h.Styles.ShortSeparator = cfg.Theme.Status

	return &PlayModel{
		newEngine: cfg.NewEngine,
		keys:      cfg.Keys,
		hold:      cfg.Hold,
		theme:     cfg.Theme,
		help:      h,
		logger:    cfg.Logger.WithPrefix("tui"),
		cellW:     cfg.CellWidth,
		cellH:     cfg.CellHeight,
		interval:  cfg.Interval,
	}
}

// Init starts the frame timer.
func (m *PlayModel) Init() tea.Cmd {
	return tick(m.interval)
}

// Update handles messages.
func (m *PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if m.engine != nil {
				m.engine.SetPaused(!m.engine.Paused())
			}
			m.hold.Reset()
		default:
			if a, ok := m.keys.Action(msg); ok {
				m.hold.Press(a)
			}
		}

	case TickMsg:
		if m.engine != nil && m.bounds.Width > 0 && m.bounds.Height > 0 {
			m.last = m.engine.Step(m.hold.Snapshot(), m.bounds)
		}
		return m, tick(m.interval)
	}

	return m, nil
}

func (m *PlayModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.cols, m.rows = ArenaSize(width, height)

	if m.cols < minCols || m.rows < minRows {
		m.bounds = pong.Bounds{}
		m.logger.Debug("Terminal too small", "width", width, "height", height)
		return
	}
	m.bounds = pong.Bounds{
		Width:  float64(m.cols) * m.cellW,
		Height: float64(m.rows) * m.cellH,
	}
	m.logger.Debug("Arena resized", "cols", m.cols, "rows", m.rows, "bounds", m.bounds)

	if m.engine == nil {
		m.engine = m.newEngine(m.bounds)
		m.logger.Info("Session started", "bounds", m.bounds)
	}
}

// Engine returns the running engine, or nil before the session has started.
func (m *PlayModel) Engine() *game.Engine {
	return m.engine
}

// Bounds returns the arena size the next step will use.
func (m *PlayModel) Bounds() pong.Bounds {
	return m.bounds
}

// Score returns the score after the last step.
func (m *PlayModel) Score() pong.Score {
	return m.last.Snapshot.Score
}

// View renders the game.
func (m *PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.bounds.Width == 0 {
		return m.theme.Warning.Render("Terminal too small, please resize")
	}

	status := m.help.View(m.keys)
	if m.engine != nil && m.engine.Paused() {
		status = m.theme.Warning.Render("PAUSED") + "  " + status
	}
	return Render(m.last.Snapshot, m.cols, m.rows, m.theme) + "\n" + status
}
