package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/termpong/internal/input"
	"github.com/lox/termpong/internal/spectate"
)

// Feed is a source of frames from a running session.
type Feed interface {
	Hello() spectate.HelloData
	Frames() <-chan spectate.FrameData
	Err() error
}

// FrameMsg carries a frame received from the feed.
type FrameMsg spectate.FrameData

// FeedClosedMsg reports that the feed ended.
type FeedClosedMsg struct {
	Err error
}

// WatchConfig holds everything a spectator view needs.
type WatchConfig struct {
	Feed   Feed
	Keys   input.KeyMap
	Theme  *Theme
	Logger *log.Logger
}

// WatchModel renders someone else's game.
type WatchModel struct {
	feed   Feed
	keys   input.KeyMap
	theme  *Theme
	help   help.Model
	logger *log.Logger

	width, height int
	cols, rows    int
	last          spectate.FrameData
	closed        bool
	err           error
	quitting      bool
}

// NewWatchModel creates the model.
func NewWatchModel(cfg WatchConfig) *WatchModel {
	h := help.New()
	h.Styles.ShortKey = cfg.Theme.Status.Bold(true)
	h.Styles.ShortDesc = cfg.Theme.Status

	return &WatchModel{
		feed:   cfg.Feed,
		keys:   cfg.Keys,
		theme:  cfg.Theme,
		help:   h,
		logger: cfg.Logger.WithPrefix("tui"),
	}
}

// Init starts listening for frames.
func (m *WatchModel) Init() tea.Cmd {
	return m.waitForFrame()
}

func (m *WatchModel) waitForFrame() tea.Cmd {
	frames := m.feed.Frames()
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return FeedClosedMsg{Err: m.feed.Err()}
		}
		return FrameMsg(f)
	}
}

// Update handles messages.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.cols, m.rows = ArenaSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case FrameMsg:
		m.last = spectate.FrameData(msg)
		return m, m.waitForFrame()

	case FeedClosedMsg:
		m.closed = true
		m.err = msg.Err
		if msg.Err != nil {
			m.logger.Warn("Feed closed", "error", msg.Err)
		} else {
			m.logger.Info("Feed closed")
		}
	}

	return m, nil
}

// Err returns the error that ended the feed, if any.
func (m *WatchModel) Err() error {
	return m.err
}

// View renders the last frame received.
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.cols < minCols || m.rows < minRows {
		return m.theme.Warning.Render("Terminal too small, please resize")
	}

	var status string
	switch {
	case m.err != nil:
		status = m.theme.Warning.Render(fmt.Sprintf("Feed lost: %v", m.err))
	case m.closed:
		status = m.theme.Warning.Render("Game over")
	default:
		status = m.theme.Status.Render(fmt.Sprintf("watching %s  frame %d", m.feed.Hello().SessionID, m.last.Seq))
	}
	return Render(m.last.Snapshot, m.cols, m.rows, m.theme) + "\n" + status + "  " + m.help.View(m.keys)
}
