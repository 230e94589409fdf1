package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/termpong/internal/config"
	"github.com/muesli/termenv"
)

// Glyphs are the characters the arena is drawn with.
type Glyphs struct {
	Paddle  rune
	Ball    rune
	Divider rune
}

// Theme bundles the styles for one look. Styles are bound to the renderer
// of the output they were created for.
type Theme struct {
	Name   string
	Glyphs Glyphs

	Border      lipgloss.Style
	LeftPaddle  lipgloss.Style
	RightPaddle lipgloss.Style
	Ball        lipgloss.Style
	Divider     lipgloss.Style
	Score       lipgloss.Style
	Status      lipgloss.Style
	Warning     lipgloss.Style
}

// NewTheme builds the named theme for output written to w. The mono theme,
// and any theme when NO_COLOR is set, renders without escape sequences.
func NewTheme(name string, w io.Writer) (*Theme, error) {
	if !config.ValidTheme(name) {
		return nil, fmt.Errorf("unknown theme %q", name)
	}

	r := lipgloss.NewRenderer(w)
	if name == "mono" || termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}

	th := &Theme{
		Name:   name,
		Glyphs: Glyphs{Paddle: '█', Ball: '●', Divider: '│'},
		Border: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")),
		LeftPaddle:  r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		RightPaddle: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		Ball: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Divider: r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Score: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Status:  r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
	}

	switch name {
	case "mono":
		th.Glyphs = Glyphs{Paddle: '#', Ball: 'o', Divider: ':'}
		th.Border = r.NewStyle().Border(lipgloss.NormalBorder())
	case "neon":
		th.Glyphs = Glyphs{Paddle: '▓', Ball: '◉', Divider: '┊'}
		th.Border = th.Border.BorderForeground(lipgloss.Color("#7D56F4"))
		th.LeftPaddle = th.LeftPaddle.Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
		th.RightPaddle = th.RightPaddle.Foreground(lipgloss.Color("#4ECDC4")).Bold(true)
		th.Ball = th.Ball.Foreground(lipgloss.Color("#96CEB4"))
		th.Score = th.Score.Foreground(lipgloss.Color("#7D56F4"))
	}
	return th, nil
}
