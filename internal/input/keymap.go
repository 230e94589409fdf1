// Package input turns terminal key presses into the held-key snapshot the
// simulation consumes.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/termpong/internal/config"
)

// Action is a paddle direction owned by one player.
type Action int

const (
	LeftUp Action = iota
	LeftDown
	RightUp
	RightDown
	numActions
)

func (a Action) String() string {
	switch a {
	case LeftUp:
		return "left-up"
	case LeftDown:
		return "left-down"
	case RightUp:
		return "right-up"
	case RightDown:
		return "right-down"
	default:
		return "unknown"
	}
}

// opposite returns the other direction of the same paddle.
func (a Action) opposite() Action {
	switch a {
	case LeftUp:
		return LeftDown
	case LeftDown:
		return LeftUp
	case RightUp:
		return RightDown
	default:
		return RightUp
	}
}

// KeyMap holds the bindings for a local two-player game.
type KeyMap struct {
	LeftUp    key.Binding
	LeftDown  key.Binding
	RightUp   key.Binding
	RightDown key.Binding
	Pause     key.Binding
	Quit      key.Binding
}

// NewKeyMap builds bindings from the keys block of the config.
func NewKeyMap(k *config.KeySettings) KeyMap {
	return KeyMap{
		LeftUp:    binding(k.LeftUp, "left up"),
		LeftDown:  binding(k.LeftDown, "left down"),
		RightUp:   binding(k.RightUp, "right up"),
		RightDown: binding(k.RightDown, "right down"),
		Pause:     binding(k.Pause, "pause"),
		Quit:      binding(k.Quit, "quit"),
	}
}

// WatchKeyMap is the map used by spectators: they can only leave.
func WatchKeyMap(k *config.KeySettings) KeyMap {
	return KeyMap{Quit: binding(k.Quit, "quit")}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKeys(keys), desc),
	)
}

func helpKeys(keys []string) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			names = append(names, "space")
		case "up":
			names = append(names, "↑")
		case "down":
			names = append(names, "↓")
		default:
			names = append(names, k)
		}
	}
	return strings.Join(names, "/")
}

// Action returns the paddle action bound to msg, if any.
func (km KeyMap) Action(msg tea.KeyMsg) (Action, bool) {
	switch {
	case key.Matches(msg, km.LeftUp):
		return LeftUp, true
	case key.Matches(msg, km.LeftDown):
		return LeftDown, true
	case key.Matches(msg, km.RightUp):
		return RightUp, true
	case key.Matches(msg, km.RightDown):
		return RightDown, true
	}
	return 0, false
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	all := []key.Binding{km.LeftUp, km.LeftDown, km.RightUp, km.RightDown, km.Pause, km.Quit}
	enabled := all[:0]
	for _, b := range all {
		if len(b.Keys()) > 0 {
			enabled = append(enabled, b)
		}
	}
	return enabled
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{km.ShortHelp()}
}
