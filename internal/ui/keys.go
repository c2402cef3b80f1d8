package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"quickaction/internal/ui/input/types"
)

// keyMap is the footer help for the current input mode
type keyMap struct {
	mode types.Mode

	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Move     key.Binding
	Activate key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

func newKeyMap(chords []string) *keyMap {
	return &keyMap{
		Open: key.NewBinding(
			key.WithKeys(chords...),
			key.WithHelp(strings.Join(chords, "/"), "actions"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Move: key.NewBinding(
			key.WithKeys("up", "down", "tab", "shift+tab"),
			key.WithHelp("↑/↓", "move"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k *keyMap) ShortHelp() []key.Binding {
	switch k.mode {
	case types.ModePalette:
		return []key.Binding{k.Move, k.Activate, k.Cancel}
	case types.ModeForm:
		return []key.Binding{k.Submit, k.Cancel}
	default:
		return []key.Binding{k.Open, k.Help, k.Quit}
	}
}

// FullHelp implements help.KeyMap
func (k *keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
