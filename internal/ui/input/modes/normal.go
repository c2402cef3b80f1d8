package modes

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"quickaction/internal/palette"
	"quickaction/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey reports every chord to the hotkey listener. Only ctrl+c, q and ?
// have a meaning of their own here.
func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	events := ChordEvents(msg.String())
	actions := make([]types.Action, 0, len(events))
	for _, ev := range events {
		actions = append(actions, types.KeyEventAction{Event: ev})
	}
	return actions, true
}

// ChordEvents expands a chord such as "ctrl+k" into the press and release
// sequence a keyboard would produce: ctrl down, k down, k up, ctrl up.
// Terminals only report the chord, never the individual transitions.
func ChordEvents(chord string) []palette.KeyEvent {
	if chord == "" {
		return nil
	}

	var modifiers []string
	key := chord
	for {
		i := strings.Index(key, "+")
		if i <= 0 || i == len(key)-1 {
			break
		}
		mod := key[:i]
		if mod != palette.KeyCtrl && mod != palette.KeyAlt && mod != palette.KeyShift {
			break
		}
		modifiers = append(modifiers, mod)
		key = key[i+1:]
	}

	// Terminals report shift+letter as the upper case letter
	if len(key) == 1 && key[0] >= 'A' && key[0] <= 'Z' {
		modifiers = append(modifiers, palette.KeyShift)
		key = strings.ToLower(key)
	}

	events := make([]palette.KeyEvent, 0, 2*len(modifiers)+2)
	for _, mod := range modifiers {
		events = append(events, palette.Press(mod))
	}
	events = append(events, palette.Press(key), palette.Release(key))
	for i := len(modifiers) - 1; i >= 0; i-- {
		events = append(events, palette.Release(modifiers[i]))
	}
	return events
}
