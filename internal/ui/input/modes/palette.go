package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quickaction/internal/ui/input/types"
)

// PaletteMode edits the filter query and moves the cursor
type PaletteMode struct {
	TextInputMode
}

func NewPaletteMode(ti *textinput.Model) *PaletteMode {
	return &PaletteMode{
		TextInputMode: NewTextInputMode(types.ModePalette, "quick action", "> ", ti),
	}
}

// HandleKey swallows the hotkey so it never edits the query; the palette is
// already open.
func (m *PaletteMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if ctx.IsHotkey(msg.String()) {
		return nil, true
	}

	switch msg.String() {
	case "up", "ctrl+p", "shift+tab":
		if ctx.MatchCount() == 0 {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "ctrl+n", "tab":
		if ctx.MatchCount() == 0 {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "enter":
		// Enter with nothing to run keeps the palette open
		if ctx.MatchCount() == 0 {
			return nil, true
		}
		return []types.Action{types.ActivateAction{}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
