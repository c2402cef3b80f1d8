package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickaction/internal/domain"
	"quickaction/internal/palette"
	"quickaction/internal/ui/input/modes"
	"quickaction/internal/ui/input/types"
)

// newContext returns a context whose palette is open on a single item
func newContext() *ModelContext {
	c := palette.NewController(palette.NewHotkeyListener("ctrl", []string{"k"}))
	c.RequestOpen()
	c.FinishLoad([]domain.ActionItem{
		{Label: "Users", Keywords: []string{"users"}, Target: domain.NavigateTarget{URL: "/users"}},
	}, nil)
	return &ModelContext{Palette: c}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeExpandsChord(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlK}, newContext())

	require.Len(t, actions, 4)
	assert.Equal(t, types.KeyEventAction{Event: palette.Press("ctrl")}, actions[0])
	assert.Equal(t, types.KeyEventAction{Event: palette.Press("k")}, actions[1])
	assert.Equal(t, types.KeyEventAction{Event: palette.Release("k")}, actions[2])
	assert.Equal(t, types.KeyEventAction{Event: palette.Release("ctrl")}, actions[3])
}

func TestNormalModeGlobalKeys(t *testing.T) {
	h := New()
	ctx := newContext()

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)

	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)

	actions, _ = h.HandleKey(runes("?"), ctx)
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
}

func TestChordEvents(t *testing.T) {
	assert.Equal(t, []palette.KeyEvent{
		palette.Press("alt"), palette.Press("ctrl"), palette.Press("x"),
		palette.Release("x"), palette.Release("ctrl"), palette.Release("alt"),
	}, modes.ChordEvents("alt+ctrl+x"))

	assert.Equal(t, []palette.KeyEvent{palette.Press("+"), palette.Release("+")}, modes.ChordEvents("+"))
	assert.Equal(t, []palette.KeyEvent{
		palette.Press("ctrl"), palette.Press("+"), palette.Release("+"), palette.Release("ctrl"),
	}, modes.ChordEvents("ctrl++"))
	assert.Nil(t, modes.ChordEvents(""))

	assert.Equal(t, []palette.KeyEvent{
		palette.Press("shift"), palette.Press("k"), palette.Release("k"), palette.Release("shift"),
	}, modes.ChordEvents("K"))
}

func TestPaletteModeTyping(t *testing.T) {
	h := New()
	ctx := newContext()
	h.ChangeMode(types.ModePalette, "", ctx)
	require.Equal(t, types.ModePalette, h.CurrentMode())

	actions, _ := h.HandleKey(runes("p"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "p"}}, actions)

	actions, _ = h.HandleKey(runes("e"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "pe"}}, actions)

	// Cursor movement inside the field does not change the text
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}, ctx)
	assert.Empty(t, actions)
}

func TestPaletteModeNavigationAndEnter(t *testing.T) {
	h := New()
	ctx := newContext()
	h.ChangeMode(types.ModePalette, "", ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyUp}, ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "up"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.ActivateAction{}}, actions)
	assert.Equal(t, types.ModePalette, h.CurrentMode(), "the model decides whether Enter closes the palette")
}

func TestPaletteModeWithoutMatches(t *testing.T) {
	h := New()
	ctx := newContext()
	h.ChangeMode(types.ModePalette, "", ctx)
	ctx.Palette.OnTextChange("zzz")
	require.Equal(t, 0, ctx.MatchCount())

	for _, k := range []tea.KeyType{tea.KeyDown, tea.KeyUp, tea.KeyEnter} {
		actions, _ := h.HandleKey(tea.KeyMsg{Type: k}, ctx)
		assert.Empty(t, actions, k.String())
	}
	assert.Equal(t, types.ModePalette, h.CurrentMode())
}

func TestPaletteModeIgnoresHotkey(t *testing.T) {
	h := New()
	ctx := newContext()
	h.ChangeMode(types.ModePalette, "", ctx)
	h.HandleKey(runes("report"), ctx)
	for i := 0; i < 3; i++ {
		h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}, ctx)
	}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlK}, ctx)

	assert.Empty(t, actions)
	assert.Equal(t, "report", h.TextInput().Value())

	// Other ctrl chords still edit the text
	h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlE}, ctx)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, ctx)
	assert.Equal(t, "repor", h.TextInput().Value())
}

func TestModelContextIsHotkey(t *testing.T) {
	ctx := newContext()
	assert.True(t, ctx.IsHotkey("ctrl+k"))
	assert.False(t, ctx.IsHotkey("k"))
	assert.False(t, ctx.IsHotkey("ctrl+j"))
	assert.False(t, ctx.IsHotkey("alt+k"))
}

func TestPaletteModeEscape(t *testing.T) {
	h := New()
	ctx := newContext()
	h.ChangeMode(types.ModePalette, "", ctx)
	h.HandleKey(runes("x"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.CancelTextAction{Mode: types.ModePalette}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestFormModeSubmit(t *testing.T) {
	h := New()
	ctx := newContext()
	h.ChangeMode(types.ModeForm, "Widget name", ctx)
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "Widget name", h.TextInput().Placeholder)

	h.HandleKey(runes("gizmo"), ctx)
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)

	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "gizmo", Mode: types.ModeForm}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
