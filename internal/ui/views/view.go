package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"quickaction/internal/palette"
)

// StatusKind selects the status line color
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusError
	StatusSuccess
	StatusPending // an operation in flight, replaced when it reports back
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Chords        []string // hotkey chords shown in the hint
	Loading       bool
	ItemCount     int // 0 until the list is loaded
	StatusMessage string
	StatusKind    StatusKind

	PaletteOpen  bool
	PaletteInput string // rendered query field
	Rows         []palette.Row

	FormOpen  bool
	Form      palette.Form
	FormInput string // rendered text field

	ShowHelp    bool
	HelpContent string

	HelpModel help.Model
	Keys      help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	paletteRender *PaletteRenderer
	formRender    *FormRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(icons map[string]string, maxRows int) *Renderer {
	styles := NewStyles()
	pr := NewPaletteRenderer(styles, icons, maxRows)
	return &Renderer{
		styles:        styles,
		paletteRender: pr,
		formRender:    NewFormRenderer(styles, pr),
		popupRender:   NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	logo := r.styles.Title.Render("quickaction")
	titleLine := logo
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicator := r.styles.Dim.Render(fmt.Sprintf("%s Loading actions", spinner[frame]))

		termWidth := state.Width
		if termWidth <= 0 {
			termWidth = 80
		}
		padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
		if padding < 2 {
			padding = 2
		}
		titleLine = logo + strings.Repeat(" ", padding) + indicator
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	content.WriteString(r.renderHint(state))
	content.WriteString("\n")

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.renderStatus(state))
		content.WriteString("\n")
	}

	// Push the key help to the bottom
	footer := ""
	if !state.ShowHelp && state.Keys != nil {
		footer = state.HelpModel.View(state.Keys)
	}
	if footer != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if pad := availableLines - currentLines - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(footer)
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	// Overlays, topmost first
	switch {
	case state.ShowHelp && state.HelpContent != "":
		return r.popupRender.RenderPopupOverlay(finalContent, state.HelpContent, state.Height, state.Width, -1, r.styles.HelpBox)
	case state.FormOpen:
		return r.popupRender.RenderPopupOverlay(finalContent, r.formRender.RenderForm(state.Form, state.FormInput), state.Height, state.Width, -1, r.styles.FormBox)
	case state.PaletteOpen:
		return r.popupRender.RenderPopupOverlay(finalContent, r.paletteRender.RenderPalette(state.PaletteInput, state.Rows), state.Height, state.Width, paletteTop(state.Height), r.styles.PaletteBox)
	}

	return finalContent
}

// paletteTop places the palette in the upper part of the screen
func paletteTop(height int) int {
	if height <= 0 {
		return 2
	}
	return height / 6
}

func (r *Renderer) renderHint(state ViewState) string {
	if len(state.Chords) == 0 {
		return r.styles.Dim.Render("No hotkey configured")
	}
	keys := make([]string, len(state.Chords))
	for i, c := range state.Chords {
		keys[i] = r.styles.Hint.Render(c)
	}
	hint := fmt.Sprintf("Press %s to open the action palette", strings.Join(keys, " or "))
	if state.ItemCount > 0 {
		hint += r.styles.Dim.Render(fmt.Sprintf(" (%d actions)", state.ItemCount))
	}
	return hint
}

func (r *Renderer) renderStatus(state ViewState) string {
	switch state.StatusKind {
	case StatusError:
		return r.styles.StatusError.Render(state.StatusMessage)
	case StatusSuccess:
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	case StatusPending:
		return r.styles.StatusLoading.Render(state.StatusMessage)
	default:
		return r.styles.Status.Render(state.StatusMessage)
	}
}
