package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"quickaction/internal/config"
	"quickaction/internal/domain"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer builds the keyboard shortcut and action reference
type HelpRenderer struct {
	hotkey config.HotkeySettings
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(hotkey config.HotkeySettings) *HelpRenderer {
	return &HelpRenderer{hotkey: hotkey}
}

// Chords returns the hotkey chords, e.g. "ctrl+k"
func (r *HelpRenderer) Chords() []string {
	chords := make([]string, 0, len(r.hotkey.Keys))
	for _, k := range r.hotkey.Keys {
		chords = append(chords, r.hotkey.Modifier+"+"+k)
	}
	return chords
}

// Content renders the help text. items may be nil when the list is not loaded
// yet; callbacks are the names a js item may refer to.
func (r *HelpRenderer) Content(items []domain.ActionItem, callbacks []string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	dimStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	line := func(b *strings.Builder, key, desc string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-14s", key)), descStyle.Render(desc)))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Quick Actions Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Open"))
	help.WriteString("\n")
	line(&help, strings.Join(r.Chords(), ", "), "Open the action palette")
	line(&help, "?", "Toggle this help")
	line(&help, "q, ctrl+c", "Quit")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("In the palette"))
	help.WriteString("\n")
	line(&help, "type", "Filter actions by keyword")
	line(&help, "↑/↓, tab", "Move the selection")
	line(&help, "enter", "Run the selected action")
	line(&help, "esc", "Close")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Actions"))
	help.WriteString("\n")
	if len(items) == 0 {
		help.WriteString(dimStyle.Render("  Actions are loaded the first time the palette opens"))
		help.WriteString("\n")
	}
	for _, item := range items {
		desc := item.Label
		if len(item.Keywords) > 0 {
			desc = fmt.Sprintf("%s  %s", item.Label, dimStyle.Render(strings.Join(item.Keywords, ", ")))
		}
		line(&help, kindLabel(item), desc)
	}

	if len(callbacks) > 0 {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render("Callbacks for js items"))
		help.WriteString("\n")
		line(&help, "js", strings.Join(callbacks, ", "))
	}

	return strings.TrimRight(help.String(), "\n")
}

// Popup returns Content cut to fit height, with a marker when lines are hidden
func (r *HelpRenderer) Popup(items []domain.ActionItem, callbacks []string, height int) string {
	content := r.Content(items, callbacks)
	lines := strings.Split(content, "\n")

	// Popup border and padding take four lines
	visible := height - 4
	if visible < 5 {
		visible = 5
	}
	if len(lines) <= visible {
		return content
	}
	lines = lines[:visible]
	lines[visible-1] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↓ (more below, run the help action for the full list)")
	return strings.Join(lines, "\n")
}

func kindLabel(item domain.ActionItem) string {
	if item.Target == nil {
		return ""
	}
	switch item.Target.Kind() {
	case domain.KindNavigate:
		return "link"
	case domain.KindForm:
		return "form"
	case domain.KindCallback:
		return "action"
	}
	return ""
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// SetProgram sets the program used to release and restore the terminal
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to leave its screen before Bubble Tea redraws
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Writing on exit would leave the help text on our screen
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
