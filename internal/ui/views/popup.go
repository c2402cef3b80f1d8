package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws the styled popup over a greyed copy of mainContent,
// centred horizontally. top is the row of the popup's first line; a negative
// value centres it vertically too.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width, top int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := top
	if y < 0 {
		y = (height - modalH) / 2
	}
	if y < 0 {
		y = 0
	}

	base := strings.Split(desaturate(mainContent), "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}

	for i, popupLine := range strings.Split(styledPopup, "\n") {
		base[y+i] = splice(base[y+i], popupLine, x, modalW)
	}
	if height > 0 && len(base) > height {
		base = base[:height]
	}
	return strings.Join(base, "\n")
}

// splice replaces the cells [x, x+w) of line with insert
func splice(line, insert string, x, w int) string {
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(line, x+w, "")
	return left + insert + right
}

// desaturate strips colors and renders every line in dim gray
func desaturate(s string) string {
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		plain := ansi.Strip(line)
		if plain == "" {
			lines[i] = ""
			continue
		}
		lines[i] = gray.Render(plain)
	}
	return strings.Join(lines, "\n")
}
