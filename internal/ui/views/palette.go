package views

import (
	"fmt"
	"strings"

	"quickaction/internal/palette"
)

// PaletteRenderer renders the action list with its query field
type PaletteRenderer struct {
	styles  *Styles
	icons   map[string]string
	maxRows int
}

// NewPaletteRenderer creates a palette renderer. icons maps icon identifiers
// to the glyphs drawn for them; unknown identifiers are drawn as themselves.
func NewPaletteRenderer(styles *Styles, icons map[string]string, maxRows int) *PaletteRenderer {
	if maxRows <= 0 {
		maxRows = 12
	}
	return &PaletteRenderer{styles: styles, icons: icons, maxRows: maxRows}
}

// RenderPalette renders the query field followed by the visible rows
func (r *PaletteRenderer) RenderPalette(input string, rows []palette.Row) string {
	var b strings.Builder
	b.WriteString(input)
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(r.styles.NoMatch.Render("No matching actions"))
		return b.String()
	}

	start, end := Window(rows, r.maxRows)
	if start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(r.RenderRow(rows[i]))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(rows) {
		b.WriteString("\n")
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(rows)-end)))
	}
	return b.String()
}

// RenderRow draws the icon columns then the label
func (r *PaletteRenderer) RenderRow(row palette.Row) string {
	icons := r.IconString(row.Icons)
	label := row.Label
	if row.Active {
		return r.styles.ActiveRow.Render(fmt.Sprintf("▸ %s %s", icons, label))
	}
	return fmt.Sprintf("  %s %s", r.styles.Icon.Render(icons), r.styles.Row.Render(label))
}

// IconString joins the glyphs for icons. Blank placeholders keep the
// columns aligned across rows.
func (r *PaletteRenderer) IconString(icons []string) string {
	glyphs := make([]string, len(icons))
	for i, id := range icons {
		glyphs[i] = r.glyph(id)
	}
	return strings.Join(glyphs, " ")
}

func (r *PaletteRenderer) glyph(id string) string {
	if id == "" {
		return " "
	}
	if g, ok := r.icons[id]; ok {
		return g
	}
	return id
}

// Window returns the [start, end) range of rows to draw so that the active
// row stays visible with at most maxRows rows shown.
func Window(rows []palette.Row, maxRows int) (int, int) {
	n := len(rows)
	if maxRows <= 0 || n <= maxRows {
		return 0, n
	}
	active := 0
	for i, row := range rows {
		if row.Active {
			active = i
			break
		}
	}
	start := active - maxRows + 1
	if start < 0 {
		start = 0
	}
	return start, start + maxRows
}
