package views

import (
	"strings"

	"quickaction/internal/palette"
)

// FormRenderer renders the one-field form dialog
type FormRenderer struct {
	styles  *Styles
	palette *PaletteRenderer
}

// NewFormRenderer creates a form renderer sharing the palette's icon glyphs
func NewFormRenderer(styles *Styles, pr *PaletteRenderer) *FormRenderer {
	return &FormRenderer{styles: styles, palette: pr}
}

// RenderForm draws the heading (icons and label), the field and a key hint
func (r *FormRenderer) RenderForm(form palette.Form, input string) string {
	heading := form.Label
	if icons := strings.TrimSpace(r.palette.IconString(form.Icons)); icons != "" {
		heading = icons + " " + form.Label
	}

	var b strings.Builder
	b.WriteString(r.styles.FormHeading.Render(heading))
	b.WriteString("\n")
	b.WriteString(input)
	b.WriteString("\n\n")
	b.WriteString(r.styles.Help.Render("enter submit • esc cancel"))
	return b.String()
}
