package input

import (
	"quickaction/internal/palette"
	"quickaction/internal/ui/input/modes"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Palette *palette.Controller
}

// MatchCount returns the number of items matching the current query
func (c *ModelContext) MatchCount() int {
	return len(c.Palette.Filtered())
}

// IsHotkey reports whether chord would fire the palette hotkey
func (c *ModelContext) IsHotkey(chord string) bool {
	hotkey := c.Palette.Hotkey()
	var scratch palette.State
	for _, ev := range modes.ChordEvents(chord) {
		if ev.Down && hotkey.KeyDown(&scratch, ev.Key) {
			return true
		}
	}
	return false
}
