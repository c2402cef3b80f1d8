package palette

import "strings"

// Key names shared with the terminal adapter
const (
	KeyCtrl   = "ctrl"
	KeyShift  = "shift"
	KeyAlt    = "alt"
	KeyUp     = "up"
	KeyDown   = "down"
	KeyEnter  = "enter"
	KeyEscape = "esc"
)

// KeyEvent is a single key press or release
type KeyEvent struct {
	Key  string
	Down bool
}

// Press returns the key-down event for key
func Press(key string) KeyEvent { return KeyEvent{Key: key, Down: true} }

// Release returns the key-up event for key
func Release(key string) KeyEvent { return KeyEvent{Key: key} }

// HotkeyListener fires when one of Keys goes down while Modifier is held
type HotkeyListener struct {
	Modifier string
	Keys     []string
}

// NewHotkeyListener normalises the configured modifier and keys
func NewHotkeyListener(modifier string, keys []string) HotkeyListener {
	h := HotkeyListener{Modifier: strings.ToLower(modifier)}
	for _, k := range keys {
		h.Keys = append(h.Keys, strings.ToLower(k))
	}
	return h
}

// KeyDown records modifier state and reports whether the hotkey fired
func (h HotkeyListener) KeyDown(s *State, key string) bool {
	key = strings.ToLower(key)
	if setModifier(s, key, true) {
		return false
	}
	if !modifierHeld(s, h.Modifier) {
		return false
	}
	for _, k := range h.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// KeyUp clears modifier state
func (h HotkeyListener) KeyUp(s *State, key string) {
	setModifier(s, strings.ToLower(key), false)
}

func setModifier(s *State, key string, held bool) bool {
	switch key {
	case KeyCtrl:
		s.CtrlHeld = held
	case KeyShift:
		s.ShiftHeld = held
	case KeyAlt:
		s.AltHeld = held
	default:
		return false
	}
	return true
}

func modifierHeld(s *State, modifier string) bool {
	switch modifier {
	case KeyCtrl:
		return s.CtrlHeld
	case KeyShift:
		return s.ShiftHeld
	case KeyAlt:
		return s.AltHeld
	}
	return false
}
