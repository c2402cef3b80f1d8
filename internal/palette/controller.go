// Package palette is the quick-action palette: item filtering, the selection
// cursor, the hotkey listener and activation. It has no terminal dependency;
// the ui package feeds it key events and executes the effects it returns.
package palette

import (
	"quickaction/internal/domain"
)

// LoadStatus tracks the one-time item list load
type LoadStatus int

const (
	LoadIdle LoadStatus = iota
	LoadLoading
	LoadReady
	LoadUnavailable
)

func (s LoadStatus) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// State is the palette state for one program run
type State struct {
	Items     []domain.ActionItem // nil until loaded, never replaced afterwards
	Query     string
	Selection int
	Open      bool
	Load      LoadStatus
	LoadErr   error

	CtrlHeld  bool
	ShiftHeld bool
	AltHeld   bool
}

// Signal tells the host what a transition did
type Signal int

const (
	SignalNone      Signal = iota
	SignalLoad             // host must fetch the item list and call FinishLoad
	SignalOpened           // palette became visible
	SignalClosed           // palette was dismissed
	SignalChanged          // query or selection changed, re-render
	SignalActivated        // Result.Effect must be executed
)

// Result is returned by the transition methods
type Result struct {
	Signal Signal
	Effect Effect
	Err    error
}

// Controller owns the palette state and exposes its transitions
type Controller struct {
	state    State
	hotkey   HotkeyListener
	filtered []domain.ActionItem
}

// NewController creates a closed palette with no items loaded
func NewController(hotkey HotkeyListener) *Controller {
	return &Controller{hotkey: hotkey}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	return c.state
}

// Filtered returns the items matching the current query
func (c *Controller) Filtered() []domain.ActionItem {
	return c.filtered
}

// Selected returns the item under the cursor
func (c *Controller) Selected() (domain.ActionItem, bool) {
	if len(c.filtered) == 0 {
		return domain.ActionItem{}, false
	}
	return c.filtered[ClampSelection(c.state.Selection, len(c.filtered))], true
}

// Rows renders the current filtered list
func (c *Controller) Rows(minIcons int) []Row {
	return Render(c.filtered, c.state.Selection, minIcons)
}

// Hotkey returns the listener that opens the palette
func (c *Controller) Hotkey() HotkeyListener {
	return c.hotkey
}

// OnKeyDown handles a key press. While closed only the hotkey matters;
// while open the arrows, Enter and Esc drive the cursor.
func (c *Controller) OnKeyDown(ev KeyEvent) Result {
	if !c.state.Open {
		if c.hotkey.KeyDown(&c.state, ev.Key) {
			return c.RequestOpen()
		}
		return Result{}
	}

	switch ev.Key {
	case KeyDown:
		c.MoveDown()
		return Result{Signal: SignalChanged}
	case KeyUp:
		c.MoveUp()
		return Result{Signal: SignalChanged}
	case KeyEnter:
		return c.Confirm()
	case KeyEscape:
		return c.Dismiss()
	}

	// Modifier tracking continues while open
	c.hotkey.KeyDown(&c.state, ev.Key)
	return Result{}
}

// OnKeyUp handles a key release
func (c *Controller) OnKeyUp(ev KeyEvent) {
	c.hotkey.KeyUp(&c.state, ev.Key)
}

// OnTextChange refilters for a new query and resets the cursor
func (c *Controller) OnTextChange(query string) Result {
	if !c.state.Open {
		return Result{}
	}
	c.state.Query = query
	c.state.Selection = 0
	c.filtered = Filter(query, c.state.Items)
	return Result{Signal: SignalChanged}
}

// MoveDown advances the cursor, stopping at the last match
func (c *Controller) MoveDown() {
	c.state.Selection = ClampSelection(c.state.Selection+1, len(c.filtered))
}

// MoveUp moves the cursor back, stopping at 0
func (c *Controller) MoveUp() {
	c.state.Selection--
	if c.state.Selection < 0 {
		c.state.Selection = 0
	}
}

// RequestOpen opens the palette, or asks the host to load the items first.
// Requests while a load is in flight are ignored.
func (c *Controller) RequestOpen() Result {
	if c.state.Open {
		return Result{}
	}
	switch c.state.Load {
	case LoadReady:
		return c.open()
	case LoadLoading:
		return Result{}
	default:
		c.state.Load = LoadLoading
		c.state.LoadErr = nil
		return Result{Signal: SignalLoad}
	}
}

// FinishLoad caches a loaded item list and opens the palette. On error the
// palette stays closed and the next RequestOpen retries.
func (c *Controller) FinishLoad(items []domain.ActionItem, err error) Result {
	if c.state.Load == LoadReady {
		return Result{}
	}
	if err != nil {
		c.state.Load = LoadUnavailable
		c.state.LoadErr = err
		return Result{Err: err}
	}
	if items == nil {
		items = []domain.ActionItem{}
	}
	c.state.Items = items
	c.state.Load = LoadReady
	return c.open()
}

func (c *Controller) open() Result {
	c.state.Query = ""
	c.state.Selection = 0
	c.filtered = Filter("", c.state.Items)
	if len(c.filtered) == 0 {
		return Result{}
	}
	c.state.Open = true
	return Result{Signal: SignalOpened}
}

// Confirm activates the selected item and closes the palette.
// With no matches it does nothing.
func (c *Controller) Confirm() Result {
	item, ok := c.Selected()
	if !ok {
		return Result{}
	}
	effect, err := Activate(item)
	if err != nil {
		return Result{Err: err}
	}
	c.close()
	return Result{Signal: SignalActivated, Effect: effect}
}

// Dismiss closes the palette. The cached items survive.
func (c *Controller) Dismiss() Result {
	if !c.state.Open {
		return Result{}
	}
	c.close()
	return Result{Signal: SignalClosed}
}

func (c *Controller) close() {
	c.state.Open = false
	c.state.CtrlHeld = false
	c.state.ShiftHeld = false
	c.state.AltHeld = false
}
