package ui

import (
	"time"

	"quickaction/internal/eventbus"
	"quickaction/internal/items"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// itemsLoadedMsg carries the result of the item list load
type itemsLoadedMsg struct {
	result items.Result
	err    error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct {
	seq int
}

// quitMsg signals that the application should quit
type quitMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
