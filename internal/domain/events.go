package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventItemsLoadStarted EventType = "ItemsLoadStarted"
	EventItemsLoaded      EventType = "ItemsLoaded"
	EventItemsLoadFailed  EventType = "ItemsLoadFailed"
	EventPaletteOpened    EventType = "PaletteOpened"
	EventPaletteClosed    EventType = "PaletteClosed"
	EventItemActivated    EventType = "ItemActivated"
	EventNavigated        EventType = "Navigated"
	EventFormSubmitted    EventType = "FormSubmitted"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ItemsLoadStartedEvent is emitted when the dynamic item fetch begins
type ItemsLoadStartedEvent struct {
	URL string
}

func (e ItemsLoadStartedEvent) Type() EventType { return EventItemsLoadStarted }

// ItemsLoadedEvent is emitted once the item list has been cached
type ItemsLoadedEvent struct {
	Static  int
	Dynamic int
	Skipped int // dynamic items rejected by validation
}

func (e ItemsLoadedEvent) Type() EventType { return EventItemsLoaded }

// ItemsLoadFailedEvent is emitted when the dynamic item fetch fails
type ItemsLoadFailedEvent struct {
	Err error
}

func (e ItemsLoadFailedEvent) Type() EventType { return EventItemsLoadFailed }

// PaletteOpenedEvent is emitted when the palette modal is shown
type PaletteOpenedEvent struct {
	Items int
}

func (e PaletteOpenedEvent) Type() EventType { return EventPaletteOpened }

// PaletteClosedEvent is emitted when the palette modal is dismissed
type PaletteClosedEvent struct {
	Query string
}

func (e PaletteClosedEvent) Type() EventType { return EventPaletteClosed }

// ItemActivatedEvent is emitted when Enter confirms an item
type ItemActivatedEvent struct {
	Label string
	Kind  TargetKind
}

func (e ItemActivatedEvent) Type() EventType { return EventItemActivated }

// NavigatedEvent is emitted after a URL has been handed to the opener
type NavigatedEvent struct {
	URL string
}

func (e NavigatedEvent) Type() EventType { return EventNavigated }

// FormSubmittedEvent is emitted when the form dialog has been submitted
type FormSubmittedEvent struct {
	Action string
	Method string
	Field  string
	Status int // HTTP status for POST, 0 for GET navigation
}

func (e FormSubmittedEvent) Type() EventType { return EventFormSubmitted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Items int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
