package commands

import (
	"errors"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"quickaction/internal/domain"
)

// Names of the callbacks every build provides
const (
	CallbackHelp = "help"
	CallbackQuit = "quit"
)

// ErrUnknownCallback is returned for a callback name nobody registered
var ErrUnknownCallback = errors.New("unknown callback")

// Callback is the Go counterpart of an item's js function. The returned
// command, if any, is run by the program.
type Callback func() tea.Cmd

// Registry maps callback names to callbacks
type Registry struct {
	callbacks map[string]Callback
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[string]Callback)}
}

// Register adds or replaces the callback for name
func (r *Registry) Register(name string, cb Callback) {
	r.callbacks[name] = cb
}

// Names returns the registered names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.callbacks))
	for name := range r.callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named callback
func (r *Registry) Invoke(name string) (tea.Cmd, error) {
	cb, ok := r.callbacks[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCallback, name)
	}
	return cb(), nil
}

// Validate rejects items whose callback is not registered
func (r *Registry) Validate(item domain.ActionItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if cb, ok := item.Target.(domain.CallbackTarget); ok {
		if _, found := r.callbacks[cb.Name]; !found {
			return fmt.Errorf("%w %q", ErrUnknownCallback, cb.Name)
		}
	}
	return nil
}

// BuiltinItems are the items present in every item list
func BuiltinItems() []domain.ActionItem {
	return []domain.ActionItem{
		{
			Label:    "Keyboard shortcuts",
			Keywords: []string{"help", "keyboard shortcuts", "hotkeys"},
			Icons:    []string{"help"},
			Target:   domain.CallbackTarget{Name: CallbackHelp},
		},
		{
			Label:    "Quit",
			Keywords: []string{"quit", "exit", "close"},
			Icons:    []string{"quit"},
			Target:   domain.CallbackTarget{Name: CallbackQuit},
		},
	}
}
