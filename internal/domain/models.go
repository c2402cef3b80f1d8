package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTarget is returned for an item with none of url, input or js set
	ErrNoTarget = errors.New("action item has no target")
	// ErrAmbiguousTarget is returned for an item with both url and js set
	ErrAmbiguousTarget = errors.New("action item has more than one target")
)

// ActionItem is one entry in the quick-action palette
type ActionItem struct {
	Label    string
	Keywords []string // matched against the filter query; the label is not
	Icons    []string // icon identifiers shown before the label
	Target   Target
}

// Target is what happens when an item is activated.
// It is one of NavigateTarget, FormTarget or CallbackTarget.
type Target interface {
	isTarget()
	Kind() TargetKind
}

// TargetKind names a Target variant
type TargetKind string

const (
	KindNavigate TargetKind = "navigate"
	KindForm     TargetKind = "form"
	KindCallback TargetKind = "callback"
)

// NavigateTarget opens a URL
type NavigateTarget struct {
	URL string
}

// FormTarget opens the one-field form dialog
type FormTarget struct {
	Action      string // form action URL, may be empty
	Field       string // name of the submitted field
	Placeholder string
	Method      string // "POST" or "GET"
}

// CallbackTarget invokes the callback registered under Name
type CallbackTarget struct {
	Name string
}

func (NavigateTarget) isTarget() {}
func (FormTarget) isTarget()     {}
func (CallbackTarget) isTarget() {}

func (NavigateTarget) Kind() TargetKind { return KindNavigate }
func (FormTarget) Kind() TargetKind     { return KindForm }
func (CallbackTarget) Kind() TargetKind { return KindCallback }

// Validate reports whether the item can be activated
func (i ActionItem) Validate() error {
	if i.Target == nil {
		return fmt.Errorf("%q: %w", i.Label, ErrNoTarget)
	}
	return nil
}

// WireItem is the serialised form of an ActionItem, shared by the item
// endpoint (JSON) and the config file (TOML)
type WireItem struct {
	Label       string   `json:"label" toml:"label"`
	Keywords    []string `json:"keywords" toml:"keywords"`
	Icons       []string `json:"icons,omitempty" toml:"icons,omitempty"`
	URL         string   `json:"url,omitempty" toml:"url,omitempty"`
	Input       string   `json:"input,omitempty" toml:"input,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Method      string   `json:"method,omitempty" toml:"method,omitempty"`
	JS          string   `json:"js,omitempty" toml:"js,omitempty"`
}

// ToItem resolves the wire fields into exactly one Target.
// An input field wins over url, which then becomes the form action.
func (w WireItem) ToItem() (ActionItem, error) {
	item := ActionItem{
		Label:    w.Label,
		Keywords: w.Keywords,
		Icons:    w.Icons,
	}

	switch {
	case w.Input != "" && w.JS != "":
		return ActionItem{}, fmt.Errorf("%q: %w", w.Label, ErrAmbiguousTarget)
	case w.Input != "":
		method := "POST"
		if strings.EqualFold(w.Method, "get") {
			method = "GET"
		}
		item.Target = FormTarget{
			Action:      w.URL,
			Field:       w.Input,
			Placeholder: w.Placeholder,
			Method:      method,
		}
	case w.URL != "" && w.JS != "":
		return ActionItem{}, fmt.Errorf("%q: %w", w.Label, ErrAmbiguousTarget)
	case w.URL != "":
		item.Target = NavigateTarget{URL: w.URL}
	case w.JS != "":
		item.Target = CallbackTarget{Name: w.JS}
	default:
		return ActionItem{}, fmt.Errorf("%q: %w", w.Label, ErrNoTarget)
	}

	return item, nil
}

// FromItem converts an item back to its wire form
func FromItem(item ActionItem) WireItem {
	w := WireItem{
		Label:    item.Label,
		Keywords: item.Keywords,
		Icons:    item.Icons,
	}
	switch t := item.Target.(type) {
	case NavigateTarget:
		w.URL = t.URL
	case FormTarget:
		w.URL = t.Action
		w.Input = t.Field
		w.Placeholder = t.Placeholder
		if t.Method == "GET" {
			w.Method = "get"
		}
	case CallbackTarget:
		w.JS = t.Name
	}
	return w
}
