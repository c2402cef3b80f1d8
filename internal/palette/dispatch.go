package palette

import (
	"fmt"

	"quickaction/internal/domain"
)

// Effect is what the host must do after an item is activated
type Effect interface {
	isEffect()
}

// NavigateEffect asks the host to open URL
type NavigateEffect struct {
	URL string
}

// FormEffect asks the host to show the form dialog
type FormEffect struct {
	Form Form
}

// CallbackEffect asks the host to run the named callback
type CallbackEffect struct {
	Name string
}

func (NavigateEffect) isEffect() {}
func (FormEffect) isEffect()     {}
func (CallbackEffect) isEffect() {}

// Form describes the one-field form dialog
type Form struct {
	Action      string
	Field       string
	Placeholder string
	Method      string
	Icons       []string // heading icons
	Label       string   // heading label
}

// Activate maps the item's target to an Effect
func Activate(item domain.ActionItem) (Effect, error) {
	switch t := item.Target.(type) {
	case domain.NavigateTarget:
		return NavigateEffect{URL: t.URL}, nil
	case domain.FormTarget:
		method := t.Method
		if method == "" {
			method = "POST"
		}
		return FormEffect{Form: Form{
			Action:      t.Action,
			Field:       t.Field,
			Placeholder: t.Placeholder,
			Method:      method,
			Icons:       item.Icons,
			Label:       item.Label,
		}}, nil
	case domain.CallbackTarget:
		return CallbackEffect{Name: t.Name}, nil
	case nil:
		return nil, fmt.Errorf("activate %q: %w", item.Label, domain.ErrNoTarget)
	default:
		return nil, fmt.Errorf("activate %q: unsupported target %T", item.Label, t)
	}
}
