package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quickaction/internal/palette"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor. A nil logger discards logs
// and a nil context never cancels.
func NewExecutor(ctx *CommandContext) *Executor {
	if ctx.Log == nil {
		ctx.Log = zap.NewNop()
	}
	if ctx.Callbacks == nil {
		ctx.Callbacks = NewRegistry()
	}
	if ctx.Context == nil {
		ctx.Context = context.Background()
	}
	return &Executor{ctx: ctx}
}

// Callbacks returns the callback registry
func (e *Executor) Callbacks() *Registry {
	return e.ctx.Callbacks
}

// ExecuteNavigate creates and executes a navigate command
func (e *Executor) ExecuteNavigate(url string) tea.Cmd {
	return NewNavigateCommand(e.ctx, url).Execute()
}

// ExecuteSubmit creates and executes a form submission command
func (e *Executor) ExecuteSubmit(form palette.Form, value string) tea.Cmd {
	return NewSubmitFormCommand(e.ctx, form, value).Execute()
}

// ExecuteCallback creates and executes a callback command
func (e *Executor) ExecuteCallback(name string) tea.Cmd {
	return NewCallbackCommand(e.ctx, name).Execute()
}

// ExecuteEffect runs the command for an activation effect. Form effects
// are not executed here: the form dialog has to be filled in first.
func (e *Executor) ExecuteEffect(effect palette.Effect) (tea.Cmd, error) {
	switch eff := effect.(type) {
	case palette.NavigateEffect:
		return e.ExecuteNavigate(eff.URL), nil
	case palette.CallbackEffect:
		return e.ExecuteCallback(eff.Name), nil
	case palette.FormEffect:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported effect %T", effect)
	}
}
