package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quickaction/internal/eventbus"
	"quickaction/internal/palette"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Context   context.Context // cancels in-flight requests on shutdown
	Bus       eventbus.EventBus
	Opener    Opener
	Client    *http.Client
	BaseURL   string
	Callbacks *Registry
	Log       *zap.Logger
}

func (c *CommandContext) publish(e eventbus.DomainEvent) {
	if c.Bus != nil {
		c.Bus.Publish(e)
	}
}

// NavigatedMsg reports the outcome of a NavigateCommand
type NavigatedMsg struct {
	URL string
	Err error
}

// FormSubmittedMsg reports the outcome of a SubmitFormCommand
type FormSubmittedMsg struct {
	Form   palette.Form
	Target string
	Status int
	Err    error
}

// CallbackFailedMsg reports a callback that could not be invoked
type CallbackFailedMsg struct {
	Name string
	Err  error
}

// NavigateCommand opens a URL
type NavigateCommand struct {
	ctx *CommandContext
	url string
}

// NewNavigateCommand creates a new navigate command
func NewNavigateCommand(ctx *CommandContext, url string) *NavigateCommand {
	return &NavigateCommand{ctx: ctx, url: url}
}

// Execute resolves the URL and hands it to the opener
func (c *NavigateCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		target, err := ResolveURL(c.ctx.BaseURL, c.url)
		if err == nil {
			err = c.ctx.Opener.Open(target)
		}
		if err != nil {
			c.ctx.Log.Warn("navigation failed", zap.String("url", c.url), zap.Error(err))
			return NavigatedMsg{URL: c.url, Err: err}
		}
		c.ctx.Log.Info("navigated", zap.String("url", target))
		c.ctx.publish(eventbus.NavigatedEvent{URL: target})
		return NavigatedMsg{URL: target}
	}
}

// SubmitFormCommand submits the form dialog's single field
type SubmitFormCommand struct {
	ctx   *CommandContext
	form  palette.Form
	value string
}

// NewSubmitFormCommand creates a new submit command
func NewSubmitFormCommand(ctx *CommandContext, form palette.Form, value string) *SubmitFormCommand {
	return &SubmitFormCommand{ctx: ctx, form: form, value: value}
}

// Execute navigates to action?field=value for GET and posts the field for POST
func (c *SubmitFormCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		msg := c.submit()
		if msg.Err != nil {
			c.ctx.Log.Warn("form submission failed",
				zap.String("action", c.form.Action),
				zap.String("method", c.form.Method),
				zap.Error(msg.Err))
			return msg
		}
		c.ctx.publish(eventbus.FormSubmittedEvent{
			Action: msg.Target,
			Method: c.form.Method,
			Field:  c.form.Field,
			Status: msg.Status,
		})
		return msg
	}
}

func (c *SubmitFormCommand) submit() FormSubmittedMsg {
	msg := FormSubmittedMsg{Form: c.form}

	action, err := ResolveURL(c.ctx.BaseURL, c.form.Action)
	if err != nil {
		msg.Err = err
		return msg
	}

	if strings.EqualFold(c.form.Method, http.MethodGet) {
		target, err := WithQuery(action, c.form.Field, c.value)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Target = target
		msg.Err = c.ctx.Opener.Open(target)
		return msg
	}

	msg.Target = action
	client := c.ctx.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	form := url.Values{c.form.Field: {c.value}}
	req, err := http.NewRequestWithContext(c.ctx.Context, http.MethodPost, action, strings.NewReader(form.Encode()))
	if err != nil {
		msg.Err = fmt.Errorf("failed to build request: %w", err)
		return msg
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		msg.Err = fmt.Errorf("failed to post %s: %w", action, err)
		return msg
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	msg.Status = resp.StatusCode
	if resp.StatusCode >= 400 {
		msg.Err = fmt.Errorf("post %s: %s", action, resp.Status)
	}
	return msg
}

// CallbackCommand invokes a registered callback
type CallbackCommand struct {
	ctx  *CommandContext
	name string
}

// NewCallbackCommand creates a new callback command
func NewCallbackCommand(ctx *CommandContext, name string) *CallbackCommand {
	return &CallbackCommand{ctx: ctx, name: name}
}

// Execute runs the callback synchronously; it returns the callback's own command
func (c *CallbackCommand) Execute() tea.Cmd {
	cmd, err := c.ctx.Callbacks.Invoke(c.name)
	if err != nil {
		c.ctx.Log.Error("callback failed", zap.String("name", c.name), zap.Error(err))
		return func() tea.Msg { return CallbackFailedMsg{Name: c.name, Err: err} }
	}
	return cmd
}
