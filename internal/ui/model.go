package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quickaction/internal/config"
	"quickaction/internal/eventbus"
	"quickaction/internal/items"
	"quickaction/internal/palette"
	"quickaction/internal/ui/commands"
	"quickaction/internal/ui/input"
	inputtypes "quickaction/internal/ui/input/types"
	"quickaction/internal/ui/views"
)

// statusTTL is how long informational status messages stay visible
const statusTTL = 4 * time.Second

// Options holds the collaborators of a Model
type Options struct {
	Bus         eventbus.EventBus
	Config      *config.Config
	Source      items.Source // nil when there is no item endpoint
	Opener      commands.Opener
	HTTPClient  *http.Client // used for POST forms
	Logger      *zap.Logger
	OpenOnStart bool            // open the palette as soon as the program starts
	Context     context.Context // cancels an in-flight item fetch, defaults to Background
}

// Model represents the UI state
type Model struct {
	ctx    context.Context
	bus    eventbus.EventBus
	config *config.Config
	log    *zap.Logger

	// UI-specific state
	width       int
	height      int
	help        help.Model
	keys        *keyMap
	inPagerMode bool // tracks if we're currently in pager mode
	showHelp    bool
	openOnStart bool

	statusMessage string
	statusKind    views.StatusKind
	statusSeq     int

	palette      *palette.Controller
	form         *palette.Form // the form dialog being filled in
	loader       *items.Loader
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. It fails when a required collaborator is
// missing or a configured item cannot be used.
func NewModel(opts Options) (*Model, error) {
	if opts.Config == nil {
		return nil, errors.New("ui: config is required")
	}
	if opts.Opener == nil {
		return nil, errors.New("ui: URL opener is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.Config
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Model{
		ctx:          ctx,
		bus:          opts.Bus,
		config:       cfg,
		log:          log.Named("ui"),
		help:         help.New(),
		openOnStart:  opts.OpenOnStart,
		palette:      palette.NewController(palette.NewHotkeyListener(cfg.Hotkey.Modifier, cfg.Hotkey.Keys)),
		renderer:     views.NewRenderer(cfg.Display.Icons, cfg.Display.MaxRows),
		helpRenderer: NewHelpRenderer(cfg.Hotkey),
		helpOps:      NewHelpOps(nil),
		inputHandler: input.New(),
	}
	m.keys = newKeyMap(m.helpRenderer.Chords())

	registry := commands.NewRegistry()
	registry.Register(commands.CallbackHelp, m.showHelpPager)
	registry.Register(commands.CallbackQuit, func() tea.Cmd {
		return func() tea.Msg { return quitMsg{} }
	})

	m.cmdExecutor = commands.NewExecutor(&commands.CommandContext{
		Context:   ctx,
		Bus:       opts.Bus,
		Opener:    opts.Opener,
		Client:    opts.HTTPClient,
		BaseURL:   cfg.Navigation.BaseURL,
		Callbacks: registry,
		Log:       log.Named("commands"),
	})

	static, err := cfg.StaticItems()
	if err != nil {
		return nil, err
	}
	static = append(static, commands.BuiltinItems()...)
	for _, item := range static {
		if err := registry.Validate(item); err != nil {
			return nil, fmt.Errorf("item %q: %w", item.Label, err)
		}
	}

	m.loader = items.NewLoader(static, opts.Source,
		items.WithValidator(registry.Validate),
		items.WithBus(opts.Bus),
		items.WithLogger(log),
		items.WithTimeout(cfg.ItemSource.Timeout.Duration),
	)

	return m, nil
}

// LoadItems loads the item list the palette shows, fetching it on first use
func (m *Model) LoadItems(ctx context.Context) (items.Result, error) {
	return m.loader.Load(ctx)
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.openOnStart {
		return m.handleResult(m.palette.RequestOpen())
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// The help popup swallows the next key
		if m.showHelp {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.showHelp = false
			return m, nil
		}

		ctx := &input.ModelContext{Palette: m.palette}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		inputCmd := m.inputHandler.Update(msg)
		_, cmd := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(inputCmd, cmd)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	st := m.palette.State()
	m.keys.mode = m.inputHandler.CurrentMode()

	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Chords:        m.helpRenderer.Chords(),
		Loading:       st.Load == palette.LoadLoading,
		StatusMessage: m.statusMessage,
		StatusKind:    m.statusKind,
		HelpModel:     m.help,
		Keys:          m.keys,
	}
	if st.Load == palette.LoadReady {
		vs.ItemCount = len(st.Items)
	}

	ti := m.inputHandler.TextInput()
	if st.Open {
		vs.PaletteOpen = true
		vs.Rows = m.palette.Rows(m.config.Display.MinIcons)
		if ti != nil {
			vs.PaletteInput = ti.View()
		}
	}
	if m.form != nil {
		vs.FormOpen = true
		vs.Form = *m.form
		if ti != nil {
			vs.FormInput = ti.View()
		}
	}
	if m.showHelp {
		vs.ShowHelp = true
		vs.HelpContent = m.helpRenderer.Popup(st.Items, m.cmdExecutor.Callbacks().Names(), m.height)
	}

	return m.renderer.Render(vs)
}

// processAction applies one input action to the palette and returns follow-up work
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.log.Debug("processAction", zap.String("action", action.Type()))

	switch a := action.(type) {
	case inputtypes.KeyEventAction:
		if a.Event.Down {
			return m.handleResult(m.palette.OnKeyDown(a.Event))
		}
		m.palette.OnKeyUp(a.Event)

	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.palette.MoveUp()
		case "down":
			m.palette.MoveDown()
		}

	case inputtypes.UpdateTextAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModePalette {
			m.palette.OnTextChange(a.Text)
		}

	case inputtypes.ActivateAction:
		item, ok := m.palette.Selected()
		res := m.palette.Confirm()
		if ok && res.Signal == palette.SignalActivated {
			m.log.Info("item activated", zap.String("label", item.Label))
			m.publish(eventbus.ItemActivatedEvent{Label: item.Label, Kind: item.Target.Kind()})
		}
		return m.handleResult(res)

	case inputtypes.CancelTextAction:
		switch a.Mode {
		case inputtypes.ModePalette:
			return m.handleResult(m.palette.Dismiss())
		case inputtypes.ModeForm:
			m.form = nil
		}

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeForm && m.form != nil {
			form := *m.form
			m.form = nil
			m.setStatus(fmt.Sprintf("Submitting %s…", form.Label), views.StatusPending)
			return m.cmdExecutor.ExecuteSubmit(form, a.Text)
		}

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.QuitAction:
		if a.Force {
			return tea.Quit
		}
		return func() tea.Msg { return quitMsg{} }
	}

	return nil
}

// handleResult turns a palette transition into UI changes and commands
func (m *Model) handleResult(res palette.Result) tea.Cmd {
	ctx := &input.ModelContext{Palette: m.palette}

	if res.Err != nil {
		m.log.Warn("palette error", zap.Error(res.Err))
		m.setStatus(res.Err.Error(), views.StatusError)
	}

	switch res.Signal {
	case palette.SignalLoad:
		m.setStatus("Loading actions…", views.StatusPending)
		return tea.Batch(m.loadItems(), tick())

	case palette.SignalOpened:
		m.publish(eventbus.PaletteOpenedEvent{Items: len(m.palette.State().Items)})
		return m.inputHandler.ChangeMode(inputtypes.ModePalette, "Type to filter actions", ctx)

	case palette.SignalClosed:
		m.publish(eventbus.PaletteClosedEvent{Query: m.palette.State().Query})
		return m.inputHandler.ChangeMode(inputtypes.ModeNormal, "", ctx)

	case palette.SignalActivated:
		return m.executeEffect(res.Effect)
	}
	return nil
}

// executeEffect leaves the palette and runs what the activated item asks for
func (m *Model) executeEffect(effect palette.Effect) tea.Cmd {
	ctx := &input.ModelContext{Palette: m.palette}

	if f, ok := effect.(palette.FormEffect); ok {
		form := f.Form
		m.form = &form
		return m.inputHandler.ChangeMode(inputtypes.ModeForm, form.Placeholder, ctx)
	}

	modeCmd := m.inputHandler.ChangeMode(inputtypes.ModeNormal, "", ctx)
	cmd, err := m.cmdExecutor.ExecuteEffect(effect)
	if err != nil {
		m.setStatus(err.Error(), views.StatusError)
	}
	return tea.Batch(modeCmd, cmd)
}

// loadItems fetches the item list off the UI goroutine
func (m *Model) loadItems() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		res, err := loader.Load(ctx)
		return itemsLoadedMsg{result: res, err: err}
	}
}

// showHelpPager is the help callback: the full reference in the ov pager
func (m *Model) showHelpPager() tea.Cmd {
	content := m.helpRenderer.Content(m.palette.State().Items, m.cmdExecutor.Callbacks().Names())
	program := m.program
	if program == nil {
		return func() tea.Msg { return helpPagerMsg{err: errors.New("program not set")} }
	}
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// handleNonKeyboardMsg processes messages that aren't keyboard input
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		if e, ok := msg.Event.(eventbus.ErrorEvent); ok {
			text := e.Message
			if e.Err != nil {
				text = fmt.Sprintf("%s: %v", e.Message, e.Err)
			}
			return m, m.setStatus(text, views.StatusError)
		}
		return m, nil

	case itemsLoadedMsg:
		return m, m.finishLoad(msg)

	case tickMsg:
		// The spinner only runs while the list is loading
		if m.inPagerMode || m.palette.State().Load != palette.LoadLoading {
			return m, nil
		}
		return m, tick()

	case commands.NavigatedMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("Could not open %s: %v", msg.URL, msg.Err), views.StatusError)
		}
		return m, m.setStatus("Opened "+msg.URL, views.StatusSuccess)

	case commands.FormSubmittedMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("%s failed: %v", msg.Form.Label, msg.Err), views.StatusError)
		}
		if msg.Status > 0 {
			return m, m.setStatus(fmt.Sprintf("%s: %d %s", msg.Form.Label, msg.Status, http.StatusText(msg.Status)), views.StatusSuccess)
		}
		return m, m.setStatus("Opened "+msg.Target, views.StatusSuccess)

	case commands.CallbackFailedMsg:
		return m, m.setStatus(fmt.Sprintf("Action %q failed: %v", msg.Name, msg.Err), views.StatusError)

	case helpPagerMsg:
		if msg.err != nil {
			// No pager, fall back to the popup
			m.log.Warn("help pager failed", zap.Error(msg.err))
			m.showHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil

	case quitMsg:
		return m, tea.Quit

	default:
		return m, nil
	}
}

func (m *Model) finishLoad(msg itemsLoadedMsg) tea.Cmd {
	loaded := msg.result.Items
	if msg.err != nil {
		loaded = nil
	}
	res := m.palette.FinishLoad(loaded, msg.err)
	cmd := m.handleResult(res)

	switch {
	case msg.err != nil:
		// handleResult already reported it
	case len(msg.result.Skipped) > 0:
		m.setStatus(fmt.Sprintf("%d invalid actions skipped, see the log", len(msg.result.Skipped)), views.StatusError)
	case !m.palette.State().Open:
		return tea.Batch(cmd, m.setStatus("No quick actions available", views.StatusInfo))
	default:
		m.statusMessage = ""
	}
	return cmd
}

// setStatus shows text in the status line. Informational messages clear
// themselves after statusTTL; errors and pending messages stay until replaced.
func (m *Model) setStatus(text string, kind views.StatusKind) tea.Cmd {
	m.statusSeq++
	m.statusMessage = text
	m.statusKind = kind
	if kind == views.StatusError || kind == views.StatusPending {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
