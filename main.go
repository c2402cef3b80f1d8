package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"quickaction/internal/config"
	"quickaction/internal/domain"
	"quickaction/internal/eventbus"
	"quickaction/internal/items"
	"quickaction/internal/logging"
	"quickaction/internal/ui"
	"quickaction/internal/ui/commands"
)

// options are the command line flags
type options struct {
	configPath  string
	itemsURL    string
	logFile     string
	debug       bool
	openAtStart bool
	printConfig bool
	printItems  bool
	initConfig  bool
}

func main() {
	var opts options
	pflag.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: user config dir)/quickaction/quickaction.toml")
	pflag.StringVar(&opts.itemsURL, "items-url", "", "Endpoint serving the JSON action list (overrides item_source.url)")
	pflag.StringVar(&opts.logFile, "log-file", logging.DefaultFile, "Log file, empty to disable logging")
	pflag.BoolVar(&opts.debug, "debug", false, "Log at debug level")
	pflag.BoolVar(&opts.openAtStart, "open", false, "Open the palette at start")
	pflag.BoolVar(&opts.printConfig, "print-config", false, "Print the effective configuration and exit")
	pflag.BoolVar(&opts.printItems, "print-items", false, "Load the action list, print it as JSON and exit")
	pflag.BoolVar(&opts.initConfig, "init-config", false, "Write a default config file and exit")
	pflag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "quickaction: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	log, err := logging.New(opts.logFile, opts.debug)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New(log)
	defer bus.Close()
	subscribeLogging(bus, log)

	configSvc := config.NewConfigServiceWithBus(bus, opts.configPath)
	if opts.initConfig {
		return initConfig(configSvc, opts.itemsURL, os.Stdout)
	}

	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	if opts.itemsURL != "" {
		cfg.ItemSource.URL = opts.itemsURL
	}

	if opts.printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	var source items.Source
	if cfg.ItemSource.URL != "" {
		source = items.NewHTTPSource(cfg.ItemSource.URL, cfg.ItemSource.Headers, cfg.ItemSource.Timeout.Duration)
	}

	// The opener outlives the key press, so late failures travel over the bus
	opener := commands.ExecOpener{
		Command: cfg.Navigation.Opener,
		OnExit: func(err error) {
			bus.Publish(eventbus.ErrorEvent{Message: "URL opener failed", Err: err})
		},
	}

	model, err := ui.NewModel(ui.Options{
		Bus:         bus,
		Config:      cfg,
		Source:      source,
		Opener:      opener,
		Logger:      log,
		OpenOnStart: opts.openAtStart,
		Context:     ctx,
	})
	if err != nil {
		return err
	}

	if opts.printItems {
		return printItems(ctx, model, os.Stdout)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Errors raised off the UI goroutine end up in the status line
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})

	log.Info("starting UI", zap.String("config", configSvc.Path()), zap.String("items_url", cfg.ItemSource.URL))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("UI exited normally")
	return nil
}

// initConfig writes the default configuration, refusing to replace a file
func initConfig(svc config.ConfigService, itemsURL string, out io.Writer) error {
	if _, err := os.Stat(svc.Path()); err == nil {
		return fmt.Errorf("config %s already exists", svc.Path())
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.ItemSource.URL = itemsURL
	if err := svc.Save(cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "wrote %s\n", svc.Path())
	return err
}

// printItems writes the loaded action list in the endpoint's wire format
func printItems(ctx context.Context, model *ui.Model, out io.Writer) error {
	res, err := model.LoadItems(ctx)
	if err != nil {
		return err
	}
	for _, skipped := range res.Skipped {
		fmt.Fprintf(os.Stderr, "quickaction: skipped %v\n", skipped)
	}

	wire := make([]domain.WireItem, 0, len(res.Items))
	for _, item := range res.Items {
		wire = append(wire, domain.FromItem(item))
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

// subscribeLogging writes the interesting bus events to the log
func subscribeLogging(bus eventbus.EventBus, log *zap.Logger) {
	log = log.Named("events")

	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Info("config loaded", zap.String("path", event.Path), zap.Int("items", event.Items))
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Info("config saved", zap.String("path", event.Path))
		}
	})
	bus.Subscribe(eventbus.EventItemsLoadStarted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ItemsLoadStartedEvent); ok {
			log.Debug("fetching items", zap.String("url", event.URL))
		}
	})
	bus.Subscribe(eventbus.EventItemsLoadFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ItemsLoadFailedEvent); ok {
			log.Warn("items unavailable", zap.Error(event.Err))
		}
	})
	bus.Subscribe(eventbus.EventPaletteOpened, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PaletteOpenedEvent); ok {
			log.Debug("palette opened", zap.Int("items", event.Items))
		}
	})
	bus.Subscribe(eventbus.EventPaletteClosed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PaletteClosedEvent); ok {
			log.Debug("palette closed", zap.String("query", event.Query))
		}
	})
	bus.Subscribe(eventbus.EventItemActivated, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ItemActivatedEvent); ok {
			log.Info("item activated", zap.String("label", event.Label), zap.String("kind", string(event.Kind)))
		}
	})
	bus.Subscribe(eventbus.EventFormSubmitted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FormSubmittedEvent); ok {
			log.Info("form submitted",
				zap.String("action", event.Action),
				zap.String("method", event.Method),
				zap.Int("status", event.Status))
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Error(event.Message, zap.Error(event.Err))
		}
	})
}
