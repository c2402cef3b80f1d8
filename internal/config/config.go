package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"quickaction/internal/domain"
	"quickaction/internal/eventbus"
)

// FileName is the config file name inside the user config directory
const FileName = "quickaction.toml"

// Config represents the application configuration
type Config struct {
	Version    int               `toml:"version"`
	Hotkey     HotkeySettings    `toml:"hotkey"`
	ItemSource ItemSource        `toml:"item_source"`
	Navigation Navigation        `toml:"navigation"`
	Display    DisplaySettings   `toml:"display"`
	Items      []domain.WireItem `toml:"items"` // static items, listed before fetched ones
}

// HotkeySettings configures the chord that opens the palette
type HotkeySettings struct {
	Modifier string   `toml:"modifier"`
	Keys     []string `toml:"keys"`
}

// ItemSource is the endpoint serving the dynamic item list
type ItemSource struct {
	URL     string            `toml:"url"`
	Timeout Duration          `toml:"timeout"`
	Headers map[string]string `toml:"headers,omitempty"`
}

// Navigation controls how URLs are opened
type Navigation struct {
	BaseURL string   `toml:"base_url"`
	Opener  []string `toml:"opener"` // command and leading args, the URL is appended
}

// DisplaySettings represents UI-related configuration
type DisplaySettings struct {
	MinIcons int               `toml:"min_icons"`
	MaxRows  int               `toml:"max_rows"`
	Icons    map[string]string `toml:"icons,omitempty"` // icon identifier -> glyph
}

// Duration is a time.Duration that reads and writes as "10s"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns <user config dir>/quickaction/quickaction.toml
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "quickaction", FileName)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when
// the file does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Items: len(cfg.Items)})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Hotkey: HotkeySettings{
			Modifier: "ctrl",
			Keys:     []string{"k", "p"},
		},
		ItemSource: ItemSource{
			Timeout: Duration{10 * time.Second},
		},
		Navigation: Navigation{
			Opener: defaultOpener(),
		},
		Display: DisplaySettings{
			MinIcons: 2,
			MaxRows:  12,
		},
	}
}

func defaultOpener() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// applyDefaults fills settings a config file explicitly emptied
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Hotkey.Modifier == "" {
		c.Hotkey.Modifier = def.Hotkey.Modifier
	}
	if len(c.Hotkey.Keys) == 0 {
		c.Hotkey.Keys = def.Hotkey.Keys
	}
	if c.ItemSource.Timeout.Duration <= 0 {
		c.ItemSource.Timeout = def.ItemSource.Timeout
	}
	if len(c.Navigation.Opener) == 0 {
		c.Navigation.Opener = def.Navigation.Opener
	}
	if c.Display.MinIcons < 0 {
		c.Display.MinIcons = 0
	}
	if c.Display.MaxRows <= 0 {
		c.Display.MaxRows = def.Display.MaxRows
	}
}

// Validate checks the hotkey and every static item
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Hotkey.Modifier) {
	case "ctrl", "alt", "shift":
	default:
		errs = append(errs, fmt.Errorf("hotkey modifier %q: want ctrl, alt or shift", c.Hotkey.Modifier))
	}
	for _, k := range c.Hotkey.Keys {
		if k == "" {
			errs = append(errs, errors.New("hotkey keys: empty key"))
		}
	}

	for i, w := range c.Items {
		if _, err := w.ToItem(); err != nil {
			errs = append(errs, fmt.Errorf("items[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// StaticItems converts the configured items. Validate must have passed.
func (c *Config) StaticItems() ([]domain.ActionItem, error) {
	items := make([]domain.ActionItem, 0, len(c.Items))
	for i, w := range c.Items {
		item, err := w.ToItem()
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Marshal renders the config as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
