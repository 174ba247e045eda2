package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"blockedit/internal/eventbus"
)

// Select-all modes
const (
	SelectAllImmediate   = "immediate"
	SelectAllProgressive = "progressive"
)

// Config represents the application configuration
type Config struct {
	Version   int             `toml:"version"`
	Selection SelectionConfig `toml:"selection"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Log       LogConfig       `toml:"log"`
	UI        UISettings      `toml:"ui"`
}

// SelectionConfig controls block selection behaviour
type SelectionConfig struct {
	SelectAllKey  string `toml:"select_all_key"`
	CopyKey       string `toml:"copy_key"`
	SelectAllMode string `toml:"select_all_mode"` // immediate or progressive
	InsertDelayMS int    `toml:"insert_delay_ms"` // delay before typed text lands in the replacement block
}

// InsertDelay returns the deferred insertion delay
func (s SelectionConfig) InsertDelay() time.Duration {
	return time.Duration(s.InsertDelayMS) * time.Millisecond
}

// ClipboardConfig controls the system clipboard
type ClipboardConfig struct {
	Enabled bool `toml:"enabled"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowHelp bool `toml:"show_help"`
}

// Validate reports configuration values the editor cannot run with
func (c *Config) Validate() error {
	var errs []error

	switch c.Selection.SelectAllMode {
	case SelectAllImmediate, SelectAllProgressive:
	default:
		errs = append(errs, fmt.Errorf("selection.select_all_mode: unknown mode %q", c.Selection.SelectAllMode))
	}
	if c.Selection.SelectAllKey == "" {
		errs = append(errs, errors.New("selection.select_all_key: must not be empty"))
	}
	if c.Selection.CopyKey == "" {
		errs = append(errs, errors.New("selection.copy_key: must not be empty"))
	}
	if c.Selection.InsertDelayMS < 0 {
		errs = append(errs, fmt.Errorf("selection.insert_delay_ms: must not be negative, got %d", c.Selection.InsertDelayMS))
	}

	return errors.Join(errs...)
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

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return filepath.Join(configDir, "blockedit", "config.toml")
}

// NewConfigService creates a config service for path, or DefaultPath when
// path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the defaults.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config

	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Selection: SelectionConfig{
			SelectAllKey:  "ctrl+a",
			CopyKey:       "ctrl+c",
			SelectAllMode: SelectAllImmediate,
			InsertDelayMS: 20,
		},
		Clipboard: ClipboardConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UISettings{
			ShowHelp: true,
		},
	}
}
