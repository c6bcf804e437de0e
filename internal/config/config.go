// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/datepick/internal/calendar"
)

// AppName is used for config, state and theme directories.
const AppName = "datepick"

// Default configuration values.
const (
	DefaultPlaceholder = "Select a date"
	DefaultColumns     = 2
	DefaultMargin      = 1
	DefaultGap         = 0
	DefaultTheme       = "default"
	MaxPickers         = 8
)

// DefaultLabels are the captions of the four demo pickers. The lower row
// sits near the bottom of the page and usually opens upwards.
var DefaultLabels = []string{
	"Example 1: opens below",
	"Example 2: opens below",
	"Example 3: near the bottom, may open above",
	"Example 4: near the bottom, may open above",
}

// Config represents the datepick configuration.
type Config struct {
	Page      PageConfig      `toml:"page"`
	Popup     PopupConfig     `toml:"popup"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Theme     ThemeConfig     `toml:"theme"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// PageConfig describes the picker page.
type PageConfig struct {
	Labels      []string `toml:"labels"`      // One picker per label
	Placeholder string   `toml:"placeholder"` // Shown when no date is selected
	Columns     int      `toml:"columns"`     // Pickers per row
}

// PopupConfig holds calendar popup geometry in terminal cells.
type PopupConfig struct {
	Margin int `toml:"margin"` // Extra rows required before opening below
	Gap    int `toml:"gap"`    // Rows between trigger and popup
}

// CalendarConfig bounds calendar navigation.
type CalendarConfig struct {
	MinYear int `toml:"min_year"`
	MaxYear int `toml:"max_year"`
}

// ThemeConfig selects the colour theme.
type ThemeConfig struct {
	Name      string `toml:"name"`       // Theme name without .toml extension
	HotReload bool   `toml:"hot_reload"` // Watch user theme files for changes
}

// ClipboardConfig holds clipboard settings (TUI only).
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
	OSC52   bool   `toml:"osc52"`   // Fall back to the terminal when no command is found
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	labels := make([]string, len(DefaultLabels))
	copy(labels, DefaultLabels)

	return &Config{
		Page: PageConfig{
			Labels:      labels,
			Placeholder: DefaultPlaceholder,
			Columns:     DefaultColumns,
		},
		Popup: PopupConfig{
			Margin: DefaultMargin,
			Gap:    DefaultGap,
		},
		Calendar: CalendarConfig{
			MinYear: calendar.MinYear,
			MaxYear: calendar.MaxYear,
		},
		Theme: ThemeConfig{
			Name:      DefaultTheme,
			HotReload: true,
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
			OSC52:   true,
		},
	}
}

// ConfigDir returns the datepick config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// ThemesDir returns the directory holding user themes.
func ThemesDir() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "themes")
}

// StateDir returns the path to the state directory.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func StateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, AppName)
}

// LogPath returns the path of the TUI log file.
func LogPath() string {
	return filepath.Join(StateDir(), AppName+".log")
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	path := StateDir()
	if path == "" {
		return errors.New("unable to determine state directory")
	}
	return os.MkdirAll(path, 0755)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if n := len(c.Page.Labels); n < 1 || n > MaxPickers {
		return fmt.Errorf("page.labels must name between 1 and %d pickers, got %d", MaxPickers, n)
	}
	if c.Page.Columns < 1 || c.Page.Columns > MaxPickers {
		return fmt.Errorf("page.columns must be between 1 and %d, got %d", MaxPickers, c.Page.Columns)
	}
	if c.Popup.Margin < 0 {
		return fmt.Errorf("popup.margin must not be negative, got %d", c.Popup.Margin)
	}
	if c.Popup.Gap < 0 {
		return fmt.Errorf("popup.gap must not be negative, got %d", c.Popup.Gap)
	}
	if c.Calendar.MinYear < calendar.MinYear || c.Calendar.MaxYear > calendar.MaxYear {
		return fmt.Errorf("calendar years must be within %d-%d, got %d-%d",
			calendar.MinYear, calendar.MaxYear, c.Calendar.MinYear, c.Calendar.MaxYear)
	}
	if c.Calendar.MinYear > c.Calendar.MaxYear {
		return fmt.Errorf("calendar.min_year %d is after calendar.max_year %d",
			c.Calendar.MinYear, c.Calendar.MaxYear)
	}
	return nil
}

// CalendarOptions returns the calendar options implied by the config.
func (c *Config) CalendarOptions() []calendar.Option {
	return []calendar.Option{
		calendar.WithYearRange(c.Calendar.MinYear, c.Calendar.MaxYear),
	}
}

// Columns returns the number of pickers per row, never more than there
// are pickers.
func (c *Config) Columns() int {
	if n := len(c.Page.Labels); c.Page.Columns > n {
		return n
	}
	return c.Page.Columns
}
