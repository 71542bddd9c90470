// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/elevateui/internal/alert"
	"github.com/jmylchreest/elevateui/internal/model"
	"github.com/jmylchreest/elevateui/internal/render"
)

// Default configuration values.
const (
	DefaultContainer    = "alert-container"
	DefaultSeverity     = "info"
	DefaultDuration     = 5 * time.Second
	DefaultDebounceWait = 300 * time.Millisecond
	DefaultChartHeight  = 250
	DefaultBarWidth     = 30
	DefaultBarColor     = "#4a6bff"
	DefaultDateLayout   = "Mon, Jan 2"
	DefaultTUIRefresh   = time.Second
)

// Config represents the elevateui configuration.
type Config struct {
	Alerts    AlertsConfig    `toml:"alerts"`
	Debounce  DebounceConfig  `toml:"debounce"`
	Chart     ChartConfig     `toml:"chart"`
	Date      DateConfig      `toml:"date"`
	TUI       TUIConfig       `toml:"tui"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// AlertsConfig holds the defaults used when showing an alert.
type AlertsConfig struct {
	Container       string   `toml:"container"`
	Severity        string   `toml:"severity"`          // info, success, warning, danger
	Duration        Duration `toml:"duration"`          // "0" = persist until dismissed
	MaxPerContainer int      `toml:"max_per_container"` // 0 = unlimited
}

// DebounceConfig holds the quiet period used for debounced reloads.
type DebounceConfig struct {
	Wait Duration `toml:"wait"`
}

// ChartConfig holds default bar chart options.
type ChartConfig struct {
	Height       int    `toml:"height"`
	BarWidth     int    `toml:"bar_width"`
	BarColor     string `toml:"bar_color"`
	ShowTooltips bool   `toml:"show_tooltips"`
	XLabel       string `toml:"x_label"`
	YLabel       string `toml:"y_label"`
}

// DateConfig holds date formatting options.
type DateConfig struct {
	Layout string `toml:"layout"` // Go reference layout
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp   bool     `toml:"show_help"`
	Refresh    Duration `toml:"refresh"`    // How often relative times are redrawn
	Containers []string `toml:"containers"` // Containers listed even while empty
}

// ClipboardConfig holds clipboard settings for the TUI copy keys.
type ClipboardConfig struct {
	Command string `toml:"command"` // Empty = auto-detect wl-copy, xclip, xsel
}

// Validation errors.
var (
	ErrNegativeDuration = errors.New("duration cannot be negative")
	ErrChartSize        = errors.New("chart height and bar width must be positive")
	ErrNegativeLimit    = errors.New("max_per_container cannot be negative")
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Alerts: AlertsConfig{
			Container: DefaultContainer,
			Severity:  DefaultSeverity,
			Duration:  Duration(DefaultDuration),
		},
		Debounce: DebounceConfig{
			Wait: Duration(DefaultDebounceWait),
		},
		Chart: ChartConfig{
			Height:       DefaultChartHeight,
			BarWidth:     DefaultBarWidth,
			BarColor:     DefaultBarColor,
			ShowTooltips: true,
		},
		Date: DateConfig{
			Layout: DefaultDateLayout,
		},
		TUI: TUIConfig{
			ShowHelp:   true,
			Refresh:    Duration(DefaultTUIRefresh),
			Containers: []string{DefaultContainer, "sidebar"},
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "elevateui", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	if _, err := model.ParseSeverity(c.Alerts.Severity); err != nil {
		return err
	}
	if c.Alerts.Duration < 0 || c.Debounce.Wait < 0 || c.TUI.Refresh < 0 {
		return ErrNegativeDuration
	}
	if c.Alerts.MaxPerContainer < 0 {
		return ErrNegativeLimit
	}
	if c.Chart.Height <= 0 || c.Chart.BarWidth <= 0 {
		return ErrChartSize
	}
	return nil
}

// AlertSeverity returns the configured default severity.
// Validate guarantees it parses; an invalid value falls back to info.
func (c *Config) AlertSeverity() model.Severity {
	sev, err := model.ParseSeverity(c.Alerts.Severity)
	if err != nil {
		return model.SeverityInfo
	}
	return sev
}

// AlertSettings converts the [alerts] section into manager defaults.
func (c *Config) AlertSettings() alert.Settings {
	return alert.Settings{
		Severity:        c.AlertSeverity(),
		ContainerID:     c.Alerts.Container,
		Duration:        c.Alerts.Duration.Duration(),
		MaxPerContainer: c.Alerts.MaxPerContainer,
	}
}

// ChartOptions converts the [chart] section into render options.
func (c *Config) ChartOptions() render.ChartOptions {
	show := c.Chart.ShowTooltips
	return render.ChartOptions{
		Height:       c.Chart.Height,
		BarWidth:     c.Chart.BarWidth,
		BarColor:     c.Chart.BarColor,
		ShowTooltips: &show,
		XLabel:       c.Chart.XLabel,
		YLabel:       c.Chart.YLabel,
	}
}

// ParseError reports a config file that could not be decoded or validated.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
