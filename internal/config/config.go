// Package config provides configuration types and defaults for asana.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/asana/internal/log"
)

// DefaultEndpoint is the hosted booking API.
const DefaultEndpoint = "https://yogaclasses-ocb4.onrender.com/api/v1/"

// Config holds all configuration options for asana.
type Config struct {
	Booking BookingConfig `mapstructure:"booking"`
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// BookingConfig configures the outbound booking request.
type BookingConfig struct {
	// Endpoint receives the registration as a JSON POST.
	Endpoint string `mapstructure:"endpoint"`

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"` // How long notifications stay up
	MarkdownStyle string        `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig overrides individual colors. Empty values keep the defaults.
type ThemeConfig struct {
	Accent  string `mapstructure:"accent"`
	Muted   string `mapstructure:"muted"`
	Error   string `mapstructure:"error"`
	Success string `mapstructure:"success"`
}

// TracingConfig holds tracing configuration for booking requests.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/asana/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/asana/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "asana", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Booking: BookingConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  0,
		},
		UI: UIConfig{
			ToastDuration: 3 * time.Second,
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks every section and returns the first problem found.
func Validate(cfg Config) error {
	if err := ValidateBooking(cfg.Booking); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateBooking requires an absolute http(s) endpoint and a non-negative timeout.
func ValidateBooking(b BookingConfig) error {
	if b.Endpoint == "" {
		return fmt.Errorf("booking.endpoint is required")
	}
	u, err := url.Parse(b.Endpoint)
	if err != nil {
		return fmt.Errorf("booking.endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("booking.endpoint must be an absolute http or https URL, got %q", b.Endpoint)
	}
	if b.Timeout < 0 {
		return fmt.Errorf("booking.timeout must not be negative, got %s", b.Timeout)
	}
	return nil
}

// ValidateUI checks UI options. Empty values use defaults.
func ValidateUI(ui UIConfig) error {
	if ui.ToastDuration < 0 {
		return fmt.Errorf("ui.toast_duration must not be negative, got %s", ui.ToastDuration)
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Asana Configuration

# Booking API
booking:
  endpoint: ` + DefaultEndpoint + `
  # timeout: 30s          # Per-request timeout; 0 or unset waits indefinitely

# UI settings
ui:
  toast_duration: 3s      # How long success/error notifications stay visible
  # markdown_style: dark  # Dashboard markdown style: "dark" (default) or "light"

# Theme colors (hex). Unset values keep the defaults.
# theme:
#   accent: "#54A0FF"
#   muted: "#696969"
#   error: "#FF8787"
#   success: "#73F59F"

# Tracing for booking requests
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/asana/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
