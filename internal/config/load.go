package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ASANA_BOOKING_ENDPOINT.
const EnvPrefix = "ASANA"

// RegisterDefaults registers every default with v so that environment
// overrides are visible to Unmarshal even for keys absent from the file.
func RegisterDefaults(v *viper.Viper) {
	defaults := Defaults()
	v.SetDefault("booking.endpoint", defaults.Booking.Endpoint)
	v.SetDefault("booking.timeout", defaults.Booking.Timeout)
	v.SetDefault("ui.toast_duration", defaults.UI.ToastDuration)
	v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("theme.accent", defaults.Theme.Accent)
	v.SetDefault("theme.muted", defaults.Theme.Muted)
	v.SetDefault("theme.error", defaults.Theme.Error)
	v.SetDefault("theme.success", defaults.Theme.Success)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Unmarshal decodes v into a Config and validates the result.
func Unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
