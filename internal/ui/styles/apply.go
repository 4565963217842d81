package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
// Empty values keep the defaults.
type ThemeConfig struct {
	Accent  string
	Muted   string
	Error   string
	Success string
}

// ApplyTheme validates and applies color overrides, then rebuilds styles.
// Nothing is changed when any color is invalid.
func ApplyTheme(cfg ThemeConfig) error {
	overrides := []struct {
		name, value string
		apply       func(lipgloss.AdaptiveColor)
	}{
		{"accent", cfg.Accent, func(c lipgloss.AdaptiveColor) { AccentColor = c }},
		{"muted", cfg.Muted, func(c lipgloss.AdaptiveColor) {
			TextMutedColor = c
			BorderDefaultColor = c
		}},
		{"error", cfg.Error, func(c lipgloss.AdaptiveColor) { StatusErrorColor = c }},
		{"success", cfg.Success, func(c lipgloss.AdaptiveColor) { StatusSuccessColor = c }},
	}

	for _, o := range overrides {
		if o.value != "" && !isValidHexColor(o.value) {
			return fmt.Errorf("invalid hex color for theme.%s: %s", o.name, o.value)
		}
	}
	for _, o := range overrides {
		if o.value != "" {
			o.apply(lipgloss.AdaptiveColor{Light: o.value, Dark: o.value})
		}
	}

	rebuildStyles()
	return nil
}

func isValidHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
