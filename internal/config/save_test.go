package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetValue_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	err := SetValue(configPath, "booking.endpoint", "http://localhost:8080/")
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking:")
	assert.Contains(t, string(data), "endpoint: http://localhost:8080/")
}

func TestSetValue_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	err := SetValue(configPath, "booking.timeout", "10s")
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Asana Configuration", "head comment should survive")
	assert.Contains(t, string(data), "endpoint: "+DefaultEndpoint)
	assert.Contains(t, string(data), "timeout: 10s")

	cfg := loadConfigFile(t, configPath)
	require.Equal(t, 10*time.Second, cfg.Booking.Timeout)
	require.Equal(t, 3*time.Second, cfg.UI.ToastDuration)
}

func TestSetValue_ReplacesExistingKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	initial := "ui:\n  toast_duration: 3s # visible time\n  markdown_style: dark\n"
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0644))

	require.NoError(t, SetValue(configPath, "ui.toast_duration", "5s"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "toast_duration: 5s # visible time")
	assert.Contains(t, string(data), "markdown_style: dark")
	assert.NotContains(t, string(data), "3s")
}

func TestSetValue_QuotesHexColors(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SetValue(configPath, "theme.accent", "#FF0000"))

	cfg := loadConfigFile(t, configPath)
	require.Equal(t, "#FF0000", cfg.Theme.Accent)
}

func TestSetValue_Rejects(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	tests := []struct {
		key, value, wantErr string
	}{
		{"booking.retries", "3", "unknown config key"},
		{"booking.endpoint", "localhost", "absolute http or https URL"},
		{"booking.timeout", "soon", "booking.timeout"},
		{"ui.toast_duration", "-1s", "must not be negative"},
		{"ui.markdown_style", "neon", "ui.markdown_style"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := SetValue(configPath, tt.key, tt.value)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := os.Stat(configPath)
	require.True(t, os.IsNotExist(err), "rejected values should not create the file")
}
