// Package app contains the root application model.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/asana/internal/config"
	"github.com/zjrosen/asana/internal/keys"
	"github.com/zjrosen/asana/internal/log"
	"github.com/zjrosen/asana/internal/mode"
	"github.com/zjrosen/asana/internal/mode/dashboard"
	"github.com/zjrosen/asana/internal/mode/register"
	"github.com/zjrosen/asana/internal/ui/styles"
	"github.com/zjrosen/asana/internal/ui/toaster"
)

// defaultToastDuration applies when no config is injected.
const defaultToastDuration = 3 * time.Second

// Model is the root application state.
type Model struct {
	// Mode management
	currentMode mode.AppMode
	register    mode.Controller
	dashboard   mode.Controller

	// Shared services (passed to mode controllers)
	services mode.Services

	// Global state
	width  int
	height int

	// Centralized toaster - owned by app, not individual modes
	toaster       toaster.Model
	toastDuration time.Duration

	// Live config reload; both nil when the config file isn't watched
	configChanges <-chan struct{}
	loadConfig    func() (config.Config, error)
}

// configReloadedMsg carries the config re-read after the file changed.
type configReloadedMsg struct {
	cfg config.Config
	err error
}

// Option configures the application.
type Option func(*Model)

// WithConfigReload re-reads the config through load whenever changes fires.
// Theme, toast duration and markdown style apply immediately; booking
// settings take effect on the next start.
func WithConfigReload(changes <-chan struct{}, load func() (config.Config, error)) Option {
	return func(m *Model) {
		m.configChanges = changes
		m.loadConfig = load
	}
}

// New creates the application on the registration form.
func New(services mode.Services, opts ...Option) Model {
	toastDuration := defaultToastDuration
	if services.Config != nil {
		toastDuration = toastDurationOf(*services.Config)
	}

	m := Model{
		currentMode:   mode.ModeRegister,
		register:      register.New(services),
		dashboard:     dashboard.New(services, nil),
		services:      services,
		toaster:       toaster.New(),
		toastDuration: toastDuration,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ApplyTheme validates and applies the configured colors.
func ApplyTheme(theme config.ThemeConfig) error {
	return styles.ApplyTheme(styles.ThemeConfig{
		Accent:  theme.Accent,
		Muted:   theme.Muted,
		Error:   theme.Error,
		Success: theme.Success,
	})
}

func toastDurationOf(cfg config.Config) time.Duration {
	if cfg.UI.ToastDuration <= 0 {
		return defaultToastDuration
	}
	return cfg.UI.ToastDuration
}

// CurrentMode returns the active mode.
func (m Model) CurrentMode() mode.AppMode {
	return m.currentMode
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.register.Init(), m.waitForConfigChange())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.register = m.register.SetSize(msg.Width, msg.Height)
		m.dashboard = m.dashboard.SetSize(msg.Width, msg.Height)
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Common.Quit) {
			log.Info(log.CatUI, "Quit requested", "mode", m.currentMode)
			return m, tea.Quit
		}

	case mode.NavigateMsg:
		return m.navigate(msg)

	case mode.ShowToastMsg:
		m.toaster = m.toaster.Show(msg.Message, msg.Style)

		return m, m.toaster.ScheduleDismiss(m.toastDuration)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)

		return m, nil

	case configReloadedMsg:
		return m.reloadConfig(msg)
	}

	// Delegate all messages to active mode controller
	var cmd tea.Cmd
	switch m.currentMode {
	case mode.ModeDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	default:
		m.register, cmd = m.register.Update(msg)
	}
	return m, cmd
}

// navigate switches to the mode behind msg.Path.
func (m Model) navigate(msg mode.NavigateMsg) (tea.Model, tea.Cmd) {
	target := mode.Resolve(msg.Path)
	log.Info(log.CatMode, "Switching mode", "from", m.currentMode, "to", target, "path", msg.Path)
	m.currentMode = target

	if target == mode.ModeDashboard {
		m.dashboard = dashboard.New(m.services, msg.Confirmation).SetSize(m.width, m.height)
		return m, m.dashboard.Init()
	}
	return m, m.register.Init()
}

// waitForConfigChange blocks until the config file changes, then reloads it.
func (m Model) waitForConfigChange() tea.Cmd {
	if m.configChanges == nil || m.loadConfig == nil {
		return nil
	}
	changes, load := m.configChanges, m.loadConfig
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		cfg, err := load()
		return configReloadedMsg{cfg: cfg, err: err}
	}
}

// reloadConfig applies a re-read config and keeps waiting for changes.
// An invalid file leaves the running settings untouched.
func (m Model) reloadConfig(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	next := m.waitForConfigChange()

	err := msg.err
	if err == nil {
		err = ApplyTheme(msg.cfg.Theme)
	}
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", err)
		return m, tea.Batch(next, showToast("Config not reloaded: "+err.Error(), toaster.StyleError))
	}

	if m.services.Config != nil {
		// Modes share this pointer, so the dashboard picks up the markdown style
		*m.services.Config = msg.cfg
	}
	m.toastDuration = toastDurationOf(msg.cfg)
	if m.width > 0 && m.height > 0 {
		m.register = m.register.SetSize(m.width, m.height)
		m.dashboard = m.dashboard.SetSize(m.width, m.height)
	}

	log.Info(log.CatConfig, "Config reloaded")
	return m, tea.Batch(next, showToast("Config reloaded", toaster.StyleInfo))
}

func showToast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return mode.ShowToastMsg{Message: message, Style: style}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.currentMode {
	case mode.ModeDashboard:
		view = m.dashboard.View()
	default:
		view = m.register.View()
	}

	// Overlay toaster on top of active mode's view
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	return zone.Scan(view)
}
