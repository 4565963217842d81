// Package modal provides a confirmation dialog drawn over the current view.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/asana/internal/keys"
	"github.com/zjrosen/asana/internal/ui/overlay"
	"github.com/zjrosen/asana/internal/ui/styles"
)

const (
	zoneConfirm = "modal-confirm"
	zoneCancel  = "modal-cancel"
)

// ButtonVariant controls the styling of the confirm button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota // Blue (default)
	ButtonDanger                       // Red (for destructive actions)
)

// Config controls modal appearance.
type Config struct {
	ID             string        // Echoed in ConfirmMsg and CancelMsg
	Title          string        // e.g. "Clear form?"
	Message        string        // Optional body text
	ConfirmLabel   string        // Default "Confirm"
	ConfirmVariant ButtonVariant // Style for confirm button (default: ButtonPrimary)
	MinWidth       int           // Minimum width (0 = default 40)
}

// ConfirmMsg is sent when the user accepts the dialog.
type ConfirmMsg struct {
	ID string
}

// CancelMsg is sent when the user dismisses the dialog.
type CancelMsg struct {
	ID string
}

// Button identifies which button is focused.
type Button int

const (
	ButtonConfirm Button = iota
	ButtonCancel
)

// Model is the modal component state.
type Model struct {
	config  Config
	focused Button
	width   int
	height  int
}

// New creates a dialog with the confirm button focused.
func New(cfg Config) Model {
	if cfg.ConfirmLabel == "" {
		cfg.ConfirmLabel = "Confirm"
	}
	return Model{config: cfg, focused: ButtonConfirm}
}

// Update handles keys and clicks. y and n answer directly.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Form.Next), key.Matches(msg, keys.Form.Prev),
			key.Matches(msg, keys.Common.Left), key.Matches(msg, keys.Common.Right):
			if m.focused == ButtonConfirm {
				m.focused = ButtonCancel
			} else {
				m.focused = ButtonConfirm
			}
			return m, nil

		case key.Matches(msg, keys.Common.Enter), key.Matches(msg, keys.Form.Toggle):
			if m.focused == ButtonConfirm {
				return m, m.confirm()
			}
			return m, m.cancel()

		case key.Matches(msg, keys.Common.Escape):
			return m, m.cancel()
		}

		switch msg.String() {
		case "y":
			return m, m.confirm()
		case "n":
			return m, m.cancel()
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if zone.Get(zoneConfirm).InBounds(msg) {
			return m, m.confirm()
		}
		if zone.Get(zoneCancel).InBounds(msg) {
			return m, m.cancel()
		}
	}
	return m, nil
}

func (m Model) confirm() tea.Cmd {
	id := m.config.ID
	return func() tea.Msg { return ConfirmMsg{ID: id} }
}

func (m Model) cancel() tea.Cmd {
	id := m.config.ID
	return func() tea.Msg { return CancelMsg{ID: id} }
}

// View renders the modal content (without overlay).
func (m Model) View() string {
	contentWidth := max(40, m.config.MinWidth, lipgloss.Width(m.config.Title))
	boxWidth := contentWidth + 2

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.AccentColor).
		PaddingLeft(1)
	divider := lipgloss.NewStyle().
		Foreground(styles.BorderDefaultColor).
		Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	if m.config.Message != "" {
		content.WriteString(lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth).
			Render(m.config.Message))
		content.WriteString("\n\n")
	}
	content.WriteString(m.renderButtons())

	var result strings.Builder
	result.WriteString(titleStyle.Render(m.config.Title))
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	result.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(content.String()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Width(boxWidth).
		Render(result.String())
}

func (m Model) renderButtons() string {
	confirmStyle := styles.PrimaryButtonStyle
	if m.config.ConfirmVariant == ButtonDanger {
		confirmStyle = styles.DangerButtonStyle
	}
	if m.focused == ButtonConfirm {
		confirmStyle = styles.PrimaryButtonFocusedStyle
		if m.config.ConfirmVariant == ButtonDanger {
			confirmStyle = styles.DangerButtonFocusedStyle
		}
	}

	cancelStyle := styles.SecondaryButtonStyle
	if m.focused == ButtonCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}

	return zone.Mark(zoneConfirm, confirmStyle.Render(m.config.ConfirmLabel)) + "  " +
		zone.Mark(zoneCancel, cancelStyle.Render("Cancel"))
}

// Overlay renders the modal centered on the given background.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize updates the modal's knowledge of viewport size for overlay centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the focused button.
func (m Model) Focused() Button {
	return m.focused
}
