// Package toaster provides a notification toast overlay component.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/asana/internal/ui/overlay"
	"github.com/zjrosen/asana/internal/ui/styles"
)

// maxContentWidth caps the toast text before wrapping.
const maxContentWidth = 48

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✅ with a green border.
	StyleSuccess Style = iota
	// StyleError shows ❌ with a red border.
	StyleError
	// StyleInfo shows ℹ️ with an accent border.
	StyleInfo
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
	width   int
	height  int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast, replacing any current one.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = message != ""
	m.seq++
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// Style returns the current toast style.
func (m Model) Style() Style {
	return m.style
}

// SetSize updates the viewport dimensions for overlay positioning.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// DismissMsg hides the toast it was scheduled for. A newer toast ignores it.
type DismissMsg struct {
	seq int
}

// ScheduleDismiss returns a command that hides the current toast after d.
// A zero or negative d keeps the toast until replaced.
func (m Model) ScheduleDismiss(d time.Duration) tea.Cmd {
	if d <= 0 || !m.visible {
		return nil
	}
	seq := m.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if dm, ok := msg.(DismissMsg); ok && dm.seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var icon string
	switch m.style {
	case StyleError:
		box = box.BorderForeground(styles.StatusErrorColor)
		icon = "❌ "
	case StyleInfo:
		box = box.BorderForeground(styles.AccentColor)
		icon = "ℹ️ "
	default:
		box = box.BorderForeground(styles.StatusSuccessColor)
		icon = "✅ "
	}

	width := maxContentWidth
	if m.width > 0 {
		// border + padding take 4 cells
		width = min(width, max(m.width-4, 10))
	}
	return box.Render(wordwrap.String(icon+m.message, width))
}

// Overlay renders the toast bottom-center on top of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
