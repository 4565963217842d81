package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m := New().Show("Payment is successful", StyleSuccess)

	require.True(t, m.Visible())
	require.Equal(t, StyleSuccess, m.Style())
	require.Contains(t, m.View(), "✅")
	require.Contains(t, m.View(), "Payment is successful")
}

func TestShow_Error(t *testing.T) {
	m := New().Show("request failed with status code 500", StyleError)

	require.Contains(t, m.View(), "❌")
	require.Contains(t, m.View(), "status code 500")
}

func TestShow_ReplacesExisting(t *testing.T) {
	m := New().Show("First", StyleSuccess).Show("Second", StyleError)

	require.Equal(t, "Second", m.Message())
	require.NotContains(t, m.View(), "First")
}

func TestShow_EmptyMessageStaysHidden(t *testing.T) {
	require.False(t, New().Show("", StyleInfo).Visible())
}

func TestHide(t *testing.T) {
	m := New().Show("Hello", StyleSuccess).Hide()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestDismiss_MatchingSequenceHides(t *testing.T) {
	m := New().Show("Hello", StyleSuccess)
	cmd := m.ScheduleDismiss(time.Millisecond)
	require.NotNil(t, cmd)

	m = m.Update(cmd())

	require.False(t, m.Visible())
}

func TestDismiss_StaleTimerIgnored(t *testing.T) {
	m := New().Show("First", StyleSuccess)
	stale := m.ScheduleDismiss(time.Millisecond)
	m = m.Show("Second", StyleError)

	m = m.Update(stale())

	require.True(t, m.Visible(), "a timer from an older toast must not hide a newer one")
	require.Equal(t, "Second", m.Message())
}

func TestScheduleDismiss_Disabled(t *testing.T) {
	m := New().Show("Hello", StyleSuccess)

	require.Nil(t, m.ScheduleDismiss(0))
	require.Nil(t, New().ScheduleDismiss(time.Second), "nothing to dismiss")
}

func TestView_WrapsLongMessages(t *testing.T) {
	msg := strings.Repeat("booking ", 20)

	view := New().SetSize(40, 10).Show(msg, StyleError).View()

	for _, line := range strings.Split(view, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestOverlay_BottomCenter(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 40)+"\n", 9) + strings.Repeat(".", 40)
	m := New().SetSize(40, 10).Show("Done", StyleSuccess)

	result := m.Overlay(bg, 40, 10)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 10)
	require.Contains(t, lines[7], "Done", "toast sits one row above the bottom border row")
	require.Equal(t, strings.Repeat(".", 40), lines[9])
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	require.Equal(t, "bg", New().Overlay("bg", 10, 1))
}
