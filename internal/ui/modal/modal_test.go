package modal

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func clearConfig() Config {
	return Config{
		ID:             "clear",
		Title:          "Clear form?",
		Message:        "Everything you entered will be removed.",
		ConfirmLabel:   "Clear",
		ConfirmVariant: ButtonDanger,
	}
}

func TestNew_FocusesConfirm(t *testing.T) {
	m := New(Config{Title: "Confirm"})

	if m.Focused() != ButtonConfirm {
		t.Errorf("expected confirm focused, got %d", m.Focused())
	}
	if m.config.ConfirmLabel != "Confirm" {
		t.Errorf("expected default label Confirm, got %q", m.config.ConfirmLabel)
	}
}

func TestUpdate_TabTogglesFocus(t *testing.T) {
	m := New(clearConfig())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Focused() != ButtonCancel {
		t.Errorf("expected cancel after tab, got %d", m.Focused())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Focused() != ButtonConfirm {
		t.Errorf("expected confirm after left, got %d", m.Focused())
	}
}

func TestUpdate_EnterSendsFocusedAnswer(t *testing.T) {
	m := New(clearConfig())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if got, ok := cmd().(ConfirmMsg); !ok || got.ID != "clear" {
		t.Errorf("expected ConfirmMsg{clear}, got %#v", cmd())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got, ok := cmd().(CancelMsg); !ok || got.ID != "clear" {
		t.Errorf("expected CancelMsg{clear}, got %#v", cmd())
	}
}

func TestUpdate_ShortcutKeys(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyMsg
		confirm bool
	}{
		{"y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, true},
		{"n cancels", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, false},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := New(clearConfig()).Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			_, isConfirm := cmd().(ConfirmMsg)
			if isConfirm != tt.confirm {
				t.Errorf("expected confirm=%v, got %#v", tt.confirm, cmd())
			}
		})
	}
}

func TestUpdate_OtherKeysIgnored(t *testing.T) {
	_, cmd := New(clearConfig()).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Errorf("expected no command, got %#v", cmd())
	}
}

func TestView_ShowsTitleMessageAndButtons(t *testing.T) {
	view := ansi.Strip(zone.Scan(New(clearConfig()).View()))

	for _, want := range []string{"Clear form?", "Everything you entered", "Clear", "Cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q:\n%s", want, view)
		}
	}
}

func TestOverlay_CentersOnBackground(t *testing.T) {
	m := New(clearConfig())
	m.SetSize(80, 24)
	bg := strings.Repeat(strings.Repeat(".", 80)+"\n", 23) + strings.Repeat(".", 80)

	out := ansi.Strip(zone.Scan(m.Overlay(bg)))
	lines := strings.Split(out, "\n")

	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "....") {
		t.Errorf("expected first row untouched, got %q", lines[0])
	}
	if !strings.Contains(out, "Clear form?") {
		t.Errorf("expected dialog in overlay:\n%s", out)
	}
}
