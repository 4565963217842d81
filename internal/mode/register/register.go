// Package register implements the registration form mode.
//
// The mode owns a registration.Controller and keeps it in step with the form
// component: edits flow in as form.ChangeMsg, a submit runs the booking request
// off the event loop, and the finished Outcome becomes a toast plus, on
// success, navigation to the dashboard.
package register

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/asana/internal/keys"
	"github.com/zjrosen/asana/internal/log"
	"github.com/zjrosen/asana/internal/mode"
	"github.com/zjrosen/asana/internal/registration"
	"github.com/zjrosen/asana/internal/ui/form"
	"github.com/zjrosen/asana/internal/ui/modal"
	"github.com/zjrosen/asana/internal/ui/toaster"
)

// clearDialogID tags the dialog asking before a filled form is cleared.
const clearDialogID = "clear-form"

// bookedMsg carries a finished booking request back to the event loop.
type bookedMsg struct {
	conf registration.Confirmation
	err  error
}

// Model holds the registration mode state.
type Model struct {
	services mode.Services
	ctrl     *registration.Controller
	form     form.Model
	help     help.Model

	// confirm is non-nil while the clear dialog is open
	confirm *modal.Model

	width, height int
}

// New creates the registration mode with an empty form.
func New(services mode.Services) Model {
	return Model{
		services: services,
		ctrl:     registration.NewController(services.Booker),
		form:     form.New(),
		help:     help.New(),
	}
}

// Init starts the cursor blink in the first field.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// State returns the form lifecycle state.
func (m Model) State() registration.State {
	return m.ctrl.State()
}

// Update handles messages for the registration mode.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case form.ChangeMsg:
		// The form is the source of truth; change messages may arrive out of order
		m.ctrl.SetField(msg.Field, m.form.Value(msg.Field))
		m.form = m.form.SetErrors(m.ctrl.VisibleErrors())
		return m, nil

	case form.SubmitMsg:
		return m.submit()

	case bookedMsg:
		return m.complete(msg)

	case modal.ConfirmMsg:
		m.confirm = nil
		if msg.ID == clearDialogID {
			return m.clear()
		}
		return m, nil

	case modal.CancelMsg:
		m.confirm = nil
		return m, nil

	case tea.KeyMsg, tea.MouseMsg:
		if m.confirm != nil {
			dialog, cmd := m.confirm.Update(msg)
			m.confirm = &dialog
			return m, cmd
		}
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Form.Clear) {
			return m.askClear()
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// submit validates the draft and starts the booking request.
func (m Model) submit() (mode.Controller, tea.Cmd) {
	m.sync()

	rec, err := m.ctrl.Begin()
	var errs registration.Errors
	switch {
	case errors.Is(err, registration.ErrSubmitInFlight):
		log.Debug(log.CatForm, "Submit ignored, request in flight")
		return m, nil

	case errors.As(err, &errs):
		m.form = m.form.SetErrors(m.ctrl.VisibleErrors())
		var cmd tea.Cmd
		m.form, cmd = m.form.FocusField(firstInvalid(errs))
		return m, cmd

	case err != nil:
		return m, showToast(err.Error(), toaster.StyleError)
	}

	m.form = m.form.SetErrors(m.ctrl.VisibleErrors())
	var spin tea.Cmd
	m.form, spin = m.form.SetLoading(true)
	return m, tea.Batch(spin, book(m.services.Booker, rec))
}

// complete applies a finished request to the controller and reports the outcome.
func (m Model) complete(msg bookedMsg) (mode.Controller, tea.Cmd) {
	out := m.ctrl.Complete(msg.conf, msg.err)
	m.form, _ = m.form.SetLoading(false)

	var cmds []tea.Cmd
	if out.Notice.Message != "" {
		style := toaster.StyleSuccess
		if out.Notice.Kind == registration.NoticeError {
			style = toaster.StyleError
		}
		cmds = append(cmds, showToast(out.Notice.Message, style))
	}
	if out.Navigate != "" {
		var cmd tea.Cmd
		m.form, cmd = m.form.Reset()
		nav := mode.NavigateMsg{Path: out.Navigate, Confirmation: out.Confirmation}
		cmds = append(cmds, cmd, func() tea.Msg { return nav })
	}
	return m, tea.Batch(cmds...)
}

// askClear opens the clear dialog, or clears straight away when nothing was entered.
func (m Model) askClear() (mode.Controller, tea.Cmd) {
	if !m.ctrl.CanSubmit() {
		return m, nil
	}
	if m.form.Draft() == (registration.Draft{}) {
		return m.clear()
	}
	dialog := modal.New(modal.Config{
		ID:             clearDialogID,
		Title:          "Clear form?",
		Message:        "Everything you entered will be removed.",
		ConfirmLabel:   "Clear",
		ConfirmVariant: modal.ButtonDanger,
	})
	dialog.SetSize(m.width, m.height)
	m.confirm = &dialog
	return m, nil
}

// clear empties the form unless a request is in flight.
func (m Model) clear() (mode.Controller, tea.Cmd) {
	if !m.ctrl.CanSubmit() {
		return m, nil
	}
	m.ctrl.Reset()
	var cmd tea.Cmd
	m.form, cmd = m.form.Reset()
	return m, cmd
}

// sync copies any form value the controller has not seen yet.
func (m Model) sync() {
	draft := m.ctrl.Draft()
	for _, f := range registration.Fields {
		if v := m.form.Value(f); v != draft.Get(f) {
			m.ctrl.SetField(f, v)
		}
	}
}

// View renders the form centered above the key help.
func (m Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center, m.form.View(), "", m.help.View(keys.FormHelp{}))
	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	if m.confirm != nil {
		return m.confirm.Overlay(content)
	}
	return content
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.help.Width = width
	// Leave room for the blank line and help row
	m.form = m.form.SetSize(width, max(height-2, 0))
	if m.confirm != nil {
		dialog := *m.confirm
		dialog.SetSize(width, height)
		m.confirm = &dialog
	}
	return m
}

func book(b registration.Booker, rec registration.Record) tea.Cmd {
	return func() tea.Msg {
		conf, err := b.Book(context.Background(), rec)
		return bookedMsg{conf: conf, err: err}
	}
}

func showToast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return mode.ShowToastMsg{Message: message, Style: style}
	}
}

func firstInvalid(errs registration.Errors) registration.Field {
	for _, f := range registration.Fields {
		if _, ok := errs[f]; ok {
			return f
		}
	}
	return ""
}
