// Package form provides the registration form component.
//
// The form only edits text. It reports every edit as a ChangeMsg and a submit
// request as a SubmitMsg; validation and submission belong to the caller,
// which feeds errors back with SetErrors and the in-flight state with
// SetLoading.
package form

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/asana/internal/keys"
	"github.com/zjrosen/asana/internal/registration"
	"github.com/zjrosen/asana/internal/ui/styles"
)

// Zone IDs for mouse click detection.
const (
	zoneSubmitButton = "form-submit"
	zoneFieldPrefix  = "form-field-"
	zoneOptionPrefix = "form-option-"
)

// SubmitLabel is the text of the submit button.
const SubmitLabel = "Proceed to Pay"

// ChangeMsg reports a user edit of one field.
type ChangeMsg struct {
	Field registration.Field
	Value string
}

// SubmitMsg is sent when the user asks to submit the form.
type SubmitMsg struct{}

// Model is the registration form state.
type Model struct {
	fields       []fieldState
	focusedIndex int // Index into fields (-1 = submit button)

	errs    registration.Errors
	loading bool
	spinner spinner.Model

	width, height int
}

// New creates an empty form with focus on the first field.
func New() Model {
	m := Model{
		fields:  make([]fieldState, len(registration.Fields)),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
	}
	for i, f := range registration.Fields {
		m.fields[i] = newFieldState(f)
	}
	m.fields[0].focus()
	return m
}

// Init returns the cursor blink command for the first field.
func (m Model) Init() tea.Cmd {
	return m.blinkCmd()
}

// SetSize sets the space available to the form.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.resizeInputs()
	return m
}

// resizeInputs fits text inputs inside their sections.
func (m *Model) resizeInputs() {
	w := min(m.formWidth()-inputInset, maxInputWidth)
	for i := range m.fields {
		if m.fields[i].kind == kindText {
			m.fields[i].input.Width = w
		}
	}
}

// SetErrors replaces the errors shown under each field.
func (m Model) SetErrors(errs registration.Errors) Model {
	m.errs = errs
	return m
}

// Errors returns the errors currently shown.
func (m Model) Errors() registration.Errors {
	return m.errs
}

// SetLoading toggles the in-flight indicator. While loading, input is ignored.
func (m Model) SetLoading(loading bool) (Model, tea.Cmd) {
	m.loading = loading
	if loading {
		return m, m.spinner.Tick
	}
	return m, nil
}

// IsLoading reports whether a submission is in flight.
func (m Model) IsLoading() bool {
	return m.loading
}

// Value returns the current text of a field.
func (m Model) Value(f registration.Field) string {
	if i := m.indexOf(f); i >= 0 {
		return m.fields[i].value()
	}
	return ""
}

// Draft returns every field's current text.
func (m Model) Draft() registration.Draft {
	var d registration.Draft
	for i := range m.fields {
		d = d.Set(m.fields[i].field, m.fields[i].value())
	}
	return d
}

// SetDraft loads values into the fields without emitting ChangeMsg.
func (m Model) SetDraft(d registration.Draft) Model {
	for i := range m.fields {
		m.fields[i].setValue(d.Get(m.fields[i].field))
	}
	return m
}

// Focused returns the focused field, or "" when the submit button has focus.
func (m Model) Focused() registration.Field {
	if m.focusedIndex < 0 {
		return ""
	}
	return m.fields[m.focusedIndex].field
}

// FocusField moves focus to f. Unknown fields are ignored.
func (m Model) FocusField(f registration.Field) (Model, tea.Cmd) {
	i := m.indexOf(f)
	if i < 0 {
		return m, nil
	}
	m.blurCurrentField()
	m.focusedIndex = i
	return m, m.fields[i].focus()
}

// Reset clears every field and error and focuses the first field.
func (m Model) Reset() (Model, tea.Cmd) {
	m.fields = make([]fieldState, len(registration.Fields))
	for i, f := range registration.Fields {
		m.fields[i] = newFieldState(f)
	}
	m.resizeInputs()
	m.errs = nil
	m.loading = false
	m.focusedIndex = 0
	return m, m.fields[0].focus()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}

	if m.loading {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	}

	// Forward blink and other input messages to the focused text input
	if fs := m.focusedField(); fs != nil && fs.kind == kindText {
		var cmd tea.Cmd
		fs.input, cmd = fs.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Submit):
		return m, submitCmd
	case key.Matches(msg, keys.Form.Next):
		return m.nextField()
	case key.Matches(msg, keys.Form.Prev):
		return m.prevField()
	}

	fs := m.focusedField()
	if fs == nil {
		// On the submit button
		switch {
		case key.Matches(msg, keys.Common.Enter), key.Matches(msg, keys.Form.Toggle):
			return m, submitCmd
		case key.Matches(msg, keys.Common.Up):
			return m.prevField()
		}
		return m, nil
	}

	if fs.kind == kindSelect {
		return m.handleSelectKey(fs, msg)
	}

	if key.Matches(msg, keys.Common.Enter) {
		return m.nextField()
	}

	before := fs.input.Value()
	var cmd tea.Cmd
	fs.input, cmd = fs.input.Update(msg)
	if after := fs.input.Value(); after != before {
		return m, tea.Batch(cmd, changeCmd(fs.field, after))
	}
	return m, cmd
}

func (m Model) handleSelectKey(fs *fieldState, msg tea.KeyMsg) (Model, tea.Cmd) {
	prev, next := keys.Common.Up, keys.Common.Down
	if fs.inline {
		prev, next = keys.Common.Left, keys.Common.Right
	}

	switch {
	case key.Matches(msg, prev):
		fs.moveCursor(-1)
	case key.Matches(msg, next):
		fs.moveCursor(1)
	case key.Matches(msg, keys.Form.Toggle):
		return m, fs.choose(fs.cursor)
	case key.Matches(msg, keys.Common.Enter):
		cmd := fs.choose(fs.cursor)
		var blink tea.Cmd
		m, blink = m.nextField()
		return m, tea.Batch(cmd, blink)
	case fs.inline && key.Matches(msg, keys.Common.Down):
		return m.nextField()
	case fs.inline && key.Matches(msg, keys.Common.Up):
		return m.prevField()
	}
	return m, nil
}

// handleClick focuses or selects whatever zone was clicked.
func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if z := zone.Get(zoneSubmitButton); z != nil && z.InBounds(msg) {
		m.blurCurrentField()
		m.focusedIndex = -1
		return m, submitCmd
	}

	// Options are checked before fields since they sit inside the field zone
	for i := range m.fields {
		fs := &m.fields[i]
		for j := range fs.options {
			if z := zone.Get(optionZoneID(fs.field, j)); z != nil && z.InBounds(msg) {
				m.blurCurrentField()
				m.focusedIndex = i
				return m, fs.choose(j)
			}
		}
	}

	for i := range m.fields {
		if z := zone.Get(fieldZoneID(m.fields[i].field)); z != nil && z.InBounds(msg) {
			m.blurCurrentField()
			m.focusedIndex = i
			return m, m.fields[i].focus()
		}
	}
	return m, nil
}

// nextField moves focus forward, wrapping from the submit button to the first field.
func (m Model) nextField() (Model, tea.Cmd) {
	m.blurCurrentField()
	switch {
	case m.focusedIndex < 0:
		m.focusedIndex = 0
	case m.focusedIndex == len(m.fields)-1:
		m.focusedIndex = -1
		return m, nil
	default:
		m.focusedIndex++
	}
	return m, m.fields[m.focusedIndex].focus()
}

// prevField moves focus backward, wrapping from the first field to the submit button.
func (m Model) prevField() (Model, tea.Cmd) {
	m.blurCurrentField()
	switch {
	case m.focusedIndex < 0:
		m.focusedIndex = len(m.fields) - 1
	case m.focusedIndex == 0:
		m.focusedIndex = -1
		return m, nil
	default:
		m.focusedIndex--
	}
	return m, m.fields[m.focusedIndex].focus()
}

func (m *Model) blurCurrentField() {
	if fs := m.focusedField(); fs != nil {
		fs.blur()
	}
}

// focusedField returns a pointer into m.fields, or nil on the submit button.
func (m *Model) focusedField() *fieldState {
	if m.focusedIndex < 0 || m.focusedIndex >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focusedIndex]
}

func (m Model) indexOf(f registration.Field) int {
	for i := range m.fields {
		if m.fields[i].field == f {
			return i
		}
	}
	return -1
}

func (m Model) blinkCmd() tea.Cmd {
	if fs := m.focusedField(); fs != nil && fs.kind == kindText {
		return textinput.Blink
	}
	return nil
}

func submitCmd() tea.Msg { return SubmitMsg{} }

func changeCmd(f registration.Field, v string) tea.Cmd {
	return func() tea.Msg { return ChangeMsg{Field: f, Value: v} }
}

func fieldZoneID(f registration.Field) string {
	return zoneFieldPrefix + string(f)
}

func optionZoneID(f registration.Field, i int) string {
	return zoneOptionPrefix + string(f) + "-" + strconv.Itoa(i)
}
