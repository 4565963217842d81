package form

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/asana/internal/registration"
	"github.com/zjrosen/asana/internal/ui/styles"
)

// fieldKind selects how a field is edited and rendered.
type fieldKind int

const (
	kindText fieldKind = iota
	kindSelect
)

// option is one choice of a select field.
type option struct {
	label  string
	value  string
	detail string // Rendered muted after the label, e.g. slot hours
}

// fieldState holds runtime state for a field.
type fieldState struct {
	field       registration.Field
	kind        fieldKind
	placeholder string
	counter     int // >0 shows a "n/counter" hint while typing

	// Text field state
	input textinput.Model

	// Select field state
	options  []option
	cursor   int  // Highlighted option
	selected int  // Chosen option, -1 for none
	inline   bool // Options on a single row
}

// newFieldState builds the editor for a registration field.
func newFieldState(f registration.Field) fieldState {
	fs := fieldState{field: f, selected: -1}

	switch f {
	case registration.FieldGender:
		fs.kind = kindSelect
		fs.inline = true
		for _, g := range registration.Genders {
			fs.options = append(fs.options, option{label: string(g), value: string(g)})
		}
		return fs
	case registration.FieldSlot:
		fs.kind = kindSelect
		for _, s := range registration.Slots {
			fs.options = append(fs.options, option{label: string(s), value: string(s), detail: s.Hours()})
		}
		return fs
	}

	fs.kind = kindText
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = maxInputWidth
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)

	switch f {
	case registration.FieldFirstName:
		fs.placeholder = "Asha"
	case registration.FieldLastName:
		fs.placeholder = "Iyer"
	case registration.FieldEmail:
		fs.placeholder = "you@example.com"
	case registration.FieldMobile:
		fs.placeholder = "10 digit number"
		fs.counter = 10
		ti.CharLimit = 10
	case registration.FieldAge:
		fs.placeholder = "18-65"
		ti.CharLimit = 6
	}
	ti.Placeholder = fs.placeholder
	fs.input = ti
	return fs
}

// value returns the field's current text.
func (fs *fieldState) value() string {
	if fs.kind == kindText {
		return fs.input.Value()
	}
	if fs.selected < 0 || fs.selected >= len(fs.options) {
		return ""
	}
	return fs.options[fs.selected].value
}

// setValue replaces the field's text, selecting the matching option for selects.
func (fs *fieldState) setValue(v string) {
	if fs.kind == kindText {
		fs.input.SetValue(v)
		return
	}
	fs.selected = -1
	for i, opt := range fs.options {
		if opt.value == v {
			fs.selected = i
			fs.cursor = i
			return
		}
	}
}

func (fs *fieldState) focus() tea.Cmd {
	if fs.kind == kindText {
		return fs.input.Focus()
	}
	return nil
}

func (fs *fieldState) blur() {
	if fs.kind == kindText {
		fs.input.Blur()
	}
}

// moveCursor shifts the highlighted option, clamping at both ends.
func (fs *fieldState) moveCursor(delta int) {
	if len(fs.options) == 0 {
		return
	}
	fs.cursor = min(max(fs.cursor+delta, 0), len(fs.options)-1)
}

// choose selects option i and reports the change when the value differs.
func (fs *fieldState) choose(i int) tea.Cmd {
	if i < 0 || i >= len(fs.options) {
		return nil
	}
	fs.cursor = i
	if fs.selected == i {
		return nil
	}
	fs.selected = i
	return changeCmd(fs.field, fs.options[i].value)
}
