package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/asana/internal/ui/styles"
)

// Heading shown at the top of the form.
const (
	Title    = "Enter Your Details"
	Subtitle = "Get a step closer toward a fitter you!"
)

const (
	defaultWidth = 50
	minWidth     = 40

	// Box border, padding, section border and the leading space and cursor cell.
	inputInset    = 9
	maxInputWidth = 36
)

// View renders the form inside a rounded box. When the box is taller than
// the available height, the body scrolls to keep the focused field visible.
func (m Model) View() string {
	width := m.formWidth()
	contentWidth := width - 2 // Account for box border

	borderStyle := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)
	contentPadding := lipgloss.NewStyle().PaddingLeft(1)

	var lines []string
	add := func(block string) (start, end int) {
		start = len(lines)
		lines = append(lines, strings.Split(block, "\n")...)
		return start, len(lines)
	}

	add(contentPadding.Render(styles.TitleStyle.Render(Title)))
	add(contentPadding.Render(styles.HintStyle.Render(Subtitle)))
	add(borderStyle.Render(strings.Repeat("─", contentWidth)))

	focusStart, focusEnd := 0, 0
	for i := range m.fields {
		start, end := add(contentPadding.Render(m.renderField(i, contentWidth-2)))
		if msg := m.errs.Message(m.fields[i].field); msg != "" {
			_, end = add(contentPadding.Render(" " + styles.FieldErrorStyle.Render(msg)))
		}
		if i == m.focusedIndex {
			focusStart, focusEnd = start, end
		}
	}

	add("")
	start, end := add(contentPadding.Render(" " + m.renderButton()))
	if m.focusedIndex < 0 {
		focusStart, focusEnd = start, end
	}

	body := strings.Join(lines, "\n")
	if bodyHeight := m.height - 2; m.height > 0 && len(lines) > bodyHeight && bodyHeight > 0 {
		vp := viewport.New(contentWidth, bodyHeight)
		vp.SetContent(body)
		vp.SetYOffset(scrollOffset(focusStart, focusEnd, bodyHeight, len(lines)))
		body = vp.View()
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Width(contentWidth)

	return boxStyle.Render(body)
}

// renderField renders a single field as a bordered section.
func (m Model) renderField(index int, width int) string {
	fs := &m.fields[index]
	focused := m.focusedIndex == index

	section := styles.Section{
		Title:   fs.field.Label(),
		Width:   width,
		Focused: focused,
		Invalid: m.errs.Message(fs.field) != "",
	}

	switch fs.kind {
	case kindText:
		if fs.counter > 0 {
			section.Hint = fmt.Sprintf("%d/%d", uniseg.GraphemeClusterCount(fs.input.Value()), fs.counter)
		}
		section.Content = []string{" " + fs.input.View()}

	case kindSelect:
		if fs.inline {
			opts := make([]string, len(fs.options))
			for i := range fs.options {
				opts[i] = zone.Mark(optionZoneID(fs.field, i), renderOption(fs, i, focused))
			}
			section.Content = []string{strings.Join(opts, "  ")}
		} else {
			labelWidth := 0
			for _, opt := range fs.options {
				labelWidth = max(labelWidth, lipgloss.Width(opt.label))
			}
			for i, opt := range fs.options {
				row := renderOption(fs, i, focused)
				if opt.detail != "" {
					pad := strings.Repeat(" ", labelWidth-lipgloss.Width(opt.label)+2)
					row += pad + styles.HintStyle.Render(opt.detail)
				}
				section.Content = append(section.Content, zone.Mark(optionZoneID(fs.field, i), row))
			}
		}
	}

	return zone.Mark(fieldZoneID(fs.field), section.Render())
}

// renderOption draws "(●) label" with a cursor marker when the field is focused.
func renderOption(fs *fieldState, i int, focused bool) string {
	prefix := " "
	if focused && i == fs.cursor {
		prefix = styles.SelectedStyle.Render(">")
	}
	radio := "( )"
	label := fs.options[i].label
	if fs.selected == i {
		radio = "(●)"
		label = styles.SelectedStyle.Render(label)
	}
	return prefix + radio + " " + label
}

// renderButton renders the submit button. While a submission is in flight
// the button gives way to an unclickable spinner line.
func (m Model) renderButton() string {
	if m.loading {
		return m.spinner.View() + " " + styles.HintStyle.Render("Processing payment...")
	}
	style := styles.PrimaryButtonStyle
	if m.focusedIndex < 0 {
		style = styles.PrimaryButtonFocusedStyle
	}
	return zone.Mark(zoneSubmitButton, style.Render(SubmitLabel))
}

func (m Model) formWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return max(min(m.width, defaultWidth), minWidth)
}

// scrollOffset returns the smallest offset that shows lines [start, end)
// within a window of height lines, favoring the top of the block.
func scrollOffset(start, end, height, total int) int {
	offset := 0
	if end > height {
		offset = end - height
	}
	if start < offset {
		offset = start
	}
	return min(max(offset, 0), max(total-height, 0))
}
