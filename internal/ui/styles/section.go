package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rounded border runes used by Section.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Section is a bordered block with the title inlined into the top border:
//
//	╭─ Title (hint) ──────╮
//	│content              │
//	╰─────────────────────╯
type Section struct {
	Title   string
	Hint    string
	Content []string
	Width   int
	Focused bool
	Invalid bool
}

// Render draws the section. Invalid wins over Focused for the border color.
func (s Section) Render() string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	switch {
	case s.Invalid:
		borderColor = StatusErrorColor
	case s.Focused:
		borderColor = AccentColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)

	innerWidth := max(s.Width-2, 1)

	var top string
	if s.Title == "" {
		top = borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	} else {
		// The title shares the top border with "─ " and " ─"; a hint that doesn't
		// fit is dropped before the title is cut.
		room := max(innerWidth-3, 1)
		title, hint := s.Title, s.Hint
		if hint != "" && lipgloss.Width(title)+lipgloss.Width(hint)+3 > room {
			hint = ""
		}
		title = TruncateString(title, room)

		label := title
		if hint != "" {
			label += " (" + hint + ")"
		}
		dashes := max(innerWidth-lipgloss.Width(label)-3, 0)

		top = borderStyle.Render(borderTopLeft+borderHorizontal+" ") + titleStyle.Render(title)
		if hint != "" {
			top += " " + HintStyle.Render("("+hint+")")
		}
		top += borderStyle.Render(" " + strings.Repeat(borderHorizontal, dashes) + borderTopRight)
	}

	lines := make([]string, 0, len(s.Content)+2)
	lines = append(lines, top)
	for _, row := range s.Content {
		pad := max(innerWidth-lipgloss.Width(row), 0)
		lines = append(lines, borderStyle.Render(borderVertical)+row+strings.Repeat(" ", pad)+borderStyle.Render(borderVertical))
	}
	lines = append(lines, borderStyle.Render(borderBottomLeft+strings.Repeat(borderHorizontal, innerWidth)+borderBottomRight))

	return strings.Join(lines, "\n")
}
