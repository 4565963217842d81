// Package dashboard implements the post-booking dashboard mode.
//
// The dashboard renders a markdown summary of the accepted booking: the
// submitted record, the request ID and the server's response body.
package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/asana/internal/keys"
	"github.com/zjrosen/asana/internal/log"
	"github.com/zjrosen/asana/internal/mode"
	"github.com/zjrosen/asana/internal/mode/shared"
	"github.com/zjrosen/asana/internal/registration"
	"github.com/zjrosen/asana/internal/ui/markdown"
	"github.com/zjrosen/asana/internal/ui/toaster"
)

// maxWidth caps the summary width on wide terminals.
const maxWidth = 80

// Model holds the dashboard mode state.
type Model struct {
	services mode.Services
	conf     *registration.Confirmation
	bookedAt time.Time

	viewport viewport.Model
	help     help.Model

	width, height int
}

// New creates the dashboard for conf. A nil conf shows an empty dashboard.
func New(services mode.Services, conf *registration.Confirmation) Model {
	if services.Clock == nil {
		services.Clock = shared.RealClock{}
	}
	m := Model{
		services: services,
		conf:     conf,
		bookedAt: services.Clock.Now(),
		viewport: viewport.New(maxWidth, 20),
		help:     help.New(),
	}
	m.viewport.SetContent(m.render())
	return m
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	return nil
}

// Confirmation returns the booking shown, if any.
func (m Model) Confirmation() *registration.Confirmation {
	return m.conf
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Dashboard.NewBooking), key.Matches(msg, keys.Common.Escape):
			return m, func() tea.Msg { return mode.NavigateMsg{Path: mode.RouteRegister} }

		case key.Matches(msg, keys.Dashboard.CopyID):
			return m, m.copyRequestID()

		case key.Matches(msg, keys.Common.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) copyRequestID() tea.Cmd {
	if m.conf == nil || m.conf.RequestID == "" || m.services.Clipboard == nil {
		return nil
	}
	if err := m.services.Clipboard.Copy(m.conf.RequestID); err != nil {
		log.ErrorErr(log.CatUI, "Failed to copy request ID", err)
		return toast("Copy failed: "+err.Error(), toaster.StyleError)
	}
	return toast("Copied request ID "+m.conf.RequestID, toaster.StyleInfo)
}

// View renders the dashboard.
func (m Model) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Dashboard")
	if m.conf != nil {
		header += "  " + lipgloss.NewStyle().Faint(true).Render("booked "+shared.BookedAgo(m.bookedAt, m.services.Clock.Now()))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View(), m.help.View(keys.DashboardHelp{}))
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

// SetSize handles terminal resize events and re-wraps the summary.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.help.Width = width
	m.viewport.Width = min(width, maxWidth)
	// Header, blank line and help row
	m.viewport.Height = max(height-3, 1)
	m.viewport.SetContent(m.render())
	return m
}

// render converts the summary to styled terminal text, falling back to the
// raw markdown when glamour fails.
func (m Model) render() string {
	md := Summary(m.conf)
	style := ""
	if m.services.Config != nil {
		style = m.services.Config.UI.MarkdownStyle
	}
	r, err := markdown.New(max(m.viewport.Width-2, 20), style)
	if err != nil {
		log.Warn(log.CatUI, "Markdown renderer unavailable", "error", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Warn(log.CatUI, "Markdown render failed", "error", err)
		return md
	}
	return out
}

// Summary builds the markdown shown for a confirmation.
func Summary(conf *registration.Confirmation) string {
	if conf == nil {
		return "# No booking yet\n\nPress **n** to register for a class.\n"
	}

	rec := conf.Record
	var b strings.Builder
	b.WriteString("# Booking confirmed\n\n")
	fmt.Fprintf(&b, "Thank you, %s! Your yoga class is booked.\n\n", escape(rec.FirstName))
	b.WriteString("| Detail | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Name | %s %s |\n", escape(rec.FirstName), escape(rec.LastName))
	fmt.Fprintf(&b, "| Email | %s |\n", escape(rec.Email))
	fmt.Fprintf(&b, "| Mobile | %s |\n", escape(rec.Mobile))
	fmt.Fprintf(&b, "| Age | %d |\n", rec.Age)
	fmt.Fprintf(&b, "| Gender | %s |\n", rec.Gender)
	fmt.Fprintf(&b, "| Slot | %s (%s) |\n\n", rec.Slot, rec.Slot.Hours())

	if conf.RequestID != "" {
		fmt.Fprintf(&b, "Request `%s`", conf.RequestID)
		if conf.StatusCode != 0 {
			fmt.Fprintf(&b, " · HTTP %d", conf.StatusCode)
		}
		b.WriteString("\n\n")
	}

	if body := bytes.TrimSpace(conf.Body); len(body) > 0 {
		b.WriteString("## Server response\n\n")
		lang := ""
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err == nil {
			body, lang = pretty.Bytes(), "json"
		}
		f := fence(body)
		b.WriteString(f + lang + "\n" + string(body) + "\n" + f + "\n")
	}

	return b.String()
}

// markdownEscaper backslash-escapes the characters that would end a table
// cell or start emphasis or a code span.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// fence returns a code fence longer than any backtick run in body.
func fence(body []byte) string {
	longest, run := 0, 0
	for _, c := range body {
		if c != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return strings.Repeat("`", max(3, longest+1))
}

func toast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return mode.ShowToastMsg{Message: message, Style: style}
	}
}
