// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// CommonKeys are bindings shared by every mode.
type CommonKeys struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Escape key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// FormKeys drive the registration form.
type FormKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Submit key.Binding
	Clear  key.Binding
}

// DashboardKeys drive the post-booking dashboard.
type DashboardKeys struct {
	NewBooking key.Binding
	CopyID     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// Common holds the shared bindings.
var Common = CommonKeys{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "move down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous option"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next option"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Form holds the registration form bindings.
var Form = FormKeys{
	Next: key.NewBinding(
		key.WithKeys("tab", "ctrl+n"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "ctrl+p"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select option"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "proceed to pay"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "clear form"),
	),
}

// Dashboard holds the dashboard bindings.
var Dashboard = DashboardKeys{
	NewBooking: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new booking"),
	),
	CopyID: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy request id"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
}

// FormHelp adapts the form bindings to help.KeyMap.
type FormHelp struct{}

// ShortHelp returns the bindings shown in the footer.
func (FormHelp) ShortHelp() []key.Binding {
	return []key.Binding{Form.Next, Form.Submit, Form.Clear, Common.Quit}
}

// FullHelp returns every form binding grouped by column.
func (FormHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Form.Next, Form.Prev, Common.Up, Common.Down},
		{Form.Toggle, Common.Enter, Form.Submit, Form.Clear},
		{Common.Quit},
	}
}

// DashboardHelp adapts the dashboard bindings to help.KeyMap.
type DashboardHelp struct{}

// ShortHelp returns the bindings shown in the footer.
func (DashboardHelp) ShortHelp() []key.Binding {
	return []key.Binding{Dashboard.NewBooking, Dashboard.CopyID, Common.Help, Common.Quit}
}

// FullHelp returns every dashboard binding grouped by column.
func (DashboardHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Dashboard.ScrollUp, Dashboard.ScrollDown},
		{Dashboard.NewBooking, Dashboard.CopyID, Common.Escape},
		{Common.Help, Common.Quit},
	}
}
