// Package mode defines the application modes, their routes and the shared
// services injected into mode controllers.
package mode

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/asana/internal/config"
	"github.com/zjrosen/asana/internal/log"
	"github.com/zjrosen/asana/internal/mode/shared"
	"github.com/zjrosen/asana/internal/registration"
	"github.com/zjrosen/asana/internal/ui/toaster"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeRegister AppMode = iota
	ModeDashboard
)

// Routes for each mode.
const (
	RouteRegister  = "/"
	RouteDashboard = registration.SuccessRoute
)

// Route returns the path that selects the mode.
func (m AppMode) Route() string {
	if m == ModeDashboard {
		return RouteDashboard
	}
	return RouteRegister
}

func (m AppMode) String() string {
	if m == ModeDashboard {
		return "dashboard"
	}
	return "register"
}

// Resolve maps a route to its mode. Unknown routes fall back to the form.
func Resolve(path string) AppMode {
	switch strings.TrimSuffix(path, "/") {
	case "":
		return ModeRegister
	case RouteDashboard:
		return ModeDashboard
	}
	log.Warn(log.CatMode, "Unknown route, showing registration form", "path", path)
	return ModeRegister
}

// Controller defines the interface all modes must implement.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// Update handles messages and returns updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the mode's UI.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Booker     registration.Booker
	Config     *config.Config
	ConfigPath string
	Clipboard  shared.Clipboard
	Clock      shared.Clock
}

// ShowToastMsg asks the app to show a notification.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}

// NavigateMsg asks the app to switch to the mode behind Path.
// Confirmation carries the accepted booking into the dashboard.
type NavigateMsg struct {
	Path         string
	Confirmation *registration.Confirmation
}
