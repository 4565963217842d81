// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"} // Hints, help text
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Accent is used for focus, the cursor and headings
	AccentColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#54A0FF"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Button colors
	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonDangerBgColor       = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#C0392B"}
	ButtonDangerFocusBgColor  = lipgloss.AdaptiveColor{Light: "#E74C3C", Dark: "#E74C3C"}
	ButtonSecondaryBgColor    = lipgloss.AdaptiveColor{Light: "#BFBFBF", Dark: "#3A3A3A"}
	ButtonSecondaryFocusColor = lipgloss.AdaptiveColor{Light: "#A6A6A6", Dark: "#555555"}

	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}

	// Styles below are rebuilt by ApplyTheme.

	PrimaryButtonStyle          lipgloss.Style
	PrimaryButtonFocusedStyle   lipgloss.Style
	DangerButtonStyle           lipgloss.Style
	DangerButtonFocusedStyle    lipgloss.Style
	SecondaryButtonStyle        lipgloss.Style
	SecondaryButtonFocusedStyle lipgloss.Style

	TitleStyle      lipgloss.Style
	HintStyle       lipgloss.Style
	FieldErrorStyle lipgloss.Style
	SelectedStyle   lipgloss.Style
	SpinnerStyle    lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles recreates Style values; lipgloss captures colors at creation time.
func rebuildStyles() {
	baseButton := lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButton.
		Foreground(ButtonTextColor).
		Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButton.
		Foreground(ButtonTextColor).
		Background(ButtonPrimaryFocusBgColor).
		Underline(true).
		UnderlineSpaces(true)

	DangerButtonStyle = baseButton.
		Foreground(ButtonTextColor).
		Background(ButtonDangerBgColor)

	DangerButtonFocusedStyle = baseButton.
		Foreground(ButtonTextColor).
		Background(ButtonDangerFocusBgColor).
		Underline(true).
		UnderlineSpaces(true)

	SecondaryButtonStyle = baseButton.
		Foreground(TextPrimaryColor).
		Background(ButtonSecondaryBgColor)

	SecondaryButtonFocusedStyle = baseButton.
		Foreground(TextPrimaryColor).
		Background(ButtonSecondaryFocusColor).
		Underline(true).
		UnderlineSpaces(true)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	FieldErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	SpinnerStyle = lipgloss.NewStyle().Foreground(SpinnerColor)
}
