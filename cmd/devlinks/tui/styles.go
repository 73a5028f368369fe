package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// LabelWidth is the fixed width of field labels in the profile form.
const LabelWidth = 14

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Tab bar styles.
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Padding(0, 1).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSurface0).
				Padding(0, 1)

	TabBarStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Padding(0, 1)
)

// Form styles.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Width(LabelWidth)

	// FocusedLabelStyle marks the field that receives typing.
	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true).
				Width(LabelWidth)

	ReadOnlyStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	HintStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Italic(true)

	ContentPaneStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)
)

// Link card styles.
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	SelectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBlue).
				Padding(0, 1)

	IssueStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// Message line styles.
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)

// Status bar styles.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
)

// Overlay styles.
var (
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	OverlayButtonActiveStyle = lipgloss.NewStyle().
					Foreground(colorBase).
					Background(colorBlue).
					Padding(0, 2)

	OverlayButtonInactiveStyle = lipgloss.NewStyle().
					Foreground(colorText).
					Background(colorSurface1).
					Padding(0, 2)

	OverlayChoiceCursorStyle = lipgloss.NewStyle().
					Foreground(colorBlue).
					Bold(true)
)

// swatch renders a two-cell sample of a profile color, or nothing when the
// color is unset.
func swatch(color string) string {
	if color == "" {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}
