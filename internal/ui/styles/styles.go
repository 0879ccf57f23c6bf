// Package styles defines the visual appearance for the sqlmux TUI.
// Using Catppuccin Mocha color palette for a modern, aesthetic look.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha color palette
var (
	// Base colors
	Rosewater = lipgloss.Color("#F5E0DC")
	Pink      = lipgloss.Color("#F5C2E7")
	Mauve     = lipgloss.Color("#CBA6F7")
	Red       = lipgloss.Color("#F38BA8")
	Peach     = lipgloss.Color("#FAB387")
	Yellow    = lipgloss.Color("#F9E2AF")
	Green     = lipgloss.Color("#A6E3A1")
	Teal      = lipgloss.Color("#94E2D5")
	Sky       = lipgloss.Color("#89DCEB")
	Sapphire  = lipgloss.Color("#74C7EC")
	Blue      = lipgloss.Color("#89B4FA")
	Lavender  = lipgloss.Color("#B4BEFE")

	// Surface colors
	Text     = lipgloss.Color("#CDD6F4")
	Subtext1 = lipgloss.Color("#BAC2DE")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay1 = lipgloss.Color("#7F849C")
	Overlay0 = lipgloss.Color("#6C7086")
	Surface2 = lipgloss.Color("#585B70")
	Surface1 = lipgloss.Color("#45475A")
	Surface0 = lipgloss.Color("#313244")
	Base     = lipgloss.Color("#1E1E2E")
	Mantle   = lipgloss.Color("#181825")
	Crust    = lipgloss.Color("#11111B")
)

// Semantic colors (using the palette)
var (
	Primary     = Mauve
	Secondary   = Green
	Accent      = Sapphire
	Danger      = Red
	Warning     = Peach
	Success     = Green
	Info        = Blue
	Muted       = Overlay0
	Background  = Base
	SurfaceCol  = Surface0
	TextCol     = Text
	TextMuted   = Subtext0
	Border      = Surface1
	BorderFocus = Mauve
)

// Scan status colors
var (
	StatusRunning = Green
	StatusIdle    = Overlay0
	StatusStopped = Yellow
	StatusError   = Red
)

// Base styles
var (
	// BorderStyle for panels
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	// FocusedBorderStyle for focused panels
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderFocus)
)

// Panel styles
var (
	// PanelTitle for panel headers
	PanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol).
			Padding(0, 1)

	// PanelTitleFocused for focused panel headers
	PanelTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				Padding(0, 1)
)

// Tab bar styles
var (
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(Base).
			Background(Primary).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextMuted).
			Background(Surface0).
			Padding(0, 2)
)

// List item styles
var (
	// ListItem for normal list items
	ListItem = lipgloss.NewStyle().
			Foreground(TextCol).
			Padding(0, 1)

	// ListItemSelected for selected list items
	ListItemSelected = lipgloss.NewStyle().
				Foreground(TextCol).
				Background(SurfaceCol).
				Bold(true).
				Padding(0, 1)

	// ListItemDim for inactive/dimmed items
	ListItemDim = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	// ListItemHighlight for highlighted items
	ListItemHighlight = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Padding(0, 1)
)

// Option form styles
var (
	GroupHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent).
			MarginTop(1)

	OptionLabel = lipgloss.NewStyle().
			Foreground(TextCol)

	OptionLabelSelected = lipgloss.NewStyle().
				Foreground(TextCol).
				Background(SurfaceCol).
				Bold(true)

	OptionValue = lipgloss.NewStyle().
			Foreground(Sky)

	OptionValueDefault = lipgloss.NewStyle().
				Foreground(Overlay0)

	OptionEditing = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// Command preview styles
var (
	CommandBar = lipgloss.NewStyle().
			Foreground(Green).
			Background(Mantle).
			Padding(0, 1)

	CommandPrompt = lipgloss.NewStyle().
			Foreground(Overlay0).
			Background(Mantle)
)

// Output pane styles
var (
	OutputStyle = lipgloss.NewStyle().
			Foreground(TextCol)

	OutputPlaceholder = lipgloss.NewStyle().
				Foreground(TextMuted).
				Italic(true)
)

// StatusBar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Background(Mantle).
			Padding(0, 1)

	StatusBarKey = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	StatusBarBrand = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Dialog styles
var (
	DialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			Background(SurfaceCol)

	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol).
			MarginBottom(1)

	DialogButton = lipgloss.NewStyle().
			Foreground(TextCol).
			Background(SurfaceCol).
			Padding(0, 2).
			MarginRight(1)

	DialogButtonActive = lipgloss.NewStyle().
				Foreground(TextCol).
				Background(Primary).
				Bold(true).
				Padding(0, 2).
				MarginRight(1)
)

// Helper functions

// StatusColor returns the color for a scan status.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "running":
		return StatusRunning
	case "stopped":
		return StatusStopped
	case "error":
		return StatusError
	default:
		return StatusIdle
	}
}

// RenderStatusDot returns a colored status dot based on status.
func RenderStatusDot(status string) string {
	return lipgloss.NewStyle().Foreground(StatusColor(status)).Render("●")
}

// TruncateWithEllipsis truncates a string to maxLen with ellipsis.
func TruncateWithEllipsis(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
