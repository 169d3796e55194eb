package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the colors the player surface is drawn with.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")
	Mauve   = lipgloss.Color("#cba6f7")
	Red     = lipgloss.Color("#f38ba8")
	Yellow  = lipgloss.Color("#f9e2af")
)

// Roles.
var (
	AccentColor = Mauve
	FaintColor  = Overlay
	HiRed       = Red

	// Seek bar segments: played, buffered ahead of the playhead, not yet loaded.
	PlayedColor     = Mauve
	BufferedColor   = Subtext
	UnbufferedColor = Surface
)
