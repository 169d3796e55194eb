// Package color names the terminal colors used by the CLI.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI number or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI 16-color palette, so the CLI follows the user's terminal theme.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	HiRed    = New("9")
	HiPurple = New("13")
)

// Orange highlights the primary key binding of a screen.
var Orange = New("#ffb703")
