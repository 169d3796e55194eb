// Package style provides small rendering helpers on top of lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/scrub-cli/scrub/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

func renderer(s lipgloss.Style) func(string) string {
	return func(text string) string { return s.Render(text) }
}

// Fg returns a function painting strings in c.
func Fg(c lipgloss.Color) func(string) string {
	return renderer(New().Foreground(c))
}

// Truncate returns a function cutting strings down to width cells.
func Truncate(width int) func(string) string {
	return renderer(New().MaxWidth(max(width, 0)))
}

var (
	Faint = renderer(New().Faint(true))
	Bold  = renderer(New().Bold(true))
)

// Title renders a banner heading a screen.
var Title = renderer(New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1))

// ErrorTitle is Title for the error screen.
var ErrorTitle = renderer(New().Foreground(color.New("230")).Background(color.Red).Padding(0, 1))
