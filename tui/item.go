package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/scrub-cli/scrub/history"
	"github.com/scrub-cli/scrub/icon"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/timefmt"
)

// listItem implements the list.Item interface, wrapping domain models for terminal display.
type listItem struct {
	internal any
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case history.Entry:
		if e.Title != "" {
			return e.Title
		}
		return filepath.Base(e.Path)
	case string:
		return e
	default:
		return t.FilterValue()
	}
}

// Description retrieves the secondary metadata for the list item.
func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case history.Entry:
		var parts []string

		position := fmt.Sprintf("%s / %s", timefmt.Format(e.PositionMs), timefmt.Format(e.DurationMs))
		if e.DurationMs > 0 {
			position += lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf(" (%.0f%%)", e.Progress()*100))
		}
		parts = append(parts, icon.Get(icon.History)+" "+position)

		if !e.UpdatedAt.IsZero() {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(e.UpdatedAt.Local().Format("2006-01-02 15:04")))
		}

		if e.Title != "" {
			parts = append(parts, style.Faint(e.Path))
		}

		return strings.Join(parts, " • ")
	default:
		return ""
	}
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case history.Entry:
		return e.Title + " " + e.Path
	case string:
		return e
	default:
		return ""
	}
}
