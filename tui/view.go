package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/icon"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/timefmt"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// Rows of the playing view, relative to the padding.
const (
	titleLine = iota
	_
	barLine
	labelLine
)

// barRow is the terminal row the seek bar is drawn on.
func barRow() int {
	return paddingStyle.GetPaddingTop() + barLine
}

func (b *statefulBubble) seekBar() seekBar {
	return seekBar{left: paddingStyle.GetPaddingLeft(), width: b.width}
}

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case historyState:
		output = b.viewHistory()
	case playingState:
		output = b.viewPlaying()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) displayTitle() string {
	return lo.CoalesceOrEmpty(b.title, filepath.Base(b.target))
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " Starting " + style.Fg(color.Purple)(b.displayTitle()),
		},
	)
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewPlaying() string {
	lines := []string{
		style.Truncate(b.width)(style.Title(icon.Get(icon.Play) + " " + b.displayTitle())),
	}

	if !b.visible {
		return b.renderLines(false, lines)
	}

	display := b.display
	lines = append(lines,
		"",
		b.seekBar().render(display.Progress, display.SecondaryProgress, display.Max, b.surface.Interacting()),
		style.Truncate(b.width)(b.viewLabels()),
	)

	return b.renderLines(true, lines)
}

// viewLabels renders the line under the seek bar: state, time labels and chapter.
func (b *statefulBubble) viewLabels() string {
	display := b.display
	var parts []string

	switch {
	case b.scrubbing:
		parts = append(parts, style.Fg(style.Yellow)(icon.Get(icon.Progress)+" scrubbing"))
	case b.paused:
		parts = append(parts, icon.Get(icon.Pause))
	default:
		parts = append(parts, icon.Get(icon.Play))
	}

	if display.Loading {
		parts = append(parts, b.spinnerC.View()+" "+style.Faint("buffering"))
	} else {
		times := fmt.Sprintf("%s / %s", lo.CoalesceOrEmpty(display.CurrentTime, timefmt.Unknown), lo.CoalesceOrEmpty(display.EndTime, timefmt.Unknown))
		parts = append(parts, style.Bold(times))
	}

	if c, ok := b.snapper.Current(display.Progress); ok && c.Title != "" {
		parts = append(parts, style.Fg(style.Subtext)(icon.Get(icon.Chapter)+" "+c.Title))
	}

	if b.hook != nil {
		parts = append(parts, style.Faint(icon.Get(icon.Hook)+" "+b.hook.Name()))
	}

	return strings.Join(parts, "  ")
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
