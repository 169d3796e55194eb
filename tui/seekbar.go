package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/util"
)

const (
	barPlayed = "━"
	barRest   = "─"
	barKnob   = "●"
)

// seekBar maps between terminal cells and media positions.
type seekBar struct {
	left, width int
}

// positionAt returns the position under column x. Columns outside the bar snap to its ends.
func (s seekBar) positionAt(x int, total int64) int64 {
	if s.width <= 1 || total <= 0 {
		return 0
	}

	cell := util.Clamp(x-s.left, 0, s.width-1)
	return int64(cell) * total / int64(s.width-1)
}

// cells returns how many cells position fills.
func (s seekBar) cells(position, total int64) int {
	if total <= 0 || s.width <= 0 {
		return 0
	}

	position = util.Clamp(position, 0, total)
	return int(position * int64(s.width) / total)
}

// contains reports whether column x lies on the bar.
func (s seekBar) contains(x int) bool {
	return x >= s.left && x < s.left+s.width
}

var (
	playedStyle   = lipgloss.NewStyle().Foreground(style.PlayedColor)
	bufferedStyle = lipgloss.NewStyle().Foreground(style.BufferedColor)
	emptyStyle    = lipgloss.NewStyle().Foreground(style.UnbufferedColor)
)

// render draws the played part, the buffered part ahead of it and the rest.
func (s seekBar) render(progress, secondary, total int64, knob bool) string {
	if s.width <= 0 {
		return ""
	}

	played := s.cells(progress, total)
	buffered := max(s.cells(secondary, total)-played, 0)
	empty := s.width - played - buffered

	var sb strings.Builder
	if knob && played > 0 {
		sb.WriteString(playedStyle.Render(strings.Repeat(barPlayed, played-1) + barKnob))
	} else {
		sb.WriteString(playedStyle.Render(strings.Repeat(barPlayed, played)))
	}
	sb.WriteString(bufferedStyle.Render(strings.Repeat(barPlayed, buffered)))
	sb.WriteString(emptyStyle.Render(strings.Repeat(barRest, empty)))

	return sb.String()
}
