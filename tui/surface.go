package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scrub-cli/scrub/controls"
)

// hideControlsMsg asks the bubble to hide the controls, unless something showed them
// again after it was scheduled.
type hideControlsMsg struct {
	generation int
}

// Render stores what the surface wants on screen. The next View call draws it.
func (b *statefulBubble) Render(display controls.Display) {
	b.display = display
}

// RenderLoading swaps the time labels for the buffering spinner.
func (b *statefulBubble) RenderLoading(loading bool) {
	b.display.Loading = loading
	if loading {
		b.queue(b.spinnerC.Tick)
	}
}

// Show makes the controls visible and cancels any scheduled hide.
func (b *statefulBubble) Show() {
	b.visible = true
	b.hideGen++
}

// HideDelayed schedules the controls to hide. Only the most recent schedule counts.
func (b *statefulBubble) HideDelayed(delay time.Duration) {
	b.hideGen++
	generation := b.hideGen

	b.queue(tea.Tick(delay, func(time.Time) tea.Msg {
		return hideControlsMsg{generation: generation}
	}))
}

// queue holds cmd to be returned from the current Update call.
// The surface calls back synchronously, so there is no other way to hand it commands.
func (b *statefulBubble) queue(cmd tea.Cmd) {
	b.pending = append(b.pending, cmd)
}

// flush returns the queued commands batched with cmd.
func (b *statefulBubble) flush(cmd tea.Cmd) tea.Cmd {
	if len(b.pending) == 0 {
		return cmd
	}

	cmds := append(b.pending, cmd)
	b.pending = nil
	return tea.Batch(cmds...)
}

func (b *statefulBubble) hideControls(msg hideControlsMsg) {
	if msg.generation != b.hideGen {
		return
	}

	// Paused media keeps its controls up, as does a drag that is still going.
	if b.surface.Interacting() || b.paused {
		return
	}

	b.visible = false
}
