package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts playback right away when a target was given. Otherwise the resume list is shown.
func (b *statefulBubble) Init() tea.Cmd {
	if b.state == historyState {
		return nil
	}

	return tea.Batch(b.spinnerC.Tick, b.play())
}
