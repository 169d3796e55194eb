package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/scrub-cli/scrub/controls"
	"github.com/scrub-cli/scrub/history"
	"github.com/scrub-cli/scrub/log"
	"github.com/scrub-cli/scrub/player"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := b.update(msg)
	return model, b.flush(cmd)
}

func (b *statefulBubble) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process ephemeral UI notifications
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Batch(cmd, b.saveHistory(), tea.Quit)
		}
	case playerExitMsg:
		log.Info("mpv exited")
		return b, tea.Batch(cmd, b.saveHistory(), tea.Quit)
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		_, stateCmd = b.updateLoading(msg)
	case historyState:
		_, stateCmd = b.updateHistory(msg)
	case playingState:
		_, stateCmd = b.updatePlaying(msg)
	case errorState:
		_, stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case playbackStartedMsg:
		return b, b.startPlayback()
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back) {
			if len(b.statesHistory) > 0 {
				b.previousState()
				return b, nil
			}
			return b, tea.Quit
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if b.historyC.FilterState() == list.Filtering {
			break
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == 0 {
				b.historyC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == n-1 {
				b.historyC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				entry := item.internal.(history.Entry)
				if err := history.Remove(entry.Path); err != nil {
					b.raiseError(err)
					return b, nil
				}

				cmd, err := b.loadHistory()
				if err != nil {
					b.raiseError(err)
					return b, nil
				}
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.play):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				entry := item.internal.(history.Entry)
				b.target = entry.Path
				b.title = entry.Title

				b.newState(loadingState)
				return b, tea.Batch(b.spinnerC.Tick, b.play())
			}
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case progressMsg:
		b.handleProgress(player.Progress(msg))
		return b, b.waitForProgress()
	case eventMsg:
		b.handleEvent(player.Event(msg))
		return b, b.waitForEvent()
	case hideControlsMsg:
		b.hideControls(msg)
		return b, nil
	case tea.MouseMsg:
		b.updateMouse(msg)
		return b, nil
	case tea.KeyMsg:
		return b, b.updatePlayingKeys(msg)
	case spinner.TickMsg:
		if !b.display.Loading {
			return b, nil
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

// updatePlayingKeys maps keys onto seek gestures. A key press also wakes the controls up.
func (b *statefulBubble) updatePlayingKeys(msg tea.KeyMsg) tea.Cmd {
	wasVisible := b.visible
	b.wake()

	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		b.stopScrubbing()
		return tea.Batch(b.saveHistory(), tea.Quit)
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	case bubblesKey.Matches(msg, b.keymap.playPause):
		if b.surface.State() == controls.Dragging {
			return nil
		}
		if b.engine.IsPlaying() {
			b.engine.Pause()
		} else {
			b.engine.Start()
		}
	case b.scrubbing && bubblesKey.Matches(msg, b.keymap.commit):
		b.stopScrubbing()
	case b.scrubbing && bubblesKey.Matches(msg, b.keymap.seekBack):
		b.scrubBy(-b.seekStep)
	case b.scrubbing && bubblesKey.Matches(msg, b.keymap.seekForward):
		b.scrubBy(b.seekStep)
	case bubblesKey.Matches(msg, b.keymap.scrub):
		b.startScrubbing()
	case !wasVisible:
		// The first key only brings the controls back.
	case bubblesKey.Matches(msg, b.keymap.seekBack):
		b.seekBy(-b.seekStep)
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		b.seekBy(b.seekStep)
	case bubblesKey.Matches(msg, b.keymap.prevChapter):
		if c, ok := b.snapper.Previous(b.surface.Display().Progress); ok {
			b.seekTo(c.StartMs)
		}
	case bubblesKey.Matches(msg, b.keymap.nextChapter):
		if c, ok := b.snapper.Next(b.surface.Display().Progress); ok {
			b.seekTo(c.StartMs)
		}
	}

	return nil
}

// updateMouse drives the seek gesture from the bar: press starts it, motion moves it and
// release ends it.
func (b *statefulBubble) updateMouse(msg tea.MouseMsg) {
	bar := b.seekBar()
	display := b.surface.Display()

	switch msg.Action {
	case tea.MouseActionPress:
		wasVisible := b.visible
		b.wake()
		if !wasVisible || msg.Button != tea.MouseButtonLeft || b.scrubbing || msg.Y != barRow() || !bar.contains(msg.X) {
			return
		}
		b.surface.DragStart()
		b.surface.DragMove(bar.positionAt(msg.X, display.Max), true)
	case tea.MouseActionMotion:
		if b.scrubbing || b.surface.State() != controls.Dragging {
			return
		}
		b.surface.DragMove(bar.positionAt(msg.X, display.Max), true)
	case tea.MouseActionRelease:
		if b.scrubbing {
			return
		}
		b.surface.DragEnd()
	}
}

// wake shows the controls and restarts the hide timer unless something keeps them up.
func (b *statefulBubble) wake() {
	b.Show()
	if !b.paused && !b.surface.Interacting() {
		b.HideDelayed(b.hideDelay)
	}
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}
