package tui

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/scrub-cli/scrub/controls"
	"github.com/scrub-cli/scrub/history"
	"github.com/scrub-cli/scrub/internal/ui"
	"github.com/scrub-cli/scrub/key"
	"github.com/scrub-cli/scrub/log"
	"github.com/scrub-cli/scrub/player"
	"github.com/scrub-cli/scrub/timefmt"
	"github.com/spf13/viper"
)

type (
	playbackStartedMsg struct{}
	playerExitMsg      struct{}
	progressMsg        player.Progress
	eventMsg           player.Event
)

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	entries, err := history.List()
	if err != nil {
		return nil, err
	}

	items := lo.Map(entries, func(entry history.Entry, _ int) list.Item {
		return &listItem{internal: entry}
	})

	return b.historyC.SetItems(items), nil
}

// continueLatest selects the most recently played target.
func (b *statefulBubble) continueLatest() error {
	latest, err := history.Latest()
	if err != nil {
		return err
	}

	entry, ok := latest.Get()
	if !ok {
		return fault.Wrap(errors.New("history is empty"),
			ftag.With(ftag.NotFound),
			fmsg.WithDesc("no history", "Nothing to continue, play something first"),
		)
	}

	b.target = entry.Path
	b.title = entry.Title
	return nil
}

// resumePosition looks the target up in the history.
func (b *statefulBubble) resumePosition() mo.Option[int64] {
	found, err := history.Find(b.target)
	if err != nil {
		log.Warnf("history lookup: %v", err)
		return mo.None[int64]()
	}

	entry, ok := found.Get()
	if !ok {
		return mo.None[int64]()
	}

	if b.title == "" {
		b.title = entry.Title
	}

	return mo.TupleToOption(entry.ResumePosition(viper.GetInt64(key.HistoryMinPosition)))
}

// play launches the player on the current target. The resume point is handed to the
// player as a start offset, so nothing has to seek once the file is loaded.
func (b *statefulBubble) play() tea.Cmd {
	b.resumeFrom = b.resumePosition()

	args := slices.Clone(viper.GetStringSlice(key.PlayerArgs))
	if at, ok := b.resumeFrom.Get(); ok {
		args = append(args, fmt.Sprintf("--start=%.3f", float64(at)/1000))
	}

	target, title := b.target, b.title
	return func() tea.Msg {
		log.Infof("playing %s", target)
		if err := b.player.Play(target, title, args); err != nil {
			return err
		}
		return playbackStartedMsg{}
	}
}

// startPlayback attaches the event listener and the progress ticker to a running player.
func (b *statefulBubble) startPlayback() tea.Cmd {
	b.started = true

	listener := player.NewEventListener(b.player.Socket(), b.bus)
	if err := listener.Start(); err != nil {
		log.Warnf("event listener: %v", err)
	} else {
		b.listener = listener
	}

	interval := time.Duration(viper.GetInt64(key.ControlsProgressInterval)) * time.Millisecond
	b.player.StartProgressTicker(interval, b.reportProgress)

	cmds := []tea.Cmd{b.waitForProgress(), b.waitForEvent(), b.waitForExit()}

	if at, ok := b.resumeFrom.Get(); ok {
		b.position = at
		b.surface.SetPosition(at)
		cmds = append(cmds, ui.Notify("Resumed at "+timefmt.Format(at)))
	}

	b.newState(playingState)
	b.Show()
	b.HideDelayed(b.hideDelay)

	return tea.Batch(cmds...)
}

// reportProgress runs on the ticker goroutine. Only the newest sample is kept.
func (b *statefulBubble) reportProgress(progress player.Progress) {
	for {
		select {
		case b.progressChannel <- progress:
			return
		default:
		}

		select {
		case <-b.progressChannel:
		default:
		}
	}
}

func (b *statefulBubble) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		select {
		case progress := <-b.progressChannel:
			return progressMsg(progress)
		case <-b.player.Wait():
			return nil
		}
	}
}

func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-b.events
		if !ok {
			return nil
		}
		return eventMsg(event)
	}
}

func (b *statefulBubble) waitForExit() tea.Cmd {
	return func() tea.Msg {
		<-b.player.Wait()
		return playerExitMsg{}
	}
}

func (b *statefulBubble) handleProgress(progress player.Progress) {
	b.position = progress.PositionMs
	b.paused = progress.Paused

	if progress.DurationMs > 0 {
		b.surface.SetDuration(progress.DurationMs)
	}

	b.surface.SetProgressEvent(controls.ProgressEvent{
		Position:         progress.PositionMs,
		BufferedFraction: progress.BufferedFraction(),
	})
}

func (b *statefulBubble) handleEvent(event player.Event) {
	log.Tracef("mpv event %s: %v", event.Name, event.Data)
	b.engine.Observe(event)

	switch event.Name {
	case player.PropPausedForCache:
		b.buffering = event.Bool()
		b.surface.SetLoading(b.buffering || b.seeking)
	case player.PropSeeking:
		b.seeking = event.Bool()
		b.surface.SetLoading(b.buffering || b.seeking)
	case player.PropDuration:
		if duration, ok := event.Millis(); ok {
			b.surface.SetDuration(duration)
		}
	case player.PropChapterList:
		b.snapper.SetChapters(player.ParseChapters(event.Data))
	case player.PropPause:
		b.paused = event.Bool()
		switch {
		case b.paused:
			b.Show()
		case !b.surface.Interacting():
			b.HideDelayed(b.hideDelay)
		}
	case player.PropEOFReached:
		if event.Bool() && !b.finished {
			b.finished = true
			b.Show()
			b.queue(ui.Notify("Reached the end"))
		}
	case player.EventFileLoaded:
		b.finished = false
	}
}

// seekBy runs a whole seek gesture that moves the position by delta.
func (b *statefulBubble) seekBy(delta int64) {
	b.seekTo(b.surface.Display().Progress + delta)
}

// seekTo runs a whole seek gesture ending at position. It does nothing while another
// drag is held, which keeps that drag's own release as its only commit.
func (b *statefulBubble) seekTo(position int64) {
	if b.surface.State() == controls.Dragging {
		return
	}

	b.surface.DragStart()
	b.surface.DragMove(position, true)
	b.surface.DragEnd()
}

func (b *statefulBubble) startScrubbing() {
	if b.scrubbing || b.surface.State() == controls.Dragging {
		return
	}

	b.scrubbing = true
	b.scrubTarget = b.surface.Display().Progress
	b.surface.DragStart()
}

func (b *statefulBubble) scrubBy(delta int64) {
	display := b.surface.Display()
	b.scrubTarget += delta
	if display.Max > 0 {
		b.scrubTarget = min(max(b.scrubTarget, 0), display.Max)
	}
	b.surface.DragMove(b.scrubTarget, true)
}

func (b *statefulBubble) stopScrubbing() {
	if !b.scrubbing {
		return
	}

	b.scrubbing = false
	b.surface.DragEnd()
}

// saveHistory records where playback stopped.
func (b *statefulBubble) saveHistory() tea.Cmd {
	if !b.started || !viper.GetBool(key.HistorySaveOnExit) {
		return nil
	}

	entry := history.Entry{
		Path:       b.target,
		Title:      b.title,
		PositionMs: b.position,
		DurationMs: b.surface.Display().Max,
	}

	if err := history.Save(entry); err != nil {
		log.Warnf("save history: %v", err)
		return ui.Notify("Could not save the position")
	}

	return nil
}
