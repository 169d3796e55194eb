package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/config"
	"github.com/scrub-cli/scrub/controls"
	"github.com/scrub-cli/scrub/filesystem"
	"github.com/scrub-cli/scrub/history"
	"github.com/scrub-cli/scrub/key"
	"github.com/scrub-cli/scrub/player"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

type fakePlayer struct {
	paused       bool
	pauseQueries int
	seeks        []int64
	played       []string
	args         []string
	closed       bool
	callback     func(player.Progress)
	exited       chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{exited: make(chan struct{})}
}

func (p *fakePlayer) Play(target, _ string, args []string) error {
	p.played = append(p.played, target)
	p.args = args
	return nil
}

func (p *fakePlayer) TogglePause() error                  { p.paused = !p.paused; return nil }
func (p *fakePlayer) SetPaused(paused bool) error         { p.paused = paused; return nil }
func (p *fakePlayer) Paused() (bool, error)               { p.pauseQueries++; return p.paused, nil }
func (p *fakePlayer) TimePos() (int64, error)             { return 0, nil }
func (p *fakePlayer) Duration() (int64, error)            { return 0, nil }
func (p *fakePlayer) CacheTime() (int64, error)           { return 0, nil }
func (p *fakePlayer) Chapters() ([]player.Chapter, error) { return nil, nil }
func (p *fakePlayer) Seek(ms int64) error                 { p.seeks = append(p.seeks, ms); return nil }
func (p *fakePlayer) HasActivePlayback() (bool, error)    { return true, nil }
func (p *fakePlayer) IsRunning() bool                     { return !p.closed }
func (p *fakePlayer) Socket() string                      { return "" }
func (p *fakePlayer) Wait() <-chan struct{}               { return p.exited }
func (p *fakePlayer) StopProgressTicker()                 {}

func (p *fakePlayer) Close() error {
	p.closed = true
	return nil
}

func (p *fakePlayer) StartProgressTicker(_ time.Duration, callback func(player.Progress)) {
	p.callback = callback
}

const target = "/videos/film.mkv"

// newTestBubble builds a bubble on a fake player with a 101 cell wide seek bar.
func newTestBubble(options *Options) (*statefulBubble, *fakePlayer) {
	fake := newFakePlayer()
	newPlayer = func() player.Player { return fake }

	bubble, err := newBubble(options)
	So(err, ShouldBeNil)

	bubble.Update(tea.WindowSizeMsg{Width: 105, Height: 20})
	So(bubble.width, ShouldEqual, 101)

	return bubble, fake
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: barRow(), Action: action, Button: tea.MouseButtonLeft}
}

// column returns the terminal column of a bar cell.
func column(b *statefulBubble, cell int) int {
	return b.seekBar().left + cell
}

func TestPlayback(t *testing.T) {
	Convey("Given a bubble playing a file", t, func() {
		So(history.Clear(), ShouldBeNil)

		b, fake := newTestBubble(&Options{Target: target})
		defer b.close()

		msg := b.play()()
		So(msg, ShouldHaveSameTypeAs, playbackStartedMsg{})
		So(fake.played, ShouldResemble, []string{target})

		b.Update(msg)
		So(b.state, ShouldEqual, playingState)
		So(b.visible, ShouldBeTrue)
		So(b.listener, ShouldBeNil)

		b.Update(progressMsg{PositionMs: 30000, DurationMs: 600000, CachedMs: 60000})

		Convey("Progress should reach the controls", func() {
			So(b.display.Progress, ShouldEqual, 30000)
			So(b.display.Max, ShouldEqual, 600000)
			So(b.display.SecondaryProgress, ShouldEqual, 60000)
			So(b.display.CurrentTime, ShouldEqual, "00:30")
			So(b.display.EndTime, ShouldEqual, "10:00")
		})

		Convey("Dragging on the seek bar", func() {
			b.Update(mouse(tea.MouseActionPress, column(b, 50)))

			So(b.surface.State(), ShouldEqual, controls.Dragging)
			So(fake.paused, ShouldBeTrue)
			So(b.display.Progress, ShouldEqual, 300000)

			b.Update(progressMsg{PositionMs: 31000, DurationMs: 600000, CachedMs: 61000, Paused: true})
			So(b.display.Progress, ShouldEqual, 300000)

			b.Update(mouse(tea.MouseActionMotion, column(b, 75)))
			So(b.display.Progress, ShouldEqual, 450000)
			So(fake.seeks, ShouldBeEmpty)

			b.Update(mouse(tea.MouseActionRelease, column(b, 75)))

			Convey("Should seek once and resume", func() {
				So(fake.seeks, ShouldResemble, []int64{450000})
				So(fake.paused, ShouldBeFalse)
				So(b.surface.State(), ShouldEqual, controls.Idle)
			})

			Convey("Should hide the controls on the latest schedule only", func() {
				b.paused = false
				b.Update(hideControlsMsg{generation: b.hideGen - 1})
				So(b.visible, ShouldBeTrue)

				b.Update(hideControlsMsg{generation: b.hideGen})
				So(b.visible, ShouldBeFalse)
			})
		})

		Convey("Keys should not cut a held drag short", func() {
			b.Update(mouse(tea.MouseActionPress, column(b, 50)))
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			b.Update(runes("]"))

			So(b.surface.State(), ShouldEqual, controls.Dragging)
			So(fake.seeks, ShouldBeEmpty)
			So(fake.paused, ShouldBeTrue)

			b.Update(mouse(tea.MouseActionMotion, column(b, 75)))
			b.Update(mouse(tea.MouseActionRelease, column(b, 75)))

			So(fake.seeks, ShouldResemble, []int64{450000})
			So(b.display.Progress, ShouldEqual, 450000)
			So(fake.paused, ShouldBeFalse)
		})

		Convey("A drag released near a chapter should show the chapter start", func() {
			b.Update(eventMsg{Name: player.PropChapterList, Data: []any{
				map[string]any{"time": 0.0, "title": "Intro"},
				map[string]any{"time": 400.0, "title": "Finale"},
			}})

			b.Update(mouse(tea.MouseActionPress, column(b, 50)))
			b.Update(mouse(tea.MouseActionMotion, column(b, 67)))
			So(b.display.Progress, ShouldEqual, 402000)

			b.Update(mouse(tea.MouseActionRelease, column(b, 67)))
			So(fake.seeks, ShouldResemble, []int64{400000})
			So(b.display.Progress, ShouldEqual, 400000)
			So(b.display.CurrentTime, ShouldEqual, "06:40")
		})

		Convey("Pause events should spare the engine a pause query", func() {
			fake.paused = true
			queries := fake.pauseQueries
			b.Update(eventMsg{Name: player.PropPause, Data: true})

			b.Update(mouse(tea.MouseActionPress, column(b, 50)))
			b.Update(mouse(tea.MouseActionRelease, column(b, 50)))

			So(fake.pauseQueries, ShouldEqual, queries)
			So(fake.seeks, ShouldResemble, []int64{300000})
			So(fake.paused, ShouldBeTrue)
		})

		Convey("A press off the bar should not start a drag", func() {
			b.Update(tea.MouseMsg{X: column(b, 10), Y: barRow() + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			So(b.surface.State(), ShouldEqual, controls.Idle)
			So(fake.paused, ShouldBeFalse)
		})

		Convey("Arrow keys should seek by one step", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			b.Update(tea.KeyMsg{Type: tea.KeyLeft})
			b.Update(tea.KeyMsg{Type: tea.KeyLeft})
			So(fake.seeks, ShouldResemble, []int64{35000, 30000, 25000})
			So(fake.paused, ShouldBeFalse)
		})

		Convey("The first key on hidden controls only shows them", func() {
			b.visible = false
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			So(b.visible, ShouldBeTrue)
			So(fake.seeks, ShouldBeEmpty)
		})

		Convey("Scrubbing with the keyboard commits once", func() {
			b.Update(runes("s"))
			So(b.scrubbing, ShouldBeTrue)
			So(fake.paused, ShouldBeTrue)

			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			So(b.display.Progress, ShouldEqual, 45000)
			So(fake.seeks, ShouldBeEmpty)

			Convey("Mouse releases should not end it", func() {
				b.Update(mouse(tea.MouseActionRelease, column(b, 0)))
				So(b.surface.State(), ShouldEqual, controls.Dragging)
			})

			b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			So(b.scrubbing, ShouldBeFalse)
			So(fake.seeks, ShouldResemble, []int64{45000})
			So(fake.paused, ShouldBeFalse)
		})

		Convey("Space should toggle pause", func() {
			b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			So(fake.paused, ShouldBeTrue)
		})

		Convey("Chapter keys should seek to chapter starts", func() {
			b.Update(eventMsg{Name: player.PropChapterList, Data: []any{
				map[string]any{"time": 0.0, "title": "Intro"},
				map[string]any{"time": 20.0, "title": "Opening"},
				map[string]any{"time": 400.0, "title": "Finale"},
			}})

			b.Update(runes("["))
			So(fake.seeks, ShouldResemble, []int64{20000})

			b.Update(runes("]"))
			So(fake.seeks, ShouldResemble, []int64{20000, 400000})

			So(b.viewLabels(), ShouldContainSubstring, "Finale")
		})

		Convey("Buffering should swap the labels for a spinner", func() {
			b.Update(eventMsg{Name: player.PropPausedForCache, Data: true})
			So(b.display.Loading, ShouldBeTrue)
			So(b.viewLabels(), ShouldContainSubstring, "buffering")

			b.Update(eventMsg{Name: player.PropPausedForCache, Data: false})
			So(b.display.Loading, ShouldBeFalse)
		})

		Convey("Paused playback keeps the controls up", func() {
			b.Update(eventMsg{Name: player.PropPause, Data: true})
			b.Update(hideControlsMsg{generation: b.hideGen})
			So(b.visible, ShouldBeTrue)
		})

		Convey("Quitting should save the position", func() {
			_, cmd := b.Update(runes("q"))
			So(cmd, ShouldNotBeNil)

			found, err := history.Find(target)
			So(err, ShouldBeNil)

			entry, ok := found.Get()
			So(ok, ShouldBeTrue)
			So(entry.PositionMs, ShouldEqual, 30000)
			So(entry.DurationMs, ShouldEqual, 600000)
		})

		Convey("Closing should release the player", func() {
			b.close()
			So(fake.closed, ShouldBeTrue)

			_, open := <-b.events
			So(open, ShouldBeFalse)
		})
	})
}

func TestResume(t *testing.T) {
	Convey("Given a saved position", t, func() {
		So(history.Clear(), ShouldBeNil)
		So(history.Save(history.Entry{Path: target, Title: "Film", PositionMs: 120000, DurationMs: 600000}), ShouldBeNil)

		Convey("Playback should start there", func() {
			b, fake := newTestBubble(&Options{Target: target})
			defer b.close()

			b.Update(b.play()())
			So(fake.args, ShouldContain, "--start=120.000")
			So(b.title, ShouldEqual, "Film")
			So(b.display.Progress, ShouldEqual, 120000)
			So(b.display.CurrentTime, ShouldEqual, "02:00")
		})

		Convey("Continue should pick the latest entry", func() {
			b, _ := newTestBubble(&Options{Continue: true})
			defer b.close()

			So(b.continueLatest(), ShouldBeNil)
			So(b.target, ShouldEqual, target)
		})
	})

	Convey("Given no history", t, func() {
		So(history.Clear(), ShouldBeNil)

		b, fake := newTestBubble(&Options{Target: target})
		defer b.close()

		So(b.continueLatest(), ShouldNotBeNil)

		b.play()()
		So(fake.args, ShouldBeEmpty)
	})
}

func TestHideDelay(t *testing.T) {
	Convey("Given a zero hide delay", t, func() {
		viper.Set(key.ControlsHideDelay, 0)
		defer viper.Set(key.ControlsHideDelay, 2000)

		b, _ := newTestBubble(&Options{Target: target})
		defer b.close()

		Convey("The bubble and the surface should use the same default", func() {
			So(b.hideDelay, ShouldEqual, controls.DefaultHideDelay)
			So(b.surface.HideDelay(), ShouldEqual, b.hideDelay)
		})
	})
}

func TestReportProgress(t *testing.T) {
	Convey("Only the newest progress sample should be kept", t, func() {
		b, _ := newTestBubble(&Options{Target: target})
		defer b.close()

		b.reportProgress(player.Progress{PositionMs: 1000})
		b.reportProgress(player.Progress{PositionMs: 2000})

		So(b.waitForProgress()(), ShouldResemble, progressMsg{PositionMs: 2000})
	})
}

func TestSeekBar(t *testing.T) {
	Convey("Given a 101 cell seek bar", t, func() {
		bar := seekBar{left: 2, width: 101}

		Convey("Columns should map onto positions", func() {
			So(bar.positionAt(2, 600000), ShouldEqual, 0)
			So(bar.positionAt(52, 600000), ShouldEqual, 300000)
			So(bar.positionAt(102, 600000), ShouldEqual, 600000)
		})

		Convey("Columns off the bar should snap to its ends", func() {
			So(bar.positionAt(0, 600000), ShouldEqual, 0)
			So(bar.positionAt(500, 600000), ShouldEqual, 600000)
			So(bar.contains(1), ShouldBeFalse)
			So(bar.contains(102), ShouldBeTrue)
			So(bar.contains(103), ShouldBeFalse)
		})

		Convey("An unknown duration should map to the start", func() {
			So(bar.positionAt(52, 0), ShouldEqual, 0)
			So(bar.cells(1000, 0), ShouldEqual, 0)
		})

		Convey("Cells should be clamped to the bar", func() {
			So(bar.cells(300000, 600000), ShouldEqual, 50)
			So(bar.cells(900000, 600000), ShouldEqual, 101)
			So(bar.cells(-1, 600000), ShouldEqual, 0)
		})

		Convey("Rendering should fill the whole width", func() {
			So(bar.render(300000, 400000, 600000, true), ShouldContainSubstring, barKnob)
			So(bar.render(0, 0, 600000, true), ShouldNotContainSubstring, barKnob)
			So(seekBar{}.render(1, 1, 1, false), ShouldBeEmpty)
		})
	})
}
