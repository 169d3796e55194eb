// Package tui hosts the transport controls in a Bubble Tea program.
package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/scrub-cli/scrub/chapter"
	"github.com/scrub-cli/scrub/controls"
	"github.com/scrub-cli/scrub/hook"
	"github.com/scrub-cli/scrub/internal/ui"
	"github.com/scrub-cli/scrub/key"
	"github.com/scrub-cli/scrub/log"
	"github.com/scrub-cli/scrub/player"
	"github.com/scrub-cli/scrub/style"
	"github.com/scrub-cli/scrub/util"
	"github.com/spf13/viper"
)

// newPlayer is replaced in tests.
var newPlayer = func() player.Player {
	return player.NewMPV()
}

// statefulBubble encapsulates the application state. It also serves as the view and
// the auto-hide controller of the control surface it hosts.
type statefulBubble struct {
	state         state
	statesHistory []state

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	historyC list.Model
	helpC    help.Model

	player          player.Player
	bus             *player.Bus
	events          chan player.Event
	listener        *player.EventListener
	progressChannel chan player.Progress

	engine  *player.Engine
	surface *controls.Surface
	snapper *chapter.Snapper
	hook    *hook.Hook

	// what the surface last rendered
	display controls.Display

	visible   bool
	hideGen   int
	hideDelay time.Duration
	pending   []tea.Cmd

	scrubbing   bool
	scrubTarget int64
	seekStep    int64

	started   bool
	paused    bool
	buffering bool
	seeking   bool
	finished  bool
	position  int64

	target     string
	title      string
	resumeFrom mo.Option[int64]
	lastError  error

	width, height int
	notifier      *ui.Model

	closeOnce sync.Once
	options   *Options
}

// raiseError logs err and switches to the error screen.
func (b *statefulBubble) raiseError(err error) {
	log.Error(err)
	b.lastError = err
	b.newState(errorState)
}

// setState switches the screen and the bindings that go with it.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the previous state so that it can be restored.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState {
		b.statesHistory = append(b.statesHistory, b.state)
	}

	b.setState(s)
}

// previousState goes back to the screen that was shown before the current one.
func (b *statefulBubble) previousState() {
	if n := len(b.statesHistory); n > 0 {
		b.setState(b.statesHistory[n-1])
		b.statesHistory = b.statesHistory[:n-1]
	}
}

// resize lays the screens out for a terminal of the given size.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = b.width
}

// newBubble builds the model and the control surface it hosts. Nothing is started
// until the program runs.
func newBubble(options *Options) (*statefulBubble, error) {
	keymap := newStatefulKeymap()
	bubble := &statefulBubble{
		keymap:          keymap,
		player:          newPlayer(),
		bus:             player.NewBus(64),
		progressChannel: make(chan player.Progress, 1),
		seekStep:        max(viper.GetInt64(key.ControlsSeekStep), 1),
		visible:         true,
		resumeFrom:      mo.None[int64](),
		target:          options.Target,
		title:           options.Title,
		notifier:        &ui.Model{},
		options:         options,
	}
	bubble.events = bubble.bus.Sub(player.TopicAll)

	engine := player.NewEngine(bubble.player)
	bubble.engine = engine

	var callbacks []controls.SeekCallbacks

	if name := lo.CoalesceOrEmpty(options.Hook, viper.GetString(key.HooksScript)); name != "" {
		h, err := hook.Load(hook.Resolve(name), engine)
		if err != nil {
			bubble.bus.Shutdown()
			return nil, err
		}
		bubble.hook = h
		callbacks = append(callbacks, h)
	}

	// The snapper also serves chapter navigation, so it exists even when snapping is off.
	bubble.snapper = chapter.New(engine, viper.GetInt64(key.SnapTolerance))
	bubble.snapper.OnSnap(func(position int64) {
		bubble.surface.SetPosition(position)
	})
	if viper.GetBool(key.SnapEnable) {
		callbacks = append(callbacks, bubble.snapper)
	}

	bubble.surface = controls.New(engine, bubble, &controls.Options{
		HideDelay:             time.Duration(viper.GetInt64(key.ControlsHideDelay)) * time.Millisecond,
		Callbacks:             controls.Chain(callbacks...),
		Visibility:            bubble,
		NotifySeekStartedOnce: viper.GetBool(key.ControlsSeekStartedOnce),
	})
	bubble.hideDelay = bubble.surface.HideDelay()
	bubble.display = bubble.surface.Display()

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.historyC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.historyC.KeyMap = keymap.forList()
	bubble.historyC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.historyC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.historyC.Title = "Continue watching"
	bubble.historyC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1)
	bubble.historyC.Styles.NoItems = paddingStyle
	bubble.historyC.SetStatusBarItemName("entry", "entries")
	bubble.historyC.SetShowPagination(false)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return bubble, nil
}

// close releases the player and everything attached to it.
// The listener goes before the bus so that nothing is published after shutdown.
func (b *statefulBubble) close() {
	b.closeOnce.Do(func() {
		b.player.StopProgressTicker()

		if b.listener != nil {
			b.listener.Stop()
		}

		if err := b.player.Close(); err != nil {
			log.Warnf("close player: %v", err)
		}

		b.bus.Shutdown()

		if b.hook != nil {
			b.hook.Close()
		}
	})
}
