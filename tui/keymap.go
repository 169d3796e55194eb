package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/style"
)

// statefulKeymap holds every binding; help() picks the ones that apply to the current state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	remove,
	confirm,
	play,
	back,
	up, down, left, right,
	top, bottom,
	playPause,
	scrub, commit,
	seekBack, seekForward,
	prevChapter, nextChapter,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(s state) {
	k.state = s
}

// bind creates a binding whose help shows the first key under the given label.
func bind(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func newStatefulKeymap() *statefulKeymap {
	highlight := style.Fg(color.Orange)

	return &statefulKeymap{
		quit:      bind("q", "quit", "q"),
		forceQuit: bind("ctrl+c", "quit", "ctrl+c", "ctrl+d"),
		showHelp:  bind("?", "help", "?"),
		back:      bind("esc", "back", "esc"),

		// resume list
		play:    key.NewBinding(key.WithKeys("enter"), key.WithHelp(highlight("enter"), highlight("play"))),
		remove:  bind("d", "forget", "d"),
		confirm: bind("enter", "confirm", "enter"),
		up:      bind("↑/k", "up", "up", "k"),
		down:    bind("↓/j", "down", "down", "j"),
		left:    bind("←/h", "prev page", "left", "h"),
		right:   bind("→/l", "next page", "right", "l"),
		top:     bind("g", "top", "g", "home"),
		bottom:  bind("G", "bottom", "G", "end"),

		// transport controls
		playPause:   bind("space", "pause/resume", " "),
		seekBack:    bind("←/h", "back", "left", "h"),
		seekForward: bind("→/l", "forward", "right", "l"),
		scrub:       bind("s", "scrub", "s"),
		commit:      bind("enter/esc", "seek here", "enter", "esc"),
		prevChapter: bind("[", "prev chapter", "["),
		nextChapter: bind("]", "next chapter", "]"),
	}
}

// help returns the short and the full help of the current state.
func (k *statefulKeymap) help() (short, full []key.Binding) {
	switch k.state {
	case loadingState:
		short = []key.Binding{k.forceQuit}
	case historyState:
		short = []key.Binding{k.play, k.remove, k.showHelp, k.quit}
		full = []key.Binding{k.play, k.remove, k.up, k.down, k.left, k.right, k.top, k.bottom, k.quit}
	case playingState:
		short = []key.Binding{k.playPause, k.seekBack, k.seekForward, k.showHelp, k.quit}
		full = []key.Binding{k.playPause, k.seekBack, k.seekForward, k.scrub, k.commit, k.prevChapter, k.nextChapter, k.quit}
	case errorState:
		short = []key.Binding{k.back, k.quit}
	}

	if full == nil {
		full = short
	}
	return short, full
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}
