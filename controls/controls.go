// Package controls implements the transport-control logic that sits between a playback
// engine and the widgets that display it.
//
// A Surface reconciles periodic progress reports from the engine with discrete seek
// gestures from the user. While a drag is in progress the engine's reports no longer
// move the displayed position, playback is paused if it was running, and the seek is
// committed exactly once when the drag ends.
//
// A Surface is not safe for concurrent use. All methods are expected to be called from
// a single event loop, which is what makes the interaction flag visible to the next
// progress report without synchronization.
package controls

import (
	"time"

	"github.com/samber/mo"
	"github.com/scrub-cli/scrub/timefmt"
)

// DefaultHideDelay is used when Options.HideDelay is not set.
const DefaultHideDelay = 2 * time.Second

// State of the seek gesture state machine.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Engine is the playback engine driven by the controls.
// Failures are the engine's own business: a Surface never inspects or retries them.
type Engine interface {
	IsPlaying() bool
	Pause()
	Start()
	SeekTo(positionMs int64)
}

// View renders what the Surface decides to display.
type View interface {
	Render(display Display)
	RenderLoading(loading bool)
}

// Visibility controls the auto-hide behaviour of the surrounding control surface.
// The timer itself belongs to the host.
type Visibility interface {
	// Show makes the controls visible and suppresses any pending auto-hide.
	Show()
	// HideDelayed schedules the controls to hide after delay.
	HideDelayed(delay time.Duration)
}

// SeekCallbacks lets a host intercept both ends of a seek gesture.
// Returning true means the event was handled and the default action must be skipped.
type SeekCallbacks interface {
	OnSeekStarted() bool
	OnSeekEnded(position int64) bool
}

// Display holds every value the controls put on screen.
type Display struct {
	CurrentTime       string
	EndTime           string
	Progress          int64
	SecondaryProgress int64
	Max               int64
	Loading           bool
}

// ProgressEvent is a periodic report from the playback engine.
type ProgressEvent struct {
	Position         int64
	BufferedFraction float64
}

// Options configure a Surface at construction time.
type Options struct {
	// HideDelay is how long the controls stay visible after playback resumes from a seek.
	HideDelay time.Duration

	// Format renders millisecond values for the time labels. Defaults to timefmt.Format.
	Format func(ms int64) string

	// Callbacks is the optional seek interception consumer.
	Callbacks SeekCallbacks

	// Visibility is the optional auto-hide controller.
	Visibility Visibility

	// NotifySeekStartedOnce limits OnSeekStarted to the first move of each drag.
	// By default it is called on every drag move.
	NotifySeekStartedOnce bool
}

// Surface is the control/decision core of a video control surface.
type Surface struct {
	engine     Engine
	view       View
	visibility Visibility
	callbacks  SeekCallbacks
	format     func(ms int64) string
	hideDelay  time.Duration
	notifyOnce bool

	display Display
	state   State

	userInteracting bool
	pausedForSeek   bool
	pending         mo.Option[int64]

	// per-drag interception state
	labelDeferred   bool
	startedNotified bool
}

// New creates a Surface driving engine and rendering into view.
// options may be nil.
func New(engine Engine, view View, options *Options) *Surface {
	if options == nil {
		options = &Options{}
	}

	s := &Surface{
		engine:     engine,
		view:       view,
		visibility: options.Visibility,
		callbacks:  options.Callbacks,
		format:     options.Format,
		hideDelay:  options.HideDelay,
		notifyOnce: options.NotifySeekStartedOnce,
		pending:    mo.None[int64](),
	}

	if s.format == nil {
		s.format = timefmt.Format
	}

	if s.hideDelay <= 0 {
		s.hideDelay = DefaultHideDelay
	}

	s.display.CurrentTime = s.format(0)
	s.display.EndTime = s.format(0)

	return s
}

// HideDelay returns the delay the controls are hidden after, with the default applied.
func (s *Surface) HideDelay() time.Duration {
	return s.hideDelay
}

// Display returns a copy of what is currently displayed.
func (s *Surface) Display() Display {
	return s.display
}

// State returns the current gesture state.
func (s *Surface) State() State {
	return s.state
}

// Interacting reports whether the user is in the middle of a drag.
func (s *Surface) Interacting() bool {
	return s.userInteracting
}

// PausedForSeek reports whether the engine was paused on behalf of the current drag.
func (s *Surface) PausedForSeek() bool {
	return s.pausedForSeek
}

// SetSeekCallbacks registers (or with nil, removes) the seek interception consumer.
func (s *Surface) SetSeekCallbacks(callbacks SeekCallbacks) {
	s.callbacks = callbacks
}

func (s *Surface) render() {
	if s.view != nil {
		s.view.Render(s.display)
	}
}

// clamp bounds a position to [0, Max] once the duration is known.
func (s *Surface) clamp(position int64) int64 {
	if position < 0 {
		return 0
	}
	if s.display.Max > 0 && position > s.display.Max {
		return s.display.Max
	}
	return position
}
