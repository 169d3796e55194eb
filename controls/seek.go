package controls

import (
	"github.com/samber/mo"
	"github.com/scrub-cli/scrub/log"
	"github.com/sirupsen/logrus"
)

// DragStart begins a seek gesture.
//
// The engine is paused only if it was playing, so media the user had paused before
// scrubbing is not started behind their back when the drag ends. The controls are kept
// visible for the whole drag. A second DragStart during a drag is ignored.
func (s *Surface) DragStart() {
	if s.state == Dragging {
		return
	}

	s.state = Dragging
	s.userInteracting = true
	s.pending = mo.None[int64]()
	s.labelDeferred = false
	s.startedNotified = false

	if s.engine.IsPlaying() {
		s.pausedForSeek = true
		s.engine.Pause()
	}

	if s.visibility != nil {
		s.visibility.Show()
	}

	log.WithFields(logrus.Fields{"paused_for_seek": s.pausedForSeek}).Debug("seek drag started")
}

// DragMove records the position the user is dragging to.
//
// Moves that did not come from the user (programmatic position sets echoed back by
// the seek bar) and moves outside of a drag are ignored.
func (s *Surface) DragMove(progress int64, fromUser bool) {
	if !fromUser || s.state != Dragging {
		return
	}

	progress = s.clamp(progress)
	s.pending = mo.Some(progress)

	if s.notifySeekStarted() {
		s.labelDeferred = true
	}
	if s.labelDeferred {
		return
	}

	s.display.Progress = progress
	s.display.CurrentTime = s.format(progress)
	s.render()
}

func (s *Surface) notifySeekStarted() bool {
	if s.callbacks == nil {
		return false
	}
	if s.notifyOnce && s.startedNotified {
		return false
	}
	s.startedNotified = true
	return s.callbacks.OnSeekStarted()
}

// DragEnd finishes a seek gesture. It is also the cancellation path: a drag that is
// stopped early commits the last position it reached.
//
// The pending target is handed to the seek consumer first; unless it handles the
// event, the engine is asked to seek. A drag without any move commits nothing.
// If the engine was paused for this drag, playback resumes and the controls are
// scheduled to hide, whether or not the consumer took over the seek.
func (s *Surface) DragEnd() {
	if s.state != Dragging {
		return
	}

	s.state = Idle
	s.userInteracting = false

	target, ok := s.pending.Get()
	s.pending = mo.None[int64]()

	if ok {
		handled := s.callbacks != nil && s.callbacks.OnSeekEnded(target)
		if !handled {
			s.engine.SeekTo(target)
		}

		log.WithFields(logrus.Fields{"target": target, "intercepted": handled}).Debug("seek drag ended")
	}

	if s.pausedForSeek {
		s.pausedForSeek = false
		s.engine.Start()

		if s.visibility != nil {
			s.visibility.HideDelayed(s.hideDelay)
		}
	}
}
