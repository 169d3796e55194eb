package controls

import "github.com/scrub-cli/scrub/log"

// SetProgressEvent applies a progress report from the engine.
//
// The buffered indicator always follows the report. The primary position only does so
// while the user is not dragging, so a stale report arriving mid-drag cannot pull the
// seek bar away from the user's finger.
func (s *Surface) SetProgressEvent(event ProgressEvent) {
	fraction := event.BufferedFraction
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}
	s.display.SecondaryProgress = int64(float64(s.display.Max) * fraction)

	if !s.userInteracting {
		s.display.Progress = event.Position
		s.display.CurrentTime = s.format(event.Position)
	} else {
		log.Tracef("progress report %d ignored while dragging", event.Position)
	}

	s.render()
}

// SetDuration updates the seek bar maximum and end-time label.
// Reporting the duration already displayed is a no-op.
func (s *Surface) SetDuration(duration int64) {
	if duration == s.display.Max {
		return
	}

	s.display.Max = duration
	s.display.EndTime = s.format(duration)
	s.render()
}
