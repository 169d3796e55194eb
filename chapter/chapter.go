// Package chapter snaps seek targets to chapter boundaries.
package chapter

import (
	"cmp"
	"slices"

	"github.com/scrub-cli/scrub/log"
	"github.com/scrub-cli/scrub/player"
)

// Seeker moves playback to an absolute position.
type Seeker interface {
	SeekTo(positionMs int64)
}

// Snapper is a seek consumer: a drag that ends within tolerance of a chapter start
// is committed to that chapter start instead.
type Snapper struct {
	seeker    Seeker
	tolerance int64
	chapters  []player.Chapter
	snapped   func(positionMs int64)
}

// New creates a Snapper that commits snapped seeks through seeker.
func New(seeker Seeker, toleranceMs int64) *Snapper {
	return &Snapper{
		seeker:    seeker,
		tolerance: max(toleranceMs, 0),
	}
}

// SetChapters replaces the chapter list.
func (s *Snapper) SetChapters(chapters []player.Chapter) {
	s.chapters = slices.Clone(chapters)
	slices.SortStableFunc(s.chapters, func(a, b player.Chapter) int {
		return cmp.Compare(a.StartMs, b.StartMs)
	})
}

// OnSnap registers fn to be told where a snapped seek went, so the displayed position
// can follow it before the next progress report arrives.
func (s *Snapper) OnSnap(fn func(positionMs int64)) {
	s.snapped = fn
}

// Chapters returns the current chapter list.
func (s *Snapper) Chapters() []player.Chapter {
	return s.chapters
}

// Nearest returns the chapter whose start is closest to position, if that start lies
// within the tolerance. Ties go to the earlier chapter.
func (s *Snapper) Nearest(position int64) (player.Chapter, bool) {
	var (
		best     player.Chapter
		bestDist int64 = -1
	)

	for _, c := range s.chapters {
		dist := c.StartMs - position
		if dist < 0 {
			dist = -dist
		}
		if dist > s.tolerance {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}

	return best, bestDist >= 0
}

// Current returns the chapter playing at position.
func (s *Snapper) Current(position int64) (player.Chapter, bool) {
	i, found := s.search(position)
	if found {
		return s.chapters[i], true
	}
	if i == 0 {
		return player.Chapter{}, false
	}
	return s.chapters[i-1], true
}

// Next returns the first chapter starting after position.
func (s *Snapper) Next(position int64) (player.Chapter, bool) {
	i, found := s.search(position)
	if found {
		i++
	}
	if i >= len(s.chapters) {
		return player.Chapter{}, false
	}
	return s.chapters[i], true
}

// Previous returns the chapter to jump back to from position: the start of the
// current chapter, or the one before it when position is at most tolerance past
// that start.
func (s *Snapper) Previous(position int64) (player.Chapter, bool) {
	i, _ := s.search(position - s.tolerance)
	if i == 0 {
		return player.Chapter{}, false
	}
	return s.chapters[i-1], true
}

func (s *Snapper) search(position int64) (int, bool) {
	return slices.BinarySearchFunc(s.chapters, position, func(c player.Chapter, target int64) int {
		return cmp.Compare(c.StartMs, target)
	})
}

// OnSeekStarted never takes over the time label.
func (s *Snapper) OnSeekStarted() bool {
	return false
}

// OnSeekEnded commits a snapped seek and reports the event handled, or leaves
// targets away from any chapter to the default seek.
func (s *Snapper) OnSeekEnded(position int64) bool {
	c, ok := s.Nearest(position)
	if !ok || c.StartMs == position {
		return false
	}

	log.Debugf("snapping seek %d to chapter %q at %d", position, c.Title, c.StartMs)
	s.seeker.SeekTo(c.StartMs)
	if s.snapped != nil {
		s.snapped(c.StartMs)
	}
	return true
}
