// Package player drives an external media player. The only backend is mpv, controlled
// through its JSON-IPC socket. All positions and durations are in milliseconds.
package player

import "time"

// Progress is one sample taken by the progress ticker.
type Progress struct {
	PositionMs int64
	DurationMs int64
	// CachedMs is the timestamp up to which the demuxer has buffered.
	CachedMs int64
	Paused   bool
}

// BufferedFraction returns how much of the media is available, in [0, 1].
// Unknown durations report 0.
func (p Progress) BufferedFraction() float64 {
	if p.DurationMs <= 0 {
		return 0
	}

	buffered := max(p.CachedMs, p.PositionMs)
	return min(float64(buffered)/float64(p.DurationMs), 1)
}

// Chapter is an entry of the player's chapter list.
type Chapter struct {
	Title   string
	StartMs int64
}

// Player encapsulates the capabilities scrub needs from a playback backend.
type Player interface {
	// Play starts playback of target with the given window title.
	// args are passed to the backend verbatim before the target.
	Play(target string, title string, args []string) error

	TogglePause() error
	SetPaused(paused bool) error
	Paused() (bool, error)

	// TimePos returns the current playback position.
	TimePos() (int64, error)

	// Duration returns the length of the loaded media.
	Duration() (int64, error)

	// CacheTime returns the timestamp up to which media has been buffered.
	CacheTime() (int64, error)

	// Chapters returns the chapter list of the loaded media, sorted by start.
	Chapters() ([]Chapter, error)

	// Seek moves playback to an absolute position.
	Seek(positionMs int64) error

	// HasActivePlayback reports whether media is loaded.
	HasActivePlayback() (bool, error)

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// Close terminates the player and releases its resources.
	Close() error

	// Socket returns the IPC socket path.
	Socket() string

	// StartProgressTicker polls the player every interval and hands each sample to callback.
	StartProgressTicker(interval time.Duration, callback func(Progress))

	StopProgressTicker()

	// Wait returns a channel that is closed when the playback session terminates.
	Wait() <-chan struct{}
}
