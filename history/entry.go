package history

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/scrub-cli/scrub/timefmt"
)

// Entry is the last known playback state of one target.
type Entry struct {
	Path       string    `json:"path" jsonschema:"description=File path or URL that was played."`
	Title      string    `json:"title" jsonschema:"description=Title shown while playing."`
	PositionMs int64     `json:"position_ms" jsonschema:"description=Last playback position in milliseconds."`
	DurationMs int64     `json:"duration_ms" jsonschema:"description=Media duration in milliseconds, 0 if unknown."`
	UpdatedAt  time.Time `json:"updated_at" jsonschema:"description=When the entry was last saved."`
}

func (e Entry) encode() string {
	return encode(e.Path)
}

// encode normalizes a target so that the same file always maps to the same entry.
func encode(path string) string {
	path = strings.TrimSpace(path)
	if strings.Contains(path, "://") {
		return path
	}

	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Progress returns the watched fraction in [0, 1], or 0 when the duration is unknown.
func (e Entry) Progress() float64 {
	if e.DurationMs <= 0 {
		return 0
	}
	return min(max(float64(e.PositionMs)/float64(e.DurationMs), 0), 1)
}

// ResumePosition returns where playback should continue. Positions within margin of
// either end are not worth resuming.
func (e Entry) ResumePosition(margin int64) (int64, bool) {
	if e.PositionMs <= margin {
		return 0, false
	}
	if e.DurationMs > 0 && e.DurationMs-e.PositionMs <= margin {
		return 0, false
	}
	return e.PositionMs, true
}

// String renders the entry for the resume list and `history list`.
func (e Entry) String() string {
	name := e.Title
	if name == "" {
		name = filepath.Base(e.Path)
	}
	return fmt.Sprintf("%s  %s / %s", name, timefmt.Format(e.PositionMs), timefmt.Format(e.DurationMs))
}
