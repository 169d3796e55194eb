// Package timefmt renders millisecond durations as transport-control labels.
package timefmt

import "fmt"

// Unknown is shown for positions that cannot be represented.
const Unknown = "--:--"

// Format renders ms as MM:SS, or H:MM:SS once it reaches an hour.
func Format(ms int64) string {
	if ms < 0 {
		return Unknown
	}

	seconds := ms / 1000
	hours := seconds / 3600
	minutes := (seconds / 60) % 60
	seconds %= 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Remaining renders the time left until duration as a negative label, e.g. -01:30.
func Remaining(position, duration int64) string {
	if duration <= 0 || position < 0 {
		return Unknown
	}
	left := duration - position
	if left < 0 {
		left = 0
	}
	return "-" + Format(left)
}
