package player

import (
	"context"
	"time"

	"github.com/scrub-cli/scrub/log"
)

// DefaultProgressInterval is used when StartProgressTicker gets a non-positive interval.
const DefaultProgressInterval = 500 * time.Millisecond

// StartProgressTicker samples the playback state every interval and hands each
// sample to callback on the ticker goroutine. Sampling stops with
// StopProgressTicker or when mpv exits. A second call while running is ignored.
func (m *MPV) StartProgressTicker(interval time.Duration, callback func(Progress)) {
	if interval <= 0 {
		log.Warnf("progress interval %s is not positive, using %s", interval, DefaultProgressInterval)
		interval = DefaultProgressInterval
	}

	m.tickerMu.Lock()
	defer m.tickerMu.Unlock()

	if m.stopTicker != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.stopTicker = cancel

	go m.tick(ctx, interval, callback)
}

// StopProgressTicker stops the ticker if it is running.
func (m *MPV) StopProgressTicker() {
	m.tickerMu.Lock()
	defer m.tickerMu.Unlock()

	if m.stopTicker != nil {
		m.stopTicker()
		m.stopTicker = nil
	}
}

func (m *MPV) tick(ctx context.Context, interval time.Duration, callback func(Progress)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	exited := m.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case <-exited:
			return
		case <-ticker.C:
		}

		if progress, ok := m.sample(); ok {
			callback(progress)
		}
	}
}

// sample reads one Progress. Only the position is required; duration and cache
// state are unknown for some streams and stay zero.
func (m *MPV) sample() (Progress, bool) {
	position, err := m.TimePos()
	if err != nil {
		if !IsUnavailable(err) {
			log.Debugf("progress sample: %v", err)
		}
		return Progress{}, false
	}

	p := Progress{PositionMs: position}
	p.DurationMs, _ = m.Duration()
	p.CachedMs, _ = m.CacheTime()
	p.Paused, _ = m.Paused()

	return p, true
}
