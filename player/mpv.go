package player

import (
	"cmp"
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/constant"
	"github.com/scrub-cli/scrub/log"
	"github.com/scrub-cli/scrub/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements the Player interface using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // serializes IPC round trips

	tickerMu   sync.Mutex
	stopTicker context.CancelFunc
}

// NewMPV creates a new MPV player instance (does not start playback).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Play starts mpv on target. Extra args come before the target, so a target can never
// be mistaken for one of them.
func (m *MPV) Play(target string, title string, args []string) error {
	safeTarget, err := checkTarget(target)
	if err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "mpv-play-target", "target", target),
			ftag.With(ftag.InvalidArgument),
			fmsg.WithDesc("invalid media target", "Cannot play "+target),
		)
	}

	safeTitle := cleanTitle(title)
	if safeTitle == "" {
		safeTitle = filepath.Base(safeTarget)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Scrub, randomBytes))
	}

	m.cmd = exec.Command("mpv", buildArgs(m.socketPath, safeTitle, safeTarget, args)...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "mpv-start"),
			ftag.With(ftag.Internal),
			fmsg.WithDesc("mpv start failed", "Cannot start mpv, is it installed?"),
		)
	}

	// Reap the process to prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = killProcess(m.cmd)
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Infof("mpv started on socket %s playing %s", m.socketPath, safeTarget)
	return nil
}

// buildArgs passes only the socket, title and user args.
// Output and decoding options are left to the user's mpv.conf.
func buildArgs(socket, title, target string, extra []string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socket,
		"--force-media-title=" + title,
		"--title=" + title,
		"--force-window=yes",
		"--keep-open=yes",
	}

	args = append(args, lo.Filter(extra, func(arg string, _ int) bool {
		return strings.TrimSpace(arg) != ""
	})...)

	return append(args, "--", target)
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for range socketWaitRetries {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// TimePos returns the current playback position.
func (m *MPV) TimePos() (int64, error) {
	return m.getMsProperty("time-pos")
}

// Duration returns the total duration of the current media.
func (m *MPV) Duration() (int64, error) {
	return m.getMsProperty("duration")
}

// CacheTime returns the timestamp of the last packet the demuxer has buffered.
func (m *MPV) CacheTime() (int64, error) {
	return m.getMsProperty("demuxer-cache-time")
}

// Paused returns whether playback is currently paused.
func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand("get_property", "pause")
	if err != nil {
		return false, err
	}
	paused, _ := data.(bool)
	return paused, nil
}

// HasActivePlayback checks if mpv currently has media loaded.
func (m *MPV) HasActivePlayback() (bool, error) {
	data, err := m.sendCommand("get_property", "time-pos")
	if err != nil {
		if IsUnavailable(err) {
			return false, nil
		}
		return false, err
	}
	return data != nil, nil
}

// Chapters returns the chapter list of the loaded media.
func (m *MPV) Chapters() ([]Chapter, error) {
	data, err := m.sendCommand("get_property", "chapter-list")
	if err != nil {
		if IsUnavailable(err) {
			return nil, nil
		}
		return nil, err
	}

	return ParseChapters(data), nil
}

// ParseChapters converts mpv's chapter-list value into chapters sorted by start.
// Malformed entries are skipped.
func ParseChapters(data any) []Chapter {
	raw, _ := data.([]any)
	chapters := lo.FilterMap(raw, func(item any, _ int) (Chapter, bool) {
		fields, ok := item.(map[string]any)
		if !ok {
			return Chapter{}, false
		}

		start, ok := fields["time"].(float64)
		if !ok {
			return Chapter{}, false
		}

		title, _ := fields["title"].(string)
		return Chapter{Title: title, StartMs: secondsToMs(start)}, true
	})

	slices.SortStableFunc(chapters, func(a, b Chapter) int {
		return cmp.Compare(a.StartMs, b.StartMs)
	})

	return chapters
}

// Seek moves playback to the given absolute position.
func (m *MPV) Seek(positionMs int64) error {
	_, err := m.sendCommand("seek", msToSeconds(positionMs), "absolute")
	return err
}

// SetPaused pauses or resumes playback.
func (m *MPV) SetPaused(paused bool) error {
	return m.Set("pause", paused)
}

// TogglePause toggles the pause state.
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand("cycle", "pause")
	return err
}

// Set a property
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.StopProgressTicker()

	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) getMsProperty(name string) (int64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return secondsToMs(val), nil
}

func secondsToMs(seconds float64) int64 {
	return int64(seconds*1000 + 0.5)
}

func msToSeconds(ms int64) float64 {
	return float64(ms) / 1000
}
