package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// ipcResponse is one line received from mpv's IPC socket.
// Asynchronous events share the connection and carry Event instead of a request id.
type ipcResponse struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID *int64 `json:"request_id"`
	Event     string `json:"event"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
)

// Error is a failure reported by mpv itself, as opposed to a transport failure.
type Error struct {
	Command string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("mpv %s: %s", e.Command, e.Message)
}

// IsUnavailable reports whether err means the requested property has no value,
// e.g. time-pos while nothing is loaded.
func IsUnavailable(err error) bool {
	var mpvErr *Error
	return errors.As(err, &mpvErr) && mpvErr.Message == "property unavailable"
}

var requestID atomic.Int64

// sendCommand sends a JSON-IPC command to mpv and returns the data of its reply.
// Transport failures are retried; errors reported by mpv are not.
func (m *MPV) sendCommand(command ...any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := range maxRetries {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}

		var mpvErr *Error
		if errors.As(err, &mpvErr) {
			kind := ftag.Internal
			if IsUnavailable(err) {
				kind = ftag.NotFound
			}

			return nil, fault.Wrap(err,
				fctx.With(context.Background(),
					"error_at", "mpv-ipc-reply",
					"command", mpvErr.Command,
				),
				ftag.With(kind),
				fmsg.With("mpv rejected a command"),
			)
		}

		lastErr = err
	}

	return nil, fault.Wrap(
		fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr),
		fctx.With(context.Background(),
			"error_at", "mpv-ipc-send",
			"socket", m.socketPath,
		),
		ftag.With(ftag.Internal),
		fmsg.With("Cannot talk to mpv"),
	)
}

// doSendCommand performs a single IPC round trip and waits for the reply matching
// its request id, skipping events mpv interleaves on the same connection.
func doSendCommand(socketPath string, command []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	id := requestID.Add(1)

	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		var resp ipcResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}

		if resp.Event != "" || resp.RequestID == nil || *resp.RequestID != id {
			continue
		}

		if resp.Error != "" && resp.Error != "success" {
			return nil, &Error{Command: fmt.Sprint(command[0]), Message: resp.Error}
		}

		return resp.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return nil, errors.New("read: connection closed before reply")
}
