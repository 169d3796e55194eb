package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/cskr/pubsub/v2"
	"github.com/scrub-cli/scrub/log"
)

// Names of the observed properties and of the mpv events forwarded to the bus.
// Each event is published on its own name as topic and on TopicAll.
const (
	PropPause          = "pause"
	PropPausedForCache = "paused-for-cache"
	PropSeeking        = "seeking"
	PropEOFReached     = "eof-reached"
	PropDuration       = "duration"
	PropChapterList    = "chapter-list"

	EventFileLoaded = "file-loaded"
	EventEndFile    = "end-file"

	TopicAll = "*"
)

var observed = []string{
	PropPause,
	PropPausedForCache,
	PropSeeking,
	PropEOFReached,
	PropDuration,
	PropChapterList,
}

// Event is a property change or a plain event received from mpv.
type Event struct {
	Name string
	Data any
}

// Bool returns the event data as a boolean; anything else is false.
func (e Event) Bool() bool {
	b, _ := e.Data.(bool)
	return b
}

// Millis returns numeric event data (mpv reports seconds) in milliseconds.
func (e Event) Millis() (int64, bool) {
	seconds, ok := e.Data.(float64)
	if !ok {
		return 0, false
	}
	return secondsToMs(seconds), true
}

// Bus fans mpv events out to every interested component.
// A subscriber should listen either to TopicAll or to individual names, not both.
type Bus = pubsub.PubSub[string, Event]

// NewBus creates an event bus. Subscriber channels hold capacity events.
func NewBus(capacity int) *Bus {
	return pubsub.New[string, Event](capacity)
}

// EventListener keeps a dedicated IPC connection open, observes playback properties
// on it and publishes every change to a Bus.
//
// The listener must be stopped before the bus is shut down.
type EventListener struct {
	socketPath string
	bus        *Bus
	conn       net.Conn
	done       chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, bus *Bus) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		bus:        bus,
	}
}

// Start opens the event connection and subscribes to property changes.
// mpv scopes observe_property to the connection that issued it, so the observers
// are registered on the same connection the read loop consumes.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		payload, err := json.Marshal(ipcCommand{
			Command:   []any{"observe_property", i + 1, name},
			RequestID: requestID.Add(1),
		})
		if err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}

		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.done = make(chan struct{})
	el.listening = true

	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s (observing: %v)", el.socketPath, observed)
	return nil
}

// Stop closes the event connection and waits for the read loop to return,
// after which nothing more is published.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}

	el.listening = false
	conn, done := el.conn, el.done
	el.mu.Unlock()

	_ = conn.Close()
	<-done
}

// Done is closed when the read loop has returned, either because of Stop or
// because mpv closed the connection.
func (el *EventListener) Done() <-chan struct{} {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		if event, ok := parseEvent(scanner.Bytes()); ok {
			// subscribers that fall behind miss events instead of stalling mpv's connection
			el.bus.TryPub(event, event.Name, TopicAll)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Debugf("event listener stopped: %v", err)
	}
}

// parseEvent turns one line from mpv into an Event.
// Command replies and unparseable lines are skipped.
func parseEvent(line []byte) (Event, bool) {
	var raw map[string]any
	if err := json.Unmarshal(line, &raw); err != nil {
		return Event{}, false
	}

	eventType, ok := raw["event"].(string)
	if !ok {
		return Event{}, false
	}

	if eventType == "property-change" {
		name, _ := raw["name"].(string)
		if name == "" {
			return Event{}, false
		}
		return Event{Name: name, Data: raw["data"]}, true
	}

	return Event{Name: eventType, Data: raw}, true
}
