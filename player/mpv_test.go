package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers the subset of mpv's JSON-IPC protocol scrub uses.
type fakeMPV struct {
	path     string
	listener net.Listener

	mu       sync.Mutex
	props    map[string]any
	commands []string
}

func newFakeMPV(t *testing.T, props map[string]any) *fakeMPV {
	dir, err := os.MkdirTemp("", "scrub")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "mpv.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{path: path, listener: listener, props: props}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go f.serve(conn)
		}
	}()

	t.Cleanup(func() {
		_ = listener.Close()
		_ = os.RemoveAll(dir)
	})

	return f
}

func (f *fakeMPV) prop(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props[name]
}

func (f *fakeMPV) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func (f *fakeMPV) serve(conn net.Conn) {
	defer conn.Close()

	encoder := json.NewEncoder(conn)
	scanner := bufio.NewScanner(conn)

	for scanner.Scan() {
		var request struct {
			Command   []any `json:"command"`
			RequestID int64 `json:"request_id"`
		}
		if json.Unmarshal(scanner.Bytes(), &request) != nil || len(request.Command) == 0 {
			continue
		}

		name, _ := request.Command[0].(string)
		reply := map[string]any{"request_id": request.RequestID, "error": "success"}
		var events []map[string]any

		f.mu.Lock()
		f.commands = append(f.commands, name)

		switch name {
		case "get_property":
			value, ok := f.props[request.Command[1].(string)]
			if ok {
				reply["data"] = value
			} else {
				reply["error"] = "property unavailable"
			}
		case "set_property":
			f.props[request.Command[1].(string)] = request.Command[2]
		case "cycle":
			paused, _ := f.props["pause"].(bool)
			f.props["pause"] = !paused
		case "seek":
			f.props["time-pos"] = request.Command[1]
		case "observe_property":
			property := request.Command[2].(string)
			if value, ok := f.props[property]; ok {
				events = append(events, map[string]any{
					"event": "property-change",
					"id":    request.Command[1],
					"name":  property,
					"data":  value,
				})
			}
		case "quit":
		default:
			reply["error"] = "invalid parameter"
		}
		f.mu.Unlock()

		// mpv interleaves unrelated events with replies
		_ = encoder.Encode(map[string]any{"event": "playback-restart"})
		_ = encoder.Encode(reply)
		for _, event := range events {
			_ = encoder.Encode(event)
		}
	}
}

func connected(f *fakeMPV) *MPV {
	m := NewMPV()
	m.socketPath = f.path
	return m
}

func TestMPV(t *testing.T) {
	Convey("Given mpv playing a two minute file", t, func() {
		fake := newFakeMPV(t, map[string]any{
			"time-pos":           12.5,
			"duration":           120.0,
			"demuxer-cache-time": 30.25,
			"pause":              false,
			"pid":                1234.0,
			"chapter-list": []any{
				map[string]any{"title": "Credits", "time": 110.0},
				map[string]any{"title": "Intro", "time": 0.0},
				map[string]any{"title": "broken"},
				map[string]any{"title": "Part A", "time": 35.5},
			},
		})
		m := connected(fake)

		Convey("Properties should be reported in milliseconds", func() {
			pos, err := m.TimePos()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 12500)

			dur, err := m.Duration()
			So(err, ShouldBeNil)
			So(dur, ShouldEqual, 120000)

			cached, err := m.CacheTime()
			So(err, ShouldBeNil)
			So(cached, ShouldEqual, 30250)
		})

		Convey("Chapters should be parsed and sorted", func() {
			chapters, err := m.Chapters()
			So(err, ShouldBeNil)
			So(chapters, ShouldResemble, []Chapter{
				{Title: "Intro", StartMs: 0},
				{Title: "Part A", StartMs: 35500},
				{Title: "Credits", StartMs: 110000},
			})
		})

		Convey("Seek should send seconds", func() {
			So(m.Seek(42250), ShouldBeNil)
			So(fake.prop("time-pos"), ShouldEqual, 42.25)
		})

		Convey("Pause state should round trip", func() {
			So(m.SetPaused(true), ShouldBeNil)
			paused, err := m.Paused()
			So(err, ShouldBeNil)
			So(paused, ShouldBeTrue)

			So(m.TogglePause(), ShouldBeNil)
			So(fake.prop("pause"), ShouldEqual, false)
		})

		Convey("Running and active playback should be detected", func() {
			So(m.IsRunning(), ShouldBeTrue)
			active, err := m.HasActivePlayback()
			So(err, ShouldBeNil)
			So(active, ShouldBeTrue)
		})

		Convey("Rejected commands should not be retried", func() {
			_, err := m.sendCommand("bogus")
			So(err, ShouldNotBeNil)
			So(fake.seen(), ShouldResemble, []string{"bogus"})
		})

		Convey("The progress ticker should sample the player", func() {
			samples := make(chan Progress, 1)
			m.StartProgressTicker(10*time.Millisecond, func(p Progress) {
				select {
				case samples <- p:
				default:
				}
			})
			defer m.StopProgressTicker()

			var sample Progress
			select {
			case sample = <-samples:
			case <-time.After(2 * time.Second):
			}

			So(sample, ShouldResemble, Progress{
				PositionMs: 12500,
				DurationMs: 120000,
				CachedMs:   30250,
				Paused:     false,
			})
		})

		Convey("A non-positive ticker interval should fall back to the default", func() {
			samples := make(chan Progress, 1)
			m.StartProgressTicker(0, func(p Progress) {
				select {
				case samples <- p:
				default:
				}
			})
			defer m.StopProgressTicker()

			var sample Progress
			select {
			case sample = <-samples:
			case <-time.After(3 * DefaultProgressInterval):
			}

			So(sample.PositionMs, ShouldEqual, 12500)
		})

		Convey("The engine adapter should drive playback", func() {
			e := NewEngine(m)
			So(e.IsPlaying(), ShouldBeTrue)

			e.Pause()
			So(fake.prop("pause"), ShouldEqual, true)
			So(e.IsPlaying(), ShouldBeFalse)

			e.SeekTo(5000)
			So(fake.prop("time-pos"), ShouldEqual, 5.0)

			e.Start()
			So(fake.prop("pause"), ShouldEqual, false)
		})
	})

	Convey("Given mpv with nothing loaded", t, func() {
		fake := newFakeMPV(t, map[string]any{"pid": 1.0})
		m := connected(fake)

		Convey("Unavailable properties should be recognisable", func() {
			_, err := m.TimePos()
			So(IsUnavailable(err), ShouldBeTrue)

			active, err := m.HasActivePlayback()
			So(err, ShouldBeNil)
			So(active, ShouldBeFalse)

			chapters, err := m.Chapters()
			So(err, ShouldBeNil)
			So(chapters, ShouldBeEmpty)
		})
	})

	Convey("Given no mpv at all", t, func() {
		m := NewMPV()
		m.socketPath = filepath.Join(os.TempDir(), "scrub-missing.sock")

		Convey("Commands should fail after retrying", func() {
			_, err := m.TimePos()
			So(err, ShouldNotBeNil)
			So(IsUnavailable(err), ShouldBeFalse)
			So(m.IsRunning(), ShouldBeFalse)
		})

		Convey("An unstarted player should not be running", func() {
			So(NewMPV().IsRunning(), ShouldBeFalse)
			So(NewMPV().Close(), ShouldBeNil)
		})
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given an event listener on a bus", t, func() {
		fake := newFakeMPV(t, map[string]any{
			"pause":    true,
			"duration": 61.5,
		})

		bus := NewBus(16)
		defer bus.Shutdown()

		pauses := bus.Sub(PropPause)
		durations := bus.Sub(PropDuration)

		listener := NewEventListener(fake.path, bus)
		So(listener.Start(), ShouldBeNil)

		Convey("Observed properties should be published on their topic", func() {
			var pause, duration Event
			for range 2 {
				select {
				case pause = <-pauses:
				case duration = <-durations:
				case <-time.After(2 * time.Second):
				}
			}

			So(pause.Name, ShouldEqual, PropPause)
			So(pause.Bool(), ShouldBeTrue)

			ms, ok := duration.Millis()
			So(ok, ShouldBeTrue)
			So(ms, ShouldEqual, 61500)

			listener.Stop()
			listener.Stop()

			select {
			case <-listener.Done():
			case <-time.After(time.Second):
				t.Error("read loop did not stop")
			}
		})
	})
}

func TestParseEvent(t *testing.T) {
	Convey("parseEvent", t, func() {
		Convey("Should turn property changes into named events", func() {
			event, ok := parseEvent([]byte(`{"event":"property-change","id":3,"name":"seeking","data":true}`))
			So(ok, ShouldBeTrue)
			So(event, ShouldResemble, Event{Name: PropSeeking, Data: true})
		})

		Convey("Should forward plain events", func() {
			event, ok := parseEvent([]byte(`{"event":"end-file","reason":"eof"}`))
			So(ok, ShouldBeTrue)
			So(event.Name, ShouldEqual, EventEndFile)
		})

		Convey("Should skip replies and garbage", func() {
			_, ok := parseEvent([]byte(`{"request_id":1,"error":"success"}`))
			So(ok, ShouldBeFalse)

			_, ok = parseEvent([]byte(`{not json`))
			So(ok, ShouldBeFalse)

			_, ok = parseEvent([]byte(`{"event":"property-change","data":1}`))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestProgress(t *testing.T) {
	Convey("BufferedFraction", t, func() {
		So(Progress{PositionMs: 10, CachedMs: 50, DurationMs: 100}.BufferedFraction(), ShouldEqual, 0.5)
		So(Progress{PositionMs: 70, CachedMs: 50, DurationMs: 100}.BufferedFraction(), ShouldEqual, 0.7)
		So(Progress{CachedMs: 500, DurationMs: 100}.BufferedFraction(), ShouldEqual, 1)
		So(Progress{CachedMs: 500}.BufferedFraction(), ShouldEqual, 0)
	})
}

func TestArguments(t *testing.T) {
	Convey("buildArgs", t, func() {
		args := buildArgs("/tmp/s.sock", "Title", "movie.mkv", []string{"--mute=yes", " ", "--volume=50"})

		Convey("Should put user args before the target", func() {
			So(args[len(args)-4:], ShouldResemble, []string{"--mute=yes", "--volume=50", "--", "movie.mkv"})
		})

		Convey("Should point mpv at the socket", func() {
			So(args, ShouldContain, "--input-ipc-server=/tmp/s.sock")
			So(args, ShouldContain, "--force-media-title=Title")
		})
	})

	Convey("checkTarget", t, func() {
		for _, target := range []string{"", "--script=evil.lua", "a\nb", "ftp://host/file"} {
			_, err := checkTarget(target)
			So(err, ShouldNotBeNil)
		}

		target, err := checkTarget(" https://example.com/v.mp4 ")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "https://example.com/v.mp4")

		target, err = checkTarget("videos/../movie.mkv")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "movie.mkv")

		target, err = checkTarget("rtsp://camera.local/live")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "rtsp://camera.local/live")
	})

	Convey("cleanTitle", t, func() {
		So(cleanTitle(" a\tb\nc\x00 "), ShouldEqual, "a b c")
	})
}

// pauseCounter is a Player that only answers pause state queries.
type pauseCounter struct {
	Player
	paused  bool
	queries int
}

func (p *pauseCounter) Paused() (bool, error) {
	p.queries++
	return p.paused, nil
}

func (p *pauseCounter) SetPaused(paused bool) error {
	p.paused = paused
	return nil
}

func TestEngine(t *testing.T) {
	Convey("Given an engine on a player", t, func() {
		p := &pauseCounter{}
		e := NewEngine(p)

		Convey("The pause state should be queried once and then remembered", func() {
			So(e.IsPlaying(), ShouldBeTrue)
			So(e.IsPlaying(), ShouldBeTrue)
			So(p.queries, ShouldEqual, 1)
		})

		Convey("Pause events should answer IsPlaying without a query", func() {
			e.Observe(Event{Name: PropPause, Data: true})
			So(e.IsPlaying(), ShouldBeFalse)

			e.Observe(Event{Name: PropPause, Data: false})
			So(e.IsPlaying(), ShouldBeTrue)

			e.Observe(Event{Name: PropSeeking, Data: true})
			So(e.IsPlaying(), ShouldBeTrue)
			So(p.queries, ShouldEqual, 0)
		})

		Convey("Pause and Start should update the remembered state", func() {
			e.Pause()
			So(p.paused, ShouldBeTrue)
			So(e.IsPlaying(), ShouldBeFalse)

			e.Start()
			So(e.IsPlaying(), ShouldBeTrue)
			So(p.queries, ShouldEqual, 0)
		})
	})
}
