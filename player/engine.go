package player

import (
	"github.com/samber/mo"
	"github.com/scrub-cli/scrub/controls"
	"github.com/scrub-cli/scrub/log"
)

var _ controls.Engine = (*Engine)(nil)

// Engine adapts a Player to the controls.Engine contract, which has no error
// returns. Failures are logged and otherwise dropped.
//
// The pause state is taken from observed pause events when one has been seen, so
// IsPlaying does not cost an IPC round trip. Engine is meant to be used from a
// single event loop.
type Engine struct {
	p      Player
	paused mo.Option[bool]
}

// NewEngine wraps p so it can be driven by a controls.Surface.
func NewEngine(p Player) *Engine {
	return &Engine{p: p, paused: mo.None[bool]()}
}

// Observe records the pause state carried by a pause property event.
// Other events are ignored.
func (e *Engine) Observe(event Event) {
	if event.Name == PropPause {
		e.paused = mo.Some(event.Bool())
	}
}

func (e *Engine) IsPlaying() bool {
	if paused, ok := e.paused.Get(); ok {
		return !paused
	}

	paused, err := e.p.Paused()
	if err != nil {
		log.Warnf("engine: query pause state: %v", err)
		return false
	}

	e.paused = mo.Some(paused)
	return !paused
}

func (e *Engine) Pause() {
	e.setPaused(true)
}

func (e *Engine) Start() {
	e.setPaused(false)
}

func (e *Engine) setPaused(paused bool) {
	if err := e.p.SetPaused(paused); err != nil {
		log.Warnf("engine: set pause to %t: %v", paused, err)
		e.paused = mo.None[bool]()
		return
	}

	e.paused = mo.Some(paused)
}

func (e *Engine) SeekTo(positionMs int64) {
	if err := e.p.Seek(positionMs); err != nil {
		log.Warnf("engine: seek to %d: %v", positionMs, err)
	}
}
