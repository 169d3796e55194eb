// Package hook runs user Lua scripts as seek consumers.
//
// A hook script defines OnSeekStarted, OnSeekEnded or both as globals. Each returns a
// boolean telling whether it handled the event. Scripts get the mangal-lua-libs
// modules preloaded and a seek(ms) global to move playback themselves.
package hook

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/constant"
	"github.com/scrub-cli/scrub/filesystem"
	"github.com/scrub-cli/scrub/log"
	"github.com/scrub-cli/scrub/util"
	"github.com/scrub-cli/scrub/where"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Seeker moves playback to an absolute position.
type Seeker interface {
	SeekTo(positionMs int64)
}

type compiled struct {
	modTime time.Time
	proto   *lua.FunctionProto
}

var bytecodeCache = xsync.NewMapOf[string, compiled]()

// Hook is a loaded Lua script. It is not safe for concurrent use.
type Hook struct {
	name   string
	path   string
	state  *lua.LState
	seeker Seeker
}

// Resolve maps a hook name to a script path. Bare names refer to scripts in the
// hooks directory and may omit the .lua extension.
func Resolve(name string) string {
	if filepath.Ext(name) == "" {
		name += ".lua"
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return name
	}
	return filepath.Join(where.Hooks(), name)
}

// Load compiles and runs the script at path, reusing the compiled chunk while the
// file is unchanged. At least one of the hook functions must be defined.
func Load(path string, seeker Seeker) (*Hook, error) {
	state := lua.NewState()
	libs.Preload(state)

	h := &Hook{
		name:   util.FileStem(path),
		path:   path,
		state:  state,
		seeker: seeker,
	}
	state.SetGlobal(constant.SeekFn, state.NewFunction(h.luaSeek))

	if err := compileAndRun(state, path); err != nil {
		state.Close()
		return nil, fmt.Errorf("load hook %s: %w", h.name, err)
	}

	if len(h.Defines()) == 0 {
		state.Close()
		return nil, fmt.Errorf("hook %s defines neither %s nor %s", h.name, constant.OnSeekStartedFn, constant.OnSeekEndedFn)
	}

	log.Infof("loaded hook %s (%v)", h.name, h.Defines())
	return h, nil
}

func compileAndRun(state *lua.LState, path string) error {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return err
	}

	entry, ok := bytecodeCache.Load(path)
	if !ok || !entry.modTime.Equal(info.ModTime()) {
		contents, err := filesystem.API().ReadFile(path)
		if err != nil {
			return err
		}

		chunk, err := parse.Parse(bytes.NewReader(contents), path)
		if err != nil {
			return err
		}

		proto, err := lua.Compile(chunk, path)
		if err != nil {
			return err
		}

		entry = compiled{modTime: info.ModTime(), proto: proto}
		bytecodeCache.Store(path, entry)
	}

	state.Push(state.NewFunctionFromProto(entry.proto))
	return state.PCall(0, lua.MultRet, nil)
}

// Name returns the script name without extension.
func (h *Hook) Name() string {
	return h.name
}

// Defines lists the hook functions the script defines.
func (h *Hook) Defines() []string {
	return lo.Filter([]string{constant.OnSeekStartedFn, constant.OnSeekEndedFn}, func(fn string, _ int) bool {
		return h.defined(fn)
	})
}

func (h *Hook) defined(fn string) bool {
	return h.state.GetGlobal(fn).Type() == lua.LTFunction
}

// OnSeekStarted calls the script's OnSeekStarted, if any.
func (h *Hook) OnSeekStarted() bool {
	return h.call(constant.OnSeekStartedFn)
}

// OnSeekEnded calls the script's OnSeekEnded with the target position, if defined.
func (h *Hook) OnSeekEnded(position int64) bool {
	return h.call(constant.OnSeekEndedFn, lua.LNumber(position))
}

// Close releases the Lua state.
func (h *Hook) Close() {
	h.state.Close()
}

// call runs a hook function. Script errors are logged and count as not handled,
// so a broken script falls back to the default behaviour.
func (h *Hook) call(fn string, args ...lua.LValue) bool {
	if !h.defined(fn) {
		return false
	}

	err := h.state.CallByParam(lua.P{
		Fn:      h.state.GetGlobal(fn),
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		log.Errorf("hook %s: %s: %v", h.name, fn, err)
		return false
	}

	ret := h.state.Get(-1)
	h.state.Pop(1)

	return ret == lua.LTrue
}

func (h *Hook) luaSeek(L *lua.LState) int {
	position := L.CheckInt64(1)
	if h.seeker != nil {
		h.seeker.SeekTo(max(position, 0))
	}
	return 0
}
