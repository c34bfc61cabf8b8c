package scripting

import (
	"fmt"
	"strings"
	"time"

	"github.com/overworld/core/internal/core/ecs"
	coresys "github.com/overworld/core/internal/core/system"
	"github.com/overworld/core/internal/resource"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// UpdateHook is the global a script may define to be called once per frame
// with the frame's dt in seconds.
const UpdateHook = "on_update"

// Engine wraps a single gopher-lua VM bound to one World.
// Single-goroutine access only (game loop).
type Engine struct {
	vm    *lua.LState
	world *ecs.World
	log   *zap.Logger
}

// NewEngine creates a Lua VM with the standard libraries and the entity API
// registered as globals.
func NewEngine(world *ecs.World, log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{vm: vm, world: world, log: log}
	e.registerEntityAPI()
	e.registerGameAPI()
	return e
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// RunResource runs a script previously loaded into the resource store.
func (e *Engine) RunResource(store *resource.Store, id resource.ID) error {
	src, err := store.Text(id)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%016x", uint64(id))
	if r, ok := store.Get(id); ok {
		name = r.Path
	}
	fn, err := e.vm.Load(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	e.log.Debug("ran lua script", zap.String("file", name))
	return nil
}

// Update calls the script's on_update(dt) global if one is defined. Errors
// are logged and swallowed so a faulty script cannot stop the frame loop.
func (e *Engine) Update(dt time.Duration) {
	fn := e.vm.GetGlobal(UpdateHook)
	if fn == lua.LNil {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(dt.Seconds())); err != nil {
		e.log.Warn("lua update error", zap.String("func", UpdateHook), zap.Error(err))
	}
}

// Hook adapts Update to the frame runner. It runs in the input phase so that
// script mutations are visible to the systems of the same frame.
func (e *Engine) Hook() coresys.Hook {
	return coresys.HookFunc{At: coresys.PhaseInput, Fn: e.Update}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
