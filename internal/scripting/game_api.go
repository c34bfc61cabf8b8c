package scripting

import (
	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
)

// registerGameAPI binds the calls that drive the game systems: path
// requests and ship toggles. They only post requests; the systems act on
// them during the next world update.
func (e *Engine) registerGameAPI() {
	e.vm.SetGlobal("request_path", e.vm.NewFunction(e.requestPath))
	e.vm.SetGlobal("toggle_ship", e.vm.NewFunction(e.toggleShip))
	e.vm.SetGlobal("is_embarked", e.vm.NewFunction(e.isEmbarked))
}

// request_path(id, x, y, z)
func (e *Engine) requestPath(L *lua.LState) int {
	checkArity(L, "request_path", 4, 4)
	id := e.checkEntity(L, 1)
	goal := checkVec3(L, 2)
	if !ecs.Has[component.Navigator](e.world, id) {
		L.ArgError(1, "entity has no navigator")
	}
	if req, ok := ecs.TryGet[component.PathRequest](e.world, id); ok {
		req.Goal = goal
		return 0
	}
	ecs.Add(e.world, id, component.PathRequest{Goal: goal})
	return 0
}

// toggle_ship(id)
func (e *Engine) toggleShip(L *lua.LState) int {
	checkArity(L, "toggle_ship", 1, 1)
	ship := e.checkShip(L, 1)
	ship.ToggleRequested = true
	return 0
}

// is_embarked(id) -> bool
func (e *Engine) isEmbarked(L *lua.LState) int {
	checkArity(L, "is_embarked", 1, 1)
	L.Push(lua.LBool(e.checkShip(L, 1).Embarked))
	return 1
}

func (e *Engine) checkShip(L *lua.LState, n int) *component.Ship {
	id := e.checkEntity(L, n)
	ship, ok := ecs.TryGet[component.Ship](e.world, id)
	if !ok {
		L.ArgError(n, "entity has no ship")
	}
	return ship
}
