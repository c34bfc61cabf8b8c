package scripting

import (
	"math"

	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/vmath"
	lua "github.com/yuin/gopher-lua"
)

// registerEntityAPI binds the entity functions. Every binding validates its
// whole argument list before touching the World.
func (e *Engine) registerEntityAPI() {
	api := map[string]lua.LGFunction{
		"create_entity":         e.createEntity,
		"find_entity_with_name": e.findEntityWithName,
		"destroy_entity":        e.destroyEntity,
		"get_entity_position":   e.getEntityPosition,
		"set_entity_position":   e.setEntityPosition,
		"get_entity_rotation":   e.getEntityRotation,
		"set_entity_rotation":   e.setEntityRotation,
	}
	for name, fn := range api {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

// checkArity raises unless the call received between lo and hi arguments.
func checkArity(L *lua.LState, fn string, lo, hi int) {
	n := L.GetTop()
	if n < lo || n > hi {
		if lo == hi {
			L.RaiseError("%s: expected %d arguments, got %d", fn, lo, n)
		}
		L.RaiseError("%s: expected %d to %d arguments, got %d", fn, lo, hi, n)
	}
}

// checkEntity reads argument n as the id of an alive entity.
func (e *Engine) checkEntity(L *lua.LState, n int) ecs.EntityID {
	v, ok := L.Get(n).(lua.LNumber)
	if !ok {
		L.ArgError(n, "entity id expected, got "+L.Get(n).Type().String())
	}
	f := float64(v)
	if f != math.Trunc(f) || f <= 0 || f > math.MaxUint32 {
		L.ArgError(n, "invalid entity id")
	}
	id := ecs.EntityID(f)
	if !e.world.Alive(id) || e.world.Pending(id) {
		L.ArgError(n, "no such entity")
	}
	return id
}

func checkVec3(L *lua.LState, first int) vmath.Vec3 {
	return vmath.V3(
		float64(L.CheckNumber(first)),
		float64(L.CheckNumber(first+1)),
		float64(L.CheckNumber(first+2)),
	)
}

func pushVec3(L *lua.LState, v vmath.Vec3) int {
	L.Push(lua.LNumber(v.X))
	L.Push(lua.LNumber(v.Y))
	L.Push(lua.LNumber(v.Z))
	return 3
}

// create_entity([name]) -> id
func (e *Engine) createEntity(L *lua.LState) int {
	checkArity(L, "create_entity", 0, 1)
	var id ecs.EntityID
	if L.GetTop() == 1 {
		name := L.CheckString(1)
		id = e.world.CreateNamedEntity(ecs.Intern(name))
	} else {
		id = e.world.CreateEntity()
	}
	L.Push(lua.LNumber(id))
	return 1
}

// find_entity_with_name(name) -> id, or 0 when nothing carries the name
func (e *Engine) findEntityWithName(L *lua.LState) int {
	checkArity(L, "find_entity_with_name", 1, 1)
	name := L.CheckString(1)
	L.Push(lua.LNumber(e.world.FindEntityWithName(ecs.Intern(name))))
	return 1
}

// destroy_entity(id)
func (e *Engine) destroyEntity(L *lua.LState) int {
	checkArity(L, "destroy_entity", 1, 1)
	e.world.DestroyEntity(e.checkEntity(L, 1))
	return 0
}

// get_entity_position(id) -> x, y, z
func (e *Engine) getEntityPosition(L *lua.LState) int {
	checkArity(L, "get_entity_position", 1, 1)
	tr := e.checkTransform(L, 1)
	return pushVec3(L, tr.Position)
}

// set_entity_position(id, x, y, z)
func (e *Engine) setEntityPosition(L *lua.LState) int {
	checkArity(L, "set_entity_position", 4, 4)
	id := e.checkEntity(L, 1)
	v := checkVec3(L, 2)
	e.transform(id).Position = v
	return 0
}

// get_entity_rotation(id) -> rx, ry, rz
func (e *Engine) getEntityRotation(L *lua.LState) int {
	checkArity(L, "get_entity_rotation", 1, 1)
	tr := e.checkTransform(L, 1)
	return pushVec3(L, tr.Rotation)
}

// set_entity_rotation(id, rx, ry, rz)
func (e *Engine) setEntityRotation(L *lua.LState) int {
	checkArity(L, "set_entity_rotation", 4, 4)
	id := e.checkEntity(L, 1)
	v := checkVec3(L, 2)
	e.transform(id).Rotation = v
	return 0
}

func (e *Engine) checkTransform(L *lua.LState, n int) *component.Transform {
	id := e.checkEntity(L, n)
	tr, ok := ecs.TryGet[component.Transform](e.world, id)
	if !ok {
		L.ArgError(n, "entity has no transform")
	}
	return tr
}

// transform returns id's Transform, adding an identity one if it has none.
func (e *Engine) transform(id ecs.EntityID) *component.Transform {
	if tr, ok := ecs.TryGet[component.Transform](e.world, id); ok {
		return tr
	}
	return ecs.Add(e.world, id, component.Transform{})
}
