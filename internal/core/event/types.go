package event

import (
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/vmath"
)

// AnimationRequested asks the external animation collaborator to play Clip
// on Entity.
type AnimationRequested struct {
	Entity ecs.EntityID
	Clip   string
}

// WaypointReached is emitted when a mover arrives at its waypoint target.
type WaypointReached struct {
	Entity   ecs.EntityID
	Position vmath.Vec3
}

// RouteFinished is emitted when the last waypoint of a route was reached.
type RouteFinished struct {
	Entity ecs.EntityID
}

// PathUnreachable is emitted when a path request has no solution.
type PathUnreachable struct {
	Entity ecs.EntityID
	Goal   vmath.Vec3
}

// ShipToggled is emitted after an entity embarks or disembarks.
type ShipToggled struct {
	Entity   ecs.EntityID
	Embarked bool
	Emitter  ecs.EntityID
}
