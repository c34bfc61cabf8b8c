package component

import (
	"github.com/overworld/core/internal/navmap"
	"github.com/overworld/core/internal/vmath"
)

// WaypointTarget is the position a mover is heading to. Movement removes it
// on arrival.
type WaypointTarget struct {
	Position vmath.Vec3
	Area     navmap.Area
}

// Navigator is the terrain an entity may cross.
type Navigator struct {
	Mask navmap.Area
}

// PathRequest asks the navigation system for a route to Goal.
type PathRequest struct {
	Goal vmath.Vec3
}

// Route is a computed path being followed one waypoint at a time.
type Route struct {
	Waypoints []vmath.Vec3
	Next      int
}

func (r *Route) Done() bool { return r.Next >= len(r.Waypoints) }

// NavmapContext is the world singleton describing the active navmap.
type NavmapContext struct {
	Image  navmap.Image
	Extent navmap.Extent
}
