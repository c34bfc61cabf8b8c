package component

import "github.com/overworld/core/internal/vmath"

// Transform places an entity in the world. Rotation holds Euler angles in
// radians; movement only turns around z.
type Transform struct {
	Position vmath.Vec3
	Rotation vmath.Vec3
}
