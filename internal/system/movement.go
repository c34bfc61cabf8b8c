package system

import (
	"math"

	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/core/event"
	"github.com/overworld/core/internal/vmath"
)

// DefaultCloseEpsilon is the distance under which a waypoint counts as reached.
const DefaultCloseEpsilon = 1e-3

// MovementSystem walks entities toward their WaypointTarget and turns them to
// face it. Entities without a Mover use the system defaults.
type MovementSystem struct {
	defaults     component.Mover
	closeEpsilon float64
	bus          *event.Bus
}

func NewMovementSystem(defaults component.Mover, closeEpsilon float64, bus *event.Bus) *MovementSystem {
	if closeEpsilon <= 0 {
		closeEpsilon = DefaultCloseEpsilon
	}
	return &MovementSystem{defaults: defaults, closeEpsilon: closeEpsilon, bus: bus}
}

func (s *MovementSystem) Signature() ecs.Signature {
	return ecs.NewSignature(ecs.TypeOf[component.Transform](), ecs.TypeOf[component.WaypointTarget]())
}

func (s *MovementSystem) Update(w *ecs.World, entities []ecs.EntityID, dt float64) {
	ecs.Each2(w, entities, func(e ecs.EntityID, tr *component.Transform, tgt *component.WaypointTarget) {
		mover := s.defaults
		if m, ok := ecs.TryGet[component.Mover](w, e); ok {
			mover = *m
		}

		v := tgt.Position.Sub(tr.Position)
		dist := v.Mag()
		if dist < s.closeEpsilon {
			reached := tgt.Position
			ecs.Remove[component.WaypointTarget](w, e)
			event.Emit(s.bus, event.WaypointReached{Entity: e, Position: reached})
			event.Emit(s.bus, event.AnimationRequested{Entity: e, Clip: "idle"})
			return
		}

		// Never step past the target.
		step := math.Min(mover.Speed*dt, dist)
		tr.Position = tr.Position.Add(v.Normalize().Scale(step))
		tr.Rotation.Z = vmath.RotateToward(tr.Rotation.Z, vmath.Heading(v.X, v.Y), mover.AngularSpeed*dt)
	})
}
