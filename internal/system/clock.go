package system

import (
	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
)

// ClockSystem advances the Clock singleton. It touches no entities; its
// signature matches everything and the snapshot is ignored.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem { return &ClockSystem{} }

func (ClockSystem) Signature() ecs.Signature { return nil }

func (ClockSystem) Update(w *ecs.World, _ []ecs.EntityID, dt float64) {
	if c, ok := ecs.TrySingleton[component.Clock](w); ok && dt > 0 {
		c.Now = c.Now.Advance(dt * c.Rate)
	}
}
