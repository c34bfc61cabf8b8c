package system

import (
	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
)

// ExpirySystem counts down Expiry components and destroys their entities when
// time runs out. The World applies the destroys once this system returns.
type ExpirySystem struct{}

func NewExpirySystem() *ExpirySystem {
	return &ExpirySystem{}
}

func (s *ExpirySystem) Signature() ecs.Signature {
	return ecs.NewSignature(ecs.TypeOf[component.Expiry]())
}

func (s *ExpirySystem) Update(w *ecs.World, entities []ecs.EntityID, dt float64) {
	ecs.Each1(w, entities, func(e ecs.EntityID, ex *component.Expiry) {
		ex.Remaining -= dt
		if ex.Remaining <= 0 {
			w.DestroyEntity(e)
		}
	})
}
