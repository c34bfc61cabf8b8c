package system

import (
	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/particle"
	"go.uber.org/zap"
)

// EmitterSystem advances every particle emitter one frame. Attached emitters
// first snap their transform to the parent's; an emitter whose parent is gone
// is destroyed or detached according to DestroyWithParent.
type EmitterSystem struct {
	log *zap.Logger
}

func NewEmitterSystem(log *zap.Logger) *EmitterSystem {
	return &EmitterSystem{log: log}
}

func (s *EmitterSystem) Signature() ecs.Signature {
	return ecs.NewSignature(ecs.TypeOf[component.Transform](), ecs.TypeOf[particle.Emitter]())
}

func (s *EmitterSystem) Update(w *ecs.World, entities []ecs.EntityID, dt float64) {
	ecs.Each2(w, entities, func(e ecs.EntityID, tr *component.Transform, em *particle.Emitter) {
		if em.Attached {
			parent, ok := ecs.TryGet[component.Transform](w, em.Parent)
			switch {
			case ok && !w.Pending(em.Parent):
				tr.Position = parent.Position
			case em.DestroyWithParent:
				w.DestroyEntity(e)
				return
			default:
				s.log.Debug("emitter parent gone, detaching",
					zap.Uint32("emitter", uint32(e)),
					zap.Uint32("parent", uint32(em.Parent)),
				)
				em.Detach()
			}
		}
		em.Update(tr.Position, dt, w.Rand())
	})
}
