package system

import (
	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/core/event"
	"github.com/overworld/core/internal/particle"
	"go.uber.org/zap"
)

// ShipToggleSystem embarks and disembarks units on request: it swaps which of
// unit and hull is visible, switches the navigator mask and puffs a short
// smoke emitter attached to the unit.
type ShipToggleSystem struct {
	smoke    particle.Config
	smokeTTL float64
	bus      *event.Bus
	log      *zap.Logger
}

func NewShipToggleSystem(smoke particle.Config, smokeTTL float64, bus *event.Bus, log *zap.Logger) *ShipToggleSystem {
	return &ShipToggleSystem{smoke: smoke, smokeTTL: smokeTTL, bus: bus, log: log}
}

func (s *ShipToggleSystem) Signature() ecs.Signature {
	return ecs.NewSignature(ecs.TypeOf[component.Ship](), ecs.TypeOf[component.Transform]())
}

func (s *ShipToggleSystem) Update(w *ecs.World, entities []ecs.EntityID, _ float64) {
	ecs.Each2(w, entities, func(e ecs.EntityID, ship *component.Ship, tr *component.Transform) {
		if !ship.ToggleRequested {
			return
		}
		ship.ToggleRequested = false
		ship.Embarked = !ship.Embarked

		if r, ok := ecs.TryGet[component.Renderable](w, e); ok {
			r.Visible = !ship.Embarked
		}
		if hull, ok := ecs.TryGet[component.Renderable](w, ship.Hull); ok {
			hull.Visible = ship.Embarked
		}
		if nav, ok := ecs.TryGet[component.Navigator](w, e); ok {
			nav.Mask = ship.LandMask
			if ship.Embarked {
				nav.Mask = ship.SeaMask
			}
		}

		puff := w.CreateEntity()
		ecs.Add(w, puff, component.Transform{Position: tr.Position})
		em := ecs.Add(w, puff, *particle.New(s.smoke, tr.Position, w.Rand()))
		em.AttachTo(e)
		em.DestroyWithParent = true
		ecs.Add(w, puff, component.Expiry{Remaining: s.smokeTTL})

		s.log.Debug("ship toggled",
			zap.Uint32("entity", uint32(e)),
			zap.Bool("embarked", ship.Embarked),
			zap.Uint32("emitter", uint32(puff)),
		)
		event.Emit(s.bus, event.ShipToggled{Entity: e, Embarked: ship.Embarked, Emitter: puff})
	})
}
