package data

import (
	"fmt"

	"github.com/overworld/core/internal/calendar"
	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/navmap"
	"github.com/overworld/core/internal/particle"
	"github.com/overworld/core/internal/resource"
	"go.uber.org/multierr"
)

// Spawn creates the scene's entities in order and returns their ids.
// References to other entities (ship hulls, emitter parents) resolve first
// against the scene and then against the World. Every reference is checked
// before anything is created, so a failed Spawn leaves the World untouched.
func Spawn(w *ecs.World, s *Scene) ([]ecs.EntityID, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := checkRefs(w, s); err != nil {
		return nil, err
	}

	ids := make([]ecs.EntityID, len(s.Entities))
	local := make(map[string]ecs.EntityID, len(s.Entities))
	for i := range s.Entities {
		e := &s.Entities[i]
		if e.Name == "" {
			ids[i] = w.CreateEntity()
			continue
		}
		ids[i] = w.CreateNamedEntity(ecs.Intern(e.Name))
		if _, dup := local[e.Name]; !dup {
			local[e.Name] = ids[i]
		}
	}
	resolve := func(name string) ecs.EntityID {
		if id, ok := local[name]; ok {
			return id
		}
		return w.FindEntityWithName(ecs.Intern(name))
	}

	for i := range s.Entities {
		addComponents(w, ids[i], &s.Entities[i], resolve)
	}
	// Hull renderables may belong to later entries, so boarding waits until
	// every entry has its components.
	for i := range s.Entities {
		if sh := s.Entities[i].Ship; sh != nil && sh.Embarked {
			board(w, ids[i])
		}
	}

	if c := s.Clock; c != nil {
		ecs.SetSingleton(w, component.Clock{
			Now:  calendar.Stamp{YearBC: c.YearBC, Day: c.Day, Phase: c.Phase},
			Rate: c.Rate,
		})
	}
	return ids, nil
}

func checkRefs(w *ecs.World, s *Scene) error {
	names := make(map[string]bool, len(s.Entities))
	for i := range s.Entities {
		if n := s.Entities[i].Name; n != "" {
			names[n] = true
		}
	}
	known := func(name string) bool {
		return names[name] || w.FindEntityWithName(ecs.Intern(name)) != ecs.NullEntity
	}

	var err error
	for i := range s.Entities {
		e := &s.Entities[i]
		if e.Ship != nil && !known(e.Ship.Hull) {
			err = multierr.Append(err, fmt.Errorf("%s: unknown hull %q", entryLabel(i, e), e.Ship.Hull))
		}
		if e.Emitter != nil && e.Emitter.AttachTo != "" && !known(e.Emitter.AttachTo) {
			err = multierr.Append(err, fmt.Errorf("%s: unknown emitter parent %q", entryLabel(i, e), e.Emitter.AttachTo))
		}
	}
	return err
}

// board puts a unit on its ship the way the ship toggle does: the unit is
// hidden, the hull shown and the navigator switched to the sea mask.
func board(w *ecs.World, id ecs.EntityID) {
	ship := ecs.Get[component.Ship](w, id)
	if r, ok := ecs.TryGet[component.Renderable](w, id); ok {
		r.Visible = false
	}
	if hull, ok := ecs.TryGet[component.Renderable](w, ship.Hull); ok {
		hull.Visible = true
	}
	if nav, ok := ecs.TryGet[component.Navigator](w, id); ok {
		nav.Mask = ship.SeaMask
	}
}

func addComponents(w *ecs.World, id ecs.EntityID, e *EntityEntry, resolve func(string) ecs.EntityID) {
	ecs.Add(w, id, component.Transform{Position: e.Position.Vec3, Rotation: e.Rotation.Vec3})

	if e.Mesh != "" {
		ecs.Add(w, id, component.Renderable{Mesh: resource.IDOf(e.Mesh), Visible: !e.Hidden})
	}
	if len(e.Navigator) > 0 {
		mask, _ := navmap.ParseMask(e.Navigator)
		ecs.Add(w, id, component.Navigator{Mask: mask})
	}
	if e.Mover != nil {
		ecs.Add(w, id, component.Mover{Speed: e.Mover.Speed, AngularSpeed: e.Mover.AngularSpeed})
	}
	if e.Goal != nil {
		ecs.Add(w, id, component.PathRequest{Goal: e.Goal.Vec3})
	}
	if sh := e.Ship; sh != nil {
		land, _ := navmap.ParseMask(sh.Land)
		sea, _ := navmap.ParseMask(sh.Sea)
		if land == 0 {
			land = navmap.Land
		}
		if sea == 0 {
			sea = navmap.Sea
		}
		ecs.Add(w, id, component.Ship{
			Hull:     resolve(sh.Hull),
			Embarked: sh.Embarked,
			LandMask: land,
			SeaMask:  sea,
		})
	}
	if em := e.Emitter; em != nil {
		typ, _ := particle.ParseType(em.Type)
		cfg := particle.Config{
			Type:     typ,
			Capacity: em.Capacity,
			Lifetime: em.Lifetime,
			X:        em.X,
			Y:        em.Y,
			Z:        em.Z,
			Size:     em.Size,
			Offset:   em.Offset.Vec3,
			Prefill:  em.Prefill,
		}
		p := ecs.Add(w, id, *particle.New(cfg, e.Position.Vec3, w.Rand()))
		if em.AttachTo != "" {
			p.AttachTo(resolve(em.AttachTo))
			p.DestroyWithParent = em.DestroyWithParent
		}
	}
	if e.Expiry > 0 {
		ecs.Add(w, id, component.Expiry{Remaining: e.Expiry})
	}
}
