package system

import (
	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/core/event"
	"github.com/overworld/core/internal/navmap"
	"go.uber.org/zap"
)

// NavigationSystem resolves PathRequests into Routes over the world's navmap.
type NavigationSystem struct {
	finder navmap.Finder
	bus    *event.Bus
	log    *zap.Logger
}

func NewNavigationSystem(finder navmap.Finder, bus *event.Bus, log *zap.Logger) *NavigationSystem {
	return &NavigationSystem{finder: finder, bus: bus, log: log}
}

func (s *NavigationSystem) Signature() ecs.Signature {
	return ecs.NewSignature(
		ecs.TypeOf[component.Transform](),
		ecs.TypeOf[component.Navigator](),
		ecs.TypeOf[component.PathRequest](),
	)
}

func (s *NavigationSystem) Update(w *ecs.World, entities []ecs.EntityID, _ float64) {
	if len(entities) == 0 {
		return
	}
	nm, ok := ecs.TrySingleton[component.NavmapContext](w)
	if !ok {
		s.log.Warn("path requests pending without a navmap", zap.Int("requests", len(entities)))
		return
	}
	ecs.Each3(w, entities, func(e ecs.EntityID, tr *component.Transform, nav *component.Navigator, req *component.PathRequest) {
		goal := req.Goal
		ecs.Remove[component.PathRequest](w, e)
		if ecs.Has[component.Route](w, e) {
			ecs.Remove[component.Route](w, e)
		}
		if ecs.Has[component.WaypointTarget](w, e) {
			ecs.Remove[component.WaypointTarget](w, e)
		}

		path := s.finder.FindPath(tr.Position, goal, nav.Mask, nm.Extent, nm.Image)
		if len(path) == 0 {
			s.log.Debug("path unreachable",
				zap.Uint32("entity", uint32(e)),
				zap.Stringer("mask", nav.Mask),
			)
			event.Emit(s.bus, event.PathUnreachable{Entity: e, Goal: goal})
			return
		}
		s.log.Debug("path found",
			zap.Uint32("entity", uint32(e)),
			zap.Int("waypoints", len(path)),
		)
		ecs.Add(w, e, component.Route{Waypoints: path})
	})
}

// RouteSystem feeds a Route to the mover one WaypointTarget at a time.
type RouteSystem struct {
	bus *event.Bus
}

func NewRouteSystem(bus *event.Bus) *RouteSystem {
	return &RouteSystem{bus: bus}
}

func (s *RouteSystem) Signature() ecs.Signature {
	return ecs.NewSignature(ecs.TypeOf[component.Transform](), ecs.TypeOf[component.Route]())
}

func (s *RouteSystem) Update(w *ecs.World, entities []ecs.EntityID, _ float64) {
	nm, hasMap := ecs.TrySingleton[component.NavmapContext](w)
	ecs.Each1(w, entities, func(e ecs.EntityID, r *component.Route) {
		if ecs.Has[component.WaypointTarget](w, e) {
			return
		}
		if r.Done() {
			ecs.Remove[component.Route](w, e)
			event.Emit(s.bus, event.RouteFinished{Entity: e})
			return
		}
		wp := r.Waypoints[r.Next]
		r.Next++
		target := component.WaypointTarget{Position: wp, Area: navmap.Neutral}
		if hasMap {
			width, height := nm.Image.Size()
			px := navmap.Projection{Extent: nm.Extent, W: width, H: height}.WorldToPixel(wp)
			target.Area = navmap.Classify(nm.Image.RGBAt(px.X, px.Y))
		}
		ecs.Add(w, e, target)
	})
}
