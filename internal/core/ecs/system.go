package ecs

// System is a processor over every entity whose components are a superset of
// its Signature. Update receives a creation-ordered snapshot of those
// entities taken before the system runs. The snapshot is not filtered as the
// pass goes on: an entity destroyed earlier in the same pass stays in it, so
// Update must iterate with World.Live or Each1/Each2/Each3, which skip it.
// A plain range over entities is only correct for systems that destroy
// nothing and call nothing that does.
type System interface {
	Signature() Signature
	Update(w *World, entities []EntityID, dt float64)
}

type funcSystem struct {
	sig Signature
	fn  func(w *World, entities []EntityID, dt float64)
}

// NewSystem adapts a plain function into a System.
func NewSystem(sig Signature, fn func(w *World, entities []EntityID, dt float64)) System {
	return &funcSystem{sig: sig, fn: fn}
}

func (s *funcSystem) Signature() Signature { return s.sig }

func (s *funcSystem) Update(w *World, entities []EntityID, dt float64) {
	s.fn(w, entities, dt)
}
