package ecs

// Registry tracks all component stores of a World, indexed by ComponentTypeID,
// and supports bulk cleanup on entity destroy.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 32),
	}
}

// Store returns the store of T in r, creating and registering it on first use.
func Store[T any](r *Registry) *PtrComponentStore[T] {
	id := TypeOf[T]()
	for int(id) >= len(r.stores) {
		r.stores = append(r.stores, nil)
	}
	if s := r.stores[id]; s != nil {
		return s.(*PtrComponentStore[T])
	}
	s := NewPtrComponentStore[T]()
	r.stores[id] = s
	return s
}

// RemoveAll clears the given entity from every store named in mask.
func (r *Registry) RemoveAll(id EntityID, mask Signature) {
	mask.ForEach(func(t ComponentTypeID) {
		if int(t) < len(r.stores) && r.stores[t] != nil {
			r.stores[t].Remove(id)
		}
	})
}
