package ecs

import (
	"fmt"
	"reflect"
	"sync"
)

// ComponentTypeID is a dense per-process identifier of a component kind.
// IDs are assigned on first use of a type and stay fixed for the whole run.
type ComponentTypeID uint16

var componentTypes = struct {
	mu    sync.Mutex
	ids   sync.Map // reflect.Type -> ComponentTypeID
	names []string
}{}

// TypeOf returns the ComponentTypeID of T, assigning one on first call.
func TypeOf[T any]() ComponentTypeID {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if id, ok := componentTypes.ids.Load(t); ok {
		return id.(ComponentTypeID)
	}
	componentTypes.mu.Lock()
	defer componentTypes.mu.Unlock()
	if id, ok := componentTypes.ids.Load(t); ok {
		return id.(ComponentTypeID)
	}
	id := ComponentTypeID(len(componentTypes.names))
	componentTypes.names = append(componentTypes.names, t.String())
	componentTypes.ids.Store(t, id)
	return id
}

func (id ComponentTypeID) String() string {
	componentTypes.mu.Lock()
	defer componentTypes.mu.Unlock()
	if int(id) < len(componentTypes.names) {
		return componentTypes.names[id]
	}
	return fmt.Sprintf("component#%d", id)
}

// Disposer is implemented by payloads that hold resources which must be
// released when the component is removed or its entity destroyed.
type Disposer interface {
	Dispose()
}

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID) bool
}

// PtrComponentStore is a generic typed map store for ECS components.
// The World owns every payload; callers receive pointers into the store.
type PtrComponentStore[T any] struct {
	data map[EntityID]*T
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data: make(map[EntityID]*T, 256),
	}
}

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

// Remove drops the payload for id, disposing it first. It reports whether a
// payload was present.
func (s *PtrComponentStore[T]) Remove(id EntityID) bool {
	c, ok := s.data[id]
	if !ok {
		return false
	}
	delete(s.data, id)
	if d, ok := any(c).(Disposer); ok {
		d.Dispose()
	}
	return true
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

// Each visits payloads in unspecified order.
func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}
