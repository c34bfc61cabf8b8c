package ecs

import (
	"fmt"
	"iter"
	"math/rand/v2"
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the name index, singleton components, the ordered system list and
// a deferred destruction queue drained after each system completes.
//
// A World is not safe for concurrent use.
type World struct {
	pool         *EntityPool
	registry     *Registry
	masks        []Signature // indexed by EntityID
	names        []Name      // indexed by EntityID
	byName       map[Name][]EntityID
	singletons   map[ComponentTypeID]any
	systems      []System
	destroyQueue []EntityID
	updating     bool
	frame        uint64
	rng          *rand.Rand
}

// Option configures a World at construction.
type Option func(*World)

// WithSeed seeds the World's random source.
func WithSeed(seed uint64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func NewWorld(opts ...Option) *World {
	w := &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		masks:        make([]Signature, 1, 1024),
		names:        make([]Name, 1, 1024),
		byName:       make(map[Name][]EntityID),
		singletons:   make(map[ComponentTypeID]any),
		destroyQueue: make([]EntityID, 0, 64),
	}
	WithSeed(1)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// Rand is the World's seeded random source. Systems sample from it instead of
// process-global randomness.
func (w *World) Rand() *rand.Rand { return w.rng }

// Frame returns the number of completed or in-progress Update calls.
func (w *World) Frame() uint64 { return w.frame }

// Len returns the number of alive entities.
func (w *World) Len() int { return w.pool.Len() }

func (w *World) CreateEntity() EntityID {
	id := w.pool.Create()
	w.masks = append(w.masks, nil)
	w.names = append(w.names, Name{})
	return id
}

// CreateNamedEntity creates an entity and registers it in the name index.
func (w *World) CreateNamedEntity(name Name) EntityID {
	id := w.CreateEntity()
	if !name.IsZero() {
		w.names[id] = name
		w.byName[name] = append(w.byName[name], id)
	}
	return id
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Pending reports whether id is queued for destruction at the end of the
// running system.
func (w *World) Pending(id EntityID) bool {
	return w.pool.Pending(id)
}

// Name returns the entity's name, or the zero Name.
func (w *World) Name(id EntityID) Name {
	if !w.pool.Alive(id) {
		return Name{}
	}
	return w.names[id]
}

// FindEntityWithName returns the earliest-created alive entity carrying name,
// or NullEntity.
func (w *World) FindEntityWithName(name Name) EntityID {
	for _, id := range w.byName[name] {
		if !w.pool.Pending(id) {
			return id
		}
	}
	return NullEntity
}

// Signature returns the component set of id. The result must not be modified.
func (w *World) Signature(id EntityID) Signature {
	if !w.pool.Alive(id) {
		return nil
	}
	return w.masks[id]
}

// DestroyEntity drops every component of id and unregisters its name. Called
// while a system is running, the destruction is deferred until that system
// completes. Destroying an absent entity, or one already pending, is a no-op.
func (w *World) DestroyEntity(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	if w.updating {
		if w.pool.markPending(id) {
			w.destroyQueue = append(w.destroyQueue, id)
		}
		return
	}
	w.destroyNow(id)
}

func (w *World) destroyNow(id EntityID) {
	mask := w.masks[id]
	w.masks[id] = nil
	w.registry.RemoveAll(id, mask)
	if name := w.names[id]; !name.IsZero() {
		w.unregisterName(name, id)
		w.names[id] = Name{}
	}
	w.pool.Destroy(id)
}

func (w *World) unregisterName(name Name, id EntityID) {
	ids := w.byName[name]
	for i, v := range ids {
		if v == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(w.byName, name)
		return
	}
	w.byName[name] = ids
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Update calls it after every system.
func (w *World) FlushDestroyQueue() {
	for i := 0; i < len(w.destroyQueue); i++ {
		w.destroyNow(w.destroyQueue[i])
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// RegisterSystem appends s to the update order.
func (w *World) RegisterSystem(s System) {
	w.systems = append(w.systems, s)
}

// Systems returns the registered systems in update order.
func (w *World) Systems() []System { return w.systems }

// Match returns, in creation order, the alive entities whose component set is
// a superset of sig.
func (w *World) Match(sig Signature) []EntityID {
	out := make([]EntityID, 0, 64)
	last := w.pool.Last()
	for id := EntityID(1); id <= last; id++ {
		if w.pool.Alive(id) && !w.pool.Pending(id) && w.masks[id].Contains(sig) {
			out = append(out, id)
		}
	}
	return out
}

// Live yields the entities of a snapshot that are not pending destruction,
// checked lazily as iteration proceeds.
func (w *World) Live(entities []EntityID) iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for _, id := range entities {
			if !w.pool.Alive(id) || w.pool.Pending(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Update runs every registered system once, in registration order. Each
// system receives a snapshot of its matching entities taken just before it
// runs; destroys it requests are applied when it returns.
func (w *World) Update(dt float64) {
	w.frame++
	for _, s := range w.systems {
		w.runSystem(s, dt)
	}
}

func (w *World) runSystem(s System, dt float64) {
	entities := w.Match(s.Signature())
	w.updating = true
	defer func() {
		w.updating = false
		w.FlushDestroyQueue()
	}()
	s.Update(w, entities, dt)
}

// Teardown destroys every entity and singleton and forgets all systems.
func (w *World) Teardown() {
	w.updating = false
	last := w.pool.Last()
	for id := EntityID(1); id <= last; id++ {
		if w.pool.Alive(id) {
			w.destroyNow(id)
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	for t, v := range w.singletons {
		delete(w.singletons, t)
		if d, ok := v.(Disposer); ok {
			d.Dispose()
		}
	}
	w.systems = nil
}

func (w *World) mustAlive(id EntityID, op string, t ComponentTypeID) {
	if !w.pool.Alive(id) {
		panic(fmt.Sprintf("ecs: %s %s on dead entity %d", op, t, id))
	}
}

// Add attaches c to e and returns a pointer to the stored payload. Adding a
// component kind e already carries is a programming error and panics.
func Add[T any](w *World, e EntityID, c T) *T {
	t := TypeOf[T]()
	w.mustAlive(e, "add", t)
	if w.masks[e].Has(t) {
		panic(fmt.Sprintf("ecs: entity %d already has %s", e, t))
	}
	p := &c
	Store[T](w.registry).Set(e, p)
	w.masks[e] = w.masks[e].Set(t)
	return p
}

// Remove destroys e's payload of kind T. Removing an absent component panics.
func Remove[T any](w *World, e EntityID) {
	t := TypeOf[T]()
	w.mustAlive(e, "remove", t)
	if !w.masks[e].Has(t) {
		panic(fmt.Sprintf("ecs: remove %s: entity %d has no such component", t, e))
	}
	w.masks[e] = w.masks[e].Clear(t)
	Store[T](w.registry).Remove(e)
}

// Get returns e's payload of kind T. Getting an absent component panics.
func Get[T any](w *World, e EntityID) *T {
	c, ok := TryGet[T](w, e)
	if !ok {
		panic(fmt.Sprintf("ecs: get %s: entity %d has no such component", TypeOf[T](), e))
	}
	return c
}

// TryGet returns e's payload of kind T if present.
func TryGet[T any](w *World, e EntityID) (*T, bool) {
	if !w.pool.Alive(e) || !w.masks[e].Has(TypeOf[T]()) {
		return nil, false
	}
	return Store[T](w.registry).Get(e)
}

func Has[T any](w *World, e EntityID) bool {
	return w.pool.Alive(e) && w.masks[e].Has(TypeOf[T]())
}

// SetSingleton installs c as the World's singleton of kind T, replacing and
// disposing any previous one.
func SetSingleton[T any](w *World, c T) *T {
	t := TypeOf[T]()
	if old, ok := w.singletons[t]; ok {
		if d, ok := old.(Disposer); ok {
			d.Dispose()
		}
	}
	p := &c
	w.singletons[t] = p
	return p
}

// Singleton returns the singleton of kind T. It panics when none is installed.
func Singleton[T any](w *World) *T {
	c, ok := TrySingleton[T](w)
	if !ok {
		panic(fmt.Sprintf("ecs: no singleton %s installed", TypeOf[T]()))
	}
	return c
}

func TrySingleton[T any](w *World) (*T, bool) {
	v, ok := w.singletons[TypeOf[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// RemoveSingleton drops the singleton of kind T, if any.
func RemoveSingleton[T any](w *World) {
	t := TypeOf[T]()
	v, ok := w.singletons[t]
	if !ok {
		return
	}
	delete(w.singletons, t)
	if d, ok := v.(Disposer); ok {
		d.Dispose()
	}
}
