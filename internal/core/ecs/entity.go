package ecs

// EntityID is a dense entity identity. IDs are handed out sequentially and are
// never recycled within a World, so they double as slice indices.
type EntityID uint32

// NullEntity denotes the absence of an entity.
const NullEntity EntityID = 0

func (id EntityID) IsNull() bool { return id == NullEntity }

type entityState uint8

const (
	stateDead entityState = iota
	stateAlive
	statePendingDestroy // destroy requested while a system was running
)

// EntityPool tracks the lifecycle state of every id ever handed out.
// Slot 0 is reserved for NullEntity.
type EntityPool struct {
	states []entityState
	live   int
}

func NewEntityPool() *EntityPool {
	states := make([]entityState, 1, 1024)
	return &EntityPool{states: states}
}

func (p *EntityPool) Create() EntityID {
	id := EntityID(len(p.states))
	p.states = append(p.states, stateAlive)
	p.live++
	return id
}

// Alive reports whether id has been created and not yet destroyed. Entities
// pending destruction are still alive: their components stay readable until
// the running system completes.
func (p *EntityPool) Alive(id EntityID) bool {
	if id == NullEntity || int(id) >= len(p.states) {
		return false
	}
	s := p.states[id]
	return s == stateAlive || s == statePendingDestroy
}

// Pending reports whether id is queued for deferred destruction.
func (p *EntityPool) Pending(id EntityID) bool {
	if int(id) >= len(p.states) {
		return false
	}
	return p.states[id] == statePendingDestroy
}

// markPending moves an alive entity into the pending state. It returns false
// when the entity is dead or already pending, which coalesces repeat destroys.
func (p *EntityPool) markPending(id EntityID) bool {
	if id == NullEntity || int(id) >= len(p.states) || p.states[id] != stateAlive {
		return false
	}
	p.states[id] = statePendingDestroy
	return true
}

func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return
	}
	p.states[id] = stateDead
	p.live--
}

// Len returns the number of alive entities.
func (p *EntityPool) Len() int { return p.live }

// Last returns the most recently created id, or NullEntity.
func (p *EntityPool) Last() EntityID { return EntityID(len(p.states) - 1) }
