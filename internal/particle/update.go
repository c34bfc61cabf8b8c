package particle

import (
	"math/rand/v2"
	"sort"

	"github.com/overworld/core/internal/vmath"
)

// rule is the per-type behaviour applied to every slot.
type rule struct {
	respawn  bool
	velocity vmath.Vec3 // world units per second
}

// ruleFor is the authoritative switch over emitter types. Types without a
// case only age and sort.
func ruleFor(t Type) rule {
	switch t {
	case Smoke:
		return rule{respawn: true, velocity: vmath.Vec3{Z: -1.0 / 20}}
	default:
		return rule{}
	}
}

// Update advances the emitter by dt seconds with origin as the spawn origin,
// then sorts slots back-to-front. A non-positive dt only sorts.
func (e *Emitter) Update(origin vmath.Vec3, dt float64, rng *rand.Rand) {
	if dt > 0 {
		r := ruleFor(e.Type)
		step := r.velocity.Scale(dt)
		for i := range e.Lifetimes {
			e.Lifetimes[i] -= dt
			if r.respawn && e.Lifetimes[i] <= 0 {
				e.Respawn(i, origin, rng)
			}
			e.Positions[i] = e.Positions[i].Add(step)
		}
	}
	e.Sort()
}

// Sort orders slots by descending z, applying the same permutation to every
// per-slot array. Order among equal z is unspecified.
func (e *Emitter) Sort() {
	sort.Sort(byDepth{e})
}

// Sorted reports whether slots are in descending z order.
func (e *Emitter) Sorted() bool {
	return sort.IsSorted(byDepth{e})
}

type byDepth struct{ e *Emitter }

func (b byDepth) Len() int { return len(b.e.Positions) }

func (b byDepth) Less(i, j int) bool { return b.e.Positions[i].Z > b.e.Positions[j].Z }

func (b byDepth) Swap(i, j int) {
	e := b.e
	e.Positions[i], e.Positions[j] = e.Positions[j], e.Positions[i]
	e.Directions[i], e.Directions[j] = e.Directions[j], e.Directions[i]
	e.Lifetimes[i], e.Lifetimes[j] = e.Lifetimes[j], e.Lifetimes[i]
	e.Sizes[i], e.Sizes[j] = e.Sizes[j], e.Sizes[i]
}
