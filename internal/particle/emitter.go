// Package particle simulates fixed-capacity particle emitters whose slots are
// kept in back-to-front order for transparent rendering.
package particle

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/vmath"
)

// Type selects the spawn and motion rule of an emitter.
type Type uint8

const (
	Smoke Type = iota
	SmokeReveal
	BloodDrop
)

var typeNames = [...]string{"smoke", "smoke_reveal", "blood_drop"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", t)
}

func ParseType(s string) (Type, error) {
	s = strings.ToLower(s)
	for i, n := range typeNames {
		if n == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown emitter type %q", s)
}

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min" toml:"min" json:"min"`
	Max float64 `yaml:"max" toml:"max" json:"max"`
}

func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Config describes an emitter at construction.
type Config struct {
	Type     Type
	Capacity int
	Lifetime Range
	X, Y, Z  Range
	Size     Range
	Offset   vmath.Vec3 // added to the spawn origin
	Prefill  bool       // respawn every slot at construction
}

// Emitter is the particle payload: parallel per-slot arrays of a fixed
// capacity. Index i of every array describes the same particle.
type Emitter struct {
	Config

	Positions  []vmath.Vec3
	Directions []vmath.Vec3
	Lifetimes  []float64
	Sizes      []float64

	// Parent is a weak reference to the entity the emitter follows when
	// Attached is set. It is resolved through the World every frame.
	Attached          bool
	Parent            ecs.EntityID
	DestroyWithParent bool
}

// New allocates cfg.Capacity slots. With cfg.Prefill every slot is spawned
// around origin immediately; otherwise lifetimes start at zero and the first
// update spawns them.
func New(cfg Config, origin vmath.Vec3, rng *rand.Rand) *Emitter {
	n := max(cfg.Capacity, 0)
	e := &Emitter{
		Config:     cfg,
		Positions:  make([]vmath.Vec3, n),
		Directions: make([]vmath.Vec3, n),
		Lifetimes:  make([]float64, n),
		Sizes:      make([]float64, n),
	}
	if cfg.Prefill {
		for i := range n {
			e.Respawn(i, origin, rng)
		}
	}
	return e
}

// AttachTo makes the emitter follow parent.
func (e *Emitter) AttachTo(parent ecs.EntityID) {
	e.Attached = true
	e.Parent = parent
}

// Detach stops following the parent; the spawn origin stays where it was.
func (e *Emitter) Detach() {
	e.Attached = false
	e.Parent = ecs.NullEntity
}

func (e *Emitter) Len() int { return len(e.Lifetimes) }

// Respawn resamples slot i around origin.
func (e *Emitter) Respawn(i int, origin vmath.Vec3, rng *rand.Rand) {
	e.Lifetimes[i] = e.Lifetime.Sample(rng)
	e.Sizes[i] = e.Size.Sample(rng)
	e.Positions[i] = origin.Add(e.Offset).Add(vmath.Vec3{
		X: e.X.Sample(rng),
		Y: e.Y.Sample(rng),
		Z: e.Z.Sample(rng),
	})
	e.Directions[i] = vmath.Vec3{}
}

// Dispose releases the slot arrays.
func (e *Emitter) Dispose() {
	e.Positions = nil
	e.Directions = nil
	e.Lifetimes = nil
	e.Sizes = nil
}
