package system

import "time"

// Phase defines where a Hook runs relative to the World update of a frame.
type Phase int

const (
	PhaseInput  Phase = iota // 0: event buffer swap + dispatch, script callbacks
	PhaseUpdate              // 1: World.Update (all registered ECS systems)
	PhaseOutput              // 2: present results to external collaborators
)

// Hook is per-frame work that lives outside the ECS World, such as event
// dispatch or a script host tick. Hooks in PhaseUpdate run right after the
// World's systems.
type Hook interface {
	Phase() Phase
	Tick(dt time.Duration)
}

// HookFunc adapts a function into a Hook.
type HookFunc struct {
	At Phase
	Fn func(dt time.Duration)
}

func (h HookFunc) Phase() Phase          { return h.At }
func (h HookFunc) Tick(dt time.Duration) { h.Fn(dt) }
