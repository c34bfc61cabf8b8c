package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventsAreReadableNextFrame(t *testing.T) {
	b := NewBus()
	var got []AnimationRequested
	Subscribe(b, func(ev AnimationRequested) { got = append(got, ev) })

	Emit(b, AnimationRequested{Entity: 3, Clip: "idle"})
	b.DispatchAll()
	assert.Empty(t, got, "emitted events wait for the swap")

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []AnimationRequested{{Entity: 3, Clip: "idle"}}, got)
	assert.Len(t, Pending[AnimationRequested](b), 1)

	b.SwapBuffers()
	got = nil
	b.DispatchAll()
	assert.Empty(t, got)
	assert.Empty(t, Pending[AnimationRequested](b))
}

func TestDispatchOrderFollowsFirstEmit(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(RouteFinished) { order = append(order, "route") })
	Subscribe(b, func(AnimationRequested) { order = append(order, "anim") })

	Emit(b, AnimationRequested{})
	Emit(b, RouteFinished{})
	Emit(b, AnimationRequested{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"anim", "anim", "route"}, order)
}
