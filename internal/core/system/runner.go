package system

import (
	"context"
	"sort"
	"time"

	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/core/event"
	"go.uber.org/zap"
)

// Runner drives a World frame by frame: input hooks, World.Update, then the
// remaining hooks in phase order.
type Runner struct {
	world  *ecs.World
	log    *zap.Logger
	hooks  []Hook
	sorted bool
	frames uint64
}

func NewRunner(world *ecs.World, log *zap.Logger) *Runner {
	return &Runner{
		world: world,
		log:   log,
		hooks: make([]Hook, 0, 8),
	}
}

func (r *Runner) World() *ecs.World { return r.world }

// Frames returns the number of frames ticked so far.
func (r *Runner) Frames() uint64 { return r.frames }

func (r *Runner) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	r.sorted = false
}

// Tick runs one frame of simulated duration dt.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	start := time.Now()
	updated := false
	for _, h := range r.hooks {
		if h.Phase() >= PhaseUpdate && !updated {
			r.world.Update(dt.Seconds())
			updated = true
		}
		h.Tick(dt)
	}
	if !updated {
		r.world.Update(dt.Seconds())
	}
	r.frames++
	if elapsed := time.Since(start); elapsed > dt && dt > 0 {
		r.log.Warn("frame overran tick",
			zap.Uint64("frame", r.frames),
			zap.Duration("elapsed", elapsed),
			zap.Duration("tick", dt),
		)
	}
}

// Run ticks at a fixed rate until ctx is done or maxFrames frames have run.
// maxFrames <= 0 means unbounded.
func (r *Runner) Run(ctx context.Context, tick time.Duration, maxFrames int) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Tick(tick)
			if maxFrames > 0 && r.frames >= uint64(maxFrames) {
				return nil
			}
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.hooks, func(i, j int) bool {
			return r.hooks[i].Phase() < r.hooks[j].Phase()
		})
		r.sorted = true
	}
}

// NewEventHook swaps the bus buffers at frame start and delivers last
// frame's events to their subscribers.
func NewEventHook(bus *event.Bus) Hook {
	return HookFunc{At: PhaseInput, Fn: func(time.Duration) {
		bus.SwapBuffers()
		bus.DispatchAll()
	}}
}
