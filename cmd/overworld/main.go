package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/config"
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/core/event"
	coresys "github.com/overworld/core/internal/core/system"
	"github.com/overworld/core/internal/data"
	"github.com/overworld/core/internal/navmap"
	"github.com/overworld/core/internal/particle"
	"github.com/overworld/core/internal/resource"
	"github.com/overworld/core/internal/scripting"
	"github.com/overworld/core/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            overworld core  v0.1.0         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/overworld.toml"
	if p := os.Getenv("OVERWORLD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Resources
	printSection("resources")
	store := resource.NewStore(os.DirFS(cfg.Resources.Root), log)
	defer store.Close()

	world := ecs.NewWorld(ecs.WithSeed(cfg.World.Seed))
	defer world.Teardown()

	if cfg.Navmap.Image != "" {
		if err := installNavmap(world, store, cfg.Navmap); err != nil {
			return fmt.Errorf("navmap: %w", err)
		}
		printOK(fmt.Sprintf("navmap %s", cfg.Navmap.Image))
	}

	// 4. Scene
	if cfg.Scene.Path != "" {
		n, err := loadScene(world, store, cfg.Scene.Path)
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
		printStat("scene entities", n)
	}
	if _, ok := ecs.TrySingleton[component.Clock](world); !ok {
		ecs.SetSingleton(world, component.Clock{Rate: 0.1})
	}
	fmt.Println()

	// 5. Scripts
	printSection("scripting")
	engine := scripting.NewEngine(world, log)
	defer engine.Close()
	ids, err := store.LoadAll(cfg.Scripting.Boot...)
	if err != nil {
		return fmt.Errorf("boot scripts: %w", err)
	}
	for _, id := range ids {
		if err := engine.RunResource(store, id); err != nil {
			return fmt.Errorf("boot scripts: %w", err)
		}
	}
	printStat("boot scripts", len(ids))
	fmt.Println()

	// 6. Systems
	bus := event.NewBus()
	subscribeLogging(bus, log)
	registerSystems(world, bus, cfg, log)

	runner := coresys.NewRunner(world, log)
	runner.Register(coresys.NewEventHook(bus))
	runner.Register(engine.Hook())

	// 7. Frame loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("ready")
	printStat("entities", world.Len())
	printStat("systems", len(world.Systems()))
	printReady(fmt.Sprintf("frame loop (tick: %s)", cfg.World.TickRate))
	fmt.Println()

	err = runner.Run(ctx, cfg.World.TickRate, cfg.World.MaxFrames)
	log.Info("frame loop stopped",
		zap.Uint64("frames", runner.Frames()),
		zap.Int("entities", world.Len()),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func installNavmap(w *ecs.World, store *resource.Store, cfg config.NavmapConfig) error {
	id, err := store.Load(cfg.Image)
	if err != nil {
		return err
	}
	img, err := store.Image(id)
	if err != nil {
		return err
	}
	ecs.SetSingleton(w, component.NavmapContext{
		Image:  navmap.FromImage(img),
		Extent: navmap.Extent{X: cfg.ExtentX, Y: cfg.ExtentY},
	})
	return nil
}

func loadScene(w *ecs.World, store *resource.Store, path string) (int, error) {
	id, err := store.Load(path)
	if err != nil {
		return 0, err
	}
	scene, err := data.LoadSceneResource(store, id)
	if err != nil {
		return 0, err
	}
	ids, err := data.Spawn(w, scene)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func registerSystems(w *ecs.World, bus *event.Bus, cfg *config.Config, log *zap.Logger) {
	finder := navmap.Finder{Heuristic: navmap.Manhattan}
	if cfg.Navmap.Heuristic == "chebyshev" {
		finder.Heuristic = navmap.Chebyshev
	}
	smoke := particle.Config{
		Type:     particle.Smoke,
		Capacity: cfg.Particles.SmokeCapacity,
		Lifetime: particle.Range{Min: cfg.Particles.SmokeLifetime / 2, Max: cfg.Particles.SmokeLifetime},
		X:        particle.Range{Min: -0.01, Max: 0.01},
		Y:        particle.Range{Min: -0.01, Max: 0.01},
		Z:        particle.Range{Min: 0, Max: 0.02},
		Size:     particle.Range{Min: 0.01, Max: 0.03},
		Prefill:  true,
	}

	w.RegisterSystem(system.NewClockSystem())
	w.RegisterSystem(system.NewNavigationSystem(finder, bus, log))
	w.RegisterSystem(system.NewRouteSystem(bus))
	w.RegisterSystem(system.NewMovementSystem(component.Mover{
		Speed:        cfg.Movement.Speed,
		AngularSpeed: cfg.Movement.AngularSpeed,
	}, cfg.Movement.CloseEpsilon, bus))
	w.RegisterSystem(system.NewShipToggleSystem(smoke, cfg.Particles.SmokeTTL, bus, log))
	w.RegisterSystem(system.NewEmitterSystem(log))
	w.RegisterSystem(system.NewExpirySystem())
}

// subscribeLogging stands in for the animation and UI collaborators a
// headless host does not have.
func subscribeLogging(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.AnimationRequested) {
		log.Debug("animation requested", zap.Uint32("entity", uint32(ev.Entity)), zap.String("clip", ev.Clip))
	})
	event.Subscribe(bus, func(ev event.RouteFinished) {
		log.Info("route finished", zap.Uint32("entity", uint32(ev.Entity)))
	})
	event.Subscribe(bus, func(ev event.PathUnreachable) {
		log.Info("path unreachable",
			zap.Uint32("entity", uint32(ev.Entity)),
			zap.Float64("goal_x", ev.Goal.X),
			zap.Float64("goal_y", ev.Goal.Y),
		)
	})
	event.Subscribe(bus, func(ev event.ShipToggled) {
		log.Info("ship toggled", zap.Uint32("entity", uint32(ev.Entity)), zap.Bool("embarked", ev.Embarked))
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		// Caller and stack traces only help when chasing system bugs at debug.
		zapCfg.DisableCaller = level > zapcore.DebugLevel
		zapCfg.DisableStacktrace = level > zapcore.DebugLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
