package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	World     WorldConfig     `toml:"world"`
	Logging   LoggingConfig   `toml:"logging"`
	Resources ResourcesConfig `toml:"resources"`
	Navmap    NavmapConfig    `toml:"navmap"`
	Movement  MovementConfig  `toml:"movement"`
	Particles ParticlesConfig `toml:"particles"`
	Scripting ScriptingConfig `toml:"scripting"`
	Scene     SceneConfig     `toml:"scene"`
}

type WorldConfig struct {
	Seed      uint64        `toml:"seed"`
	TickRate  time.Duration `toml:"tick_rate"`
	MaxFrames int           `toml:"max_frames"` // 0 = run until signalled
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ResourcesConfig struct {
	Root string `toml:"root"`
}

type NavmapConfig struct {
	Image     string  `toml:"image"` // path inside the resource root; empty = no navmap
	ExtentX   float64 `toml:"extent_x"`
	ExtentY   float64 `toml:"extent_y"`
	Heuristic string  `toml:"heuristic"` // "manhattan" or "chebyshev"
}

type MovementConfig struct {
	Speed        float64 `toml:"speed"`         // units per second
	AngularSpeed float64 `toml:"angular_speed"` // radians per second
	CloseEpsilon float64 `toml:"close_epsilon"`
}

type ParticlesConfig struct {
	SmokeCapacity int     `toml:"smoke_capacity"`
	SmokeLifetime float64 `toml:"smoke_lifetime"` // seconds a single smoke particle lives at most
	SmokeTTL      float64 `toml:"smoke_ttl"`      // seconds a ship-toggle smoke emitter lives
}

type ScriptingConfig struct {
	Boot []string `toml:"boot"` // lua scripts run once at startup, in order
}

type SceneConfig struct {
	Path string `toml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var err error
	if c.World.TickRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("world.tick_rate must be positive, got %s", c.World.TickRate))
	}
	if c.World.MaxFrames < 0 {
		err = multierr.Append(err, fmt.Errorf("world.max_frames must not be negative, got %d", c.World.MaxFrames))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	if c.Navmap.Image != "" && (c.Navmap.ExtentX <= 0 || c.Navmap.ExtentY <= 0) {
		err = multierr.Append(err, fmt.Errorf("navmap extent must be positive, got %gx%g", c.Navmap.ExtentX, c.Navmap.ExtentY))
	}
	switch c.Navmap.Heuristic {
	case "manhattan", "chebyshev":
	default:
		err = multierr.Append(err, fmt.Errorf("navmap.heuristic must be manhattan or chebyshev, got %q", c.Navmap.Heuristic))
	}
	if c.Movement.Speed < 0 || c.Movement.AngularSpeed < 0 {
		err = multierr.Append(err, fmt.Errorf("movement speeds must not be negative"))
	}
	if c.Particles.SmokeCapacity < 0 {
		err = multierr.Append(err, fmt.Errorf("particles.smoke_capacity must not be negative, got %d", c.Particles.SmokeCapacity))
	}
	return err
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			Seed:     1,
			TickRate: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Resources: ResourcesConfig{
			Root: "res",
		},
		Navmap: NavmapConfig{
			ExtentX:   1,
			ExtentY:   1,
			Heuristic: "manhattan",
		},
		Movement: MovementConfig{
			Speed:        0.1,
			AngularSpeed: 4,
			CloseEpsilon: 1e-3,
		},
		Particles: ParticlesConfig{
			SmokeCapacity: 32,
			SmokeLifetime: 1.5,
			SmokeTTL:      2,
		},
	}
}
