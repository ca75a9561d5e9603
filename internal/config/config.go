package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the binaries look for configuration, relative to the working directory.
const DefaultPath = "configs/collide.yaml"

// Physics holds the collision response constants.
type Physics struct {
	Epsilon            float32 `yaml:"epsilon"`
	StaticRestitution  float32 `yaml:"static_restitution"`
	DynamicRestitution float32 `yaml:"dynamic_restitution"`
	StaticOvershoot    float32 `yaml:"static_overshoot"`
}

// Bounds is the arena rectangle. A zero rectangle disables clamping.
type Bounds struct {
	Min rl.Vector2 `yaml:"min"`
	Max rl.Vector2 `yaml:"max"`
}

func (b Bounds) Enabled() bool {
	return b.Max.X > b.Min.X && b.Max.Y > b.Min.Y
}

type Sim struct {
	MaxDelta     float32 `yaml:"max_delta"`
	TickRate     int     `yaml:"tick_rate"`
	Bounds       Bounds  `yaml:"bounds"`
	BoundsMargin float32 `yaml:"bounds_margin"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"` // empty = stderr
}

type Window struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
}

// Config is built once by the driver and passed down by pointer.
type Config struct {
	Physics Physics `yaml:"physics"`
	Sim     Sim     `yaml:"sim"`
	Log     Log     `yaml:"log"`
	Window  Window  `yaml:"window"`
}

func Default() *Config {
	return &Config{
		Physics: Physics{
			Epsilon:            1e-4,
			StaticRestitution:  1.0,
			DynamicRestitution: 1.0,
			StaticOvershoot:    1.2,
		},
		Sim: Sim{
			MaxDelta: 0.05,
			TickRate: 60,
			Bounds: Bounds{
				Min: rl.Vector2{X: 0, Y: 0},
				Max: rl.Vector2{X: 1280, Y: 720},
			},
			BoundsMargin: 20,
		},
		Log: Log{
			Level: "info",
		},
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "collide2d",
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep their default
// value, and a missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var err error
	if !finite(c.Physics.Epsilon) || c.Physics.Epsilon <= 0 {
		err = multierr.Append(err, fmt.Errorf("physics.epsilon must be > 0, got %v", c.Physics.Epsilon))
	}
	if !finite(c.Physics.StaticRestitution) || c.Physics.StaticRestitution < 0 {
		err = multierr.Append(err, fmt.Errorf("physics.static_restitution must be >= 0, got %v", c.Physics.StaticRestitution))
	}
	if !finite(c.Physics.DynamicRestitution) || c.Physics.DynamicRestitution < 0 || c.Physics.DynamicRestitution > 1 {
		err = multierr.Append(err, fmt.Errorf("physics.dynamic_restitution must be in [0,1], got %v", c.Physics.DynamicRestitution))
	}
	if !finite(c.Physics.StaticOvershoot) || c.Physics.StaticOvershoot < 1 {
		err = multierr.Append(err, fmt.Errorf("physics.static_overshoot must be >= 1, got %v", c.Physics.StaticOvershoot))
	}
	if !finite(c.Sim.MaxDelta) || c.Sim.MaxDelta <= 0 {
		err = multierr.Append(err, fmt.Errorf("sim.max_delta must be > 0, got %v", c.Sim.MaxDelta))
	}
	if c.Sim.TickRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("sim.tick_rate must be > 0, got %d", c.Sim.TickRate))
	}
	if c.Sim.BoundsMargin < 0 {
		err = multierr.Append(err, fmt.Errorf("sim.bounds_margin must be >= 0, got %v", c.Sim.BoundsMargin))
	}
	if b := c.Sim.Bounds; b.Enabled() {
		if b.Max.X-b.Min.X <= 2*c.Sim.BoundsMargin || b.Max.Y-b.Min.Y <= 2*c.Sim.BoundsMargin {
			err = multierr.Append(err, fmt.Errorf("sim.bounds too small for margin %v", c.Sim.BoundsMargin))
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return err
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
