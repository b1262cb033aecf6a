// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Tree      TreeConfig      `yaml:"tree"`
	Streaks   StreaksConfig   `yaml:"streaks"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	ParticleCount   int     `yaml:"particle_count"`
	BlendAlpha      float64 `yaml:"blend_alpha"`      // Per-frame fraction moved toward target
	RotationGain    float64 `yaml:"rotation_gain"`    // Velocity = (x - 0.5) * gain
	RotationDamping float64 `yaml:"rotation_damping"` // Velocity multiplier per frame
	DisperseRadius  float64 `yaml:"disperse_radius"`  // Solid sphere radius for disperse targets
}

// TreeConfig holds the procedural tree silhouette parameters.
type TreeConfig struct {
	TrunkBand    float64 `yaml:"trunk_band"`    // Index fraction assigned to the trunk
	RootBand     float64 `yaml:"root_band"`     // Additional index fraction assigned to roots
	TrunkHeight  float64 `yaml:"trunk_height"`  // Vertical extent of the trunk
	TrunkOffset  float64 `yaml:"trunk_offset"`  // Downward shift of the trunk base
	TrunkRadius  float64 `yaml:"trunk_radius"`  // Radius at the trunk base
	RootRadius   float64 `yaml:"root_radius"`   // Outer radius of the root annulus
	CanopyRadius float64 `yaml:"canopy_radius"` // Leaf shell radius before ellipsoid scaling
	CanopyLift   float64 `yaml:"canopy_lift"`   // Upward shift of the leaf shell
}

// StreaksConfig holds decorative streak parameters.
type StreaksConfig struct {
	Count       int     `yaml:"count"`
	ExitX       float64 `yaml:"exit_x"`       // Head x below this respawns the streak
	SpawnXMin   float64 `yaml:"spawn_x_min"`  // Respawn x range
	SpawnXMax   float64 `yaml:"spawn_x_max"`
	SpawnSpread float64 `yaml:"spawn_spread"` // Y/Z spawn half-extent
	SpeedMin    float64 `yaml:"speed_min"`
	SpeedMax    float64 `yaml:"speed_max"`
	TrailMin    float64 `yaml:"trail_min"`
	TrailMax    float64 `yaml:"trail_max"`
}

// GestureConfig holds hand recognition parameters.
type GestureConfig struct {
	Device        int     `yaml:"device"`          // Camera device id
	IdleFPS       int     `yaml:"idle_fps"`        // Capture rate with no motion
	ActiveFPS     int     `yaml:"active_fps"`      // Capture rate while motion is present
	IdleTimeoutMs int     `yaml:"idle_timeout_ms"` // Time without motion before dropping to idle
	MotionPercent float64 `yaml:"motion_percent"`  // Changed-pixel percentage that counts as motion
	FistThreshold float64 `yaml:"fist_threshold"`  // Mean fingertip-wrist distance below this is a fist
	OpenThreshold float64 `yaml:"open_threshold"`  // Mean fingertip-wrist distance above this is an open palm
	MinScore      float64 `yaml:"min_score"`       // Minimum detection confidence
	ModelPath     string  `yaml:"model_path"`      // ONNX hand landmark model
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Window length in seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames averaged for perf stats
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TrunkEnd int // First particle index past the trunk band
	RootEnd  int // First particle index past the root band
	DT       float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	n := c.Field.ParticleCount
	c.Derived.TrunkEnd = int(float64(n) * c.Tree.TrunkBand)
	c.Derived.RootEnd = int(float64(n) * (c.Tree.TrunkBand + c.Tree.RootBand))
	if c.Screen.TargetFPS > 0 {
		c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)
	} else {
		c.Derived.DT = 1.0 / 60.0
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
