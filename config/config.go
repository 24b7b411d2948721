// Package config provides configuration loading and access for the character viewer.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Model     ModelConfig     `yaml:"model"`
	Gaze      GazeConfig      `yaml:"gaze"`
	Joints    []JointConfig   `yaml:"joints"`
	Gesture   GestureConfig   `yaml:"gesture"`
	HitTarget HitTargetConfig `yaml:"hit_target"`
	Stage     StageConfig     `yaml:"stage"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	MSAA      bool   `yaml:"msaa"`
}

// CameraConfig frames the character.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Fovy     float32    `yaml:"fovy"`
	MinDist  float32    `yaml:"min_dist"` // Closest dolly distance to target
	MaxDist  float32    `yaml:"max_dist"` // Farthest dolly distance to target
}

// ModelConfig locates the character asset and places it in the scene.
type ModelConfig struct {
	Path       string     `yaml:"path"`
	Position   [3]float32 `yaml:"position"`
	Scale      float32    `yaml:"scale"`
	SampleRate float64    `yaml:"sample_rate"` // Frames per second of the baked clips
}

// GazeConfig holds the pointer-to-angle mapping shape.
type GazeConfig struct {
	VerticalSplit float32 `yaml:"vertical_split"` // Fraction of height used as vertical midpoint
	UpFactor      float32 `yaml:"up_factor"`      // Upward tilt = limit * this
	DownDivisor   float32 `yaml:"down_divisor"`   // Downward tilt = limit / this
}

// JointConfig binds a tracked joint to a skeleton bone.
type JointConfig struct {
	Name  string  `yaml:"name"`
	Bone  string  `yaml:"bone"`
	Limit float32 `yaml:"limit"` // Degrees
}

// GestureConfig holds cross-fade timing and status texts.
type GestureConfig struct {
	IdleClip       string  `yaml:"idle_clip"`
	FadeIn         float64 `yaml:"fade_in"`         // Seconds, idle -> gesture
	FadeOut        float64 `yaml:"fade_out"`        // Seconds, gesture -> idle
	ProgressOffset float64 `yaml:"progress_offset"` // Progress bar runs for duration minus this
	ReadyText      string  `yaml:"ready_text"`      // Shown before the first gesture
	MovingText     string  `yaml:"moving_text"`
	MousePrompt    string  `yaml:"mouse_prompt"`
	TouchPrompt    string  `yaml:"touch_prompt"`
}

// HitTargetConfig describes the invisible click volume around the character.
type HitTargetConfig struct {
	Size   [3]float32 `yaml:"size"`
	Offset [3]float32 `yaml:"offset"`
}

// StageConfig holds scene colours.
type StageConfig struct {
	Background [3]uint8 `yaml:"background"`
	Floor      [3]uint8 `yaml:"floor"`
	FloorSize  float32  `yaml:"floor_size"`
}

// HeadlessConfig holds parameters for windowless runs.
type HeadlessConfig struct {
	Clips   []ClipConfig `yaml:"clips"`
	HitRect [4]float32   `yaml:"hit_rect"` // x, y, w, h in screen pixels
	DT      float64      `yaml:"dt"`
}

// ClipConfig declares a clip by name and duration for headless runs.
type ClipConfig struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	GazeEvery int `yaml:"gaze_every"` // Write one gaze sample every N frames (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	JointIndex map[string]int
	DT32       float32 // Headless.DT as float32
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the mapper and controller cannot work with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Gaze.VerticalSplit <= 0 || c.Gaze.VerticalSplit >= 1 {
		return fmt.Errorf("gaze.vertical_split must be in (0, 1), got %v", c.Gaze.VerticalSplit)
	}
	if c.Gaze.DownDivisor == 0 {
		return fmt.Errorf("gaze.down_divisor must be non-zero")
	}
	seen := make(map[string]bool, len(c.Joints))
	for _, j := range c.Joints {
		if seen[j.Name] {
			return fmt.Errorf("joint %q declared more than once", j.Name)
		}
		seen[j.Name] = true
		if j.Limit < 0 || math.IsNaN(float64(j.Limit)) {
			return fmt.Errorf("joint %q: invalid limit %v", j.Name, j.Limit)
		}
	}
	if c.Gesture.FadeIn < 0 || c.Gesture.FadeOut < 0 {
		return fmt.Errorf("gesture fades must be non-negative")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.DT32 = float32(c.Headless.DT)

	if c.Model.SampleRate <= 0 {
		c.Model.SampleRate = 60
	}
	if c.Headless.DT <= 0 {
		c.Headless.DT = 1.0 / 60.0
		c.Derived.DT32 = float32(c.Headless.DT)
	}

	c.Derived.JointIndex = make(map[string]int, len(c.Joints))
	for i, j := range c.Joints {
		c.Derived.JointIndex[j.Name] = i
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
