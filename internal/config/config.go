// Package config handles scene configuration loading and management.
package config

import "github.com/Faultbox/scenecore/internal/engine/trajectory"

// Version is the configuration schema version written by Save.
const Version = "1.0.0"

// Config holds all scene settings.
type Config struct {
	Version    string           `yaml:"version" toml:"version"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	Viewer     ViewerConfig     `yaml:"viewer" toml:"viewer"`
	Motion     MotionConfig     `yaml:"motion" toml:"motion"`
	Hierarchy  HierarchyConfig  `yaml:"hierarchy" toml:"hierarchy"`
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
	Format  string `yaml:"format" toml:"format"`
}

// ViewerConfig holds model normalization settings.
type ViewerConfig struct {
	// Model is an optional mesh dump loaded into the scene.
	Model        string     `yaml:"model" toml:"model"`
	TargetSize   float32    `yaml:"target_size" toml:"target_size"`
	LateralShift [3]float32 `yaml:"lateral_shift,flow" toml:"lateral_shift"`
}

// MotionConfig holds the animated object settings.
type MotionConfig struct {
	Enabled        bool            `yaml:"enabled" toml:"enabled"`
	Trajectory     trajectory.Kind `yaml:"trajectory" toml:"trajectory"`
	Radius         float32         `yaml:"radius" toml:"radius"`
	Speed          float32         `yaml:"speed" toml:"speed"`
	RotateX        bool            `yaml:"rotate_x" toml:"rotate_x"`
	RotateY        bool            `yaml:"rotate_y" toml:"rotate_y"`
	RotateZ        bool            `yaml:"rotate_z" toml:"rotate_z"`
	RotationSpeed  float32         `yaml:"rotation_speed" toml:"rotation_speed"`
	EnablePulse    bool            `yaml:"enable_pulse" toml:"enable_pulse"`
	BaseScale      float32         `yaml:"base_scale" toml:"base_scale"`
	PulseAmplitude float32         `yaml:"pulse_amplitude" toml:"pulse_amplitude"`
	PulseFrequency float32         `yaml:"pulse_frequency" toml:"pulse_frequency"`
}

// HierarchyConfig holds the nested node preset.
type HierarchyConfig struct {
	Enabled bool         `yaml:"enabled" toml:"enabled"`
	Nodes   []NodeConfig `yaml:"nodes" toml:"nodes"`
}

// NodeConfig describes one hierarchy node. Parent names an earlier node.
type NodeConfig struct {
	Name       string     `yaml:"name" toml:"name"`
	Parent     string     `yaml:"parent,omitempty" toml:"parent,omitempty"`
	Role       string     `yaml:"role" toml:"role"`
	Position   [3]float32 `yaml:"position,flow" toml:"position"`
	Rotation   [3]float32 `yaml:"rotation,flow" toml:"rotation"`
	Scale      float32    `yaml:"scale" toml:"scale"`
	AutoRotate bool       `yaml:"auto_rotate" toml:"auto_rotate"`
	// SpinAxis is the auto-rotate axis: "x", "y" or "z".
	SpinAxis string  `yaml:"spin_axis" toml:"spin_axis"`
	SpinRate float32 `yaml:"spin_rate" toml:"spin_rate"` // rad/s
}

// SimulationConfig holds tick scheduling settings. Times are in seconds.
type SimulationConfig struct {
	TickRate float64 `yaml:"tick_rate" toml:"tick_rate"` // Hz
	// Duration stops a real-time run after this long. Zero runs until cancelled.
	Duration       float64 `yaml:"duration" toml:"duration"`
	ReportInterval float64 `yaml:"report_interval" toml:"report_interval"`
	QueueSize      int     `yaml:"queue_size" toml:"queue_size"`
}

// DefaultNodes returns the grandparent, child and grandchild preset.
func DefaultNodes() []NodeConfig {
	return []NodeConfig{
		{
			Name:     "grandparent",
			Role:     "grandparent",
			Scale:    1,
			SpinAxis: "y",
			SpinRate: 0.5,
		},
		{
			Name:     "child",
			Parent:   "grandparent",
			Role:     "child",
			Position: [3]float32{3, 1, 0},
			Scale:    0.7,
			SpinAxis: "z",
			SpinRate: 0.8,
		},
		{
			Name:     "grandchild",
			Parent:   "child",
			Role:     "grandchild",
			Position: [3]float32{2, 0.5, 0},
			Scale:    0.5,
			SpinAxis: "x",
			SpinRate: 1.2,
		},
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: Version,
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
		Viewer: ViewerConfig{
			TargetSize:   10,
			LateralShift: [3]float32{10, 0, 0},
		},
		Motion: MotionConfig{
			Enabled:        true,
			Trajectory:     trajectory.KindCircular,
			Radius:         3,
			Speed:          1,
			RotateX:        true,
			RotateY:        true,
			RotateZ:        false,
			RotationSpeed:  1,
			EnablePulse:    true,
			BaseScale:      1,
			PulseAmplitude: 0.3,
			PulseFrequency: 2,
		},
		Hierarchy: HierarchyConfig{
			Enabled: true,
			Nodes:   DefaultNodes(),
		},
		Simulation: SimulationConfig{
			TickRate:       60,
			Duration:       0,
			ReportInterval: 2,
			QueueSize:      64,
		},
	}
}
