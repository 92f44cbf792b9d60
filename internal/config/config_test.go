package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/scenecore/internal/engine/trajectory"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != Version {
		t.Errorf("expected version %s, got %s", Version, cfg.Version)
	}

	// Test viewer defaults
	if cfg.Viewer.TargetSize != 10 {
		t.Errorf("expected target size 10, got %f", cfg.Viewer.TargetSize)
	}
	if cfg.Viewer.LateralShift != [3]float32{10, 0, 0} {
		t.Errorf("expected lateral shift (10, 0, 0), got %v", cfg.Viewer.LateralShift)
	}

	// Test motion defaults
	if cfg.Motion.Trajectory != trajectory.KindCircular {
		t.Errorf("expected circular trajectory, got %s", cfg.Motion.Trajectory)
	}
	if cfg.Motion.Radius != 3 {
		t.Errorf("expected radius 3, got %f", cfg.Motion.Radius)
	}
	if !cfg.Motion.RotateX || !cfg.Motion.RotateY || cfg.Motion.RotateZ {
		t.Error("expected rotation on X and Y only")
	}
	if cfg.Motion.PulseAmplitude != 0.3 {
		t.Errorf("expected pulse amplitude 0.3, got %f", cfg.Motion.PulseAmplitude)
	}

	// Test hierarchy defaults
	nodes := cfg.Hierarchy.Nodes
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if nodes[1].Parent != "grandparent" || nodes[2].Parent != "child" {
		t.Errorf("unexpected parents: %q, %q", nodes[1].Parent, nodes[2].Parent)
	}
	if nodes[1].Position != [3]float32{3, 1, 0} {
		t.Errorf("expected child position (3, 1, 0), got %v", nodes[1].Position)
	}
	if nodes[2].Scale != 0.5 {
		t.Errorf("expected grandchild scale 0.5, got %f", nodes[2].Scale)
	}

	// Test simulation defaults
	if cfg.Simulation.TickRate != 60 {
		t.Errorf("expected tick rate 60, got %f", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.ReportInterval != 2 {
		t.Errorf("expected report interval 2, got %f", cfg.Simulation.ReportInterval)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
version: "1.2.0"

viewer:
  model: "models/teapot.yaml"
  target_size: 8
  lateral_shift: [-3, 0, 0]

motion:
  trajectory: lemniscate
  radius: 4.5
  enable_pulse: false

hierarchy:
  nodes:
    - name: root
      role: grandparent
      scale: 2
    - name: leaf
      parent: root
      role: grandchild
      position: [1, 2, 3]
      auto_rotate: true
      spin_axis: z
      spin_rate: 0.25

simulation:
  tick_rate: 30
  duration: 5.5

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Viewer.Model != "models/teapot.yaml" {
		t.Errorf("expected model path, got %q", cfg.Viewer.Model)
	}
	if cfg.Viewer.TargetSize != 8 {
		t.Errorf("expected target size 8, got %f", cfg.Viewer.TargetSize)
	}
	if cfg.Viewer.LateralShift != [3]float32{-3, 0, 0} {
		t.Errorf("expected lateral shift (-3, 0, 0), got %v", cfg.Viewer.LateralShift)
	}

	if cfg.Motion.Trajectory != trajectory.KindLemniscate {
		t.Errorf("expected lemniscate, got %s", cfg.Motion.Trajectory)
	}
	if cfg.Motion.Radius != 4.5 {
		t.Errorf("expected radius 4.5, got %f", cfg.Motion.Radius)
	}
	if cfg.Motion.EnablePulse {
		t.Error("expected pulse to be disabled")
	}
	// Untouched keys keep their defaults
	if cfg.Motion.Speed != 1 {
		t.Errorf("expected default speed 1, got %f", cfg.Motion.Speed)
	}

	if len(cfg.Hierarchy.Nodes) != 2 {
		t.Fatalf("expected file nodes to replace defaults, got %d nodes", len(cfg.Hierarchy.Nodes))
	}
	leaf := cfg.Hierarchy.Nodes[1]
	if leaf.Parent != "root" || leaf.Position != [3]float32{1, 2, 3} || !leaf.AutoRotate || leaf.SpinAxis != "z" {
		t.Errorf("unexpected leaf node: %+v", leaf)
	}

	if cfg.Simulation.TickRate != 30 {
		t.Errorf("expected tick rate 30, got %f", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.Duration != 5.5 {
		t.Errorf("expected duration 5.5, got %f", cfg.Simulation.Duration)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scene.log" {
		t.Errorf("expected log file 'scene.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config is invalid: %v", err)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
version = "1.0.0"

[motion]
trajectory = "sinusoidal"
radius = 2.0
rotate_z = true

[simulation]
tick_rate = 120.0
report_interval = 0.5

[logging]
level = "warn"
format = "json"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Motion.Trajectory != trajectory.KindSinusoidal {
		t.Errorf("expected sinusoidal, got %s", cfg.Motion.Trajectory)
	}
	if cfg.Motion.Radius != 2 {
		t.Errorf("expected radius 2, got %f", cfg.Motion.Radius)
	}
	if !cfg.Motion.RotateZ {
		t.Error("expected rotate_z to be true")
	}
	if cfg.Simulation.TickRate != 120 {
		t.Errorf("expected tick rate 120, got %f", cfg.Simulation.TickRate)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json format, got %s", cfg.Logging.Format)
	}
	// Defaults survive when the file has no nodes
	if len(cfg.Hierarchy.Nodes) != 3 {
		t.Errorf("expected 3 default nodes, got %d", len(cfg.Hierarchy.Nodes))
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "bad yaml",
			file: "invalid.yaml",
			content: `
viewer:
  target_size: not a number
  invalid syntax here
`,
		},
		{
			name:    "unknown yaml key",
			file:    "unknown.yaml",
			content: "viewer:\n  zoom: 3\n",
		},
		{
			name:    "unknown trajectory",
			file:    "kind.yaml",
			content: "motion:\n  trajectory: spiral\n",
		},
		{
			name:    "unknown toml key",
			file:    "unknown.toml",
			content: "[viewer]\nzoom = 3.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should keep defaults: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("empty file changed the config")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// A TOML file in the current directory is found
	if err := os.WriteFile("config.toml", []byte("[viewer]\ntarget_size = 5.0\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path = findConfigFile(); path != "./config.toml" {
		t.Errorf("expected ./config.toml, got %q", path)
	}

	// YAML takes precedence
	if err := os.WriteFile("config.yaml", []byte("viewer:\n  target_size: 5\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path = findConfigFile(); path != "./config.yaml" {
		t.Errorf("expected ./config.yaml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "log flags",
			setup: func() {
				*flagLogFile = "run.log"
				*flagLogFormat = "json"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "run.log" || cfg.Logging.Format != "json" {
					t.Errorf("unexpected logging config: %+v", cfg.Logging)
				}
			},
			teardown: func() {
				*flagLogFile = ""
				*flagLogFormat = ""
			},
		},
		{
			name: "simulation flags",
			setup: func() {
				*flagTickRate = 240
				*flagDuration = 0
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Simulation.TickRate != 240 {
					t.Errorf("expected tick rate 240, got %f", cfg.Simulation.TickRate)
				}
				if cfg.Simulation.Duration != 0 {
					t.Errorf("expected duration 0, got %f", cfg.Simulation.Duration)
				}
			},
			teardown: func() {
				*flagTickRate = 0
				*flagDuration = -1
			},
		},
		{
			name: "motion flags",
			setup: func() {
				*flagTrajectory = "Lemniscate"
				*flagNoPulse = true
				*flagTargetSize = 4
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Motion.Trajectory != trajectory.KindLemniscate {
					t.Errorf("expected lemniscate, got %s", cfg.Motion.Trajectory)
				}
				if cfg.Motion.EnablePulse {
					t.Error("expected pulse to be disabled")
				}
				if cfg.Viewer.TargetSize != 4 {
					t.Errorf("expected target size 4, got %f", cfg.Viewer.TargetSize)
				}
			},
			teardown: func() {
				*flagTrajectory = ""
				*flagNoPulse = false
				*flagTargetSize = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags: %v", err)
			}

			// Verify
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsUnknownTrajectory(t *testing.T) {
	*flagTrajectory = "spiral"
	defer func() { *flagTrajectory = "" }()

	err := applyFlags(Default())
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
simulation:
  tick_rate: 30
  report_interval: 1
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagTickRate = 90
	defer func() {
		*flagConfig = ""
		*flagTickRate = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Tick rate should be from flag (90), not file (30)
	if cfg.Simulation.TickRate != 90 {
		t.Errorf("expected tick rate 90 from flag, got %f", cfg.Simulation.TickRate)
	}

	// Report interval should be from file (1) since no flag override
	if cfg.Simulation.ReportInterval != 1 {
		t.Errorf("expected report interval 1 from file, got %f", cfg.Simulation.ReportInterval)
	}
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "motion:\n  radius: -1\nsimulation:\n  tick_rate: 0\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFrom(configPath)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   []string
	}{
		{
			name:   "valid default",
			modify: func(*Config) {},
		},
		{
			name:   "empty version",
			modify: func(c *Config) { c.Version = "" },
		},
		{
			name:   "newer minor version",
			modify: func(c *Config) { c.Version = "1.4.2" },
		},
		{
			name:   "unsupported major version",
			modify: func(c *Config) { c.Version = "2.0.0" },
			want:   []string{"version"},
		},
		{
			name:   "malformed version",
			modify: func(c *Config) { c.Version = "one" },
			want:   []string{"version"},
		},
		{
			name: "logging",
			modify: func(c *Config) {
				c.Logging.Level = "loud"
				c.Logging.Format = "xml"
			},
			want: []string{"logging.level", "logging.format"},
		},
		{
			name: "motion",
			modify: func(c *Config) {
				c.Motion.Radius = -1
				c.Motion.Speed = -1
				c.Motion.PulseFrequency = 0
			},
			want: []string{"motion.radius", "motion.speed", "motion.pulse_frequency"},
		},
		{
			name: "pulse frequency ignored when disabled",
			modify: func(c *Config) {
				c.Motion.EnablePulse = false
				c.Motion.PulseFrequency = 0
			},
		},
		{
			name: "hierarchy",
			modify: func(c *Config) {
				c.Hierarchy.Nodes = []NodeConfig{
					{Name: "a", Role: "grandparent"},
					{Name: "a", Role: "wizard"},
					{Name: "b", Parent: "c", SpinAxis: "w"},
					{Name: "", Scale: -1},
				}
			},
			want: []string{"duplicate name", "unknown role", "parent \"c\"", "spin_axis", "empty name", "scale -1"},
		},
		{
			name: "simulation",
			modify: func(c *Config) {
				c.Simulation.TickRate = 0
				c.Simulation.Duration = -1
			},
			want: []string{"simulation.tick_rate", "simulation.duration"},
		},
		{
			name:   "viewer",
			modify: func(c *Config) { c.Viewer.TargetSize = 0 },
			want:   []string{"viewer.target_size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			var combined interface{ Unwrap() []error }
			if !errors.As(err, &combined) {
				t.Fatalf("expected a wrapped error list, got %T", err)
			}
			if got := len(multierr.Errors(combined.Unwrap()[1])); got < len(tt.want) {
				t.Errorf("expected at least %d problems, got %d: %v", len(tt.want), got, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("expected %q in %v", w, err)
				}
			}
		})
	}
}

func TestAxisIndex(t *testing.T) {
	tests := []struct {
		axis string
		want int
		ok   bool
	}{
		{"x", 0, true},
		{"Y", 1, true},
		{"", 1, true},
		{"z", 2, true},
		{"w", 0, false},
	}

	for _, tt := range tests {
		got, ok := AxisIndex(tt.axis)
		if got != tt.want || ok != tt.ok {
			t.Errorf("AxisIndex(%q) = %d, %v; want %d, %v", tt.axis, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Viewer.LateralShift = [3]float32{-3, 0, 0}
			cfg.Motion.Trajectory = trajectory.KindSinusoidal
			cfg.Hierarchy.Nodes[1].AutoRotate = true
			cfg.Hierarchy.Nodes = cfg.Hierarchy.Nodes[:2]

			path := filepath.Join(t.TempDir(), "nested", name)
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded := Default()
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(cfg, loaded) {
				t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", cfg, loaded)
			}
		})
	}
}
