package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	return LoadFrom(FilePath())
}

// FilePath returns the config file Load reads: the -config flag if set,
// else the first standard location that exists, else "".
func FilePath() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	return findConfigFile()
}

// LoadFrom loads configuration from path, which may be empty, applies CLI
// flags and validates the result.
func LoadFrom(path string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	// Apply CLI flags (highest priority)
	if err := applyFlags(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.toml",
		filepath.Join(ConfigDir(), "config.yaml"),
		filepath.Join(ConfigDir(), "config.toml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "SceneCore")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "SceneCore")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "scenecore")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "scenecore")
	}
}

// isTOML reports whether path names a TOML file.
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// loadFromFile loads config from a YAML or TOML file, merging with existing
// values. Unknown keys are rejected.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if isTOML(path) {
		// Array tables append to an existing slice, so nodes given in
		// the file must replace the defaults rather than extend them.
		var probe struct {
			Hierarchy struct {
				Nodes []NodeConfig `toml:"nodes"`
			} `toml:"hierarchy"`
		}
		if err := toml.Unmarshal(data, &probe); err != nil {
			return err
		}
		if len(probe.Hierarchy.Nodes) > 0 {
			cfg.Hierarchy.Nodes = nil
		}

		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty file keeps the defaults
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
