package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/multierr"

	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/engine/trajectory"
	"github.com/Faultbox/scenecore/internal/logger"
)

// SupportedVersions is the range of schema versions this build reads.
const SupportedVersions = "^1.0.0"

var ErrInvalid = errors.New("invalid config")

// Validate reports every problem in the config at once. An empty version is
// taken as the current one.
func (c *Config) Validate() error {
	var errs error
	add := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	if c.Version != "" {
		if err := checkVersion(c.Version); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if !logger.ValidLevel(c.Logging.Level) {
		add("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", logger.FormatConsole, logger.FormatJSON:
	default:
		add("logging.format: unknown format %q", c.Logging.Format)
	}

	if !(c.Viewer.TargetSize > 0) {
		add("viewer.target_size: %v must be positive", c.Viewer.TargetSize)
	}

	m := c.Motion
	if m.Trajectory > trajectory.KindLemniscate {
		add("motion.trajectory: unknown kind %d", m.Trajectory)
	}
	if m.Radius < 0 {
		add("motion.radius: %v < 0", m.Radius)
	}
	if m.Speed < 0 {
		add("motion.speed: %v < 0", m.Speed)
	}
	if m.RotationSpeed < 0 {
		add("motion.rotation_speed: %v < 0", m.RotationSpeed)
	}
	if m.BaseScale < 0 {
		add("motion.base_scale: %v < 0", m.BaseScale)
	}
	if m.PulseAmplitude < 0 {
		add("motion.pulse_amplitude: %v < 0", m.PulseAmplitude)
	}
	if m.EnablePulse && !(m.PulseFrequency > 0) {
		add("motion.pulse_frequency: %v must be positive", m.PulseFrequency)
	}

	seen := make(map[string]bool, len(c.Hierarchy.Nodes))
	for i, n := range c.Hierarchy.Nodes {
		where := fmt.Sprintf("hierarchy.nodes[%d]", i)
		if n.Name == "" {
			add("%s: empty name", where)
		} else {
			where = fmt.Sprintf("hierarchy.nodes[%d] (%s)", i, n.Name)
		}
		if n.Name != "" && seen[n.Name] {
			add("%s: duplicate name", where)
		}
		if n.Parent != "" && !seen[n.Parent] {
			add("%s: parent %q is not an earlier node", where, n.Parent)
		}
		seen[n.Name] = true

		if _, err := scene.ParseRole(n.Role); err != nil {
			add("%s: %v", where, err)
		}
		if n.Scale < 0 {
			add("%s: scale %v < 0", where, n.Scale)
		}
		if _, ok := AxisIndex(n.SpinAxis); !ok {
			add("%s: spin_axis %q is not x, y or z", where, n.SpinAxis)
		}
		if n.SpinRate < 0 {
			add("%s: spin_rate %v < 0", where, n.SpinRate)
		}
	}

	s := c.Simulation
	if !(s.TickRate > 0) {
		add("simulation.tick_rate: %v must be positive", s.TickRate)
	}
	if s.Duration < 0 {
		add("simulation.duration: %v < 0", s.Duration)
	}
	if s.ReportInterval < 0 {
		add("simulation.report_interval: %v < 0", s.ReportInterval)
	}
	if s.QueueSize < 0 {
		add("simulation.queue_size: %d < 0", s.QueueSize)
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, errs)
	}
	return nil
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("version: %q: %w", v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("version: %s is not in supported range %s", version, SupportedVersions)
	}
	return nil
}

// AxisIndex maps "x", "y" or "z" to 0, 1 or 2. An empty axis is valid and
// maps to Y.
func AxisIndex(axis string) (int, bool) {
	switch strings.ToLower(axis) {
	case "x":
		return 0, true
	case "", "y":
		return 1, true
	case "z":
		return 2, true
	default:
		return 0, false
	}
}
