package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/scenecore/internal/engine/trajectory"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file as well")
	flagLogFormat  = flag.String("log-format", "", "Log format: console or json")
	flagTickRate   = flag.Float64("tick-rate", 0, "Simulation ticks per second")
	flagDuration   = flag.Float64("duration", -1, "Stop a real-time run after this many seconds (0 = never)")
	flagTargetSize = flag.Float64("target-size", 0, "Largest model dimension after fitting")
	flagTrajectory = flag.String("trajectory", "", "Animated object path: circular, sinusoidal, lemniscate or none")
	flagNoPulse    = flag.Bool("no-pulse", false, "Disable the pulsing scale")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments: the command and its options.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagLogFormat != "" {
		cfg.Logging.Format = *flagLogFormat
	}
	if *flagTickRate > 0 {
		cfg.Simulation.TickRate = *flagTickRate
	}
	if *flagDuration >= 0 {
		cfg.Simulation.Duration = *flagDuration
	}
	if *flagTargetSize > 0 {
		cfg.Viewer.TargetSize = float32(*flagTargetSize)
	}
	if *flagTrajectory != "" {
		k, err := trajectory.ParseKind(*flagTrajectory)
		if err != nil {
			return fmt.Errorf("%w: -trajectory: %w", ErrInvalid, err)
		}
		cfg.Motion.Trajectory = k
	}
	if *flagNoPulse {
		cfg.Motion.EnablePulse = false
	}
	return nil
}
