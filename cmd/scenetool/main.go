// scenetool inspects models and drives hierarchical transform scenes from
// the command line.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/config"
	"github.com/Faultbox/scenecore/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Setup(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    fileConfig(cfg.Logging.LogFile),
		Console: os.Stderr,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	command := args[0]
	args = args[1:]

	switch command {
	case "stats":
		err = cmdStats(args)
	case "fit":
		err = cmdFit(cfg, args)
	case "trail":
		err = cmdTrail(cfg, args)
	case "hierarchy", "tree":
		err = cmdHierarchy(cfg, args)
	case "simulate", "sim":
		err = cmdSimulate(cfg, args)
	case "run":
		err = cmdRun(cfg, args)
	case "primitive":
		err = cmdPrimitive(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func fileConfig(path string) logger.FileConfig {
	if path == "" {
		return logger.FileConfig{}
	}
	return logger.DefaultFileConfig(path)
}

func printUsage() {
	fmt.Println(`scenetool - hierarchical transform and procedural motion toolkit

Usage:
  scenetool [global flags] <command> [options]

Commands:
  stats <dump.yaml>...                 Show geometry statistics of mesh dumps
  fit [-target N] <dump.yaml>...       Compute the scale and offset that fit a model
  trail [-kind K] [-radius R]          Sample a trajectory path
  hierarchy                            Print the node tree with world positions
  simulate [-steps N] [-dt S]          Run fixed ticks and print matrices
  run [-watch] [-model dump.yaml]      Tick in real time, reloading config on change
  primitive -shape box|sphere <out>    Write a primitive mesh dump

Global flags:
  -config PATH      Config file (.yaml or .toml)
  -debug            Enable debug logging
  -log-file PATH    Also write logs to a rotated file
  -log-format F     console or json
  -tick-rate HZ     Ticks per second for run
  -duration S       Stop run after S seconds
  -target-size N    Largest model dimension after fitting
  -trajectory K     circular, sinusoidal, lemniscate or none
  -no-pulse         Disable the pulsing scale

Examples:
  scenetool stats teapot.yaml
  scenetool fit -target 10 -shift -3,0,0 teapot.yaml
  scenetool trail -kind lemniscate -radius 3 -segments 16
  scenetool -trajectory sinusoidal simulate -steps 120 -dt 0.016
  scenetool -config scene.toml run -watch`)
}
