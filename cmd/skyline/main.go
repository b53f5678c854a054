// skyline generates a random grid of skyscrapers with a carved street crossing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/skyline/internal/config"
	"github.com/Faultbox/skyline/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var run func(*config.Config) error
	switch command {
	case "generate", "gen":
		run = cmdGenerate
	case "layout":
		run = cmdLayout
	case "preview":
		run = cmdPreview
	case "info":
		run = cmdInfo
	case "batch":
		run = cmdBatch
	case "config":
		run = cmdConfig
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	cfg, err := setup(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// setup parses flags, loads the config and starts logging.
func setup(args []string) (*config.Config, error) {
	if err := config.ParseFlags(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg, nil
}

func printUsage() {
	fmt.Println(`skyline - random skyscraper grid generator

Usage:
  skyline <command> [options]

Commands:
  generate   Build the scene and write it as Wavefront OBJ
  layout     Print the generated layout as YAML
  preview    Print the footprint grid as text
  info       Show lattice, face and footprint counts
  batch      Generate several seeded scenes in parallel
  config     Write the effective config to the user config directory
  help       Show this help

Options:
  -config <path>     Config file (default ./skyline.yaml, then user config dir)
  -seed <n>          Random seed (0 = from clock)
  -width <n>         Foundation width, 5-25
  -height <n>        Foundation height, 5-25
  -max-height <n>    Maximum skyscraper height, 1-10
  -spacing <n>       Skyscraper base, 1-10
  -batch <n>         Scenes produced by batch
  -out <path>        Output path, - for stdout
  -debug             Debug logging

Examples:
  skyline generate -width 12 -height 8 -seed 42 -out city.obj
  skyline preview -seed 7
  skyline batch -batch 8 -out out/city.obj`)
}
