package config

import (
	"flag"
	"os"
)

// Flags is the flag set shared by every skyline command.
var Flags = flag.NewFlagSet("skyline", flag.ContinueOnError)

var (
	flagConfig    = Flags.String("config", "", "Path to config file")
	flagDebug     = Flags.Bool("debug", false, "Enable debug logging")
	flagSeed      = Flags.Uint64("seed", 0, "Random seed (0 = from clock)")
	flagWidth     = Flags.Int("width", 0, "Foundation width")
	flagHeight    = Flags.Int("height", 0, "Foundation height")
	flagMaxHeight = Flags.Int("max-height", 0, "Maximum skyscraper height")
	flagSpacing   = Flags.Int("spacing", 0, "Skyscraper base, 1-10")
	flagBatch     = Flags.Int("batch", 0, "Number of layouts for the batch command")
	flagOut       = Flags.String("out", "", "Output path (- for stdout)")
)

func init() {
	Flags.SetOutput(os.Stderr)
}

// ParseFlags parses command flags. Call this before Load.
func ParseFlags(args []string) error {
	return Flags.Parse(args)
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Generator.Seed = *flagSeed
	}
	if *flagWidth > 0 {
		cfg.Foundation.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Foundation.Height = *flagHeight
	}
	if *flagMaxHeight > 0 {
		cfg.Skyscrapers.MaxHeight = *flagMaxHeight
	}
	if *flagSpacing > 0 {
		cfg.Skyscrapers.Spacing = *flagSpacing
	}
	if *flagBatch > 0 {
		cfg.Generator.Batch = *flagBatch
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
}
