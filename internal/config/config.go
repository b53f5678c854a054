// Package config handles generator configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/skyline/internal/generator"
)

// Input ranges offered to users. The generator itself accepts any positive size.
const (
	MinPlaneSize        = 5
	MaxPlaneSize        = 25
	MaxSkyscraperHeight = 10
)

// Config holds all generator settings.
type Config struct {
	Foundation  FoundationConfig `yaml:"foundation"`
	Skyscrapers SkyscraperConfig `yaml:"skyscrapers"`
	Generator   GeneratorConfig  `yaml:"generator"`
	Output      OutputConfig     `yaml:"output"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// FoundationConfig holds the base plane size in world units.
type FoundationConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SkyscraperConfig holds building settings.
type SkyscraperConfig struct {
	MaxHeight int `yaml:"max_height"`
	Spacing   int `yaml:"spacing"` // box footprint in tenths of a quadrant
}

// GeneratorConfig holds random generation settings.
type GeneratorConfig struct {
	Seed  uint64 `yaml:"seed"`  // 0 picks a seed from the clock
	Batch int    `yaml:"batch"` // layouts produced by the batch command
}

// OutputConfig holds where generated scenes are written.
type OutputConfig struct {
	Path string `yaml:"path"` // "-" writes to stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Foundation: FoundationConfig{
			Width:  10,
			Height: 10,
		},
		Skyscrapers: SkyscraperConfig{
			MaxHeight: 8,
			Spacing:   10,
		},
		Generator: GeneratorConfig{
			Seed:  0,
			Batch: 4,
		},
		Output: OutputConfig{
			Path: "skyline.obj",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params returns the generation parameters described by the config.
func (c *Config) Params() generator.Params {
	return generator.Params{
		Width:     c.Foundation.Width,
		Height:    c.Foundation.Height,
		MaxHeight: c.Skyscrapers.MaxHeight,
		Spacing:   c.Skyscrapers.Spacing,
	}
}

// Validate checks the config against the offered input ranges.
func (c *Config) Validate() error {
	if err := checkRange("foundation.width", c.Foundation.Width, MinPlaneSize, MaxPlaneSize); err != nil {
		return err
	}
	if err := checkRange("foundation.height", c.Foundation.Height, MinPlaneSize, MaxPlaneSize); err != nil {
		return err
	}
	if err := checkRange("skyscrapers.max_height", c.Skyscrapers.MaxHeight, 1, MaxSkyscraperHeight); err != nil {
		return err
	}
	if err := checkRange("skyscrapers.spacing", c.Skyscrapers.Spacing, 1, generator.MaxSpacing); err != nil {
		return err
	}
	if c.Generator.Batch < 1 {
		return fmt.Errorf("generator.batch must be at least 1, got %d", c.Generator.Batch)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	return nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be in [%d, %d], got %d", name, lo, hi, v)
	}
	return nil
}
