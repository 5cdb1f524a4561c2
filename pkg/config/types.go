// Package config provides configuration loading and validation for chatwrapped.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Timezone is the IANA zone export timestamps are interpreted in.
	// Empty means the process's local zone.
	Timezone string `yaml:"timezone,omitempty"`

	// LogLevel is DEBUG, INFO, WARN or ERROR.
	LogLevel string `yaml:"log_level,omitempty" validate:"oneof=DEBUG INFO WARN ERROR"`

	Detection DetectionConfig `yaml:"detection"`
	Parsing   ParsingConfig   `yaml:"parsing"`
	Noise     NoiseConfig     `yaml:"noise,omitempty"`
	Output    OutputConfig    `yaml:"output"`

	// location is the loaded Timezone (populated during validation).
	location *time.Location
}

// DetectionConfig controls grammar detection reports.
type DetectionConfig struct {
	// SampleSize is the number of non-blank lines scored by the detect command.
	SampleSize int `yaml:"sample_size" validate:"gte=1,lte=100000"`
}

// ParsingConfig controls line parsing.
type ParsingConfig struct {
	// Workers is the number of goroutines parsing lines. 1 parses sequentially.
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`
}

// NoiseConfig extends the built-in denylist.
type NoiseConfig struct {
	// ExtraNotices are phrases that drop a message, matched case-insensitively.
	ExtraNotices []string `yaml:"extra_notices,omitempty" validate:"dive,required"`

	// ExtraMedia are phrases that mark a media placeholder.
	ExtraMedia []string `yaml:"extra_media,omitempty" validate:"dive,required"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format is text or json.
	Format string `yaml:"format" validate:"oneof=text json"`

	// Color enables ANSI colors in text output.
	Color bool `yaml:"color"`
}

// Location returns the loaded timezone, or time.Local before validation.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}
