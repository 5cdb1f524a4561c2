package config

import (
	"fmt"

	env "github.com/Netflix/go-env"
)

// Default values for configuration.
const (
	DefaultLogLevel     = "INFO"
	DefaultSampleSize   = 100
	DefaultWorkers      = 1
	DefaultOutputFormat = "text"
)

// Environment variable names.
const (
	EnvTimezone     = "CHATWRAPPED_TIMEZONE"
	EnvLogLevel     = "CHATWRAPPED_LOG_LEVEL"
	EnvWorkers      = "CHATWRAPPED_WORKERS"
	EnvOutputFormat = "CHATWRAPPED_OUTPUT_FORMAT"
	EnvColor        = "CHATWRAPPED_COLOR"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Detection: DetectionConfig{
			SampleSize: DefaultSampleSize,
		},
		Parsing: ParsingConfig{
			Workers: DefaultWorkers,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
	}
}

// environment holds the optional overrides read from CHATWRAPPED_* variables.
type environment struct {
	Timezone     *string `env:"CHATWRAPPED_TIMEZONE"`
	LogLevel     *string `env:"CHATWRAPPED_LOG_LEVEL"`
	Workers      *int    `env:"CHATWRAPPED_WORKERS"`
	OutputFormat *string `env:"CHATWRAPPED_OUTPUT_FORMAT"`
	Color        *bool   `env:"CHATWRAPPED_COLOR"`
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	var e environment
	if _, err := env.UnmarshalFromEnviron(&e); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if e.Timezone != nil {
		c.Timezone = *e.Timezone
	}
	if e.LogLevel != nil {
		c.LogLevel = *e.LogLevel
	}
	if e.Workers != nil {
		c.Parsing.Workers = *e.Workers
	}
	if e.OutputFormat != nil {
		c.Output.Format = *e.OutputFormat
	}
	if e.Color != nil {
		c.Output.Color = *e.Color
	}
	return nil
}
