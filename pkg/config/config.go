package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load reads and validates a configuration file. An empty path yields the
// defaults. Environment overrides are applied in both cases.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors, normalizes the log level and
// loads the timezone.
func Validate(cfg *Config) error {
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}

	loc := time.Local
	if cfg.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	cfg.location = loc

	return nil
}

// fieldError turns a validator failure into a message keyed by the YAML path.
func fieldError(fe validator.FieldError) error {
	path := yamlPath(fe.Namespace())
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("%s: %q must be one of %s", path, fe.Value(), fe.Param())
	case "gte", "lte":
		return fmt.Errorf("%s: %v out of range (%s %s)", path, fe.Value(), fe.Tag(), fe.Param())
	case "required":
		return fmt.Errorf("%s: must not be empty", path)
	default:
		return fmt.Errorf("%s: failed %s validation", path, fe.Tag())
	}
}

var yamlNames = map[string]string{
	"LogLevel":     "log_level",
	"Detection":    "detection",
	"SampleSize":   "sample_size",
	"Parsing":      "parsing",
	"Workers":      "workers",
	"Noise":        "noise",
	"ExtraNotices": "extra_notices",
	"ExtraMedia":   "extra_media",
	"Output":       "output",
	"Format":       "format",
}

// yamlPath converts "Config.Parsing.Workers" to "parsing.workers".
func yamlPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		name, index, _ := strings.Cut(p, "[")
		if y, ok := yamlNames[name]; ok {
			name = y
		}
		if index != "" {
			name += "[" + index
		}
		parts[i] = name
	}
	return strings.Join(parts, ".")
}
