package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatwrapped/pkg/analyzer"
	"github.com/ccollicutt/chatwrapped/pkg/config"
	"github.com/ccollicutt/chatwrapped/pkg/noise"
	"github.com/ccollicutt/chatwrapped/pkg/parser"
)

// ConfigOptions holds the flags shared by commands that read a configuration.
type ConfigOptions struct {
	ConfigPath string
	LogLevel   string
}

func (o *ConfigOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.ConfigPath, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "", "Override the configured log level (debug|info|warn|error)")
}

// load reads the configuration and builds the logger it asks for.
func (o *ConfigOptions) load(ctx context.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(ctx, o.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
		if err := config.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	return cfg, logs.GetLoggerFromString(cfg.LogLevel), nil
}

// newFilter builds the noise filter with the configured extra phrases.
func newFilter(cfg *config.Config) (*noise.Filter, error) {
	f, err := noise.New(
		noise.WithNotices(cfg.Noise.ExtraNotices...),
		noise.WithMediaPlaceholders(cfg.Noise.ExtraMedia...),
	)
	if err != nil {
		return nil, fmt.Errorf("building noise filter: %w", err)
	}
	return f, nil
}

// newAnalyzer wires the configuration into an analyzer.
func newAnalyzer(cfg *config.Config, log *slog.Logger) (*analyzer.Analyzer, error) {
	filter, err := newFilter(cfg)
	if err != nil {
		return nil, err
	}
	return analyzer.New(
		analyzer.WithLogger(log),
		analyzer.WithLocation(cfg.Location()),
		analyzer.WithWorkers(cfg.Parsing.Workers),
		analyzer.WithFilter(filter),
	), nil
}

// newNormalizer wires the configuration into a normalizer.
func newNormalizer(cfg *config.Config, log *slog.Logger) (*parser.Normalizer, error) {
	filter, err := newFilter(cfg)
	if err != nil {
		return nil, err
	}
	return parser.NewNormalizer(
		parser.WithLogger(log),
		parser.WithLocation(cfg.Location()),
		parser.WithWorkers(cfg.Parsing.Workers),
		parser.WithFilter(filter),
	), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
