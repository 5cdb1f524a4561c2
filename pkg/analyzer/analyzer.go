package analyzer

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ccollicutt/chatwrapped/pkg/detector"
	"github.com/ccollicutt/chatwrapped/pkg/noise"
	"github.com/ccollicutt/chatwrapped/pkg/parser"
)

// ctxCheckInterval is how many messages are folded between cancellation checks.
const ctxCheckInterval = 4096

// Analyzer runs the full pipeline over one export: grammar detection,
// normalization and aggregation.
type Analyzer struct {
	normalizerOpts []parser.Option
	log            *slog.Logger
}

// Option configures analyzer behavior.
type Option func(*Analyzer)

// WithLogger sets the logger. Skipped lines are logged at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

// WithLocation sets the location export timestamps are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(a *Analyzer) {
		a.normalizerOpts = append(a.normalizerOpts, parser.WithLocation(loc))
	}
}

// WithDetector replaces the grammar detector.
func WithDetector(d *detector.Detector) Option {
	return func(a *Analyzer) {
		a.normalizerOpts = append(a.normalizerOpts, parser.WithDetector(d))
	}
}

// WithFilter replaces the noise filter.
func WithFilter(f *noise.Filter) Option {
	return func(a *Analyzer) {
		a.normalizerOpts = append(a.normalizerOpts, parser.WithFilter(f))
	}
}

// WithWorkers parses lines on up to n goroutines. Aggregation stays sequential.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.normalizerOpts = append(a.normalizerOpts, parser.WithWorkers(n))
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze is a convenience wrapper for New(opts...).Analyze.
func Analyze(text string, opts ...Option) (*AnalysisResult, error) {
	return New(opts...).Analyze(context.Background(), text)
}

// Analyze returns the statistics for the full decoded text of one export.
// An unrecognised grammar fails the whole call with a
// *detector.UnrecognizedFormatError and no result.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*AnalysisResult, error) {
	result, _, err := a.AnalyzeWithStats(ctx, text)
	return result, err
}

// AnalyzeWithStats is like Analyze and also returns how the lines were classified.
func (a *Analyzer) AnalyzeWithStats(ctx context.Context, text string) (*AnalysisResult, *parser.Stats, error) {
	opts := append([]parser.Option{parser.WithLogger(a.log)}, a.normalizerOpts...)
	normalizer := parser.NewNormalizer(opts...)

	messages, stats, err := normalizer.Normalize(text)
	if err != nil {
		return nil, stats, err
	}

	agg := NewAggregator()
	for i, msg := range messages {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}
		agg.Process(msg)
	}
	result := agg.Finalize()

	a.log.Debug("analysis complete",
		"grammar", stats.Grammar,
		"messages", result.TotalMessages,
		"media", result.MediaCount,
		"skipped", stats.Skipped())

	return result, stats, nil
}
