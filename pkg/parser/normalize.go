package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ccollicutt/chatwrapped/pkg/detector"
	"github.com/ccollicutt/chatwrapped/pkg/noise"
)

// minChunk is the smallest number of lines handed to one parse worker.
const minChunk = 512

// Normalizer turns raw export text into an ordered sequence of messages.
type Normalizer struct {
	detector *detector.Detector
	filter   *noise.Filter
	location *time.Location
	workers  int
	log      *slog.Logger
}

// Option configures the Normalizer.
type Option func(*Normalizer)

// WithDetector sets the grammar detector.
func WithDetector(d *detector.Detector) Option {
	return func(n *Normalizer) {
		if d != nil {
			n.detector = d
		}
	}
}

// WithFilter sets the noise filter.
func WithFilter(f *noise.Filter) Option {
	return func(n *Normalizer) {
		if f != nil {
			n.filter = f
		}
	}
}

// WithLocation sets the location timestamps are resolved in (default time.Local).
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) {
		if loc != nil {
			n.location = loc
		}
	}
}

// WithWorkers parses lines on up to n goroutines. Output order is unchanged.
func WithWorkers(workers int) Option {
	return func(n *Normalizer) {
		if workers > 0 {
			n.workers = workers
		}
	}
}

// WithLogger sets the logger used for skipped-line debug output.
func WithLogger(log *slog.Logger) Option {
	return func(n *Normalizer) {
		if log != nil {
			n.log = log
		}
	}
}

// NewNormalizer creates a Normalizer with the default grammars and denylist.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		location: time.Local,
		workers:  1,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.detector == nil {
		n.detector = detector.New()
	}
	if n.filter == nil {
		n.filter = noise.MustNew()
	}
	return n
}

type outcome int

const (
	outcomeBlank outcome = iota
	outcomeContent
	outcomeMedia
	outcomeSystem
	outcomeNotice
	outcomeUnparsed
	outcomeInvalidTimestamp
)

type lineResult struct {
	outcome outcome
	msg     Message
	fields  Fields
}

// Normalize detects the grammar from the first non-blank line, then parses,
// resolves and filters every line. Line-level problems never fail the call;
// an unrecognised grammar does, and no messages are returned with it.
func (n *Normalizer) Normalize(text string) ([]Message, *Stats, error) {
	stats := &Stats{}

	grammar, err := n.detector.DetectText(text)
	if err != nil {
		return nil, stats, err
	}
	stats.Grammar = grammar.Name
	n.log.Debug("detected chat grammar", "grammar", grammar.Name, "first_line", detector.FirstNonBlank(text))

	lines := strings.Split(text, "\n")
	stats.Lines = len(lines)
	if strings.HasSuffix(text, "\n") {
		// The split leaves an empty element after the final newline
		stats.Lines--
		lines = lines[:len(lines)-1]
	}

	results := make([]lineResult, len(lines))
	if err := n.classifyAll(grammar, lines, results); err != nil {
		return nil, stats, fmt.Errorf("parsing lines: %w", err)
	}

	messages := make([]Message, 0, len(lines))
	for i, r := range results {
		switch r.outcome {
		case outcomeBlank:
			stats.Blank++
		case outcomeContent:
			stats.Content++
			messages = append(messages, r.msg)
		case outcomeMedia:
			stats.Media++
			messages = append(messages, r.msg)
		case outcomeSystem:
			stats.System++
		case outcomeNotice:
			stats.Notices++
		case outcomeUnparsed:
			stats.Unparsed++
			n.log.Debug("skipping unparsed line", "line", i+1)
		case outcomeInvalidTimestamp:
			stats.InvalidTimestamp++
			n.log.Debug("skipping line with invalid timestamp",
				"line", i+1, "date", r.fields.Date, "time", r.fields.Time)
		}
	}

	return messages, stats, nil
}

// classifyAll fills results in input order. Every line is independent, so
// chunks can run concurrently.
func (n *Normalizer) classifyAll(g *detector.Grammar, lines []string, results []lineResult) error {
	if n.workers <= 1 || len(lines) <= minChunk {
		for i, line := range lines {
			results[i] = n.classify(g, line)
		}
		return nil
	}

	chunk := (len(lines) + n.workers - 1) / n.workers
	if chunk < minChunk {
		chunk = minChunk
	}

	var eg errgroup.Group
	eg.SetLimit(n.workers)
	for start := 0; start < len(lines); start += chunk {
		end := min(start+chunk, len(lines))
		eg.Go(func() error {
			for i := start; i < end; i++ {
				results[i] = n.classify(g, lines[i])
			}
			return nil
		})
	}
	return eg.Wait()
}

func (n *Normalizer) classify(g *detector.Grammar, line string) lineResult {
	if strings.TrimSpace(detector.Sanitize(line)) == "" {
		return lineResult{outcome: outcomeBlank}
	}

	fields, kind := ParseLine(line, g)
	switch kind {
	case LineSystem:
		return lineResult{outcome: outcomeSystem, fields: fields}
	case LineUnparsed:
		return lineResult{outcome: outcomeUnparsed}
	}

	class := n.filter.Classify(fields.Body)
	if class == noise.ClassNotice {
		return lineResult{outcome: outcomeNotice, fields: fields}
	}

	ts, ok := ResolveTimestamp(fields.Date, fields.Time, g.Clock, n.location)
	if !ok {
		return lineResult{outcome: outcomeInvalidTimestamp, fields: fields}
	}

	r := lineResult{
		outcome: outcomeContent,
		fields:  fields,
		msg: Message{
			Timestamp: ts,
			Sender:    fields.Sender,
			Body:      fields.Body,
		},
	}
	if class == noise.ClassMedia {
		r.outcome = outcomeMedia
		r.msg.IsMedia = true
	}
	return r
}
