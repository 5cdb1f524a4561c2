// Package detector identifies which chat export grammar a file uses.
package detector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUnrecognizedFormat is returned when no grammar matches the sample line.
var ErrUnrecognizedFormat = errors.New("unrecognized chat format")

// UnrecognizedFormatError carries the line that failed detection.
type UnrecognizedFormatError struct {
	Sample string
}

func (e *UnrecognizedFormatError) Error() string {
	if e.Sample == "" {
		return "unrecognized chat format: no non-blank lines"
	}
	return fmt.Sprintf("unrecognized chat format: first line %q matches no known grammar", truncate(e.Sample, 80))
}

// Is makes errors.Is(err, ErrUnrecognizedFormat) work for wrapped detection failures.
func (e *UnrecognizedFormatError) Is(target error) bool {
	return target == ErrUnrecognizedFormat
}

// DetectionResult holds the result of sampling an export.
type DetectionResult struct {
	Matches      []GrammarMatch // Grammars that matched, sorted by confidence descending
	SampledLines int            // Number of non-blank lines sampled
	FirstLine    string         // First non-blank line, the one Detect decides on
}

// GrammarMatch represents a grammar that matched with its confidence score.
type GrammarMatch struct {
	Grammar      *Grammar
	Confidence   float64 // 0.0 to 1.0 (share of sampled lines matched)
	MatchCount   int     // Lines matching the content or system pattern
	ContentCount int     // Lines matching the content pattern
	SampleLine   string  // First line that matched
}

// Detector classifies export lines against an ordered grammar table.
type Detector struct {
	grammars   []*Grammar
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithGrammars replaces the grammar table. Order is detection order.
func WithGrammars(grammars []*Grammar) Option {
	return func(d *Detector) {
		if len(grammars) > 0 {
			d.grammars = grammars
		}
	}
}

// New creates a new Detector with the default grammars.
func New(opts ...Option) *Detector {
	d := &Detector{
		grammars:   DefaultGrammars(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Grammars returns the grammar table in detection order.
func (d *Detector) Grammars() []*Grammar {
	return d.grammars
}

// Detect returns the first grammar, in table order, matching the line.
func (d *Detector) Detect(line string) (*Grammar, error) {
	line = Sanitize(line)
	if strings.TrimSpace(line) == "" {
		return nil, &UnrecognizedFormatError{}
	}
	for _, g := range d.grammars {
		if g.Matches(line) {
			return g, nil
		}
	}
	return nil, &UnrecognizedFormatError{Sample: line}
}

// DetectText runs Detect on the first non-blank line of text.
func (d *Detector) DetectText(text string) (*Grammar, error) {
	return d.Detect(FirstNonBlank(text))
}

// DetectFromReader samples up to sampleSize non-blank lines and scores every grammar.
func (d *Detector) DetectFromReader(_ context.Context, r io.Reader) (*DetectionResult, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() && len(lines) < d.sampleSize {
		if strings.TrimSpace(scanner.Text()) != "" {
			lines = append(lines, scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return d.DetectFromLines(lines), nil
}

// DetectFromLines scores every grammar against the given lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{}

	order := make(map[*Grammar]int, len(d.grammars))
	stats := make(map[*Grammar]*GrammarMatch)

	for i, g := range d.grammars {
		order[g] = i
	}

	for _, raw := range lines {
		line := Sanitize(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.SampledLines++
		if result.FirstLine == "" {
			result.FirstLine = line
		}

		for _, g := range d.grammars {
			content := g.Pattern.MatchString(line)
			if !content && !g.SystemPattern.MatchString(line) {
				continue
			}

			m := stats[g]
			if m == nil {
				m = &GrammarMatch{Grammar: g, SampleLine: line}
				stats[g] = m
			}
			m.MatchCount++
			if content {
				m.ContentCount++
			}
		}
	}

	for _, m := range stats {
		m.Confidence = float64(m.MatchCount) / float64(result.SampledLines)
		result.Matches = append(result.Matches, *m)
	}

	// Sort by confidence descending, then by table order (more specific first)
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return order[result.Matches[i].Grammar] < order[result.Matches[j].Grammar]
	})

	return result
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *GrammarMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one grammar matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// FirstNonBlank returns the first line of text that is not blank after sanitizing.
func FirstNonBlank(text string) string {
	for len(text) > 0 {
		line := text
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			text = ""
		}
		if strings.TrimSpace(Sanitize(line)) != "" {
			return line
		}
	}
	return ""
}

// Sanitize strips exporter artefacts that break line matching. Marks inside the
// message body are left for the noise filter.
func Sanitize(line string) string {
	line = strings.TrimRight(line, "\r")
	line = strings.TrimLeft(line, "\ufeff\u200e\u200f")
	return nbspReplacer.Replace(line)
}

var nbspReplacer = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
