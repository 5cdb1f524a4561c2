package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatwrapped/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	ConfigOptions

	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <export>",
		Short: "Detect which export format a chat uses",
		Long: `Sample lines from a chat export and score every known export format.

Analysis decides the format from the first non-blank line alone. This command
shows that decision together with how well each format matches the rest of the
sample, which helps when an export was edited or concatenated.

Optionally generates a starter config file with --write-config.

Supports:
  - WhatsApp iOS, bracketed, 12-hour and 24-hour clocks
  - WhatsApp Android, dash-separated, 12-hour and 24-hour clocks

Example:
  chatwrapped detect _chat.txt
  chatwrapped detect --sample 500 "WhatsApp Chat - Famiglia.zip"
  chatwrapped detect -w chatwrapped.yaml _chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 0, "Number of non-blank lines to sample (default from config)")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matching formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

// detectReport is what the detect command prints.
type detectReport struct {
	file     string
	result   *detector.DetectionResult
	selected *detector.Grammar
	err      error
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	file := args[0]
	ctx := commandContext(cmd)

	cfg, _, err := opts.load(ctx)
	if err != nil {
		return err
	}

	sampleSize := cfg.Detection.SampleSize
	if opts.SampleSize > 0 {
		sampleSize = opts.SampleSize
	}

	text, err := readExport(file)
	if err != nil {
		return err
	}

	d := detector.New(detector.WithSampleSize(sampleSize))
	result, err := d.DetectFromReader(ctx, strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	report := &detectReport{file: file, result: result}
	report.selected, report.err = d.DetectText(text)

	out := cmd.OutOrStdout()

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(out, report, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(out, report, opts)
	case "text", "":
		return outputDetectText(out, report, opts)
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, report *detectReport, opts *DetectOptions) error {
	result := report.result

	fmt.Fprintln(w, "=== Chat Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", report.file)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintln(w)

	if report.selected != nil {
		fmt.Fprintf(w, "Analysis will use: %s (%s)\n", report.selected.Name, report.selected.Description)
	} else {
		fmt.Fprintf(w, "Analysis will fail: %v\n", report.err)
	}
	if result.FirstLine != "" {
		fmt.Fprintf(w, "First line:\n  %s\n", result.FirstLine)
	}
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No known export format detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: Re-export the chat \"without media\" from WhatsApp and make sure the")
		fmt.Fprintln(w, "file was not edited or converted by another program.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Best match: %s\n", best.Grammar.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched, %d messages)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines, best.ContentCount)
	fmt.Fprintf(w, "Clock: %s\n", best.Grammar.Clock)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintln(w)

	if report.selected != nil && report.selected != best.Grammar {
		fmt.Fprintf(w, "WARNING: the first line matches %s but most lines match %s.\n",
			report.selected.Name, best.Grammar.Name)
		fmt.Fprintln(w, "Lines in the other format will be skipped during analysis.")
		fmt.Fprintln(w)
	}

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Grammar.Name, m.Confidence*100)
			fmt.Fprintf(w, "   pattern: '%s'\n", m.Grammar.PatternStr)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Clock        string  `json:"clock"`
	Pattern      string  `json:"pattern"`
	Confidence   float64 `json:"confidence"`
	MatchCount   int     `json:"match_count"`
	ContentCount int     `json:"content_count"`
	SampleLine   string  `json:"sample_line"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File         string      `json:"file"`
	Selected     string      `json:"selected,omitempty"`
	FirstLine    string      `json:"first_line,omitempty"`
	Matches      []JSONMatch `json:"matches"`
	SampledLines int         `json:"sampled_lines"`
	Error        string      `json:"error,omitempty"`
}

func outputDetectJSON(w io.Writer, report *detectReport, opts *DetectOptions) error {
	result := report.result
	out := JSONOutput{
		File:         report.file,
		FirstLine:    result.FirstLine,
		SampledLines: result.SampledLines,
		Matches:      make([]JSONMatch, 0),
	}
	if report.selected != nil {
		out.Selected = report.selected.Name
	}
	if report.err != nil {
		out.Error = report.err.Error()
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:         m.Grammar.Name,
			Description:  m.Grammar.Description,
			Clock:        m.Grammar.Clock.String(),
			Pattern:      m.Grammar.PatternStr,
			Confidence:   m.Confidence,
			MatchCount:   m.MatchCount,
			ContentCount: m.ContentCount,
			SampleLine:   m.SampleLine,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(out)
}

// writeStarterConfig writes a config file annotated with the detected format.
func writeStarterConfig(w io.Writer, report *detectReport, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if report.selected == nil {
		return fmt.Errorf("cannot generate config: %w", report.err)
	}

	content := generateStarterConfig(report.file, report.selected)

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(file string, g *detector.Grammar) string {
	absFile := file
	if abs, err := filepath.Abs(file); err == nil {
		absFile = abs
	}

	return fmt.Sprintf(`# chatwrapped configuration
# Generated by: chatwrapped detect %s
# Detected format: %s (%s)

# IANA zone the export's timestamps were written in. Empty uses the local zone.
timezone: ""

log_level: INFO

detection:
  sample_size: 100

parsing:
  # Parse lines on several goroutines for very large exports.
  workers: 1

noise:
  # Phrases that drop a message, e.g. notices in another language.
  extra_notices: []
  # Phrases that mark a media message.
  extra_media: []

output:
  format: text
  color: false
`, absFile, g.Name, g.Description)
}
