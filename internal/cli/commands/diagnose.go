package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatwrapped/pkg/config"
	"github.com/ccollicutt/chatwrapped/pkg/detector"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	ConfigOptions

	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string

	// ShowDetails prints Details even when the check passed.
	ShowDetails bool
}

const (
	statusOK      = "ok"
	statusWarning = "warning"
	statusError   = "error"
)

// unparsedWarnRatio is the share of non-blank lines that may fail to parse
// before the export is flagged.
const unparsedWarnRatio = 0.2

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <export>",
		Short: "Explain how the lines of an export are classified",
		Long: `Diagnose why an export produces fewer messages than expected.

This command checks:
- Config file syntax and values (with --config)
- Export file existence and type
- Which export format the first line selects
- How every line is classified: messages, media, system lines,
  notices, unparsed lines and unreadable timestamps

Example:
  chatwrapped diagnose _chat.txt
  chatwrapped diagnose -v --config chatwrapped.yaml _chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(commandContext(cmd), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, file string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Configuration
	cfg, log, result := checkConfig(ctx, &opts.ConfigOptions)
	results = append(results, result)
	if result.Status == statusError {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 2. Export file
	text, result := checkExport(file)
	results = append(results, result)
	if result.Status == statusError {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. Format detection
	result = checkFormat(ctx, text, cfg)
	results = append(results, result)
	if result.Status == statusError {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 4. Line classification
	results = append(results, checkLines(text, cfg, log))

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfig(ctx context.Context, opts *ConfigOptions) (*config.Config, *slog.Logger, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Configuration",
	}

	cfg, log, err := opts.load(ctx)
	if err != nil {
		result.Status = statusError
		result.Message = err.Error()
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		result.Suggests = append(result.Suggests,
			"Use 'chatwrapped detect <export> --write-config chatwrapped.yaml' to generate a starter config")
		return nil, nil, result
	}

	result.Status = statusOK
	if opts.ConfigPath == "" {
		result.Message = "No config file, using defaults"
	} else {
		result.Message = fmt.Sprintf("Loaded: %s", opts.ConfigPath)
	}
	result.Details = []string{
		fmt.Sprintf("Timezone: %s", cfg.Location()),
		fmt.Sprintf("Workers: %d", cfg.Parsing.Workers),
		fmt.Sprintf("Extra notices: %d, extra media phrases: %d", len(cfg.Noise.ExtraNotices), len(cfg.Noise.ExtraMedia)),
	}
	return cfg, log, result
}

func checkExport(file string) (string, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Export File",
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		result.Status = statusError
		result.Message = fmt.Sprintf("Export not found: %s", file)
		result.Suggests = []string{"Check the file path is correct"}
		return "", result
	}
	if err != nil {
		result.Status = statusError
		result.Message = fmt.Sprintf("Cannot access export: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return "", result
	}
	if info.IsDir() {
		result.Status = statusError
		result.Message = "Path is a directory, not a file"
		return "", result
	}
	if info.Size() == 0 {
		result.Status = statusError
		result.Message = "Export is empty"
		return "", result
	}

	text, err := readExport(file)
	if err != nil {
		result.Status = statusError
		result.Message = err.Error()
		result.Suggests = []string{
			"Pass the .txt transcript or the .zip archive produced by WhatsApp's \"Export chat\"",
		}
		return "", result
	}

	result.Status = statusOK
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", file, info.Size())
	result.Details = []string{
		fmt.Sprintf("Transcript size: %d bytes", len(text)),
	}
	return text, result
}

func checkFormat(ctx context.Context, text string, cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Export Format",
	}

	d := detector.New(detector.WithSampleSize(cfg.Detection.SampleSize))
	selected, err := d.DetectText(text)
	if err != nil {
		result.Status = statusError
		result.Message = err.Error()
		result.Suggests = []string{
			"The first non-blank line must be a message or system line",
			"Run 'chatwrapped detect <export>' to see which formats match the rest of the file",
		}
		return result
	}

	result.Status = statusOK
	result.Message = fmt.Sprintf("Detected: %s (%s)", selected.Name, selected.Description)

	sample, err := d.DetectFromReader(ctx, strings.NewReader(text))
	if err != nil || !sample.HasMatch() {
		return result
	}

	best := sample.BestMatch()
	result.Details = []string{
		fmt.Sprintf("Sampled %d lines, best match %s at %.1f%%", sample.SampledLines, best.Grammar.Name, best.Confidence*100),
	}
	if best.Grammar != selected {
		result.Status = statusWarning
		result.Message = fmt.Sprintf("First line selects %s but most lines match %s", selected.Name, best.Grammar.Name)
		result.Suggests = []string{
			"The export may have been concatenated from different phones; lines in the other format are skipped",
		}
	}
	return result
}

func checkLines(text string, cfg *config.Config, log *slog.Logger) DiagnosticResult {
	result := DiagnosticResult{
		Check:       "Line Classification",
		ShowDetails: true,
	}

	normalizer, err := newNormalizer(cfg, log)
	if err != nil {
		result.Status = statusError
		result.Message = err.Error()
		return result
	}

	_, stats, err := normalizer.Normalize(text)
	if err != nil {
		result.Status = statusError
		result.Message = err.Error()
		return result
	}

	result.Details = []string{
		fmt.Sprintf("Messages:           %d", stats.Content),
		fmt.Sprintf("Media:              %d", stats.Media),
		fmt.Sprintf("System lines:       %d", stats.System),
		fmt.Sprintf("Notices:            %d", stats.Notices),
		fmt.Sprintf("Unparsed:           %d", stats.Unparsed),
		fmt.Sprintf("Invalid timestamps: %d", stats.InvalidTimestamp),
		fmt.Sprintf("Blank:              %d", stats.Blank),
	}

	result.Status = statusOK
	result.Message = fmt.Sprintf("%d of %d lines kept", stats.Kept(), stats.Lines)

	nonBlank := stats.Lines - stats.Blank
	switch {
	case stats.Kept() == 0:
		result.Status = statusWarning
		result.Message = "No messages found"
		result.Suggests = []string{"Every line was a system line, a notice or unparseable"}
	case stats.InvalidTimestamp > 0:
		result.Status = statusWarning
		result.Message = fmt.Sprintf("%d lines have unreadable timestamps", stats.InvalidTimestamp)
		result.Suggests = []string{
			"Run with --log-level debug to see the line numbers",
		}
	case nonBlank > 0 && float64(stats.Unparsed)/float64(nonBlank) > unparsedWarnRatio:
		result.Status = statusWarning
		result.Message = fmt.Sprintf("%d of %d lines could not be parsed", stats.Unparsed, nonBlank)
		result.Suggests = []string{
			"Multi-line messages are counted by their first line only",
			"Run with --log-level debug to see the line numbers",
		}
	}

	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== chatwrapped Export Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case statusOK:
			icon = "PASS"
			okCount++
		case statusWarning:
			icon = "WARN"
			warnCount++
		case statusError:
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.ShowDetails || r.Status != statusOK {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running analysis.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nExport is usable but some lines will be skipped.")
	} else {
		fmt.Fprintln(w, "\nExport looks good!")
	}
}
