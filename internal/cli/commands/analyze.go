package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatwrapped/pkg/output"
	"github.com/ccollicutt/chatwrapped/pkg/parser"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigOptions

	Output  string
	Verbose bool
	Quiet   bool
	Color   bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <export>...",
		Short: "Summarize a WhatsApp chat export",
		Long: `Analyze one or more WhatsApp chat exports and print their statistics.

An export is the .txt transcript written by "Export chat", or the .zip archive
that contains it. Glob patterns are expanded.

Reports:
  - Messages and media per participant
  - Most used word and emoji
  - Busiest day and time of day
  - Average response time between participants

With several exports, JSON output is a stream of one document per export.

Exit codes:
  0 - Analysis completed
  2 - Configuration or runtime error
  3 - Chat format not recognized`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), defaults to the configured format")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include the line classification breakdown")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "Colorize text output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ctx := commandContext(cmd)

	cfg, log, err := opts.load(ctx)
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding exports: %w", err)
	}

	a, err := newAnalyzer(cfg, log)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if opts.Output != "" {
		format = opts.Output
	}
	color := cfg.Output.Color
	if cmd.Flags().Changed("color") {
		color = opts.Color
	}

	formatter, err := output.NewFormatter(format, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Color:   color,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, file := range files {
		text, err := readExport(file)
		if err != nil {
			return err
		}

		started := time.Now()
		result, stats, err := a.AnalyzeWithStats(ctx, text)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", file, err)
		}

		if i > 0 && formatter.Name() == "text" {
			fmt.Fprintln(out)
		}
		report := output.NewReport(result, stats, file, started)
		if err := formatter.Format(ctx, report, out); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
	}

	return nil
}
