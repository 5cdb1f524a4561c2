package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ccollicutt/chatwrapped/pkg/analyzer"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "chatwrapped: %d messages, %d media, %d participants\n",
		report.Summary.TotalMessages,
		report.Summary.MediaCount,
		report.Summary.Participants)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	res := report.Result

	fmt.Fprintln(w, f.heading("=== Chat Wrapped ==="))
	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "%s\n", report.Metadata.Source)
	}
	fmt.Fprintln(w)

	if report.IsEmpty() {
		fmt.Fprintln(w, "No messages found")
		return nil
	}

	fmt.Fprintf(w, "Messages:            %d\n", res.TotalMessages)
	fmt.Fprintf(w, "Media:               %d\n", res.MediaCount)
	fmt.Fprintf(w, "Participants:        %d\n", len(res.UserStats))
	if res.MostUsedWord.Count > 0 {
		fmt.Fprintf(w, "Most used word:      %q (%d)\n", res.MostUsedWord.Word, res.MostUsedWord.Count)
	}
	if res.MostUsedEmoji.Count > 0 {
		fmt.Fprintf(w, "Most used emoji:     %s (%d)\n", res.MostUsedEmoji.Emoji, res.MostUsedEmoji.Count)
	}
	if res.DayWithMostMessages.Count > 0 {
		fmt.Fprintf(w, "Busiest day:         %s (%d messages)\n", res.DayWithMostMessages.Date, res.DayWithMostMessages.Count)
	}
	fmt.Fprintf(w, "Avg response time:   %s\n", formatSeconds(res.AverageResponseTime))
	fmt.Fprintln(w)

	fmt.Fprintln(w, f.heading("Time of day"))
	for _, b := range analyzer.TimesOfDay {
		fmt.Fprintf(w, "  %-10s %d\n", b, res.TimeOfDayStats.Get(b))
	}
	fmt.Fprintln(w)

	if len(res.UserStats) > 0 {
		fmt.Fprintln(w, f.heading("Participants"))
		f.formatUsers(res, w)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	if report.Summary.TopSender != "" {
		fmt.Fprintf(w, "Top sender: %s, busiest time of day: %s\n",
			f.highlight(report.Summary.TopSender),
			f.highlight(string(report.Summary.BusiestTimeOfDay)))
	}

	if f.opts.Verbose {
		f.formatVerbose(report, w)
	}

	return nil
}

func (f *TextFormatter) formatUsers(res *analyzer.AnalysisResult, w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Sender", "Messages", "Words", "Emoji"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, sender := range res.Senders() {
		u := res.UserStats[sender]
		table.Append([]string{
			sender,
			strconv.Itoa(u.MessageCount),
			strconv.Itoa(u.WordCount),
			strconv.Itoa(u.EmojiCount),
		})
	}
	table.Render()
}

func (f *TextFormatter) formatVerbose(report *Report, w io.Writer) {
	fmt.Fprintf(w, "Report: %s\n", report.Metadata.ID)
	if report.Metadata.Grammar != "" {
		fmt.Fprintf(w, "Grammar: %s\n", report.Metadata.Grammar)
	}
	if s := report.Metadata.Stats; s != nil {
		fmt.Fprintf(w, "Lines processed: %d (%d kept, %d blank, %d skipped)\n",
			s.Lines, s.Kept(), s.Blank, s.Skipped())
		fmt.Fprintf(w, "Skipped: %d system, %d notices, %d unparsed, %d invalid timestamps\n",
			s.System, s.Notices, s.Unparsed, s.InvalidTimestamp)
	}
	fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
}

func (f *TextFormatter) heading(s string) string {
	if !f.opts.Color {
		return s
	}
	return color.New(color.FgGreen, color.OpBold).Render(s)
}

func (f *TextFormatter) highlight(s string) string {
	if !f.opts.Color {
		return s
	}
	return color.New(color.FgCyan).Render(s)
}

// formatSeconds renders a latency in seconds as a rounded duration.
func formatSeconds(seconds float64) string {
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}
