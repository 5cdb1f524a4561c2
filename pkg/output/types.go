// Package output provides formatting and output generation for chat analysis reports.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/chatwrapped/pkg/analyzer"
	"github.com/ccollicutt/chatwrapped/pkg/parser"
)

// Report is the complete analysis output for one export.
type Report struct {
	// Summary provides the headline numbers.
	Summary Summary `json:"summary"`

	// Result is the full statistics contract.
	Result *analyzer.AnalysisResult `json:"result"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Summary provides the headline numbers of a report.
type Summary struct {
	TotalMessages    int                `json:"totalMessages"`
	MediaCount       int                `json:"mediaCount"`
	Participants     int                `json:"participants"`
	TopSender        string             `json:"topSender"`
	BusiestTimeOfDay analyzer.TimeOfDay `json:"busiestTimeOfDay"`
	LinesProcessed   int                `json:"linesProcessed"`
	LinesSkipped     int                `json:"linesSkipped"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// ID uniquely identifies this report.
	ID string `json:"id"`

	// Source is the export file that was analyzed.
	Source string `json:"source"`

	// Grammar is the detected export grammar.
	Grammar string `json:"grammar"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzedAt"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`

	// Stats is the per-line classification breakdown.
	Stats *parser.Stats `json:"stats,omitempty"`
}

// NewReport creates a Report from analysis results. started is when the
// analysis began and is used for the duration.
func NewReport(result *analyzer.AnalysisResult, stats *parser.Stats, source string, started time.Time) *Report {
	now := time.Now()
	report := &Report{
		Result: result,
		Metadata: Metadata{
			ID:         uuid.NewString(),
			Source:     source,
			AnalyzedAt: now,
			Duration:   now.Sub(started),
			Stats:      stats,
		},
		Summary: Summary{
			TotalMessages:    result.TotalMessages,
			MediaCount:       result.MediaCount,
			Participants:     len(result.UserStats),
			TopSender:        result.TopSender(),
			BusiestTimeOfDay: result.TimeOfDayStats.Busiest(),
		},
	}

	if stats != nil {
		report.Metadata.Grammar = stats.Grammar
		report.Summary.LinesProcessed = stats.Lines
		report.Summary.LinesSkipped = stats.Skipped()
	}

	return report
}

// IsEmpty returns true if the export produced no messages at all.
func (r *Report) IsEmpty() bool {
	return r.Summary.TotalMessages == 0 && r.Summary.MediaCount == 0
}
