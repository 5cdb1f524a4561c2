package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/chatwrapped/pkg/analyzer"
	"github.com/ccollicutt/chatwrapped/pkg/parser"
)

func createTestReport() *Report {
	result := &analyzer.AnalysisResult{
		TotalMessages:       4,
		MostUsedWord:        analyzer.WordCount{Word: "ciao", Count: 4},
		MostUsedEmoji:       analyzer.EmojiCount{Emoji: "😂", Count: 2},
		TimeOfDayStats:      analyzer.TimeOfDayStats{Morning: 1, Evening: 3},
		DayWithMostMessages: analyzer.DayCount{Date: "2024-07-25", Count: 3},
		AverageResponseTime: 14618,
		MediaCount:          1,
		UserStats: map[string]analyzer.UserStats{
			"Mario":  {MessageCount: 2, WordCount: 3, EmojiCount: 1},
			"Giulia": {MessageCount: 1, WordCount: 2, EmojiCount: 1},
			"Luca":   {MessageCount: 1, WordCount: 2},
		},
	}
	stats := &parser.Stats{
		Grammar: "ios-bracketed-12h",
		Lines:   7,
		Content: 4,
		Media:   1,
		System:  1,
		Blank:   1,
	}
	return NewReport(result, stats, "WhatsApp Chat - Famiglia.txt", time.Now().Add(-42*time.Millisecond))
}

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"=== Chat Wrapped ===",
		"WhatsApp Chat - Famiglia.txt",
		"Messages:            4",
		"Media:               1",
		`Most used word:      "ciao" (4)`,
		"Most used emoji:     😂 (2)",
		"Busiest day:         2024-07-25 (3 messages)",
		"Avg response time:   4h3m38s",
		"evening    3",
		"Top sender: Mario, busiest time of day: evening",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q\n%s", want, output)
		}
	}

	// Participants are listed by message count
	mario := strings.Index(output, "Mario")
	giulia := strings.Index(output, "Giulia")
	if mario < 0 || giulia < 0 || mario > giulia {
		t.Errorf("Participants not ordered by message count:\n%s", output)
	}

	if strings.Contains(output, "Grammar:") {
		t.Error("Non-verbose output should not include the grammar")
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "chatwrapped: 4 messages, 1 media, 3 participants\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Report: " + report.Metadata.ID,
		"Grammar: ios-bracketed-12h",
		"Lines processed: 7 (5 kept, 1 blank, 1 skipped)",
		"Skipped: 1 system, 0 notices, 0 unparsed, 0 invalid timestamps",
		"Duration:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Verbose output missing %q\n%s", want, output)
		}
	}
}

func TestTextFormatter_Format_Color(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Color: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Chat Wrapped") {
		t.Error("Colored output missing header text")
	}
}

func TestTextFormatter_Format_Empty(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := NewReport(&analyzer.AnalysisResult{UserStats: map[string]analyzer.UserStats{}}, nil, "", time.Now())

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No messages found") {
		t.Errorf("Output missing empty notice:\n%s", buf.String())
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{10, "10s"},
		{10.4, "10s"},
		{90, "1m30s"},
		{14618, "4h3m38s"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.seconds); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "", want: "text"},
		{name: "text", want: "text"},
		{name: "json", want: "json"},
		{name: "yaml", wantErr: true},
	}
	for _, tt := range tests {
		f, err := NewFormatter(tt.name, FormatOptions{})
		if (err != nil) != tt.wantErr {
			t.Errorf("NewFormatter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && f.Name() != tt.want {
			t.Errorf("NewFormatter(%q).Name() = %q, want %q", tt.name, f.Name(), tt.want)
		}
	}
}
