// Package parser turns raw chat export text into canonical message records.
package parser

import "time"

// LineKind classifies a single export line.
type LineKind int

const (
	// LineUnparsed is a line the grammar does not recognise, or a content line
	// with an empty sender or body.
	LineUnparsed LineKind = iota

	// LineContent is a "sender: body" line.
	LineContent

	// LineSystem is a date/time prefix without a sender (group events, notices).
	LineSystem
)

// String returns the kind name used in diagnostics.
func (k LineKind) String() string {
	switch k {
	case LineContent:
		return "content"
	case LineSystem:
		return "system"
	default:
		return "unparsed"
	}
}

// Fields are the raw text fields extracted from a line.
type Fields struct {
	// Date is the date text, e.g. 25/07/24.
	Date string

	// Time is the time text, e.g. 7:49:06 PM.
	Time string

	// Sender is the trimmed sender name. Empty for system lines.
	Sender string

	// Body is the trimmed message text.
	Body string
}

// Message is the canonical unit consumed by aggregation.
type Message struct {
	// Timestamp is the resolved instant, second resolution.
	Timestamp time.Time

	// Sender is the trimmed, non-empty participant name.
	Sender string

	// Body is the trimmed message text.
	Body string

	// IsMedia marks a media placeholder ("<media omessi>").
	IsMedia bool
}

// Stats counts how the lines of one export were classified.
type Stats struct {
	// Grammar is the name of the detected grammar.
	Grammar string `json:"grammar"`

	// Lines is the number of physical lines in the input.
	Lines int `json:"lines"`

	// Blank lines carry no text.
	Blank int `json:"blank"`

	// Content lines became non-media messages.
	Content int `json:"content"`

	// Media lines became media messages.
	Media int `json:"media"`

	// System lines were recognised and discarded.
	System int `json:"system"`

	// Notices were content lines dropped by the noise filter.
	Notices int `json:"notices"`

	// Unparsed lines did not match the grammar (usually continuation lines).
	Unparsed int `json:"unparsed"`

	// InvalidTimestamp lines matched but their date or time could not be resolved.
	InvalidTimestamp int `json:"invalidTimestamp"`
}

// Kept returns the number of lines that produced a message.
func (s *Stats) Kept() int {
	return s.Content + s.Media
}

// Skipped returns the number of non-blank lines excluded from every statistic.
func (s *Stats) Skipped() int {
	return s.System + s.Notices + s.Unparsed + s.InvalidTimestamp
}
