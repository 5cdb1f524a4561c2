// Package analyzer aggregates normalized chat messages into summary statistics.
package analyzer

import (
	"sort"

	"github.com/samber/lo"
)

// TimeOfDay is one of the four buckets partitioning the local 24-hour clock.
type TimeOfDay string

const (
	// Morning is 06:00-11:59.
	Morning TimeOfDay = "morning"

	// Afternoon is 12:00-17:59.
	Afternoon TimeOfDay = "afternoon"

	// Evening is 18:00-21:59.
	Evening TimeOfDay = "evening"

	// Night is every other hour, wrapping midnight.
	Night TimeOfDay = "night"
)

// TimesOfDay lists the buckets in display order.
var TimesOfDay = []TimeOfDay{Morning, Afternoon, Evening, Night}

// WordCount is the most used word and its count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// EmojiCount is the most used emoji and its count.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// DayCount is the busiest calendar day (YYYY-MM-DD) and its message count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TimeOfDayStats counts messages per bucket.
type TimeOfDayStats struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Night     int `json:"night"`
}

// Add increments the bucket's count.
func (s *TimeOfDayStats) Add(b TimeOfDay) {
	switch b {
	case Morning:
		s.Morning++
	case Afternoon:
		s.Afternoon++
	case Evening:
		s.Evening++
	default:
		s.Night++
	}
}

// Get returns the bucket's count.
func (s TimeOfDayStats) Get(b TimeOfDay) int {
	switch b {
	case Morning:
		return s.Morning
	case Afternoon:
		return s.Afternoon
	case Evening:
		return s.Evening
	default:
		return s.Night
	}
}

// Total returns the sum over all buckets.
func (s TimeOfDayStats) Total() int {
	return s.Morning + s.Afternoon + s.Evening + s.Night
}

// Busiest returns the bucket with the most messages. Earlier buckets win ties.
func (s TimeOfDayStats) Busiest() TimeOfDay {
	return lo.MaxBy(TimesOfDay, func(a, b TimeOfDay) bool {
		return s.Get(a) > s.Get(b)
	})
}

// UserStats holds per-sender counters.
type UserStats struct {
	MessageCount int `json:"messageCount"`
	WordCount    int `json:"wordCount"`
	EmojiCount   int `json:"emojiCount"`
}

// AnalysisResult is the outcome of one analysis. It is built once and not
// shared with any other call.
type AnalysisResult struct {
	TotalMessages       int                  `json:"totalMessages"`
	MostUsedWord        WordCount            `json:"mostUsedWord"`
	MostUsedEmoji       EmojiCount           `json:"mostUsedEmoji"`
	TimeOfDayStats      TimeOfDayStats       `json:"timeOfDayStats"`
	DayWithMostMessages DayCount             `json:"dayWithMostMessages"`
	AverageResponseTime float64              `json:"averageResponseTime"`
	MediaCount          int                  `json:"mediaCount"`
	UserStats           map[string]UserStats `json:"userStats"`
}

// Senders returns sender names by message count descending, then by name.
func (r *AnalysisResult) Senders() []string {
	senders := lo.Keys(r.UserStats)
	sort.Slice(senders, func(i, j int) bool {
		a, b := r.UserStats[senders[i]], r.UserStats[senders[j]]
		if a.MessageCount != b.MessageCount {
			return a.MessageCount > b.MessageCount
		}
		return senders[i] < senders[j]
	})
	return senders
}

// TopSender returns the sender with the most messages, or "" for an empty chat.
func (r *AnalysisResult) TopSender() string {
	if senders := r.Senders(); len(senders) > 0 {
		return senders[0]
	}
	return ""
}
