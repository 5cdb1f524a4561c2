package analyzer

import (
	"github.com/samber/lo"

	"github.com/ccollicutt/chatwrapped/pkg/parser"
)

// maxResponseGap bounds accepted response latencies, in seconds. Longer gaps
// are a new conversation rather than a reply.
const maxResponseGap = 86400

// Aggregator folds an ordered message sequence into an AnalysisResult. The
// pass is sequential: response latency depends on chronological order and on
// per-sender state.
type Aggregator struct {
	acc *Accumulators
}

// NewAggregator creates an Aggregator with empty accumulators.
func NewAggregator() *Aggregator {
	return &Aggregator{acc: NewAccumulators()}
}

// Accumulators exposes the running state, mainly for diagnostics.
func (g *Aggregator) Accumulators() *Accumulators {
	return g.acc
}

// Process folds one message. Media placeholders only increment the media
// count; they are not a conversational turn and leave last-seen state alone.
func (g *Aggregator) Process(msg parser.Message) {
	acc := g.acc

	if msg.IsMedia {
		acc.Media++
		return
	}

	acc.Total++
	user := acc.user(msg.Sender)
	user.MessageCount++

	acc.TimeOfDay.Add(Bucket(msg.Timestamp))
	acc.Days.Add(DayKey(msg.Timestamp))

	for _, w := range Words(msg.Body) {
		acc.Words.Add(w)
		user.WordCount++
	}
	for _, e := range Emojis(msg.Body) {
		acc.Emoji.Add(e)
		user.EmojiCount++
	}

	if prev, ok := acc.lastFromOthers(msg.Sender); ok {
		gap := msg.Timestamp.Sub(prev).Seconds()
		if gap > 0 && gap < maxResponseGap {
			acc.Latencies = append(acc.Latencies, gap)
		}
	}
	acc.lastSeen[msg.Sender] = msg.Timestamp
}

// Finalize reduces the accumulators to a result. The accumulators are left
// untouched, so Finalize may be called more than once.
func (g *Aggregator) Finalize() *AnalysisResult {
	acc := g.acc

	word, wordCount := acc.Words.Max()
	emoji, emojiCount := acc.Emoji.Max()
	day, dayCount := acc.Days.Max()

	users := make(map[string]UserStats, len(acc.Users))
	for sender, u := range acc.Users {
		users[sender] = *u
	}

	return &AnalysisResult{
		TotalMessages:       acc.Total,
		MostUsedWord:        WordCount{Word: word, Count: wordCount},
		MostUsedEmoji:       EmojiCount{Emoji: emoji, Count: emojiCount},
		TimeOfDayStats:      acc.TimeOfDay,
		DayWithMostMessages: DayCount{Date: day, Count: dayCount},
		AverageResponseTime: mean(acc.Latencies),
		MediaCount:          acc.Media,
		UserStats:           users,
	}
}

// Reset clears all state for reuse.
func (g *Aggregator) Reset() {
	g.acc = NewAccumulators()
}

// mean is the arithmetic mean, or 0 for an empty pool.
func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return lo.Sum(samples) / float64(len(samples))
}
