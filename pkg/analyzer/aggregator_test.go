package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/chatwrapped/pkg/parser"
)

var base = time.Date(2024, 7, 25, 19, 49, 6, 0, time.UTC)

func msg(offset time.Duration, sender, body string) parser.Message {
	return parser.Message{Timestamp: base.Add(offset), Sender: sender, Body: body}
}

func media(offset time.Duration, sender string) parser.Message {
	return parser.Message{Timestamp: base.Add(offset), Sender: sender, Body: "<media omessi>", IsMedia: true}
}

func aggregate(msgs ...parser.Message) *AnalysisResult {
	agg := NewAggregator()
	for _, m := range msgs {
		agg.Process(m)
	}
	return agg.Finalize()
}

func TestAggregator_ResponseLatency(t *testing.T) {
	req := require.New(t)

	res := aggregate(
		msg(0, "Mario", "Ciao a tutti"),
		msg(10*time.Second, "Giulia", "Ciao Mario"),
	)

	req.Equal(10.0, res.AverageResponseTime)
}

func TestAggregator_SameSenderYieldsNoSample(t *testing.T) {
	req := require.New(t)

	agg := NewAggregator()
	agg.Process(msg(0, "Mario", "Ciao"))
	agg.Process(msg(10*time.Second, "Mario", "ci sei?"))
	res := agg.Finalize()

	req.Empty(agg.Accumulators().Latencies)
	req.Equal(0.0, res.AverageResponseTime)
}

func TestAggregator_LatencyUsesMostRecentOtherSender(t *testing.T) {
	req := require.New(t)

	agg := NewAggregator()
	agg.Process(msg(0, "Mario", "uno"))
	agg.Process(msg(30*time.Second, "Luca", "due"))
	agg.Process(msg(40*time.Second, "Giulia", "tre"))

	// Luca replied after 30s, Giulia 10s after Luca
	req.Equal([]float64{30, 10}, agg.Accumulators().Latencies)
	req.Equal(20.0, agg.Finalize().AverageResponseTime)
}

func TestAggregator_LatencyWindow(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		want []float64
	}{
		{name: "zero gap rejected", gap: 0, want: nil},
		{name: "negative gap rejected", gap: -time.Minute, want: nil},
		{name: "one day rejected", gap: 24 * time.Hour, want: nil},
		{name: "just under one day accepted", gap: 24*time.Hour - time.Second, want: []float64{86399}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator()
			agg.Process(msg(0, "Mario", "ciao"))
			agg.Process(msg(tt.gap, "Giulia", "ciao"))
			require.Equal(t, tt.want, agg.Accumulators().Latencies)

			avg := agg.Finalize().AverageResponseTime
			require.GreaterOrEqual(t, avg, 0.0)
			require.Less(t, avg, 86400.0)
		})
	}
}

func TestAggregator_MediaIsNotATurn(t *testing.T) {
	req := require.New(t)

	agg := NewAggregator()
	agg.Process(msg(0, "Mario", "guarda"))
	agg.Process(media(5*time.Second, "Giulia"))
	agg.Process(msg(20*time.Second, "Mario", "allora?"))
	agg.Process(msg(25*time.Second, "Giulia", "bella"))
	res := agg.Finalize()

	// Giulia's media drop neither produced a sample nor became Mario's reference
	req.Equal([]float64{5}, agg.Accumulators().Latencies)
	req.Equal(1, res.MediaCount)
	req.Equal(3, res.TotalMessages)
	req.Equal(1, res.UserStats["Giulia"].MessageCount)
}

func TestAggregator_MediaExcludedFromTextStats(t *testing.T) {
	req := require.New(t)

	res := aggregate(media(0, "Mario"))

	req.Equal(0, res.TotalMessages)
	req.Equal(1, res.MediaCount)
	req.Empty(res.UserStats)
	req.Equal(WordCount{}, res.MostUsedWord)
	req.Equal(DayCount{}, res.DayWithMostMessages)
}

func TestAggregator_MostUsedWordTieBreak(t *testing.T) {
	req := require.New(t)

	res := aggregate(
		msg(0, "Mario", "ciao bene"),
		msg(time.Minute, "Giulia", "bene ciao"),
	)

	req.Equal(WordCount{Word: "ciao", Count: 2}, res.MostUsedWord)
}

func TestAggregator_UserStats(t *testing.T) {
	req := require.New(t)

	res := aggregate(
		msg(0, "Mario", "Ciao a tutti 😂😂"),
		msg(time.Minute, "Giulia", "ahahah 😂 👍🏽"),
		msg(2*time.Minute, "Mario", "ci vediamo stasera"),
	)

	req.Equal(UserStats{MessageCount: 2, WordCount: 4, EmojiCount: 2}, res.UserStats["Mario"])
	req.Equal(UserStats{MessageCount: 1, WordCount: 1, EmojiCount: 2}, res.UserStats["Giulia"])
	req.Equal(EmojiCount{Emoji: "😂", Count: 3}, res.MostUsedEmoji)
	req.Equal([]string{"Mario", "Giulia"}, res.Senders())
	req.Equal("Mario", res.TopSender())
}

func TestAggregator_Invariants(t *testing.T) {
	req := require.New(t)

	loc := time.UTC
	day1 := time.Date(2024, 7, 25, 0, 0, 0, 0, loc)
	day2 := day1.AddDate(0, 0, 1)
	messages := []parser.Message{
		{Timestamp: day1.Add(2 * time.Hour), Sender: "Mario", Body: "non dormo"},
		{Timestamp: day1.Add(7 * time.Hour), Sender: "Giulia", Body: "buongiorno"},
		{Timestamp: day1.Add(13 * time.Hour), Sender: "Mario", Body: "pranzo?"},
		{Timestamp: day1.Add(13*time.Hour + time.Minute), Sender: "Luca", IsMedia: true, Body: "<media omessi>"},
		{Timestamp: day1.Add(19 * time.Hour), Sender: "Luca", Body: "cena"},
		{Timestamp: day2.Add(23 * time.Hour), Sender: "Giulia", Body: "notte"},
	}
	res := aggregate(messages...)

	total := 0
	for _, u := range res.UserStats {
		total += u.MessageCount
	}
	req.Equal(res.TotalMessages, total)
	req.Equal(res.TotalMessages, res.TimeOfDayStats.Total())
	req.Equal(len(messages), res.TotalMessages+res.MediaCount)
	req.Equal(TimeOfDayStats{Morning: 1, Afternoon: 1, Evening: 1, Night: 2}, res.TimeOfDayStats)
	req.Equal(DayCount{Date: "2024-07-25", Count: 4}, res.DayWithMostMessages)
}

func TestAggregator_Reset(t *testing.T) {
	req := require.New(t)

	agg := NewAggregator()
	agg.Process(msg(0, "Mario", "ciao"))
	agg.Process(msg(time.Second, "Giulia", "ciao"))
	agg.Reset()

	res := agg.Finalize()
	req.Equal(0, res.TotalMessages)
	req.Empty(res.UserStats)
	req.Equal(0.0, res.AverageResponseTime)

	agg.Process(msg(time.Hour, "Giulia", "eccomi"))
	req.Empty(agg.Accumulators().Latencies)
}
