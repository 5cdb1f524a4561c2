package analyzer

import "time"

// Accumulators is the running state of one aggregation pass. Every analysis
// owns its own value; nothing is shared between passes.
type Accumulators struct {
	// Total counts non-media messages.
	Total int

	// Media counts media placeholders.
	Media int

	// Users holds per-sender counters.
	Users map[string]*UserStats

	// TimeOfDay counts messages per bucket.
	TimeOfDay TimeOfDayStats

	// Days counts messages per local calendar date.
	Days *FrequencyTable

	// Words counts qualifying tokens.
	Words *FrequencyTable

	// Emoji counts emoji grapheme clusters.
	Emoji *FrequencyTable

	// Latencies are the accepted response-latency samples, in seconds.
	Latencies []float64

	// lastSeen is the timestamp of each sender's latest non-media message.
	lastSeen map[string]time.Time
}

// NewAccumulators returns empty accumulators.
func NewAccumulators() *Accumulators {
	return &Accumulators{
		Users:    make(map[string]*UserStats),
		Days:     NewFrequencyTable(),
		Words:    NewFrequencyTable(),
		Emoji:    NewFrequencyTable(),
		lastSeen: make(map[string]time.Time),
	}
}

func (a *Accumulators) user(sender string) *UserStats {
	u, ok := a.Users[sender]
	if !ok {
		u = &UserStats{}
		a.Users[sender] = u
	}
	return u
}

// lastFromOthers returns the latest timestamp recorded for any sender other
// than sender.
func (a *Accumulators) lastFromOthers(sender string) (time.Time, bool) {
	var latest time.Time
	found := false
	for s, ts := range a.lastSeen {
		if s == sender {
			continue
		}
		if !found || ts.After(latest) {
			latest, found = ts, true
		}
	}
	return latest, found
}
