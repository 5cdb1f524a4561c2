package analyzer

import (
	"testing"
	"time"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Night},
		{5, Night},
		{6, Morning},
		{11, Morning},
		{12, Afternoon},
		{17, Afternoon},
		{18, Evening},
		{21, Evening},
		{22, Night},
		{23, Night},
	}

	for _, tt := range tests {
		ts := time.Date(2024, 7, 25, tt.hour, 59, 59, 0, time.UTC)
		if got := Bucket(ts); got != tt.want {
			t.Errorf("Bucket(%02d:59:59) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestBucket_EveryHourHasExactlyOneBucket(t *testing.T) {
	var stats TimeOfDayStats
	for h := 0; h < 24; h++ {
		stats.Add(Bucket(time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC)))
	}
	if stats.Total() != 24 {
		t.Errorf("Total() = %d, want 24", stats.Total())
	}
	want := TimeOfDayStats{Morning: 6, Afternoon: 6, Evening: 4, Night: 8}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if got := stats.Busiest(); got != Night {
		t.Errorf("Busiest() = %v, want %v", got, Night)
	}
}

func TestTimeOfDayStats_BusiestTieGoesToEarlierBucket(t *testing.T) {
	stats := TimeOfDayStats{Morning: 3, Evening: 3}
	if got := stats.Busiest(); got != Morning {
		t.Errorf("Busiest() = %v, want %v", got, Morning)
	}
}

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	ts := time.Date(2024, 7, 25, 0, 30, 0, 0, loc)
	if got := DayKey(ts); got != "2024-07-25" {
		t.Errorf("DayKey() = %q, want %q", got, "2024-07-25")
	}
}
