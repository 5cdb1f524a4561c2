package analyzer

import "time"

// Bucket returns the time-of-day bucket for the hour of t in t's location.
func Bucket(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return Morning
	case h >= 12 && h < 18:
		return Afternoon
	case h >= 18 && h < 22:
		return Evening
	default:
		return Night
	}
}

// DayKey returns the ISO calendar date of t in t's location.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
