package parser

import (
	"strings"
	"time"

	"github.com/ccollicutt/chatwrapped/pkg/detector"
)

// twoDigitPivot splits 2-digit years: values above it are 19xx, the rest 20xx.
const twoDigitPivot = 80

// ResolveTimestamp converts day-first date text (DD/MM/YY or DD/MM/YYYY) and time
// text (H:MM[:SS], with AM/PM for 12-hour grammars) into an instant in loc.
// It returns false for any non-numeric field or calendar-invalid value.
func ResolveTimestamp(dateText, timeText string, clock detector.Clock, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	year, month, day, ok := resolveDate(dateText)
	if !ok {
		return time.Time{}, false
	}

	hour, minute, second, ok := resolveClock(timeText, clock)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), true
}

func resolveDate(text string) (year, month, day int, ok bool) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	if day, ok = atoi(parts[0]); !ok {
		return 0, 0, 0, false
	}
	if month, ok = atoi(parts[1]); !ok {
		return 0, 0, 0, false
	}
	if year, ok = atoi(parts[2]); !ok {
		return 0, 0, 0, false
	}

	switch len(parts[2]) {
	case 2:
		if year > twoDigitPivot {
			year += 1900
		} else {
			year += 2000
		}
	case 4:
	default:
		return 0, 0, 0, false
	}

	if month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return 0, 0, 0, false
	}

	return year, month, day, true
}

func resolveClock(text string, clock detector.Clock) (hour, minute, second int, ok bool) {
	text = strings.TrimSpace(text)

	meridiem := ""
	if clock == detector.Clock12Hour {
		upper := strings.ToUpper(strings.ReplaceAll(text, ".", ""))
		switch {
		case strings.HasSuffix(upper, "AM"):
			meridiem = "AM"
		case strings.HasSuffix(upper, "PM"):
			meridiem = "PM"
		default:
			return 0, 0, 0, false
		}
		text = strings.TrimSpace(upper[:len(upper)-2])
	}

	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, false
	}

	if hour, ok = atoi(parts[0]); !ok {
		return 0, 0, 0, false
	}
	if minute, ok = atoi(parts[1]); !ok {
		return 0, 0, 0, false
	}
	if len(parts) == 3 {
		if second, ok = atoi(parts[2]); !ok {
			return 0, 0, 0, false
		}
	}

	if meridiem != "" {
		if hour < 1 || hour > 12 {
			return 0, 0, 0, false
		}
		switch {
		case meridiem == "PM" && hour != 12:
			hour += 12
		case meridiem == "AM" && hour == 12:
			hour = 0
		}
	}

	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, false
	}

	return hour, minute, second, true
}

// atoi parses a non-empty run of ASCII digits.
func atoi(s string) (int, bool) {
	if s == "" || len(s) > 4 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
