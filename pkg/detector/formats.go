package detector

import "regexp"

// Clock is the time-of-day convention a grammar uses.
type Clock int

const (
	// Clock24Hour is H:MM[:SS].
	Clock24Hour Clock = iota
	// Clock12Hour is H:MM[:SS] AM/PM.
	Clock12Hour
)

// String returns the clock name used in reports.
func (c Clock) String() string {
	switch c {
	case Clock12Hour:
		return "12h"
	default:
		return "24h"
	}
}

// Grammar describes one chat export line format.
type Grammar struct {
	Name             string         // Stable identifier
	Description      string         // Human-readable name
	Pattern          *regexp.Regexp // Content line: date, time, sender, body (set during init)
	PatternStr       string         // Content pattern string
	SystemPattern    *regexp.Regexp // System line: date/time prefix without sender (set during init)
	SystemPatternStr string         // System pattern string
	Clock            Clock          // Clock convention for the time field
	Examples         []string       // Example lines
}

// Shared fragments. Day and month are day-first and may be written without padding.
const (
	datePart   = `(\d{1,2}/\d{1,2}/(?:\d{2}|\d{4}))`
	time12Part = `(\d{1,2}:\d{2}(?::\d{2})?\s*[AaPp]\.?[Mm]\.?)`
	time24Part = `(\d{1,2}:\d{2}(?::\d{2})?)`
	time24Secs = `(\d{1,2}:\d{2}:\d{2})`
	senderBody = `\s*([^:]+):\s*(.*)$`
)

// DefaultGrammars returns the built-in grammars in detection order.
// More specific grammars come first: looser ones are often structural supersets.
// Add new export formats by appending; never edit existing entries.
func DefaultGrammars() []*Grammar {
	grammars := []*Grammar{
		// WhatsApp iOS, 12-hour clock
		{
			Name:             "ios-bracketed-12h",
			Description:      "WhatsApp iOS (bracketed, 12-hour)",
			PatternStr:       `^\[` + datePart + `,\s*` + time12Part + `\]` + senderBody,
			SystemPatternStr: `^\[` + datePart + `,\s*` + time12Part + `\]\s*(.*)$`,
			Clock:            Clock12Hour,
			Examples:         []string{"[25/07/24, 7:49:06 PM] Mario: Ciao a tutti"},
		},
		// WhatsApp iOS, 24-hour clock with seconds
		{
			Name:             "ios-bracketed-24h",
			Description:      "WhatsApp iOS (bracketed, 24-hour with seconds)",
			PatternStr:       `^\[` + datePart + `,\s*` + time24Secs + `\]` + senderBody,
			SystemPatternStr: `^\[` + datePart + `,\s*` + time24Secs + `\]\s*(.*)$`,
			Clock:            Clock24Hour,
			Examples:         []string{"[25/07/24, 19:49:06] Mario: Ciao a tutti"},
		},
		// WhatsApp Android, 12-hour clock
		{
			Name:             "android-dash-12h",
			Description:      "WhatsApp Android (dash-separated, 12-hour)",
			PatternStr:       `^` + datePart + `,\s*` + time12Part + `\s*-` + senderBody,
			SystemPatternStr: `^` + datePart + `,\s*` + time12Part + `\s*-\s*(.*)$`,
			Clock:            Clock12Hour,
			Examples:         []string{"22/10/23, 3:20 PM - Nico: Sto arrivando"},
		},
		// WhatsApp Android, 24-hour clock
		{
			Name:             "android-dash-24h",
			Description:      "WhatsApp Android (dash-separated, 24-hour)",
			PatternStr:       `^` + datePart + `,\s*` + time24Part + `\s*-` + senderBody,
			SystemPatternStr: `^` + datePart + `,\s*` + time24Part + `\s*-\s*(.*)$`,
			Clock:            Clock24Hour,
			Examples:         []string{"22/10/23, 15:20 - Nico: Sto arrivando"},
		},
	}

	// Compile all patterns
	for _, g := range grammars {
		g.Pattern = regexp.MustCompile(g.PatternStr)
		g.SystemPattern = regexp.MustCompile(g.SystemPatternStr)
	}

	return grammars
}

// Lookup returns the default grammar with the given name, or nil.
func Lookup(name string) *Grammar {
	for _, g := range DefaultGrammars() {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Matches reports whether the line is a content or system line of this grammar.
func (g *Grammar) Matches(line string) bool {
	return g.Pattern.MatchString(line) || g.SystemPattern.MatchString(line)
}
