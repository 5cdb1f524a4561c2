package parser

import (
	"strings"

	"github.com/ccollicutt/chatwrapped/pkg/detector"
)

// ParseLine extracts the fields of one line using the given grammar.
// Content lines need a non-empty sender and body; anything else that carries the
// grammar's date/time prefix is a system line.
func ParseLine(line string, g *detector.Grammar) (Fields, LineKind) {
	line = detector.Sanitize(line)

	if m := g.Pattern.FindStringSubmatch(line); m != nil {
		f := Fields{
			Date:   m[1],
			Time:   m[2],
			Sender: strings.TrimSpace(m[3]),
			Body:   strings.TrimSpace(m[4]),
		}
		if f.Sender == "" || f.Body == "" {
			return Fields{}, LineUnparsed
		}
		return f, LineContent
	}

	if m := g.SystemPattern.FindStringSubmatch(line); m != nil {
		return Fields{
			Date: m[1],
			Time: m[2],
			Body: strings.TrimSpace(m[3]),
		}, LineSystem
	}

	return Fields{}, LineUnparsed
}
