package analyzer

import (
	"strings"
	"unicode/utf8"
)

// minWordLength is the shortest cleaned token counted as a word.
const minWordLength = 3

// accented are the non-ASCII letters kept inside words.
const accented = "àèéìòù"

// Words splits a body on whitespace, lower-cases it and strips every character
// except ASCII word characters and accented vowels. Tokens shorter than three
// characters after cleaning are dropped. Duplicates are kept.
func Words(body string) []string {
	fields := strings.Fields(strings.ToLower(body))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Map(keepWordRune, f)
		if utf8.RuneCountInString(w) >= minWordLength {
			words = append(words, w)
		}
	}
	return words
}

func keepWordRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		return r
	case strings.ContainsRune(accented, r):
		return r
	default:
		return -1
	}
}
