// Package noise recognises message bodies that are not conversational content:
// exporter notices, media placeholders and invisible blank-line markers.
package noise

import (
	"fmt"
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Class is the outcome of classifying a message body.
type Class int

const (
	// ClassContent is genuine conversation text.
	ClassContent Class = iota

	// ClassMedia is a media placeholder; counted but excluded from text statistics.
	ClassMedia

	// ClassNotice is exporter boilerplate or a control-character marker; dropped.
	ClassNotice
)

// String returns the class name used in diagnostics.
func (c Class) String() string {
	switch c {
	case ClassMedia:
		return "media"
	case ClassNotice:
		return "notice"
	default:
		return "content"
	}
}

// DefaultNotices are dropped substrings (encryption and security-code boilerplate).
var DefaultNotices = []string{
	"i messaggi e le chiamate sono crittografati",
	"il tuo codice di sicurezza",
	"messages and calls are end-to-end encrypted",
	"your security code with",
	"security code changed",
}

// DefaultMediaPlaceholders mark omitted or attached media.
var DefaultMediaPlaceholders = []string{
	"<media omessi>",
	"<media omitted>",
	"<allegato:",
	"<attached:",
	"immagine omessa",
	"video omesso",
	"audio omesso",
	"sticker omesso",
	"gif omessa",
	"documento omesso",
	"image omitted",
	"video omitted",
	"audio omitted",
	"sticker omitted",
	"gif omitted",
	"document omitted",
}

// DefaultMarkers are bidi and zero-width characters some exporters use as
// blank-line markers. The emoji joiners U+200C and U+200D are not markers.
var DefaultMarkers = []string{
	"\u200b", "\u200e", "\u200f", "\ufeff",
	"\u202a", "\u202b", "\u202c", "\u202d", "\u202e",
	"\u2066", "\u2067", "\u2068", "\u2069",
}

// exactNotices are compared against the whole trimmed body.
var exactNotices = []string{"null"}

// Filter classifies message bodies with one Aho-Corasick pass.
type Filter struct {
	matcher *goahocorasick.Machine
	classes map[string]Class
	exact   map[string]Class
}

type settings struct {
	notices []string
	media   []string
}

// Option configures the Filter.
type Option func(*settings)

// WithNotices adds phrases that drop a message.
func WithNotices(phrases ...string) Option {
	return func(s *settings) {
		s.notices = append(s.notices, phrases...)
	}
}

// WithMediaPlaceholders adds phrases that mark a media message.
func WithMediaPlaceholders(phrases ...string) Option {
	return func(s *settings) {
		s.media = append(s.media, phrases...)
	}
}

// New builds a Filter from the default denylist plus any extra phrases.
// Matching is case-insensitive.
func New(opts ...Option) (*Filter, error) {
	s := &settings{
		notices: append(append([]string{}, DefaultNotices...), DefaultMarkers...),
		media:   append([]string{}, DefaultMediaPlaceholders...),
	}
	for _, opt := range opts {
		opt(s)
	}

	classes := make(map[string]Class, len(s.notices)+len(s.media))
	for _, p := range s.notices {
		if p = strings.ToLower(p); p != "" {
			classes[p] = ClassNotice
		}
	}
	// Media wins when a phrase is listed twice
	for _, p := range s.media {
		if p = strings.ToLower(p); p != "" {
			classes[p] = ClassMedia
		}
	}

	keys := lo.Keys(classes)
	sort.Strings(keys)
	patterns := lo.Map(keys, func(k string, _ int) []rune {
		return []rune(k)
	})

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("building noise matcher: %w", err)
	}

	exact := make(map[string]Class, len(exactNotices))
	for _, e := range exactNotices {
		exact[e] = ClassNotice
	}

	return &Filter{matcher: m, classes: classes, exact: exact}, nil
}

// MustNew is like New but panics on error. Intended for the default denylist.
func MustNew(opts ...Option) *Filter {
	f, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Classify returns the class of a message body. A media placeholder takes
// precedence over other hits in the same body.
func (f *Filter) Classify(body string) Class {
	lower := strings.ToLower(body)

	if c, ok := f.exact[strings.TrimSpace(lower)]; ok {
		return c
	}

	terms := f.matcher.MultiPatternSearch([]rune(lower), false)
	if len(terms) == 0 {
		return ClassContent
	}

	class := ClassContent
	for _, term := range terms {
		switch f.classes[string(term.Word)] {
		case ClassMedia:
			return ClassMedia
		case ClassNotice:
			class = ClassNotice
		}
	}
	return class
}
