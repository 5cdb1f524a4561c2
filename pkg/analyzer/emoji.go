package analyzer

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/forPelevin/gomoji"
)

// Emojis segments body into grapheme clusters and returns every cluster that
// is a fully qualified emoji, in order. A skin-toned or ZWJ-joined sequence is
// one emoji, as is a flag or a keycap.
func Emojis(body string) []string {
	var found []string
	clusters := graphemes.FromString(body)
	for clusters.Next() {
		if c := clusters.Value(); isEmoji(c) {
			found = append(found, c)
		}
	}
	return found
}

// isEmoji looks the whole cluster up in the Unicode emoji dataset. Text-default
// symbols such as a bare heart or digit are absent from it until U+FE0F or a
// keycap mark makes them emoji.
func isEmoji(cluster string) bool {
	_, err := gomoji.GetInfo(cluster)
	return err == nil
}
