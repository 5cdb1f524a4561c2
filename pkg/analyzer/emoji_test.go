package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmojis(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "no emoji", body: "ciao a tutti", want: nil},
		{name: "single", body: "ciao 😂", want: []string{"😂"}},
		{name: "repeated", body: "😂😂", want: []string{"😂", "😂"}},
		{name: "skin tone is one emoji", body: "👍🏽", want: []string{"👍🏽"}},
		{name: "zwj family is one emoji", body: "👨\u200d👩\u200d👧", want: []string{"👨\u200d👩\u200d👧"}},
		{name: "flag is one emoji", body: "forza 🇮🇹!", want: []string{"🇮🇹"}},
		{name: "keycap", body: "1\ufe0f\u20e3 posto", want: []string{"1\ufe0f\u20e3"}},
		{name: "digits alone are not emoji", body: "ore 12 #1", want: nil},
		{name: "text heart needs variation selector", body: "❤", want: nil},
		{name: "emoji heart", body: "❤\ufe0f", want: []string{"❤\ufe0f"}},
		{name: "default emoji presentation", body: "\u26a1 \u2705", want: []string{"\u26a1", "\u2705"}},
		{name: "toned zwj sequence", body: "\U0001f469\U0001f3fd\u200d\U0001f4bb ok", want: []string{"\U0001f469\U0001f3fd\u200d\U0001f4bb"}},
		{name: "supplemental symbols", body: "🥳🫠", want: []string{"🥳", "🫠"}},
		{name: "copyright sign is text", body: "© 2024", want: nil},
		{name: "mixed", body: "👋 ciao!😘", want: []string{"👋", "😘"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Emojis(tt.body))
		})
	}
}
