package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeExports(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("chat"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	writeExports(t, dir, "WhatsApp Chat - Famiglia.txt", "WhatsApp Chat - Calcetto.zip", "notes.md")

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "single file",
			patterns: []string{filepath.Join(dir, "notes.md")},
			want:     []string{filepath.Join(dir, "notes.md")},
		},
		{
			name:     "glob over exports",
			patterns: []string{filepath.Join(dir, "WhatsApp Chat - *")},
			want: []string{
				filepath.Join(dir, "WhatsApp Chat - Calcetto.zip"),
				filepath.Join(dir, "WhatsApp Chat - Famiglia.txt"),
			},
		},
		{
			name: "overlapping patterns are deduplicated",
			patterns: []string{
				filepath.Join(dir, "*.txt"),
				filepath.Join(dir, "WhatsApp Chat - Famiglia.txt"),
			},
			want: []string{filepath.Join(dir, "WhatsApp Chat - Famiglia.txt")},
		},
		{
			name:     "no match is kept as a literal",
			patterns: []string{filepath.Join(dir, "*.nonexistent")},
			want:     []string{filepath.Join(dir, "*.nonexistent")},
		},
		{
			name:     "empty input",
			patterns: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandGlobs(tt.patterns)
			if err != nil {
				t.Fatalf("ExpandGlobs() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ExpandGlobs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExpandGlobs()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExpandGlobs_Sorted(t *testing.T) {
	dir := t.TempDir()
	writeExports(t, dir, "c.txt", "a.txt", "b.txt")

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	for i := 1; i < len(result); i++ {
		if result[i-1] > result[i] {
			t.Errorf("ExpandGlobs() result not sorted: %v", result)
			break
		}
	}
}

func TestExpandGlobs_InvalidPattern(t *testing.T) {
	if _, err := ExpandGlobs([]string{"[invalid"}); err == nil {
		t.Error("ExpandGlobs() expected error for invalid pattern")
	}
}
