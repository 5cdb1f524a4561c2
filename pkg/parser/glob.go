package parser

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
)

// ExpandGlobs expands export paths and glob patterns into a sorted, deduplicated
// list. A pattern with no matches is kept as a literal path so the caller can
// report a file-not-found error for it.
func ExpandGlobs(patterns []string) ([]string, error) {
	var result []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		result = append(result, matches...)
	}

	result = lo.Uniq(result)
	sort.Strings(result)

	return result, nil
}
