package analyzer

import (
	"sort"

	"github.com/samber/lo"
)

// Entry is one key of a FrequencyTable with its count.
type Entry struct {
	Key   string
	Count int
}

// FrequencyTable counts string keys and remembers the order in which each key
// was first seen. Reductions break ties by that order.
type FrequencyTable struct {
	index  map[string]int
	keys   []string
	counts []int
}

// NewFrequencyTable creates an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{index: make(map[string]int)}
}

// Add increments key by one.
func (t *FrequencyTable) Add(key string) {
	t.AddN(key, 1)
}

// AddN increments key by n.
func (t *FrequencyTable) AddN(key string, n int) {
	i, ok := t.index[key]
	if !ok {
		i = len(t.keys)
		t.index[key] = i
		t.keys = append(t.keys, key)
		t.counts = append(t.counts, 0)
	}
	t.counts[i] += n
}

// Count returns the count for key, 0 if never added.
func (t *FrequencyTable) Count(key string) int {
	if i, ok := t.index[key]; ok {
		return t.counts[i]
	}
	return 0
}

// Len returns the number of distinct keys.
func (t *FrequencyTable) Len() int {
	return len(t.keys)
}

// Max returns the key with the highest count. On ties the key inserted first
// wins. An empty table yields ("", 0).
func (t *FrequencyTable) Max() (string, int) {
	best, bestCount := "", 0
	for i, key := range t.keys {
		if t.counts[i] > bestCount {
			best, bestCount = key, t.counts[i]
		}
	}
	return best, bestCount
}

// Top returns up to n entries by count descending, ties in insertion order.
func (t *FrequencyTable) Top(n int) []Entry {
	entries := lo.Map(t.keys, func(key string, i int) Entry {
		return Entry{Key: key, Count: t.counts[i]}
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
