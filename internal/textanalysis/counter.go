package textanalysis

import (
	"sort"

	"wordflow/pkg/models"
)

// Count builds a frequency table for the given words. Entries are ordered
// ascending by word text so that repeated runs over the same input produce
// identical output; map iteration order is never exposed.
func Count(words []string) []models.WordEntry {
	if len(words) == 0 {
		return []models.WordEntry{}
	}

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	entries := make([]models.WordEntry, 0, len(counts))
	for word, count := range counts {
		entries = append(entries, models.WordEntry{Text: word, UsageCount: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Text < entries[j].Text
	})
	return entries
}

// MostCommon returns the n highest-frequency entries, ties broken by word
// text ascending. n <= 0 or n beyond the number of unique words returns all.
func MostCommon(words []string, n int) []models.WordEntry {
	entries := Count(words)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].UsageCount != entries[j].UsageCount {
			return entries[i].UsageCount > entries[j].UsageCount
		}
		return entries[i].Text < entries[j].Text
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// ByMinFrequency returns entries occurring at least minFreq times, ordered by
// count descending then word text ascending.
func ByMinFrequency(words []string, minFreq int) []models.WordEntry {
	filtered := make([]models.WordEntry, 0)
	for _, e := range Count(words) {
		if e.UsageCount >= minFreq {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].UsageCount != filtered[j].UsageCount {
			return filtered[i].UsageCount > filtered[j].UsageCount
		}
		return filtered[i].Text < filtered[j].Text
	})
	return filtered
}
