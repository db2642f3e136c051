package news

import (
	"sort"
	"time"
)

// BuildSummary counts raw and filtered items and lists the distinct sources
// that contributed to the filtered set.
func BuildSummary(raw, filtered []NewsItem, keywords []string, now time.Time) Summary {
	seen := make(map[string]bool)
	sources := make([]string, 0)
	for _, item := range filtered {
		source := item.Source
		if source == "" {
			source = "unknown"
		}
		if !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}
	sort.Strings(sources)

	if keywords == nil {
		keywords = []string{}
	}

	return Summary{
		Date:           now.Format(DateLayout),
		TotalCollected: len(raw),
		FilteredCount:  len(filtered),
		Sources:        sources,
		Keywords:       keywords,
		GeneratedAt:    now.Format(time.RFC3339),
	}
}

// DistinctSources counts the distinct source names in items.
func DistinctSources(items []NewsItem) int {
	seen := make(map[string]bool)
	for _, item := range items {
		seen[item.Source] = true
	}
	return len(seen)
}
