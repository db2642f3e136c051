package render

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/lysyi3m/rss-digest/app/news"
)

// Group is a named section of items.
type Group struct {
	Name  string
	Items []news.NewsItem
}

// GroupByKeyword puts each item into every keyword group it mentions in its
// title, description or content. Empty groups are dropped; larger groups come
// first and equal sizes keep keyword order.
func GroupByKeyword(items []news.NewsItem, keywords []string) []Group {
	groups := make([]Group, 0, len(keywords))
	for _, keyword := range keywords {
		needle := cases.Fold().String(strings.TrimSpace(keyword))
		if needle == "" {
			continue
		}

		group := Group{Name: keyword}
		for _, item := range items {
			if mentions(item, needle) {
				group.Items = append(group.Items, item)
			}
		}
		if len(group.Items) > 0 {
			groups = append(groups, group)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Items) > len(groups[j].Items)
	})

	return groups
}

// mentions matches each field separately so a phrase cannot span two fields.
func mentions(item news.NewsItem, needle string) bool {
	for _, field := range []string{item.Title, item.Description, item.Content} {
		if strings.Contains(cases.Fold().String(field), needle) {
			return true
		}
	}
	return false
}

// GroupBySource keeps items in order and sections them by source, in order of
// first appearance.
func GroupBySource(items []news.NewsItem) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, item := range items {
		name := item.Source
		if name == "" {
			name = unknownSource
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
