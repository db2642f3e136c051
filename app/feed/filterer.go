package feed

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/news"
)

const (
	titleWeight       = 0.7
	descriptionWeight = 0.2
	contentWeight     = 0.1
)

// Filterer scores items against the include keywords, drops excluded and
// irrelevant ones and sorts the rest by descending score.
type Filterer struct {
	include   []string
	exclude   []string
	mode      config.ScoringMode
	threshold float64
}

func NewFilterer(keywords config.Keywords) *Filterer {
	return &Filterer{
		include:   foldAll(keywords.Include),
		exclude:   foldAll(keywords.Exclude),
		mode:      keywords.Mode(),
		threshold: keywords.Threshold(),
	}
}

func (f *Filterer) Run(items []news.NewsItem) []news.NewsItem {
	if len(items) == 0 {
		return []news.NewsItem{}
	}
	if len(f.include) == 0 {
		return items
	}

	filtered := make([]news.NewsItem, 0, len(items))
	for _, item := range items {
		if f.isExcluded(item) {
			continue
		}

		score := f.score(item)
		if !f.keep(score) {
			continue
		}

		item.MatchScore = &score
		filtered = append(filtered, item)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score() > filtered[j].Score()
	})

	return filtered
}

func (f *Filterer) keep(score float64) bool {
	if f.mode == config.ScoringPresence {
		return score > 0
	}
	return score > 0 && score >= f.threshold
}

func (f *Filterer) isExcluded(item news.NewsItem) bool {
	if len(f.exclude) == 0 {
		return false
	}

	// Fields are matched one at a time so a phrase cannot span two of them.
	for _, field := range []string{item.Title, item.Description, item.Content} {
		text := fold(field)
		for _, keyword := range f.exclude {
			if strings.Contains(text, keyword) {
				return true
			}
		}
	}
	return false
}

func (f *Filterer) score(item news.NewsItem) float64 {
	return titleWeight*f.fieldMatch(item.Title) +
		descriptionWeight*f.fieldMatch(item.Description) +
		contentWeight*f.fieldMatch(item.Content)
}

// fieldMatch is in [0, 1]. In presence mode it is 1 when any keyword occurs;
// otherwise it is keyword occurrences per word, capped at 1.
func (f *Filterer) fieldMatch(value string) float64 {
	text := fold(news.StripHTML(value))
	if text == "" {
		return 0
	}

	if f.mode == config.ScoringPresence {
		for _, keyword := range f.include {
			if strings.Contains(text, keyword) {
				return 1
			}
		}
		return 0
	}

	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}

	occurrences := 0
	for _, keyword := range f.include {
		occurrences += strings.Count(text, keyword)
	}

	return min(1, float64(occurrences)/float64(words))
}

// fold applies Unicode case folding. A Caser is not safe for concurrent use,
// so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func foldAll(keywords []string) []string {
	folded := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword = fold(strings.TrimSpace(keyword)); keyword != "" {
			folded = append(folded, keyword)
		}
	}
	return folded
}
