package render

import (
	"fmt"
	"strings"

	"github.com/lysyi3m/rss-digest/app/news"
)

const (
	descriptionLimit = 300

	untitled      = "Untitled"
	unknownSource = "Unknown source"
	uncategorized = "Uncategorized"
	missingDate   = "Date missing"
	missingLink   = "#"
)

// Entry is the display form of a news item shared by all renderers.
type Entry struct {
	Title       string
	Link        string
	Description string
	Published   string
	Source      string
	Category    string
	Score       string
}

func newEntry(item news.NewsItem) Entry {
	entry := Entry{
		Title:       news.StripHTML(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Description: news.Truncate(news.StripHTML(item.Description), descriptionLimit),
		Published:   missingDate,
		Source:      item.Source,
		Category:    item.Category,
	}

	if entry.Title == "" {
		entry.Title = untitled
	}
	if entry.Link == "" {
		entry.Link = missingLink
	}
	if strings.TrimSpace(item.Published) != "" {
		entry.Published = news.FormatDate(item.Published)
	}
	if entry.Source == "" {
		entry.Source = unknownSource
	}
	if entry.Category == "" {
		entry.Category = uncategorized
	}
	if item.MatchScore != nil {
		entry.Score = fmt.Sprintf("%.3f", *item.MatchScore)
	}

	return entry
}
