package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Parser is safe for concurrent use. A gofeed.Parser lazily assigns its
// translators and keeps per-parse state, so each Run gets its own.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run parses RSS, Atom or JSON feed data. Items keep feed order.
func (p *Parser) Run(data []byte) ([]Item, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, p.normalizeItem(item))
	}

	return items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	normalized := Item{
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Description: item.Description,
		Content:     item.Content,
		Published:   item.Published,
	}

	// Atom entries often carry only <updated>.
	switch {
	case item.PublishedParsed != nil:
		normalized.PublishedAt = item.PublishedParsed
	case item.UpdatedParsed != nil:
		normalized.PublishedAt = item.UpdatedParsed
		if normalized.Published == "" {
			normalized.Published = item.Updated
		}
	}

	return normalized
}
