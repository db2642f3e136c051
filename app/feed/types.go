package feed

import (
	"time"
)

// Item is a parsed feed entry before it is normalized to a news.NewsItem.
type Item struct {
	Title       string
	Link        string
	Description string
	Content     string
	Published   string // raw date string as it appears in the feed
	PublishedAt *time.Time
}
