package database

// FeedCache stores raw feed bodies keyed by feed URL.
type FeedCache interface {
	GetFeedData(feedURL string) (string, bool, error)
	SetFeedData(feedURL, body string) error
}

var (
	_ FeedCache = (*FeedCacheRepository)(nil)
	_ FeedCache = (*MemoryFeedCache)(nil)
)
