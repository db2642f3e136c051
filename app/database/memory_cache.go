package database

import (
	"sync"
	"time"
)

type memoryEntry struct {
	body      string
	fetchedAt time.Time
}

// MemoryFeedCache is a process-local FeedCache.
type MemoryFeedCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryFeedCache(ttl time.Duration) *MemoryFeedCache {
	return &MemoryFeedCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryFeedCache) GetFeedData(feedURL string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[feedURL]
	if !ok || c.now().Sub(entry.fetchedAt) >= c.ttl {
		return "", false, nil
	}
	return entry.body, true, nil
}

func (c *MemoryFeedCache) SetFeedData(feedURL, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[feedURL] = memoryEntry{body: body, fetchedAt: c.now()}
	return nil
}
