package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/lysyi3m/rss-digest/app/health"
	"github.com/lysyi3m/rss-digest/app/news"
)

const zeroItemsReason = "0 items"

// Result is the aggregated outcome of one collection run.
type Result struct {
	Items    []news.NewsItem
	Invalid  []news.InvalidSourceRecord
	Statuses health.StatusMap
	// HealthTracked is false when the tracker was bypassed and Statuses must
	// not be persisted.
	HealthTracked bool
}

type sourceResult struct {
	items   []news.NewsItem
	record  *news.InvalidSourceRecord
	status  health.Status
	tracked bool
}

type Collector struct {
	fetcher     *Fetcher
	parser      *Parser
	extractor   *ContentExtractor
	cache       database.FeedCache
	tracker     *health.Tracker
	workerCount int
	logger      *slog.Logger
	now         func() time.Time
}

type CollectorOption func(*Collector)

// WithCache makes the collector consult cache before the network.
func WithCache(cache database.FeedCache) CollectorOption {
	return func(c *Collector) { c.cache = cache }
}

func WithTracker(tracker *health.Tracker) CollectorOption {
	return func(c *Collector) { c.tracker = tracker }
}

// WithWorkerCount bounds concurrent sources. Zero means one goroutine per source.
func WithWorkerCount(n int) CollectorOption {
	return func(c *Collector) { c.workerCount = n }
}

func WithClock(now func() time.Time) CollectorOption {
	return func(c *Collector) { c.now = now }
}

func NewCollector(fetcher *Fetcher, logger *slog.Logger, opts ...CollectorOption) *Collector {
	c := &Collector{
		fetcher:   fetcher,
		parser:    NewParser(),
		extractor: NewContentExtractor(fetcher, logger),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) healthEnabled() bool {
	return c.tracker != nil && c.tracker.Enabled()
}

// Run collects today's entries from every enabled source. statuses is not
// modified; the updated map is returned in the Result.
func (c *Collector) Run(ctx context.Context, sources []config.Source, statuses health.StatusMap) Result {
	now := c.now()

	results := make([]sourceResult, len(sources))

	var sem chan struct{}
	if c.workerCount > 0 {
		sem = make(chan struct{}, c.workerCount)
	}

	var wg sync.WaitGroup
	for i, source := range sources {
		if !source.IsEnabled() {
			c.logger.Debug("Source disabled in configuration", "source", source.Name)
			continue
		}

		wg.Add(1)
		go func(i int, source config.Source, status health.Status) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[i] = c.collectSource(ctx, source, status, now)
		}(i, source, statuses[source.URL])
	}
	wg.Wait()

	result := Result{
		Items:         []news.NewsItem{},
		Invalid:       []news.InvalidSourceRecord{},
		Statuses:      make(health.StatusMap, len(statuses)),
		HealthTracked: c.healthEnabled(),
	}
	for url, status := range statuses {
		result.Statuses[url] = status
	}

	for i, r := range results {
		result.Items = append(result.Items, r.items...)
		if r.record != nil {
			result.Invalid = append(result.Invalid, *r.record)
		}
		if r.tracked {
			result.Statuses[sources[i].URL] = r.status
		}
	}

	c.logger.Info("Collection finished",
		"sources", len(sources),
		"items", len(result.Items),
		"invalid", len(result.Invalid))

	return result
}

func (c *Collector) collectSource(ctx context.Context, source config.Source, status health.Status, now time.Time) sourceResult {
	result := sourceResult{status: status}

	if c.healthEnabled() {
		result.tracked = true

		outcome := c.tracker.Evaluate(ctx, source, status, now)
		result.status = outcome.Status
		result.record = outcome.Record
		if !outcome.Proceed {
			return result
		}
	}

	items, err := c.fetchItems(ctx, source, now)
	if err != nil {
		c.logger.Error("Failed to process source", "source", source.Name, "url", source.URL, "error", err)
		if result.tracked {
			result.status = health.RecordFailure(result.status)
		}
		record := news.NewInvalidSourceRecord(source.Name, source.URL, err.Error(), now)
		result.record = &record
		return result
	}

	if len(items) == 0 {
		record := news.NewInvalidSourceRecord(source.Name, source.URL, zeroItemsReason, now)
		result.record = &record
		return result
	}

	c.logger.Info("Source collected", "source", source.Name, "items", len(items))
	result.items = items
	return result
}

func (c *Collector) fetchItems(ctx context.Context, source config.Source, now time.Time) ([]news.NewsItem, error) {
	data, err := c.load(ctx, source)
	if err != nil {
		return nil, err
	}

	data, corrected, err := NormalizeEncoding(data)
	if err != nil {
		return nil, err
	}
	if corrected {
		c.logger.Info("Feed encoding corrected", "source", source.Name, "from", "windows-1252")
	}

	parsed, err := c.parser.Run(data)
	if err != nil {
		return nil, err
	}

	today := now.UTC().Format(news.DateLayout)
	collectedAt := now.Format(news.CollectedAtLayout)

	items := make([]news.NewsItem, 0, len(parsed))
	for _, entry := range parsed {
		if entry.PublishedAt == nil {
			c.logger.Debug("Entry without publication date dropped", "source", source.Name, "title", entry.Title)
			continue
		}
		if entry.PublishedAt.UTC().Format(news.DateLayout) != today {
			c.logger.Debug("Entry not from today dropped", "source", source.Name, "title", entry.Title, "published", entry.Published)
			continue
		}

		item := news.NewsItem{
			Title:       entry.Title,
			Link:        entry.Link,
			Description: entry.Description,
			Content:     entry.Content,
			Published:   entry.Published,
			Source:      source.Name,
			Category:    source.Category,
			CollectedAt: collectedAt,
		}

		if item.Content == "" && source.ExtractContent && item.Link != "" {
			content, err := c.extractor.Extract(ctx, item.Link)
			if err != nil {
				c.logger.Warn("Content extraction failed", "source", source.Name, "link", item.Link, "error", err)
			} else {
				item.Content = content
			}
		}
		if item.Content == "" {
			item.Content = item.Description
		}

		items = append(items, item)
	}

	return items, nil
}

// load returns the feed body from the cache when fresh, otherwise from the
// network. Cache errors only cost a network round trip.
func (c *Collector) load(ctx context.Context, source config.Source) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.GetFeedData(source.URL)
		if err != nil {
			c.logger.Warn("Cache lookup failed", "source", source.Name, "error", err)
		} else if ok {
			c.logger.Info("Feed served from cache", "source", source.Name)
			return []byte(body), nil
		}
	}

	c.logger.Info("Fetching feed", "source", source.Name, "url", source.URL)
	data, err := c.fetcher.Run(ctx, source.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.SetFeedData(source.URL, string(data)); err != nil {
			c.logger.Warn("Cache store failed", "source", source.Name, "error", err)
		}
	}

	return data, nil
}
