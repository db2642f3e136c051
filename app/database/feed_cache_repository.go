package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// FeedCacheRepository handles the feed_cache table
type FeedCacheRepository struct {
	db  *DB
	ttl time.Duration
	now func() time.Time
}

func NewFeedCacheRepository(db *DB, ttl time.Duration) *FeedCacheRepository {
	return &FeedCacheRepository{db: db, ttl: ttl, now: time.Now}
}

// GetFeedData returns the cached body for feedURL if it is younger than the TTL.
func (r *FeedCacheRepository) GetFeedData(feedURL string) (string, bool, error) {
	var body string
	var fetchedAt int64

	err := r.db.QueryRow(`
		SELECT body, fetched_at
		FROM feed_cache
		WHERE url = ?
	`, feedURL).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cached feed: %w", err)
	}

	if r.now().Sub(time.Unix(fetchedAt, 0)) >= r.ttl {
		return "", false, nil
	}

	return body, true, nil
}

func (r *FeedCacheRepository) SetFeedData(feedURL, body string) error {
	_, err := r.db.Exec(`
		INSERT INTO feed_cache (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at
	`, feedURL, body, r.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to cache feed: %w", err)
	}

	return nil
}

// DeleteExpired removes entries older than the TTL and returns how many went.
func (r *FeedCacheRepository) DeleteExpired() (int64, error) {
	cutoff := r.now().Add(-r.ttl).Unix()

	result, err := r.db.Exec(`DELETE FROM feed_cache WHERE fetched_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired feeds: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted feeds: %w", err)
	}

	return count, nil
}
