package news

import (
	"time"
)

// NewsItem is a single same-day feed entry as written to raw_news.json and
// filtered_news.json.
type NewsItem struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Published   string   `json:"published"` // raw date string from the feed
	Source      string   `json:"source"`
	Category    string   `json:"category"`
	CollectedAt string   `json:"collected_at"`
	MatchScore  *float64 `json:"match_score,omitempty"`
}

// Score returns the relevance score, or 0 for items that were never scored.
func (n NewsItem) Score() float64 {
	if n.MatchScore == nil {
		return 0
	}
	return *n.MatchScore
}

type InvalidSourceRecord struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

func NewInvalidSourceRecord(name, url, reason string, at time.Time) InvalidSourceRecord {
	return InvalidSourceRecord{
		Name:      name,
		URL:       url,
		Reason:    reason,
		Timestamp: at.Format(time.RFC3339),
	}
}

// Summary is the digest written to summary.json and posted by the notifier.
type Summary struct {
	Date           string   `json:"date"`
	TotalCollected int      `json:"total_collected"`
	FilteredCount  int      `json:"filtered_count"`
	Sources        []string `json:"sources"`
	Keywords       []string `json:"keywords"`
	GeneratedAt    string   `json:"generated_at"`
}

const (
	CollectedAtLayout = "2006-01-02 15:04:05"
	DateLayout        = "2006-01-02"
)
