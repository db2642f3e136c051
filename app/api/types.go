package api

import (
	"log/slog"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/health"
	"github.com/lysyi3m/rss-digest/app/news"
	"github.com/lysyi3m/rss-digest/app/tasks"
)

type Handler struct {
	store       *news.Store
	config      *config.Loader
	healthStore health.Store
	pagesDir    string
	scheduler   tasks.TaskSchedulerInterface
	version     string
	logger      *slog.Logger
}

// sourceInfo is one configured source joined with its tracked health.
type sourceInfo struct {
	Name     string         `json:"name"`
	URL      string         `json:"url"`
	Category string         `json:"category"`
	Enabled  bool           `json:"enabled"`
	Health   *health.Status `json:"health,omitempty"`
}
