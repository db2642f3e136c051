package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/rss-digest/app/cfg"
	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/lysyi3m/rss-digest/app/health"
	"github.com/lysyi3m/rss-digest/app/news"
	"github.com/lysyi3m/rss-digest/app/publish"
)

// Runtime holds the dependencies shared by every stage.
type Runtime struct {
	Cfg         *cfg.Cfg
	Config      *config.Loader
	Store       *news.Store
	HealthStore health.Store
	Cache       database.FeedCache
	HTTPClient  *http.Client
	Uploader    publish.Uploader
	Logger      *slog.Logger
	Now         func() time.Time

	closers []func() error
}

// NewRuntime wires the process configuration into stage dependencies. The
// feed cache and the bucket uploader are optional and degrade to nil.
func NewRuntime(ctx context.Context, c *cfg.Cfg, logger *slog.Logger) (*Runtime, error) {
	loader := config.NewLoader(c.ConfigDir, logger)

	rt := &Runtime{
		Cfg:         c,
		Config:      loader,
		Store:       news.NewStore(c.OutputDir),
		HealthStore: health.NewFileStore(loader.HealthStatusPath()),
		HTTPClient:  &http.Client{},
		Logger:      logger,
		Now:         time.Now,
	}

	if c.CachePath != "" && c.CacheTTL > 0 {
		cache, db, err := openFeedCache(c.CachePath, c.CacheTTL, logger)
		if err != nil {
			logger.Warn("Feed cache unavailable, fetching without cache", "path", c.CachePath, "error", err)
		} else {
			rt.Cache = cache
			rt.closers = append(rt.closers, db.Close)
		}
	}

	if c.PagesBucket != "" {
		uploader, err := publish.NewGCSUploader(ctx, c.PagesBucket, c.GCSCredentialsFile)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to initialize publisher: %w", err)
		}
		rt.Uploader = uploader
		rt.closers = append(rt.closers, uploader.Close)
	}

	return rt, nil
}

func openFeedCache(path string, ttl time.Duration, logger *slog.Logger) (*database.FeedCacheRepository, *database.DB, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, nil, err
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Debug("Feed cache ready", "path", path, "migration_version", version, "dirty", dirty)

	repo := database.NewFeedCacheRepository(db, ttl)
	if deleted, err := repo.DeleteExpired(); err != nil {
		logger.Warn("Failed to prune feed cache", "error", err)
	} else if deleted > 0 {
		logger.Debug("Feed cache pruned", "deleted", deleted)
	}

	return repo, db, nil
}

// Close releases the cache database and the storage client.
func (rt *Runtime) Close() error {
	var firstErr error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	rt.closers = nil
	return firstErr
}
