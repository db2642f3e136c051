package tasks

import (
	"errors"
	"fmt"
	"os"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/news"
)

// loadItems treats a missing artifact as an empty list.
func (rt *Runtime) loadItems(name string) ([]news.NewsItem, error) {
	items, err := rt.Store.LoadItems(name)
	if errors.Is(err, os.ErrNotExist) {
		rt.Logger.Warn("Artifact not found, treating as empty", "file", rt.Store.Path(name))
		return []news.NewsItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return items, nil
}

// loadKeywords degrades to no keywords when the file is missing or unusable.
func (rt *Runtime) loadKeywords() config.Keywords {
	keywords, err := rt.Config.LoadKeywords()
	if errors.Is(err, config.ErrNotFound) {
		rt.Logger.Warn("No keywords configured", "dir", rt.Config.Dir())
		return config.Keywords{}
	}
	if err != nil {
		rt.Logger.Error("Failed to load keywords", "error", err)
		return config.Keywords{}
	}
	return keywords
}
