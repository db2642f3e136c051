package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/lysyi3m/rss-digest/app/news"
)

type FilterTask struct {
	Task
	rt *Runtime
}

func NewFilterTask(rt *Runtime) *FilterTask {
	return &FilterTask{
		Task: NewTask(TaskTypeFilter),
		rt:   rt,
	}
}

func (t *FilterTask) Execute(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	raw, err := t.rt.loadItems(news.RawNewsFile)
	if err != nil {
		return err
	}

	// A malformed keyword file would let everything through, so it is fatal
	// here while the renderers only degrade.
	keywords, err := t.rt.Config.LoadKeywords()
	if errors.Is(err, config.ErrNotFound) {
		t.rt.Logger.Warn("No keywords configured, keeping all items", "dir", t.rt.Config.Dir())
	} else if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}

	filtered := feed.NewFilterer(keywords).Run(raw)

	if err := t.rt.Store.SaveItems(news.FilteredNewsFile, filtered); err != nil {
		return fmt.Errorf("failed to save filtered news: %w", err)
	}

	summary := news.BuildSummary(raw, filtered, keywords.Include, t.rt.Now())
	if err := t.rt.Store.SaveSummary(summary); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	t.rt.Logger.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"total", len(raw),
		"kept", len(filtered),
		"mode", string(keywords.Mode()))

	return nil
}
