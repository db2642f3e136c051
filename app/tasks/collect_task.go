package tasks

import (
	"context"
	"fmt"

	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/lysyi3m/rss-digest/app/health"
	"github.com/lysyi3m/rss-digest/app/news"
)

type CollectTask struct {
	Task
	rt *Runtime
}

func NewCollectTask(rt *Runtime) *CollectTask {
	return &CollectTask{
		Task: NewTask(TaskTypeCollect),
		rt:   rt,
	}
}

func (t *CollectTask) Execute(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	sources, err := t.rt.Config.LoadSources()
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	policy, err := t.rt.Config.LoadHealthCheckPolicy()
	if err != nil {
		return fmt.Errorf("failed to load health-check policy: %w", err)
	}

	statuses := make(health.StatusMap)
	if policy.Enabled {
		statuses, err = t.rt.HealthStore.Load()
		if err != nil {
			return err
		}
	}

	c := t.rt.Cfg
	fetcher := feed.NewFetcher(t.rt.HTTPClient, c.UserAgent, c.FetchTimeout)
	prober := health.NewHTTPProber(t.rt.HTTPClient, c.UserAgent)

	opts := []feed.CollectorOption{
		feed.WithTracker(health.NewTracker(policy, prober, t.rt.Logger)),
		feed.WithWorkerCount(c.WorkerCount),
		feed.WithClock(t.rt.Now),
	}
	if t.rt.Cache != nil {
		opts = append(opts, feed.WithCache(t.rt.Cache))
	}

	result := feed.NewCollector(fetcher, t.rt.Logger, opts...).Run(ctx, sources, statuses)

	if err := t.rt.Store.SaveItems(news.RawNewsFile, result.Items); err != nil {
		return fmt.Errorf("failed to save raw news: %w", err)
	}
	if err := t.rt.Store.SaveInvalidSources(result.Invalid); err != nil {
		return fmt.Errorf("failed to save invalid sources: %w", err)
	}
	if result.HealthTracked {
		if err := t.rt.HealthStore.Save(result.Statuses); err != nil {
			return err
		}
	}

	t.rt.Logger.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"sources", len(sources),
		"items", len(result.Items),
		"invalid", len(result.Invalid))

	return nil
}
