package tasks

import (
	"context"
	"fmt"

	"github.com/lysyi3m/rss-digest/app/news"
	"github.com/lysyi3m/rss-digest/app/notify"
)

type NotifyTask struct {
	Task
	rt *Runtime
}

func NewNotifyTask(rt *Runtime) *NotifyTask {
	return &NotifyTask{
		Task: NewTask(TaskTypeNotify),
		rt:   rt,
	}
}

func (t *NotifyTask) Execute(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	policy, err := t.rt.Config.LoadNotification()
	if err != nil {
		return fmt.Errorf("failed to load notification config: %w", err)
	}

	webhookURL := notify.ResolveWebhook(policy, t.rt.Cfg.WebhookURL)
	if webhookURL == "" {
		t.rt.Logger.Info("Notifications disabled or no webhook configured")
		return nil
	}

	filtered, err := t.rt.loadItems(news.FilteredNewsFile)
	if err != nil {
		return err
	}
	if len(filtered) == 0 {
		t.rt.Logger.Info("No filtered news, skipping notification")
		return nil
	}

	raw, err := t.rt.loadItems(news.RawNewsFile)
	if err != nil {
		return err
	}

	keywords := t.rt.loadKeywords()
	summary := news.BuildSummary(raw, filtered, keywords.Include, t.rt.Now())

	notifier := notify.NewNotifier(t.rt.HTTPClient, webhookURL, t.rt.Cfg.FetchTimeout, t.rt.Logger)
	if err := notifier.Send(ctx, summary, filtered); err != nil {
		return err
	}

	t.rt.Logger.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"filtered", len(filtered))

	return nil
}
