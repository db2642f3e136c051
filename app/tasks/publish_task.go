package tasks

import (
	"context"
	"path/filepath"

	"github.com/lysyi3m/rss-digest/app/news"
	"github.com/lysyi3m/rss-digest/app/publish"
)

// publishedArtifacts are uploaded alongside the pages index, in this order.
var publishedArtifacts = []string{
	news.RawNewsFile,
	news.FilteredNewsFile,
	news.SummaryFile,
	news.InvalidSourcesFile,
	news.RawMarkdownFile,
	news.FilteredMarkdownFile,
	news.FilteredDocxFile,
	news.FilteredRSSFile,
}

type PublishTask struct {
	Task
	rt *Runtime
}

func NewPublishTask(rt *Runtime) *PublishTask {
	return &PublishTask{
		Task: NewTask(TaskTypePublish),
		rt:   rt,
	}
}

func (t *PublishTask) Execute(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	if t.rt.Uploader == nil {
		t.rt.Logger.Debug("No bucket configured, skipping publish")
		return nil
	}

	files := []string{filepath.Join(t.rt.Cfg.PagesDir, PagesIndexFile)}
	for _, name := range publishedArtifacts {
		files = append(files, t.rt.Store.Path(name))
	}

	uploaded, err := publish.NewPublisher(t.rt.Uploader, t.rt.Cfg.PagesPrefix, t.rt.Logger).Run(ctx, files)
	if err != nil {
		return err
	}

	t.rt.Logger.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"uploaded", uploaded)

	return nil
}
