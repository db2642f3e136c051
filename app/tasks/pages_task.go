package tasks

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lysyi3m/rss-digest/app/news"
	"github.com/lysyi3m/rss-digest/app/render"
)

// PagesIndexFile is the static page written under the pages directory.
const PagesIndexFile = "index.html"

type PagesTask struct {
	Task
	rt *Runtime
}

func NewPagesTask(rt *Runtime) *PagesTask {
	return &PagesTask{
		Task: NewTask(TaskTypePages),
		rt:   rt,
	}
}

func (t *PagesTask) Execute(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	filtered, err := t.rt.loadItems(news.FilteredNewsFile)
	if err != nil {
		return err
	}
	if len(filtered) == 0 {
		t.rt.Logger.Warn("No filtered news, leaving pages untouched", "dir", t.rt.Cfg.PagesDir)
		return nil
	}

	keywords := t.rt.loadKeywords()

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return err
	}

	page, err := renderer.Run(filtered, keywords.Include, t.rt.Now())
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	path := filepath.Join(t.rt.Cfg.PagesDir, PagesIndexFile)
	if err := news.WriteFileAtomic(path, page); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	t.rt.Logger.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"path", path,
		"items", len(filtered))

	return nil
}
