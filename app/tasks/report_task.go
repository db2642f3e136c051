package tasks

import (
	"context"
	"fmt"

	"github.com/lysyi3m/rss-digest/app/cfg"
	"github.com/lysyi3m/rss-digest/app/news"
	"github.com/lysyi3m/rss-digest/app/render"
)

// ReportTask writes the Markdown, DOCX and RSS renditions of the news.
type ReportTask struct {
	Task
	rt *Runtime
}

func NewReportTask(rt *Runtime) *ReportTask {
	return &ReportTask{
		Task: NewTask(TaskTypeReport),
		rt:   rt,
	}
}

func (t *ReportTask) Execute(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	raw, err := t.rt.loadItems(news.RawNewsFile)
	if err != nil {
		return err
	}
	filtered, err := t.rt.loadItems(news.FilteredNewsFile)
	if err != nil {
		return err
	}

	keywords := t.rt.loadKeywords()
	now := t.rt.Now()

	groups := render.GroupByKeyword(filtered, keywords.Include)
	if len(keywords.Include) == 0 {
		groups = render.GroupBySource(filtered)
	}

	markdown := render.NewMarkdownRenderer()

	rawReport, err := markdown.Run("Raw News", len(raw), render.GroupBySource(raw), now)
	if err != nil {
		return fmt.Errorf("failed to render raw report: %w", err)
	}
	if err := t.rt.Store.WriteFile(news.RawMarkdownFile, rawReport); err != nil {
		return err
	}

	filteredReport, err := markdown.Run("Filtered News", len(filtered), groups, now)
	if err != nil {
		return fmt.Errorf("failed to render filtered report: %w", err)
	}
	if err := t.rt.Store.WriteFile(news.FilteredMarkdownFile, filteredReport); err != nil {
		return err
	}

	docxPath := t.rt.Store.Path(news.FilteredDocxFile)
	if err := render.NewDocxRenderer().Run(docxPath, "Filtered News", len(filtered), groups, now); err != nil {
		return err
	}

	rss, err := render.NewRSSRenderer(cfg.GetVersion(), t.rt.Cfg.PublicURL("/feed.xml")).Run(filtered, now)
	if err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}
	if err := t.rt.Store.WriteFile(news.FilteredRSSFile, rss); err != nil {
		return err
	}

	t.rt.Logger.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"raw", len(raw),
		"filtered", len(filtered),
		"groups", len(groups))

	return nil
}
