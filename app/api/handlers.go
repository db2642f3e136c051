package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/health"
	"github.com/lysyi3m/rss-digest/app/news"
	"github.com/lysyi3m/rss-digest/app/tasks"
)

func NewHandler(store *news.Store, loader *config.Loader, healthStore health.Store,
	pagesDir string, scheduler tasks.TaskSchedulerInterface, version string, logger *slog.Logger) *Handler {
	return &Handler{
		store:       store,
		config:      loader,
		healthStore: healthStore,
		pagesDir:    pagesDir,
		scheduler:   scheduler,
		version:     version,
		logger:      logger,
	}
}

func (h *Handler) GetPage(c *gin.Context) {
	path := filepath.Join(h.pagesDir, tasks.PagesIndexFile)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Digest page has not been generated yet"})
		return
	}
	c.File(path)
}

func (h *Handler) GetFeed(c *gin.Context) {
	data, err := os.ReadFile(h.store.Path(news.FilteredRSSFile))
	if errors.Is(err, os.ErrNotExist) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to read feed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

func (h *Handler) GetHealth(c *gin.Context) {
	status := gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"running":   h.scheduler != nil && h.scheduler.Running(),
	}

	if summary, err := h.store.LoadSummary(); err == nil {
		status["last_digest"] = summary.GeneratedAt
	}

	c.JSON(http.StatusOK, status)
}

func (h *Handler) APIGetNews(c *gin.Context) {
	h.serveItems(c, news.FilteredNewsFile)
}

func (h *Handler) APIGetRawNews(c *gin.Context) {
	h.serveItems(c, news.RawNewsFile)
}

func (h *Handler) serveItems(c *gin.Context, name string) {
	items, err := h.store.LoadItems(name)
	if errors.Is(err, os.ErrNotExist) {
		items = []news.NewsItem{}
	} else if err != nil {
		h.logger.Error("Failed to load news", "file", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load news"})
		return
	}

	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		if n < len(items) {
			items = items[:n]
		}
	}

	c.Header("X-Total-Items", strconv.Itoa(len(items)))
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *Handler) APIGetSummary(c *gin.Context) {
	summary, err := h.store.LoadSummary()
	if errors.Is(err, os.ErrNotExist) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No summary available"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) APIGetInvalidSources(c *gin.Context) {
	records, err := h.store.LoadInvalidSources()
	if errors.Is(err, os.ErrNotExist) {
		records = []news.InvalidSourceRecord{}
	} else if err != nil {
		h.logger.Error("Failed to load invalid sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invalid sources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": records,
		"total":   len(records),
	})
}

func (h *Handler) APIListSources(c *gin.Context) {
	sources, err := h.config.LoadSources()
	if err != nil {
		h.logger.Error("Failed to load sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sources", "details": err.Error()})
		return
	}

	statuses, err := h.healthStore.Load()
	if err != nil {
		h.logger.Warn("Failed to load health status", "error", err)
		statuses = health.StatusMap{}
	}

	infos := make([]sourceInfo, 0, len(sources))
	for _, source := range sources {
		info := sourceInfo{
			Name:     source.Name,
			URL:      source.URL,
			Category: source.Category,
			Enabled:  source.IsEnabled(),
		}
		if status, ok := statuses[source.URL]; ok {
			info.Health = &status
		}
		infos = append(infos, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": infos,
		"total":   len(infos),
	})
}

func (h *Handler) APITriggerRun(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler not running"})
		return
	}

	if !h.scheduler.Trigger() {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "A pipeline run is already in progress",
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Pipeline run started",
	})
}
