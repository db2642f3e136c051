package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lysyi3m/rss-digest/app/api"
	"github.com/lysyi3m/rss-digest/app/cfg"
	"github.com/lysyi3m/rss-digest/app/tasks"
)

var rootCmd = &cobra.Command{
	Use:           "rss-digest",
	Short:         "Collect same-day RSS news, filter it by keywords and publish a digest",
	Version:       cfg.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	stages := map[tasks.TaskType]string{
		tasks.TaskTypeCollect: "Fetch all sources and save today's entries to raw_news.json",
		tasks.TaskTypeFilter:  "Score raw news against the keywords and save filtered_news.json",
		tasks.TaskTypeReport:  "Write the Markdown, DOCX and RSS reports",
		tasks.TaskTypePages:   "Render the static HTML page",
		tasks.TaskTypeNotify:  "Post the daily summary to the webhook",
		tasks.TaskTypePublish: "Upload the page and artifacts to the bucket",
	}

	for _, taskType := range tasks.PipelineOrder {
		rootCmd.AddCommand(&cobra.Command{
			Use:   string(taskType),
			Short: stages[taskType],
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRuntime(cmd.Context(), func(ctx context.Context, rt *tasks.Runtime) error {
					return tasks.NewRunner(rt).RunStage(ctx, taskType)
				})
			},
		})
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the whole pipeline once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *tasks.Runtime) error {
				return tasks.NewRunner(rt).Run(ctx)
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline on a schedule and serve the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), serve)
		},
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// withRuntime loads the configuration, builds the logger and the shared
// stage dependencies, and runs fn with them.
func withRuntime(ctx context.Context, fn func(context.Context, *tasks.Runtime) error) error {
	c, err := cfg.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(c)
	if err != nil {
		return err
	}
	defer closeLog()

	rt, err := tasks.NewRuntime(ctx, c, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Warn("Failed to release resources", "error", err)
		}
	}()

	return fn(ctx, rt)
}

func newLogger(c *cfg.Cfg) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	closeLog := func() {}

	if c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
		closeLog = func() { f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}

func serve(ctx context.Context, rt *tasks.Runtime) error {
	logger := rt.Logger
	logger.Info("Starting RSS digest server", "version", rt.Cfg.Version, "schedule", rt.Cfg.Schedule)

	scheduler := tasks.NewScheduler(rt.Cfg.Schedule, tasks.NewRunner(rt), logger)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	handler := api.NewHandler(rt.Store, rt.Config, rt.HealthStore, rt.Cfg.PagesDir, scheduler, rt.Cfg.Version, logger)

	httpServer := &http.Server{
		Addr:         ":" + rt.Cfg.Port,
		Handler:      api.NewServer(handler, rt.Cfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", rt.Cfg.Port, "page", rt.Cfg.PublicURL("/"))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("HTTP server error: %w", err)
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	} else {
		logger.Info("HTTP server stopped")
	}

	return nil
}
