package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler runs the pipeline on a cron schedule. Runs never overlap: a tick
// or trigger that arrives while a run is in progress is dropped.
type Scheduler struct {
	schedule   string
	runner     PipelineRunner
	logger     *slog.Logger
	runTimeout time.Duration
	cron       *cron.Cron
	running    atomic.Bool
	mu         sync.Mutex
	stopped    bool
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewScheduler(schedule string, runner PipelineRunner, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		schedule:   schedule,
		runner:     runner,
		logger:     logger,
		runTimeout: 30 * time.Minute,
		cron:       cron.New(cron.WithLocation(time.Local)),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Trigger() }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts the cron loop, cancels an in-flight run and waits for it.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()

	s.mu.Lock()
	s.stopped = true
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

// Trigger starts a pipeline run in the background. It reports false when a
// run is already in progress or the scheduler has stopped.
func (s *Scheduler) Trigger() bool {
	// wg.Add must not race with the wg.Wait in Stop.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Pipeline run already in progress, skipping")
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)

		ctx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
		defer cancel()

		started := time.Now()
		if err := s.runner.Run(ctx); err != nil {
			s.logger.Error("Pipeline run failed", "duration", time.Since(started), "error", err)
			return
		}
		s.logger.Info("Pipeline run completed", "duration", time.Since(started))
	}()

	return true
}

func (s *Scheduler) Running() bool {
	return s.running.Load()
}
