package tasks

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type blockingRunner struct {
	runs    atomic.Int32
	release chan struct{}
}

func (r *blockingRunner) Run(ctx context.Context) error {
	r.runs.Add(1)
	select {
	case <-r.release:
	case <-ctx.Done():
	}
	return nil
}

func (r *blockingRunner) RunStage(ctx context.Context, taskType TaskType) error {
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSchedulerTriggerSkipsOverlappingRuns(t *testing.T) {
	runner := &blockingRunner{release: make(chan struct{})}
	scheduler := NewScheduler("@every 1h", runner, testLogger())
	if err := scheduler.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if !scheduler.Trigger() {
		t.Fatal("Expected first trigger to start a run")
	}
	waitFor(t, func() bool { return runner.runs.Load() == 1 })

	if scheduler.Trigger() {
		t.Error("Expected second trigger to be skipped while running")
	}
	if !scheduler.Running() {
		t.Error("Expected scheduler to report a run in progress")
	}

	close(runner.release)
	waitFor(t, func() bool { return !scheduler.Running() })

	scheduler.Stop()
	if scheduler.Trigger() {
		t.Error("Expected trigger after stop to be rejected")
	}
	if runner.runs.Load() != 1 {
		t.Errorf("Expected 1 run, got %d", runner.runs.Load())
	}
}

func TestSchedulerStopCancelsRun(t *testing.T) {
	runner := &blockingRunner{release: make(chan struct{})}
	scheduler := NewScheduler("@every 1h", runner, testLogger())
	if err := scheduler.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	scheduler.Trigger()
	waitFor(t, func() bool { return runner.runs.Load() == 1 })

	scheduler.Stop()
	if scheduler.Running() {
		t.Error("Expected run to finish after stop")
	}
}

func TestSchedulerRejectsInvalidSchedule(t *testing.T) {
	scheduler := NewScheduler("not a schedule", &blockingRunner{}, testLogger())
	if err := scheduler.Start(); err == nil {
		t.Error("Expected error for invalid schedule")
	}
}

type countingRunner struct {
	runs atomic.Int32
}

func (r *countingRunner) Run(ctx context.Context) error {
	r.runs.Add(1)
	return nil
}

func (r *countingRunner) RunStage(ctx context.Context, taskType TaskType) error {
	return nil
}

func TestSchedulerTriggerDuringStop(t *testing.T) {
	runner := &countingRunner{}
	scheduler := NewScheduler("@every 1h", runner, testLogger())
	if err := scheduler.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					scheduler.Trigger()
				}
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	scheduler.Stop()
	after := runner.runs.Load()

	time.Sleep(10 * time.Millisecond)
	close(done)
	wg.Wait()

	if runner.runs.Load() != after {
		t.Errorf("Expected no runs after stop, got %d more", runner.runs.Load()-after)
	}
	if scheduler.Running() {
		t.Error("Expected no run in progress after stop")
	}
}
