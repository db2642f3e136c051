package tasks

import "context"

// PipelineRunner runs the whole pipeline or a single stage.
// Used by the scheduler, the CLI and the API's manual trigger.
//
//	runner := NewRunner(rt)
//	if err := runner.Run(ctx); err != nil { ... }
//	runner.RunStage(ctx, TaskTypeFilter)
type PipelineRunner interface {
	Run(ctx context.Context) error
	RunStage(ctx context.Context, taskType TaskType) error
}

// TaskSchedulerInterface drives periodic pipeline runs.
type TaskSchedulerInterface interface {
	Start() error
	Stop()
	Trigger() bool
	Running() bool
}
