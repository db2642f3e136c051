package tasks

import (
	"context"
	"fmt"
)

var _ PipelineRunner = (*Runner)(nil)

type Runner struct {
	rt *Runtime
}

func NewRunner(rt *Runtime) *Runner {
	return &Runner{rt: rt}
}

// NewStageTask builds the task for one pipeline stage.
func NewStageTask(rt *Runtime, taskType TaskType) (TaskInterface, error) {
	switch taskType {
	case TaskTypeCollect:
		return NewCollectTask(rt), nil
	case TaskTypeFilter:
		return NewFilterTask(rt), nil
	case TaskTypeReport:
		return NewReportTask(rt), nil
	case TaskTypePages:
		return NewPagesTask(rt), nil
	case TaskTypeNotify:
		return NewNotifyTask(rt), nil
	case TaskTypePublish:
		return NewPublishTask(rt), nil
	default:
		return nil, fmt.Errorf("unknown stage: %s", taskType)
	}
}

// Run executes every stage in PipelineOrder. A failing critical stage stops
// the run; other failures are logged and the run continues.
func (r *Runner) Run(ctx context.Context) error {
	for _, taskType := range PipelineOrder {
		task, err := NewStageTask(r.rt, taskType)
		if err != nil {
			return err
		}

		if err := r.execute(ctx, task); err != nil {
			if task.IsCritical() {
				return fmt.Errorf("stage %s failed: %w", taskType, err)
			}
			r.rt.Logger.Warn("Non-critical stage failed", "type", string(taskType), "error", err)
		}
	}

	return nil
}

func (r *Runner) RunStage(ctx context.Context, taskType TaskType) error {
	task, err := NewStageTask(r.rt, taskType)
	if err != nil {
		return err
	}
	return r.execute(ctx, task)
}

func (r *Runner) execute(ctx context.Context, task TaskInterface) (err error) {
	task.Start()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("stage %s panicked: %v", task.GetType(), p)
		}
		if err != nil {
			r.rt.Logger.Error("Task execution failed",
				"type", string(task.GetType()),
				"id", task.GetID(),
				"duration", task.GetDuration(),
				"error", err)
		}
	}()

	r.rt.Logger.Debug("Task started", "type", string(task.GetType()), "id", task.GetID())
	return task.Execute(ctx)
}
