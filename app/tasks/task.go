package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

type TaskType string

const (
	TaskTypeCollect TaskType = "collect"
	TaskTypeFilter  TaskType = "filter"
	TaskTypeReport  TaskType = "report"
	TaskTypePages   TaskType = "pages"
	TaskTypeNotify  TaskType = "notify"
	TaskTypePublish TaskType = "publish"
)

// PipelineOrder is the order stages run in a full pipeline run.
var PipelineOrder = []TaskType{
	TaskTypeCollect,
	TaskTypeFilter,
	TaskTypeReport,
	TaskTypePages,
	TaskTypeNotify,
	TaskTypePublish,
}

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	// IsCritical reports whether a failure aborts the pipeline.
	IsCritical() bool
	Start()
	GetDuration() time.Duration
}

type Task struct {
	ID        string
	Type      TaskType
	StartedAt *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) IsCritical() bool {
	return t.Type != TaskTypeNotify && t.Type != TaskTypePublish
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:   uniqueID,
		Type: taskType,
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
