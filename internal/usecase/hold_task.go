package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase/shared"
)

// HoldTaskInput contains the parameters for shelving a task.
type HoldTaskInput struct {
	TaskID string
}

// HoldTaskOutput contains the shelved task.
type HoldTaskOutput struct {
	Location *domain.TaskLocation
}

// HoldTask is the use case for parking a not-yet-started task so that
// `next` stops suggesting it.
type HoldTask struct {
	graphs domain.GraphRepository
	lock   domain.SessionLock
	logger *slog.Logger
}

// NewHoldTask creates a new HoldTask use case.
func NewHoldTask(graphs domain.GraphRepository, lock domain.SessionLock, logger *slog.Logger) *HoldTask {
	return &HoldTask{graphs: graphs, lock: lock, logger: logger}
}

// Execute puts the task on hold.
func (uc *HoldTask) Execute(_ context.Context, in HoldTaskInput) (*HoldTaskOutput, error) {
	if err := uc.lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = uc.lock.Release() }()

	g, err := uc.graphs.LoadGraph()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	loc := g.FindTask(in.TaskID)
	if loc == nil {
		return nil, &domain.TaskNotFoundError{ID: in.TaskID}
	}

	file, err := uc.graphs.LoadTaskFile(loc)
	if err != nil {
		return nil, err
	}
	if err := domain.HoldTask(loc.Task, file); err != nil {
		return nil, err
	}

	g.RecalculateRollups()
	if err := shared.SaveMutation(uc.graphs, g, loc, file); err != nil {
		return nil, err
	}

	uc.logger.Info("task put on hold", "task", loc.Task.ID)

	return &HoldTaskOutput{Location: loc}, nil
}
