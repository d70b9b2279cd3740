package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase/shared"
)

// BlockTaskInput contains the parameters for blocking a task.
// TaskID is optional; empty means the current active task.
type BlockTaskInput struct {
	TaskID string
	Reason string
}

// BlockTaskOutput contains the result of blocking a task.
type BlockTaskOutput struct {
	Location *domain.TaskLocation
	From     domain.Status
}

// BlockTask is the use case behind `skip`: park the active task with a
// reason, remembering where it was so resume is lossless.
type BlockTask struct {
	graphs domain.GraphRepository
	lock   domain.SessionLock
	logger *slog.Logger
}

// NewBlockTask creates a new BlockTask use case.
func NewBlockTask(graphs domain.GraphRepository, lock domain.SessionLock, logger *slog.Logger) *BlockTask {
	return &BlockTask{graphs: graphs, lock: lock, logger: logger}
}

// Execute blocks the task with the given reason.
func (uc *BlockTask) Execute(_ context.Context, in BlockTaskInput) (*BlockTaskOutput, error) {
	if err := uc.lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = uc.lock.Release() }()

	g, err := uc.graphs.LoadGraph()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	loc, err := shared.ResolveTask(g, in.TaskID)
	if err != nil {
		return nil, err
	}

	file, err := uc.graphs.LoadTaskFile(loc)
	if err != nil {
		return nil, err
	}

	from := loc.Task.Status
	if err := domain.BlockTask(loc.Task, file, in.Reason); err != nil {
		return nil, err
	}

	g.RecalculateRollups()
	if err := shared.SaveMutation(uc.graphs, g, loc, file); err != nil {
		return nil, err
	}

	uc.logger.Info("task blocked", "task", loc.Task.ID, "from", from, "reason", in.Reason)

	return &BlockTaskOutput{Location: loc, From: from}, nil
}
