package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase/shared"
)

// StartTaskInput contains the parameters for starting a task.
type StartTaskInput struct {
	TaskID string
}

// StartTaskOutput contains the result of starting a task.
type StartTaskOutput struct {
	Location *domain.TaskLocation
	Branch   *shared.BranchSyncResult
	// PausedMainID names the main task left active when an intermittent
	// task starts alongside it. The caller surfaces the warning; no state
	// marks the main task paused.
	PausedMainID string
}

// StartTask is the use case for starting work on a task: session guard,
// dependency gate, branch sync, then the not-started -> setup transition.
type StartTask struct {
	graphs     domain.GraphRepository
	git        domain.Git
	lock       domain.SessionLock
	clock      domain.Clock
	logger     *slog.Logger
	baseBranch string
}

// NewStartTask creates a new StartTask use case.
func NewStartTask(
	graphs domain.GraphRepository,
	git domain.Git,
	lock domain.SessionLock,
	clock domain.Clock,
	logger *slog.Logger,
	baseBranch string,
) *StartTask {
	return &StartTask{
		graphs:     graphs,
		git:        git,
		lock:       lock,
		clock:      clock,
		logger:     logger,
		baseBranch: baseBranch,
	}
}

// Execute starts the task with the given ID.
func (uc *StartTask) Execute(ctx context.Context, in StartTaskInput) (*StartTaskOutput, error) {
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

	if err := g.AssertCanStart(loc.Task); err != nil {
		return nil, err
	}

	if unmet := g.UnmetDependencies(loc.Task); len(unmet) > 0 {
		return nil, &domain.DependencyNotMetError{ID: loc.Task.ID, Unmet: unmet}
	}

	// Note the main task that stays active when side work starts.
	var pausedMainID string
	if loc.Task.Intermittent {
		if active := g.FindActiveTask(); active != nil && !active.Task.Intermittent {
			pausedMainID = active.Task.ID
		}
	}

	branch, err := shared.VerifyBranch(ctx, uc.git, loc.Story, uc.baseBranch)
	if err != nil {
		return nil, err
	}

	file, err := uc.graphs.LoadTaskFile(loc)
	if err != nil {
		return nil, err
	}
	if err := domain.StartTask(loc.Task, file); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	file.StartedAt = &now

	g.RecalculateRollups()
	if err := shared.SaveMutation(uc.graphs, g, loc, file); err != nil {
		return nil, err
	}

	uc.logger.Info("task started", "task", loc.Task.ID, "branch", branch.Branch)

	return &StartTaskOutput{Location: loc, Branch: branch, PausedMainID: pausedMainID}, nil
}
