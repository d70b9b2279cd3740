package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase/shared"
)

// ResumeTaskInput contains the parameters for resuming a task.
// TaskID is optional; empty means the first blocked task in declaration
// order. Target, when set, overrides the status the task is restored to and
// must be an active workflow status.
type ResumeTaskInput struct {
	TaskID string
	Target domain.Status
}

// ResumeTaskOutput contains the result of resuming a task.
type ResumeTaskOutput struct {
	Location *domain.TaskLocation
	To       domain.Status
}

// ResumeTask is the use case for taking a blocked (or on-hold) task back
// into play.
type ResumeTask struct {
	graphs domain.GraphRepository
	lock   domain.SessionLock
	logger *slog.Logger
}

// NewResumeTask creates a new ResumeTask use case.
func NewResumeTask(graphs domain.GraphRepository, lock domain.SessionLock, logger *slog.Logger) *ResumeTask {
	return &ResumeTask{graphs: graphs, lock: lock, logger: logger}
}

// Execute resumes the task, restoring the status it was blocked from unless
// an explicit target is supplied.
func (uc *ResumeTask) Execute(_ context.Context, in ResumeTaskInput) (*ResumeTaskOutput, error) {
	if err := uc.lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = uc.lock.Release() }()

	g, err := uc.graphs.LoadGraph()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	loc, err := uc.resolve(g, in.TaskID)
	if err != nil {
		return nil, err
	}

	// Resuming puts the task back into an active status, so the
	// single-active-task invariant applies just like on start.
	if loc.Task.Status == domain.StatusBlocked {
		if err := g.AssertCanStart(loc.Task); err != nil {
			return nil, err
		}
	}

	file, err := uc.graphs.LoadTaskFile(loc)
	if err != nil {
		return nil, err
	}

	if err := domain.ResumeTask(loc.Task, file, in.Target); err != nil {
		return nil, err
	}

	g.RecalculateRollups()
	if err := shared.SaveMutation(uc.graphs, g, loc, file); err != nil {
		return nil, err
	}

	uc.logger.Info("task resumed", "task", loc.Task.ID, "to", loc.Task.Status)

	return &ResumeTaskOutput{Location: loc, To: loc.Task.Status}, nil
}

// resolve picks the task to resume: an explicit ID, or the first blocked
// task in declaration order.
func (uc *ResumeTask) resolve(g *domain.Graph, id string) (*domain.TaskLocation, error) {
	if id != "" {
		loc := g.FindTask(id)
		if loc == nil {
			return nil, &domain.TaskNotFoundError{ID: id}
		}
		return loc, nil
	}
	for _, f := range g.Features {
		for _, s := range f.Stories {
			for _, t := range s.Tasks {
				if t.Status == domain.StatusBlocked {
					return &domain.TaskLocation{Feature: f, Story: s, Task: t}, nil
				}
			}
		}
	}
	return nil, domain.ErrNoBlockedTask
}
