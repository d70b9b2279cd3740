package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase/shared"
)

// AdvanceTaskInput contains the parameters for advancing a task.
// TaskID is optional; empty means the current active task.
type AdvanceTaskInput struct {
	TaskID string
}

// AdvanceTaskOutput contains the result of advancing a task.
type AdvanceTaskOutput struct {
	Location *domain.TaskLocation
	From     domain.Status
	To       domain.Status
	// CommitMessage is a ready-to-use commit message suggestion, set when
	// the task enters the committing step.
	CommitMessage string
}

// AdvanceTask is the use case behind `check`: move the active task one step
// forward along the workflow chain.
type AdvanceTask struct {
	graphs domain.GraphRepository
	git    domain.Git
	lock   domain.SessionLock
	clock  domain.Clock
	logger *slog.Logger
}

// NewAdvanceTask creates a new AdvanceTask use case.
func NewAdvanceTask(
	graphs domain.GraphRepository,
	git domain.Git,
	lock domain.SessionLock,
	clock domain.Clock,
	logger *slog.Logger,
) *AdvanceTask {
	return &AdvanceTask{graphs: graphs, git: git, lock: lock, clock: clock, logger: logger}
}

// Execute advances the task one workflow step.
func (uc *AdvanceTask) Execute(ctx context.Context, in AdvanceTaskInput) (*AdvanceTaskOutput, error) {
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

	// The working tree must be on the story's branch before status moves
	// forward; advancing from the wrong branch means the work is landing
	// in the wrong place.
	if err := shared.CheckBranch(ctx, uc.git, loc.Story); err != nil {
		return nil, err
	}

	file, err := uc.graphs.LoadTaskFile(loc)
	if err != nil {
		return nil, err
	}

	from := loc.Task.Status
	to, err := domain.AdvanceTask(loc.Task, file)
	if err != nil {
		return nil, err
	}
	if to == domain.StatusCompleted {
		now := uc.clock.Now()
		file.CompletedAt = &now
	}

	g.RecalculateRollups()
	if err := shared.SaveMutation(uc.graphs, g, loc, file); err != nil {
		return nil, err
	}

	uc.logger.Info("task advanced", "task", loc.Task.ID, "from", from, "to", to)

	out := &AdvanceTaskOutput{Location: loc, From: from, To: to}
	if to == domain.StatusCommitting {
		out.CommitMessage = suggestCommitMessage(loc, file)
	}
	return out, nil
}

// suggestCommitMessage builds the canonical commit message for a task. The
// skill tag doubles as the commit type when it is one; everything else
// defaults to feat.
func suggestCommitMessage(loc *domain.TaskLocation, file *domain.TaskFile) string {
	commitType := domain.CommitFeat
	if t := domain.CommitType(file.Skill); t.IsValid() {
		commitType = t
	}
	msg := &domain.CommitMessage{
		Type:      commitType,
		FeatureID: loc.Feature.ID,
		TaskID:    loc.Task.ID,
		StoryID:   loc.Story.ID,
		Title:     loc.Task.Title,
		Body:      file.Description,
	}
	return msg.Format()
}
