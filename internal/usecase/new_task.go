package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase/shared"
)

// NewTaskInput contains the parameters for creating a task.
// Intermittent tasks are homed under the reserved story "0.1" regardless of
// StoryID.
type NewTaskInput struct {
	StoryID      string
	Title        string
	Description  string
	Skill        string
	Dependencies []string
	Subtasks     []string
	Context      []string
	Intermittent bool
}

// NewTaskOutput contains the created task.
type NewTaskOutput struct {
	Location *domain.TaskLocation
}

// NewTask is the use case for creating a TaskRef/TaskFile pair.
type NewTask struct {
	graphs domain.GraphRepository
	lock   domain.SessionLock
	logger *slog.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(graphs domain.GraphRepository, lock domain.SessionLock, logger *slog.Logger) *NewTask {
	return &NewTask{graphs: graphs, lock: lock, logger: logger}
}

// Execute creates the task with status not-started.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	if err := uc.lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = uc.lock.Release() }()

	g, err := uc.graphs.LoadGraph()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	loc, err := createTask(g, in)
	if err != nil {
		return nil, err
	}

	file := newTaskFile(loc.Task, in)
	g.RecalculateRollups()
	if err := shared.SaveMutation(uc.graphs, g, loc, file); err != nil {
		return nil, err
	}

	uc.logger.Info("task created", "task", loc.Task.ID, "title", loc.Task.Title)

	return &NewTaskOutput{Location: loc}, nil
}

// createTask validates the input against the graph and appends the new
// TaskRef to its story. The caller persists.
func createTask(g *domain.Graph, in NewTaskInput) (*domain.TaskLocation, error) {
	if in.Title == "" {
		return nil, domain.ErrEmptyTitle
	}

	var story *domain.StoryLocation
	if in.Intermittent {
		story = g.EnsureIntermittentStory()
	} else {
		story = g.FindStory(in.StoryID)
		if story == nil {
			return nil, &domain.StoryNotFoundError{ID: in.StoryID}
		}
	}

	for _, dep := range in.Dependencies {
		if g.FindTask(dep) == nil {
			return nil, &domain.TaskNotFoundError{ID: dep}
		}
	}

	ref := &domain.TaskRef{
		ID:           nextTaskID(story.Story),
		Title:        in.Title,
		Status:       domain.StatusNotStarted,
		Dependencies: in.Dependencies,
		Intermittent: in.Intermittent,
	}
	story.Story.Tasks = append(story.Story.Tasks, ref)

	return &domain.TaskLocation{Feature: story.Feature, Story: story.Story, Task: ref}, nil
}

func newTaskFile(ref *domain.TaskRef, in NewTaskInput) *domain.TaskFile {
	file := &domain.TaskFile{
		ID:          ref.ID,
		Title:       ref.Title,
		Description: in.Description,
		Status:      domain.StatusNotStarted,
		Skill:       in.Skill,
		Context:     in.Context,
	}
	for _, st := range in.Subtasks {
		file.Subtasks = append(file.Subtasks, domain.Subtask{Title: st})
	}
	return file
}

// nextTaskID returns the next free "F.S.T" ID under the story, starting
// at 0.
func nextTaskID(s *domain.Story) string {
	next := 0
	for _, t := range s.Tasks {
		if i := strings.LastIndex(t.ID, "."); i > 0 {
			if n, err := strconv.Atoi(t.ID[i+1:]); err == nil && n >= next {
				next = n + 1
			}
		}
	}
	return s.ID + "." + strconv.Itoa(next)
}
