package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hmendes/storyflow/internal/domain"
)

// TaskDraft is one document in a batch authoring file. The file is a YAML
// document stream; each document becomes one task:
//
//	---
//	title: Wire the OAuth callback
//	story: "1.1"
//	skill: feat
//	dependencies: ["1.1.0"]
//	subtasks:
//	  - Parse the redirect params
//	  - Exchange the code
//	---
//	title: Bump CI cache key
//	intermittent: true
type TaskDraft struct {
	Title        string   `yaml:"title"`
	Story        string   `yaml:"story"`
	Description  string   `yaml:"description"`
	Skill        string   `yaml:"skill"`
	Dependencies []string `yaml:"dependencies"`
	Subtasks     []string `yaml:"subtasks"`
	Context      []string `yaml:"context"`
	Intermittent bool     `yaml:"intermittent"`
}

// CreateTasksFromFileInput contains the parameters for batch task creation.
type CreateTasksFromFileInput struct {
	Path   string
	DryRun bool
}

// CreateTasksFromFileOutput contains the created (or previewed) tasks.
type CreateTasksFromFileOutput struct {
	Locations []*domain.TaskLocation
}

// CreateTasksFromFile is the use case for creating several tasks from one
// YAML authoring file. Validation of every draft happens before anything is
// persisted, so a bad draft fails the whole batch up front.
type CreateTasksFromFile struct {
	graphs domain.GraphRepository
	lock   domain.SessionLock
	logger *slog.Logger
}

// NewCreateTasksFromFile creates a new CreateTasksFromFile use case.
func NewCreateTasksFromFile(graphs domain.GraphRepository, lock domain.SessionLock, logger *slog.Logger) *CreateTasksFromFile {
	return &CreateTasksFromFile{graphs: graphs, lock: lock, logger: logger}
}

// Execute parses the drafts and creates the tasks in file order.
func (uc *CreateTasksFromFile) Execute(_ context.Context, in CreateTasksFromFileInput) (*CreateTasksFromFileOutput, error) {
	drafts, err := parseDrafts(in.Path)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("no tasks found in %s", in.Path)
	}

	if err := uc.lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = uc.lock.Release() }()

	g, err := uc.graphs.LoadGraph()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	out := &CreateTasksFromFileOutput{}
	files := make(map[*domain.TaskLocation]*domain.TaskFile, len(drafts))
	for i, d := range drafts {
		input := NewTaskInput{
			StoryID:      d.Story,
			Title:        d.Title,
			Description:  d.Description,
			Skill:        d.Skill,
			Dependencies: d.Dependencies,
			Subtasks:     d.Subtasks,
			Context:      d.Context,
			Intermittent: d.Intermittent,
		}
		loc, err := createTask(g, input)
		if err != nil {
			return nil, fmt.Errorf("draft %d: %w", i+1, err)
		}
		files[loc] = newTaskFile(loc.Task, input)
		out.Locations = append(out.Locations, loc)
	}

	if in.DryRun {
		return out, nil
	}

	g.RecalculateRollups()
	for loc, file := range files {
		if err := uc.graphs.SaveTaskFile(loc, file); err != nil {
			return nil, fmt.Errorf("save task file: %w", err)
		}
	}
	// Tasks may span several features; save them all plus the index.
	if err := uc.graphs.SaveGraph(g); err != nil {
		return nil, err
	}

	uc.logger.Info("tasks created from file", "path", in.Path, "count", len(out.Locations))

	return out, nil
}

func parseDrafts(path string) ([]TaskDraft, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied authoring file
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.FileNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var drafts []TaskDraft
	dec := yaml.NewDecoder(f)
	for {
		var d TaskDraft
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &domain.InvalidFileFormatError{Path: path, Detail: err.Error()}
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}
