package shared

import (
	"fmt"

	"github.com/hmendes/storyflow/internal/domain"
)

// SaveMutation durably persists a task mutation: the task detail file, the
// owning feature file, and the project index, in that order. Writes are
// whole-file overwrites; a failure leaves earlier files written and the
// caller re-runs the command.
func SaveMutation(graphs domain.GraphRepository, g *domain.Graph, loc *domain.TaskLocation, file *domain.TaskFile) error {
	if err := graphs.SaveTaskFile(loc, file); err != nil {
		return fmt.Errorf("save task file: %w", err)
	}
	if err := graphs.SaveFeature(loc.Feature); err != nil {
		return fmt.Errorf("save feature: %w", err)
	}
	if err := graphs.SaveProjectIndex(g); err != nil {
		return fmt.Errorf("save project index: %w", err)
	}
	return nil
}

// ResolveTask returns the task to operate on: the one with the given ID, or
// the current active task when id is empty.
func ResolveTask(g *domain.Graph, id string) (*domain.TaskLocation, error) {
	if id != "" {
		loc := g.FindTask(id)
		if loc == nil {
			return nil, &domain.TaskNotFoundError{ID: id}
		}
		return loc, nil
	}
	loc := g.FindActiveTask()
	if loc == nil {
		return nil, domain.ErrNoActiveSession
	}
	return loc, nil
}
