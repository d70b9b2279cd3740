// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/hmendes/storyflow/internal/domain"
)

// NextTaskOutput contains the result of looking up the next available task.
// Location is nil when no task is available.
type NextTaskOutput struct {
	Location *domain.TaskLocation
}

// NextTask is the use case for finding the next available task.
type NextTask struct {
	graphs domain.GraphRepository
}

// NewNextTask creates a new NextTask use case.
func NewNextTask(graphs domain.GraphRepository) *NextTask {
	return &NextTask{graphs: graphs}
}

// Execute scans the graph for the first not-started task with all
// dependencies met, preferring main tasks over intermittent ones.
func (uc *NextTask) Execute(_ context.Context) (*NextTaskOutput, error) {
	g, err := uc.graphs.LoadGraph()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	return &NextTaskOutput{Location: g.FindNextAvailableTask("")}, nil
}
