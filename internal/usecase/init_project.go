package usecase

import (
	"context"
	"fmt"

	"github.com/hmendes/storyflow/internal/domain"
)

// InitProjectInput contains the parameters for initializing a project.
type InitProjectInput struct {
	Project string
}

// InitProject is the use case for scaffolding the tasks directory.
type InitProject struct {
	graphs domain.GraphRepository
}

// NewInitProject creates a new InitProject use case.
func NewInitProject(graphs domain.GraphRepository) *InitProject {
	return &InitProject{graphs: graphs}
}

// Execute creates the tasks directory and an empty project index. It is a
// no-op when the index already exists.
func (uc *InitProject) Execute(_ context.Context, in InitProjectInput) error {
	if in.Project == "" {
		return domain.ErrEmptyTitle
	}
	if err := uc.graphs.Initialize(in.Project); err != nil {
		return fmt.Errorf("initialize tasks directory: %w", err)
	}
	return nil
}
