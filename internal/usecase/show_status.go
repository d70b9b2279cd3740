package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hmendes/storyflow/internal/domain"
)

// ShowStatusInput contains the parameters for the status view.
// ID is optional: empty shows the whole project, a feature ID narrows to
// one feature, a story ID to one story.
type ShowStatusInput struct {
	ID string
}

// ShowStatusOutput contains the resolved status view. Exactly one of
// Feature/Story is set when ID narrowed the view; Graph is always set.
type ShowStatusOutput struct {
	Graph   *domain.Graph
	Feature *domain.Feature
	Story   *domain.StoryLocation
	Active  *domain.TaskLocation
}

// ShowStatus is the use case for the read-only status view.
type ShowStatus struct {
	graphs domain.GraphRepository
}

// NewShowStatus creates a new ShowStatus use case.
func NewShowStatus(graphs domain.GraphRepository) *ShowStatus {
	return &ShowStatus{graphs: graphs}
}

// Execute loads the graph and resolves the requested scope.
func (uc *ShowStatus) Execute(_ context.Context, in ShowStatusInput) (*ShowStatusOutput, error) {
	g, err := uc.graphs.LoadGraph()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	out := &ShowStatusOutput{Graph: g, Active: g.FindActiveTask()}
	if in.ID == "" {
		return out, nil
	}

	switch strings.Count(in.ID, ".") {
	case 0:
		f := g.FindFeature(in.ID)
		if f == nil {
			return nil, &domain.FeatureNotFoundError{ID: in.ID}
		}
		out.Feature = f
	case 1:
		s := g.FindStory(in.ID)
		if s == nil {
			return nil, &domain.StoryNotFoundError{ID: in.ID}
		}
		out.Story = s
	default:
		return nil, &domain.StoryNotFoundError{ID: in.ID}
	}
	return out, nil
}
