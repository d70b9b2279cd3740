package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/hmendes/storyflow/internal/domain"
)

// NewFeatureInput contains the parameters for creating a feature.
type NewFeatureInput struct {
	Title string
}

// NewFeatureOutput contains the created feature.
type NewFeatureOutput struct {
	Feature *domain.Feature
}

// NewFeature is the use case for adding a feature to the backlog.
type NewFeature struct {
	graphs domain.GraphRepository
	lock   domain.SessionLock
	logger *slog.Logger
}

// NewNewFeature creates a new NewFeature use case.
func NewNewFeature(graphs domain.GraphRepository, lock domain.SessionLock, logger *slog.Logger) *NewFeature {
	return &NewFeature{graphs: graphs, lock: lock, logger: logger}
}

// Execute appends a feature with the next free numeric ID.
func (uc *NewFeature) Execute(_ context.Context, in NewFeatureInput) (*NewFeatureOutput, error) {
	if in.Title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if err := uc.lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = uc.lock.Release() }()

	g, err := uc.graphs.LoadGraph()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	id := nextFeatureID(g)
	f := &domain.Feature{
		ID:     id,
		Title:  in.Title,
		Status: domain.StatusNotStarted,
		Path:   domain.FeatureFileRelPath(id),
	}
	g.Features = append(g.Features, f)

	if err := uc.graphs.SaveFeature(f); err != nil {
		return nil, fmt.Errorf("save feature: %w", err)
	}
	if err := uc.graphs.SaveProjectIndex(g); err != nil {
		return nil, fmt.Errorf("save project index: %w", err)
	}

	uc.logger.Info("feature created", "feature", f.ID, "title", f.Title)

	return &NewFeatureOutput{Feature: f}, nil
}

// nextFeatureID returns the lowest numeric ID above every existing feature.
// Feature "0" is reserved for intermittent work, so numbering starts at 1.
func nextFeatureID(g *domain.Graph) string {
	next := 1
	for _, f := range g.Features {
		if n, err := strconv.Atoi(f.ID); err == nil && n >= next {
			next = n + 1
		}
	}
	return strconv.Itoa(next)
}
