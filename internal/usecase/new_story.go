package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hmendes/storyflow/internal/domain"
)

// NewStoryInput contains the parameters for creating a story.
type NewStoryInput struct {
	FeatureID string
	Title     string
}

// NewStoryOutput contains the created story and its feature.
type NewStoryOutput struct {
	Location *domain.StoryLocation
}

// NewStory is the use case for adding a story to a feature.
type NewStory struct {
	graphs domain.GraphRepository
	lock   domain.SessionLock
	logger *slog.Logger
}

// NewNewStory creates a new NewStory use case.
func NewNewStory(graphs domain.GraphRepository, lock domain.SessionLock, logger *slog.Logger) *NewStory {
	return &NewStory{graphs: graphs, lock: lock, logger: logger}
}

// Execute appends a story with the next free index under the feature.
func (uc *NewStory) Execute(_ context.Context, in NewStoryInput) (*NewStoryOutput, error) {
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

	f := g.FindFeature(in.FeatureID)
	if f == nil {
		return nil, &domain.FeatureNotFoundError{ID: in.FeatureID}
	}

	s := &domain.Story{
		ID:     nextStoryID(f),
		Title:  in.Title,
		Status: domain.StatusNotStarted,
	}
	f.Stories = append(f.Stories, s)

	if err := uc.graphs.SaveFeature(f); err != nil {
		return nil, fmt.Errorf("save feature: %w", err)
	}
	if err := uc.graphs.SaveProjectIndex(g); err != nil {
		return nil, fmt.Errorf("save project index: %w", err)
	}

	uc.logger.Info("story created", "story", s.ID, "title", s.Title)

	return &NewStoryOutput{Location: &domain.StoryLocation{Feature: f, Story: s}}, nil
}

// nextStoryID returns the next free "F.S" ID under the feature, starting
// at 1.
func nextStoryID(f *domain.Feature) string {
	next := 1
	for _, s := range f.Stories {
		parts := strings.SplitN(s.ID, ".", 2)
		if len(parts) == 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil && n >= next {
				next = n + 1
			}
		}
	}
	return f.ID + "." + strconv.Itoa(next)
}
