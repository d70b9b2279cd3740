package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/testutil"
)

func TestNewFeature_Execute(t *testing.T) {
	g := testGraph()
	graphs := testutil.NewMockGraphRepository(g)
	uc := NewNewFeature(graphs, &testutil.MockLock{}, testLogger)

	out, err := uc.Execute(context.Background(), NewFeatureInput{Title: "Billing"})
	require.NoError(t, err)
	// Feature "0" is reserved and "1" exists, so the next free ID is "2".
	assert.Equal(t, "2", out.Feature.ID)
	assert.Equal(t, domain.StatusNotStarted, out.Feature.Status)
	assert.Equal(t, []string{"2"}, graphs.SavedFeatures)
	assert.Equal(t, 1, graphs.IndexSaves)
}

func TestNewFeature_Execute_EmptyTitle(t *testing.T) {
	uc := NewNewFeature(testutil.NewMockGraphRepository(testGraph()), &testutil.MockLock{}, testLogger)
	_, err := uc.Execute(context.Background(), NewFeatureInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestNewStory_Execute(t *testing.T) {
	g := testGraph()
	graphs := testutil.NewMockGraphRepository(g)
	uc := NewNewStory(graphs, &testutil.MockLock{}, testLogger)

	out, err := uc.Execute(context.Background(), NewStoryInput{FeatureID: "1", Title: "Password Reset"})
	require.NoError(t, err)
	assert.Equal(t, "1.2", out.Location.Story.ID)
	assert.Len(t, g.FindFeature("1").Stories, 2)
}

func TestNewStory_Execute_FeatureNotFound(t *testing.T) {
	uc := NewNewStory(testutil.NewMockGraphRepository(testGraph()), &testutil.MockLock{}, testLogger)
	_, err := uc.Execute(context.Background(), NewStoryInput{FeatureID: "9", Title: "X"})
	var notFound *domain.FeatureNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNewTask_Execute(t *testing.T) {
	g := testGraph()
	graphs := testutil.NewMockGraphRepository(g)
	uc := NewNewTask(graphs, &testutil.MockLock{}, testLogger)

	out, err := uc.Execute(context.Background(), NewTaskInput{
		StoryID:      "1.1",
		Title:        "Rate limiting",
		Description:  "Throttle login attempts.",
		Skill:        "feat",
		Dependencies: []string{"1.1.1"},
		Subtasks:     []string{"Pick a window", "Wire middleware"},
	})
	require.NoError(t, err)

	// 1.1.0 through 1.1.2 exist, so numbering continues at 3.
	assert.Equal(t, "1.1.3", out.Location.Task.ID)
	assert.Equal(t, domain.StatusNotStarted, out.Location.Task.Status)

	file := graphs.TaskFiles["1.1.3"]
	require.NotNil(t, file)
	assert.Equal(t, "Throttle login attempts.", file.Description)
	require.Len(t, file.Subtasks, 2)
	assert.False(t, file.Subtasks[0].Completed)
}

func TestNewTask_Execute_NumberingStartsAtZero(t *testing.T) {
	g := testGraph()
	g.FindFeature("1").Stories = append(g.FindFeature("1").Stories, &domain.Story{
		ID: "1.2", Title: "Password Reset", Status: domain.StatusNotStarted,
	})
	uc := NewNewTask(testutil.NewMockGraphRepository(g), &testutil.MockLock{}, testLogger)

	out, err := uc.Execute(context.Background(), NewTaskInput{StoryID: "1.2", Title: "Token model"})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", out.Location.Task.ID)
}

func TestNewTask_Execute_UnknownDependency(t *testing.T) {
	uc := NewNewTask(testutil.NewMockGraphRepository(testGraph()), &testutil.MockLock{}, testLogger)

	_, err := uc.Execute(context.Background(), NewTaskInput{
		StoryID: "1.1", Title: "X", Dependencies: []string{"9.9.9"},
	})
	var notFound *domain.TaskNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9.9.9", notFound.ID)
}

func TestNewTask_Execute_StoryNotFound(t *testing.T) {
	uc := NewNewTask(testutil.NewMockGraphRepository(testGraph()), &testutil.MockLock{}, testLogger)
	_, err := uc.Execute(context.Background(), NewTaskInput{StoryID: "9.9", Title: "X"})
	var notFound *domain.StoryNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNewTask_Execute_IntermittentIgnoresStoryID(t *testing.T) {
	// Graph without the reserved feature: it gets created on demand.
	g := &domain.Graph{
		Project: "demo",
		Features: []*domain.Feature{
			{ID: "1", Title: "Auth", Status: domain.StatusNotStarted, Stories: []*domain.Story{
				{ID: "1.1", Title: "Login", Status: domain.StatusNotStarted},
			}},
		},
	}
	uc := NewNewTask(testutil.NewMockGraphRepository(g), &testutil.MockLock{}, testLogger)

	out, err := uc.Execute(context.Background(), NewTaskInput{
		StoryID: "1.1", Title: "Fix typo", Intermittent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", out.Location.Task.ID)
	assert.True(t, out.Location.Task.Intermittent)
	assert.Equal(t, domain.IntermittentFeatureID, g.Features[0].ID)
}
