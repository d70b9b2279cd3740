package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/testutil"
)

var testLogger = slog.New(slog.DiscardHandler)

// testGraph builds a backlog with one completed task, one ready task, one
// gated task, and one intermittent task.
func testGraph() *domain.Graph {
	return &domain.Graph{
		Project: "demo",
		Features: []*domain.Feature{
			{
				ID: "0", Title: "Intermittent Work", Status: domain.StatusNotStarted,
				Stories: []*domain.Story{
					{
						ID: "0.1", Title: "Side Tasks", Status: domain.StatusNotStarted,
						Tasks: []*domain.TaskRef{
							{ID: "0.1.0", Title: "Bump CI cache", Status: domain.StatusNotStarted, Intermittent: true},
						},
					},
				},
			},
			{
				ID: "1", Title: "Auth", Status: domain.StatusNotStarted,
				Stories: []*domain.Story{
					{
						ID: "1.1", Title: "Login Flow", Status: domain.StatusNotStarted,
						Tasks: []*domain.TaskRef{
							{ID: "1.1.0", Title: "Schema", Status: domain.StatusCompleted},
							{ID: "1.1.1", Title: "Endpoint", Status: domain.StatusNotStarted, Dependencies: []string{"1.1.0"}},
							{ID: "1.1.2", Title: "UI", Status: domain.StatusNotStarted, Dependencies: []string{"1.1.1"}},
						},
					},
				},
			},
		},
	}
}

func newStartTask(g *domain.Graph, git *testutil.MockGit) (*StartTask, *testutil.MockGraphRepository, *testutil.MockLock) {
	graphs := testutil.NewMockGraphRepository(g)
	lock := &testutil.MockLock{}
	clock := &testutil.MockClock{NowTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	return NewStartTask(graphs, git, lock, clock, testLogger, "main"), graphs, lock
}

func TestStartTask_Execute(t *testing.T) {
	g := testGraph()
	git := testutil.NewMockGit("main")
	uc, graphs, lock := newStartTask(g, git)

	out, err := uc.Execute(context.Background(), StartTaskInput{TaskID: "1.1.1"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSetup, out.Location.Task.Status)
	assert.Equal(t, "story/S1.1-login-flow", out.Branch.Branch)
	assert.True(t, out.Branch.Created)
	assert.Empty(t, out.PausedMainID)

	// Rollups and persistence.
	assert.Equal(t, domain.StatusInProgress, g.FindStory("1.1").Story.Status)
	assert.Equal(t, []string{"1.1.1"}, graphs.SavedTaskFiles)
	assert.Equal(t, []string{"1"}, graphs.SavedFeatures)
	assert.Equal(t, 1, graphs.IndexSaves)
	require.NotNil(t, graphs.TaskFiles["1.1.1"].StartedAt)
	assert.Equal(t, 1, lock.Acquired)
	assert.Equal(t, 1, lock.Released)
}

func TestStartTask_Execute_TaskNotFound(t *testing.T) {
	uc, _, _ := newStartTask(testGraph(), testutil.NewMockGit("main"))

	_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: "9.9.9"})
	var notFound *domain.TaskNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStartTask_Execute_ActiveSessionExists(t *testing.T) {
	g := testGraph()
	g.FindTask("1.1.1").Task.Status = domain.StatusImplementing
	git := testutil.NewMockGit("story/S1.1-login-flow")
	uc, _, _ := newStartTask(g, git)

	_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: "1.1.2"})
	var sessionErr *domain.ActiveSessionExistsError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, "1.1.1", sessionErr.ActiveID)
	// The guard fires before any git work.
	assert.Empty(t, git.Ops)
}

func TestStartTask_Execute_IntermittentAlongsideMain(t *testing.T) {
	g := testGraph()
	g.FindTask("1.1.1").Task.Status = domain.StatusImplementing
	git := testutil.NewMockGit("story/S1.1-login-flow")
	uc, _, _ := newStartTask(g, git)

	out, err := uc.Execute(context.Background(), StartTaskInput{TaskID: "0.1.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.1.1", out.PausedMainID)
	assert.Equal(t, "intermittent/S0.1-side-tasks", out.Branch.Branch)
	// The main task is untouched.
	assert.Equal(t, domain.StatusImplementing, g.FindTask("1.1.1").Task.Status)
}

func TestStartTask_Execute_DependencyNotMet(t *testing.T) {
	git := testutil.NewMockGit("main")
	uc, _, _ := newStartTask(testGraph(), git)

	_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: "1.1.2"})
	var depErr *domain.DependencyNotMetError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, []string{"1.1.1"}, depErr.Unmet)
	assert.Empty(t, git.Ops)
}

func TestStartTask_Execute_AlreadyCompleted(t *testing.T) {
	uc, _, _ := newStartTask(testGraph(), testutil.NewMockGit("main"))

	_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: "1.1.0"})
	var completedErr *domain.TaskAlreadyCompletedError
	assert.ErrorAs(t, err, &completedErr)
}

func TestStartTask_Execute_GitFailureAborts(t *testing.T) {
	g := testGraph()
	git := testutil.NewMockGit("main")
	git.FailOp = "pull"
	uc, graphs, _ := newStartTask(g, git)

	_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: "1.1.1"})
	var gitErr *domain.GitOperationError
	require.ErrorAs(t, err, &gitErr)
	// No status change was persisted.
	assert.Empty(t, graphs.SavedTaskFiles)
	assert.Equal(t, domain.StatusNotStarted, g.FindTask("1.1.1").Task.Status)
}

func TestStartTask_Execute_LockHeld(t *testing.T) {
	uc, _, lock := newStartTask(testGraph(), testutil.NewMockGit("main"))
	lock.AcquireErr = assert.AnError

	_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: "1.1.1"})
	assert.ErrorIs(t, err, assert.AnError)
}
