package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/testutil"
)

func TestBlockTask_Execute(t *testing.T) {
	g := testGraph()
	g.FindTask("1.1.1").Task.Status = domain.StatusImplementing
	graphs := testutil.NewMockGraphRepository(g)
	uc := NewBlockTask(graphs, &testutil.MockLock{}, testLogger)

	out, err := uc.Execute(context.Background(), BlockTaskInput{Reason: "waiting on design review"})
	require.NoError(t, err)
	assert.Equal(t, "1.1.1", out.Location.Task.ID)
	assert.Equal(t, domain.StatusImplementing, out.From)
	assert.Equal(t, domain.StatusBlocked, out.Location.Task.Status)

	file := graphs.TaskFiles["1.1.1"]
	assert.Equal(t, "waiting on design review", file.BlockedReason)
	assert.Equal(t, domain.StatusImplementing, file.PreviousStatus)
	// A blocked task still counts toward the story rollup.
	assert.Equal(t, domain.StatusInProgress, g.FindStory("1.1").Story.Status)
}

func TestBlockTask_Execute_NoActiveSession(t *testing.T) {
	uc := NewBlockTask(testutil.NewMockGraphRepository(testGraph()), &testutil.MockLock{}, testLogger)

	_, err := uc.Execute(context.Background(), BlockTaskInput{Reason: "why"})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestBlockTask_Execute_EmptyReason(t *testing.T) {
	g := testGraph()
	g.FindTask("1.1.1").Task.Status = domain.StatusImplementing
	uc := NewBlockTask(testutil.NewMockGraphRepository(g), &testutil.MockLock{}, testLogger)

	_, err := uc.Execute(context.Background(), BlockTaskInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyReason)
}
