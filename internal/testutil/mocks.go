// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/hmendes/storyflow/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockLock is a test double for domain.SessionLock.
type MockLock struct {
	AcquireErr error
	Acquired   int
	Released   int
}

// Acquire records the call.
func (m *MockLock) Acquire() error {
	if m.AcquireErr != nil {
		return m.AcquireErr
	}
	m.Acquired++
	return nil
}

// Release records the call.
func (m *MockLock) Release() error {
	m.Released++
	return nil
}

// MockGraphRepository is a test double for domain.GraphRepository backed by
// an in-memory graph.
type MockGraphRepository struct {
	Graph          *domain.Graph
	TaskFiles      map[string]*domain.TaskFile
	LoadErr        error
	SaveErr        error
	SavedFeatures  []string
	SavedTaskFiles []string
	IndexSaves     int
	InitProject    string
}

// NewMockGraphRepository creates a MockGraphRepository with initialized maps.
func NewMockGraphRepository(g *domain.Graph) *MockGraphRepository {
	return &MockGraphRepository{
		Graph:     g,
		TaskFiles: make(map[string]*domain.TaskFile),
	}
}

// LoadGraph returns the configured graph.
func (m *MockGraphRepository) LoadGraph() (*domain.Graph, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Graph, nil
}

// SaveFeature records the save.
func (m *MockGraphRepository) SaveFeature(f *domain.Feature) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SavedFeatures = append(m.SavedFeatures, f.ID)
	return nil
}

// SaveProjectIndex records the save.
func (m *MockGraphRepository) SaveProjectIndex(_ *domain.Graph) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.IndexSaves++
	return nil
}

// SaveGraph records saves for every feature plus the index.
func (m *MockGraphRepository) SaveGraph(g *domain.Graph) error {
	for _, f := range g.Features {
		if err := m.SaveFeature(f); err != nil {
			return err
		}
	}
	return m.SaveProjectIndex(g)
}

// LoadTaskFile returns the stored task file, synthesizing one from the ref
// on first access so tests only pre-populate files they care about.
func (m *MockGraphRepository) LoadTaskFile(loc *domain.TaskLocation) (*domain.TaskFile, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if f, ok := m.TaskFiles[loc.Task.ID]; ok {
		return f, nil
	}
	f := &domain.TaskFile{
		ID:     loc.Task.ID,
		Title:  loc.Task.Title,
		Status: loc.Task.Status,
	}
	m.TaskFiles[loc.Task.ID] = f
	return f, nil
}

// SaveTaskFile records the save.
func (m *MockGraphRepository) SaveTaskFile(loc *domain.TaskLocation, file *domain.TaskFile) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.TaskFiles[loc.Task.ID] = file
	m.SavedTaskFiles = append(m.SavedTaskFiles, loc.Task.ID)
	return nil
}

// IsInitialized reports whether Initialize was called.
func (m *MockGraphRepository) IsInitialized() bool {
	return m.InitProject != ""
}

// Initialize records the project name.
func (m *MockGraphRepository) Initialize(project string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.InitProject = project
	return nil
}

// MockGit is a test double for domain.Git. It tracks the current branch and
// records every operation in order.
type MockGit struct {
	Branch   string
	Branches map[string]bool
	Dirty    bool
	FailOp   string // operation name that fails with a GitOperationError
	Ops      []string
}

// NewMockGit creates a MockGit on the given branch.
func NewMockGit(branch string) *MockGit {
	return &MockGit{
		Branch:   branch,
		Branches: map[string]bool{branch: true},
	}
}

func (m *MockGit) record(op string) error {
	m.Ops = append(m.Ops, op)
	if m.FailOp == op {
		return &domain.GitOperationError{Op: op, Detail: "mock failure"}
	}
	return nil
}

// CurrentBranch returns the tracked branch.
func (m *MockGit) CurrentBranch(_ context.Context) (string, error) {
	if err := m.record("current-branch"); err != nil {
		return "", err
	}
	return m.Branch, nil
}

// BranchExists checks the tracked branch set.
func (m *MockGit) BranchExists(_ context.Context, branch string) (bool, error) {
	if err := m.record("branch-exists"); err != nil {
		return false, err
	}
	return m.Branches[branch], nil
}

// HasUncommittedChanges returns the configured dirtiness.
func (m *MockGit) HasUncommittedChanges(_ context.Context) (bool, error) {
	if err := m.record("status"); err != nil {
		return false, err
	}
	return m.Dirty, nil
}

// Checkout switches the tracked branch.
func (m *MockGit) Checkout(_ context.Context, branch string) error {
	if err := m.record("checkout " + branch); err != nil {
		return err
	}
	m.Branch = branch
	return nil
}

// CreateBranch creates and switches to a new tracked branch.
func (m *MockGit) CreateBranch(_ context.Context, branch string) error {
	if err := m.record("create " + branch); err != nil {
		return err
	}
	m.Branches[branch] = true
	m.Branch = branch
	return nil
}

// Pull records the call.
func (m *MockGit) Pull(_ context.Context) error {
	return m.record("pull")
}

// StashPush records the call and marks the tree clean.
func (m *MockGit) StashPush(_ context.Context, _ string) error {
	if err := m.record("stash-push"); err != nil {
		return err
	}
	m.Dirty = false
	return nil
}

// StashPop records the call.
func (m *MockGit) StashPop(_ context.Context) error {
	return m.record("stash-pop")
}

// Ensure the mocks satisfy their ports.
var (
	_ domain.GraphRepository = (*MockGraphRepository)(nil)
	_ domain.Git             = (*MockGit)(nil)
	_ domain.SessionLock     = (*MockLock)(nil)
	_ domain.Clock           = (*MockClock)(nil)
)
