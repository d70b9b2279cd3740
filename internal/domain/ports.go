package domain

import (
	"context"
	"time"
)

// GraphRepository manages the durable representation of the task graph:
// the project index, per-feature files, and per-task detail files.
type GraphRepository interface {
	// LoadGraph reconstructs the full graph from the project index and
	// feature files.
	LoadGraph() (*Graph, error)

	// SaveFeature writes a single feature file.
	SaveFeature(f *Feature) error

	// SaveProjectIndex writes the project index derived from the graph.
	SaveProjectIndex(g *Graph) error

	// SaveGraph writes every feature file and the project index.
	SaveGraph(g *Graph) error

	// LoadTaskFile reads the detail file for the task at loc.
	LoadTaskFile(loc *TaskLocation) (*TaskFile, error)

	// SaveTaskFile writes the detail file for the task at loc.
	SaveTaskFile(loc *TaskLocation, file *TaskFile) error

	// IsInitialized checks whether the project index exists.
	IsInitialized() bool

	// Initialize scaffolds the tasks directory and an empty index.
	Initialize(project string) error
}

// Git provides the version-control operations the branch synchronizer
// needs. Every method observes the context deadline; implementations map
// failures to GitOperationError.
type Git interface {
	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// BranchExists checks whether a local branch exists.
	BranchExists(ctx context.Context, branch string) (bool, error)

	// HasUncommittedChanges checks for staged or unstaged changes.
	HasUncommittedChanges(ctx context.Context) (bool, error)

	// Checkout switches to an existing branch.
	Checkout(ctx context.Context, branch string) error

	// CreateBranch creates and switches to a new branch from the current
	// HEAD.
	CreateBranch(ctx context.Context, branch string) error

	// Pull updates the current branch from its upstream.
	Pull(ctx context.Context) error

	// StashPush stashes uncommitted changes with the given message.
	StashPush(ctx context.Context, message string) error

	// StashPop applies and drops the most recent stash entry.
	StashPop(ctx context.Context) error
}

// SessionLock serializes graph mutation across CLI invocations.
type SessionLock interface {
	// Acquire takes the lock, reclaiming it if the holding process is
	// no longer alive.
	Acquire() error

	// Release drops the lock. Safe to call when not held.
	Release() error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
