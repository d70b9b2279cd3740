package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors without structured payloads.
var (
	ErrNoActiveSession = errors.New("no active task; run `storyflow next` to find available work, then `storyflow start <taskId>`")
	ErrNotInitialized  = errors.New("tasks directory not initialized (run 'storyflow init <project>' first)")
	ErrNoBlockedTask   = errors.New("no blocked task to resume; run `storyflow status` to inspect the backlog")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyReason     = errors.New("reason cannot be empty")
)

// TaskNotFoundError indicates that a task ID does not exist in the graph.
type TaskNotFoundError struct {
	ID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %s not found; run `storyflow status` to list known tasks", e.ID)
}

// StoryNotFoundError indicates that a story ID does not exist in the graph.
type StoryNotFoundError struct {
	ID string
}

func (e *StoryNotFoundError) Error() string {
	return fmt.Sprintf("story %s not found; run `storyflow status` to list known stories", e.ID)
}

// FeatureNotFoundError indicates that a feature ID does not exist in the graph.
type FeatureNotFoundError struct {
	ID string
}

func (e *FeatureNotFoundError) Error() string {
	return fmt.Sprintf("feature %s not found; run `storyflow status` to list known features", e.ID)
}

// ActiveSessionExistsError indicates that starting a task would violate the
// single-active-task invariant.
type ActiveSessionExistsError struct {
	ActiveID    string
	RequestedID string
}

func (e *ActiveSessionExistsError) Error() string {
	return fmt.Sprintf("task %s is already active; run `storyflow check` to advance it or `storyflow skip <reason>` to block it before starting %s",
		e.ActiveID, e.RequestedID)
}

// TaskAlreadyCompletedError indicates an operation on a completed task.
type TaskAlreadyCompletedError struct {
	ID string
}

func (e *TaskAlreadyCompletedError) Error() string {
	return fmt.Sprintf("task %s is already completed; run `storyflow next` to find the next task", e.ID)
}

// TaskBlockedError indicates an operation on a blocked task that requires an
// unblocked one.
type TaskBlockedError struct {
	ID     string
	Reason string
}

func (e *TaskBlockedError) Error() string {
	return fmt.Sprintf("task %s is blocked (%s); run `storyflow resume` to continue work on it", e.ID, e.Reason)
}

// DependencyNotMetError indicates that a task cannot start because one or
// more of its dependencies are not completed.
type DependencyNotMetError struct {
	ID    string
	Unmet []string
}

func (e *DependencyNotMetError) Error() string {
	return fmt.Sprintf("task %s has unmet dependencies: %s; complete them first or run `storyflow next` for available work",
		e.ID, strings.Join(e.Unmet, ", "))
}

// InvalidWorkflowStateError indicates a transition attempted from a status
// that does not permit it.
type InvalidWorkflowStateError struct {
	ID       string
	Current  Status
	Required string
	Action   string
}

func (e *InvalidWorkflowStateError) Error() string {
	return fmt.Sprintf("cannot %s task %s: status is %q, requires %s; run `storyflow status %s` to inspect it",
		e.Action, e.ID, e.Current, e.Required, e.ID)
}

// WrongBranchError indicates that the working directory is not on the branch
// the active story requires.
type WrongBranchError struct {
	Current  string
	Expected string
}

func (e *WrongBranchError) Error() string {
	return fmt.Sprintf("on branch %q but story requires %q; run `git checkout %s` to fix it",
		e.Current, e.Expected, e.Expected)
}

// GitOperationError indicates that an underlying git command failed.
type GitOperationError struct {
	Op     string
	Detail string
}

func (e *GitOperationError) Error() string {
	return fmt.Sprintf("git %s failed: %s; resolve the repository state and re-run the command", e.Op, e.Detail)
}

// FileNotFoundError indicates that an expected index, feature, or task file
// is missing on disk.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s; run `storyflow init <project>` if the tasks directory was never created", e.Path)
}

// InvalidFileFormatError indicates that a persisted file failed JSON parsing
// or schema validation.
type InvalidFileFormatError struct {
	Path   string
	Detail string
}

func (e *InvalidFileFormatError) Error() string {
	return fmt.Sprintf("invalid file format in %s: %s; fix the file by hand or restore it from version control", e.Path, e.Detail)
}
