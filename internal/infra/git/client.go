// Package git provides the version-control operations behind the branch
// synchronizer. Read-side queries go through go-git; mutating operations
// shell out to the git binary (go-git has no stash support) under an
// explicit timeout.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/hmendes/storyflow/internal/domain"
)

// ErrNotGitRepository is returned when no repository is found at or above
// the working directory.
var ErrNotGitRepository = errors.New("not a git repository (or any of the parent directories)")

// Client implements domain.Git for a single working directory.
type Client struct {
	repo       *gogit.Repository
	workingDir string
	timeout    time.Duration
}

// NewClient opens the repository containing dir. The timeout bounds every
// git subprocess invocation.
func NewClient(dir string, timeout time.Duration) (*Client, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotGitRepository
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return &Client{repo: repo, workingDir: dir, timeout: timeout}, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (c *Client) CurrentBranch(_ context.Context) (string, error) {
	head, err := c.repo.Head()
	if err != nil {
		return "", &domain.GitOperationError{Op: "branch --show-current", Detail: err.Error()}
	}
	if !head.Name().IsBranch() {
		return "", &domain.GitOperationError{Op: "branch --show-current", Detail: "HEAD is detached"}
	}
	return head.Name().Short(), nil
}

// BranchExists checks whether a local branch exists.
func (c *Client) BranchExists(_ context.Context, branch string) (bool, error) {
	_, err := c.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, &domain.GitOperationError{Op: "rev-parse --verify " + branch, Detail: err.Error()}
}

// HasUncommittedChanges checks for staged or unstaged changes.
// `git status --porcelain` prints nothing when the tree is clean.
func (c *Client) HasUncommittedChanges(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Checkout switches to an existing branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	_, err := c.run(ctx, "checkout", branch)
	return err
}

// CreateBranch creates and switches to a new branch from the current HEAD.
func (c *Client) CreateBranch(ctx context.Context, branch string) error {
	_, err := c.run(ctx, "checkout", "-b", branch)
	return err
}

// Pull updates the current branch from its upstream. A branch without an
// upstream is not an error; there is simply nothing to pull.
func (c *Client) Pull(ctx context.Context) error {
	_, err := c.run(ctx, "pull")
	var gitErr *domain.GitOperationError
	if errors.As(err, &gitErr) && strings.Contains(gitErr.Detail, "no tracking information") {
		return nil
	}
	return err
}

// StashPush stashes uncommitted changes with the given message.
func (c *Client) StashPush(ctx context.Context, message string) error {
	_, err := c.run(ctx, "stash", "push", "-m", message)
	return err
}

// StashPop applies and drops the most recent stash entry.
func (c *Client) StashPop(ctx context.Context) error {
	_, err := c.run(ctx, "stash", "pop")
	return err
}

// run executes a git subcommand under the client timeout, mapping any
// failure (including expiry) to GitOperationError.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	op := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...) //nolint:gosec // args are fixed subcommands plus branch names
	cmd.Dir = c.workingDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if ctx.Err() == context.DeadlineExceeded {
			detail = fmt.Sprintf("timed out after %s", c.timeout)
		} else if detail == "" {
			detail = err.Error()
		}
		return "", &domain.GitOperationError{Op: op, Detail: detail}
	}
	return string(out), nil
}

// Ensure Client implements domain.Git.
var _ domain.Git = (*Client)(nil)
