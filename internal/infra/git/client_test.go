//go:build integration

package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmendes/storyflow/internal/domain"
)

// testRepo creates a temporary git repository with one commit on main.
func testRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	run(t, dir, "git", "init", "-b", "main")
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test User")

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# Test\n"), 0o644))
	run(t, dir, "git", "add", ".")
	run(t, dir, "git", "commit", "-m", "Initial commit")

	return dir
}

func run(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "command failed: %s %v\noutput: %s", name, args, out)
	return string(out)
}

func newTestClient(t *testing.T, dir string) *Client {
	t.Helper()
	c, err := NewClient(dir, 30*time.Second)
	require.NoError(t, err)
	return c
}

func TestIntegration_NewClient_NotARepository(t *testing.T) {
	_, err := NewClient(t.TempDir(), time.Second)
	assert.ErrorIs(t, err, ErrNotGitRepository)
}

func TestIntegration_CurrentBranch(t *testing.T) {
	dir := testRepo(t)
	c := newTestClient(t, dir)

	branch, err := c.CurrentBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestIntegration_BranchExists(t *testing.T) {
	dir := testRepo(t)
	c := newTestClient(t, dir)
	ctx := context.Background()

	exists, err := c.BranchExists(ctx, "main")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.BranchExists(ctx, "story/S1.1-login")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIntegration_CreateAndCheckout(t *testing.T) {
	dir := testRepo(t)
	c := newTestClient(t, dir)
	ctx := context.Background()

	require.NoError(t, c.CreateBranch(ctx, "story/S1.1-login"))
	branch, err := c.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "story/S1.1-login", branch)

	require.NoError(t, c.Checkout(ctx, "main"))
	branch, err = c.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestIntegration_HasUncommittedChanges(t *testing.T) {
	dir := testRepo(t)
	c := newTestClient(t, dir)
	ctx := context.Background()

	dirty, err := c.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x\n"), 0o644))
	dirty, err = c.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestIntegration_StashRoundTrip(t *testing.T) {
	dir := testRepo(t)
	c := newTestClient(t, dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Changed\n"), 0o644))
	require.NoError(t, c.StashPush(ctx, domain.StashMessage("story/S1.1-login")))

	dirty, err := c.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, c.StashPop(ctx))
	dirty, err = c.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestIntegration_PullWithoutUpstream(t *testing.T) {
	dir := testRepo(t)
	c := newTestClient(t, dir)

	// No upstream configured: nothing to pull, not an error.
	assert.NoError(t, c.Pull(context.Background()))
}

func TestIntegration_CheckoutUnknownBranch(t *testing.T) {
	dir := testRepo(t)
	c := newTestClient(t, dir)

	err := c.Checkout(context.Background(), "does-not-exist")
	var gitErr *domain.GitOperationError
	require.ErrorAs(t, err, &gitErr)
	assert.Contains(t, gitErr.Op, "checkout")
}
