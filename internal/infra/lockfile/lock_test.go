package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".storyflow.lock")
}

func TestLock_AcquireRelease(t *testing.T) {
	path := lockPath(t)
	l := New(path)

	require.NoError(t, l.Acquire())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(content))

	require.NoError(t, l.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLock_HeldByLiveProcess(t *testing.T) {
	path := lockPath(t)
	// Our own PID is alive by definition, so a second lock cannot take over.
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0o600))

	l := New(path)
	err := l.Acquire()
	var held *HeldError
	require.ErrorAs(t, err, &held)
	assert.Equal(t, os.Getpid(), held.PID)
}

func TestLock_ReclaimsStaleLock(t *testing.T) {
	path := lockPath(t)
	// PIDs are bounded well below this on Linux, so the holder cannot exist.
	require.NoError(t, os.WriteFile(path, []byte("999999999\n"), 0o600))

	l := New(path)
	require.NoError(t, l.Acquire())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(content))
	require.NoError(t, l.Release())
}

func TestLock_ReclaimsUnreadableLock(t *testing.T) {
	path := lockPath(t)
	require.NoError(t, os.WriteFile(path, []byte("not a pid"), 0o600))

	l := New(path)
	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
}

func TestLock_ReleaseWithoutAcquire(t *testing.T) {
	l := New(lockPath(t))
	assert.NoError(t, l.Release())
}

func TestLock_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks", ".storyflow.lock")
	l := New(path)
	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
}
