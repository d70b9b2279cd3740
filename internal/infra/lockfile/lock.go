// Package lockfile provides a PID-based advisory lock that serializes
// graph mutation across CLI invocations sharing one tasks directory.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/hmendes/storyflow/internal/domain"
)

// HeldError indicates that another live process holds the lock.
type HeldError struct {
	PID int
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("another storyflow command is running (pid %d); wait for it to finish or remove the lock file if it crashed", e.PID)
}

// Lock is an advisory lock file containing the holder's PID. A lock whose
// owning process is no longer alive is stale and gets reclaimed.
type Lock struct {
	path string
	held bool
}

// New creates a Lock at the given path.
func New(path string) *Lock {
	return &Lock{path: path}
}

// Acquire takes the lock. If the lock file exists but its PID is dead, the
// stale lock is removed and acquisition retried once.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	if err := l.tryAcquire(); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrExist) {
		return err
	}

	pid, err := l.readHolder()
	if err != nil {
		// Unreadable lock file: treat as stale.
		_ = os.Remove(l.path)
		return l.tryAcquire()
	}
	if processAlive(pid) {
		return &HeldError{PID: pid}
	}
	_ = os.Remove(l.path)
	return l.tryAcquire()
}

// Release drops the lock. Safe to call when not held.
func (l *Lock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

func (l *Lock) tryAcquire() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return os.ErrExist
		}
		return fmt.Errorf("create lock file: %w", err)
	}
	_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
	cerr := f.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(l.path)
		return fmt.Errorf("write lock file: %w", errors.Join(werr, cerr))
	}
	l.held = true
	return nil
}

func (l *Lock) readHolder() (int, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("parse lock file pid: %w", err)
	}
	return pid, nil
}

// processAlive checks whether a process with the given PID exists.
// Signal 0 performs the existence check without delivering anything.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	// EPERM means the process exists but belongs to another user.
	return errors.Is(err, syscall.EPERM)
}

// Ensure Lock implements SessionLock.
var _ domain.SessionLock = (*Lock)(nil)
