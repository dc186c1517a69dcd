// Package lockfile guards against two headless focus sessions ticking the
// same snapshot at once. The lock is a pidfile validated against the live
// process table, so a crash never leaves the app permanently locked.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
)

var findProcessFunc = ps.FindProcess

// ErrAlreadyRunning reports that another live process holds the lock.
var ErrAlreadyRunning = errors.New("another focus session is already running")

// Lock is a held pidfile. Release it when the session loop exits.
type Lock struct {
	path string
}

// Acquire writes a pidfile at path, replacing any stale one left behind by
// a dead process.
func Acquire(path string) (*Lock, error) {
	if pid, ok := readPid(path); ok {
		process, err := findProcessFunc(pid)
		if err == nil && process != nil && sameExecutable(process.Executable()) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		// Stale lock from a dead or recycled pid
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lockfile dir: %w", err)
	}
	content := fmt.Sprintf("%d|%s", os.Getpid(), executableName())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the pidfile.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func readPid(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, false
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	return pid, true
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return "focusflow"
	}
	return filepath.Base(exe)
}

// sameExecutable guards against pid recycling: a reused pid belonging to
// an unrelated program does not count as a live lock holder.
func sameExecutable(name string) bool {
	return strings.HasPrefix(name, executableName()) || strings.HasPrefix(executableName(), name)
}
