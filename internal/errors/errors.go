// Package errors formats command failures for the terminal and attaches
// a recovery hint to the failures that have a known next step.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/focusflow/internal/lockfile"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/syncer"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a one-line recovery suggestion for well-known failures,
// or an empty string when there is nothing actionable to add.
func Hint(err error) string {
	switch {
	case errors.Is(err, lockfile.ErrAlreadyRunning):
		return "Another focus session is running. Finish it before starting a new one."
	case errors.Is(err, storage.ErrProfileNotFound), errors.Is(err, syncer.ErrNotAttached):
		return "No profile found. Run 'focusflow init' to set one up."
	case errors.Is(err, storage.ErrWatchUnsupported):
		return "Live profile updates need the postgres backend."
	}
	return ""
}

// Fatal logs an error, prints it with any recovery hint, and exits with
// code 1. A nil error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(os.Stderr, "%s\n", hint)
	}
	os.Exit(1)
}

// Fatalf formats an error message, logs it, and exits with code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
