package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/julianstephens/focusflow/internal/lockfile"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/syncer"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      errors.New("failed to connect: connection refused"),
			expected: "Error: failed to connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "no args",
			format:   "something broke",
			args:     nil,
			expected: "Error: something broke",
		},
		{
			name:     "with args",
			format:   "failed to load %s: %v",
			args:     []interface{}{"profile", errors.New("timeout")},
			expected: "Error: failed to load profile: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		hasHint bool
	}{
		{
			name:    "session lock held",
			err:     lockfile.ErrAlreadyRunning,
			hasHint: true,
		},
		{
			name:    "wrapped missing profile",
			err:     fmt.Errorf("failed to load profile: %w", storage.ErrProfileNotFound),
			hasHint: true,
		},
		{
			name:    "not attached",
			err:     syncer.ErrNotAttached,
			hasHint: true,
		},
		{
			name:    "watch unsupported",
			err:     storage.ErrWatchUnsupported,
			hasHint: true,
		},
		{
			name:    "unknown error",
			err:     errors.New("something went wrong"),
			hasHint: false,
		},
		{
			name:    "nil error",
			err:     nil,
			hasHint: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := Hint(tt.err)
			if tt.hasHint && hint == "" {
				t.Errorf("Hint(%v) returned no suggestion", tt.err)
			}
			if !tt.hasHint && hint != "" {
				t.Errorf("Hint(%v) = %q, want none", tt.err, hint)
			}
		})
	}
}
