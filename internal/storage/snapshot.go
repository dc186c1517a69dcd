package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/focusflow/internal/models"
)

// ErrNoSnapshot indicates no session snapshot exists on disk.
var ErrNoSnapshot = errors.New("no session snapshot")

// SnapshotStore persists the ephemeral SessionState to a JSON file so a
// session survives a process restart. It is a single-device UX nicety, not
// a durability layer: losing the file loses nothing but continuity, since
// the only durable artifact a session produces is the task row written at
// finish. Callers must run the rehydration coercion on anything loaded.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a snapshot store writing to the given file.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Save writes the session state atomically (write tmp, rename).
func (s *SnapshotStore) Save(state models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write session snapshot: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Load reads the stored session state, returning ErrNoSnapshot when the
// file does not exist or is unreadable garbage. A broken snapshot is
// indistinguishable from no snapshot on purpose: the session is ephemeral
// and must never block startup.
func (s *SnapshotStore) Load() (models.SessionState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.SessionState{}, ErrNoSnapshot
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.SessionState{}, ErrNoSnapshot
	}
	return state, nil
}

// Clear removes the snapshot file.
func (s *SnapshotStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
