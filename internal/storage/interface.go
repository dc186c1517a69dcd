package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/focusflow/internal/models"
)

var (
	// ErrProfileNotFound indicates confirmed absence of a profile, the only
	// read failure that may be answered by creating defaults. Any other
	// load error must surface rather than silently reset a user's history.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrTaskNotFound indicates the requested task does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrWatchUnsupported is returned by backends without push updates
	ErrWatchUnsupported = errors.New("profile subscriptions not supported by this store")
)

// Provider is the durable-store contract: one profile document and one
// task log per user. Profile writes are merge writes (per-field), so
// concurrent unrelated fields are preserved; task writes are insert/update.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile(user string) (models.UserProfile, error)
	CreateProfile(profile models.UserProfile) error
	// MergeProfile writes only the given fields, leaving others untouched.
	MergeProfile(user string, fields map[string]string) error
	// WatchProfile delivers full-profile snapshots on remote changes. The
	// consumer treats each delivery as a full replace of its cached copy.
	WatchProfile(ctx context.Context, user string) (<-chan models.UserProfile, error)

	// Tasks
	AddTask(user string, task models.Task) error
	GetTask(user, id string) (models.Task, error)
	// ListTasks returns newest-first; limit <= 0 means no cap.
	ListTasks(user string, limit int) ([]models.Task, error)
	// CompleteTask flips the task to completed and writes the new streak
	// pair in a single transaction, so a crash can never leave a completed
	// task without its streak update or vice versa.
	CompleteTask(user, taskID string, streak int, lastCompletedDate string) error

	// Utils
	GetConfigPath() string
}
