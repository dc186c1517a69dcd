package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/syncer"
)

type Context struct {
	Store     storage.Provider
	Sync      *syncer.Synchronizer
	User      string
	ConfigDir string
}

// AttachUser attaches the synchronizer to the configured user, creating a
// default profile on first use.
func (c *Context) AttachUser() (models.UserProfile, error) {
	return c.Sync.Attach(c.User)
}

// SnapshotPath is where the ephemeral session snapshot lives.
func (c *Context) SnapshotPath() string {
	return filepath.Join(c.ConfigDir, constants.SnapshotFileName)
}

// LockfilePath is the pidfile guarding concurrent headless sessions.
func (c *Context) LockfilePath() string {
	return filepath.Join(c.ConfigDir, constants.LockfileName)
}

// FormatTask renders one task line for list output.
func FormatTask(task models.Task, showIDs bool) string {
	idStr := ""
	if showIDs {
		idStr = fmt.Sprintf(" (ID: %s)", task.ID)
	}
	return fmt.Sprintf("  [%s] %s%s - %dm on %s",
		task.Status, task.Name, idStr, task.DurationMin,
		task.StartedAt.Format(constants.DateFormat))
}
