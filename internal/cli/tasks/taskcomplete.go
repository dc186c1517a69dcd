package tasks

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
)

// TaskCompleteCmd marks a recorded session's task as completed, which also
// advances the daily streak.
type TaskCompleteCmd struct {
	ID string `arg:"" help:"Task ID to complete (see 'focusflow task list --show-ids')."`
}

func (c *TaskCompleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.AttachUser(); err != nil {
		return err
	}

	profile, err := ctx.Sync.CompleteTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Printf("Task completed. Streak: %d day(s)\n", profile.Streak)
	return nil
}
