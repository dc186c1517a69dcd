package cli

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/constants"
)

type TaskListCmd struct {
	CompletedOnly bool `help:"Show only completed tasks."`
	ShowIDs       bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if _, err := ctx.AttachUser(); err != nil {
		return err
	}

	tasks, err := ctx.Sync.Tasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, task := range tasks {
		if c.CompletedOnly && task.Status != constants.TaskCompleted {
			continue
		}
		fmt.Println(FormatTask(task, c.ShowIDs))
	}

	return nil
}
