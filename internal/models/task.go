package models

import (
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
)

// Task is one attempted or completed focus attempt. A row is created when a
// session finishes (naturally or by user stop) with status attempted, and is
// flipped to completed at most once. The core never deletes tasks.
type Task struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Status      constants.TaskStatus `json:"status"`
	StartedAt   time.Time            `json:"started_at"`
	DurationMin int                  `json:"duration_min"`
}

// Completed reports whether the task has been marked done.
func (t Task) Completed() bool {
	return t.Status == constants.TaskCompleted
}
