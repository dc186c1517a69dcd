package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage/sqlite"
	"github.com/julianstephens/focusflow/internal/syncer"
)

func setupContext(t *testing.T) *Context {
	t.Helper()
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &Context{
		Store:     store,
		Sync:      syncer.New(store),
		User:      constants.LocalUser,
		ConfigDir: tempDir,
	}
}

func recordSession(t *testing.T, ctx *Context, name string) models.Task {
	t.Helper()
	task, err := ctx.Sync.RecordFinishedSession(models.SessionState{
		Phase:       constants.PhaseFinished,
		CurrentTask: name,
		StartedAt:   time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		DurationMin: 25,
	})
	if err != nil {
		t.Fatalf("failed to record session: %v", err)
	}
	return task
}

func TestFormatTask(t *testing.T) {
	task := models.Task{
		ID:          "abc-123",
		Name:        "write report",
		Status:      constants.TaskCompleted,
		StartedAt:   time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		DurationMin: 25,
	}

	line := FormatTask(task, false)
	if !strings.Contains(line, "write report") || !strings.Contains(line, "2025-06-10") {
		t.Errorf("unexpected format: %q", line)
	}
	if strings.Contains(line, "abc-123") {
		t.Errorf("id shown without --show-ids: %q", line)
	}

	withID := FormatTask(task, true)
	if !strings.Contains(withID, "abc-123") {
		t.Errorf("id missing with --show-ids: %q", withID)
	}
}

func TestTaskListCmd(t *testing.T) {
	ctx := setupContext(t)
	if _, err := ctx.AttachUser(); err != nil {
		t.Fatal(err)
	}
	recordSession(t, ctx, "one")

	cmd := &TaskListCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("task list failed: %v", err)
	}
}

func TestStatsCmd(t *testing.T) {
	ctx := setupContext(t)
	if _, err := ctx.AttachUser(); err != nil {
		t.Fatal(err)
	}
	task := recordSession(t, ctx, "one")
	if _, err := ctx.Sync.CompleteTask(task.ID); err != nil {
		t.Fatal(err)
	}

	cmd := &StatsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("stats failed: %v", err)
	}
}

func TestFocusCmd_RejectsInvalidInput(t *testing.T) {
	ctx := setupContext(t)

	cmd := &FocusCmd{Task: "   ", Duration: 25}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected blank task to be rejected")
	}

	cmd = &FocusCmd{Task: "write report", Duration: 0}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected zero duration to be rejected")
	}
}
