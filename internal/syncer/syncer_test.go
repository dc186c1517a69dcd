package syncer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/storage/sqlite"
	"github.com/julianstephens/focusflow/internal/utils"
)

func setupSyncer(t *testing.T) (*Synchronizer, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func finishedSession(task string) models.SessionState {
	return models.SessionState{
		Phase:       constants.PhaseFinished,
		CurrentTask: task,
		StartedAt:   time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		DurationMin: 25,
	}
}

func TestAttach_CreatesDefaultsOnlyWhenAbsent(t *testing.T) {
	s, store := setupSyncer(t)

	profile, err := s.Attach("alice")
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if profile.Plan != constants.PlanFree || profile.Settings.DurationMin != constants.DefaultDurationMin {
		t.Errorf("expected default profile, got %+v", profile)
	}

	// Mutate the stored profile, detach, attach again: defaults must not
	// overwrite existing data.
	if err := store.MergeProfile("alice", map[string]string{storage.FieldStreak: "9"}); err != nil {
		t.Fatal(err)
	}
	s.Detach()
	if s.Attached() {
		t.Error("expected detached state")
	}

	profile, err = s.Attach("alice")
	if err != nil {
		t.Fatalf("re-attach failed: %v", err)
	}
	if profile.Streak != 9 {
		t.Errorf("re-attach clobbered existing profile: %+v", profile)
	}
}

func TestDetach_RequiresReattach(t *testing.T) {
	s, _ := setupSyncer(t)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}
	s.Detach()

	if _, err := s.Tasks(); !errors.Is(err, ErrNotAttached) {
		t.Errorf("expected ErrNotAttached, got %v", err)
	}
	if err := s.SetSettings(models.DefaultSettings()); !errors.Is(err, ErrNotAttached) {
		t.Errorf("expected ErrNotAttached, got %v", err)
	}
}

func TestSetSettings_WritesThrough(t *testing.T) {
	s, store := setupSyncer(t)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}

	settings := models.DefaultSettings()
	settings.DurationMin = 50
	settings.Tone = constants.ToneFun
	if err := s.SetSettings(settings); err != nil {
		t.Fatalf("set settings failed: %v", err)
	}

	if got := s.Profile().Settings.DurationMin; got != 50 {
		t.Errorf("local cache not updated: %d", got)
	}

	stored, err := store.GetProfile("alice")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Settings.DurationMin != 50 || stored.Settings.Tone != constants.ToneFun {
		t.Errorf("settings not written through: %+v", stored.Settings)
	}
}

func TestRecordAndComplete(t *testing.T) {
	s, store := setupSyncer(t)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}

	task, err := s.RecordFinishedSession(finishedSession("write report"))
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if task.Status != constants.TaskAttempted || task.ID == "" {
		t.Errorf("expected attempted task with id, got %+v", task)
	}

	profile, err := s.CompleteTask(task.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	today, _ := utils.Today(profile.Settings.Timezone)
	if profile.Streak != 1 || profile.LastCompletedDate != today {
		t.Errorf("expected streak 1 for %s, got %+v", today, profile)
	}

	stored, err := store.GetTask("alice", task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != constants.TaskCompleted {
		t.Errorf("task not completed in store: %s", stored.Status)
	}
}

func TestCompleteTask_SecondSameDayKeepsStreak(t *testing.T) {
	s, _ := setupSyncer(t)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}

	first, _ := s.RecordFinishedSession(finishedSession("one"))
	second, _ := s.RecordFinishedSession(finishedSession("two"))

	if _, err := s.CompleteTask(first.ID); err != nil {
		t.Fatal(err)
	}
	profile, err := s.CompleteTask(second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Streak != 1 {
		t.Errorf("same-day completion must not double-count: streak %d", profile.Streak)
	}
}

func TestCompleteTask_AlreadyCompletedIsNoop(t *testing.T) {
	s, _ := setupSyncer(t)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}

	task, _ := s.RecordFinishedSession(finishedSession("one"))
	before, err := s.CompleteTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	after, err := s.CompleteTask(task.ID)
	if err != nil {
		t.Fatalf("re-completion errored: %v", err)
	}
	if after.Streak != before.Streak || after.LastCompletedDate != before.LastCompletedDate {
		t.Errorf("re-completion changed streak state: %+v -> %+v", before, after)
	}
}

func TestApplyRemote_FullReplace(t *testing.T) {
	s, _ := setupSyncer(t)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}

	remote := models.DefaultProfile("alice")
	remote.Plan = constants.PlanPro
	remote.Streak = 12
	s.ApplyRemote(remote)

	got := s.Profile()
	if got.Plan != constants.PlanPro || got.Streak != 12 {
		t.Errorf("remote snapshot not applied: %+v", got)
	}

	// Snapshots for other users are ignored
	other := models.DefaultProfile("bob")
	other.Streak = 99
	s.ApplyRemote(other)
	if s.Profile().Streak == 99 {
		t.Error("snapshot for a different user was applied")
	}
}

// watchableStore fakes a push-capable backend over the sqlite store.
type watchableStore struct {
	storage.Provider
	updates chan models.UserProfile
}

func (s *watchableStore) WatchProfile(_ context.Context, _ string) (<-chan models.UserProfile, error) {
	return s.updates, nil
}

func TestSubscribe_AppliesRemoteSnapshots(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ws := &watchableStore{Provider: store, updates: make(chan models.UserProfile, 1)}
	s := New(ws)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	remote := models.DefaultProfile("alice")
	remote.Streak = 7
	ws.updates <- remote

	deadline := time.After(2 * time.Second)
	for s.Profile().Streak != 7 {
		select {
		case <-deadline:
			t.Fatal("remote snapshot never applied to the cached profile")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSubscribe_UnsupportedBackend(t *testing.T) {
	s, _ := setupSyncer(t)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}
	if err := s.Subscribe(context.Background()); !errors.Is(err, storage.ErrWatchUnsupported) {
		t.Errorf("expected ErrWatchUnsupported from the sqlite backend, got %v", err)
	}
}

func TestStats(t *testing.T) {
	s, _ := setupSyncer(t)
	if _, err := s.Attach("alice"); err != nil {
		t.Fatal(err)
	}

	a, _ := s.RecordFinishedSession(finishedSession("done"))
	if _, err := s.RecordFinishedSession(finishedSession("abandoned")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CompleteTask(a.ID); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.CompletedCount != 1 || stats.TotalFocusMin != 25 || len(stats.Tasks) != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.Streak != 1 {
		t.Errorf("expected streak 1, got %d", stats.Streak)
	}
}
