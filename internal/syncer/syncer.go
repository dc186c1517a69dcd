package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/streak"
	"github.com/julianstephens/focusflow/internal/utils"
)

// ErrNotAttached is returned for durable operations before Attach.
var ErrNotAttached = errors.New("no user attached")

// Synchronizer reconciles the volatile local session with the durable
// per-user profile and task log. The cached profile is optimistic: local
// writes update it immediately and flow through to the store as merge
// writes, while inbound subscription snapshots replace it wholesale.
// Methods are synchronous; callers that must not block (the tick loop)
// run them on a goroutine and log failures, since the in-memory state
// remains the source of truth for the running session.
type Synchronizer struct {
	mu       sync.Mutex
	store    storage.Provider
	user     string
	attached bool
	profile  models.UserProfile
}

// New creates a synchronizer over the given durable store.
func New(store storage.Provider) *Synchronizer {
	return &Synchronizer{store: store}
}

// Attach loads the durable state for a user who just became known. A
// confirmed missing profile is created with defaults; any other load
// failure surfaces, because fabricating defaults there would silently
// erase a user's streak and history.
func (s *Synchronizer) Attach(user string) (models.UserProfile, error) {
	profile, err := s.store.GetProfile(user)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			return models.UserProfile{}, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = models.DefaultProfile(user)
		if err := s.store.CreateProfile(profile); err != nil {
			return models.UserProfile{}, fmt.Errorf("failed to create profile: %w", err)
		}
	}

	s.mu.Lock()
	s.user = user
	s.attached = true
	s.profile = profile
	s.mu.Unlock()

	return profile, nil
}

// Detach resets in-memory state to defaults. Remote data is untouched.
func (s *Synchronizer) Detach() {
	s.mu.Lock()
	s.user = ""
	s.attached = false
	s.profile = models.UserProfile{}
	s.mu.Unlock()
}

// Attached reports whether a user is currently attached.
func (s *Synchronizer) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// Profile returns the cached durable profile.
func (s *Synchronizer) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// ApplyRemote replaces the cached profile with an inbound snapshot. Each
// subscription delivery is a full document, not a patch.
func (s *Synchronizer) ApplyRemote(profile models.UserProfile) {
	s.mu.Lock()
	if s.attached && profile.User == s.user {
		s.profile = profile
	}
	s.mu.Unlock()
}

// Watch subscribes to remote profile changes for the attached user.
func (s *Synchronizer) Watch(ctx context.Context) (<-chan models.UserProfile, error) {
	s.mu.Lock()
	user := s.user
	attached := s.attached
	s.mu.Unlock()

	if !attached {
		return nil, ErrNotAttached
	}
	return s.store.WatchProfile(ctx, user)
}

// Subscribe consumes remote profile snapshots in the background until ctx
// is cancelled, replacing the cached profile on each delivery. Backends
// without push support return storage.ErrWatchUnsupported and leave the
// cache write-through only.
func (s *Synchronizer) Subscribe(ctx context.Context) error {
	updates, err := s.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for profile := range updates {
			s.ApplyRemote(profile)
		}
	}()
	return nil
}

// SetSettings applies a settings change locally and writes it through as a
// merge write, leaving plan and streak fields untouched.
func (s *Synchronizer) SetSettings(settings models.Settings) error {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return ErrNotAttached
	}
	s.profile.Settings = settings
	user := s.user
	s.mu.Unlock()

	return s.store.MergeProfile(user, storage.SettingsFields(settings))
}

// SetPlan applies a plan change locally and writes it through.
func (s *Synchronizer) SetPlan(plan constants.Plan) error {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return ErrNotAttached
	}
	s.profile.Plan = plan
	user := s.user
	s.mu.Unlock()

	return s.store.MergeProfile(user, map[string]string{storage.FieldPlan: string(plan)})
}

// RecordFinishedSession turns a finished session into the durable task row
// it produces, with status attempted.
func (s *Synchronizer) RecordFinishedSession(state models.SessionState) (models.Task, error) {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return models.Task{}, ErrNotAttached
	}
	user := s.user
	s.mu.Unlock()

	task := models.Task{
		ID:          uuid.NewString(),
		Name:        state.CurrentTask,
		Status:      constants.TaskAttempted,
		StartedAt:   state.StartedAt,
		DurationMin: state.DurationMin,
	}
	if err := s.store.AddTask(user, task); err != nil {
		return models.Task{}, fmt.Errorf("failed to record task: %w", err)
	}
	return task, nil
}

// CompleteTask marks an attempted task completed and advances the streak,
// as one durable transaction. Completing an already-completed task is a
// no-op: the status is monotonic and same-day streak accounting is
// idempotent anyway.
func (s *Synchronizer) CompleteTask(taskID string) (models.UserProfile, error) {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return models.UserProfile{}, ErrNotAttached
	}
	user := s.user
	profile := s.profile
	s.mu.Unlock()

	task, err := s.store.GetTask(user, taskID)
	if err != nil {
		return models.UserProfile{}, err
	}
	if task.Completed() {
		return profile, nil
	}

	today, err := utils.Today(profile.Settings.Timezone)
	if err != nil {
		return models.UserProfile{}, err
	}
	newStreak, newDate := streak.Advance(profile.Streak, profile.LastCompletedDate, today)

	if err := s.store.CompleteTask(user, taskID, newStreak, newDate); err != nil {
		return models.UserProfile{}, err
	}

	s.mu.Lock()
	if s.attached && s.user == user {
		s.profile.Streak = newStreak
		s.profile.LastCompletedDate = newDate
	}
	profile = s.profile
	s.mu.Unlock()

	return profile, nil
}

// Task returns a single task row by ID.
func (s *Synchronizer) Task(taskID string) (models.Task, error) {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return models.Task{}, ErrNotAttached
	}
	user := s.user
	s.mu.Unlock()

	return s.store.GetTask(user, taskID)
}

// Tasks returns the task log, newest first. Free-plan history is capped;
// retention is a storage-side policy, not part of streak accounting.
func (s *Synchronizer) Tasks() ([]models.Task, error) {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return nil, ErrNotAttached
	}
	user := s.user
	plan := s.profile.Plan
	s.mu.Unlock()

	limit := 0
	if plan == constants.PlanFree {
		limit = constants.FreeTaskHistoryLimit
	}
	return s.store.ListTasks(user, limit)
}

// Stats summarizes the task log for the recap view.
type Stats struct {
	Tasks          []models.Task
	Streak         int
	CompletedCount int
	TotalFocusMin  int
}

// Stats aggregates completion counts and total focused minutes.
func (s *Synchronizer) Stats() (Stats, error) {
	tasks, err := s.Tasks()
	if err != nil {
		return Stats{}, err
	}

	out := Stats{Tasks: tasks, Streak: s.Profile().Streak}
	for _, t := range tasks {
		if t.Completed() {
			out.CompletedCount++
			out.TotalFocusMin += t.DurationMin
		}
	}
	return out, nil
}

// Timezone returns the attached user's configured timezone.
func (s *Synchronizer) Timezone() string {
	return s.Profile().Settings.Timezone
}

// Now returns the current time in the attached user's timezone, falling
// back to system local time on a bad zone name.
func (s *Synchronizer) Now() time.Time {
	now, err := utils.NowInTimezone(s.Timezone())
	if err != nil {
		return time.Now()
	}
	return now
}
