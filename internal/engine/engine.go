// Package engine drives a focus session at a 1 Hz cooperative tick. A
// single Engine owns the session state; every mutation goes through the
// session reducer, and each tick checks the nudge schedule against the
// wall clock. Callers interact through methods and the OnNudge/OnFinished
// hooks, never by touching state directly.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/nudge"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/session"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/syncer"
)

// Config wires an Engine's collaborators. Notifier and Provider may be
// nil; nudges then fall back to hooks and pool text only. Clock defaults
// to time.Now.
type Config struct {
	Sync      *syncer.Synchronizer
	Snapshots *storage.SnapshotStore
	Notifier  notifier.Notifier
	Provider  nudge.Provider
	Clock     func() time.Time
}

// Engine owns the session state machine, the nudge schedule, and the
// delivery gate for one attached user.
type Engine struct {
	mu       sync.Mutex
	state    models.SessionState
	schedule nudge.Schedule
	gate     *nudge.Gate
	lastTask models.Task

	sync      *syncer.Synchronizer
	snapshots *storage.SnapshotStore
	notify    notifier.Notifier
	provider  nudge.Provider
	clock     func() time.Time

	// OnNudge receives final nudge text after the provider or fallback
	// resolves. OnFinished fires once per session end with the recorded
	// task. Set both before Run or the first Tick.
	OnNudge    func(text string)
	OnFinished func(task models.Task)
}

func New(cfg Config) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		state:     models.IdleSession(),
		gate:      nudge.NewGate(),
		sync:      cfg.Sync,
		snapshots: cfg.Snapshots,
		notify:    cfg.Notifier,
		provider:  cfg.Provider,
		clock:     clock,
	}
}

// Restore loads the persisted session snapshot and coerces it against the
// current clock. An expired focusing session comes back as finished, a
// missing or corrupt snapshot as idle.
func (e *Engine) Restore() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snapshots == nil {
		return
	}
	saved, err := e.snapshots.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrNoSnapshot) {
			logger.Warn("discarding unreadable session snapshot", "error", err)
		}
		e.state = models.IdleSession()
		return
	}
	e.state = session.Rehydrate(saved, e.clock())
	if e.state.Active() {
		e.schedule = nudge.Plan(e.state.DurationMin, e.cadence())
		e.fastForwardSchedule()
		return
	}
	if saved.Phase == constants.PhaseFocusing && e.state.Phase == constants.PhaseFinished {
		// The session ran out while the process was down. Record it now so
		// the finished screen can still complete the task.
		e.persist()
		e.recordFinishedLocked()
	}
	if e.state.Phase == constants.PhaseFinished && e.lastTask.ID == "" && e.state.RecordedTaskID != "" && e.sync != nil {
		task, err := e.sync.Task(e.state.RecordedTaskID)
		if err != nil {
			logger.Warn("failed to reload recorded task", "error", err)
			return
		}
		e.lastTask = task
	}
}

// State returns a copy of the current session state.
func (e *Engine) State() models.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// LastTask returns the task recorded for the most recently finished
// session, if any.
func (e *Engine) LastTask() (models.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastTask, e.lastTask.ID != ""
}

// Start opens a focus session on the named task.
func (e *Engine) Start(taskName string, durationMin int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := session.Reduce(e.state, session.StartFocus{
		TaskName:    taskName,
		DurationMin: durationMin,
		Now:         e.clock(),
	})
	if err != nil {
		return err
	}
	e.state = next
	e.schedule = nudge.Plan(durationMin, e.cadence())
	e.lastTask = models.Task{}
	e.persist()
	logger.Info("session started", "task", taskName, "duration_min", durationMin)
	return nil
}

func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := session.Reduce(e.state, session.Pause{Now: e.clock()})
	if err != nil {
		return err
	}
	e.state = next
	e.persist()
	return nil
}

func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := session.Reduce(e.state, session.Resume{Now: e.clock()})
	if err != nil {
		return err
	}
	e.state = next
	e.persist()
	return nil
}

// Finish ends the running session early and records it.
func (e *Engine) Finish() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := session.Reduce(e.state, session.Finish{})
	if err != nil {
		return err
	}
	e.state = next
	e.persist()
	e.recordFinishedLocked()
	return nil
}

// Reset returns a finished session to idle and drops the snapshot.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := session.Reduce(e.state, session.Reset{})
	if err != nil {
		return err
	}
	e.state = next
	e.lastTask = models.Task{}
	if e.snapshots != nil {
		if err := e.snapshots.Clear(); err != nil {
			logger.Warn("failed to clear session snapshot", "error", err)
		}
	}
	return nil
}

// SetVisible updates the app-visibility input to the nudge gate.
func (e *Engine) SetVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gate.SetVisible(visible)
}

// TouchInteraction records a user interaction for nudge suppression.
func (e *Engine) TouchInteraction() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gate.TouchInteraction(e.clock())
}

// Tick advances the countdown by one observation of the wall clock. It
// auto-finishes an exhausted session and fires any due nudge.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasActive := e.state.Active()
	next, err := session.Reduce(e.state, session.Tick{Now: now})
	if err != nil {
		logger.Error("tick rejected", "error", err)
		return
	}
	e.state = next

	if wasActive && !e.state.Active() {
		e.persist()
		e.recordFinishedLocked()
		return
	}
	e.maybeNudgeLocked(now)
}

// Run drives the engine at one tick per second until the session finishes
// or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			e.Tick(now)
			if e.State().Phase == constants.PhaseFinished {
				return nil
			}
		}
	}
}

func (e *Engine) cadence() int {
	if e.sync == nil || !e.sync.Attached() {
		return 0
	}
	return e.sync.Profile().Settings.CadenceMin
}

func (e *Engine) nudgesEnabled() bool {
	if e.sync == nil || !e.sync.Attached() {
		return false
	}
	return e.sync.Profile().Settings.NudgesEnabled
}

// fastForwardSchedule skips thresholds that already elapsed before a
// rehydrated session resumed ticking, so a restart never replays old
// nudges.
func (e *Engine) fastForwardSchedule() {
	remaining := e.state.Remaining(e.clock())
	for e.schedule.Due(remaining) {
		e.schedule.Advance()
	}
}

func (e *Engine) persist() {
	if e.snapshots == nil {
		return
	}
	if err := e.snapshots.Save(e.state); err != nil {
		logger.Warn("failed to persist session snapshot", "error", err)
	}
}

func (e *Engine) recordFinishedLocked() {
	if e.sync == nil || !e.sync.Attached() {
		return
	}
	task, err := e.sync.RecordFinishedSession(e.state)
	if err != nil {
		// The session still ended for the user. Hand callers a task with
		// no ID so they are not left waiting on a write that never landed.
		logger.Error("failed to record finished session", "error", err)
		task = models.Task{
			Name:        e.state.CurrentTask,
			Status:      constants.TaskAttempted,
			StartedAt:   e.state.StartedAt,
			DurationMin: e.state.DurationMin,
		}
	} else {
		e.lastTask = task
		e.state.RecordedTaskID = task.ID
		e.persist()
	}
	if e.notify != nil {
		if err := e.notify.Notify("Session complete", task.Name); err != nil {
			logger.Debug("completion notification failed", "error", err)
		}
	}
	if e.OnFinished != nil {
		go e.OnFinished(task)
	}
}

// maybeNudgeLocked fires at most one nudge per tick. A nudge that comes
// due while the gate is closed (hidden surface, recent interaction) stays
// pending and is delivered once the gate reopens; the spacing window then
// rate-limits the burst after a tab regains focus. The cursor advances
// only on delivery, and fallback text on provider failure still counts as
// the delivery, so a failed attempt never retries on the next tick.
func (e *Engine) maybeNudgeLocked(now time.Time) {
	if e.state.Phase != constants.PhaseFocusing || !e.nudgesEnabled() {
		return
	}
	remaining := e.state.Remaining(now)
	if !e.schedule.Due(remaining) {
		return
	}
	if !e.gate.Permits(now) {
		logger.Debug("nudge deferred", "remaining_sec", remaining)
		return
	}
	e.schedule.Advance()
	e.gate.RecordNudge(now)

	req := nudge.Request{
		Task:           e.state.CurrentTask,
		Tone:           e.sync.Profile().EffectiveTone(),
		ElapsedMinutes: int(e.state.Elapsed(now) / 60),
	}
	go e.generateNudge(req, e.state.Progress(now))
}

// generateNudge resolves nudge text off the tick goroutine. Any provider
// failure swaps in pool text for the session's current progress.
func (e *Engine) generateNudge(req nudge.Request, progress float64) {
	text := ""
	if e.provider != nil {
		generated, err := e.provider.Generate(context.Background(), req)
		if err != nil {
			logger.Debug("nudge provider failed, using fallback", "error", err)
		} else {
			text = generated
		}
	}
	if text == "" {
		text = nudge.Fallback(progress)
	}

	if e.notify != nil {
		if err := e.notify.Notify("FocusFlow", text); err != nil {
			logger.Debug("nudge notification failed", "error", err)
		}
	}
	if e.OnNudge != nil {
		e.OnNudge(text)
	}
}
