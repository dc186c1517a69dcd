package models

import (
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
)

// SessionState is the ephemeral state of the single active focus session.
// Exactly one of EndTime / RemainingOnPauseSec is meaningful depending on
// Phase: EndTime is set only while focusing, RemainingOnPauseSec only while
// paused, and both are nil in idle and finished.
type SessionState struct {
	Phase               constants.Phase `json:"phase"`
	CurrentTask         string          `json:"current_task"`
	StartedAt           time.Time       `json:"started_at"`
	DurationMin         int             `json:"duration_min"`
	EndTime             *time.Time      `json:"end_time,omitempty"`
	RemainingOnPauseSec *int            `json:"remaining_on_pause_sec,omitempty"`

	// RecordedTaskID is the durable task row written when this session
	// finished. Set only in the finished phase, so a completion started
	// from a restored snapshot still targets the right row.
	RecordedTaskID string `json:"recorded_task_id,omitempty"`
}

// IdleSession returns the zero session.
func IdleSession() SessionState {
	return SessionState{Phase: constants.PhaseIdle}
}

// Remaining returns the seconds left in the session at the given instant.
// While paused it is the frozen snapshot; while focusing it is recomputed
// from the wall-clock end timestamp so missed ticks (device sleep, tab
// suspension) cannot stretch the countdown. Never negative.
func (s SessionState) Remaining(now time.Time) float64 {
	switch s.Phase {
	case constants.PhaseFocusing:
		if s.EndTime == nil {
			return 0
		}
		rem := s.EndTime.Sub(now).Seconds()
		if rem < 0 {
			return 0
		}
		return rem
	case constants.PhasePaused:
		if s.RemainingOnPauseSec == nil {
			return 0
		}
		return float64(*s.RemainingOnPauseSec)
	case constants.PhaseIdle:
		return float64(s.DurationMin * 60)
	default:
		return 0
	}
}

// Elapsed returns the seconds already spent in the session at the given instant.
func (s SessionState) Elapsed(now time.Time) float64 {
	total := float64(s.DurationMin * 60)
	if total <= 0 {
		return 0
	}
	return total - s.Remaining(now)
}

// Progress returns session completion in [0, 1].
func (s SessionState) Progress(now time.Time) float64 {
	total := float64(s.DurationMin * 60)
	if total <= 0 {
		return 0
	}
	return s.Elapsed(now) / total
}

// Active reports whether a session is underway (focusing or paused).
func (s SessionState) Active() bool {
	return s.Phase == constants.PhaseFocusing || s.Phase == constants.PhasePaused
}
