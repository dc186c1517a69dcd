package session

import (
	"errors"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

var (
	// ErrSessionActive is returned when StartFocus is applied outside idle
	ErrSessionActive = errors.New("a session is already in progress")
	// ErrBlankTask is returned when StartFocus carries an empty task name
	ErrBlankTask = errors.New("task name must not be blank")
)

// Reduce applies an event to a session state and returns the next state.
// It never mutates its input. Invalid transitions either return a
// caller-visible error (StartFocus) or leave the state unchanged (pause,
// resume, finish, reset outside their valid phases); state is never
// corrupted either way.
func Reduce(s models.SessionState, ev Event) (models.SessionState, error) {
	switch e := ev.(type) {
	case StartFocus:
		if s.Phase != constants.PhaseIdle {
			return s, ErrSessionActive
		}
		if strings.TrimSpace(e.TaskName) == "" {
			return s, ErrBlankTask
		}
		end := e.Now.Add(time.Duration(e.DurationMin) * time.Minute)
		return models.SessionState{
			Phase:       constants.PhaseFocusing,
			CurrentTask: e.TaskName,
			StartedAt:   e.Now,
			DurationMin: e.DurationMin,
			EndTime:     &end,
		}, nil

	case Pause:
		if s.Phase != constants.PhaseFocusing {
			// Pausing a non-running session has no effect
			return s, nil
		}
		rem := 0
		if s.EndTime != nil {
			if d := s.EndTime.Sub(e.Now); d > 0 {
				rem = int(d.Seconds())
			}
		}
		next := s
		next.Phase = constants.PhasePaused
		next.EndTime = nil
		next.RemainingOnPauseSec = &rem
		return next, nil

	case Resume:
		if s.Phase != constants.PhasePaused || s.RemainingOnPauseSec == nil {
			return s, nil
		}
		end := e.Now.Add(time.Duration(*s.RemainingOnPauseSec) * time.Second)
		next := s
		next.Phase = constants.PhaseFocusing
		next.EndTime = &end
		next.RemainingOnPauseSec = nil
		return next, nil

	case Finish:
		if !s.Active() {
			return s, nil
		}
		next := s
		next.Phase = constants.PhaseFinished
		next.EndTime = nil
		next.RemainingOnPauseSec = nil
		return next, nil

	case Reset:
		if s.Phase != constants.PhaseFinished {
			return s, nil
		}
		return models.IdleSession(), nil

	case Tick:
		if s.Phase != constants.PhaseFocusing {
			return s, nil
		}
		if s.Remaining(e.Now) <= 0 {
			// The countdown is not allowed to go negative or linger
			return Reduce(s, Finish{})
		}
		return s, nil
	}

	return s, nil
}

// Rehydrate coerces a session state loaded from storage into a valid shape
// before any other logic runs. A focusing session whose end timestamp has
// already passed is finished, never silently resumed; structurally broken
// states (a phase missing its time field) fall back to idle.
func Rehydrate(s models.SessionState, now time.Time) models.SessionState {
	switch s.Phase {
	case constants.PhaseFocusing:
		if s.EndTime == nil {
			return models.IdleSession()
		}
		if !s.EndTime.After(now) {
			s.Phase = constants.PhaseFinished
			s.EndTime = nil
		}
		return s
	case constants.PhasePaused:
		if s.RemainingOnPauseSec == nil {
			return models.IdleSession()
		}
		return s
	case constants.PhaseFinished:
		return s
	default:
		return models.IdleSession()
	}
}
