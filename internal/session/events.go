package session

import "time"

// Event is a session lifecycle input. Events carry the wall-clock instant
// they occurred at so the reducer stays pure and independently testable.
type Event interface {
	isEvent()
}

// StartFocus opens a session on a single task. Valid only from idle.
type StartFocus struct {
	TaskName    string
	DurationMin int
	Now         time.Time
}

// Pause freezes the countdown. Valid only from focusing; a no-op elsewhere.
type Pause struct {
	Now time.Time
}

// Resume continues a paused session with exactly the remaining budget it
// had when paused, regardless of how long the pause lasted.
type Resume struct {
	Now time.Time
}

// Finish ends the session. Valid from focusing or paused.
type Finish struct{}

// Reset returns a finished session to idle.
type Reset struct{}

// Tick is the periodic countdown check. A tick observing zero remaining
// time while focusing finishes the session itself.
type Tick struct {
	Now time.Time
}

func (StartFocus) isEvent() {}
func (Pause) isEvent()      {}
func (Resume) isEvent()     {}
func (Finish) isEvent()     {}
func (Reset) isEvent()      {}
func (Tick) isEvent()       {}
