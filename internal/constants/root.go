package constants

import "time"

// Phase represents the lifecycle phase of a focus session
type Phase string

// TaskStatus represents the completion status of a task
type TaskStatus string

// Tone represents the voice used for motivational nudges
type Tone string

// Plan represents the subscription tier of a user profile
type Plan string

const (
	AppName            = "focusflow"
	DefaultKeyringUser = "database-connection"
	ProviderKeyringKey = "nudge-provider-key"
	DefaultConfigPath  = "~/.config/focusflow/focusflow.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Session phases
	PhaseIdle     Phase = "idle"
	PhaseFocusing Phase = "focusing"
	PhasePaused   Phase = "paused"
	PhaseFinished Phase = "finished"

	// Task statuses
	TaskAttempted TaskStatus = "attempted"
	TaskCompleted TaskStatus = "completed"

	// Nudge tones
	ToneCalm Tone = "calm"
	ToneFun  Tone = "fun"
	ToneFirm Tone = "firm"

	// Plans
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

const (
	// Session duration bounds in minutes
	MinDurationMin     = 1
	MaxDurationMin     = 120
	DefaultDurationMin = 25

	// DefaultCadenceMin is the nudge cadence divisor: one nudge is scheduled
	// per this many minutes of session length, never zero per session.
	DefaultCadenceMin = 5

	// Quiet window fractions of the session left nudge-free
	QuietStartFraction = 0.25
	QuietEndFraction   = 0.10

	// MinNudgeSpacing is the minimum gap since the previous nudge and since
	// the user's last interaction before another nudge may fire.
	MinNudgeSpacing = 30 * time.Second

	// ProviderTimeout bounds the content-provider HTTP call
	ProviderTimeout = 10 * time.Second

	// SnapshotFileName is the local ephemeral session snapshot
	SnapshotFileName = "session.json"

	// LockfileName guards against concurrent sessions from the same user
	LockfileName = "focusflow.lock"

	// FreeTaskHistoryLimit caps task-log listing for free-plan users.
	// Older rows stay in storage and reappear after an upgrade.
	FreeTaskHistoryLimit = 50

	// LocalUser is the profile owner for single-user local storage
	LocalUser = "local"

	// NotificationDurationMs is how long desktop nudges stay visible
	NotificationDurationMs = 10000
)

// Tones lists the valid nudge tones.
func Tones() []Tone {
	return []Tone{ToneCalm, ToneFun, ToneFirm}
}
