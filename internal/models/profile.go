package models

import "github.com/julianstephens/focusflow/internal/constants"

// UserProfile is the durable, per-user document: plan, settings and streak
// accounting. It is read on attach and written through after every
// streak-affecting event and settings change.
type UserProfile struct {
	User              string         `json:"user"`
	Plan              constants.Plan `json:"plan"`
	Settings          Settings       `json:"settings"`
	Streak            int            `json:"streak"`
	LastCompletedDate string         `json:"last_completed_date"` // YYYY-MM-DD, empty when never completed
}

// DefaultProfile returns the profile created for a user with no stored data.
func DefaultProfile(user string) UserProfile {
	return UserProfile{
		User:     user,
		Plan:     constants.PlanFree,
		Settings: DefaultSettings(),
	}
}

// EffectiveTone returns the tone nudges should use. Tone customization is a
// pro feature; free profiles always get the default voice.
func (p UserProfile) EffectiveTone() constants.Tone {
	if p.Plan == constants.PlanPro {
		return p.Settings.Tone
	}
	return constants.ToneCalm
}
