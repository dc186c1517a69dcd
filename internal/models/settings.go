package models

import "github.com/julianstephens/focusflow/internal/constants"

// Settings represents user-configurable session parameters
type Settings struct {
	DurationMin   int            `json:"duration_min"`    // planned session length in minutes (1-120)
	Tone          constants.Tone `json:"tone"`            // nudge voice; tone choice is honored for pro plans only
	Timezone      string         `json:"timezone"`        // IANA timezone name, or "Local" for the system timezone
	CadenceMin    int            `json:"cadence_min"`     // minutes of session length per scheduled nudge
	NudgesEnabled bool           `json:"nudges_enabled"`  // whether nudges fire at all
	ProviderURL   string         `json:"provider_url"`    // content-provider endpoint; empty disables remote generation
}

// DefaultSettings returns the settings used for a freshly created profile.
func DefaultSettings() Settings {
	return Settings{
		DurationMin:   constants.DefaultDurationMin,
		Tone:          constants.ToneCalm,
		Timezone:      "Local",
		CadenceMin:    constants.DefaultCadenceMin,
		NudgesEnabled: true,
	}
}
