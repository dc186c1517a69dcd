package storage

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

// Profile field keys. The profile document is stored as per-user key/value
// rows, which is what makes MergeProfile a true merge write: updating one
// key can never clobber another.
const (
	FieldPlan              = "plan"
	FieldStreak            = "streak"
	FieldLastCompletedDate = "last_completed_date"
	FieldDurationMin       = "duration_min"
	FieldTone              = "tone"
	FieldTimezone          = "timezone"
	FieldCadenceMin        = "cadence_min"
	FieldNudgesEnabled     = "nudges_enabled"
	FieldProviderURL       = "provider_url"
)

// ProfileFields flattens a profile into its stored key/value form.
func ProfileFields(p models.UserProfile) map[string]string {
	return map[string]string{
		FieldPlan:              string(p.Plan),
		FieldStreak:            strconv.Itoa(p.Streak),
		FieldLastCompletedDate: p.LastCompletedDate,
		FieldDurationMin:       strconv.Itoa(p.Settings.DurationMin),
		FieldTone:              string(p.Settings.Tone),
		FieldTimezone:          p.Settings.Timezone,
		FieldCadenceMin:        strconv.Itoa(p.Settings.CadenceMin),
		FieldNudgesEnabled:     strconv.FormatBool(p.Settings.NudgesEnabled),
		FieldProviderURL:       p.Settings.ProviderURL,
	}
}

// SettingsFields flattens only the settings portion of a profile.
func SettingsFields(s models.Settings) map[string]string {
	return map[string]string{
		FieldDurationMin:   strconv.Itoa(s.DurationMin),
		FieldTone:          string(s.Tone),
		FieldTimezone:      s.Timezone,
		FieldCadenceMin:    strconv.Itoa(s.CadenceMin),
		FieldNudgesEnabled: strconv.FormatBool(s.NudgesEnabled),
		FieldProviderURL:   s.ProviderURL,
	}
}

// StreakFields flattens a streak update into its stored form.
func StreakFields(streak int, lastCompletedDate string) map[string]string {
	return map[string]string{
		FieldStreak:            strconv.Itoa(streak),
		FieldLastCompletedDate: lastCompletedDate,
	}
}

// ProfileFromFields rebuilds a profile from stored key/value rows, filling
// unset fields from the defaults so partially-written profiles still load.
func ProfileFromFields(user string, fields map[string]string) (models.UserProfile, error) {
	p := models.DefaultProfile(user)

	for key, value := range fields {
		switch key {
		case FieldPlan:
			p.Plan = constants.Plan(value)
		case FieldStreak:
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.UserProfile{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			p.Streak = n
		case FieldLastCompletedDate:
			p.LastCompletedDate = value
		case FieldDurationMin:
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.UserProfile{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			p.Settings.DurationMin = n
		case FieldTone:
			p.Settings.Tone = constants.Tone(value)
		case FieldTimezone:
			p.Settings.Timezone = value
		case FieldCadenceMin:
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.UserProfile{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			p.Settings.CadenceMin = n
		case FieldNudgesEnabled:
			p.Settings.NudgesEnabled = value == "true"
		case FieldProviderURL:
			p.Settings.ProviderURL = value
		}
	}

	return p, nil
}
