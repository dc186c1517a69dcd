package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/utils"
)

// TaskName checks a task description before a session may start.
func TaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("task name must not be blank")
	}
	return nil
}

// Duration checks a session length in minutes against the allowed bounds.
func Duration(minutes int) error {
	if minutes < constants.MinDurationMin || minutes > constants.MaxDurationMin {
		return fmt.Errorf("duration must be between %d and %d minutes",
			constants.MinDurationMin, constants.MaxDurationMin)
	}
	return nil
}

// Tone checks a nudge tone name.
func Tone(tone string) error {
	for _, t := range constants.Tones() {
		if constants.Tone(tone) == t {
			return nil
		}
	}
	return fmt.Errorf("tone must be one of calm, fun, firm")
}

// Cadence checks the nudge cadence divisor.
func Cadence(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("cadence must be at least 1 minute")
	}
	return nil
}

// Timezone checks an IANA timezone name.
func Timezone(tz string) error {
	if _, err := utils.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q", tz)
	}
	return nil
}

// Settings checks a full settings value.
func Settings(s models.Settings) error {
	if err := Duration(s.DurationMin); err != nil {
		return err
	}
	if err := Tone(string(s.Tone)); err != nil {
		return err
	}
	if err := Cadence(s.CadenceMin); err != nil {
		return err
	}
	return Timezone(s.Timezone)
}
