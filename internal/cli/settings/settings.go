package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Duration    *int    `help:"Default session length in minutes (1-120)."`
	Tone        *string `help:"Nudge tone: calm, fun, or firm (pro plan only)."`
	Timezone    *string `help:"IANA timezone for streak day boundaries, or 'Local'."`
	Cadence     *int    `help:"Minutes of session length per nudge."`
	Nudges      *bool   `help:"Enable or disable nudges."`
	ProviderURL *string `help:"Remote nudge provider URL. Empty disables the provider." name:"provider-url"`
	Plan        *string `help:"Subscription plan: free or pro."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.AttachUser()
	if err != nil {
		return err
	}
	settings := profile.Settings

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Plan:              %s\n", profile.Plan)
		fmt.Printf("  Session Duration:  %d min\n", settings.DurationMin)
		fmt.Printf("  Tone:              %s\n", settings.Tone)
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		fmt.Printf("  Nudge Cadence:     %d min\n", settings.CadenceMin)
		fmt.Printf("  Nudges Enabled:    %v\n", settings.NudgesEnabled)
		providerURL := settings.ProviderURL
		if providerURL == "" {
			providerURL = "(none, fallback pool only)"
		}
		fmt.Printf("  Provider URL:      %s\n", providerURL)
		return nil
	}

	updated := false
	if c.Duration != nil {
		settings.DurationMin = *c.Duration
		updated = true
	}
	if c.Tone != nil {
		settings.Tone = constants.Tone(strings.ToLower(*c.Tone))
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Cadence != nil {
		settings.CadenceMin = *c.Cadence
		updated = true
	}
	if c.Nudges != nil {
		settings.NudgesEnabled = *c.Nudges
		updated = true
	}
	if c.ProviderURL != nil {
		settings.ProviderURL = *c.ProviderURL
		updated = true
	}

	if c.Plan != nil {
		plan := constants.Plan(strings.ToLower(*c.Plan))
		if plan != constants.PlanFree && plan != constants.PlanPro {
			return fmt.Errorf("invalid plan %q: must be free or pro", *c.Plan)
		}
		if err := ctx.Sync.SetPlan(plan); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		fmt.Printf("Plan set to %s.\n", plan)
	}

	if updated {
		if err := validation.Settings(settings); err != nil {
			return err
		}
		if err := ctx.Sync.SetSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else if c.Plan == nil {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
