package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/keyring"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: profile reachable
	profile, err := ctx.AttachUser()
	if err != nil {
		fmt.Printf("❌ Profile reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Profile reachable: OK (%s, %s plan)\n", profile.User, profile.Plan)
	}

	// Check 2: timezone valid
	if err == nil {
		if _, tzErr := utils.LoadLocation(profile.Settings.Timezone); tzErr != nil {
			fmt.Printf("❌ Timezone: FAIL\n")
			fmt.Printf("   Error: %v\n", tzErr)
			hasError = true
		} else {
			fmt.Printf("✓ Timezone: OK (%s)\n", profile.Settings.Timezone)
		}
	} else {
		fmt.Printf("⊘ Timezone: SKIPPED (profile not reachable)\n")
	}

	// Check 3: session snapshot readable (warning only)
	snapshots := storage.NewSnapshotStore(ctx.SnapshotPath())
	if _, snapErr := snapshots.Load(); snapErr != nil && !errors.Is(snapErr, storage.ErrNoSnapshot) {
		fmt.Printf("⚠ Session snapshot: WARNING\n")
		fmt.Printf("   %v\n", snapErr)
	} else {
		fmt.Printf("✓ Session snapshot: OK\n")
	}

	// Check 4: OS keyring available (warning only, sqlite needs none)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   keyring unavailable; remote storage and provider keys cannot be configured\n")
	}

	// Check 5: desktop notifications (warning only)
	if desktop, dbusErr := notifier.NewDesktop(); dbusErr != nil {
		fmt.Printf("⚠ Desktop notifications: WARNING\n")
		fmt.Printf("   %v\n", dbusErr)
		fmt.Printf("   nudges will be logged instead\n")
	} else {
		desktop.Close()
		fmt.Printf("✓ Desktop notifications: OK\n")
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
