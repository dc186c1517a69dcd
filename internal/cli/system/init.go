package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/focusflow/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Close before deleting to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized focusflow storage at: %s\n", ctx.Store.GetConfigPath())

	profile, err := ctx.AttachUser()
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	fmt.Printf("Profile ready for %q (%s plan)\n", profile.User, profile.Plan)
	return nil
}
