package cli

import (
	"fmt"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if _, err := ctx.AttachUser(); err != nil {
		return err
	}

	stats, err := ctx.Sync.Stats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	fmt.Println("Focus Stats:")
	fmt.Printf("  Current Streak:     %d day(s)\n", stats.Streak)
	fmt.Printf("  Sessions Recorded:  %d\n", len(stats.Tasks))
	fmt.Printf("  Tasks Completed:    %d\n", stats.CompletedCount)
	fmt.Printf("  Total Focus Time:   %dm\n", stats.TotalFocusMin)
	return nil
}
