package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/engine"
	"github.com/julianstephens/focusflow/internal/keyring"
	"github.com/julianstephens/focusflow/internal/lockfile"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/nudge"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/utils"
	"github.com/julianstephens/focusflow/internal/validation"
)

// FocusCmd runs a single focus session without the TUI. Nudges and the
// completion notice go to desktop notifications; Ctrl-C finishes the
// session early and still records it.
type FocusCmd struct {
	Task     string `arg:"" help:"What you are focusing on."`
	Duration int    `short:"d" help:"Session length in minutes." default:"${default_duration}"`
	Complete bool   `help:"Mark the task completed when the session ends."`
}

func (c *FocusCmd) Run(ctx *Context) error {
	if err := validation.TaskName(c.Task); err != nil {
		return err
	}
	if err := validation.Duration(c.Duration); err != nil {
		return err
	}

	profile, err := ctx.AttachUser()
	if err != nil {
		return err
	}

	lock, err := lockfile.Acquire(ctx.LockfilePath())
	if err != nil {
		return err
	}
	defer lock.Release()

	notify := notifier.Best()
	defer notify.Close()

	var provider nudge.Provider
	if url := profile.Settings.ProviderURL; url != "" {
		apiKey, keyErr := keyring.GetProviderKey()
		if keyErr != nil {
			apiKey = ""
		}
		provider = nudge.NewHTTPProvider(url, apiKey)
	}

	eng := engine.New(engine.Config{
		Sync:      ctx.Sync,
		Snapshots: storage.NewSnapshotStore(ctx.SnapshotPath()),
		Notifier:  notify,
		Provider:  provider,
	})
	eng.Restore()
	if eng.State().Active() {
		return fmt.Errorf("a session is already in progress on %q", eng.State().CurrentTask)
	}
	if eng.State().Phase == constants.PhaseFinished {
		if err := eng.Reset(); err != nil {
			return err
		}
	}

	finished := make(chan models.Task, 1)
	eng.OnFinished = func(task models.Task) { finished <- task }

	if err := eng.Start(c.Task, c.Duration); err != nil {
		return err
	}
	fmt.Printf("Focusing on %q for %d minutes. Ctrl-C to finish early.\n", c.Task, c.Duration)

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := ctx.Sync.Subscribe(runCtx); err != nil && !errors.Is(err, storage.ErrWatchUnsupported) {
		logger.Warn("remote profile updates unavailable", "error", err)
	}

	go func() {
		<-runCtx.Done()
		if eng.State().Active() {
			if err := eng.Finish(); err != nil {
				logger.Error("failed to finish session on shutdown", "error", err)
			}
		}
	}()

	errRun := eng.Run(runCtx)
	if errRun != nil && !errors.Is(errRun, context.Canceled) {
		return errRun
	}

	task := <-finished
	fmt.Printf("Session over: %q (%s)\n", task.Name, utils.FormatClock(float64(task.DurationMin*60)))

	if c.Complete {
		if task.ID == "" {
			fmt.Println("⚠ The session could not be recorded, so the task was not completed.")
		} else {
			updated, err := ctx.Sync.CompleteTask(task.ID)
			if err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}
			fmt.Printf("Task completed. Streak: %d day(s)\n", updated.Streak)
		}
	}
	if err := eng.Reset(); err != nil {
		return err
	}
	return nil
}
