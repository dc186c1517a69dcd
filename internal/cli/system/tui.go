package system

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/engine"
	"github.com/julianstephens/focusflow/internal/keyring"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/nudge"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.AttachUser()
	if err != nil {
		return err
	}

	eng := engine.New(engine.Config{
		Sync:      ctx.Sync,
		Snapshots: storage.NewSnapshotStore(ctx.SnapshotPath()),
		Notifier:  notifier.Best(),
		Provider:  buildProvider(profile.Settings.ProviderURL),
	})
	eng.Restore()

	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := ctx.Sync.Subscribe(watchCtx); err != nil && !errors.Is(err, storage.ErrWatchUnsupported) {
		logger.Warn("remote profile updates unavailable", "error", err)
	}

	p := tea.NewProgram(tui.NewModel(eng, ctx.Sync), tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}

// buildProvider wires the remote nudge provider when a URL is configured.
// The API key comes from the OS keyring and is optional.
func buildProvider(url string) nudge.Provider {
	if url == "" {
		return nil
	}
	apiKey, err := keyring.GetProviderKey()
	if err != nil {
		apiKey = ""
	}
	return nudge.NewHTTPProvider(url, apiKey)
}
