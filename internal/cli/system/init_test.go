package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/storage/sqlite"
	"github.com/julianstephens/focusflow/internal/syncer"
)

func setupInitContext(t *testing.T) *cli.Context {
	t.Helper()
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	t.Cleanup(func() { store.Close() })

	return &cli.Context{
		Store:     store,
		Sync:      syncer.New(store),
		User:      constants.LocalUser,
		ConfigDir: tempDir,
	}
}

func TestInitCmd_CreatesDatabaseAndProfile(t *testing.T) {
	ctx := setupInitContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	profile, err := ctx.Store.GetProfile(constants.LocalUser)
	if err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if profile.Plan != constants.PlanFree {
		t.Errorf("expected free plan default, got %s", profile.Plan)
	}
}

func TestInitCmd_ForceResets(t *testing.T) {
	ctx := setupInitContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatal(err)
	}

	// Bump the streak, then force re-init and confirm a fresh profile
	if err := ctx.Store.MergeProfile(constants.LocalUser, map[string]string{storage.FieldStreak: "7"}); err != nil {
		t.Fatal(err)
	}

	ctx.Sync.Detach()
	force := &InitCmd{Force: true}
	if err := force.Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}

	profile, err := ctx.Store.GetProfile(constants.LocalUser)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Streak != 0 {
		t.Errorf("expected fresh profile after force init, got streak %d", profile.Streak)
	}
}
