package app_test

import (
	"errors"
	"testing"

	"sitebuilder/internal/app"
)

// ─────────────────────────────────────────────────────────────
// App binding tests
// Only tests paths that don't require a Wails runtime context.
// ─────────────────────────────────────────────────────────────

// When the local database cannot be opened, Startup degrades to an in-memory
// store without a backup service. The backup bindings must surface that as an
// error, never a panic.
func TestApp_BackupBindings_WithoutDatabase(t *testing.T) {
	a := app.New()

	if _, err := a.RunBackup(); !errors.Is(err, app.ErrBackupsUnavailable) {
		t.Errorf("RunBackup: expected ErrBackupsUnavailable, got %v", err)
	}
	if _, err := a.ListBackups(); !errors.Is(err, app.ErrBackupsUnavailable) {
		t.Errorf("ListBackups: expected ErrBackupsUnavailable, got %v", err)
	}
	if err := a.RestoreBackup("some-id"); !errors.Is(err, app.ErrBackupsUnavailable) {
		t.Errorf("RestoreBackup: expected ErrBackupsUnavailable, got %v", err)
	}
	if err := a.WatchDesignFile("/tmp/design.json"); !errors.Is(err, app.ErrBackupsUnavailable) {
		t.Errorf("WatchDesignFile: expected ErrBackupsUnavailable, got %v", err)
	}
	a.StopWatchDesignFile() // must be a no-op, not a panic
}
