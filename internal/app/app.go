package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings; the frontend renders
// snapshots and calls these methods — it owns no state of its own.
type App struct {
	ctx context.Context

	db       *storage.DB
	store    *builder.Store
	autosave *builder.AutosaveScheduler
	backups  *service.BackupService
	guard    service.RunningGuard
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Startup is called when the app starts. The store is constructed here,
// wired to the autosave scheduler and hydrated from the local snapshot.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "sitebuilder")

	db, err := storage.New(filepath.Join(dataDir, "sitebuilder.db"))
	if err != nil {
		// No durable store — run in-memory so the builder stays usable.
		wailsRuntime.LogErrorf(ctx, "Failed to open database, running without persistence: %v", err)
		a.store = builder.NewStore(emitter{app: a})
		a.autosave = builder.NewAutosaveScheduler(ctx, a.store, storage.NopStore{}, builder.AutosaveDebounce, builder.AutosaveMinVisible)
		a.store.AttachScheduler(a.autosave)
		_ = a.store.Hydrate(ctx, storage.NopStore{})
		return
	}
	a.db = db

	snapshots := storage.NewSnapshotStore(db)
	a.store = builder.NewStore(emitter{app: a})
	a.autosave = builder.NewAutosaveScheduler(ctx, a.store, snapshots, builder.AutosaveDebounce, builder.AutosaveMinVisible)
	a.store.AttachScheduler(a.autosave)

	if err := a.store.Hydrate(ctx, snapshots); err != nil {
		wailsRuntime.LogErrorf(ctx, "Hydration failed, starting fresh: %v", err)
	}

	a.backups = service.NewBackupService(a.store, a.store, storage.NewBackupStore(db), emitter{app: a})
	if err := a.backups.Start(ctx, ""); err != nil {
		wailsRuntime.LogErrorf(ctx, "Backup schedule failed: %v", err)
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.backups != nil {
		a.backups.Stop(ctx)
	}
	if a.db != nil {
		a.db.Close()
	}
}

// emitter bridges builder events onto the Wails event bus.
type emitter struct {
	app *App
}

func (e emitter) Emit(ctx context.Context, event string, data any) {
	if e.app.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(e.app.ctx, event, data)
}

// ============================================================
// Document state
// ============================================================

// GetState returns the full builder snapshot for rendering.
func (a *App) GetState() builder.Snapshot {
	return a.store.Snapshot()
}

// IsReady reports whether hydration has completed.
func (a *App) IsReady() bool {
	return a.store.Ready()
}

// ============================================================
// Sections
// ============================================================

// AddSection appends a section of the given type and selects it.
func (a *App) AddSection(sectionType string) domain.Section {
	return a.store.AddSection(a.ctx, sectionType)
}

// UpdateSectionInput is a partial section update from the frontend. Content,
// when present, replaces the section's whole content object.
type UpdateSectionInput struct {
	Title   *string               `json:"title,omitempty"`
	Content map[string]any        `json:"content,omitempty"`
	Styles  *domain.SectionStyles `json:"styles,omitempty"`
}

// UpdateSection applies a partial update to a section. An unknown id is a
// silent no-op, matching the store.
func (a *App) UpdateSection(id string, input UpdateSectionInput) error {
	upd := builder.SectionUpdate{
		Title:  input.Title,
		Styles: input.Styles,
	}
	if input.Content != nil {
		sec, ok := a.findSection(id)
		if !ok {
			return nil
		}
		content, err := domain.ContentFromMap(sec.Type, input.Content)
		if err != nil {
			return fmt.Errorf("update section content: %w", err)
		}
		upd.Content = content
	}
	a.store.UpdateSection(a.ctx, id, upd)
	return nil
}

// DeleteSection removes a section.
func (a *App) DeleteSection(id string) {
	a.store.DeleteSection(a.ctx, id)
}

// MoveSection moves activeID to the position of overID (drag-and-drop drop).
func (a *App) MoveSection(activeID, overID string) {
	a.store.MoveSection(a.ctx, activeID, overID)
}

// SetSelectedSection sets the selection; an empty id clears it.
func (a *App) SetSelectedSection(id string) {
	a.store.SetSelectedSectionID(a.ctx, id)
}

func (a *App) findSection(id string) (domain.Section, bool) {
	for _, sec := range a.store.Snapshot().Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return domain.Section{}, false
}

// ============================================================
// UI state
// ============================================================

func (a *App) TogglePreviewMode() {
	a.store.TogglePreviewMode(a.ctx)
}

func (a *App) TogglePropertyPanel() {
	a.store.TogglePropertyPanel(a.ctx)
}

func (a *App) SetDeviceScreen(screen string) {
	a.store.SetDeviceScreen(a.ctx, domain.DeviceScreen(screen))
}

// ============================================================
// Theme
// ============================================================

// UpdateGlobalStyles shallow-merges a partial theme update.
func (a *App) UpdateGlobalStyles(upd builder.GlobalStylesUpdate) {
	a.store.UpdateGlobalStyles(a.ctx, upd)
}

// ============================================================
// History
// ============================================================

func (a *App) Undo() {
	a.store.Undo(a.ctx)
}

func (a *App) Redo() {
	a.store.Redo(a.ctx)
}

// ============================================================
// Export / import / templates
// ============================================================

// ExportConfig writes the design to a user-chosen file and returns its
// path, or "" when the dialog was cancelled.
func (a *App) ExportConfig() (string, error) {
	name, data, err := a.store.ExportConfig()
	if err != nil {
		return "", err
	}

	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export Website Design",
		DefaultFilename: name,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "JSON", Pattern: "*.json"},
		},
	})
	if err != nil || path == "" {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write design file: %w", err)
	}
	return path, nil
}

// PickDesignFile opens a native file picker for selecting a design file.
func (a *App) PickDesignFile() (string, error) {
	return wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Import Website Design",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "JSON", Pattern: "*.json"},
			{DisplayName: "All Files", Pattern: "*.*"},
		},
	})
}

// ImportConfig reads and imports a design file, replacing the live document.
// Validation failures are surfaced to the frontend for notification; a
// second import while one is running is rejected.
func (a *App) ImportConfig(path string) (bool, error) {
	release, ok := a.guard.Acquire("import")
	if !ok {
		return false, fmt.Errorf("import already in progress")
	}
	defer release()

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read design file: %w", err)
	}
	if err := a.store.ImportConfig(a.ctx, data); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "Import failed: %v", err)
		return false, err
	}
	return true, nil
}

// ListTemplates returns the built-in template library.
func (a *App) ListTemplates() []domain.Template {
	return domain.BuiltinTemplates()
}

// LoadTemplate replaces the document with a clone of the named built-in
// template.
func (a *App) LoadTemplate(id string) error {
	t, ok := domain.FindTemplate(id)
	if !ok {
		return fmt.Errorf("template not found: %s", id)
	}
	return a.store.LoadTemplate(a.ctx, t)
}

// ============================================================
// Backups / linked design file
// ============================================================

// ErrBackupsUnavailable is returned by the backup bindings when the app is
// running without a local database.
var ErrBackupsUnavailable = errors.New("backups unavailable: no local database")

// RunBackup stores an immediate backup of the design.
func (a *App) RunBackup() (*storage.Backup, error) {
	if a.backups == nil {
		return nil, ErrBackupsUnavailable
	}
	return a.backups.RunBackup(a.ctx)
}

// ListBackups returns retained backups, newest first.
func (a *App) ListBackups() ([]storage.Backup, error) {
	if a.backups == nil {
		return nil, ErrBackupsUnavailable
	}
	return a.backups.ListBackups()
}

// RestoreBackup re-imports a stored backup.
func (a *App) RestoreBackup(id string) error {
	if a.backups == nil {
		return ErrBackupsUnavailable
	}
	return a.backups.RestoreBackup(a.ctx, id)
}

// WatchDesignFile links a design file: external writes to it are imported
// automatically.
func (a *App) WatchDesignFile(path string) error {
	if a.backups == nil {
		return ErrBackupsUnavailable
	}
	return a.backups.WatchDesignFile(a.ctx, path)
}

// StopWatchDesignFile unlinks the watched design file.
func (a *App) StopWatchDesignFile() {
	if a.backups == nil {
		return
	}
	a.backups.StopWatch()
}
