package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"sitebuilder/internal/builder"
	mcpserver "sitebuilder/internal/mcp"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no
// GUI. It shares the same SQLite file as the desktop app, so edits made by
// an agent show up in the builder on next hydration.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "sitebuilder")

	db, err := storage.New(filepath.Join(dataDir, "sitebuilder.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	emitter := noopEmitter{}
	snapshots := storage.NewSnapshotStore(db)

	store := builder.NewStore(emitter)
	autosave := builder.NewAutosaveScheduler(ctx, store, snapshots, builder.AutosaveDebounce, builder.AutosaveMinVisible)
	store.AttachScheduler(autosave)
	if err := store.Hydrate(ctx, snapshots); err != nil {
		log.Printf("Hydration failed, starting fresh: %v", err)
	}

	backups := service.NewBackupService(store, store, storage.NewBackupStore(db), emitter)
	if err := backups.Start(ctx, ""); err != nil {
		log.Printf("Backup schedule failed: %v", err)
	}
	defer backups.Stop(ctx)

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter: emitter,
		Store:   store,
		Backups: backups,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
