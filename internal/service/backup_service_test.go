package service_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// BackupService tests — real store + SQLite in a temp dir
// ─────────────────────────────────────────────────────────────

func newBackupFixture(t *testing.T) (*service.BackupService, *builder.Store, *builder.MockEmitter) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	emitter := &builder.MockEmitter{}
	store := builder.NewStore(emitter)
	svc := service.NewBackupService(store, store, storage.NewBackupStore(db), emitter)
	return svc, store, emitter
}

func TestBackupService_RunBackup(t *testing.T) {
	svc, store, emitter := newBackupFixture(t)
	ctx := context.Background()
	store.AddSection(ctx, "hero")

	b, err := svc.RunBackup(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b == nil {
		t.Fatal("expected a backup")
	}

	var design domain.Design
	if err := json.Unmarshal([]byte(b.Payload), &design); err != nil {
		t.Fatalf("backup payload not a design envelope: %v", err)
	}
	if len(design.Sections) != 1 {
		t.Errorf("expected 1 section in backup, got %d", len(design.Sections))
	}

	found := false
	for _, e := range emitter.Events {
		if e.Event == "backup:created" {
			found = true
		}
	}
	if !found {
		t.Error("expected backup:created event")
	}
}

func TestBackupService_ListAndRestore(t *testing.T) {
	svc, store, _ := newBackupFixture(t)
	ctx := context.Background()
	store.AddSection(ctx, "hero")
	store.AddSection(ctx, "footer")

	b, err := svc.RunBackup(ctx)
	if err != nil || b == nil {
		t.Fatalf("run backup: %v", err)
	}

	// Wreck the document, then restore
	store.ImportConfig(ctx, []byte(`{"sections": []}`))
	if n := len(store.Snapshot().Sections); n != 0 {
		t.Fatalf("setup failed: %d sections", n)
	}

	list, err := svc.ListBackups()
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v (%d entries)", err, len(list))
	}

	if err := svc.RestoreBackup(ctx, list[0].ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if n := len(store.Snapshot().Sections); n != 2 {
		t.Errorf("expected 2 sections restored, got %d", n)
	}
}

func TestBackupService_RestoreUnknownID(t *testing.T) {
	svc, _, _ := newBackupFixture(t)
	if err := svc.RestoreBackup(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown backup id")
	}
}
