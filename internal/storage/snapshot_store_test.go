package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"sitebuilder/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// SQLite-backed store tests — real database in a temp dir
// ─────────────────────────────────────────────────────────────

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := storage.NewSnapshotStore(openTestDB(t))

	data, err := store.Load("never-written")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil for missing key, got %q", data)
	}
}

func TestSnapshotStore_SaveLoadOverwrite(t *testing.T) {
	store := storage.NewSnapshotStore(openTestDB(t))

	if err := store.Save("doc", []byte(`{"v": 1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := store.Load("doc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"v": 1}` {
		t.Errorf("unexpected payload %q", data)
	}

	// Same key upserts
	if err := store.Save("doc", []byte(`{"v": 2}`)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	data, _ = store.Load("doc")
	if string(data) != `{"v": 2}` {
		t.Errorf("expected overwritten payload, got %q", data)
	}
}

func TestSnapshotStore_KeysAreIndependent(t *testing.T) {
	store := storage.NewSnapshotStore(openTestDB(t))

	store.Save("a", []byte("one"))
	store.Save("b", []byte("two"))

	data, _ := store.Load("a")
	if string(data) != "one" {
		t.Errorf("key a: got %q", data)
	}
	data, _ = store.Load("b")
	if string(data) != "two" {
		t.Errorf("key b: got %q", data)
	}
}

func TestNopStore(t *testing.T) {
	var store storage.NopStore

	if err := store.Save("k", []byte("x")); err != nil {
		t.Errorf("save: %v", err)
	}
	data, err := store.Load("k")
	if err != nil {
		t.Errorf("load: %v", err)
	}
	if data != nil {
		t.Errorf("nop store returned data: %q", data)
	}
}

// ─────────────────────────────────────────────────────────────
// BackupStore
// ─────────────────────────────────────────────────────────────

func TestBackupStore_AddListGet(t *testing.T) {
	store := storage.NewBackupStore(openTestDB(t))

	b, err := store.Add([]byte(`{"version": "2.0"}`), 10)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.ID == "" {
		t.Error("expected generated backup id")
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(list))
	}
	// List omits payloads; Get loads them
	if list[0].Payload != "" {
		t.Error("list should not carry payloads")
	}

	got, err := store.Get(b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Payload != `{"version": "2.0"}` {
		t.Errorf("unexpected payload %q", got.Payload)
	}

	if _, err := store.Get("missing"); err == nil {
		t.Error("expected error for unknown backup id")
	}
}

func TestBackupStore_PrunesOldest(t *testing.T) {
	store := storage.NewBackupStore(openTestDB(t))

	var ids []string
	for i := 0; i < 4; i++ {
		b, err := store.Add([]byte{byte('0' + i)}, 2)
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		ids = append(ids, b.ID)
		// distinct created_at so the prune order is deterministic
		time.Sleep(10 * time.Millisecond)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected retention of 2, got %d", len(list))
	}
	// Newest first; the two oldest were pruned
	if list[0].ID != ids[3] || list[1].ID != ids[2] {
		t.Errorf("wrong backups retained: %v", list)
	}
	if _, err := store.Get(ids[0]); err == nil {
		t.Error("expected oldest backup pruned")
	}
}
