package builder

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"

	"sitebuilder/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// AutosaveScheduler — debounced snapshot writes
// ─────────────────────────────────────────────────────────────

// Rapid successive edits within the window coalesce into one write; the
// saving indicator stays visible at least MinVisible so it doesn't flicker.
const (
	AutosaveDebounce   = 500 * time.Millisecond
	AutosaveMinVisible = 500 * time.Millisecond
)

// AutosaveScheduler listens for document changes and writes the latest
// design snapshot to the snapshot store, debounced. It owns the single
// pending timer; each new mutation resets it rather than queuing a write,
// so the write that fires always carries the state at fire time.
//
// Write failures are logged and absorbed — the in-memory document stays the
// source of truth, and the autosave flag is still cleared.
type AutosaveScheduler struct {
	ctx        context.Context
	store      *Store
	snapshots  domain.SnapshotStore
	debounced  func(func())
	minVisible time.Duration

	// gen is bumped on every mutation; a clear belonging to an older write
	// is dropped so the indicator stays on while a newer write is pending.
	gen atomic.Uint64
}

// NewAutosaveScheduler creates a scheduler writing store snapshots to
// snapshots under the fixed autosave key.
func NewAutosaveScheduler(ctx context.Context, store *Store, snapshots domain.SnapshotStore, window, minVisible time.Duration) *AutosaveScheduler {
	return &AutosaveScheduler{
		ctx:        ctx,
		store:      store,
		snapshots:  snapshots,
		debounced:  debounce.New(window),
		minVisible: minVisible,
	}
}

// DocumentChanged arms (or re-arms) the debounced write and flips the
// saving indicator on.
func (a *AutosaveScheduler) DocumentChanged() {
	a.gen.Add(1)
	a.store.setAutoSaving(a.ctx, true)
	a.debounced(a.flush)
}

func (a *AutosaveScheduler) flush() {
	gen := a.gen.Load()

	design := a.store.DesignSnapshot()
	data, err := json.Marshal(design)
	if err != nil {
		log.Printf("autosave: encode snapshot: %v", err)
		a.clearIndicator(gen)
		return
	}

	if err := a.snapshots.Save(domain.AutosaveKey, data); err != nil {
		log.Printf("autosave: write failed: %v", err)
		a.clearIndicator(gen)
		return
	}

	// Keep the indicator visible briefly so quick saves don't flicker.
	time.AfterFunc(a.minVisible, func() {
		a.clearIndicator(gen)
	})
}

// clearIndicator drops the saving flag unless a newer mutation arrived after
// the write this clear belongs to; the newer write carries its own clear.
func (a *AutosaveScheduler) clearIndicator(gen uint64) {
	if a.gen.Load() != gen {
		return
	}
	a.store.setAutoSaving(a.ctx, false)
}
