package builder

import (
	"context"
	"time"

	"sitebuilder/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Bounded undo/redo log
// ─────────────────────────────────────────────────────────────

// historyLimit caps the log; old entries are trimmed from the oldest end.
const historyLimit = 50

// historyEntry snapshots the document after a mutation. UI state is not
// part of history.
type historyEntry struct {
	sections     []domain.Section
	globalStyles domain.GlobalStyles
	timestamp    time.Time
}

// historyLog is a linear undo log with a cursor. index is the position of
// the current document state, -1 when empty.
type historyLog struct {
	entries []historyEntry
	index   int
}

// push appends an entry after the cursor, dropping any redo tail, and trims
// the oldest entries beyond the cap.
func (h *historyLog) push(e historyEntry) {
	if len(h.entries) == 0 {
		h.index = -1
	}
	h.entries = append(h.entries[:h.index+1], e)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[len(h.entries)-historyLimit:]
	}
	h.index = len(h.entries) - 1
}

// undo steps the cursor back and returns the entry to restore.
func (h *historyLog) undo() (historyEntry, bool) {
	if h.index <= 0 {
		return historyEntry{}, false
	}
	h.index--
	return h.entries[h.index], true
}

// redo steps the cursor forward and returns the entry to restore.
func (h *historyLog) redo() (historyEntry, bool) {
	if h.index >= len(h.entries)-1 {
		return historyEntry{}, false
	}
	h.index++
	return h.entries[h.index], true
}

func (h *historyLog) len() int { return len(h.entries) }

// ── Store operations ───────────────────────────────────────

// Undo restores the previous document snapshot. No-op when there is nothing
// to undo. A selection pointing at a section that no longer exists after the
// restore is cleared.
func (s *Store) Undo(ctx context.Context) {
	s.mu.Lock()
	entry, ok := s.history.undo()
	if !ok {
		s.mu.Unlock()
		return
	}
	s.restoreLocked(entry)
	sched := s.scheduler
	s.mu.Unlock()

	s.emitChanged(ctx)
	if sched != nil {
		sched.DocumentChanged()
	}
}

// Redo restores the next document snapshot after an Undo.
func (s *Store) Redo(ctx context.Context) {
	s.mu.Lock()
	entry, ok := s.history.redo()
	if !ok {
		s.mu.Unlock()
		return
	}
	s.restoreLocked(entry)
	sched := s.scheduler
	s.mu.Unlock()

	s.emitChanged(ctx)
	if sched != nil {
		sched.DocumentChanged()
	}
}

func (s *Store) restoreLocked(e historyEntry) {
	s.state.Sections = domain.CloneSections(e.sections)
	s.state.GlobalStyles = e.globalStyles
	if s.state.SelectedSectionID != "" && s.indexOfLocked(s.state.SelectedSectionID) < 0 {
		s.state.SelectedSectionID = ""
	}
}
