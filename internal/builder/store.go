package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"sitebuilder/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Store — single authoritative holder of the page document
// ─────────────────────────────────────────────────────────────

// DocumentScheduler receives a notification after every persistence-worthy
// mutation. The autosave scheduler implements it; the store never touches
// the snapshot store directly.
type DocumentScheduler interface {
	DocumentChanged()
}

// Store owns the live document and UI-selection state. All mutations go
// through its methods, each of which leaves the document invariants intact:
// section ids are unique, Order values are exactly 0..n-1, and a non-empty
// selection always references an existing section.
//
// The store is constructed once, hydrated from a snapshot store, and handed
// to collaborators as a reference. It holds no hidden globals.
type Store struct {
	mu           sync.RWMutex
	state        domain.BuilderState
	deviceScreen domain.DeviceScreen
	isAutoSaving bool
	hydrated     bool

	emitter   EventEmitter
	scheduler DocumentScheduler
	history   historyLog
}

// Snapshot is what rendering collaborators consume: the live document plus
// transient UI flags. Always a deep copy.
type Snapshot struct {
	domain.BuilderState
	IsAutoSaving bool                `json:"isAutoSaving"`
	DeviceScreen domain.DeviceScreen `json:"deviceScreen"`
}

// SectionUpdate is a partial section update. Nil fields are left untouched;
// Content and Styles replace the whole sub-object when supplied — the store
// does a top-level merge only.
type SectionUpdate struct {
	Title   *string
	Content domain.SectionContent
	Styles  *domain.SectionStyles
}

// GlobalStylesUpdate is a partial theme update; nil fields keep their value.
type GlobalStylesUpdate struct {
	PrimaryColor    *string `json:"primaryColor,omitempty"`
	SecondaryColor  *string `json:"secondaryColor,omitempty"`
	FontFamily      *string `json:"fontFamily,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

// NewStore creates a Store with an empty document and default theme.
func NewStore(emitter EventEmitter) *Store {
	return &Store{
		state: domain.BuilderState{
			Sections:          []domain.Section{},
			GlobalStyles:      domain.DefaultGlobalStyles(),
			ShowPropertyPanel: true,
		},
		deviceScreen: domain.DeviceMonitor,
		emitter:      emitter,
	}
}

// AttachScheduler wires the autosave scheduler. Must be called before the
// first mutation; a nil scheduler disables persistence.
func (s *Store) AttachScheduler(sched DocumentScheduler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler = sched
}

// Hydrate loads the stored autosave snapshot into the live document. Called
// once after construction; a missing snapshot leaves the defaults in place.
// The store is marked ready even when the stored payload is unreadable, so
// a corrupt snapshot degrades to a fresh document instead of a dead app.
func (s *Store) Hydrate(ctx context.Context, snapshots domain.SnapshotStore) error {
	defer func() {
		s.mu.Lock()
		s.hydrated = true
		s.mu.Unlock()
		s.emitChanged(ctx)
	}()

	data, err := snapshots.Load(domain.AutosaveKey)
	if err != nil {
		return fmt.Errorf("load autosave snapshot: %w", err)
	}
	if data == nil {
		return nil
	}

	var design domain.Design
	if err := json.Unmarshal(data, &design); err != nil {
		return fmt.Errorf("parse autosave snapshot: %w", err)
	}

	s.mu.Lock()
	s.state.Sections = domain.CloneSections(design.Sections)
	for i := range s.state.Sections {
		s.state.Sections[i].Order = i
	}
	if design.GlobalStyles != (domain.GlobalStyles{}) {
		s.state.GlobalStyles = design.GlobalStyles
	}
	s.mu.Unlock()
	return nil
}

// Ready reports whether hydration has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		BuilderState: s.state,
		IsAutoSaving: s.isAutoSaving,
		DeviceScreen: s.deviceScreen,
	}
	snap.Sections = domain.CloneSections(s.state.Sections)
	return snap
}

// DesignSnapshot returns the persistable envelope for the current document.
// Transient UI state (selection, preview, panel, timers) is never included.
func (s *Store) DesignSnapshot() domain.Design {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Design{
		Version:      domain.DesignVersion,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Sections:     domain.CloneSections(s.state.Sections),
		GlobalStyles: s.state.GlobalStyles,
	}
}

// ── Mutations ──────────────────────────────────────────────

// AddSection appends a new section of the given type with default title,
// content and styles, and selects it.
func (s *Store) AddSection(ctx context.Context, sectionType string) domain.Section {
	t := domain.SectionType(sectionType)
	sec := domain.Section{
		ID:      newSectionID(),
		Type:    t,
		Title:   domain.DefaultTitle(t),
		Content: domain.DefaultContent(t),
		Styles:  domain.DefaultSectionStyles(),
	}

	s.mu.Lock()
	sec.Order = len(s.state.Sections)
	s.state.Sections = append(s.state.Sections, sec)
	s.state.SelectedSectionID = sec.ID
	s.mu.Unlock()

	s.documentMutated(ctx)
	return sec.Clone()
}

// UpdateSection shallow-merges upd onto the matching section. An unknown id
// is a silent no-op.
func (s *Store) UpdateSection(ctx context.Context, id string, upd SectionUpdate) {
	s.mu.Lock()
	i := s.indexOfLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	sec := &s.state.Sections[i]
	if upd.Title != nil {
		sec.Title = *upd.Title
	}
	if upd.Content != nil {
		sec.Content = domain.CloneContent(upd.Content)
	}
	if upd.Styles != nil {
		st := *upd.Styles
		sec.Styles = &st
	}
	s.mu.Unlock()

	s.documentMutated(ctx)
}

// DeleteSection removes the section and renumbers the rest so Order stays
// dense and zero-based. Deleting the selected section clears the selection.
// An unknown id is a silent no-op.
func (s *Store) DeleteSection(ctx context.Context, id string) {
	s.mu.Lock()
	i := s.indexOfLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.Sections = append(s.state.Sections[:i], s.state.Sections[i+1:]...)
	for j := range s.state.Sections {
		s.state.Sections[j].Order = j
	}
	if s.state.SelectedSectionID == id {
		s.state.SelectedSectionID = ""
	}
	s.mu.Unlock()

	s.documentMutated(ctx)
}

// MoveSection moves activeID to the position currently occupied by overID
// (splice-and-insert, not a swap), then renumbers every section. A self-move
// or unknown id is a silent no-op.
func (s *Store) MoveSection(ctx context.Context, activeID, overID string) {
	if activeID == overID {
		return
	}

	s.mu.Lock()
	from := s.indexOfLocked(activeID)
	to := s.indexOfLocked(overID)
	if from < 0 || to < 0 {
		s.mu.Unlock()
		return
	}
	s.state.Sections = arrayMove(s.state.Sections, from, to)
	for j := range s.state.Sections {
		s.state.Sections[j].Order = j
	}
	s.mu.Unlock()

	s.documentMutated(ctx)
}

// UpdateGlobalStyles shallow-merges the partial theme update.
func (s *Store) UpdateGlobalStyles(ctx context.Context, upd GlobalStylesUpdate) {
	s.mu.Lock()
	g := &s.state.GlobalStyles
	if upd.PrimaryColor != nil {
		g.PrimaryColor = *upd.PrimaryColor
	}
	if upd.SecondaryColor != nil {
		g.SecondaryColor = *upd.SecondaryColor
	}
	if upd.FontFamily != nil {
		g.FontFamily = *upd.FontFamily
	}
	if upd.BackgroundColor != nil {
		g.BackgroundColor = *upd.BackgroundColor
	}
	s.mu.Unlock()

	s.documentMutated(ctx)
}

// ── UI state (no persistence trigger) ──────────────────────

// SetSelectedSectionID sets the selection; an empty id clears it. Selecting
// collapses the overlay property panel — the inline panel takes over.
func (s *Store) SetSelectedSectionID(ctx context.Context, id string) {
	s.mu.Lock()
	s.state.SelectedSectionID = id
	s.state.ShowPropertyPanel = false
	s.mu.Unlock()
	s.emitChanged(ctx)
}

// TogglePreviewMode flips the preview flag. Selection is preserved so
// returning to edit mode keeps context.
func (s *Store) TogglePreviewMode(ctx context.Context) {
	s.mu.Lock()
	s.state.PreviewMode = !s.state.PreviewMode
	s.mu.Unlock()
	s.emitChanged(ctx)
}

// TogglePropertyPanel flips the overlay panel visibility flag.
func (s *Store) TogglePropertyPanel(ctx context.Context) {
	s.mu.Lock()
	s.state.ShowPropertyPanel = !s.state.ShowPropertyPanel
	s.mu.Unlock()
	s.emitChanged(ctx)
}

// SetDeviceScreen sets the preview viewport.
func (s *Store) SetDeviceScreen(ctx context.Context, screen domain.DeviceScreen) {
	s.mu.Lock()
	s.deviceScreen = screen
	s.mu.Unlock()
	s.emitChanged(ctx)
}

// ── internals ──────────────────────────────────────────────

// indexOfLocked returns the storage index of a section id, or -1.
func (s *Store) indexOfLocked(id string) int {
	for i := range s.state.Sections {
		if s.state.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// documentMutated records history, notifies subscribers and arms the
// debounced persistence write. Called after every document mutation.
func (s *Store) documentMutated(ctx context.Context) {
	s.mu.Lock()
	s.history.push(historyEntry{
		sections:     domain.CloneSections(s.state.Sections),
		globalStyles: s.state.GlobalStyles,
		timestamp:    time.Now(),
	})
	sched := s.scheduler
	s.mu.Unlock()

	s.emitChanged(ctx)
	if sched != nil {
		sched.DocumentChanged()
	}
}

func (s *Store) emitChanged(ctx context.Context) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(ctx, EventChanged, s.Snapshot())
}

// setAutoSaving is called by the autosave scheduler only.
func (s *Store) setAutoSaving(ctx context.Context, v bool) {
	s.mu.Lock()
	changed := s.isAutoSaving != v
	s.isAutoSaving = v
	s.mu.Unlock()
	if changed && s.emitter != nil {
		s.emitter.Emit(ctx, EventAutosave, v)
	}
}

// newSectionID generates a practically unique section id. The millisecond
// timestamp keeps ids roughly sortable; the uuid fragment rules out
// collisions within one millisecond.
func newSectionID() string {
	return fmt.Sprintf("section-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// arrayMove returns a copy of s with the element at from spliced out and
// reinserted at to.
func arrayMove(s []domain.Section, from, to int) []domain.Section {
	out := make([]domain.Section, 0, len(s))
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)
	out = append(out, domain.Section{})
	copy(out[to+1:], out[to:])
	out[to] = s[from]
	return out
}
