package builder_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Export / import / template tests
// ─────────────────────────────────────────────────────────────

func TestStore_ExportConfig_Envelope(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	store.AddSection(ctx, "hero")
	store.AddSection(ctx, "footer")

	name, data, err := store.ExportConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantName := "website-" + time.Now().Format("2006-01-02") + ".json"
	if name != wantName {
		t.Errorf("expected filename %q, got %q", wantName, name)
	}

	var design domain.Design
	if err := json.Unmarshal(data, &design); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if design.Version != "2.0" {
		t.Errorf("expected version 2.0, got %q", design.Version)
	}
	if _, err := time.Parse(time.RFC3339, design.Timestamp); err != nil {
		t.Errorf("timestamp not RFC3339: %q", design.Timestamp)
	}
	if len(design.Sections) != 2 {
		t.Errorf("expected 2 sections, got %d", len(design.Sections))
	}
	if design.Metadata == nil || design.Metadata.TotalSections != 2 {
		t.Errorf("unexpected metadata: %+v", design.Metadata)
	}
	if design.Metadata.Title != "My Website" {
		t.Errorf("unexpected metadata title %q", design.Metadata.Title)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("expected pretty-printed output")
	}
}

func TestStore_ExportConfig_OmitsUIState(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	sec := store.AddSection(ctx, "hero")
	store.SetSelectedSectionID(ctx, sec.ID)
	store.TogglePreviewMode(ctx)

	_, data, err := store.ExportConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, field := range []string{"selectedSectionId", "previewMode", "showPropertyPanel", "isAutoSaving"} {
		if strings.Contains(string(data), field) {
			t.Errorf("export leaks UI state field %q", field)
		}
	}
}

func TestStore_ImportExport_RoundTrip(t *testing.T) {
	src, _ := newTestStore()
	ctx := context.Background()
	hero := src.AddSection(ctx, "hero")
	src.AddSection(ctx, "gallery")
	primary := "#ABCDEF"
	src.UpdateGlobalStyles(ctx, builder.GlobalStylesUpdate{PrimaryColor: &primary})

	_, data, err := src.ExportConfig()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst, _ := newTestStore()
	if err := dst.ImportConfig(ctx, data); err != nil {
		t.Fatalf("import: %v", err)
	}

	snap := dst.Snapshot()
	if len(snap.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(snap.Sections))
	}
	// Imported documents keep their section ids as-is
	if snap.Sections[0].ID != hero.ID {
		t.Errorf("expected id %q preserved, got %q", hero.ID, snap.Sections[0].ID)
	}
	if _, ok := snap.Sections[0].Content.(*domain.HeroContent); !ok {
		t.Errorf("expected typed content after import, got %T", snap.Sections[0].Content)
	}
	if snap.GlobalStyles.PrimaryColor != "#ABCDEF" {
		t.Errorf("theme not imported: %q", snap.GlobalStyles.PrimaryColor)
	}
	if snap.SelectedSectionID != "" {
		t.Errorf("expected selection cleared after import, got %q", snap.SelectedSectionID)
	}
}

func TestStore_ImportConfig_NormalizesOrder(t *testing.T) {
	payload := []byte(`{
		"sections": [
			{"id": "a", "type": "content", "title": "First", "content": {"title": "", "text": ""}, "order": 42},
			{"id": "b", "type": "content", "title": "Second", "content": {"title": "", "text": ""}, "order": 3}
		]
	}`)

	store, _ := newTestStore()
	if err := store.ImportConfig(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := store.Snapshot()
	if snap.Sections[0].Order != 0 || snap.Sections[1].Order != 1 {
		t.Errorf("orders not re-derived from position: %d, %d",
			snap.Sections[0].Order, snap.Sections[1].Order)
	}
}

func TestStore_ImportConfig_MissingSections(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for _, payload := range []string{
		`{}`,
		`{"globalStyles": {"primaryColor": "#000"}}`,
		`{"sections": "not an array"}`,
	} {
		err := store.ImportConfig(ctx, []byte(payload))
		if !errors.Is(err, builder.ErrMissingSections) {
			t.Errorf("payload %s: expected ErrMissingSections, got %v", payload, err)
		}
	}
}

func TestStore_ImportConfig_InvalidSection(t *testing.T) {
	store, _ := newTestStore()
	err := store.ImportConfig(context.Background(),
		[]byte(`{"sections": [{"title": "no id, no type, no content"}]}`))
	if !errors.Is(err, builder.ErrInvalidSection) {
		t.Errorf("expected ErrInvalidSection, got %v", err)
	}
}

func TestStore_ImportConfig_FailureLeavesDocumentUntouched(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	sec := store.AddSection(ctx, "hero")

	sched := &countScheduler{}
	store.AttachScheduler(sched)

	// Second section is invalid; nothing may be applied
	err := store.ImportConfig(ctx, []byte(`{"sections": [
		{"id": "ok", "type": "content", "title": "T", "content": {"title": "", "text": ""}, "order": 0},
		{"id": "", "type": "content", "title": "bad", "content": {"title": "", "text": ""}, "order": 1}
	]}`))
	if !errors.Is(err, builder.ErrInvalidSection) {
		t.Fatalf("expected ErrInvalidSection, got %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Sections) != 1 || snap.Sections[0].ID != sec.ID {
		t.Error("failed import mutated the document")
	}
	if sched.calls != 0 {
		t.Error("failed import scheduled a persistence write")
	}
}

func TestStore_ImportConfig_UnknownSectionType(t *testing.T) {
	store, _ := newTestStore()
	err := store.ImportConfig(context.Background(), []byte(`{
		"sections": [{"id": "x1", "type": "testimonials", "title": "T", "content": {"quote": "hi"}, "order": 0}]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sec := store.Snapshot().Sections[0]
	raw, ok := sec.Content.(domain.RawContent)
	if !ok {
		t.Fatalf("expected RawContent for unknown type, got %T", sec.Content)
	}
	if raw["quote"] != "hi" {
		t.Errorf("opaque content not round-tripped: %v", raw)
	}
}

// ─────────────────────────────────────────────────────────────
// Templates
// ─────────────────────────────────────────────────────────────

func TestStore_LoadTemplate_FreshIDsAndTheme(t *testing.T) {
	tpl, ok := domain.FindTemplate("startup-landing")
	if !ok {
		t.Fatal("built-in template missing")
	}

	store, _ := newTestStore()
	ctx := context.Background()
	store.AddSection(ctx, "hero") // will be replaced wholesale
	if err := store.LoadTemplate(ctx, tpl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Sections) != len(tpl.Sections) {
		t.Fatalf("expected %d sections, got %d", len(tpl.Sections), len(snap.Sections))
	}
	for i, sec := range snap.Sections {
		if strings.HasPrefix(sec.ID, "tpl-") {
			t.Errorf("section %d kept the template id %q", i, sec.ID)
		}
		if sec.Order != i {
			t.Errorf("section %d has order %d", i, sec.Order)
		}
		if sec.Type != tpl.Sections[i].Type {
			t.Errorf("section %d: expected type %q, got %q", i, tpl.Sections[i].Type, sec.Type)
		}
	}
	if snap.GlobalStyles != tpl.GlobalStyles {
		t.Errorf("theme not replaced: %+v", snap.GlobalStyles)
	}
	if snap.SelectedSectionID != "" {
		t.Errorf("expected selection cleared, got %q", snap.SelectedSectionID)
	}
}

func TestStore_LoadTemplate_CloneIsolation(t *testing.T) {
	tpl, _ := domain.FindTemplate("portfolio")
	store, _ := newTestStore()
	ctx := context.Background()
	if err := store.LoadTemplate(ctx, tpl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutating the loaded document must not reach the template's sections
	snap := store.Snapshot()
	for _, sec := range snap.Sections {
		if g, ok := sec.Content.(*domain.GalleryContent); ok {
			g.Images[0] = "tampered"
		}
	}
	for _, sec := range tpl.Sections {
		if g, ok := sec.Content.(*domain.GalleryContent); ok {
			if g.Images[0] == "tampered" {
				t.Error("template content shares memory with the document")
			}
		}
	}
}

func TestStore_LoadTemplate_Invalid(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	err := store.LoadTemplate(ctx, domain.Template{ID: "empty"})
	if !errors.Is(err, builder.ErrMissingSections) {
		t.Errorf("expected ErrMissingSections for nil sections, got %v", err)
	}

	err = store.LoadTemplate(ctx, domain.Template{
		ID:       "bad",
		Sections: []domain.Section{{ID: "s", Type: "hero"}}, // nil content
	})
	if !errors.Is(err, builder.ErrInvalidSection) {
		t.Errorf("expected ErrInvalidSection for nil content, got %v", err)
	}
}
