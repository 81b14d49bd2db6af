package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sitebuilder/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Export / import / template load
// ─────────────────────────────────────────────────────────────

// Validation errors surfaced to the caller on document-replacing operations.
// The live document is left untouched when either is returned.
var (
	ErrMissingSections = errors.New("invalid configuration format: missing sections array")
	ErrInvalidSection  = errors.New("invalid section format in configuration")
)

// ExportConfig builds the portable envelope for the current document and
// returns the suggested filename and its pretty-printed JSON. Byte-stable
// for identical documents, modulo the timestamp field.
func (s *Store) ExportConfig() (string, []byte, error) {
	s.mu.RLock()
	design := domain.Design{
		Version:      domain.DesignVersion,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Sections:     domain.CloneSections(s.state.Sections),
		GlobalStyles: s.state.GlobalStyles,
		Metadata: &domain.DesignMetadata{
			Title:         "My Website",
			Description:   "Created with Website Builder",
			TotalSections: len(s.state.Sections),
		},
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(design, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encode design: %w", err)
	}
	name := fmt.Sprintf("website-%s.json", time.Now().Format("2006-01-02"))
	return name, data, nil
}

// ImportConfig parses and validates an exported document and replaces the
// live document wholesale. Order is re-derived from array position — stored
// order values are not trusted. Incoming ids are kept as-is (template load
// is the path that regenerates ids). Selection is cleared.
func (s *Store) ImportConfig(ctx context.Context, data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("parse configuration: %w", err)
	}

	rawSections, ok := top["sections"]
	if !ok {
		return ErrMissingSections
	}
	var rawList []json.RawMessage
	if err := json.Unmarshal(rawSections, &rawList); err != nil {
		return ErrMissingSections
	}

	sections := make([]domain.Section, len(rawList))
	for i, raw := range rawList {
		var sec domain.Section
		if err := json.Unmarshal(raw, &sec); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSection, err)
		}
		if sec.ID == "" || sec.Type == "" || sec.Content == nil {
			return ErrInvalidSection
		}
		sec.Order = i
		sections[i] = sec
	}

	var styles *domain.GlobalStyles
	if rawStyles, ok := top["globalStyles"]; ok {
		var g domain.GlobalStyles
		if err := json.Unmarshal(rawStyles, &g); err != nil {
			return fmt.Errorf("parse global styles: %w", err)
		}
		styles = &g
	}

	s.mu.Lock()
	s.state.Sections = sections
	if styles != nil {
		s.state.GlobalStyles = *styles
	}
	s.state.SelectedSectionID = ""
	s.mu.Unlock()

	s.documentMutated(ctx)
	return nil
}

// LoadTemplate validates the template's sections the same way ImportConfig
// does, then replaces the live document with clones carrying freshly
// generated ids and dense zero-based order. The template's own sections are
// never mutated. Global styles are replaced; selection is cleared.
func (s *Store) LoadTemplate(ctx context.Context, t domain.Template) error {
	if t.Sections == nil {
		return ErrMissingSections
	}
	for _, sec := range t.Sections {
		if sec.ID == "" || sec.Type == "" || sec.Content == nil {
			return ErrInvalidSection
		}
	}

	sections := make([]domain.Section, len(t.Sections))
	for i, sec := range t.Sections {
		c := sec.Clone()
		c.ID = newSectionID()
		c.Order = i
		sections[i] = c
	}

	s.mu.Lock()
	s.state.Sections = sections
	s.state.GlobalStyles = t.GlobalStyles
	s.state.SelectedSectionID = ""
	s.mu.Unlock()

	s.documentMutated(ctx)
	return nil
}
