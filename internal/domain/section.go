package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionType identifies the kind of a page section. The set below is what
// the built-in renderers know about; any other string is carried through as
// an unknown type with opaque content.
type SectionType string

const (
	SectionHero    SectionType = "hero"
	SectionHeader  SectionType = "header"
	SectionText    SectionType = "content"
	SectionGallery SectionType = "gallery"
	SectionFooter  SectionType = "footer"
)

// Section is one placed block on the page. ID is generated at creation time
// and stays stable for the section's lifetime; Order is the dense zero-based
// rank among siblings.
type Section struct {
	ID      string         `json:"id"`
	Type    SectionType    `json:"type"`
	Title   string         `json:"title"`
	Content SectionContent `json:"content"`
	Order   int            `json:"order"`
	Styles  *SectionStyles `json:"styles,omitempty"`
}

// DefaultTitle derives the user-visible default label for a section type,
// e.g. "hero" → "Hero Section".
func DefaultTitle(t SectionType) string {
	s := string(t)
	if s == "" {
		return "Section"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Section"
}

// SectionContent is the per-type content payload. Known section types carry
// a typed struct; unknown types carry a RawContent map so foreign documents
// round-trip untouched.
type SectionContent interface {
	isSectionContent()
}

// HeroContent is the payload for hero sections.
type HeroContent struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ButtonText      string `json:"buttonText"`
	ButtonLink      string `json:"buttonLink"`
	BackgroundImage string `json:"backgroundImage"`
}

// HeaderContent is the payload for navigation header sections.
type HeaderContent struct {
	Logo       string   `json:"logo"`
	Navigation []string `json:"navigation"`
}

// TextContent is the payload for plain content sections.
type TextContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// GalleryContent is the payload for image gallery sections.
type GalleryContent struct {
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

// FooterContent is the payload for footer sections.
type FooterContent struct {
	Copyright string   `json:"copyright"`
	Links     []string `json:"links"`
}

// RawContent carries the content of a section whose type has no typed
// payload. Renderers degrade gracefully for these.
type RawContent map[string]any

func (*HeroContent) isSectionContent()    {}
func (*HeaderContent) isSectionContent()  {}
func (*TextContent) isSectionContent()    {}
func (*GalleryContent) isSectionContent() {}
func (*FooterContent) isSectionContent()  {}
func (RawContent) isSectionContent()      {}

// DecodeContent picks the content variant for a section type and unmarshals
// raw into it. Unknown types fall back to RawContent.
func DecodeContent(t SectionType, raw []byte) (SectionContent, error) {
	var c SectionContent
	switch t {
	case SectionHero:
		c = &HeroContent{}
	case SectionHeader:
		c = &HeaderContent{}
	case SectionText:
		c = &TextContent{}
	case SectionGallery:
		c = &GalleryContent{}
	case SectionFooter:
		c = &FooterContent{}
	default:
		m := RawContent{}
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode %q content: %w", t, err)
		}
		return m, nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode %q content: %w", t, err)
	}
	return c, nil
}

// ContentFromMap converts a loosely typed map (as received from the frontend
// or an MCP tool) into the typed variant for the section type.
func ContentFromMap(t SectionType, m map[string]any) (SectionContent, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode content map: %w", err)
	}
	return DecodeContent(t, raw)
}

// sectionWire mirrors Section with the content left raw so UnmarshalJSON can
// dispatch on the type field.
type sectionWire struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
	Order   int             `json:"order"`
	Styles  *SectionStyles  `json:"styles,omitempty"`
}

// UnmarshalJSON decodes a section, picking the content variant by type.
// A missing or null content field leaves Content nil; callers that require
// content (import, template load) validate that themselves.
func (s *Section) UnmarshalJSON(data []byte) error {
	var w sectionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.ID = w.ID
	s.Type = w.Type
	s.Title = w.Title
	s.Order = w.Order
	s.Styles = w.Styles
	s.Content = nil
	if len(w.Content) > 0 && string(w.Content) != "null" {
		c, err := DecodeContent(w.Type, w.Content)
		if err != nil {
			return err
		}
		s.Content = c
	}
	return nil
}

// Clone returns a deep copy of the section. Content payloads and styles are
// copied so mutations on the clone never leak back.
func (s Section) Clone() Section {
	out := s
	out.Content = CloneContent(s.Content)
	if s.Styles != nil {
		st := *s.Styles
		out.Styles = &st
	}
	return out
}

// CloneContent deep-copies a content payload.
func CloneContent(c SectionContent) SectionContent {
	switch v := c.(type) {
	case nil:
		return nil
	case *HeroContent:
		cp := *v
		return &cp
	case *HeaderContent:
		cp := *v
		cp.Navigation = append([]string(nil), v.Navigation...)
		return &cp
	case *TextContent:
		cp := *v
		return &cp
	case *GalleryContent:
		cp := *v
		cp.Images = append([]string(nil), v.Images...)
		return &cp
	case *FooterContent:
		cp := *v
		cp.Links = append([]string(nil), v.Links...)
		return &cp
	case RawContent:
		cp := make(RawContent, len(v))
		for k, val := range v {
			cp[k] = val
		}
		return cp
	default:
		return c
	}
}

// CloneSections deep-copies a section slice.
func CloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s.Clone()
	}
	return out
}
