package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
)

func (s *Server) registerSectionTools() {
	// ── add_section ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_section",
		mcp.WithDescription("Append a new section to the page. Known types get default content; unknown types start empty."),
		mcp.WithString("type",
			mcp.Description("Section type: hero, header, content, gallery, footer, or a custom type"),
			mcp.Required(),
		),
	), s.handleAddSection)

	// ── update_section ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_section",
		mcp.WithDescription("Partially update a section. Content and styles, when given, replace the whole sub-object."),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title (optional)")),
		mcp.WithString("content", mcp.Description("JSON object with the full replacement content (optional)")),
		mcp.WithString("styles", mcp.Description("JSON object with backgroundColor/textColor/padding/margin (optional)")),
	), s.handleUpdateSection)

	// ── delete_section (destructive) ───────────────────
	s.mcp.AddTool(mcp.NewTool("delete_section",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a section from the page."),
		mcp.WithString("sectionId", mcp.Description("Section ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteSection)

	// ── move_section ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_section",
		mcp.WithDescription("Move a section to the position of another section (splice, not swap)"),
		mcp.WithString("sectionId", mcp.Description("Section to move"), mcp.Required()),
		mcp.WithString("targetSectionId", mcp.Description("Section whose position to take"), mcp.Required()),
	), s.handleMoveSection)

	// ── list_sections ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_sections",
		mcp.WithDescription("List all sections on the page in order"),
	), s.handleListSections)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionType, err := requireString(args, "type")
	if err != nil {
		return nil, err
	}
	sec := s.store.AddSection(ctx, sectionType)
	return jsonResult(sec)
}

func (s *Server) handleUpdateSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, err := requireString(args, "sectionId")
	if err != nil {
		return nil, err
	}
	sec, ok := s.findSection(sectionID)
	if !ok {
		return nil, fmt.Errorf("section not found: %s", sectionID)
	}

	var upd builder.SectionUpdate
	if title, ok := args["title"].(string); ok && title != "" {
		upd.Title = &title
	}
	if raw, ok := args["content"].(string); ok && raw != "" {
		content, err := domain.DecodeContent(sec.Type, []byte(raw))
		if err != nil {
			return nil, fmt.Errorf("parse content: %w", err)
		}
		upd.Content = content
	}
	if raw, ok := args["styles"].(string); ok && raw != "" {
		var styles domain.SectionStyles
		if err := json.Unmarshal([]byte(raw), &styles); err != nil {
			return nil, fmt.Errorf("parse styles: %w", err)
		}
		upd.Styles = &styles
	}

	s.store.UpdateSection(ctx, sectionID, upd)
	return textResult(fmt.Sprintf("Updated section %s", sectionID)), nil
}

func (s *Server) handleDeleteSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, err := requireString(args, "sectionId")
	if err != nil {
		return nil, err
	}
	if _, ok := s.findSection(sectionID); !ok {
		return nil, fmt.Errorf("section not found: %s", sectionID)
	}
	s.store.DeleteSection(ctx, sectionID)
	return textResult(fmt.Sprintf("Deleted section %s", sectionID)), nil
}

func (s *Server) handleMoveSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, err := requireString(args, "sectionId")
	if err != nil {
		return nil, err
	}
	targetID, err := requireString(args, "targetSectionId")
	if err != nil {
		return nil, err
	}
	s.store.MoveSection(ctx, sectionID, targetID)
	return textResult(fmt.Sprintf("Moved section %s to position of %s", sectionID, targetID)), nil
}

func (s *Server) handleListSections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.Snapshot().Sections)
}

// findSection looks a section up in the current snapshot.
func (s *Server) findSection(id string) (domain.Section, bool) {
	for _, sec := range s.store.Snapshot().Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return domain.Section{}, false
}
