package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
)

func (s *Server) registerDesignTools() {
	// ── get_design ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_design",
		mcp.WithDescription("Get the full design document (sections + global styles)"),
	), s.handleGetDesign)

	// ── set_global_styles ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_global_styles",
		mcp.WithDescription("Partially update the page theme; omitted fields keep their value"),
		mcp.WithString("primaryColor", mcp.Description("Primary color, e.g. #155dfc")),
		mcp.WithString("secondaryColor", mcp.Description("Secondary color")),
		mcp.WithString("fontFamily", mcp.Description("Font family, e.g. Inter")),
		mcp.WithString("backgroundColor", mcp.Description("Page background color")),
	), s.handleSetGlobalStyles)

	// ── list_templates ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the built-in website templates"),
	), s.handleListTemplates)

	// ── load_template (destructive) ────────────────────
	s.mcp.AddTool(mcp.NewTool("load_template",
		mcp.WithDescription("🛑 DESTRUCTIVE: Replace the whole page with a built-in template"),
		mcp.WithString("templateId", mcp.Description("Template ID from list_templates"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleLoadTemplate)

	// ── import_design (destructive) ────────────────────
	s.mcp.AddTool(mcp.NewTool("import_design",
		mcp.WithDescription("🛑 DESTRUCTIVE: Replace the whole page with an exported design document"),
		mcp.WithString("design", mcp.Description("The design envelope JSON"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleImportDesign)

	// ── run_backup ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("run_backup",
		mcp.WithDescription("Store an immediate backup of the current design"),
	), s.handleRunBackup)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleGetDesign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.DesignSnapshot())
}

func (s *Server) handleSetGlobalStyles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	var upd builder.GlobalStylesUpdate
	if v, ok := args["primaryColor"].(string); ok && v != "" {
		upd.PrimaryColor = &v
	}
	if v, ok := args["secondaryColor"].(string); ok && v != "" {
		upd.SecondaryColor = &v
	}
	if v, ok := args["fontFamily"].(string); ok && v != "" {
		upd.FontFamily = &v
	}
	if v, ok := args["backgroundColor"].(string); ok && v != "" {
		upd.BackgroundColor = &v
	}
	s.store.UpdateGlobalStyles(ctx, upd)
	return jsonResult(s.store.Snapshot().GlobalStyles)
}

func (s *Server) handleListTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type templateSummary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Sections    int    `json:"sections"`
	}
	var summaries []templateSummary
	for _, t := range domain.BuiltinTemplates() {
		summaries = append(summaries, templateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			Sections:    len(t.Sections),
		})
	}
	return jsonResult(summaries)
}

func (s *Server) handleLoadTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	templateID, err := requireString(args, "templateId")
	if err != nil {
		return nil, err
	}
	t, ok := domain.FindTemplate(templateID)
	if !ok {
		return nil, fmt.Errorf("template not found: %s", templateID)
	}
	if err := s.store.LoadTemplate(ctx, t); err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	return textResult(fmt.Sprintf("Loaded template %q (%d sections)", t.Name, len(t.Sections))), nil
}

func (s *Server) handleImportDesign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw, err := requireString(args, "design")
	if err != nil {
		return nil, err
	}
	if err := s.store.ImportConfig(ctx, []byte(raw)); err != nil {
		return nil, err
	}
	return textResult("Design imported"), nil
}

func (s *Server) handleRunBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.backups == nil {
		return nil, fmt.Errorf("backups not available")
	}
	b, err := s.backups.RunBackup(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return textResult("Backup already running"), nil
	}
	data, _ := json.Marshal(map[string]string{"id": b.ID})
	return textResult(string(data)), nil
}
