package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── design://current ───────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"design://current",
		"Current Website Design",
		mcp.WithMIMEType("application/json"),
	), s.handleDesignResource)

	// ── design://templates ─────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"design://templates",
		"Built-in Templates",
		mcp.WithMIMEType("application/json"),
	), s.handleTemplatesResource)
}

func (s *Server) handleDesignResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.store.DesignSnapshot(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "design://current",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleTemplatesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	res, err := s.handleListTemplates(ctx, mcp.CallToolRequest{})
	if err != nil {
		return nil, err
	}
	text := ""
	if len(res.Content) > 0 {
		if tc, ok := res.Content[0].(mcp.TextContent); ok {
			text = tc.Text
		}
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "design://templates",
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}
