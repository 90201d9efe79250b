package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"jobdeck/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the resume builder. It exposes tools and
// resources so AI agents can inspect stored documents and run exports.
type Server struct {
	mcp     *server.MCPServer
	emitter service.EventEmitter

	// Services (injected from app layer)
	docs    *service.DocumentService
	exports *service.ExportService

	// Active document context (set by set_active_document tool)
	activeDocID string
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Emitter service.EventEmitter
	Docs    *service.DocumentService
	Exports *service.ExportService
}

// New creates and configures a new MCP server with all tools and resources.
func New(ctx context.Context, deps Deps) *Server {
	s := &Server{
		emitter: deps.Emitter,
		docs:    deps.Docs,
		exports: deps.Exports,
	}

	s.mcp = server.NewMCPServer(
		"jobdeck-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerDocumentTools()
	s.registerExportTools()
	s.registerResources()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resolveDocID returns the docId from tool args or falls back to the
// active document.
func (s *Server) resolveDocID(args map[string]any) (string, error) {
	if id, ok := args["docId"].(string); ok && id != "" {
		return id, nil
	}
	if s.activeDocID != "" {
		return s.activeDocID, nil
	}
	return "", fmt.Errorf("no docId provided and no active document set (use set_active_document first)")
}

func boolPtr(v bool) *bool { return &v }
