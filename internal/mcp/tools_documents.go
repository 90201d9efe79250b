package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"jobdeck/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDocumentTools() {
	// ── list_documents ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List stored documents, optionally filtered by kind"),
		mcp.WithString("kind", mcp.Description("Document kind: resume or template (optional, lists all)")),
	), s.handleListDocuments)

	// ── read_document ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read a stored document including its full payload"),
		mcp.WithString("docId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleReadDocument)

	// ── save_template ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_template",
		mcp.WithDescription("Save a template document snapshot. Creates a new document when docId is omitted."),
		mcp.WithString("document",
			mcp.Description(`JSON template document: {"templateId":"classic|modern|minimal","nodes":[...]}`),
			mcp.Required(),
		),
		mcp.WithString("docId", mcp.Description("Existing document ID to replace (optional)")),
		mcp.WithString("name", mcp.Description("Display name (optional, derived from the first title)")),
	), s.handleSaveTemplate)

	// ── delete_document (destructive) ──────────────────
	s.mcp.AddTool(mcp.NewTool("delete_document",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a stored document."),
		mcp.WithString("docId", mcp.Description("Document ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteDocument)

	// ── set_active_document ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_document",
		mcp.WithDescription("Set the document later tools default to when docId is omitted"),
		mcp.WithString("docId", mcp.Description("Document ID"), mcp.Required()),
	), s.handleSetActiveDocument)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListDocuments(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	kind, _ := args["kind"].(string)

	list, err := s.docs.ListDocuments(domain.RecordKind(kind))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return jsonResult(list)
}

func (s *Server) handleReadDocument(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := s.resolveDocID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	rec, err := s.docs.GetRecord(docID)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return jsonResult(rec)
}

func (s *Server) handleSaveTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw, _ := args["document"].(string)
	if raw == "" {
		return nil, fmt.Errorf("document is required")
	}
	var doc domain.TemplateDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	docID, _ := args["docId"].(string)
	name, _ := args["name"].(string)
	rec, err := s.docs.SaveTemplate(ctx, docID, name, doc)
	if err != nil {
		return nil, fmt.Errorf("save template: %w", err)
	}
	s.activeDocID = rec.ID
	return jsonResult(rec)
}

func (s *Server) handleDeleteDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, _ := req.GetArguments()["docId"].(string)
	if docID == "" {
		return nil, fmt.Errorf("docId is required")
	}
	if err := s.docs.DeleteDocument(ctx, docID); err != nil {
		return nil, fmt.Errorf("delete document: %w", err)
	}
	if s.activeDocID == docID {
		s.activeDocID = ""
	}
	return textResult(fmt.Sprintf("Document %s deleted", docID)), nil
}

func (s *Server) handleSetActiveDocument(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, _ := req.GetArguments()["docId"].(string)
	if docID == "" {
		return nil, fmt.Errorf("docId is required")
	}
	// Validate before adopting it as the default.
	if _, err := s.docs.GetRecord(docID); err != nil {
		return nil, fmt.Errorf("set active document: %w", err)
	}
	s.activeDocID = docID
	return textResult(fmt.Sprintf("Active document set to %s", docID)), nil
}
