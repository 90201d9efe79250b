package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"jobdeck/internal/export"
	"jobdeck/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerExportTools() {
	// ── export_pdf ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_pdf",
		mcp.WithDescription("Export a template document as an A4 PDF (plus a standalone HTML artifact)"),
		mcp.WithString("docId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleExportPDF)

	// ── export_image ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_image",
		mcp.WithDescription("Export a template document as a raster image"),
		mcp.WithString("docId", mcp.Description("Document ID (optional, defaults to active document)")),
		mcp.WithString("format", mcp.Description("Image format: png or jpg (default png)")),
	), s.handleExportImage)

	// ── export_resume_html ─────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_resume_html",
		mcp.WithDescription("Export a structured resume as a standalone HTML page"),
		mcp.WithString("docId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleExportResumeHTML)

	// ── export_resume_pdf ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_resume_pdf",
		mcp.WithDescription("Export a structured resume as an A4 PDF"),
		mcp.WithString("docId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleExportResumePDF)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleExportPDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := s.resolveDocID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	path, err := s.exports.ExportPDF(ctx, docID)
	if err != nil {
		return nil, exportErr(docID, err)
	}
	return textResult("PDF written to " + path), nil
}

func (s *Server) handleExportImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	docID, err := s.resolveDocID(args)
	if err != nil {
		return nil, err
	}
	format := export.FormatPNG
	if f, _ := args["format"].(string); f == "jpg" || f == "jpeg" {
		format = export.FormatJPEG
	}
	path, err := s.exports.ExportImage(ctx, docID, format)
	if err != nil {
		return nil, exportErr(docID, err)
	}
	return textResult("Image written to " + path), nil
}

func (s *Server) handleExportResumeHTML(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := s.resolveDocID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	path, err := s.exports.ExportResumeHTML(ctx, docID)
	if err != nil {
		return nil, exportErr(docID, err)
	}
	return textResult("Resume HTML written to " + path), nil
}

func (s *Server) handleExportResumePDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := s.resolveDocID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	path, err := s.exports.ExportResumePDF(ctx, docID)
	if err != nil {
		return nil, exportErr(docID, err)
	}
	return textResult("Resume PDF written to " + path), nil
}

func exportErr(docID string, err error) error {
	if errors.Is(err, service.ErrExportInProgress) {
		return fmt.Errorf("document %s is already being exported, try again shortly", docID)
	}
	return fmt.Errorf("export %s: %w", docID, err)
}
