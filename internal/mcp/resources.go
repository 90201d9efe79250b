package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── jobdeck://documents ────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"jobdeck://documents",
		"All Documents",
		mcp.WithMIMEType("application/json"),
	), s.handleDocumentsResource)

	// ── jobdeck://document/{docId} ─────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"jobdeck://document/{docId}",
			"A Stored Document",
		),
		s.handleDocumentResource,
	)
}

func (s *Server) handleDocumentsResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := s.docs.ListDocuments("")
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(list, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "jobdeck://documents",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleDocumentResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	docID := strings.TrimPrefix(uri, "jobdeck://document/")
	if docID == "" || docID == uri {
		return nil, fmt.Errorf("could not extract docId from URI: %s", uri)
	}

	rec, err := s.docs.GetRecord(docID)
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(rec, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
