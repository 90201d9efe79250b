package app

import (
	"fmt"

	"jobdeck/internal/export"
)

// ============================================================
// Export bindings
// ============================================================

// resolveExportDoc falls back to the open session's record when no id
// is given. The session must have been saved at least once.
func (a *App) resolveExportDoc(docID string) (string, error) {
	if docID != "" {
		return docID, nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sessionDocID == "" {
		return "", fmt.Errorf("save the document before exporting")
	}
	return a.sessionDocID, nil
}

// ExportPDF renders the document to an A4 PDF (with a standalone HTML
// artifact alongside) and opens it. Empty docID exports the open session.
func (a *App) ExportPDF(docID string) (string, error) {
	id, err := a.resolveExportDoc(docID)
	if err != nil {
		return "", err
	}
	return a.exports.ExportPDF(a.ctx, id)
}

// ExportImage renders the document to a PNG or JPEG file and opens it.
func (a *App) ExportImage(docID, format string) (string, error) {
	id, err := a.resolveExportDoc(docID)
	if err != nil {
		return "", err
	}
	f := export.FormatPNG
	if format == "jpg" || format == "jpeg" {
		f = export.FormatJPEG
	}
	return a.exports.ExportImage(a.ctx, id, f)
}

// ExportResumeHTML writes a standalone HTML rendition of a stored
// structured resume.
func (a *App) ExportResumeHTML(docID string) (string, error) {
	if docID == "" {
		return "", fmt.Errorf("docID is required")
	}
	return a.exports.ExportResumeHTML(a.ctx, docID)
}

// ExportResumePDF renders a stored structured resume to an A4 PDF.
func (a *App) ExportResumePDF(docID string) (string, error) {
	if docID == "" {
		return "", fmt.Errorf("docID is required")
	}
	return a.exports.ExportResumePDF(a.ctx, docID)
}
