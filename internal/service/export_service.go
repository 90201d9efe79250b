package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"jobdeck/internal/export"
)

// ─────────────────────────────────────────────────────────────
// Export Service — inline → render → write file → share
// ─────────────────────────────────────────────────────────────

// ErrExportInProgress is returned when an export is requested for a
// document that is already being exported.
var ErrExportInProgress = errors.New("export already in progress for this document")

// Sharer hands a finished artifact to the platform share surface.
// Sharing is best-effort: the artifact stays on disk either way.
type Sharer interface {
	ShareFile(ctx context.Context, path, mime string) error
}

// MediaAuthorizer gates access to the user's image library.
type MediaAuthorizer interface {
	AuthorizeMediaAccess(ctx context.Context) (bool, error)
}

// AllowAllMedia is a MediaAuthorizer that always grants access. Desktop
// builds use it; tests substitute a denying implementation.
type AllowAllMedia struct{}

func (AllowAllMedia) AuthorizeMediaAccess(context.Context) (bool, error) { return true, nil }

// ExportService renders stored template documents to their shareable
// forms. Each export for a given document runs alone: a second request
// while one is in flight fails fast with ErrExportInProgress.
type ExportService struct {
	docs       *DocumentService
	rasterizer *export.Rasterizer
	sharer     Sharer
	dataDir    string
	emitter    EventEmitter
	guard      runningExportsGuard
}

// NewExportService creates an ExportService. sharer may be nil when no
// share surface is available.
func NewExportService(docs *DocumentService, rz *export.Rasterizer, sharer Sharer, dataDir string, emitter EventEmitter) *ExportService {
	return &ExportService{docs: docs, rasterizer: rz, sharer: sharer, dataDir: dataDir, emitter: emitter}
}

// ExportPDF renders the document to an A4 PDF, writing the matching
// standalone HTML next to it, and offers the PDF to the share surface.
// Returns the PDF path.
func (s *ExportService) ExportPDF(ctx context.Context, docID string) (string, error) {
	if !s.guard.TryLock(docID) {
		return "", ErrExportInProgress
	}
	defer s.guard.Unlock(docID)

	doc, err := s.docs.LoadTemplate(docID)
	if err != nil {
		return "", err
	}
	doc = export.InlineNodeImages(doc)

	dir, err := s.exportDir()
	if err != nil {
		return "", err
	}
	base := filepath.Join(dir, exportBaseName(docID))

	html := export.BuildTemplateHTML(doc, export.HTMLOptions{})
	if err := os.WriteFile(base+".html", []byte(html), 0644); err != nil {
		return "", fmt.Errorf("write html artifact: %w", err)
	}

	pdfPath := base + ".pdf"
	f, err := os.Create(pdfPath)
	if err != nil {
		return "", fmt.Errorf("create pdf: %w", err)
	}
	if err := export.WriteTemplatePDF(f, doc, export.PDFOptions{}); err != nil {
		f.Close()
		os.Remove(pdfPath)
		return "", fmt.Errorf("render pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close pdf: %w", err)
	}

	s.share(ctx, pdfPath, "application/pdf")
	s.emitter.Emit(ctx, "export:done", pdfPath)
	return pdfPath, nil
}

// ExportImage renders the document's print tree to a PNG or JPEG file
// and offers it to the share surface. Returns the image path.
func (s *ExportService) ExportImage(ctx context.Context, docID string, format export.RasterFormat) (string, error) {
	if !s.guard.TryLock(docID) {
		return "", ErrExportInProgress
	}
	defer s.guard.Unlock(docID)

	doc, err := s.docs.LoadTemplate(docID)
	if err != nil {
		return "", err
	}
	doc = export.InlineNodeImages(doc)

	opts := export.RasterOptions{Format: format}
	img, err := s.rasterizer.Render(doc, opts)
	if err != nil {
		return "", fmt.Errorf("render image: %w", err)
	}

	dir, err := s.exportDir()
	if err != nil {
		return "", err
	}
	ext, mime := ".png", "image/png"
	if format == export.FormatJPEG {
		ext, mime = ".jpg", "image/jpeg"
	}
	path := filepath.Join(dir, exportBaseName(docID)+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if err := s.rasterizer.Encode(f, img, opts); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image: %w", err)
	}

	s.share(ctx, path, mime)
	s.emitter.Emit(ctx, "export:done", path)
	return path, nil
}

// ExportResumeHTML writes a standalone HTML rendition of a structured
// resume, inlining the avatar when one is set. Returns the file path.
func (s *ExportService) ExportResumeHTML(ctx context.Context, docID string) (string, error) {
	if !s.guard.TryLock(docID) {
		return "", ErrExportInProgress
	}
	defer s.guard.Unlock(docID)

	r, err := s.docs.LoadResume(docID)
	if err != nil {
		return "", err
	}
	avatar := ""
	if r.Personal.AvatarURI != "" {
		if uri, err := export.ToDataURI(r.Personal.AvatarURI); err == nil {
			avatar = uri
		} else {
			log.Printf("export: avatar inline failed for %s: %v", docID, err)
		}
	}

	dir, err := s.exportDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, exportBaseName(docID)+".html")
	html := export.BuildResumeHTML(r, avatar)
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("write resume html: %w", err)
	}

	s.share(ctx, path, "text/html")
	s.emitter.Emit(ctx, "export:done", path)
	return path, nil
}

// ExportResumePDF renders a structured resume to an A4 PDF and offers
// it to the share surface. Returns the file path.
func (s *ExportService) ExportResumePDF(ctx context.Context, docID string) (string, error) {
	if !s.guard.TryLock(docID) {
		return "", ErrExportInProgress
	}
	defer s.guard.Unlock(docID)

	r, err := s.docs.LoadResume(docID)
	if err != nil {
		return "", err
	}
	avatar := ""
	if r.Personal.AvatarURI != "" {
		if uri, err := export.ToDataURI(r.Personal.AvatarURI); err == nil {
			avatar = uri
		} else {
			log.Printf("export: avatar inline failed for %s: %v", docID, err)
		}
	}

	dir, err := s.exportDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, exportBaseName(docID)+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create pdf: %w", err)
	}
	if err := export.WriteResumePDF(f, r, avatar); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("render resume pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close pdf: %w", err)
	}

	s.share(ctx, path, "application/pdf")
	s.emitter.Emit(ctx, "export:done", path)
	return path, nil
}

// Wait blocks until all in-flight exports finish or ctx is cancelled.
// Called on shutdown.
func (s *ExportService) Wait(ctx context.Context) {
	s.guard.WaitAll(ctx)
}

// share offers the file to the platform share surface. Failure is not
// fatal: the artifact is on disk, so we log and surface a notice.
func (s *ExportService) share(ctx context.Context, path, mime string) {
	if s.sharer == nil {
		return
	}
	if err := s.sharer.ShareFile(ctx, path, mime); err != nil {
		log.Printf("export: share failed for %s: %v", path, err)
		s.emitter.Emit(ctx, "export:notice", "Sharing unavailable — file saved to "+path)
	}
}

func (s *ExportService) exportDir() (string, error) {
	dir := filepath.Join(s.dataDir, "exports")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return dir, nil
}

func exportBaseName(docID string) string {
	return fmt.Sprintf("%s-%d", docID, time.Now().Unix())
}
