package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"jobdeck/internal/domain"
	"jobdeck/internal/export"
	"jobdeck/internal/service"
)

type recordingSharer struct {
	paths []string
	mimes []string
	err   error
	gate  chan struct{} // when set, ShareFile blocks until the gate closes
}

func (s *recordingSharer) ShareFile(_ context.Context, path, mime string) error {
	if s.gate != nil {
		<-s.gate
	}
	s.paths = append(s.paths, path)
	s.mimes = append(s.mimes, mime)
	return s.err
}

func newExportFixture(t *testing.T, sharer service.Sharer) (*service.ExportService, string, *service.MockEmitter) {
	t.Helper()
	rz, err := export.NewRasterizer()
	if err != nil {
		t.Fatal(err)
	}
	store := newFakeStore()
	emitter := &service.MockEmitter{}
	docs := service.NewDocumentService(store, emitter)
	rec, err := docs.SaveTemplate(context.Background(), "", "", classicDoc())
	if err != nil {
		t.Fatal(err)
	}
	svc := service.NewExportService(docs, rz, sharer, t.TempDir(), emitter)
	return svc, rec.ID, emitter
}

func TestExportService_ExportPDF(t *testing.T) {
	sharer := &recordingSharer{}
	svc, docID, _ := newExportFixture(t, sharer)

	path, err := svc.ExportPDF(context.Background(), docID)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("exported file is not a PDF")
	}

	// The standalone HTML artifact lands next to the PDF.
	htmlPath := strings.TrimSuffix(path, ".pdf") + ".html"
	html, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("html artifact missing: %v", err)
	}
	if !strings.Contains(string(html), "Ana Silva") {
		t.Error("html artifact missing document text")
	}

	if len(sharer.paths) != 1 || sharer.mimes[0] != "application/pdf" {
		t.Errorf("share call = %v %v, want one pdf share", sharer.paths, sharer.mimes)
	}
}

func TestExportService_ExportImage(t *testing.T) {
	sharer := &recordingSharer{}
	svc, docID, _ := newExportFixture(t, sharer)

	path, err := svc.ExportImage(context.Background(), docID, export.FormatJPEG)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0xFF, 0xD8}) {
		t.Error("exported file is not a JPEG")
	}
	if sharer.mimes[0] != "image/jpeg" {
		t.Errorf("share mime = %s, want image/jpeg", sharer.mimes[0])
	}
}

func TestExportService_RejectsConcurrentExport(t *testing.T) {
	gate := make(chan struct{})
	sharer := &recordingSharer{gate: gate}
	svc, docID, _ := newExportFixture(t, sharer)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.ExportPDF(ctx, docID)
		firstDone <- err
	}()

	// Wait until the first export reaches the (blocked) share call, then
	// a second export for the same document must be rejected.
	deadline := time.After(5 * time.Second)
	for {
		_, err := svc.ExportPDF(ctx, docID)
		if errors.Is(err, service.ErrExportInProgress) {
			break
		}
		select {
		case <-deadline:
			t.Fatal("second export never saw the in-progress guard")
		case <-time.After(5 * time.Millisecond):
		}
	}

	close(gate)
	if err := <-firstDone; err != nil {
		t.Fatalf("first export failed: %v", err)
	}
}

func TestExportService_ShareFailureIsNotFatal(t *testing.T) {
	sharer := &recordingSharer{err: errors.New("no share target")}
	svc, docID, emitter := newExportFixture(t, sharer)

	path, err := svc.ExportPDF(context.Background(), docID)
	if err != nil {
		t.Fatalf("share failure must not fail the export: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("artifact missing after share failure: %v", err)
	}

	var noticed bool
	for _, e := range emitter.Events {
		if e.Event == "export:notice" {
			noticed = true
		}
	}
	if !noticed {
		t.Error("expected export:notice event when sharing fails")
	}
}

func TestExportService_NilSharer(t *testing.T) {
	svc, docID, _ := newExportFixture(t, nil)
	if _, err := svc.ExportPDF(context.Background(), docID); err != nil {
		t.Fatalf("export without a share surface should work: %v", err)
	}
}

func TestExportService_ExportResumeHTML(t *testing.T) {
	rz, err := export.NewRasterizer()
	if err != nil {
		t.Fatal(err)
	}
	store := newFakeStore()
	emitter := &service.MockEmitter{}
	docs := service.NewDocumentService(store, emitter)
	rec, err := docs.SaveResume(context.Background(), "", domain.Resume{
		Personal: domain.PersonalInfo{FullName: "Ana Silva", Email: "ana@example.com"},
	})
	if err != nil {
		t.Fatal(err)
	}
	svc := service.NewExportService(docs, rz, nil, t.TempDir(), emitter)

	path, err := svc.ExportResumeHTML(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	html, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "Ana Silva") {
		t.Error("resume html missing the name")
	}
}

func TestAllowAllMedia(t *testing.T) {
	ok, err := service.AllowAllMedia{}.AuthorizeMediaAccess(context.Background())
	if err != nil || !ok {
		t.Fatalf("AllowAllMedia = %v, %v; want true, nil", ok, err)
	}
}
