package storage_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"jobdeck/internal/domain"
	"jobdeck/internal/storage"
)

func newTestStore(t *testing.T) *storage.DocumentStore {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "jobdeck.db"), filepath.Join(dir, "data"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return storage.NewDocumentStore(db)
}

func TestNew_CreatesDataDir(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	db, err := storage.New(filepath.Join(dir, "jobdeck.db"), dataDir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if got := db.DataDir(); got != dataDir {
		t.Errorf("DataDir() = %s, want %s", got, dataDir)
	}
	if _, err := os.Stat(dataDir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestDocumentStore_TemplateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	doc := domain.TemplateDoc{
		TemplateID: domain.TemplateClassic,
		Nodes: []domain.TemplateNode{
			{ID: "t", Type: domain.NodeTitle, Text: "Ana Silva"},
			{ID: "p", Type: domain.NodeParagraph, Text: "Engenheira"},
			{ID: "i", Type: domain.NodeImage, URI: "file:///a.jpg", Width: 140, Height: 140,
				X: domain.Float(16), Y: domain.Float(16)},
		},
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	rec := &domain.Record{Kind: domain.KindTemplate, Name: "Ana Silva", Payload: string(payload)}
	if err := store.CreateRecord(rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Fatal("create did not assign an id")
	}

	got, err := store.GetRecord(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != domain.KindTemplate {
		t.Errorf("kind = %s, want template", got.Kind)
	}
	loaded, err := got.TemplateDoc()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.TemplateID != doc.TemplateID || len(loaded.Nodes) != len(doc.Nodes) {
		t.Errorf("payload round trip changed the document: %+v", loaded)
	}
	if loaded.Nodes[2].X == nil || *loaded.Nodes[2].X != 16 {
		t.Errorf("positioned image lost its coordinates: %+v", loaded.Nodes[2])
	}
}

func TestDocumentStore_IDsAreUnique(t *testing.T) {
	store := newTestStore(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		rec := &domain.Record{Kind: domain.KindResume, Payload: "{}"}
		if err := store.CreateRecord(rec); err != nil {
			t.Fatal(err)
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate id %s on sub-millisecond creation", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestDocumentStore_ListFiltersByKind(t *testing.T) {
	store := newTestStore(t)
	for _, kind := range []domain.RecordKind{domain.KindResume, domain.KindTemplate, domain.KindTemplate} {
		if err := store.CreateRecord(&domain.Record{Kind: kind, Payload: "{}"}); err != nil {
			t.Fatal(err)
		}
	}

	templates, err := store.ListRecords(domain.KindTemplate)
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 2 {
		t.Errorf("template count = %d, want 2", len(templates))
	}
	all, err := store.ListRecords("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("total count = %d, want 3", len(all))
	}
}

func TestDocumentStore_NotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetRecord("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get missing = %v, want ErrNotFound", err)
	}
	err := store.UpdateRecord(&domain.Record{ID: "nope", Kind: domain.KindResume, Payload: "{}"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}
	if err := store.DeleteRecord("nope"); err != nil {
		t.Errorf("delete missing should be a no-op, got %v", err)
	}
}

func TestDocumentStore_UpdateReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	rec := &domain.Record{Kind: domain.KindResume, Name: "v1", Payload: `{"a":1}`}
	if err := store.CreateRecord(rec); err != nil {
		t.Fatal(err)
	}

	rec.Name = "v2"
	rec.Payload = `{"b":2}`
	if err := store.UpdateRecord(rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetRecord(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "v2" || got.Payload != `{"b":2}` {
		t.Errorf("record not replaced: %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("updated_at not advanced: %v vs %v", got.UpdatedAt, got.CreatedAt)
	}
}
