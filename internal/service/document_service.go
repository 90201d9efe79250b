package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobdeck/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Document Service — business logic for stored documents
// ─────────────────────────────────────────────────────────────

// ValidationError reports a rejected document field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// DocumentService manages the lifecycle of resume and template documents.
// Saves are whole-document snapshots: the caller hands over the full
// current state and the previous stored payload is replaced.
type DocumentService struct {
	store   domain.DocumentStore
	emitter EventEmitter
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(store domain.DocumentStore, emitter EventEmitter) *DocumentService {
	return &DocumentService{store: store, emitter: emitter}
}

// SaveTemplate persists a template document snapshot. An empty id creates
// a new record; otherwise the existing record is replaced. The record name
// is derived from the first title node unless a name is given.
func (s *DocumentService) SaveTemplate(ctx context.Context, id, name string, doc domain.TemplateDoc) (*domain.Record, error) {
	if err := validateTemplateDoc(doc); err != nil {
		return nil, err
	}
	if name == "" {
		name = templateDisplayName(doc)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}

	rec := &domain.Record{ID: id, Kind: domain.KindTemplate, Name: name, Payload: string(payload)}
	if id == "" {
		err = s.store.CreateRecord(rec)
	} else {
		prev, getErr := s.store.GetRecord(id)
		if getErr != nil {
			return nil, getErr
		}
		rec.CreatedAt = prev.CreatedAt
		err = s.store.UpdateRecord(rec)
	}
	if err != nil {
		return nil, fmt.Errorf("save template: %w", err)
	}
	s.emitter.Emit(ctx, "documents:changed", rec.ID)
	return rec, nil
}

// LoadTemplate returns the template document stored under id.
func (s *DocumentService) LoadTemplate(id string) (domain.TemplateDoc, error) {
	rec, err := s.store.GetRecord(id)
	if err != nil {
		return domain.TemplateDoc{}, err
	}
	if rec.Kind != domain.KindTemplate {
		return domain.TemplateDoc{}, &ValidationError{Field: "kind", Msg: string(rec.Kind) + " is not a template"}
	}
	return rec.TemplateDoc()
}

// SaveResume persists a structured resume snapshot.
func (s *DocumentService) SaveResume(ctx context.Context, id string, r domain.Resume) (*domain.Record, error) {
	name := strings.TrimSpace(r.Personal.FullName)
	if name == "" {
		return nil, &ValidationError{Field: "fullName", Msg: "must not be empty"}
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode resume: %w", err)
	}

	rec := &domain.Record{ID: id, Kind: domain.KindResume, Name: name, Payload: string(payload)}
	if id == "" {
		err = s.store.CreateRecord(rec)
	} else {
		prev, getErr := s.store.GetRecord(id)
		if getErr != nil {
			return nil, getErr
		}
		rec.CreatedAt = prev.CreatedAt
		err = s.store.UpdateRecord(rec)
	}
	if err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}
	s.emitter.Emit(ctx, "documents:changed", rec.ID)
	return rec, nil
}

// LoadResume returns the resume stored under id.
func (s *DocumentService) LoadResume(id string) (domain.Resume, error) {
	rec, err := s.store.GetRecord(id)
	if err != nil {
		return domain.Resume{}, err
	}
	if rec.Kind != domain.KindResume {
		return domain.Resume{}, &ValidationError{Field: "kind", Msg: string(rec.Kind) + " is not a resume"}
	}
	return rec.Resume()
}

// GetRecord returns the raw record by id.
func (s *DocumentService) GetRecord(id string) (*domain.Record, error) {
	return s.store.GetRecord(id)
}

// ListDocuments returns summaries for the given kind, newest first.
// An empty kind lists everything.
func (s *DocumentService) ListDocuments(kind domain.RecordKind) ([]domain.RecordSummary, error) {
	return s.store.ListRecords(kind)
}

// DeleteDocument removes a stored document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.store.DeleteRecord(id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.emitter.Emit(ctx, "documents:changed", id)
	return nil
}

// ── validation ─────────────────────────────────────────────

func validateTemplateDoc(doc domain.TemplateDoc) error {
	for i, n := range doc.Nodes {
		switch n.Type {
		case domain.NodeTitle, domain.NodeParagraph:
			// empty text is allowed; the user may still be typing
		case domain.NodeImage:
			if n.URI == "" {
				return &ValidationError{Field: fmt.Sprintf("nodes[%d].uri", i), Msg: "image node without a source"}
			}
			if n.Width < 0 || n.Height < 0 {
				return &ValidationError{Field: fmt.Sprintf("nodes[%d]", i), Msg: "negative image dimensions"}
			}
		default:
			return &ValidationError{Field: fmt.Sprintf("nodes[%d].type", i), Msg: "unknown node type " + string(n.Type)}
		}
	}
	return nil
}

// templateDisplayName derives a list name from the first non-empty title,
// falling back to the template id.
func templateDisplayName(doc domain.TemplateDoc) string {
	for _, n := range doc.Nodes {
		if n.Type == domain.NodeTitle && strings.TrimSpace(n.Text) != "" {
			return strings.TrimSpace(n.Text)
		}
	}
	return "Template " + string(doc.TemplateID)
}
