package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when no record matches the given id.
var ErrNotFound = errors.New("record not found")

// RecordKind discriminates the two document families sharing one store.
// The shape of Payload depends on the kind; callers must switch on it
// explicitly rather than guessing from the fields present.
type RecordKind string

const (
	KindResume   RecordKind = "resume"
	KindTemplate RecordKind = "template"
)

// Record is a saved document. Payload holds the JSON-serialized
// TemplateDoc or Resume verbatim.
type Record struct {
	ID        string     `json:"id"`
	Kind      RecordKind `json:"kind"`
	Name      string     `json:"name"`
	Payload   string     `json:"payload"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// RecordSummary is the listing shape (no payload).
type RecordSummary struct {
	ID        string     `json:"id"`
	Kind      RecordKind `json:"kind"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TemplateDoc decodes the payload of a template record.
func (r *Record) TemplateDoc() (TemplateDoc, error) {
	var doc TemplateDoc
	if r.Kind != KindTemplate {
		return doc, errors.New("record is not a template document")
	}
	err := json.Unmarshal([]byte(r.Payload), &doc)
	return doc, err
}

// Resume decodes the payload of a resume record.
func (r *Record) Resume() (Resume, error) {
	var res Resume
	if r.Kind != KindResume {
		return res, errors.New("record is not a resume")
	}
	err := json.Unmarshal([]byte(r.Payload), &res)
	return res, err
}

// DocumentStore is the persistence gateway. Records are read and
// replaced wholesale; there is no field-level update and no optimistic
// concurrency token (a racing update silently overwrites).
type DocumentStore interface {
	CreateRecord(r *Record) error
	GetRecord(id string) (*Record, error)
	ListRecords(kind RecordKind) ([]RecordSummary, error)
	UpdateRecord(r *Record) error
	DeleteRecord(id string) error
}
