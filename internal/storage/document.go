package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"jobdeck/internal/domain"
)

// DocumentStore implements domain.DocumentStore using SQLite.
type DocumentStore struct {
	db *DB

	mu     sync.Mutex
	lastID int64
}

func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// nextID returns an opaque timestamp-derived id. The counter bumps past
// the previous value so two creations inside the same millisecond still
// get distinct ids within this store instance.
func (s *DocumentStore) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// CreateRecord inserts the record, assigning an id when empty.
func (s *DocumentStore) CreateRecord(r *domain.Record) error {
	if r.ID == "" {
		r.ID = s.nextID()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	_, err := s.db.Conn().Exec(
		`INSERT INTO documents (id, kind, name, payload, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Kind, r.Name, r.Payload, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (s *DocumentStore) GetRecord(id string) (*domain.Record, error) {
	r := &domain.Record{}
	err := s.db.Conn().QueryRow(
		`SELECT id, kind, name, payload, created_at, updated_at FROM documents WHERE id = ?`, id,
	).Scan(&r.ID, &r.Kind, &r.Name, &r.Payload, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return r, nil
}

// ListRecords returns summaries, newest first. An empty kind lists the
// whole keyspace.
func (s *DocumentStore) ListRecords(kind domain.RecordKind) ([]domain.RecordSummary, error) {
	query := `SELECT id, kind, name, created_at, updated_at FROM documents ORDER BY created_at DESC`
	args := []any{}
	if kind != "" {
		query = `SELECT id, kind, name, created_at, updated_at FROM documents WHERE kind = ? ORDER BY created_at DESC`
		args = append(args, kind)
	}
	rows, err := s.db.Conn().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RecordSummary
	for rows.Next() {
		var r domain.RecordSummary
		if err := rows.Scan(&r.ID, &r.Kind, &r.Name, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateRecord replaces the stored payload wholesale.
func (s *DocumentStore) UpdateRecord(r *domain.Record) error {
	r.UpdatedAt = time.Now()
	res, err := s.db.Conn().Exec(
		`UPDATE documents SET kind = ?, name = ?, payload = ?, updated_at = ? WHERE id = ?`,
		r.Kind, r.Name, r.Payload, r.UpdatedAt, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) DeleteRecord(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM documents WHERE id = ?`, id)
	return err
}
