package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"jobdeck/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Backup Service — cron-scheduled JSON snapshots of the store
// ─────────────────────────────────────────────────────────────

// BackupService periodically dumps every stored document to a JSON file
// under <dataDir>/backups. Backups are plain full-record arrays so a
// snapshot can be inspected or re-imported by hand.
type BackupService struct {
	store   domain.DocumentStore
	dataDir string
	emitter EventEmitter

	sched *cron.Cron
}

// NewBackupService creates a BackupService.
func NewBackupService(store domain.DocumentStore, dataDir string, emitter EventEmitter) *BackupService {
	return &BackupService{store: store, dataDir: dataDir, emitter: emitter}
}

// Start schedules backups with the given cron expression (e.g. "@daily").
// Replaces any previous schedule.
func (s *BackupService) Start(expr string) error {
	s.Stop()

	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		path, err := s.BackupNow()
		if err != nil {
			log.Printf("backup cron: %v", err)
			return
		}
		log.Printf("backup cron: wrote %s", path)
		s.emitter.Emit(context.Background(), "backup:done", path)
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", expr, err)
	}
	c.Start()
	s.sched = c
	return nil
}

// Stop cancels the schedule. In-flight backups finish.
func (s *BackupService) Stop() {
	if s.sched != nil {
		s.sched.Stop()
		s.sched = nil
	}
}

// BackupNow writes a timestamped snapshot of every record and returns
// its path.
func (s *BackupService) BackupNow() (string, error) {
	summaries, err := s.store.ListRecords("")
	if err != nil {
		return "", fmt.Errorf("backup: list records: %w", err)
	}

	records := make([]domain.Record, 0, len(summaries))
	for _, sum := range summaries {
		rec, err := s.store.GetRecord(sum.ID)
		if err != nil {
			return "", fmt.Errorf("backup: read record %s: %w", sum.ID, err)
		}
		records = append(records, *rec)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("backup: encode: %w", err)
	}

	dir := filepath.Join(s.dataDir, "backups")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("backup: create directory: %w", err)
	}
	path := filepath.Join(dir, "backup-"+time.Now().Format("20060102-150405")+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("backup: write: %w", err)
	}
	return path, nil
}

// Restore re-inserts the records from a backup file. Existing records
// with the same id are replaced.
func (s *BackupService) Restore(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("restore: read: %w", err)
	}
	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("restore: decode: %w", err)
	}

	restored := 0
	for i := range records {
		rec := records[i]
		err := s.store.UpdateRecord(&rec)
		if errors.Is(err, domain.ErrNotFound) {
			err = s.store.CreateRecord(&rec)
		}
		if err != nil {
			return restored, fmt.Errorf("restore: record %s: %w", rec.ID, err)
		}
		restored++
	}
	return restored, nil
}
