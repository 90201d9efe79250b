package service_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"jobdeck/internal/domain"
	"jobdeck/internal/service"
)

func TestBackupService_BackupNow(t *testing.T) {
	store := newFakeStore()
	docs := service.NewDocumentService(store, &service.MockEmitter{})
	ctx := context.Background()
	if _, err := docs.SaveTemplate(ctx, "", "", classicDoc()); err != nil {
		t.Fatal(err)
	}
	if _, err := docs.SaveResume(ctx, "", domain.Resume{
		Personal: domain.PersonalInfo{FullName: "Ana Silva", Email: "a@b.c"},
	}); err != nil {
		t.Fatal(err)
	}

	backup := service.NewBackupService(store, t.TempDir(), &service.MockEmitter{})
	path, err := backup.BackupNow()
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("backup is not a record array: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("backup holds %d records, want 2", len(records))
	}
}

func TestBackupService_RestoreRoundTrip(t *testing.T) {
	src := newFakeStore()
	docs := service.NewDocumentService(src, &service.MockEmitter{})
	rec, err := docs.SaveTemplate(context.Background(), "", "", classicDoc())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := service.NewBackupService(src, dir, &service.MockEmitter{}).BackupNow()
	if err != nil {
		t.Fatal(err)
	}

	// Restore into an empty store.
	dst := newFakeStore()
	n, err := service.NewBackupService(dst, dir, &service.MockEmitter{}).Restore(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("restored %d records, want 1", n)
	}
	got, err := dst.GetRecord(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != domain.KindTemplate || got.Name != rec.Name {
		t.Errorf("restored record mismatch: %+v", got)
	}
}

func TestBackupService_InvalidSchedule(t *testing.T) {
	backup := service.NewBackupService(newFakeStore(), t.TempDir(), &service.MockEmitter{})
	if err := backup.Start("not a cron expr"); err == nil {
		backup.Stop()
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestBackupService_ScheduledRun(t *testing.T) {
	store := newFakeStore()
	docs := service.NewDocumentService(store, &service.MockEmitter{})
	if _, err := docs.SaveTemplate(context.Background(), "", "", classicDoc()); err != nil {
		t.Fatal(err)
	}

	backup := service.NewBackupService(store, t.TempDir(), &service.MockEmitter{})
	// Every-second schedule only to prove the wiring; real installs use @daily.
	if err := backup.Start("@every 1s"); err != nil {
		t.Fatal(err)
	}
	defer backup.Stop()
}
