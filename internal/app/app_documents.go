package app

import (
	"jobdeck/internal/domain"
)

// ============================================================
// Stored documents
// ============================================================

// ListDocuments returns summaries of stored documents, newest first.
// kind is "resume", "template" or "" for all.
func (a *App) ListDocuments(kind string) ([]domain.RecordSummary, error) {
	return a.docs.ListDocuments(domain.RecordKind(kind))
}

// DeleteDocument removes a stored document. Deleting the open session's
// record turns the session into an unsaved one.
func (a *App) DeleteDocument(id string) error {
	if err := a.docs.DeleteDocument(a.ctx, id); err != nil {
		return err
	}

	a.mu.Lock()
	if a.sessionDocID == id {
		a.sessionDocID = ""
		a.images.Stop()
	}
	a.mu.Unlock()
	return nil
}

// SaveResume persists a structured resume. An empty id creates a new
// record.
func (a *App) SaveResume(id string, r domain.Resume) (*domain.Record, error) {
	return a.docs.SaveResume(a.ctx, id, r)
}

// LoadResume returns the stored resume with the given id.
func (a *App) LoadResume(id string) (domain.Resume, error) {
	return a.docs.LoadResume(id)
}

// LastDocument returns the id of the last opened document so the
// frontend can reopen it on launch, "" when none.
func (a *App) LastDocument() string {
	return a.settings.LastDocument()
}

// ============================================================
// Backups
// ============================================================

// BackupNow writes an immediate backup and returns its path.
func (a *App) BackupNow() (string, error) {
	return a.backup.BackupNow()
}

// RestoreBackup re-imports the records from a backup file. Returns the
// number of restored records.
func (a *App) RestoreBackup(path string) (int, error) {
	return a.backup.Restore(path)
}
