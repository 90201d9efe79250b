package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"jobdeck/internal/editor"
	"jobdeck/internal/export"
	"jobdeck/internal/service"
	"jobdeck/internal/storage"
	"jobdeck/internal/watch"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	db       *storage.DB
	store    *storage.DocumentStore
	docs     *service.DocumentService
	exports  *service.ExportService
	backup   *service.BackupService
	settings *service.SettingsService
	images   *watch.ImageWatcher
	media    service.MediaAuthorizer
	emitter  service.EventEmitter

	// The open editor session and the record it came from ("" until the
	// first save of a new document).
	mu           sync.Mutex
	session      *editor.Session
	sessionDocID string
}

// New creates a new App. The app itself is the event emitter; tests
// swap in a recording one.
func New() *App {
	a := &App{media: service.AllowAllMedia{}}
	a.emitter = a
	return a
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "jobdeck")
	dbPath := filepath.Join(dataDir, "jobdeck.db")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db
	a.store = storage.NewDocumentStore(db)
	a.docs = service.NewDocumentService(a.store, a.emitter)

	rz, err := export.NewRasterizer()
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to load fonts: %v", err)
		return
	}
	a.exports = service.NewExportService(a.docs, rz, a, db.DataDir(), a.emitter)

	a.images = watch.NewImageWatcher(a.emitter)
	a.settings = service.NewSettingsService(db)

	size := a.settings.LoadWindowSize()
	wailsRuntime.WindowSetSize(ctx, size.Width, size.Height)

	a.backup = service.NewBackupService(a.store, db.DataDir(), a.emitter)
	if err := a.backup.Start("@daily"); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to schedule backups: %v", err)
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.settings != nil {
		w, h := wailsRuntime.WindowGetSize(ctx)
		if err := a.settings.SaveWindowSize(w, h); err != nil {
			wailsRuntime.LogErrorf(ctx, "Failed to save window size: %v", err)
		}
	}
	if a.images != nil {
		a.images.Stop()
	}
	if a.backup != nil {
		a.backup.Stop()
	}
	if a.exports != nil {
		a.exports.Wait(ctx)
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Emit implements service.EventEmitter by forwarding to the frontend.
// Always uses the Wails context: watchers and cron jobs emit with their
// own contexts, which the runtime would not recognize.
func (a *App) Emit(_ context.Context, event string, data any) {
	wailsRuntime.EventsEmit(a.ctx, event, data)
}

// ShareFile implements service.Sharer. Desktop has no share sheet, so
// the finished artifact is opened with the system handler instead.
func (a *App) ShareFile(_ context.Context, path, _ string) error {
	wailsRuntime.BrowserOpenURL(a.ctx, "file://"+path)
	return nil
}
