package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"jobdeck/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// App Settings Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves small UI preferences between sessions: the main window size and
// the last opened document. Stored in SQLite as key-value rows in
// app_settings.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SettingsService persists UI preferences between sessions.
type SettingsService struct {
	db *storage.DB
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(db *storage.DB) *SettingsService {
	return &SettingsService{db: db}
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	settingLastDocument = "last_document"
	defaultWindowWidth  = 1200
	defaultWindowHeight = 860
)

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *SettingsService) LoadWindowSize() WindowSize {
	if s.db == nil {
		return WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
	}
	conn := s.ensureTable()

	w := lookupInt(conn, settingWindowWidth, defaultWindowWidth)
	h := lookupInt(conn, settingWindowHeight, defaultWindowHeight)
	if w < 800 {
		w = defaultWindowWidth
	}
	if h < 600 {
		h = defaultWindowHeight
	}
	return WindowSize{Width: w, Height: h}
}

// SaveWindowSize persists the current window dimensions.
func (s *SettingsService) SaveWindowSize(width, height int) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	conn := s.ensureTable()
	if err := upsertSetting(conn, settingWindowWidth, strconv.Itoa(width)); err != nil {
		return err
	}
	return upsertSetting(conn, settingWindowHeight, strconv.Itoa(height))
}

// LastDocument returns the id of the last opened document, "" when none.
func (s *SettingsService) LastDocument() string {
	if s.db == nil {
		return ""
	}
	conn := s.ensureTable()
	var id string
	conn.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, settingLastDocument).Scan(&id)
	return id
}

// SetLastDocument remembers the last opened document for the next launch.
func (s *SettingsService) SetLastDocument(docID string) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	return upsertSetting(s.ensureTable(), settingLastDocument, docID)
}

// ensureTable creates the settings table on first use (idempotent).
func (s *SettingsService) ensureTable() *sql.DB {
	conn := s.db.Conn()
	conn.Exec(`CREATE TABLE IF NOT EXISTS app_settings (key TEXT PRIMARY KEY, value TEXT NOT NULL DEFAULT '')`)
	return conn
}

func lookupInt(conn *sql.DB, key string, fallback int) int {
	var raw string
	if err := conn.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&raw); err != nil {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func upsertSetting(conn *sql.DB, key, value string) error {
	_, err := conn.Exec(
		`INSERT INTO app_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
