package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"jobdeck/internal/export"
	mcpserver "jobdeck/internal/mcp"
	"jobdeck/internal/service"
	"jobdeck/internal/storage"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// It initializes storage, services, and runs the MCP server until interrupted.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "jobdeck")
	dbPath := filepath.Join(dataDir, "jobdeck.db")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	rz, err := export.NewRasterizer()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	emitter := noopEmitter{}
	docs := service.NewDocumentService(storage.NewDocumentStore(db), emitter)
	// No share surface in MCP mode; artifacts stay on disk.
	exports := service.NewExportService(docs, rz, nil, db.DataDir(), emitter)

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter: emitter,
		Docs:    docs,
		Exports: exports,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}

	exports.Wait(ctx)
}
