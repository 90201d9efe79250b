package service

import (
	"context"
	"sync"
)

// ExportedRunningGuard is an exported alias so _test packages can test the guard.
type ExportedRunningGuard = runningExportsGuard

// ─────────────────────────────────────────────────────────────
// runningExportsGuard — one export per document at a time
// ─────────────────────────────────────────────────────────────

// runningExportsGuard tracks documents with an export in flight so a
// second export of the same document fails fast instead of racing on
// the output files.
type runningExportsGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// TryLock attempts to mark docID as exporting. Returns false when an
// export for that document is already running.
func (g *runningExportsGuard) TryLock(docID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[docID]; ok {
		return false // already exporting
	}
	g.running[docID] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock marks the document's export as finished. Must be called after
// TryLock returns true.
func (g *runningExportsGuard) Unlock(docID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, docID)
	g.wg.Done()
}

// WaitAll blocks until every in-flight export completes or ctx is cancelled.
func (g *runningExportsGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
