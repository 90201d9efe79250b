package watch

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"jobdeck/internal/domain"
	"jobdeck/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Image watcher — refresh the editor when source files change
// ─────────────────────────────────────────────────────────────

const debounce = 300 * time.Millisecond

// ImageWatcher watches the local image files referenced by an open
// document and emits media:changed when one is rewritten, so the editor
// can re-read it. Remote and data-URI images are ignored.
type ImageWatcher struct {
	emitter service.EventEmitter

	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	cancel    context.CancelFunc
	pathToDoc map[string]string
}

// NewImageWatcher creates an ImageWatcher.
func NewImageWatcher(emitter service.EventEmitter) *ImageWatcher {
	return &ImageWatcher{emitter: emitter}
}

// Watch replaces the watched set with the local image files of the given
// document. Call with no nodes (or only remote images) to stop watching.
func (w *ImageWatcher) Watch(docID string, nodes []domain.TemplateNode) error {
	w.Stop()

	var paths []string
	for _, n := range nodes {
		if n.Type != domain.NodeImage {
			continue
		}
		if p := localImagePath(n.URI); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	pathToDoc := make(map[string]string)
	watchedDirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			log.Printf("image watcher: bad path %q: %v", p, err)
			continue
		}
		pathToDoc[abs] = docID

		// Watch the directory, not the file: editors replace files by
		// rename and a direct file watch goes stale.
		dir := filepath.Dir(abs)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				log.Printf("image watcher: failed to watch %q: %v", dir, err)
			} else {
				watchedDirs[dir] = true
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	w.mu.Lock()
	w.watcher = watcher
	w.cancel = cancel
	w.pathToDoc = pathToDoc
	w.mu.Unlock()

	go w.loop(ctx, watcher)
	return nil
}

// Stop tears down the current watch, if any.
func (w *ImageWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
	}
	w.pathToDoc = nil
}

func (w *ImageWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	timers := make(map[string]*time.Timer)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			w.mu.Lock()
			docID, watched := w.pathToDoc[abs]
			w.mu.Unlock()
			if !watched {
				continue
			}

			// Debounce: image writers fire several events per save.
			if t, ok := timers[abs]; ok {
				t.Stop()
			}
			path := abs
			timers[abs] = time.AfterFunc(debounce, func() {
				w.emitter.Emit(ctx, "media:changed", map[string]string{
					"docId": docID,
					"path":  path,
				})
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("image watcher: %v", err)
		}
	}
}

// localImagePath extracts a filesystem path from an image URI, returning
// "" for anything that cannot change under us.
func localImagePath(uri string) string {
	switch {
	case uri == "":
		return ""
	case strings.HasPrefix(uri, "data:"):
		return ""
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return ""
	case strings.HasPrefix(uri, "file://"):
		return strings.TrimPrefix(uri, "file://")
	default:
		return uri
	}
}
