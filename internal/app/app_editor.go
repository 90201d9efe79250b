package app

import (
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"jobdeck/internal/domain"
	"jobdeck/internal/editor"
	"jobdeck/internal/layout"
)

// ============================================================
// Editor session
// ============================================================

// NewTemplateSession starts editing a fresh document with the starter
// blocks for the given template variant. Returns the initial blocks.
func (a *App) NewTemplateSession(templateID string) []editor.Block {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = editor.NewSession(domain.TemplateID(templateID))
	a.sessionDocID = ""
	a.images.Stop()
	return a.session.Blocks()
}

// OpenTemplate loads a stored template document into the editor and
// starts watching its local image files.
func (a *App) OpenTemplate(docID string) ([]editor.Block, error) {
	doc, err := a.docs.LoadTemplate(docID)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = editor.LoadSession(doc)
	a.sessionDocID = docID
	a.settings.SetLastDocument(docID)

	if err := a.images.Watch(docID, doc.Nodes); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "image watch failed for %s: %v", docID, err)
	}
	return a.session.Blocks(), nil
}

// EditorTheme returns the layout theme of the open session.
func (a *App) EditorTheme() (layout.Theme, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return layout.Theme{}, fmt.Errorf("no open session")
	}
	return a.session.Theme(), nil
}

// SetMeasuredWidths feeds the measured canvas and content widths from
// the frontend into the session's clamping math.
func (a *App) SetMeasuredWidths(canvas, content float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return fmt.Errorf("no open session")
	}
	a.session.SetMeasuredWidths(canvas, content)
	return nil
}

// CanvasHeight returns the session's current canvas height.
func (a *App) CanvasHeight() (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return 0, fmt.Errorf("no open session")
	}
	return a.session.CanvasHeight(), nil
}

// AddTextBlock appends a title or paragraph block.
func (a *App) AddTextBlock(kind string) (editor.Block, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return editor.Block{}, fmt.Errorf("no open session")
	}
	switch editor.BlockKind(kind) {
	case editor.KindH1, editor.KindH2, editor.KindParagraph:
		return a.session.AddText(editor.BlockKind(kind)), nil
	default:
		return editor.Block{}, fmt.Errorf("unknown text block kind %q", kind)
	}
}

// AddImageBlock asks for media access, lets the user pick an image file
// and appends it at the default position. A denied permission is a
// no-op with a visible notice, not an error.
func (a *App) AddImageBlock() (*editor.Block, error) {
	ok, err := a.media.AuthorizeMediaAccess(a.ctx)
	if err != nil {
		return nil, fmt.Errorf("media authorization: %w", err)
	}
	if !ok {
		a.emitter.Emit(a.ctx, "media:denied", "Allow photo access to add images")
		return nil, nil
	}

	path, err := wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Select Image",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Images", Pattern: "*.png;*.jpg;*.jpeg"},
		},
	})
	if err != nil || path == "" {
		return nil, err
	}
	return a.appendImageBlock(path)
}

// appendImageBlock inserts the picked file into the open session at the
// default insertion geometry.
func (a *App) appendImageBlock(path string) (*editor.Block, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, fmt.Errorf("no open session")
	}
	b := a.session.AddImage(path)
	return &b, nil
}

// EditTextBlock replaces the text of a title or paragraph block.
// Editing an image or unknown block is a no-op.
func (a *App) EditTextBlock(id, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return fmt.Errorf("no open session")
	}
	a.session.EditText(id, text)
	return nil
}

// ============================================================
// Gestures
// ============================================================

// BeginDrag anchors a drag gesture on an image block.
func (a *App) BeginDrag(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return fmt.Errorf("no open session")
	}
	a.session.BeginDrag(id)
	return nil
}

// DragBy applies the accumulated finger delta since BeginDrag and
// returns the block at its new position.
func (a *App) DragBy(id string, dx, dy float64) (*editor.Block, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, fmt.Errorf("no open session")
	}
	a.session.DragDelta(id, dx, dy)
	return a.blockByID(id), nil
}

// EndDrag finishes the drag gesture.
func (a *App) EndDrag(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return fmt.Errorf("no open session")
	}
	a.session.EndDrag(id)
	return nil
}

// BeginResize anchors a resize gesture on an image block.
func (a *App) BeginResize(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return fmt.Errorf("no open session")
	}
	a.session.BeginResize(id)
	return nil
}

// ResizeBy applies the accumulated finger delta since BeginResize and
// returns the block at its new size.
func (a *App) ResizeBy(id string, dw, dh float64) (*editor.Block, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, fmt.Errorf("no open session")
	}
	a.session.ResizeDelta(id, dw, dh)
	return a.blockByID(id), nil
}

// EndResize finishes the resize gesture.
func (a *App) EndResize(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return fmt.Errorf("no open session")
	}
	a.session.EndResize(id)
	return nil
}

// ============================================================
// Saving
// ============================================================

// SaveSession snapshots the open session into the store. The first save
// creates the record; later saves replace it wholesale.
func (a *App) SaveSession(name string) (*domain.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, fmt.Errorf("no open session")
	}

	doc := a.session.Document()
	rec, err := a.docs.SaveTemplate(a.ctx, a.sessionDocID, name, doc)
	if err != nil {
		return nil, err
	}
	a.sessionDocID = rec.ID

	// Saved image set may have changed; refresh the watch.
	if err := a.images.Watch(rec.ID, doc.Nodes); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "image watch failed for %s: %v", rec.ID, err)
	}
	return rec, nil
}

// blockByID returns a copy of the named block, nil when absent.
// Callers must hold a.mu.
func (a *App) blockByID(id string) *editor.Block {
	for _, b := range a.session.Blocks() {
		if b.ID == id {
			out := b
			return &out
		}
	}
	return nil
}
