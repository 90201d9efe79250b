package editor

import (
	"jobdeck/internal/domain"
	"jobdeck/internal/layout"
)

// ─────────────────────────────────────────────────────────────
// Session — one editing session over a template document
// ─────────────────────────────────────────────────────────────
//
// A session exclusively owns its block list. All mutations happen
// synchronously inside interaction handlers on the UI thread; the
// session itself takes no locks.

// Canvas constants (editor pixels).
const (
	// BaseCanvasHeight approximates a usable A4 page in the preview.
	BaseCanvasHeight = 980
	// canvasVerticalPadding is the content container's combined
	// top+bottom padding used when growing the canvas.
	canvasVerticalPadding = 32
)

// Session holds the editable state for one document.
type Session struct {
	templateID domain.TemplateID
	theme      layout.Theme
	blocks     []Block
	gestures   map[string]*gesture

	// Measured widths reported by the rendering surface.
	canvasWidth  float64
	contentWidth float64
}

// NewSession opens a blank session seeded with the starter blocks.
func NewSession(templateID domain.TemplateID) *Session {
	return &Session{
		templateID: templateID,
		theme:      layout.ThemeFor(templateID),
		blocks:     starterBlocks(),
		gestures:   make(map[string]*gesture),
	}
}

// LoadSession opens a session over an existing document.
func LoadSession(doc domain.TemplateDoc) *Session {
	return &Session{
		templateID: doc.TemplateID,
		theme:      layout.ThemeFor(doc.TemplateID),
		blocks:     blocksFromDocument(doc),
		gestures:   make(map[string]*gesture),
	}
}

// TemplateID returns the session's template id.
func (s *Session) TemplateID() domain.TemplateID { return s.templateID }

// Theme returns the resolved theme shared by every render target.
func (s *Session) Theme() layout.Theme { return s.theme }

// Blocks returns a copy of the block list in document order. Both the
// interactive tree and the print snapshot are built from this one list,
// which keeps the two structurally identical.
func (s *Session) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// SetMeasuredWidths records the rendered page and content-column widths.
func (s *Session) SetMeasuredWidths(canvas, content float64) {
	s.canvasWidth = canvas
	s.contentWidth = content
}

// ContentWidth is the clamp boundary for positioned images, with the
// same fallback chain the preview uses.
func (s *Session) ContentWidth() float64 {
	if s.contentWidth > 0 {
		return s.contentWidth
	}
	if s.canvasWidth > 0 {
		return s.canvasWidth
	}
	return layout.BaseCanvasWidth
}

// ── Block operations ───────────────────────────────────────

// AddText appends a new text block with placeholder content.
func (s *Session) AddText(kind BlockKind) Block {
	text := "Texto"
	if kind == KindH1 || kind == KindH2 {
		text = "Título"
	}
	b := Block{ID: newID(), Kind: kind, Text: text}
	s.blocks = append(s.blocks, b)
	return b
}

// AddImage appends an image block at the default insertion geometry.
func (s *Session) AddImage(uri string) Block {
	b := Block{ID: newID(), Kind: KindImage, URI: uri, X: 16, Y: 16, W: 140, H: 140}
	s.blocks = append(s.blocks, b)
	return b
}

// EditText replaces the text of a title/paragraph block. Editing an
// image block or an unknown id is a no-op.
func (s *Session) EditText(id, text string) {
	for i := range s.blocks {
		if s.blocks[i].ID == id && s.blocks[i].IsText() {
			s.blocks[i].Text = text
			return
		}
	}
}

// ── Gestures ───────────────────────────────────────────────

func (s *Session) find(id string) *Block {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			return &s.blocks[i]
		}
	}
	return nil
}

func (s *Session) gestureFor(id string) *gesture {
	g, ok := s.gestures[id]
	if !ok {
		g = &gesture{}
		s.gestures[id] = g
	}
	return g
}

// BeginDrag snapshots the block geometry as the drag anchor.
func (s *Session) BeginDrag(id string) {
	if b := s.find(id); b != nil && b.Kind == KindImage {
		s.gestureFor(id).start(phaseDragging, *b)
	}
}

// DragDelta repositions the block from the gesture-start anchor using
// the full accumulated pointer delta.
func (s *Session) DragDelta(id string, dx, dy float64) {
	g, ok := s.gestures[id]
	if !ok || g.phase != phaseDragging {
		return
	}
	b := s.find(id)
	if b == nil {
		return
	}
	b.X, b.Y = dragTarget(g.anchor, dx, dy, s.ContentWidth(), BaseCanvasHeight)
}

// EndDrag returns the block's gesture machine to idle.
func (s *Session) EndDrag(id string) {
	if g, ok := s.gestures[id]; ok && g.phase == phaseDragging {
		g.end()
	}
}

// BeginResize snapshots the block geometry as the resize anchor.
// Starting a resize while a drag is in flight replaces it.
func (s *Session) BeginResize(id string) {
	if b := s.find(id); b != nil && b.Kind == KindImage {
		s.gestureFor(id).start(phaseResizing, *b)
	}
}

// ResizeDelta resizes the block from the gesture-start anchor.
func (s *Session) ResizeDelta(id string, dw, dh float64) {
	g, ok := s.gestures[id]
	if !ok || g.phase != phaseResizing {
		return
	}
	b := s.find(id)
	if b == nil {
		return
	}
	b.W, b.H = resizeTarget(g.anchor, dw, dh, s.ContentWidth(), BaseCanvasHeight)
}

// EndResize returns the block's gesture machine to idle.
func (s *Session) EndResize(id string) {
	if g, ok := s.gestures[id]; ok && g.phase == phaseResizing {
		g.end()
	}
}

// ── Derived layout ─────────────────────────────────────────

// CanvasHeight derives the minimum canvas height so no positioned image
// is clipped by a canvas sized only for flowing text.
func (s *Session) CanvasHeight() float64 {
	var imagesBottom float64
	for _, b := range s.blocks {
		if b.Kind == KindImage {
			if bottom := b.Y + b.H; bottom > imagesBottom {
				imagesBottom = bottom
			}
		}
	}
	h := s.theme.ChromeHeight() + imagesBottom + canvasVerticalPadding
	if h < BaseCanvasHeight {
		return BaseCanvasHeight
	}
	return h
}

// Document converts the session state back to the storage shape.
func (s *Session) Document() domain.TemplateDoc {
	return domain.TemplateDoc{
		TemplateID: s.templateID,
		Nodes:      nodesFromBlocks(s.blocks),
	}
}
