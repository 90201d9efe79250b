package editor_test

import (
	"reflect"
	"testing"

	"jobdeck/internal/domain"
	"jobdeck/internal/editor"
)

func sampleDoc() domain.TemplateDoc {
	return domain.TemplateDoc{
		TemplateID: domain.TemplateClassic,
		Nodes: []domain.TemplateNode{
			{ID: "t1", Type: domain.NodeTitle, Text: "Ana Silva"},
			{ID: "p1", Type: domain.NodeParagraph, Text: "Engenheira"},
			{ID: "t2", Type: domain.NodeTitle, Text: "Experiência"},
			{ID: "i1", Type: domain.NodeImage, URI: "file:///a.jpg", Width: 140, Height: 140,
				X: domain.Float(16), Y: domain.Float(16)},
		},
	}
}

func TestSession_RoundTrip(t *testing.T) {
	doc := sampleDoc()
	s := editor.LoadSession(doc)
	got := s.Document()

	if got.TemplateID != doc.TemplateID {
		t.Fatalf("templateId = %s, want %s", got.TemplateID, doc.TemplateID)
	}
	if !reflect.DeepEqual(got.Nodes, doc.Nodes) {
		t.Errorf("round trip changed nodes:\n got %+v\nwant %+v", got.Nodes, doc.Nodes)
	}
}

func TestSession_TitleReclassification(t *testing.T) {
	s := editor.LoadSession(sampleDoc())
	blocks := s.Blocks()
	if blocks[0].Kind != editor.KindH1 {
		t.Errorf("first title = %s, want h1", blocks[0].Kind)
	}
	if blocks[2].Kind != editor.KindH2 {
		t.Errorf("second title = %s, want h2", blocks[2].Kind)
	}

	// The split is positional, not stored: reordering so the second
	// title comes first flips which one is primary.
	doc := sampleDoc()
	doc.Nodes[0], doc.Nodes[2] = doc.Nodes[2], doc.Nodes[0]
	blocks = editor.LoadSession(doc).Blocks()
	if blocks[0].Kind != editor.KindH1 || blocks[0].Text != "Experiência" {
		t.Errorf("after reorder, first title should be primary: %+v", blocks[0])
	}
}

func TestNewSession_StarterBlocks(t *testing.T) {
	s := editor.NewSession(domain.TemplateMinimal)
	blocks := s.Blocks()
	if len(blocks) != 6 {
		t.Fatalf("starter block count = %d, want 6", len(blocks))
	}
	kinds := []editor.BlockKind{
		editor.KindH1, editor.KindParagraph,
		editor.KindH2, editor.KindParagraph,
		editor.KindH2, editor.KindParagraph,
	}
	for i, k := range kinds {
		if blocks[i].Kind != k {
			t.Errorf("starter block %d kind = %s, want %s", i, blocks[i].Kind, k)
		}
	}
}

func TestSession_EditText(t *testing.T) {
	s := editor.LoadSession(sampleDoc())
	s.EditText("p1", "Engenheira de Software")
	if got := s.Blocks()[1].Text; got != "Engenheira de Software" {
		t.Errorf("text = %q", got)
	}

	// Image blocks and unknown ids are no-ops.
	s.EditText("i1", "nope")
	s.EditText("missing", "nope")
	if got := s.Blocks()[3]; got.Text != "" || got.URI != "file:///a.jpg" {
		t.Errorf("image block mutated: %+v", got)
	}
}

func TestSession_DragClamping(t *testing.T) {
	s := editor.LoadSession(sampleDoc())
	s.SetMeasuredWidths(370, 338)

	s.BeginDrag("i1")
	// Huge deltas in every direction must stay inside the bounds.
	s.DragDelta("i1", 1e6, 1e6)
	b := imageBlock(t, s)
	if b.X != 338-140 {
		t.Errorf("x = %v, want %v", b.X, 338-140)
	}
	if b.Y != 980-140 {
		t.Errorf("y = %v, want %v", b.Y, 980-140)
	}

	s.DragDelta("i1", -1e6, -1e6)
	b = imageBlock(t, s)
	if b.X != 0 {
		t.Errorf("x = %v, want 0", b.X)
	}
	if b.Y != -80 {
		t.Errorf("y = %v, want -80 (top-band overlap allowance)", b.Y)
	}
	s.EndDrag("i1")
}

func TestSession_DragIsAnchorRelative(t *testing.T) {
	s := editor.LoadSession(sampleDoc())
	s.SetMeasuredWidths(740, 708)

	s.BeginDrag("i1")
	s.DragDelta("i1", 100, 0) // 100/10 = +10 from anchor x=16
	s.DragDelta("i1", 100, 0) // same total delta: position must not drift
	b := imageBlock(t, s)
	if b.X != 26 {
		t.Errorf("x = %v, want 26 (delta applied from anchor, not cumulative)", b.X)
	}
	s.EndDrag("i1")

	// A fresh gesture re-anchors at the new position.
	s.BeginDrag("i1")
	s.DragDelta("i1", 100, 0)
	if b = imageBlock(t, s); b.X != 36 {
		t.Errorf("x = %v, want 36", b.X)
	}
}

func TestSession_ResizeClamping(t *testing.T) {
	s := editor.LoadSession(sampleDoc())
	s.SetMeasuredWidths(370, 338)

	s.BeginResize("i1")
	s.ResizeDelta("i1", -1e6, -1e6)
	b := imageBlock(t, s)
	if b.W != 40 || b.H != 40 {
		t.Errorf("min size = %vx%v, want 40x40", b.W, b.H)
	}

	s.ResizeDelta("i1", 1e6, 1e6)
	b = imageBlock(t, s)
	if b.W != 338-16 {
		t.Errorf("w = %v, want %v (contentWidth - x)", b.W, 338-16)
	}
	if b.H != 980-16 {
		t.Errorf("h = %v, want %v (canvas height - y)", b.H, 980-16)
	}
	s.EndResize("i1")
}

func TestSession_GesturesAreMutuallyExclusive(t *testing.T) {
	s := editor.LoadSession(sampleDoc())
	s.SetMeasuredWidths(740, 708)

	// Deltas without a begin are ignored.
	s.DragDelta("i1", 1000, 1000)
	if b := imageBlock(t, s); b.X != 16 || b.Y != 16 {
		t.Errorf("position moved without an active gesture: %+v", b)
	}

	// Starting a resize supersedes an in-flight drag (last start wins).
	s.BeginDrag("i1")
	s.BeginResize("i1")
	s.DragDelta("i1", 1000, 0)
	if b := imageBlock(t, s); b.X != 16 {
		t.Errorf("drag delta applied while resizing: x = %v", b.X)
	}
	s.ResizeDelta("i1", 100, 0) // 100/5 = +20
	if b := imageBlock(t, s); b.W != 160 {
		t.Errorf("w = %v, want 160", b.W)
	}
}

func TestSession_CanvasHeight(t *testing.T) {
	s := editor.NewSession(domain.TemplateClassic)
	if h := s.CanvasHeight(); h != editor.BaseCanvasHeight {
		t.Errorf("text-only canvas height = %v, want base %v", h, editor.BaseCanvasHeight)
	}

	// A classic document (chrome height 96) with a deep image grows the
	// canvas past the base height.
	doc := domain.TemplateDoc{
		TemplateID: domain.TemplateClassic,
		Nodes: []domain.TemplateNode{
			{ID: "i1", Type: domain.NodeImage, URI: "a.png", Width: 150, Height: 150,
				X: domain.Float(0), Y: domain.Float(900)},
		},
	}
	s = editor.LoadSession(doc)
	if h := s.CanvasHeight(); h < 96+900+150+32 {
		t.Errorf("canvas height = %v, want >= %v", h, 96+900+150+32)
	}
}

func imageBlock(t *testing.T, s *editor.Session) editor.Block {
	t.Helper()
	for _, b := range s.Blocks() {
		if b.Kind == editor.KindImage {
			return b
		}
	}
	t.Fatal("no image block in session")
	return editor.Block{}
}
