package editor

import (
	"github.com/google/uuid"

	"jobdeck/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Editable blocks — the session-local working representation
// ─────────────────────────────────────────────────────────────

// BlockKind is the editor-local block type. Titles are split into h1/h2
// purely for initial font-size assignment; the split is not persisted —
// on load the first title becomes h1 again, all others h2.
type BlockKind string

const (
	KindH1        BlockKind = "h1"
	KindH2        BlockKind = "h2"
	KindParagraph BlockKind = "p"
	KindImage     BlockKind = "image"
)

// Block is one editable unit. Text kinds use Text; images use URI plus
// geometry in editor pixels.
type Block struct {
	ID   string    `json:"id"`
	Kind BlockKind `json:"kind"`
	Text string    `json:"text,omitempty"`
	URI  string    `json:"uri,omitempty"`
	X    float64   `json:"x,omitempty"`
	Y    float64   `json:"y,omitempty"`
	W    float64   `json:"w,omitempty"`
	H    float64   `json:"h,omitempty"`
}

// IsText reports whether the block carries editable text.
func (b Block) IsText() bool { return b.Kind != KindImage }

func newID() string { return uuid.New().String() }

// blocksFromDocument converts stored nodes into editable blocks,
// re-deriving the h1/h2 split by position: the first title encountered
// renders as primary. Reordering nodes therefore changes which title is
// large — a quirk of the format, kept deliberately.
func blocksFromDocument(doc domain.TemplateDoc) []Block {
	blocks := make([]Block, 0, len(doc.Nodes))
	seenTitle := false
	for _, n := range doc.Nodes {
		switch n.Type {
		case domain.NodeTitle:
			kind := KindH2
			if !seenTitle {
				kind = KindH1
				seenTitle = true
			}
			blocks = append(blocks, Block{ID: n.ID, Kind: kind, Text: n.Text})
		case domain.NodeParagraph:
			blocks = append(blocks, Block{ID: n.ID, Kind: KindParagraph, Text: n.Text})
		case domain.NodeImage:
			b := Block{ID: n.ID, Kind: KindImage, URI: n.URI, W: n.Width, H: n.Height, X: 16, Y: 16}
			if n.X != nil {
				b.X = *n.X
			}
			if n.Y != nil {
				b.Y = *n.Y
			}
			blocks = append(blocks, b)
		default:
			blocks = append(blocks, Block{ID: newID(), Kind: KindParagraph})
		}
	}
	return blocks
}

// nodesFromBlocks converts editable blocks back to stored nodes.
// The round trip is lossless apart from the re-derived h1/h2 tag.
func nodesFromBlocks(blocks []Block) []domain.TemplateNode {
	nodes := make([]domain.TemplateNode, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case KindH1, KindH2:
			nodes = append(nodes, domain.TemplateNode{ID: b.ID, Type: domain.NodeTitle, Text: b.Text})
		case KindParagraph:
			nodes = append(nodes, domain.TemplateNode{ID: b.ID, Type: domain.NodeParagraph, Text: b.Text})
		case KindImage:
			nodes = append(nodes, domain.TemplateNode{
				ID:     b.ID,
				Type:   domain.NodeImage,
				URI:    b.URI,
				Width:  b.W,
				Height: b.H,
				X:      domain.Float(b.X),
				Y:      domain.Float(b.Y),
			})
		}
	}
	return nodes
}

// starterBlocks is the fixed seed for a brand-new document.
func starterBlocks() []Block {
	return []Block{
		{ID: newID(), Kind: KindH1, Text: "Seu Nome"},
		{ID: newID(), Kind: KindParagraph, Text: "Resumo profissional ou objetivo."},
		{ID: newID(), Kind: KindH2, Text: "Experiência"},
		{ID: newID(), Kind: KindParagraph, Text: "Cargo — Empresa — Período"},
		{ID: newID(), Kind: KindH2, Text: "Formação"},
		{ID: newID(), Kind: KindParagraph, Text: "Curso — Instituição — Período"},
	}
}
