package domain

// TemplateID selects one of the built-in page layouts.
type TemplateID string

const (
	TemplateClassic TemplateID = "classic"
	TemplateModern  TemplateID = "modern"
	TemplateMinimal TemplateID = "minimal"
)

// NodeType discriminates the TemplateNode variants.
type NodeType string

const (
	NodeTitle     NodeType = "title"
	NodeParagraph NodeType = "paragraph"
	NodeImage     NodeType = "image"
)

// TemplateNode is one content unit of a template document.
// Title and paragraph nodes carry Text; image nodes carry URI plus geometry.
// X/Y are pointers: nil means the image flows inline in document order,
// non-nil means it is absolutely positioned over the content area.
type TemplateNode struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	Text   string   `json:"text,omitempty"`
	URI    string   `json:"uri,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
}

// Positioned reports whether an image node has explicit coordinates.
func (n TemplateNode) Positioned() bool {
	return n.Type == NodeImage && n.X != nil && n.Y != nil
}

// TemplateDoc is the node-list representation of a resume-style page.
// Node order is significant: it defines flow placement for text and
// inline images, and paint order for positioned images.
type TemplateDoc struct {
	TemplateID TemplateID     `json:"templateId"`
	Nodes      []TemplateNode `json:"nodes"`
}

// Clone returns a deep copy. Consumers that rewrite node fields work
// on a clone so the caller's document is never aliased.
func (d TemplateDoc) Clone() TemplateDoc {
	out := TemplateDoc{TemplateID: d.TemplateID}
	if d.Nodes == nil {
		return out
	}
	out.Nodes = make([]TemplateNode, len(d.Nodes))
	for i, n := range d.Nodes {
		c := n
		if n.X != nil {
			x := *n.X
			c.X = &x
		}
		if n.Y != nil {
			y := *n.Y
			c.Y = &y
		}
		out.Nodes[i] = c
	}
	return out
}

// Float is a convenience for building positioned nodes.
func Float(v float64) *float64 { return &v }
