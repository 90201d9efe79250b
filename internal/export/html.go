package export

import (
	"fmt"
	"html"
	"strings"

	"jobdeck/internal/domain"
	"jobdeck/internal/layout"
)

// ─────────────────────────────────────────────────────────────
// HTML export — standalone document for PDF rasterization
// ─────────────────────────────────────────────────────────────
//
// Node text is untrusted user input; everything interpolated into
// markup goes through html.EscapeString so it can never be read as
// tags or attribute breaks.

// Fragments is the partition of a node list into the ordered flow
// document and the absolutely positioned overlay.
type Fragments struct {
	FlowHTML     string
	AbsoluteHTML string
}

// RenderTemplateNodes walks the nodes in document order. Titles,
// paragraphs and non-positioned images go to the flow fragment;
// positioned images go to the absolute fragment with scaled geometry.
// Emission order within each fragment follows node order, which is also
// the paint order of the overlay.
func RenderTemplateNodes(nodes []domain.TemplateNode, theme layout.Theme, scale float64) Fragments {
	var flow, abs strings.Builder
	seenTitle := false
	for _, n := range nodes {
		switch n.Type {
		case domain.NodeTitle:
			style := theme.Secondary
			if !seenTitle {
				style = theme.Primary
				seenTitle = true
			}
			fmt.Fprintf(&flow, `<h2 style="%s">%s</h2>`, textCSS(style), html.EscapeString(n.Text))
		case domain.NodeParagraph:
			fmt.Fprintf(&flow, `<p style="%s">%s</p>`, textCSS(theme.Paragraph), html.EscapeString(n.Text))
		case domain.NodeImage:
			w, h := layout.ScaleSize(n.Width, n.Height, scale)
			img := fmt.Sprintf(`<img src="%s" style="width:%dpx;height:%dpx;object-fit:cover;border-radius:6px;" />`,
				html.EscapeString(n.URI), w, h)
			if n.Positioned() {
				r := layout.ScaleRect(*n.X, *n.Y, n.Width, n.Height, scale)
				fmt.Fprintf(&abs, `<div style="position:absolute;left:%dpx;top:%dpx;width:%dpx;height:%dpx;">%s</div>`,
					r.X, r.Y, r.W, r.H, img)
			} else {
				fmt.Fprintf(&flow, `<div style="margin:6px 0;">%s</div>`, img)
			}
		}
	}
	return Fragments{FlowHTML: flow.String(), AbsoluteHTML: abs.String()}
}

func textCSS(s layout.TextStyle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "margin:%gpx 0 %gpx 0;font-size:%gpx;color:%s;", s.MarginTop, s.MarginBottom, s.FontSize, s.Color)
	if s.Bold {
		b.WriteString("font-weight:800;")
	}
	if s.LineHeight > 0 {
		fmt.Fprintf(&b, "line-height:%gpx;", s.LineHeight)
	}
	b.WriteString("font-family:Arial,Helvetica,sans-serif;")
	return b.String()
}

// HTMLOptions control the export-space transform.
type HTMLOptions struct {
	// CanvasWidth is the measured editor content width the document was
	// laid out against. Zero means the document is already in export
	// space (scale 1).
	CanvasWidth float64
	// TargetWidth defaults to layout.ExportTargetWidth.
	TargetWidth float64
}

func (o HTMLOptions) resolve() (target, scale float64) {
	target = o.TargetWidth
	if target <= 0 {
		target = layout.ExportTargetWidth
	}
	return target, layout.ScaleFor(o.CanvasWidth, target)
}

// BuildTemplateHTML produces the complete standalone document: doctype,
// charset, print page-size directive, embedded styles, and the
// per-template chrome composition around the rendered fragments.
// Callers are expected to inline local images first (InlineNodeImages)
// so the output survives deletion of the source files.
func BuildTemplateHTML(doc domain.TemplateDoc, opts HTMLOptions) string {
	targetWidth, scale := opts.resolve()
	theme := layout.ThemeFor(doc.TemplateID)
	frags := RenderTemplateNodes(doc.Nodes, theme, scale)

	content := fmt.Sprintf(`<div class="content" style="position:relative;padding:%gpx;">%s%s</div>`,
		theme.ContentPadding, frags.FlowHTML, frags.AbsoluteHTML)

	var body string
	switch theme.Chrome {
	case layout.ChromeTopBand:
		body = fmt.Sprintf(`<div class="card"><div style="height:%gpx;background:%s;"></div>%s</div>`,
			theme.ChromeSize, theme.ChromeColor, content)
	case layout.ChromeSidebar:
		content = fmt.Sprintf(`<div class="content" style="position:relative;padding:%gpx;flex:1;">%s%s</div>`,
			theme.ContentPadding, frags.FlowHTML, frags.AbsoluteHTML)
		body = fmt.Sprintf(`<div class="card" style="display:flex;flex-direction:row;"><div style="width:%gpx;background:%s;min-height:1000px;"></div>%s</div>`,
			theme.ChromeSize, theme.ChromeColor, content)
	default:
		body = fmt.Sprintf(`<div class="card">%s</div>`, content)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8" />
<style>
  @page { size: A4; margin: 24px; }
  * { box-sizing: border-box; }
  body { font-family: Arial, Helvetica, sans-serif; color:#111827; margin:0; }
  .page { width: %gpx; margin: 24px auto; }
  .card { position: relative; border:1px solid %s; border-radius:12px; background:%s; min-height: 1000px; width: 100%%; overflow:hidden; }
</style>
</head>
<body>
  <div class="page">
    %s
  </div>
</body>
</html>
`, targetWidth, theme.CardBorder, theme.PageBackground, body)
}
