package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	gofpdf "github.com/lvillar/gofpdf"

	"jobdeck/internal/domain"
	"jobdeck/internal/layout"
)

// ─────────────────────────────────────────────────────────────
// PDF export — rasterizes the export-space document onto A4
// ─────────────────────────────────────────────────────────────
//
// The PDF is composed from the same theme records and scale transform
// as the HTML document: export-space pixels (target width 700) map onto
// the printable A4 width via one page-fit ratio, so the two artifacts
// agree up to declared scaling.

// PageMargin is the A4 page margin in points.
const PageMargin = 24

// PDFOptions mirror HTMLOptions.
type PDFOptions struct {
	CanvasWidth float64
	TargetWidth float64
}

// WriteTemplatePDF renders the document to a PDF. Image URIs should be
// inlined to data URIs (or local file paths) before the call; remote
// URIs are skipped.
func WriteTemplatePDF(w io.Writer, doc domain.TemplateDoc, opts PDFOptions) error {
	targetWidth := opts.TargetWidth
	if targetWidth <= 0 {
		targetWidth = layout.ExportTargetWidth
	}
	scale := layout.ScaleFor(opts.CanvasWidth, targetWidth)
	theme := layout.ThemeFor(doc.TemplateID)

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(PageMargin, PageMargin, PageMargin)
	pdf.SetAutoPageBreak(true, PageMargin)
	pdf.SetTitle("JobDeck", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	usable := pageW - 2*PageMargin
	// Export-space pixel → page point ratio.
	k := usable / targetWidth

	// Chrome band and content origin.
	contentX, contentY := float64(PageMargin), float64(PageMargin)
	contentW := usable
	switch theme.Chrome {
	case layout.ChromeTopBand:
		bandH := theme.ChromeSize * k
		r, g, b := hexRGB(theme.ChromeColor)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(PageMargin, PageMargin, usable, bandH, "F")
		contentY += bandH
	case layout.ChromeSidebar:
		bandW := theme.ChromeSize * k
		r, g, b := hexRGB(theme.ChromeColor)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(PageMargin, PageMargin, bandW, pageH-2*PageMargin, "F")
		contentX += bandW
		contentW -= bandW
	}

	pad := theme.ContentPadding * k
	flowX := contentX + pad
	flowW := contentW - 2*pad
	y := contentY + pad

	// Flow fragment: titles, paragraphs, inline images in document order.
	seenTitle := false
	for _, n := range doc.Nodes {
		switch n.Type {
		case domain.NodeTitle:
			style := theme.Secondary
			if !seenTitle {
				style = theme.Primary
				seenTitle = true
			}
			y = drawText(pdf, tr, n.Text, style, flowX, y, flowW, k)
		case domain.NodeParagraph:
			y = drawText(pdf, tr, n.Text, theme.Paragraph, flowX, y, flowW, k)
		case domain.NodeImage:
			if n.Positioned() {
				continue
			}
			iw, ih := layout.ScaleSize(n.Width, n.Height, scale)
			if err := placeImage(pdf, n, flowX, y+6*k, float64(iw)*k, float64(ih)*k); err != nil {
				return err
			}
			y += float64(ih)*k + 12*k
		}
	}

	// Absolute fragment: positioned images over the content area, in
	// document order (paint order).
	for _, n := range doc.Nodes {
		if !n.Positioned() {
			continue
		}
		r := layout.ScaleRect(*n.X, *n.Y, n.Width, n.Height, scale)
		x := contentX + float64(r.X)*k
		yy := contentY + float64(r.Y)*k
		if err := placeImage(pdf, n, x, yy, float64(r.W)*k, float64(r.H)*k); err != nil {
			return err
		}
	}

	if pdf.Err() {
		return fmt.Errorf("compose pdf: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func drawText(pdf *gofpdf.Fpdf, tr func(string) string, text string, style layout.TextStyle, x, y, w, k float64) float64 {
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	size := style.FontSize * k
	lineH := style.LineHeight * k
	if lineH <= 0 {
		lineH = size * 1.4
	}
	r, g, b := hexRGB(style.Color)
	pdf.SetTextColor(r, g, b)
	pdf.SetFont("Helvetica", fontStyle, size)
	pdf.SetXY(x, y+style.MarginTop*k)
	pdf.MultiCell(w, lineH, tr(text), "", "L", false)
	return pdf.GetY() + style.MarginBottom*k
}

// placeImage registers the node's image with the PDF and draws it.
// Data URIs are decoded in memory; plain paths go through gofpdf's file
// loader; remote URIs are silently skipped.
func placeImage(pdf *gofpdf.Fpdf, n domain.TemplateNode, x, y, w, h float64) error {
	uri := n.URI
	switch {
	case strings.HasPrefix(uri, "data:"):
		imgType, data, err := decodeDataURI(uri)
		if err != nil {
			return fmt.Errorf("image %s: %w", n.ID, err)
		}
		opts := gofpdf.ImageOptions{ImageType: imgType}
		pdf.RegisterImageOptionsReader(n.ID, opts, bytes.NewReader(data))
		pdf.ImageOptions(n.ID, x, y, w, h, false, opts, 0, "")
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return nil
	default:
		path := localPath(uri)
		pdf.ImageOptions(path, x, y, w, h, false, gofpdf.ImageOptions{}, 0, "")
	}
	return nil
}

func decodeDataURI(uri string) (imgType string, data []byte, err error) {
	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("unsupported data uri")
	}
	switch rest[:sep] {
	case "image/png":
		imgType = "PNG"
	default:
		imgType = "JPG"
	}
	data, err = base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	return imgType, data, err
}

func hexRGB(s string) (r, g, b int) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	var rv, gv, bv int
	fmt.Sscanf(s, "%02x%02x%02x", &rv, &gv, &bv)
	return rv, gv, bv
}
