package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"jobdeck/internal/domain"
	"jobdeck/internal/layout"
)

// ─────────────────────────────────────────────────────────────
// Raster export — PNG/JPEG snapshot of the print tree
// ─────────────────────────────────────────────────────────────
//
// Renders the static print representation (no editing affordances) to
// an RGBA canvas: chrome band, flowing text with word wrap, positioned
// images painted in document order. The canvas uses the same theme and
// scale transform as the HTML/PDF targets.

// RasterFormat selects the bitmap encoding.
type RasterFormat string

const (
	FormatPNG  RasterFormat = "png"
	FormatJPEG RasterFormat = "jpg"
)

// RasterOptions control the export-space transform and encoding.
type RasterOptions struct {
	CanvasWidth float64
	TargetWidth float64
	Format      RasterFormat
	JPEGQuality int // 0 = default 90
}

// Rasterizer renders template documents to bitmaps. Safe for reuse
// across exports; fonts are parsed once.
type Rasterizer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// NewRasterizer parses the embedded Go fonts.
func NewRasterizer() (*Rasterizer, error) {
	reg, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bld, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Rasterizer{regular: reg, bold: bld}, nil
}

const minCardHeight = 1000 // matches the HTML card's min-height

// Render draws the document and returns the cropped canvas.
func (rz *Rasterizer) Render(doc domain.TemplateDoc, opts RasterOptions) (*image.RGBA, error) {
	targetWidth := opts.TargetWidth
	if targetWidth <= 0 {
		targetWidth = layout.ExportTargetWidth
	}
	scale := layout.ScaleFor(opts.CanvasWidth, targetWidth)
	theme := layout.ThemeFor(doc.TemplateID)

	width := int(targetWidth)
	// Draw tall, crop afterwards.
	img := image.NewRGBA(image.Rect(0, 0, width, 4*minCardHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(parseColor(theme.PageBackground)), image.Point{}, draw.Src)

	// Chrome and content origin.
	contentX, contentY, contentW := 0, 0, width
	switch theme.Chrome {
	case layout.ChromeTopBand:
		bandH := int(theme.ChromeSize)
		draw.Draw(img, image.Rect(0, 0, width, bandH), image.NewUniform(parseColor(theme.ChromeColor)), image.Point{}, draw.Src)
		contentY = bandH
	case layout.ChromeSidebar:
		bandW := int(theme.ChromeSize)
		draw.Draw(img, image.Rect(0, 0, bandW, img.Bounds().Dy()), image.NewUniform(parseColor(theme.ChromeColor)), image.Point{}, draw.Src)
		contentX = bandW
		contentW -= bandW
	}

	pad := int(theme.ContentPadding)
	flowX := contentX + pad
	flowW := contentW - 2*pad
	y := contentY + pad
	maxBottom := contentY

	// Flow fragment.
	seenTitle := false
	for _, n := range doc.Nodes {
		switch n.Type {
		case domain.NodeTitle:
			style := theme.Secondary
			if !seenTitle {
				style = theme.Primary
				seenTitle = true
			}
			y = rz.drawWrapped(img, n.Text, style, flowX, y, flowW)
		case domain.NodeParagraph:
			y = rz.drawWrapped(img, n.Text, theme.Paragraph, flowX, y, flowW)
		case domain.NodeImage:
			if n.Positioned() {
				continue
			}
			w, h := layout.ScaleSize(n.Width, n.Height, scale)
			drawNodeImage(img, n, image.Rect(flowX, y+6, flowX+w, y+6+h))
			y += h + 12
		}
		if y > maxBottom {
			maxBottom = y
		}
	}

	// Absolute fragment, painted in document order over the flow.
	for _, n := range doc.Nodes {
		if !n.Positioned() {
			continue
		}
		r := layout.ScaleRect(*n.X, *n.Y, n.Width, n.Height, scale)
		rect := image.Rect(contentX+r.X, contentY+r.Y, contentX+r.X+r.W, contentY+r.Y+r.H)
		drawNodeImage(img, n, rect)
		if rect.Max.Y > maxBottom {
			maxBottom = rect.Max.Y
		}
	}

	height := maxBottom + pad
	if height < minCardHeight {
		height = minCardHeight
	}
	if height > img.Bounds().Dy() {
		height = img.Bounds().Dy()
	}
	return img.SubImage(image.Rect(0, 0, width, height)).(*image.RGBA), nil
}

// Encode writes the rendered canvas in the requested format. JPEG gets
// the canvas flattened over white (no alpha channel).
func (rz *Rasterizer) Encode(w io.Writer, img image.Image, opts RasterOptions) error {
	switch opts.Format {
	case FormatJPEG:
		q := opts.JPEGQuality
		if q <= 0 {
			q = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	default:
		return png.Encode(w, img)
	}
}

func (rz *Rasterizer) face(style layout.TextStyle) font.Face {
	f := rz.regular
	if style.Bold {
		f = rz.bold
	}
	// DPI 72 makes point size equal pixel size.
	return truetype.NewFace(f, &truetype.Options{Size: style.FontSize, DPI: 72, Hinting: font.HintingFull})
}

// drawWrapped renders word-wrapped text and returns the next cursor y.
func (rz *Rasterizer) drawWrapped(img *image.RGBA, text string, style layout.TextStyle, x, y, width int) int {
	face := rz.face(style)
	defer face.Close()

	lineH := int(style.LineHeight)
	if lineH <= 0 {
		lineH = int(style.FontSize * 1.4)
	}
	y += int(style.MarginTop)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(parseColor(style.Color)),
		Face: face,
	}
	maxAdvance := fixed.I(width)
	ascent := face.Metrics().Ascent.Ceil()

	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			y += lineH
			continue
		}
		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && drawer.MeasureString(candidate) > maxAdvance {
				drawer.Dot = fixed.P(x, y+ascent)
				drawer.DrawString(line)
				y += lineH
				line = word
				continue
			}
			line = candidate
		}
		if line != "" {
			drawer.Dot = fixed.P(x, y+ascent)
			drawer.DrawString(line)
			y += lineH
		}
	}
	return y + int(style.MarginBottom)
}

// drawNodeImage decodes the node's image and scales it into rect.
// Undecodable sources leave a placeholder fill so a broken image never
// aborts the snapshot.
func drawNodeImage(dst *image.RGBA, n domain.TemplateNode, rect image.Rectangle) {
	src, err := decodeNodeImage(n.URI)
	if err != nil {
		draw.Draw(dst, rect.Intersect(dst.Bounds()), image.NewUniform(color.RGBA{0xE5, 0xE7, 0xEB, 0xFF}), image.Point{}, draw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, rect, src, src.Bounds(), xdraw.Over, nil)
}

func decodeNodeImage(uri string) (image.Image, error) {
	if strings.HasPrefix(uri, "data:") {
		_, data, err := decodeDataURI(uri)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	}
	path := localPath(uri)
	if path == "" {
		return nil, fmt.Errorf("remote image %s not inlined", uri)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func parseColor(hex string) color.RGBA {
	r, g, b := hexRGB(hex)
	return color.RGBA{uint8(r), uint8(g), uint8(b), 0xFF}
}
