package layout

import "math"

// ─────────────────────────────────────────────────────────────
// Geometry — editor-space → export-space scale transform
// ─────────────────────────────────────────────────────────────
//
// The editor canvas width varies with the window; exports render against
// a fixed-width canvas (default 700 units). A single scalar ratio maps
// between the two spaces. All exported coordinates are rounded to whole
// pixels and clamped so rounding or corrupt input can never produce a
// degenerate or page-breaking element.

// ExportTargetWidth is the default export canvas width.
const ExportTargetWidth = 700

// Image size clamps in export space.
const (
	MinImageSide    = 24
	MaxImageWidth   = 550
	MaxImageHeight  = 800
	BaseCanvasWidth = 740 // editor fallback when no measured width exists
)

// ScaleFor derives the transform ratio. sourceWidth is the measured
// editor content width; when unknown (≤ 0) the transform is identity.
func ScaleFor(sourceWidth, targetWidth float64) float64 {
	if sourceWidth <= 0 {
		return 1
	}
	return targetWidth / sourceWidth
}

// Rect is an export-space rectangle in whole pixels.
type Rect struct {
	X, Y, W, H int
}

// ScaleSize maps an image's logical size into export space.
func ScaleSize(w, h, scale float64) (int, int) {
	sw := clampInt(int(math.Round(w*scale)), MinImageSide, MaxImageWidth)
	sh := clampInt(int(math.Round(h*scale)), MinImageSide, MaxImageHeight)
	return sw, sh
}

// ScaleRect maps a positioned image's geometry into export space.
// Positions clamp at zero: the editor allows a small negative y so an
// image can anchor over the chrome band, but exports keep everything
// inside the content box.
func ScaleRect(x, y, w, h, scale float64) Rect {
	sw, sh := ScaleSize(w, h, scale)
	return Rect{
		X: maxInt(0, int(math.Round(x*scale))),
		Y: maxInt(0, int(math.Round(y*scale))),
		W: sw,
		H: sh,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
