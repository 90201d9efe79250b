package editor

// ─────────────────────────────────────────────────────────────
// Gesture state machine — one per image block
// ─────────────────────────────────────────────────────────────
//
// Idle → Dragging → Idle and Idle → Resizing → Idle. Each move event
// carries the full delta since gesture start and is applied against the
// geometry snapshot taken at that start, so missed events cannot drift
// the block. Drag and resize are mutually exclusive per block; a new
// gesture start replaces whatever was in flight (last start wins).

type gesturePhase int

const (
	phaseIdle gesturePhase = iota
	phaseDragging
	phaseResizing
)

// Raw pointer movement is dampened into editor pixels by these divisors.
const (
	DragSensitivity   = 10
	ResizeSensitivity = 5
)

type gesture struct {
	phase  gesturePhase
	anchor Block // geometry snapshot at gesture start
}

func (g *gesture) start(phase gesturePhase, b Block) {
	g.phase = phase
	g.anchor = b
}

func (g *gesture) end() {
	g.phase = phaseIdle
}

// dragTarget computes the clamped position for a total pointer delta.
func dragTarget(anchor Block, dx, dy, contentWidth, maxCanvasHeight float64) (x, y float64) {
	x = clamp(anchor.X+dx/DragSensitivity, 0, contentWidth-anchor.W)
	// A small negative allowance lets images anchor above the nominal
	// top edge, overlapping a header band.
	y = clamp(anchor.Y+dy/DragSensitivity, -80, maxCanvasHeight-anchor.H)
	return x, y
}

// resizeTarget computes the clamped size for a total pointer delta.
func resizeTarget(anchor Block, dw, dh, contentWidth, maxCanvasHeight float64) (w, h float64) {
	w = clamp(anchor.W+dw/ResizeSensitivity, 40, contentWidth-anchor.X)
	h = clamp(anchor.H+dh/ResizeSensitivity, 40, maxCanvasHeight-anchor.Y)
	return w, h
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
