package layout

const (
	// FloatingMinWidth is the narrowest a floating window may be resized to.
	FloatingMinWidth = 6
	// FloatingMinHeight is the shortest a floating window may be resized to.
	FloatingMinHeight = 3
)

// ResizeEdge identifies which part of a floating frame is being dragged.
type ResizeEdge int

const (
	// EdgeLeft moves the left border.
	EdgeLeft ResizeEdge = iota
	// EdgeRight moves the right border.
	EdgeRight
	// EdgeTop moves the top border.
	EdgeTop
	// EdgeBottom moves the bottom border.
	EdgeBottom
	// EdgeTopLeft moves the top and left borders.
	EdgeTopLeft
	// EdgeTopRight moves the top and right borders.
	EdgeTopRight
	// EdgeBottomLeft moves the bottom and left borders.
	EdgeBottomLeft
	// EdgeBottomRight moves the bottom and right borders.
	EdgeBottomRight
)

func (e ResizeEdge) movesLeft() bool {
	return e == EdgeLeft || e == EdgeTopLeft || e == EdgeBottomLeft
}

func (e ResizeEdge) movesRight() bool {
	return e == EdgeRight || e == EdgeTopRight || e == EdgeBottomRight
}

func (e ResizeEdge) movesTop() bool {
	return e == EdgeTop || e == EdgeTopLeft || e == EdgeTopRight
}

func (e ResizeEdge) movesBottom() bool {
	return e == EdgeBottom || e == EdgeBottomLeft || e == EdgeBottomRight
}

// ResizeHandle is a grabbable strip of a floating window border.
type ResizeHandle[K comparable] struct {
	ID   K
	Rect Rect
	Edge ResizeEdge
}

// DragHandle is the header row of a floating or tiled window frame.
type DragHandle[K comparable] struct {
	ID   K
	Rect Rect
}

// ResizeHandles returns the corner and edge strips of rect, in corner-first
// order. Edges are only produced when there is room between the corners.
func ResizeHandles[K comparable](id K, rect Rect) []ResizeHandle[K] {
	if rect.Empty() {
		return nil
	}
	x, y := rect.X, rect.Y
	right, bottom := rect.Right()-1, rect.Bottom()-1
	handles := []ResizeHandle[K]{
		{ID: id, Rect: Rect{X: x, Y: y, Width: 1, Height: 1}, Edge: EdgeTopLeft},
		{ID: id, Rect: Rect{X: right, Y: y, Width: 1, Height: 1}, Edge: EdgeTopRight},
		{ID: id, Rect: Rect{X: x, Y: bottom, Width: 1, Height: 1}, Edge: EdgeBottomLeft},
		{ID: id, Rect: Rect{X: right, Y: bottom, Width: 1, Height: 1}, Edge: EdgeBottomRight},
	}
	if rect.Width > 2 {
		handles = append(handles,
			ResizeHandle[K]{ID: id, Rect: Rect{X: x + 1, Y: y, Width: rect.Width - 2, Height: 1}, Edge: EdgeTop},
			ResizeHandle[K]{ID: id, Rect: Rect{X: x + 1, Y: bottom, Width: rect.Width - 2, Height: 1}, Edge: EdgeBottom},
		)
	}
	if rect.Height > 2 {
		handles = append(handles,
			ResizeHandle[K]{ID: id, Rect: Rect{X: x, Y: y + 1, Width: 1, Height: rect.Height - 2}, Edge: EdgeLeft},
			ResizeHandle[K]{ID: id, Rect: Rect{X: right, Y: y + 1, Width: 1, Height: rect.Height - 2}, Edge: EdgeRight},
		)
	}
	return handles
}

// HeaderHandle returns the header strip of a frame: the row below the top
// border, inside the side borders. Frames smaller than 3x3 or whose header
// row falls outside bounds have none.
func HeaderHandle[K comparable](id K, rect Rect, bounds Rect) (DragHandle[K], bool) {
	if rect.Width < 3 || rect.Height < 3 {
		return DragHandle[K]{}, false
	}
	headerY := rect.Y + 1
	if headerY >= bounds.Bottom() {
		return DragHandle[K]{}, false
	}
	return DragHandle[K]{ID: id, Rect: Rect{X: rect.X + 1, Y: headerY, Width: rect.Width - 2, Height: 1}}, true
}

// ApplyResizeDrag computes the new frame for a resize drag that started at
// (startCol, startRow) with frame start and is now at (col, row).
// Frames never shrink below FloatingMinWidth x FloatingMinHeight; when the
// moving edge is left or top the opposite edge stays put. Without off-screen
// placement the frame is kept entirely within bounds.
func ApplyResizeDrag(start FloatRect, edge ResizeEdge, col, row, startCol, startRow int, bounds Rect, allowOffscreen bool) FloatRect {
	dx := col - startCol
	dy := row - startRow
	x, y, w, h := start.X, start.Y, start.Width, start.Height

	if edge.movesLeft() {
		x += dx
		w -= dx
	}
	if edge.movesRight() {
		w += dx
	}
	if edge.movesTop() {
		y += dy
		h -= dy
	}
	if edge.movesBottom() {
		h += dy
	}

	if w < FloatingMinWidth {
		if edge.movesLeft() {
			x -= FloatingMinWidth - w
		}
		w = FloatingMinWidth
	}
	if h < FloatingMinHeight {
		if edge.movesTop() {
			y -= FloatingMinHeight - h
		}
		h = FloatingMinHeight
	}

	if !allowOffscreen {
		w = min(w, max(bounds.Width, 1))
		h = min(h, max(bounds.Height, 1))
	}

	if x < bounds.X {
		if edge.movesLeft() {
			w = max(w-(bounds.X-x), FloatingMinWidth)
			x = bounds.X
		} else if !allowOffscreen {
			x = bounds.X
		}
	}
	if y < bounds.Y {
		if edge.movesTop() {
			h = max(h-(bounds.Y-y), FloatingMinHeight)
		}
		y = bounds.Y
	}
	if !allowOffscreen {
		if x+w > bounds.Right() {
			if edge.movesRight() {
				w = max(bounds.Right()-x, FloatingMinWidth)
			} else {
				x = max(bounds.Right()-w, bounds.X)
			}
		}
		if y+h > bounds.Bottom() {
			if edge.movesBottom() {
				h = max(bounds.Bottom()-y, FloatingMinHeight)
			} else {
				y = max(bounds.Bottom()-h, bounds.Y)
			}
		}
	}
	return FloatRect{X: x, Y: y, Width: w, Height: h}
}

// ClampFloating keeps a floating frame reachable inside bounds.
// With off-screen placement allowed the frame may hang past the left, right
// and bottom edges but at least margin columns (and rows) stay visible and the
// header row never leaves the top edge. Otherwise the frame is shrunk to fit
// and moved fully inside bounds.
func ClampFloating(rect FloatRect, bounds Rect, allowOffscreen bool, margin int) FloatRect {
	if bounds.Empty() {
		return rect
	}
	w := max(rect.Width, min(FloatingMinWidth, bounds.Width))
	h := max(rect.Height, min(FloatingMinHeight, bounds.Height))

	if !allowOffscreen {
		w = min(w, bounds.Width)
		h = min(h, bounds.Height)
		x := clampInt(rect.X, bounds.X, bounds.Right()-w)
		y := clampInt(rect.Y, bounds.Y, bounds.Bottom()-h)
		return FloatRect{X: x, Y: y, Width: w, Height: h}
	}

	margin = max(margin, 1)
	mx := min(margin, w)
	my := min(margin, h)
	x := clampInt(rect.X, bounds.X-(w-mx), bounds.Right()-mx)
	y := clampInt(rect.Y, bounds.Y, bounds.Bottom()-my)
	return FloatRect{X: x, Y: y, Width: w, Height: h}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
