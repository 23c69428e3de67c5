package layout

// PointerKind is the subset of mouse activity the tiling layout reacts to.
type PointerKind int

const (
	// PointerDown starts a handle drag when it lands on a handle.
	PointerDown PointerKind = iota
	// PointerDrag moves the active drag by the delta since the last event.
	PointerDrag
	// PointerUp ends the active drag.
	PointerUp
	// PointerMove only updates the hover position.
	PointerMove
)

type handleDrag struct {
	path      []int
	index     int
	direction Direction
	lastCol   int
	lastRow   int
}

type point struct{ x, y int }

// TilingLayout owns a split tree and the state of an in-progress handle drag.
type TilingLayout[K comparable] struct {
	root  *Node[K]
	drag  *handleDrag
	hover *point
}

// NewTilingLayout wraps root.
func NewTilingLayout[K comparable](root *Node[K]) *TilingLayout[K] {
	return &TilingLayout[K]{root: root}
}

// Root returns the split tree.
func (t *TilingLayout[K]) Root() *Node[K] { return t.root }

// SetRoot replaces the split tree and cancels any drag.
func (t *TilingLayout[K]) SetRoot(root *Node[K]) {
	t.root = root
	t.drag = nil
}

// Regions lays out every leaf in area.
func (t *TilingLayout[K]) Regions(area Rect) []Region[K] {
	return t.root.Layout(area)
}

// Handles returns every resizable gap in area.
func (t *TilingLayout[K]) Handles(area Rect) []SplitHandle {
	_, handles := t.root.LayoutWithHandles(area)
	return handles
}

// HoveredHandle returns the handle under the last pointer position.
func (t *TilingLayout[K]) HoveredHandle(area Rect) (SplitHandle, bool) {
	if t.hover == nil {
		return SplitHandle{}, false
	}
	return t.root.HitTestHandle(area, t.hover.x, t.hover.y)
}

// Dragging reports whether a handle drag is in progress.
func (t *TilingLayout[K]) Dragging() bool { return t.drag != nil }

// SplitRoot wraps the current root with a new leaf at position.
func (t *TilingLayout[K]) SplitRoot(insert K, position InsertPosition) {
	t.root = pairSplit(t.root, Leaf(insert), position)
}

// HandlePointer drives handle dragging. It returns true when the event
// started, continued or finished a drag.
func (t *TilingLayout[K]) HandlePointer(kind PointerKind, col, row int, area Rect) bool {
	t.hover = &point{col, row}
	switch kind {
	case PointerDown:
		h, ok := t.root.HitTestHandle(area, col, row)
		if !ok {
			return false
		}
		t.drag = &handleDrag{
			path:      h.Path,
			index:     h.Index,
			direction: h.Direction,
			lastCol:   col,
			lastRow:   row,
		}
		return true
	case PointerDrag:
		if t.drag == nil {
			return false
		}
		delta := col - t.drag.lastCol
		if t.drag.direction == Vertical {
			delta = row - t.drag.lastRow
		}
		if delta != 0 {
			t.root.ApplyDrag(area, t.drag.path, t.drag.index, t.drag.direction, delta)
			t.drag.lastCol = col
			t.drag.lastRow = row
		}
		return true
	case PointerUp:
		if t.drag == nil {
			return false
		}
		t.drag = nil
		return true
	}
	return false
}
