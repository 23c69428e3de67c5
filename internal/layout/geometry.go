// Package layout provides the geometry engine for termwm: resolved and signed
// rectangles, the split tree that tiles windows, and the floating window rules
// for resizing and keeping windows reachable.
package layout

import "fmt"

// Rect is a resolved on-screen rectangle in terminal cells.
// Resolved rectangles never have a negative origin or size.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect builds a Rect, saturating negative values to zero.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: max(x, 0), Y: max(y, 0), Width: max(width, 0), Height: max(height, 0)}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the cell (x, y) lies inside the rectangle.
// Zero-sized rectangles contain nothing.
func (r Rect) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether two non-empty rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the overlapping area, or the zero Rect when there is none.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Float converts the rectangle to a signed FloatRect.
func (r Rect) Float() FloatRect {
	return FloatRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Extent returns the size of the rectangle along the split axis of d.
func (r Rect) Extent(d Direction) int {
	if d == Horizontal {
		return r.Width
	}
	return r.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// FloatRect is a rectangle whose origin may be negative so that a floating
// window can hang partly off-screen. Width and height are never negative.
type FloatRect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the first column past the rectangle.
func (f FloatRect) Right() int { return f.X + f.Width }

// Bottom returns the first row past the rectangle.
func (f FloatRect) Bottom() int { return f.Y + f.Height }

// Empty reports whether the rectangle covers no cells.
func (f FloatRect) Empty() bool { return f.Width <= 0 || f.Height <= 0 }

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (f FloatRect) Contains(x, y int) bool {
	if f.Empty() {
		return false
	}
	return x >= f.X && x < f.Right() && y >= f.Y && y < f.Bottom()
}

// Visible clips the rectangle to bounds.
func (f FloatRect) Visible(bounds Rect) Rect {
	if f.Empty() || bounds.Empty() {
		return Rect{}
	}
	x0, y0 := max(f.X, bounds.X), max(f.Y, bounds.Y)
	x1, y1 := min(f.Right(), bounds.Right()), min(f.Bottom(), bounds.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Clamped drops the part of the rectangle left of column 0 or above row 0,
// keeping the right and bottom edges where they are.
func (f FloatRect) Clamped() Rect {
	x, y, w, h := f.X, f.Y, f.Width, f.Height
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	return NewRect(x, y, w, h)
}

// Intersects reports whether the rectangle overlaps bounds.
func (f FloatRect) Intersects(bounds Rect) bool {
	return !f.Visible(bounds).Empty()
}

// Inset shrinks the rectangle by the given edges, saturating the size at zero.
func (f FloatRect) Inset(left, top, right, bottom int) FloatRect {
	return FloatRect{
		X:      f.X + left,
		Y:      f.Y + top,
		Width:  max(f.Width-left-right, 0),
		Height: max(f.Height-top-bottom, 0),
	}
}

func (f FloatRect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", f.X, f.Y, f.Width, f.Height)
}

// SpecKind selects how a FloatRectSpec encodes its rectangle.
type SpecKind int

const (
	// SpecAbsolute places the window at fixed cell coordinates.
	SpecAbsolute SpecKind = iota
	// SpecPercent places the window as percentages of the managed area.
	SpecPercent
)

// Percentages is a rectangle expressed as 0-100 fractions of an area.
type Percentages struct {
	X      int
	Y      int
	Width  int
	Height int
}

// FloatRectSpec describes where a floating window lives: either an absolute
// signed rectangle or a percentage of the area it is resolved against.
type FloatRectSpec struct {
	Kind    SpecKind
	Rect    FloatRect
	Percent Percentages
}

// Absolute returns a spec pinned to r.
func Absolute(r FloatRect) FloatRectSpec {
	return FloatRectSpec{Kind: SpecAbsolute, Rect: r}
}

// Percent returns a spec expressed as percentages. Values are clamped to 0-100.
func Percent(x, y, width, height int) FloatRectSpec {
	clamp := func(v int) int { return min(max(v, 0), 100) }
	return FloatRectSpec{Kind: SpecPercent, Percent: Percentages{
		X: clamp(x), Y: clamp(y), Width: clamp(width), Height: clamp(height),
	}}
}

// FullArea is the percentage spec covering the whole area.
func FullArea() FloatRectSpec { return Percent(0, 0, 100, 100) }

// ResolveSigned resolves the spec against area, keeping negative coordinates.
func (s FloatRectSpec) ResolveSigned(area Rect) FloatRect {
	if s.Kind == SpecAbsolute {
		return FloatRect{X: s.Rect.X, Y: s.Rect.Y, Width: max(s.Rect.Width, 0), Height: max(s.Rect.Height, 0)}
	}
	toAbs := func(base, pct int) int { return base * pct / 100 }
	return FloatRect{
		X:      area.X + toAbs(area.Width, s.Percent.X),
		Y:      area.Y + toAbs(area.Height, s.Percent.Y),
		Width:  toAbs(area.Width, s.Percent.Width),
		Height: toAbs(area.Height, s.Percent.Height),
	}
}

// Resolve resolves the spec against area for rendering: anything left of
// column 0 or above row 0 is cut away.
func (s FloatRectSpec) Resolve(area Rect) Rect {
	return s.ResolveSigned(area).Clamped()
}

func (s FloatRectSpec) String() string {
	if s.Kind == SpecPercent {
		p := s.Percent
		return fmt.Sprintf("percent(%d,%d %dx%d)", p.X, p.Y, p.Width, p.Height)
	}
	return "abs" + s.Rect.String()
}

// RegionMap is an insertion-ordered map from an id to its on-screen rectangle.
// The zero value is ready to use.
type RegionMap[K comparable] struct {
	order []K
	rects map[K]Rect
}

// Set stores rect for id, keeping the original position of an existing id.
func (m *RegionMap[K]) Set(id K, rect Rect) {
	if m.rects == nil {
		m.rects = make(map[K]Rect)
	}
	if _, ok := m.rects[id]; !ok {
		m.order = append(m.order, id)
	}
	m.rects[id] = rect
}

// Get returns the rectangle for id.
func (m *RegionMap[K]) Get(id K) (Rect, bool) {
	r, ok := m.rects[id]
	return r, ok
}

// Remove deletes id from the map.
func (m *RegionMap[K]) Remove(id K) {
	if _, ok := m.rects[id]; !ok {
		return
	}
	delete(m.rects, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// IDs returns the ids in insertion order.
func (m *RegionMap[K]) IDs() []K {
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of regions.
func (m *RegionMap[K]) Len() int { return len(m.order) }

// Reset empties the map.
func (m *RegionMap[K]) Reset() {
	m.order = m.order[:0]
	clear(m.rects)
}

// HitTest returns the first id in ids whose rectangle contains (x, y).
func (m *RegionMap[K]) HitTest(x, y int, ids []K) (K, bool) {
	for _, id := range ids {
		if r, ok := m.rects[id]; ok && r.Contains(x, y) {
			return id, true
		}
	}
	var zero K
	return zero, false
}
