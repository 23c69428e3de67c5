package layout

import "math"

// Direction is the axis along which a split lays out its children.
type Direction int

const (
	// Horizontal places children side by side, dividing the width.
	Horizontal Direction = iota
	// Vertical stacks children top to bottom, dividing the height.
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// InsertPosition says where a new leaf goes relative to its target.
type InsertPosition int

const (
	// InsertLeft puts the new leaf left of the target.
	InsertLeft InsertPosition = iota
	// InsertRight puts the new leaf right of the target.
	InsertRight
	// InsertTop puts the new leaf above the target.
	InsertTop
	// InsertBottom puts the new leaf below the target.
	InsertBottom
)

func (p InsertPosition) String() string {
	switch p {
	case InsertLeft:
		return "left"
	case InsertRight:
		return "right"
	case InsertTop:
		return "top"
	default:
		return "bottom"
	}
}

// splitFor returns the split direction and whether the inserted leaf comes first.
func (p InsertPosition) splitFor() (Direction, bool) {
	switch p {
	case InsertLeft:
		return Horizontal, true
	case InsertRight:
		return Horizontal, false
	case InsertTop:
		return Vertical, true
	default:
		return Vertical, false
	}
}

const (
	// HandleThickness is the configured split handle size before clamping.
	HandleThickness = 3
	// MinSplitSize is the smallest extent a sibling can be dragged down to.
	MinSplitSize = 4
)

// Region pairs a leaf id with its rectangle.
type Region[K comparable] struct {
	ID   K
	Rect Rect
}

// SplitHandle is the draggable gap between two siblings of a split.
type SplitHandle struct {
	Rect      Rect
	Path      []int
	Index     int
	Direction Direction
}

// Node is a split tree node: either a leaf holding a window id or a split
// holding ordered children with aligned weights and constraints.
// Nodes are addressed from the root by index paths; there are no parent links.
type Node[K comparable] struct {
	id          K
	split       bool
	Direction   Direction
	Children    []*Node[K]
	Weights     []float64
	Constraints []Constraint
	Resizable   bool
}

// Leaf returns a leaf node for id.
func Leaf[K comparable](id K) *Node[K] {
	return &Node[K]{id: id}
}

// NewSplit returns a resizable split. Constraints may be nil.
func NewSplit[K comparable](direction Direction, constraints []Constraint, children ...*Node[K]) *Node[K] {
	return &Node[K]{
		split:       true,
		Direction:   direction,
		Children:    children,
		Constraints: constraints,
		Resizable:   true,
	}
}

// IsLeaf reports whether n is a leaf.
func (n *Node[K]) IsLeaf() bool { return !n.split }

// LeafID returns the id held by a leaf.
func (n *Node[K]) LeafID() (K, bool) {
	if n.split {
		var zero K
		return zero, false
	}
	return n.id, true
}

// Clone deep-copies the subtree.
func (n *Node[K]) Clone() *Node[K] {
	if n == nil {
		return nil
	}
	out := &Node[K]{
		id:        n.id,
		split:     n.split,
		Direction: n.Direction,
		Resizable: n.Resizable,
	}
	if n.Weights != nil {
		out.Weights = append([]float64(nil), n.Weights...)
	}
	if n.Constraints != nil {
		out.Constraints = append([]Constraint(nil), n.Constraints...)
	}
	if n.Children != nil {
		out.Children = make([]*Node[K], len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Layout returns the rectangle of every leaf in area, in tree order.
func (n *Node[K]) Layout(area Rect) []Region[K] {
	regions, _ := n.LayoutWithHandles(area)
	return regions
}

// LayoutWithHandles returns leaf rectangles plus every resizable split gap.
func (n *Node[K]) LayoutWithHandles(area Rect) ([]Region[K], []SplitHandle) {
	var regions []Region[K]
	var handles []SplitHandle
	n.layoutRecursive(area, &regions, &handles, nil)
	return regions, handles
}

func (n *Node[K]) layoutRecursive(area Rect, regions *[]Region[K], handles *[]SplitHandle, path []int) {
	if !n.split {
		*regions = append(*regions, Region[K]{ID: n.id, Rect: area})
		return
	}
	rects, gaps := splitRectsWithGaps(n.Direction, area, n.Weights, n.Constraints, len(n.Children), n.Resizable)
	for idx, child := range n.Children {
		if idx >= len(rects) {
			break
		}
		childPath := append(append([]int(nil), path...), idx)
		child.layoutRecursive(rects[idx], regions, handles, childPath)
	}
	if n.Resizable && len(n.Children) > 1 {
		for index, gap := range gaps {
			*handles = append(*handles, SplitHandle{
				Rect:      gap,
				Path:      append([]int(nil), path...),
				Index:     index,
				Direction: n.Direction,
			})
		}
	}
}

// NodeAt follows path from n.
func (n *Node[K]) NodeAt(path []int) *Node[K] {
	current := n
	for _, idx := range path {
		if !current.split || idx < 0 || idx >= len(current.Children) {
			return nil
		}
		current = current.Children[idx]
	}
	return current
}

// Any reports whether pred holds for some leaf in the subtree.
func (n *Node[K]) Any(pred func(K) bool) bool {
	if !n.split {
		return pred(n.id)
	}
	for _, c := range n.Children {
		if c.Any(pred) {
			return true
		}
	}
	return false
}

// Contains reports whether id is a leaf of the subtree.
func (n *Node[K]) Contains(id K) bool {
	return n.Any(func(k K) bool { return k == id })
}

// Leaves returns the leaf ids in tree order.
func (n *Node[K]) Leaves() []K {
	var out []K
	var walk func(*Node[K])
	walk = func(node *Node[K]) {
		if !node.split {
			out = append(out, node.id)
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// HitTestHandle returns the split handle under (x, y).
func (n *Node[K]) HitTestHandle(area Rect, x, y int) (SplitHandle, bool) {
	_, handles := n.LayoutWithHandles(area)
	for _, h := range handles {
		if h.Rect.Contains(x, y) {
			return h, true
		}
	}
	return SplitHandle{}, false
}

// ApplyDrag moves delta cells from sibling index+1 to sibling index of the
// split at path (negative delta moves the other way). Both siblings keep at
// least MinSplitSize cells and their combined size is preserved exactly.
// The split's weights are rewritten from the resulting sizes.
func (n *Node[K]) ApplyDrag(area Rect, path []int, index int, direction Direction, delta int) bool {
	splitArea, ok := splitAreaForPath(n, area, path)
	if !ok {
		return false
	}
	split := n.NodeAt(path)
	if split == nil || !split.split {
		return false
	}
	if !split.Resizable || len(split.Children) < 2 || index < 0 || index+1 >= len(split.Children) {
		return false
	}
	sizes := splitSizes(splitArea, direction, split.Weights, split.Constraints, len(split.Children), split.Resizable)
	if len(sizes) == 0 {
		return false
	}
	pair := sizes[index] + sizes[index+1]
	left := sizes[index] + delta
	maxLeft := max(pair-MinSplitSize, MinSplitSize)
	left = min(max(left, MinSplitSize), maxLeft)
	sizes[index] = left
	sizes[index+1] = pair - left

	weights := make([]float64, len(sizes))
	for i, s := range sizes {
		weights[i] = float64(max(s, 1))
	}
	split.Weights = weights
	return true
}

// RemoveLeaf deletes the leaf holding id together with its weight and
// constraint entries. A split left with one child collapses into it, and an
// emptied child split is dropped. A leaf root is never removed here.
func (n *Node[K]) RemoveLeaf(id K) bool {
	if !n.split {
		return false
	}
	removed := false
	for index := 0; index < len(n.Children); index++ {
		child := n.Children[index]
		if !child.split && child.id == id {
			n.removeChild(index)
			removed = true
			break
		}
		if child.RemoveLeaf(id) {
			removed = true
			if child.split && len(child.Children) == 0 {
				n.removeChild(index)
			}
			break
		}
	}
	if removed && len(n.Children) == 1 {
		*n = *n.Children[0]
	}
	return removed
}

func (n *Node[K]) removeChild(index int) {
	n.Children = append(n.Children[:index], n.Children[index+1:]...)
	if index < len(n.Weights) {
		n.Weights = append(n.Weights[:index], n.Weights[index+1:]...)
	}
	if index < len(n.Constraints) {
		n.Constraints = append(n.Constraints[:index], n.Constraints[index+1:]...)
	}
}

// InsertLeaf replaces the leaf holding target with a two-child split of
// target and insert, arranged by position.
func (n *Node[K]) InsertLeaf(target, insert K, position InsertPosition) bool {
	if n.split {
		for _, c := range n.Children {
			if c.InsertLeaf(target, insert, position) {
				return true
			}
		}
		return false
	}
	if n.id != target {
		return false
	}
	current := Leaf(n.id)
	*n = *pairSplit(current, Leaf(insert), position)
	return true
}

// pairSplit joins existing and inserted into an evenly weighted split.
func pairSplit[K comparable](existing, inserted *Node[K], position InsertPosition) *Node[K] {
	direction, insertFirst := position.splitFor()
	children := []*Node[K]{existing, inserted}
	if insertFirst {
		children = []*Node[K]{inserted, existing}
	}
	return &Node[K]{
		split:     true,
		Direction: direction,
		Children:  children,
		Weights:   []float64{1, 1},
		Resizable: true,
	}
}

// HandleThicknessFor returns the handle size for direction clamped to area.
func HandleThicknessFor(direction Direction, area Rect) int {
	base := 1
	if direction == Vertical {
		base = (HandleThickness + 3) / 8
	}
	return min(max(base, 1), max(area.Extent(direction), 1))
}

// GapSize returns the gap reserved between adjacent children of a split.
// It is zero when the split is not resizable, has fewer than two children,
// or the area cannot give every child at least one cell.
func GapSize(direction Direction, area Rect, childCount int, resizable bool) int {
	if !resizable || childCount < 2 {
		return 0
	}
	total := area.Extent(direction)
	if total <= 0 || total <= childCount {
		return 0
	}
	perGap := (total - childCount) / (childCount - 1)
	return min(HandleThicknessFor(direction, area), perGap)
}

func splitRectsWithGaps(direction Direction, area Rect, weights []float64, constraints []Constraint, childCount int, resizable bool) ([]Rect, []Rect) {
	gap := GapSize(direction, area, childCount, resizable)
	if gap == 0 || childCount < 2 {
		return splitRects(direction, area, weights, constraints, childCount), nil
	}
	gapTotal := gap * (childCount - 1)
	shrunk := area
	if direction == Horizontal {
		shrunk.Width = max(area.Width-gapTotal, 0)
	} else {
		shrunk.Height = max(area.Height-gapTotal, 0)
	}
	raw := splitRects(direction, shrunk, weights, constraints, childCount)
	rects := make([]Rect, len(raw))
	for idx, r := range raw {
		offset := gap * idx
		if direction == Horizontal {
			r.X += offset
		} else {
			r.Y += offset
		}
		rects[idx] = r
	}
	gaps := make([]Rect, 0, childCount-1)
	for _, r := range rects[:len(rects)-1] {
		if direction == Horizontal {
			gaps = append(gaps, Rect{X: r.Right(), Y: area.Y, Width: gap, Height: area.Height})
		} else {
			gaps = append(gaps, Rect{X: area.X, Y: r.Bottom(), Width: area.Width, Height: gap})
		}
	}
	return rects, gaps
}

func splitRects(direction Direction, area Rect, weights []float64, constraints []Constraint, childCount int) []Rect {
	if len(weights) == childCount {
		for _, w := range weights {
			if w > 0 {
				return splitRectsWeighted(direction, area, weights, childCount)
			}
		}
	}
	if len(constraints) == childCount && childCount > 0 {
		return buildRectsFromSizes(direction, area, solveConstraints(area.Extent(direction), constraints))
	}
	return splitRectsWeighted(direction, area, nil, childCount)
}

// splitRectsWeighted allocates floor(weight/total*extent) to each child and
// gives the last child whatever is left, so the sizes always sum to extent.
func splitRectsWeighted(direction Direction, area Rect, weights []float64, childCount int) []Rect {
	if childCount <= 0 {
		return nil
	}
	if len(weights) != childCount {
		weights = make([]float64, childCount)
		for i := range weights {
			weights[i] = 1
		}
	}
	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	totalWeight = math.Max(totalWeight, 1)
	total := area.Extent(direction)

	sizes := make([]int, childCount)
	used := 0
	for idx, w := range weights {
		if idx == childCount-1 {
			sizes[idx] = max(total-used, 0)
			break
		}
		portion := int(math.Floor(w * float64(total) / totalWeight))
		portion = min(max(portion, 0), max(total-used, 0))
		used += portion
		sizes[idx] = portion
	}
	return buildRectsFromSizes(direction, area, sizes)
}

func buildRectsFromSizes(direction Direction, area Rect, sizes []int) []Rect {
	rects := make([]Rect, len(sizes))
	cursor := area.X
	if direction == Vertical {
		cursor = area.Y
	}
	for i, size := range sizes {
		if direction == Horizontal {
			rects[i] = Rect{X: cursor, Y: area.Y, Width: size, Height: area.Height}
		} else {
			rects[i] = Rect{X: area.X, Y: cursor, Width: area.Width, Height: size}
		}
		cursor += size
	}
	return rects
}

func splitSizes(area Rect, direction Direction, weights []float64, constraints []Constraint, childCount int, resizable bool) []int {
	rects, _ := splitRectsWithGaps(direction, area, weights, constraints, childCount, resizable)
	sizes := make([]int, len(rects))
	for i, r := range rects {
		sizes[i] = r.Extent(direction)
	}
	return sizes
}

func splitAreaForPath[K comparable](root *Node[K], area Rect, path []int) (Rect, bool) {
	current := root
	for _, idx := range path {
		if !current.split || idx < 0 || idx >= len(current.Children) {
			return Rect{}, false
		}
		rects, _ := splitRectsWithGaps(current.Direction, area, current.Weights, current.Constraints, len(current.Children), current.Resizable)
		if idx >= len(rects) {
			return Rect{}, false
		}
		area = rects[idx]
		current = current.Children[idx]
	}
	return area, true
}

// SplitAreaForPath returns the rectangle the node at path occupies in area.
func (n *Node[K]) SplitAreaForPath(area Rect, path []int) (Rect, bool) {
	return splitAreaForPath(n, area, path)
}
