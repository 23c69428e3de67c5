package layout

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// =============================================================================
// Split layout tests
// =============================================================================

func TestLayoutTwoWaySplit(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 80, Height: 24}
	tests := []struct {
		name      string
		direction Direction
		want      []Rect
		wantGap   Rect
	}{
		{
			name:      "horizontal",
			direction: Horizontal,
			want: []Rect{
				{X: 0, Y: 0, Width: 39, Height: 24},
				{X: 40, Y: 0, Width: 40, Height: 24},
			},
			wantGap: Rect{X: 39, Y: 0, Width: 1, Height: 24},
		},
		{
			name:      "vertical",
			direction: Vertical,
			want: []Rect{
				{X: 0, Y: 0, Width: 80, Height: 11},
				{X: 0, Y: 12, Width: 80, Height: 12},
			},
			wantGap: Rect{X: 0, Y: 11, Width: 80, Height: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewSplit(tt.direction, nil, Leaf(1), Leaf(2))
			regions, handles := root.LayoutWithHandles(area)
			if len(regions) != 2 {
				t.Fatalf("got %d regions, want 2", len(regions))
			}
			for i, r := range regions {
				if r.Rect != tt.want[i] {
					t.Errorf("region %d = %v, want %v", i, r.Rect, tt.want[i])
				}
			}
			if len(handles) != 1 {
				t.Fatalf("got %d handles, want 1", len(handles))
			}
			if handles[0].Rect != tt.wantGap {
				t.Errorf("gap = %v, want %v", handles[0].Rect, tt.wantGap)
			}
		})
	}
}

func TestLayoutCoversAreaWithoutOverlap(t *testing.T) {
	root := NewSplit(Horizontal, nil,
		Leaf(1),
		NewSplit(Vertical, nil, Leaf(2), Leaf(3), Leaf(4)),
		Leaf(5),
	)
	area := Rect{X: 2, Y: 1, Width: 97, Height: 31}
	regions, handles := root.LayoutWithHandles(area)

	covered := 0
	for i, a := range regions {
		covered += a.Rect.Width * a.Rect.Height
		if a.Rect.Intersect(area) != a.Rect {
			t.Errorf("region %v escapes area", a.Rect)
		}
		for _, b := range regions[i+1:] {
			if a.Rect.Intersects(b.Rect) {
				t.Errorf("regions %v and %v overlap", a.Rect, b.Rect)
			}
		}
	}
	for _, h := range handles {
		covered += h.Rect.Width * h.Rect.Height
	}
	// The nested vertical gaps sit inside the middle column, so every cell is
	// either a region or a handle exactly once.
	if covered != area.Width*area.Height {
		t.Errorf("covered %d cells, want %d", covered, area.Width*area.Height)
	}
}

func TestSplitRectsWeightedSumsToExtent(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		total   int
	}{
		{name: "equal", weights: []float64{1, 1, 1}, total: 100},
		{name: "uneven", weights: []float64{3, 1, 7}, total: 53},
		{name: "fractional", weights: []float64{0.2, 0.3}, total: 17},
		{name: "zero extent", weights: []float64{1, 2}, total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects := splitRectsWeighted(Horizontal, Rect{Width: tt.total, Height: 1}, tt.weights, len(tt.weights))
			sum := 0
			for _, r := range rects {
				sum += r.Width
			}
			if sum != tt.total {
				t.Errorf("sizes sum to %d, want %d", sum, tt.total)
			}
		})
	}
}

func TestGapSize(t *testing.T) {
	tests := []struct {
		name      string
		area      Rect
		count     int
		resizable bool
		want      int
	}{
		{name: "single child", area: Rect{Width: 80, Height: 24}, count: 1, resizable: true, want: 0},
		{name: "not resizable", area: Rect{Width: 80, Height: 24}, count: 2, resizable: false, want: 0},
		{name: "too small", area: Rect{Width: 3, Height: 24}, count: 3, resizable: true, want: 0},
		{name: "normal", area: Rect{Width: 80, Height: 24}, count: 2, resizable: true, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GapSize(Horizontal, tt.area, tt.count, tt.resizable); got != tt.want {
				t.Errorf("GapSize = %d, want %d", got, tt.want)
			}
		})
	}
}

// =============================================================================
// Drag tests
// =============================================================================

func TestApplyDrag(t *testing.T) {
	area := Rect{Width: 80, Height: 24}
	tests := []struct {
		name      string
		delta     int
		wantLeft  int
		wantRight int
	}{
		{name: "grow left", delta: 5, wantLeft: 44, wantRight: 35},
		{name: "shrink left", delta: -9, wantLeft: 30, wantRight: 49},
		{name: "clamped at minimum", delta: -100, wantLeft: MinSplitSize, wantRight: 79 - MinSplitSize},
		{name: "clamped at maximum", delta: 100, wantLeft: 79 - MinSplitSize, wantRight: MinSplitSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewSplit(Horizontal, nil, Leaf(1), Leaf(2))
			if !root.ApplyDrag(area, nil, 0, Horizontal, tt.delta) {
				t.Fatal("ApplyDrag returned false")
			}
			regions := root.Layout(area)
			if regions[0].Rect.Width != tt.wantLeft || regions[1].Rect.Width != tt.wantRight {
				t.Errorf("widths = %d,%d want %d,%d",
					regions[0].Rect.Width, regions[1].Rect.Width, tt.wantLeft, tt.wantRight)
			}
			if regions[0].Rect.Width+regions[1].Rect.Width != 79 {
				t.Errorf("pair size changed")
			}
		})
	}
}

func TestApplyDragRejectsInvalidTargets(t *testing.T) {
	area := Rect{Width: 80, Height: 24}
	root := NewSplit(Horizontal, nil, Leaf(1), Leaf(2))

	if root.ApplyDrag(area, nil, 1, Horizontal, 3) {
		t.Error("index past last pair should fail")
	}
	if root.ApplyDrag(area, []int{0}, 0, Horizontal, 3) {
		t.Error("drag on a leaf should fail")
	}
	fixed := NewSplit(Horizontal, nil, Leaf(1), Leaf(2))
	fixed.Resizable = false
	if fixed.ApplyDrag(area, nil, 0, Horizontal, 3) {
		t.Error("drag on fixed split should fail")
	}
}

func TestTilingLayoutHandleDrag(t *testing.T) {
	area := Rect{Width: 80, Height: 24}
	tl := NewTilingLayout(NewSplit(Horizontal, nil, Leaf(1), Leaf(2)))

	if !tl.HandlePointer(PointerDown, 39, 5, area) {
		t.Fatal("press on handle should start a drag")
	}
	if !tl.Dragging() {
		t.Fatal("expected drag in progress")
	}
	tl.HandlePointer(PointerDrag, 42, 5, area)
	tl.HandlePointer(PointerDrag, 44, 9, area)
	if !tl.HandlePointer(PointerUp, 44, 9, area) {
		t.Error("release should end the drag")
	}
	if tl.Dragging() {
		t.Error("drag should be over")
	}
	if got := tl.Regions(area)[0].Rect.Width; got != 44 {
		t.Errorf("left width = %d, want 44", got)
	}
	if tl.HandlePointer(PointerDown, 10, 10, area) {
		t.Error("press away from a handle should not be consumed")
	}
}

// =============================================================================
// Tree editing tests
// =============================================================================

func TestRemoveLeaf(t *testing.T) {
	t.Run("keeps weights aligned", func(t *testing.T) {
		root := NewSplit(Horizontal, nil, Leaf(1), Leaf(2), Leaf(3))
		root.Weights = []float64{1, 2, 3}
		if !root.RemoveLeaf(2) {
			t.Fatal("RemoveLeaf returned false")
		}
		if got := root.Leaves(); !reflect.DeepEqual(got, []int{1, 3}) {
			t.Errorf("leaves = %v", got)
		}
		if !reflect.DeepEqual(root.Weights, []float64{1, 3}) {
			t.Errorf("weights = %v", root.Weights)
		}
	})

	t.Run("collapses single child", func(t *testing.T) {
		root := NewSplit(Horizontal, nil, Leaf(1), NewSplit(Vertical, nil, Leaf(2), Leaf(3)))
		root.RemoveLeaf(3)
		if got := root.Leaves(); !reflect.DeepEqual(got, []int{1, 2}) {
			t.Errorf("leaves = %v", got)
		}
		if root.Children[1].IsLeaf() == false {
			t.Error("nested split should collapse to a leaf")
		}
		root.RemoveLeaf(1)
		if id, ok := root.LeafID(); !ok || id != 2 {
			t.Errorf("root should collapse to leaf 2, got %v %v", id, ok)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		root := NewSplit(Horizontal, nil, Leaf(1), Leaf(2))
		if root.RemoveLeaf(9) {
			t.Error("RemoveLeaf of unknown id should return false")
		}
	})
}

func TestInsertLeaf(t *testing.T) {
	tests := []struct {
		name      string
		position  InsertPosition
		direction Direction
		leaves    []int
	}{
		{name: "left", position: InsertLeft, direction: Horizontal, leaves: []int{2, 1}},
		{name: "right", position: InsertRight, direction: Horizontal, leaves: []int{1, 2}},
		{name: "top", position: InsertTop, direction: Vertical, leaves: []int{2, 1}},
		{name: "bottom", position: InsertBottom, direction: Vertical, leaves: []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Leaf(1)
			if !root.InsertLeaf(1, 2, tt.position) {
				t.Fatal("InsertLeaf returned false")
			}
			if root.Direction != tt.direction {
				t.Errorf("direction = %v, want %v", root.Direction, tt.direction)
			}
			if got := root.Leaves(); !reflect.DeepEqual(got, tt.leaves) {
				t.Errorf("leaves = %v, want %v", got, tt.leaves)
			}
			if !reflect.DeepEqual(root.Weights, []float64{1, 1}) {
				t.Errorf("weights = %v", root.Weights)
			}
		})
	}

	t.Run("nested target", func(t *testing.T) {
		root := NewSplit(Horizontal, nil, Leaf(1), Leaf(2))
		if !root.InsertLeaf(2, 3, InsertBottom) {
			t.Fatal("InsertLeaf returned false")
		}
		if got := root.Leaves(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
			t.Errorf("leaves = %v", got)
		}
		if root.NodeAt([]int{1}).Direction != Vertical {
			t.Error("nested split should be vertical")
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		if Leaf(1).InsertLeaf(5, 2, InsertLeft) {
			t.Error("InsertLeaf with unknown target should fail")
		}
	})
}

// shape renders the topology of n: leaves by id, splits by direction.
func shape(n *Node[int]) string {
	if id, ok := n.LeafID(); ok {
		return fmt.Sprint(id)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = shape(c)
	}
	return fmt.Sprintf("%v(%s)", n.Direction, strings.Join(parts, " "))
}

func TestInsertThenRemoveRestoresTree(t *testing.T) {
	trees := []struct {
		name   string
		build  func() *Node[int]
		target int
	}{
		{"leaf root", func() *Node[int] { return Leaf(1) }, 1},
		{"nested target", func() *Node[int] {
			return NewSplit(Horizontal, nil, Leaf(1), NewSplit(Vertical, nil, Leaf(2), Leaf(3)))
		}, 3},
	}
	positions := []InsertPosition{InsertLeft, InsertRight, InsertTop, InsertBottom}

	for _, tree := range trees {
		for _, pos := range positions {
			t.Run(tree.name+"/"+pos.String(), func(t *testing.T) {
				root := tree.build()
				before := shape(root)
				leaves := root.Leaves()

				if !root.InsertLeaf(tree.target, 9, pos) {
					t.Fatal("InsertLeaf returned false")
				}
				if !root.Contains(9) {
					t.Fatal("inserted leaf missing")
				}
				root.RemoveLeaf(9)

				if got := shape(root); got != before {
					t.Errorf("shape = %s, want %s", got, before)
				}
				if got := root.Leaves(); !reflect.DeepEqual(got, leaves) {
					t.Errorf("leaves = %v, want %v", got, leaves)
				}
			})
		}
	}
}

func TestSplitRoot(t *testing.T) {
	tl := NewTilingLayout(NewSplit(Horizontal, nil, Leaf(1), Leaf(2)))
	tl.SplitRoot(3, InsertBottom)
	root := tl.Root()
	if root.Direction != Vertical || len(root.Children) != 2 {
		t.Fatalf("unexpected root %+v", root)
	}
	if id, _ := root.Children[1].LeafID(); id != 3 {
		t.Errorf("inserted leaf = %d, want 3", id)
	}
}

// =============================================================================
// Constraint tests
// =============================================================================

func TestSolveConstraints(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		constraints []Constraint
		want        []int
	}{
		{name: "length fill percentage", total: 100, constraints: []Constraint{Length(20), Fill(1), Percentage(30)}, want: []int{20, 50, 30}},
		{name: "overflow trimmed from end", total: 100, constraints: []Constraint{Length(80), Length(50)}, want: []int{80, 20}},
		{name: "min grows", total: 100, constraints: []Constraint{Min(10), Fill(1)}, want: []int{55, 45}},
		{name: "ratio", total: 90, constraints: []Constraint{Ratio(1, 3), Fill(1)}, want: []int{30, 60}},
		{name: "no flexible entry", total: 50, constraints: []Constraint{Length(10), Max(10)}, want: []int{10, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := solveConstraints(tt.total, tt.constraints); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("solveConstraints = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstraintsUsedWithoutWeights(t *testing.T) {
	root := NewSplit(Vertical, []Constraint{Length(1), Fill(1)}, Leaf(1), Leaf(2))
	root.Resizable = false
	regions := root.Layout(Rect{Width: 80, Height: 24})
	if regions[0].Rect.Height != 1 || regions[1].Rect.Height != 23 {
		t.Errorf("heights = %d,%d", regions[0].Rect.Height, regions[1].Rect.Height)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkLayoutWithHandles(b *testing.B) {
	root := NewSplit(Horizontal, nil,
		NewSplit(Vertical, nil, Leaf(1), Leaf(2), Leaf(3)),
		NewSplit(Vertical, nil, Leaf(4), NewSplit(Horizontal, nil, Leaf(5), Leaf(6))),
	)
	area := Rect{Width: 240, Height: 60}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		root.LayoutWithHandles(area)
	}
}
