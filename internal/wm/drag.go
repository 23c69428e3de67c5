package wm

import (
	"cmp"
	"slices"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// Dragging reports whether a header drag is in progress.
func (m *WindowManager) Dragging() bool { return m.drag != nil }

// Resizing reports whether an edge resize is in progress.
func (m *WindowManager) Resizing() bool { return m.resize != nil }

// SnapPreview returns the staged snap rectangle of the current drag.
func (m *WindowManager) SnapPreview() (layout.Rect, bool) {
	if m.drag == nil || !m.drag.snapStaged {
		return layout.Rect{}, false
	}
	return m.drag.snapRect, true
}

// gestureAlive reports whether id can still be the subject of a gesture.
// Windows closed or minimized mid-gesture end it.
func (m *WindowManager) gestureAlive(id WindowID) bool {
	w, ok := m.windows[id]
	return ok && !w.Minimized && w.Floating != nil
}

// obscured reports whether a window other than id is topmost at (x, y).
func (m *WindowManager) obscured(id WindowID, x, y int) bool {
	if m.contract != WindowManaged || len(m.drawOrder) == 0 {
		return false
	}
	hit, ok := m.HitTest(x, y)
	return ok && hit != id
}

func (m *WindowManager) handleHeaderEvent(e ui.MouseEvent) bool {
	switch e.Kind {
	case ui.MouseDown:
		if e.Button != ui.ButtonLeft {
			return false
		}
		var header *layout.DragHandle[WindowID]
		for i := len(m.headers) - 1; i >= 0; i-- {
			if m.headers[i].Rect.Contains(e.X, e.Y) {
				header = &m.headers[i]
				break
			}
		}
		if header == nil || m.obscured(header.ID, e.X, e.Y) {
			return false
		}
		id := header.ID
		frame := m.frames[id]
		switch m.decorator.HitTest(frame, e.X, e.Y) {
		case HeaderMinimize:
			m.Minimize(id)
			return true
		case HeaderMaximize:
			m.ToggleMaximize(id)
			return true
		case HeaderClose:
			m.Close(id)
			return true
		case HeaderNone:
			return false
		}

		if m.isDoubleClick(id, e.X, e.Y) {
			m.lastClick = nil
			m.ToggleMaximize(id)
			return true
		}
		m.lastClick = &headerClick{id: id, at: m.now(), col: e.X, row: e.Y}

		m.SetWMFocus(id)
		wasTiled := !m.IsFloating(id)
		if wasTiled {
			if !m.detachToFloating(id, frame) {
				return false
			}
		} else {
			m.BringToFront(id)
		}
		spec, _ := m.FloatingSpec(id)
		m.drag = &headerDrag{
			id:       id,
			start:    spec.ResolveSigned(m.managedArea),
			startCol: e.X,
			startRow: e.Y,
			wasTiled: wasTiled,
			lastCol:  e.X,
			lastRow:  e.Y,
		}
		return true

	case ui.MouseDrag:
		d := m.drag
		if d == nil {
			return false
		}
		if !m.gestureAlive(d.id) {
			m.drag = nil
			return false
		}
		m.moveFloating(d, e.X, e.Y)
		dx, dy := abs(e.X-d.startCol), abs(e.Y-d.startRow)
		if dx+dy > SnapDragThreshold {
			m.updateSnapPreview(d, e.X, e.Y)
		} else {
			d.snapStaged = false
		}
		return true

	case ui.MouseUp:
		d := m.drag
		if d == nil {
			return false
		}
		m.drag = nil
		if !m.gestureAlive(d.id) {
			return true
		}
		if d.snapStaged {
			m.applySnap(d)
			return true
		}
		if d.wasTiled && !d.moved {
			m.clearFloating(d.id)
			return true
		}
		// A tile dropped without a snap releases its slot.
		if m.layoutContains(d.id) {
			m.removeFromLayout(d.id)
			m.logger.Debug("tile released", "id", d.id)
		}
		return true
	}
	return false
}

func (m *WindowManager) isDoubleClick(id WindowID, x, y int) bool {
	c := m.lastClick
	if c == nil || c.id != id {
		return false
	}
	if abs(c.col-x) > 1 || c.row != y {
		return false
	}
	return m.now().Sub(c.at) <= m.doubleClick
}

// moveFloating places the dragged window at its start origin plus the
// cumulative pointer delta. The header never goes above the managed area.
func (m *WindowManager) moveFloating(d *headerDrag, col, row int) {
	w := m.windows[d.id]
	x := d.start.X + (col - d.startCol)
	y := max(d.start.Y+(row-d.startRow), m.managedArea.Y)
	frame := layout.FloatRect{X: x, Y: y, Width: max(d.start.Width, 1), Height: max(d.start.Height, 1)}
	spec := layout.Absolute(frame)
	w.Floating = &spec
	w.Maximized = false
	w.PrevFloating = nil
	w.restoreTiled = false
	if col != d.startCol || row != d.startRow {
		d.moved = true
	}
	d.lastCol, d.lastRow = col, row
}

// updateSnapPreview stages a snap for the pointer at (x, y): near the top or
// bottom seam of a tiled window, or near a screen edge.
func (m *WindowManager) updateSnapPreview(d *headerDrag, x, y int) {
	d.snapStaged = false
	d.snapTarget = nil
	area := m.managedArea

	for i := len(m.zOrder) - 1; i >= 0; i-- {
		id := m.zOrder[i]
		if id == d.id {
			continue
		}
		if m.tiling != nil && m.IsFloating(id) {
			continue
		}
		rect, ok := m.regions.Get(id)
		if !ok || !rect.Contains(x, y) {
			continue
		}
		h := rect.Height
		dTop := y - rect.Y
		dBottom := rect.Bottom() - 1 - y
		sens := min(max(h/10, 1), 4)
		target := id
		switch {
		case dTop < sens && dTop <= dBottom:
			m.stageSnap(d, &target, layout.InsertTop, layout.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: h / 2})
			return
		case dBottom < sens:
			m.stageSnap(d, &target, layout.InsertBottom, layout.Rect{X: rect.X, Y: rect.Y + h/2, Width: rect.Width, Height: h / 2})
			return
		}
		break
	}

	dLeft := x - area.X
	dRight := area.Right() - 1 - x
	dTop := y - area.Y
	dBottom := area.Bottom() - 1 - y
	nearest := min(dLeft, dRight, dTop, dBottom)
	if nearest >= m.snapSens {
		return
	}
	var pos layout.InsertPosition
	var preview layout.Rect
	switch nearest {
	case dLeft:
		pos = layout.InsertLeft
		preview = layout.Rect{X: area.X, Y: area.Y, Width: area.Width / 2, Height: area.Height}
	case dRight:
		pos = layout.InsertRight
		preview = layout.Rect{X: area.X + area.Width/2, Y: area.Y, Width: area.Width / 2, Height: area.Height}
	case dTop:
		pos = layout.InsertTop
		preview = layout.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height / 2}
	default:
		pos = layout.InsertBottom
		preview = layout.Rect{X: area.X, Y: area.Y + area.Height/2, Width: area.Width, Height: area.Height / 2}
	}
	if m.tiling == nil {
		preview = area
	}
	m.stageSnap(d, nil, pos, preview)
}

func (m *WindowManager) stageSnap(d *headerDrag, target *WindowID, pos layout.InsertPosition, preview layout.Rect) {
	d.snapStaged = true
	d.snapTarget = target
	d.snapPos = pos
	d.snapRect = preview
}

// otherTiles reports whether the tree lays out any tile besides id.
func (m *WindowManager) otherTiles(id WindowID) bool {
	if m.tiling == nil {
		return false
	}
	for _, leaf := range m.tiling.Root().Leaves() {
		if leaf != id && !m.IsFloating(leaf) && !m.IsMinimized(leaf) {
			return true
		}
	}
	return false
}

// applySnap commits the staged snap of a finished drag.
func (m *WindowManager) applySnap(d *headerDrag) {
	id, pos := d.id, d.snapPos

	// An edge snap with nothing else tiled just resizes the float.
	if d.snapTarget == nil && !m.otherTiles(id) {
		w := m.windows[id]
		spec := layout.Absolute(d.snapRect.Float())
		w.Floating = &spec
		if m.layoutContains(id) {
			m.removeFromLayout(id)
		}
		m.logger.Debug("floating snap", "id", id, "rect", d.snapRect)
		return
	}

	m.clearFloating(id)
	if m.layoutContains(id) {
		if d.snapTarget != nil && *d.snapTarget == id {
			m.BringToFront(id)
			return
		}
		m.removeFromLayout(id)
	}

	if d.snapTarget != nil && m.IsFloating(*d.snapTarget) {
		target := *d.snapTarget
		m.clearFloating(target)
		if m.tiling == nil {
			m.tiling = layout.NewTilingLayout(layout.Leaf(target))
		}
	}

	if m.tiling == nil {
		m.tiling = layout.NewTilingLayout(layout.Leaf(id))
	} else {
		inserted := d.snapTarget != nil && m.tiling.Root().InsertLeaf(*d.snapTarget, id, pos)
		if !inserted {
			m.tiling.SplitRoot(id, pos)
		}
	}
	m.BringToFront(id)
	m.SetWMFocus(id)
	m.logger.Debug("snap committed", "id", id, "position", pos, "target", d.snapTarget)

	// Floating windows get another chance to tile now that the tree changed.
	var retile []WindowID
	for otherID, w := range m.windows {
		if otherID == id || w.Floating == nil || w.Minimized || w.Maximized {
			continue
		}
		if otherID == m.debugLogID && !m.state.debugLogVisible {
			continue
		}
		retile = append(retile, otherID)
	}
	slices.SortFunc(retile, func(a, b WindowID) int {
		return cmp.Compare(m.windows[a].creationOrder, m.windows[b].creationOrder)
	})
	for _, otherID := range retile {
		m.TileWindow(otherID)
	}
	m.SetWMFocus(id)
}

func (m *WindowManager) handleResizeEvent(e ui.MouseEvent) bool {
	switch e.Kind {
	case ui.MouseDown:
		if e.Button != ui.ButtonLeft {
			return false
		}
		var handle *layout.ResizeHandle[WindowID]
		for i := len(m.resizeHandles) - 1; i >= 0; i-- {
			if m.resizeHandles[i].Rect.Contains(e.X, e.Y) {
				handle = &m.resizeHandles[i]
				break
			}
		}
		if handle == nil || m.obscured(handle.ID, e.X, e.Y) || !m.IsFloating(handle.ID) {
			return false
		}
		m.BringToFront(handle.ID)
		m.SetWMFocus(handle.ID)
		m.resize = &resizeDrag{
			id:       handle.ID,
			edge:     handle.Edge,
			start:    m.frames[handle.ID],
			startCol: e.X,
			startRow: e.Y,
		}
		return true

	case ui.MouseDrag:
		r := m.resize
		if r == nil {
			return false
		}
		if !m.gestureAlive(r.id) {
			m.resize = nil
			return false
		}
		frame := layout.ApplyResizeDrag(r.start, r.edge, e.X, e.Y, r.startCol, r.startRow, m.managedArea, m.offscreen)
		m.SetFloating(r.id, layout.Absolute(frame))
		return true

	case ui.MouseUp:
		if m.resize == nil {
			return false
		}
		m.resize = nil
		return true
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
