package wm

import (
	"cmp"
	"slices"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/panel"
)

// Tiling returns the managed split tree, or nil when nothing is tiled.
func (m *WindowManager) Tiling() *layout.TilingLayout[WindowID] { return m.tiling }

// SetTiling installs root as the managed tree and drops every floating
// placement.
func (m *WindowManager) SetTiling(root *layout.Node[WindowID]) {
	if root == nil {
		m.tiling = nil
	} else {
		m.tiling = layout.NewTilingLayout(root)
	}
	m.clearAllFloating()
	if m.state.debugLogVisible {
		m.ensureDebugLogInLayout()
	}
}

func (m *WindowManager) layoutContains(id WindowID) bool {
	return m.tiling != nil && m.tiling.Root().Contains(id)
}

// removeFromLayout drops id's leaf, clearing the tree when it was the root.
func (m *WindowManager) removeFromLayout(id WindowID) {
	if m.tiling == nil {
		return
	}
	root := m.tiling.Root()
	if leaf, ok := root.LeafID(); ok {
		if leaf == id {
			m.tiling = nil
		}
		return
	}
	root.RemoveLeaf(id)
}

// SetRegion records the rectangle of an app window in AppManaged mode.
func (m *WindowManager) SetRegion(id AppID, rect layout.Rect) {
	wid := AppWindow(id)
	m.regions.Set(wid, rect)
	m.frames[wid] = rect.Float()
}

// SetRegionsFromLayout replaces the regions with the layout of root in area.
func (m *WindowManager) SetRegionsFromLayout(root *layout.Node[AppID], area layout.Rect) {
	m.regions.Reset()
	clear(m.frames)
	for _, r := range root.Layout(area) {
		m.SetRegion(r.ID, r.Rect)
	}
}

// RegisterManagedLayout is the per-frame layout pass. It reserves the panel,
// migrates maximized windows to the new managed area, clamps floating
// windows, fills the region map from the tree and the floating windows,
// and rebuilds z-order and the WM focus ring.
func (m *WindowManager) RegisterManagedLayout(area layout.Rect) {
	m.screen = area
	_, m.managedArea = m.panel.SplitArea(m.panelActive(), area)
	bounds := m.managedArea

	for _, w := range m.windows {
		if w.Maximized && w.Floating != nil {
			spec := layout.Absolute(bounds.Float())
			w.Floating = &spec
		}
	}
	m.clampFloating()
	if m.state.debugLogVisible {
		m.ensureDebugLogInLayout()
	}

	zSnapshot := slices.Clone(m.zOrder)
	var active []WindowID

	if m.tiling != nil {
		root := m.tiling.Root()
		regions, handles := root.LayoutWithHandles(bounds)
		for _, r := range regions {
			if m.IsFloating(r.ID) || m.IsMinimized(r.ID) {
				continue
			}
			m.setRegion(r.ID, r.Rect.Float(), bounds)
			active = append(active, r.ID)
		}
		tiled := func(id WindowID) bool { return !m.IsFloating(id) && !m.IsMinimized(id) }
		for _, h := range handles {
			split := root.NodeAt(h.Path)
			if split == nil || h.Index+1 >= len(split.Children) {
				continue
			}
			if split.Children[h.Index].Any(tiled) || split.Children[h.Index+1].Any(tiled) {
				m.handles = append(m.handles, h)
			}
		}
	}

	var floating []WindowID
	for id, w := range m.windows {
		if w.Floating != nil && !w.Minimized {
			floating = append(floating, id)
		}
	}
	slices.SortFunc(floating, func(a, b WindowID) int {
		ia, ib := zIndex(zSnapshot, a), zIndex(zSnapshot, b)
		if ia != ib {
			return ia - ib
		}
		return cmp.Compare(m.windows[a].creationOrder, m.windows[b].creationOrder)
	})
	for _, id := range floating {
		frame := m.windows[id].Floating.ResolveSigned(bounds)
		m.setRegion(id, frame, bounds)
		m.resizeHandles = append(m.resizeHandles, layout.ResizeHandles(id, signedRect(frame))...)
		active = append(active, id)
	}

	m.zOrder = slices.DeleteFunc(m.zOrder, func(id WindowID) bool { return !slices.Contains(active, id) })
	for _, id := range active {
		if !slices.Contains(m.zOrder, id) {
			m.zOrder = append(m.zOrder, id)
		}
	}
	m.drawOrder = append(m.drawOrder[:0], m.zOrder...)
	m.wmFocus.Retain(active)
	if len(m.drawOrder) > 0 && m.drawOrder[len(m.drawOrder)-1] != m.wmFocus.Current() {
		m.BringToFront(m.wmFocus.Current())
		m.drawOrder = append(m.drawOrder[:0], m.zOrder...)
	}

	// Headers follow the final stacking so the topmost one wins hit tests.
	m.headers = m.headers[:0]
	for _, id := range m.drawOrder {
		if h, ok := layout.HeaderHandle(id, signedRect(m.frames[id]), bounds); ok {
			m.headers = append(m.headers, h)
		}
	}

	m.arrangePanel()
}

func (m *WindowManager) setRegion(id WindowID, frame layout.FloatRect, bounds layout.Rect) {
	m.frames[id] = frame
	m.regions.Set(id, frame.Visible(bounds))
}

func (m *WindowManager) arrangePanel() {
	if !m.panelActive() {
		m.panel.Menu().Close()
		return
	}
	display := m.BuildDisplayOrder()
	focus := m.wmFocus.Current()
	items := make([]panel.Item, len(display))
	for i, id := range display {
		items[i] = panel.Item{Label: m.Title(id), Focused: id == focus, Minimized: m.IsMinimized(id)}
	}
	m.panel.Arrange(items, m.state.mouseCapture, m.MenuVisible(), m.menuStatus())
	m.arrangeMenu()
}

// signedRect reinterprets a signed frame as a Rect for hit-zone math; the
// result may have a negative origin and is never drawn directly.
func signedRect(f layout.FloatRect) layout.Rect {
	return layout.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

func zIndex(order []WindowID, id WindowID) int {
	if i := slices.Index(order, id); i >= 0 {
		return i
	}
	return len(order)
}

func (m *WindowManager) clampFloating() {
	bounds := m.managedArea
	if bounds.Empty() {
		return
	}
	for _, w := range m.windows {
		if w.Floating == nil || w.Floating.Kind != layout.SpecAbsolute || w.Maximized {
			continue
		}
		clamped := layout.ClampFloating(w.Floating.Rect, bounds, m.offscreen, m.margin)
		if clamped != w.Floating.Rect {
			spec := layout.Absolute(clamped)
			w.Floating = &spec
		}
	}
}

// DrawOrder returns the active windows back to front.
func (m *WindowManager) DrawOrder() []WindowID { return m.drawOrder }

// DrawOrderApps returns the active app windows back to front.
func (m *WindowManager) DrawOrderApps() []AppID {
	var out []AppID
	for _, id := range m.drawOrder {
		if app, ok := id.AsApp(); ok {
			out = append(out, app)
		}
	}
	return out
}

// ZOrder returns the stacking order, topmost last.
func (m *WindowManager) ZOrder() []WindowID { return m.zOrder }

// Regions returns the visible rectangle of every active window.
func (m *WindowManager) Regions() *layout.RegionMap[WindowID] { return &m.regions }

// Handles returns the split handles registered this frame.
func (m *WindowManager) Handles() []layout.SplitHandle { return m.handles }

// FullRegion returns the visible frame rectangle of id.
func (m *WindowManager) FullRegion(id WindowID) layout.Rect {
	r, _ := m.regions.Get(id)
	return r
}

// Frame returns the signed frame of id.
func (m *WindowManager) Frame(id WindowID) (layout.FloatRect, bool) {
	f, ok := m.frames[id]
	return f, ok
}

// Region returns the content rectangle of id. In WindowManaged mode this is
// the frame minus chrome; frames smaller than 3x4 have no content.
func (m *WindowManager) Region(id WindowID) layout.Rect {
	inner, ok := m.innerFrame(id)
	if !ok {
		return layout.Rect{}
	}
	if m.contract != WindowManaged {
		return signedRect(inner)
	}
	if m.offscreen {
		return inner.Visible(m.managedArea)
	}
	return signedRect(inner)
}

// innerFrame returns the signed content rectangle of id.
func (m *WindowManager) innerFrame(id WindowID) (layout.FloatRect, bool) {
	frame, ok := m.frames[id]
	if !ok {
		return layout.FloatRect{}, false
	}
	if m.contract != WindowManaged {
		return frame, true
	}
	if !m.offscreen {
		frame = frame.Visible(m.managedArea).Float()
	}
	if frame.Width < 3 || frame.Height < 4 {
		return layout.FloatRect{}, false
	}
	return frame.Inset(1, 2, 1, 1), true
}

// BuildDisplayOrder returns windows for the panel list in creation order:
// every active or minimized window, then any active id not yet listed.
func (m *WindowManager) BuildDisplayOrder() []WindowID {
	ids := make([]WindowID, 0, len(m.windows))
	for id := range m.windows {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b WindowID) int {
		return cmp.Compare(m.windows[a].creationOrder, m.windows[b].creationOrder)
	})
	var out []WindowID
	for _, id := range ids {
		if slices.Contains(m.drawOrder, id) || m.windows[id].Minimized {
			out = append(out, id)
		}
	}
	for _, id := range m.drawOrder {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
