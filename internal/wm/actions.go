package wm

import (
	"slices"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
)

// BringToFront moves id to the top of the stack. An id not yet stacked is
// appended.
func (m *WindowManager) BringToFront(id WindowID) {
	if i := slices.Index(m.zOrder, id); i >= 0 {
		if i == len(m.zOrder)-1 {
			return
		}
		m.zOrder = append(m.zOrder[:i], m.zOrder[i+1:]...)
	}
	m.zOrder = append(m.zOrder, id)
}

// BringAppToFront raises an application window.
func (m *WindowManager) BringAppToFront(id AppID) { m.BringToFront(AppWindow(id)) }

// BringAllFloatingToFront raises every floating window above the tiles,
// keeping their relative order. The topmost one takes WM focus so the next
// registration keeps the stacking.
func (m *WindowManager) BringAllFloatingToFront() {
	var floating []WindowID
	for _, id := range m.zOrder {
		if m.IsFloating(id) {
			floating = append(floating, id)
		}
	}
	for _, id := range floating {
		m.BringToFront(id)
	}
	if len(floating) > 0 {
		m.SetWMFocus(floating[len(floating)-1])
	}
}

// Minimize hides id. Its floating placement is remembered for Restore, it
// leaves the stack and, if it held WM focus, focus falls back to the first
// remaining window.
func (m *WindowManager) Minimize(id WindowID) {
	if m.IsMinimized(id) {
		return
	}
	w := m.windowMut(id)
	if w.Floating != nil && !w.Maximized {
		w.hidden = w.Floating
	} else if w.Maximized && w.PrevFloating != nil && !w.restoreTiled {
		w.hidden = w.PrevFloating
	}
	m.clearFloating(id)
	m.cancelGestures(id)
	m.zOrder = slices.DeleteFunc(m.zOrder, func(z WindowID) bool { return z == id })
	m.drawOrder = slices.DeleteFunc(m.drawOrder, func(z WindowID) bool { return z == id })
	w.Minimized = true
	m.dropFocus(id)
	m.logger.Debug("window minimized", "id", id)
}

// Restore shows a minimized window again on top of the stack. A window with
// neither a tile nor a remembered placement is tiled.
func (m *WindowManager) Restore(id WindowID) {
	w, ok := m.windows[id]
	if !ok || !w.Minimized {
		return
	}
	w.Minimized = false
	if w.hidden != nil {
		w.Floating = w.hidden
		w.hidden = nil
	}
	if w.Floating == nil && !m.layoutContains(id) && m.contract == WindowManaged {
		m.TileWindow(id)
	}
	m.BringToFront(id)
	m.SetWMFocus(id)
	if !slices.Contains(m.drawOrder, id) {
		m.drawOrder = append(m.drawOrder, id)
	}
	m.logger.Debug("window restored", "id", id)
}

// ToggleMaximize covers the managed area with id, or returns it to where it
// was before. A tiled window goes back to its tile.
func (m *WindowManager) ToggleMaximize(id WindowID) {
	w := m.windowMut(id)
	if w.Maximized {
		switch {
		case w.restoreTiled:
			w.Floating = nil
		case w.PrevFloating != nil:
			w.Floating = w.PrevFloating
		}
		w.Maximized = false
		w.PrevFloating = nil
		w.restoreTiled = false
		m.BringToFront(id)
		m.SetWMFocus(id)
		m.logger.Debug("window unmaximized", "id", id)
		return
	}

	switch {
	case w.Floating != nil:
		prev := *w.Floating
		w.PrevFloating = &prev
		w.restoreTiled = false
	case m.layoutContains(id):
		w.restoreTiled = true
		w.PrevFloating = nil
	default:
		prev := layout.FullArea()
		if r, ok := m.frames[id]; ok {
			prev = layout.Absolute(r)
		}
		w.PrevFloating = &prev
		w.restoreTiled = false
	}
	full := layout.Absolute(m.managedArea.Float())
	w.Floating = &full
	w.Maximized = true
	m.BringToFront(id)
	m.SetWMFocus(id)
	m.logger.Debug("window maximized", "id", id, "area", m.managedArea)
}

// Close drops id's placement, tile and stacking. App windows are queued for
// TakeClosedAppWindows.
func (m *WindowManager) Close(id WindowID) {
	m.cancelGestures(id)
	m.clearFloating(id)
	m.removeFromLayout(id)
	if w, ok := m.windows[id]; ok {
		w.Minimized = false
		w.hidden = nil
	}
	m.zOrder = slices.DeleteFunc(m.zOrder, func(z WindowID) bool { return z == id })
	m.drawOrder = slices.DeleteFunc(m.drawOrder, func(z WindowID) bool { return z == id })
	m.regions.Remove(id)
	delete(m.frames, id)
	m.dropFocus(id)
	if id == m.debugLogID {
		m.state.debugLogVisible = false
	}
	if app, ok := id.AsApp(); ok {
		m.closedApps = append(m.closedApps, app)
	}
	m.logger.Debug("window closed", "id", id)
}

// TileWindow puts id into the tree: it becomes the root of an empty tree or
// splits the focused tile to the right, falling back to splitting the root.
// A floating window that still owns a tile returns to it.
func (m *WindowManager) TileWindow(id WindowID) bool {
	m.windowMut(id)
	if m.layoutContains(id) {
		m.clearFloating(id)
		m.BringToFront(id)
		m.SetWMFocus(id)
		return true
	}
	m.clearFloating(id)
	if m.tiling == nil {
		m.tiling = layout.NewTilingLayout(layout.Leaf(id))
		m.BringToFront(id)
		m.SetWMFocus(id)
		m.logger.Debug("window tiled as root", "id", id)
		return true
	}
	focus := m.wmFocus.Current()
	if focus != id && slices.Contains(m.regions.IDs(), focus) && !m.IsFloating(focus) &&
		m.tiling.Root().InsertLeaf(focus, id, layout.InsertRight) {
		m.BringToFront(id)
		m.SetWMFocus(id)
		m.logger.Debug("window tiled", "id", id, "beside", focus)
		return true
	}
	m.tiling.SplitRoot(id, layout.InsertRight)
	m.BringToFront(id)
	m.SetWMFocus(id)
	m.logger.Debug("window tiled at root", "id", id)
	return true
}

// TileApp tiles an application window.
func (m *WindowManager) TileApp(id AppID) bool { return m.TileWindow(AppWindow(id)) }

// FloatWindow detaches a tiled window at its current frame. The tile is
// released.
func (m *WindowManager) FloatWindow(id WindowID) bool {
	if m.IsFloating(id) {
		return true
	}
	frame, ok := m.frames[id]
	if !ok || !m.detachToFloating(id, frame) {
		return false
	}
	m.removeFromLayout(id)
	return true
}

// detachToFloating gives a tiled window a floating placement at frame while
// its leaf stays in the tree as a reserved slot.
func (m *WindowManager) detachToFloating(id WindowID, frame layout.FloatRect) bool {
	if m.IsFloating(id) {
		return true
	}
	if m.tiling == nil {
		return false
	}
	frame.Width = max(frame.Width, 1)
	frame.Height = max(frame.Height, 1)
	m.SetFloating(id, layout.Absolute(frame))
	m.BringToFront(id)
	m.logger.Debug("window detached", "id", id, "frame", frame)
	return true
}

// ToggleDebugWindow shows or hides the diagnostic window.
func (m *WindowManager) ToggleDebugWindow() {
	if m.state.debugLogVisible {
		m.HideDebugWindow()
		return
	}
	m.ShowDebugWindow()
}

// ShowDebugWindow tiles, raises and focuses the diagnostic window.
func (m *WindowManager) ShowDebugWindow() {
	m.state.debugLogVisible = true
	if w, ok := m.windows[m.debugLogID]; ok {
		w.Minimized = false
	}
	m.ensureDebugLogInLayout()
	m.BringToFront(m.debugLogID)
	m.SetWMFocus(m.debugLogID)
}

// HideDebugWindow removes the diagnostic window from the tree and stack.
func (m *WindowManager) HideDebugWindow() {
	m.state.debugLogVisible = false
	m.cancelGestures(m.debugLogID)
	m.clearFloating(m.debugLogID)
	m.removeFromLayout(m.debugLogID)
	m.zOrder = slices.DeleteFunc(m.zOrder, func(z WindowID) bool { return z == m.debugLogID })
	m.drawOrder = slices.DeleteFunc(m.drawOrder, func(z WindowID) bool { return z == m.debugLogID })
	m.dropFocus(m.debugLogID)
}

func (m *WindowManager) ensureDebugLogInLayout() {
	if m.contract != WindowManaged {
		return
	}
	id := m.debugLogID
	m.windowMut(id)
	if m.layoutContains(id) || m.IsFloating(id) || m.IsMinimized(id) {
		return
	}
	if m.tiling == nil {
		m.tiling = layout.NewTilingLayout(layout.Leaf(id))
		return
	}
	focus := m.wmFocus.Current()
	m.TileWindow(id)
	if focus != id {
		m.wmFocus.SetCurrent(focus)
	}
}

// HitTest returns the topmost window whose visible frame contains (x, y).
func (m *WindowManager) HitTest(x, y int) (WindowID, bool) {
	for i := len(m.drawOrder) - 1; i >= 0; i-- {
		id := m.drawOrder[i]
		if r, ok := m.regions.Get(id); ok && r.Contains(x, y) {
			return id, true
		}
	}
	return WindowID{}, false
}

// HitTestApps returns the first of ids whose region contains (x, y).
func (m *WindowManager) HitTestApps(x, y int, ids []AppID) (AppID, bool) {
	for _, id := range ids {
		if r, ok := m.regions.Get(AppWindow(id)); ok && r.Contains(x, y) {
			return id, true
		}
	}
	return 0, false
}

// dropFocus removes id from the WM ring; if it held focus, focus falls back
// to the first remaining entry.
func (m *WindowManager) dropFocus(id WindowID) {
	focused := m.wmFocus.Current() == id
	m.wmFocus.SetOrder(slices.DeleteFunc(slices.Clone(m.wmFocus.Order()), func(z WindowID) bool { return z == id }))
	if focused {
		m.selectFallbackFocus()
	}
}

func (m *WindowManager) cancelGestures(id WindowID) {
	if m.drag != nil && m.drag.id == id {
		m.drag = nil
	}
	if m.resize != nil && m.resize.id == id {
		m.resize = nil
	}
}
