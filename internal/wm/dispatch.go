package wm

import (
	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// HandleManagedEvent runs the manager's own input handling in WindowManaged
// mode: panel clicks, the debug log, edge resizes, header gestures and split
// handle drags. It returns true when ev was consumed.
func (m *WindowManager) HandleManagedEvent(ev ui.Event) bool {
	if m.contract != WindowManaged {
		return false
	}
	switch e := ev.(type) {
	case ui.MouseEvent:
		if e.Kind == ui.MouseDown && m.panelActive() && m.panel.Contains(e.X, e.Y) {
			return m.handlePanelClick(e)
		}
		if m.routeDebugLogMouse(e) {
			return true
		}
		m.hover = &[2]int{e.X, e.Y}
		if m.handleResizeEvent(e) {
			return true
		}
		if m.handleHeaderEvent(e) {
			return true
		}
		return m.handleTilingPointer(e)

	case ui.KeyEvent:
		if m.wmFocus.Current() == m.debugLogID && m.state.debugLogVisible {
			return m.debugLog.HandleEvent(e, ui.Context{Focused: true, Now: m.now()})
		}
	}
	return false
}

func (m *WindowManager) handlePanelClick(e ui.MouseEvent) bool {
	switch {
	case m.panel.HitMenuButton(e.X, e.Y):
		if m.MenuVisible() {
			m.CloseMenu()
		} else {
			m.OpenMenu()
		}
	case m.panel.HitCaptureBadge(e.X, e.Y):
		m.ToggleMouseCapture()
	default:
		i, ok := m.panel.HitItem(e.X, e.Y)
		if !ok {
			return true
		}
		display := m.BuildDisplayOrder()
		if i >= len(display) {
			return true
		}
		id := display[i]
		if m.IsMinimized(id) {
			m.Restore(id)
		}
		m.SetWMFocus(id)
		m.BringToFront(id)
	}
	m.arrangePanel()
	return true
}

// routeDebugLogMouse sends wheel and clicks inside the debug log content to
// it. A press outside while it holds focus hands focus to whatever is under
// the pointer and is not consumed.
func (m *WindowManager) routeDebugLogMouse(e ui.MouseEvent) bool {
	if !m.state.debugLogVisible || m.drag != nil || m.resize != nil {
		return false
	}
	if m.tiling != nil && m.tiling.Dragging() {
		return false
	}
	id := m.debugLogID
	inner := m.Region(id)
	top, ok := m.HitTest(e.X, e.Y)
	inside := ok && top == id && inner.Contains(e.X, e.Y)
	if !inside {
		if e.Kind == ui.MouseDown && m.wmFocus.Current() == id && ok && top != id {
			m.SetWMFocus(top)
		}
		return false
	}
	if e.Kind == ui.MouseDown {
		m.SetWMFocus(id)
		m.BringToFront(id)
	}
	origin, _ := m.innerFrame(id)
	m.debugLog.HandleEvent(e.Translate(origin.X, origin.Y), ui.Context{Focused: true, Now: m.now()})
	return true
}

func (m *WindowManager) handleTilingPointer(e ui.MouseEvent) bool {
	if m.tiling == nil {
		return false
	}
	var kind layout.PointerKind
	switch e.Kind {
	case ui.MouseDown:
		if e.Button != ui.ButtonLeft {
			return false
		}
		// Floating windows above a gap hide the handle underneath.
		if _, hit := m.HitTest(e.X, e.Y); hit {
			return false
		}
		kind = layout.PointerDown
	case ui.MouseDrag:
		kind = layout.PointerDrag
	case ui.MouseUp:
		kind = layout.PointerUp
	case ui.MouseMoved:
		kind = layout.PointerMove
	default:
		return false
	}
	if m.tiling.HandlePointer(kind, e.X, e.Y, m.managedArea) {
		if kind == layout.PointerUp {
			m.logger.Debug("split resized")
		}
		return true
	}
	return false
}

// HandleFocusEvent moves focus for Tab/Shift+Tab and pointer presses. In
// AppManaged mode a press focuses the first of hitTargets under the
// pointer. It returns true when focus moved; presses are never consumed.
func (m *WindowManager) HandleFocusEvent(ev ui.Event, hitTargets []AppID) bool {
	switch e := ev.(type) {
	case ui.KeyEvent:
		if !e.IsPress() || e.Code != ui.KeyTab {
			return false
		}
		forward := !e.Mods.Has(ui.ModShift)
		if m.contract == WindowManaged {
			m.AdvanceWMFocus(forward)
			m.BringFocusToFront()
		} else {
			m.AdvanceFocus(forward)
		}
		return true

	case ui.MouseEvent:
		if e.Kind != ui.MouseDown {
			return false
		}
		if m.contract == WindowManaged {
			id, ok := m.HitTest(e.X, e.Y)
			if !ok || id == m.wmFocus.Current() {
				return false
			}
			m.SetWMFocus(id)
			m.BringToFront(id)
			return true
		}
		id, ok := m.HitTestApps(e.X, e.Y, hitTargets)
		if !ok || id == m.appFocus.Current() {
			return false
		}
		m.SetFocus(id)
		return true
	}
	return false
}

// ContentEvent returns ev as seen by the component of id: mouse events are
// shifted to the content origin and dropped when outside the visible content.
func (m *WindowManager) ContentEvent(id WindowID, ev ui.Event) (ui.Event, bool) {
	e, ok := ev.(ui.MouseEvent)
	if !ok {
		return ev, true
	}
	if !m.Region(id).Contains(e.X, e.Y) {
		return nil, false
	}
	origin, ok := m.innerFrame(id)
	if !ok {
		return nil, false
	}
	return e.Translate(origin.X, origin.Y), true
}

// DispatchToComponent delivers ev to comp, the component shown in id, with
// mouse coordinates rebased to its content. A panicking component is logged
// and reported as not handling the event.
func (m *WindowManager) DispatchToComponent(id WindowID, comp ui.Component, ev ui.Event) bool {
	local, ok := m.ContentEvent(id, ev)
	if !ok {
		return false
	}
	handled := false
	m.guard(id, "event", func() {
		handled = comp.HandleEvent(local, ui.Context{Focused: id == m.wmFocus.Current(), Now: m.now()})
	})
	return handled
}

// ApplyMenuAction performs the actions the manager owns and reports whether
// it did. MenuNewWindow and MenuHelp are left to the host.
func (m *WindowManager) ApplyMenuAction(a MenuAction) bool {
	focus := m.wmFocus.Current()
	_, known := m.windows[focus]
	switch a {
	case MenuNone:
		return false
	case MenuClose:
		m.CloseMenu()
	case MenuToggleMouseCapture:
		m.ToggleMouseCapture()
		m.arrangeMenu()
		return true
	case MenuFloatingFront:
		m.BringAllFloatingToFront()
	case MenuToggleDebugLog:
		m.ToggleDebugWindow()
	case MenuExit:
		m.OpenExitConfirm()
		return true
	case MenuMinimize:
		if known {
			m.Minimize(focus)
		}
	case MenuMaximize:
		if known {
			m.ToggleMaximize(focus)
		}
	case MenuCloseWindow:
		if known {
			m.Close(focus)
		}
	case MenuTile:
		if known {
			m.TileWindow(focus)
		}
	case MenuFloat:
		if known {
			m.FloatWindow(focus)
		}
	default:
		return false
	}
	m.CloseMenu()
	return true
}
