package wm

import "github.com/Gaurav-Gosain/termwm/internal/layout"

// Window is the per-id record. Records are created lazily on first
// reference and never removed; closing only clears placement.
type Window struct {
	Title     string
	Minimized bool
	// Floating is set while the window floats.
	Floating *layout.FloatRectSpec
	// PrevFloating is the placement to restore when leaving maximize.
	PrevFloating *layout.FloatRectSpec
	// Maximized marks a floating placement that tracks the managed area.
	Maximized bool
	// restoreTiled means leaving maximize returns the window to its tile.
	restoreTiled bool
	// hidden is the floating placement remembered while minimized.
	hidden        *layout.FloatRectSpec
	creationOrder uint64
}

// IsFloating reports whether the window has a floating placement.
func (w *Window) IsFloating() bool { return w.Floating != nil }

func (m *WindowManager) windowMut(id WindowID) *Window {
	if w, ok := m.windows[id]; ok {
		return w
	}
	m.nextSeq++
	w := &Window{creationOrder: m.nextSeq}
	m.windows[id] = w
	return w
}

// WindowInfo returns a copy of the record of id.
func (m *WindowManager) WindowInfo(id WindowID) (Window, bool) {
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// IsMinimized reports whether id is minimized.
func (m *WindowManager) IsMinimized(id WindowID) bool {
	w, ok := m.windows[id]
	return ok && w.Minimized
}

// IsFloating reports whether id floats.
func (m *WindowManager) IsFloating(id WindowID) bool {
	w, ok := m.windows[id]
	return ok && w.Floating != nil
}

// IsMaximized reports whether id is maximized.
func (m *WindowManager) IsMaximized(id WindowID) bool {
	w, ok := m.windows[id]
	return ok && w.Maximized
}

// FloatingSpec returns the floating placement of id.
func (m *WindowManager) FloatingSpec(id WindowID) (layout.FloatRectSpec, bool) {
	w, ok := m.windows[id]
	if !ok || w.Floating == nil {
		return layout.FloatRectSpec{}, false
	}
	return *w.Floating, true
}

// SetFloating places id as a floating window at spec.
func (m *WindowManager) SetFloating(id WindowID, spec layout.FloatRectSpec) {
	w := m.windowMut(id)
	w.Floating = &spec
	w.Maximized = false
	w.PrevFloating = nil
}

func (m *WindowManager) clearFloating(id WindowID) {
	if w, ok := m.windows[id]; ok {
		w.Floating = nil
		w.Maximized = false
		w.PrevFloating = nil
		w.restoreTiled = false
	}
}

func (m *WindowManager) clearAllFloating() {
	for id := range m.windows {
		m.clearFloating(id)
	}
}

// SetTitle sets the display title of id.
func (m *WindowManager) SetTitle(id WindowID, title string) {
	m.windowMut(id).Title = title
}

// SetAppTitle sets the display title of an application window.
func (m *WindowManager) SetAppTitle(id AppID, title string) {
	m.SetTitle(AppWindow(id), title)
}

// Title returns the display title of id, falling back to its id.
func (m *WindowManager) Title(id WindowID) string {
	if w, ok := m.windows[id]; ok && w.Title != "" {
		return w.Title
	}
	if id == m.debugLogID {
		return m.debugLog.Title()
	}
	return id.String()
}

// Touch registers id so that it takes its place in creation order.
func (m *WindowManager) Touch(id WindowID) {
	m.windowMut(id)
}
