package wm

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// DrawTask is one window to paint, back to front.
type DrawTask struct {
	ID WindowID
	// Full is the signed frame including chrome.
	Full layout.FloatRect
	// Inner is the signed content rectangle; zero when the frame is too
	// small for content.
	Inner layout.FloatRect
	// Dest is the on-screen part of Inner.
	Dest    layout.Rect
	Focused bool
	Kind    WindowKind
}

// HasContent reports whether the task has room for a component.
func (t DrawTask) HasContent() bool { return !t.Inner.Empty() && !t.Dest.Empty() }

// WindowDrawPlan lists the active windows in draw order.
func (m *WindowManager) WindowDrawPlan() []DrawTask {
	focus := m.wmFocus.Current()
	tasks := make([]DrawTask, 0, len(m.drawOrder))
	for _, id := range m.drawOrder {
		full, ok := m.frames[id]
		if !ok {
			continue
		}
		t := DrawTask{ID: id, Full: full, Focused: id == focus, Kind: id.Kind}
		if inner, ok := m.innerFrame(id); ok {
			t.Inner = inner
			t.Dest = inner.Visible(m.managedArea)
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// ComponentLookup resolves the component shown in an app window.
type ComponentLookup func(AppID) (ui.Component, bool)

// Render paints every window, then the chrome layers above them. Content
// is drawn into a scratch canvas sized to the signed content rectangle and
// clipped on the way onto c.
func (m *WindowManager) Render(c *ui.Canvas, lookup ComponentLookup) {
	m.debugLog.Sync()
	for _, t := range m.WindowDrawPlan() {
		m.renderWindow(c, t, lookup)
	}
	m.RenderOverlays(c)
}

func (m *WindowManager) component(id WindowID, lookup ComponentLookup) (ui.Component, bool) {
	if id == m.debugLogID {
		return m.debugLog, true
	}
	app, ok := id.AsApp()
	if !ok || lookup == nil {
		return nil, false
	}
	return lookup(app)
}

func (m *WindowManager) renderWindow(c *ui.Canvas, t DrawTask, lookup ComponentLookup) {
	visible := t.Full.Visible(m.managedArea)
	if m.contract == WindowManaged {
		c.Fill(visible, " ", ui.Style{Bg: theme.WindowBg()})
		m.decorator.Render(c, t.Full, m.managedArea, m.Title(t.ID), t.Focused)
	}
	if !t.HasContent() {
		return
	}
	comp, ok := m.component(t.ID, lookup)
	if !ok {
		return
	}
	if m.scratch == nil {
		m.scratch = ui.NewCanvas(t.Inner.Width, t.Inner.Height)
	} else {
		m.scratch.Resize(t.Inner.Width, t.Inner.Height)
		m.scratch.Clear()
	}
	area := layout.Rect{Width: t.Inner.Width, Height: t.Inner.Height}
	ok = m.guard(t.ID, "render", func() {
		comp.Resize(area)
		comp.Render(m.scratch, area, ui.Context{Focused: t.Focused, Now: m.now()})
	})
	if ok {
		c.Blit(m.scratch, t.Inner.X, t.Inner.Y, t.Dest)
	}
}

// guard runs fn and turns a panic inside a component into a debug log
// entry. The debug window is shown so the failure is visible.
func (m *WindowManager) guard(id WindowID, op string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			m.logger.Error("component panicked", "id", id, "op", op, "panic", r)
			if id != m.debugLogID && !m.state.debugLogVisible {
				m.ShowDebugWindow()
			}
		}
	}()
	fn()
	return true
}

// RenderOverlays paints split handles, the resize outline, the snap
// preview, the panel and the active overlay.
func (m *WindowManager) RenderOverlays(c *ui.Canvas) {
	if m.contract == WindowManaged {
		m.renderHandles(c)
		m.renderResizeOutline(c)
		if r, ok := m.SnapPreview(); ok {
			c.Restyle(r.Intersect(m.managedArea), func(s ui.Style) ui.Style {
				s.Bg = theme.SnapPreview()
				return s
			})
		}
	}
	if m.panelActive() {
		m.panel.Render(c)
	}
	switch o := m.overlay.(type) {
	case *MenuOverlay:
		m.panel.Menu().Render(c, m.panel.MenuButton())
	case *ConfirmOverlay:
		o.Render(c, m.screen)
	case *HelpOverlay:
		o.Render(c, m.screen)
	}
}

// renderHandles draws the gaps between tiles. Cells covered by a window are
// left alone.
func (m *WindowManager) renderHandles(c *ui.Canvas) {
	if m.tiling == nil {
		return
	}
	hovered, hasHover := m.tiling.HoveredHandle(m.managedArea)
	for _, h := range m.handles {
		style := ui.Style{Fg: theme.HandleIdle()}
		if hasHover && h.Rect == hovered.Rect {
			style.Fg = theme.HandleHover()
		}
		glyph := "│"
		if h.Direction == layout.Vertical {
			glyph = "─"
		}
		// The center line of the gap carries the glyph.
		var mid layout.Rect
		if h.Direction == layout.Vertical {
			mid = layout.Rect{X: h.Rect.X, Y: h.Rect.Y + h.Rect.Height/2, Width: h.Rect.Width, Height: 1}
		} else {
			mid = layout.Rect{X: h.Rect.X + h.Rect.Width/2, Y: h.Rect.Y, Width: 1, Height: h.Rect.Height}
		}
		mid = mid.Intersect(m.managedArea)
		for y := mid.Y; y < mid.Bottom(); y++ {
			for x := mid.X; x < mid.Right(); x++ {
				if _, covered := m.HitTest(x, y); covered {
					continue
				}
				c.SetCell(x, y, glyph, style)
			}
		}
	}
}

// renderResizeOutline highlights the border of the floating window being
// resized, or the one under the pointer.
func (m *WindowManager) renderResizeOutline(c *ui.Canvas) {
	var id WindowID
	switch {
	case m.resize != nil:
		id = m.resize.id
	case m.hover != nil && m.drag == nil:
		hit, ok := m.HitTest(m.hover[0], m.hover[1])
		if !ok || !m.IsFloating(hit) || m.IsMaximized(hit) {
			return
		}
		id = hit
	default:
		return
	}
	frame, ok := m.frames[id]
	if !ok {
		return
	}
	c.BorderIn(signedRect(frame), lipgloss.RoundedBorder(), ui.Style{Fg: theme.ResizeOutline(), Bg: theme.WindowBg()}, m.managedArea)
}

// RenderText renders the whole UI to a plain string. It is meant for
// headless checks and golden comparisons.
func (m *WindowManager) RenderText(width, height int, lookup ComponentLookup) string {
	c := ui.NewCanvas(width, height)
	m.Render(c, lookup)
	lines := make([]string, height)
	for y := range lines {
		lines[y] = strings.TrimRight(c.Line(y), " ")
	}
	return strings.Join(lines, "\n")
}
