package panel

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// MenuItem is one dropdown entry. Icon may be empty.
type MenuItem struct {
	Icon  string
	Label string
}

// Menu is the dropdown anchored under the menu button.
type Menu struct {
	open      bool
	bounds    layout.Rect
	itemRects []layout.Rect
	items     []MenuItem
	selected  int
}

// Arrange opens the menu under anchor and lays out its items within screen.
func (m *Menu) Arrange(anchor layout.Rect, items []MenuItem, selected int, screen layout.Rect) {
	m.Close()
	if anchor.Empty() || len(items) == 0 {
		return
	}
	startX, startY := anchor.X, anchor.Bottom()
	if startX < screen.X || startX >= screen.Right() || startY >= screen.Bottom() {
		return
	}
	labelWidth, iconWidth := 1, 0
	for _, it := range items {
		labelWidth = max(labelWidth, ansi.StringWidth(it.Label))
		iconWidth = max(iconWidth, ansi.StringWidth(it.Icon))
	}
	width := min(labelWidth+iconWidth+6, max(screen.Right()-startX, 1))
	height := min(len(items)+2, max(screen.Bottom()-startY, 1))

	m.open = true
	m.items = append(m.items[:0], items...)
	m.selected = selected
	m.bounds = layout.Rect{X: startX, Y: startY, Width: width, Height: height}
	for i := range items {
		y := startY + 1 + i
		if y >= m.bounds.Bottom()-1 {
			break
		}
		m.itemRects = append(m.itemRects, layout.Rect{X: startX, Y: y, Width: width, Height: 1})
	}
}

// Close hides the menu and forgets its geometry.
func (m *Menu) Close() {
	m.open = false
	m.bounds = layout.Rect{}
	m.itemRects = m.itemRects[:0]
	m.items = m.items[:0]
}

// IsOpen reports whether the menu is shown.
func (m *Menu) IsOpen() bool { return m.open }

// Bounds returns the menu rectangle including its border.
func (m *Menu) Bounds() layout.Rect { return m.bounds }

// Contains reports whether (x, y) is inside the menu.
func (m *Menu) Contains(x, y int) bool { return m.open && m.bounds.Contains(x, y) }

// HitItem returns the item row under (x, y). Rows span the full menu width.
func (m *Menu) HitItem(x, y int) (int, bool) {
	if !m.open {
		return 0, false
	}
	for i, r := range m.itemRects {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// Render dims everything outside the menu and the anchor, then draws the
// bordered dropdown.
func (m *Menu) Render(c *ui.Canvas, anchor layout.Rect) {
	if !m.open {
		return
	}
	bounds := c.Bounds()
	for y := bounds.Y; y < bounds.Bottom(); y++ {
		for x := bounds.X; x < bounds.Right(); x++ {
			if m.bounds.Contains(x, y) || anchor.Contains(x, y) {
				continue
			}
			c.Restyle(layout.Rect{X: x, Y: y, Width: 1, Height: 1}, func(s ui.Style) ui.Style {
				s.Faint = true
				return s
			})
		}
	}

	base := ui.Style{Fg: theme.MenuFg(), Bg: theme.MenuBg()}
	c.Fill(m.bounds, " ", base)
	c.Border(m.bounds, lipgloss.RoundedBorder(), ui.Style{Fg: theme.MenuBorder(), Bg: theme.MenuBg()})

	selBg, selFg := theme.MenuSelected()
	inner := layout.Rect{X: m.bounds.X + 1, Y: m.bounds.Y, Width: max(m.bounds.Width-2, 0), Height: m.bounds.Height}
	for i, r := range m.itemRects {
		item := m.items[i]
		marker := " "
		style := base
		if i == m.selected {
			marker = ">"
			style = ui.Style{Fg: selFg, Bg: selBg, Bold: true}
			c.Fill(layout.Rect{X: inner.X, Y: r.Y, Width: inner.Width, Height: 1}, " ", style)
		}
		line := marker + "   " + item.Label
		if item.Icon != "" {
			line = marker + " " + item.Icon + " " + item.Label
		}
		c.SetString(inner.X, r.Y, ansi.Truncate(line, inner.Width, ""), style, inner)
	}
}
