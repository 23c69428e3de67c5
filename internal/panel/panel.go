// Package panel draws the top bar: the menu button, the window list and the
// status badges, plus the dropdown menu anchored under the button.
package panel

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// MenuLabel is the text of the menu button.
const MenuLabel = "≡ termwm"

const captureIcon = "🖱"

// Item is one entry of the window list.
type Item struct {
	Label     string
	Focused   bool
	Minimized bool
}

type hit struct {
	rect  layout.Rect
	index int
}

// Panel holds the panel configuration and the hit rectangles computed by the
// last Arrange call. Arrange runs during layout registration so that input
// handled before the next render sees this frame's geometry.
type Panel struct {
	visible bool
	height  int
	area    layout.Rect

	menuButton   layout.Rect
	captureBadge layout.Rect
	statusBadge  layout.Rect
	itemHits     []hit

	items     []Item
	captureOn bool
	menuOpen  bool
	status    string

	menu Menu
}

// New returns a visible one-row panel.
func New() *Panel {
	return &Panel{visible: true, height: 1}
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p.visible }

// SetVisible shows or hides the panel.
func (p *Panel) SetVisible(v bool) { p.visible = v }

// Height returns the reserved row count.
func (p *Panel) Height() int { return p.height }

// SetHeight sets the reserved row count; it is at least one.
func (p *Panel) SetHeight(h int) { p.height = max(h, 1) }

// Area returns the panel rectangle from the last SplitArea.
func (p *Panel) Area() layout.Rect { return p.area }

// SplitArea reserves the panel rows at the top of area and returns the panel
// and the remaining managed area. An inactive panel takes no space.
func (p *Panel) SplitArea(active bool, area layout.Rect) (layout.Rect, layout.Rect) {
	if !active {
		p.area = layout.Rect{}
		return layout.Rect{}, area
	}
	h := min(p.height, area.Height)
	p.area = layout.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: h}
	managed := layout.Rect{X: area.X, Y: area.Y + h, Width: area.Width, Height: max(area.Height-h, 0)}
	return p.area, managed
}

// Arrange lays out the panel row for this frame. status is an optional
// badge shown left of the mouse capture badge when it fits.
func (p *Panel) Arrange(items []Item, captureOn, menuOpen bool, status string) {
	p.items = append(p.items[:0], items...)
	p.captureOn = captureOn
	p.menuOpen = menuOpen
	p.status = status
	p.menuButton = layout.Rect{}
	p.captureBadge = layout.Rect{}
	p.statusBadge = layout.Rect{}
	p.itemHits = p.itemHits[:0]

	area := p.area
	if area.Empty() {
		return
	}
	x, y := area.X, area.Y
	maxX := area.Right()

	if w := ansi.StringWidth(MenuLabel); x+w <= maxX {
		p.menuButton = layout.Rect{X: x, Y: y, Width: w, Height: 1}
		x += w
	}
	if x < maxX {
		x++
	}

	badge := captureLabel(captureOn)
	bw := ansi.StringWidth(badge)
	badgeX := maxX - bw
	if bw >= area.Width {
		badgeX = area.X
	}
	p.captureBadge = layout.Rect{X: badgeX, Y: y, Width: min(bw, maxX-badgeX), Height: 1}
	listEnd := badgeX - 1

	if status != "" {
		sw := ansi.StringWidth(status)
		sx := badgeX - 1 - sw
		if sx > x+8 {
			p.statusBadge = layout.Rect{X: sx, Y: y, Width: sw, Height: 1}
			listEnd = sx - 1
		}
	}

	for i, item := range items {
		room := listEnd - x
		if room < 3 {
			break
		}
		label := item.Label
		if ansi.StringWidth(label)+2 > room {
			label = ansi.Truncate(label, room-2, "…")
		}
		w := ansi.StringWidth(" " + label + " ")
		p.itemHits = append(p.itemHits, hit{rect: layout.Rect{X: x, Y: y, Width: w, Height: 1}, index: i})
		p.items[i].Label = label
		x += w
	}
}

func captureLabel(on bool) string {
	if on {
		return captureIcon + " mouse capture: on"
	}
	return captureIcon + " mouse capture: off"
}

// HitMenuButton reports whether (x, y) is on the menu button.
func (p *Panel) HitMenuButton(x, y int) bool { return p.menuButton.Contains(x, y) }

// HitCaptureBadge reports whether (x, y) is on the mouse capture badge.
func (p *Panel) HitCaptureBadge(x, y int) bool { return p.captureBadge.Contains(x, y) }

// HitItem returns the index of the window list entry under (x, y).
func (p *Panel) HitItem(x, y int) (int, bool) {
	for _, h := range p.itemHits {
		if h.rect.Contains(x, y) {
			return h.index, true
		}
	}
	return 0, false
}

// Contains reports whether (x, y) is on the panel.
func (p *Panel) Contains(x, y int) bool { return p.area.Contains(x, y) }

// MenuButton returns the menu button rectangle.
func (p *Panel) MenuButton() layout.Rect { return p.menuButton }

// Menu returns the dropdown menu state.
func (p *Panel) Menu() *Menu { return &p.menu }

// Render paints the panel row.
func (p *Panel) Render(c *ui.Canvas) {
	area := p.area
	if area.Empty() {
		return
	}
	base := ui.Style{Fg: theme.PanelFg(), Bg: theme.PanelBg()}
	c.Fill(area, " ", base)

	if !p.menuButton.Empty() {
		style := ui.Style{Fg: theme.PanelAccent(), Bg: theme.PanelBg(), Bold: true}
		if p.menuOpen {
			style = ui.Style{Fg: theme.MenuFg(), Bg: theme.MenuBg(), Bold: true}
		}
		c.SetString(p.menuButton.X, p.menuButton.Y, MenuLabel, style, area)
	}

	for _, h := range p.itemHits {
		item := p.items[h.index]
		style := base
		switch {
		case item.Focused:
			bg, fg := theme.MenuSelected()
			style = ui.Style{Fg: fg, Bg: bg, Bold: true}
		case item.Minimized:
			style = ui.Style{Fg: theme.PanelMinimized(), Bg: theme.PanelBg(), Italic: true}
		}
		c.SetString(h.rect.X, h.rect.Y, " "+item.Label+" ", style, area)
	}

	if !p.statusBadge.Empty() {
		c.SetString(p.statusBadge.X, p.statusBadge.Y, p.status, ui.Style{Fg: theme.PanelFg(), Bg: theme.PanelBg(), Faint: true}, area)
	}

	if !p.captureBadge.Empty() {
		style := ui.Style{Fg: theme.CaptureOff(), Bg: theme.PanelBg()}
		if p.captureOn {
			style = ui.Style{Fg: theme.CaptureOn(), Bg: theme.PanelBg(), Bold: true}
		}
		c.SetString(p.captureBadge.X, p.captureBadge.Y, captureLabel(p.captureOn), style, area)
	}
}
