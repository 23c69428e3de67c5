package wm

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// Overlay is the modal layer above the windows. It is one of *MenuOverlay,
// *ConfirmOverlay or *HelpOverlay; nil means no overlay.
type Overlay interface {
	overlay()
}

// MenuOverlay is the WM menu dropped from the panel button.
type MenuOverlay struct{}

func (*MenuOverlay) overlay() {}

// ConfirmAction is the outcome of a confirm dialog event.
type ConfirmAction int

const (
	// ConfirmNone means the dialog is still open.
	ConfirmNone ConfirmAction = iota
	// ConfirmAccept means the user confirmed.
	ConfirmAccept
	// ConfirmCancel means the user backed out.
	ConfirmCancel
)

const (
	confirmWidth  = 60
	confirmHeight = 9
	cancelLabel   = "[ Cancel ]"
	confirmLabel  = "[ Exit ]"
)

// ConfirmOverlay is a yes/no dialog centered on the screen.
type ConfirmOverlay struct {
	Title   string
	Body    string
	confirm bool
}

func (*ConfirmOverlay) overlay() {}

// NewConfirm returns a dialog with the confirm button selected.
func NewConfirm(title, body string) *ConfirmOverlay {
	return &ConfirmOverlay{Title: title, Body: body, confirm: true}
}

// ConfirmSelected reports whether the confirm button is highlighted.
func (d *ConfirmOverlay) ConfirmSelected() bool { return d.confirm }

type confirmGeometry struct {
	box, body, cancel, accept layout.Rect
	separatorY                int
}

func (d *ConfirmOverlay) geometry(screen layout.Rect) confirmGeometry {
	w := min(confirmWidth, screen.Width)
	h := min(confirmHeight, screen.Height)
	box := layout.Rect{
		X:      screen.X + (screen.Width-w)/2,
		Y:      screen.Y + (screen.Height-h)/2,
		Width:  w,
		Height: h,
	}
	g := confirmGeometry{box: box}
	content := layout.Rect{X: box.X + 2, Y: box.Y + 1, Width: max(box.Width-4, 0), Height: max(box.Height-2, 0)}
	if content.Height < 4 || content.Width == 0 {
		return g
	}
	g.separatorY = content.Bottom() - 2
	buttonY := content.Bottom() - 1
	g.body = layout.Rect{X: content.X, Y: content.Y, Width: content.Width, Height: content.Height - 3}
	total := ansi.StringWidth(cancelLabel) + 1 + ansi.StringWidth(confirmLabel)
	startX := content.X + max(content.Width-total, 0)
	g.cancel = layout.Rect{X: startX, Y: buttonY, Width: ansi.StringWidth(cancelLabel), Height: 1}
	g.accept = layout.Rect{X: g.cancel.Right() + 1, Y: buttonY, Width: ansi.StringWidth(confirmLabel), Height: 1}
	return g
}

// HandleEvent maps keys and clicks to a ConfirmAction.
func (d *ConfirmOverlay) HandleEvent(ev ui.Event, screen layout.Rect) ConfirmAction {
	switch e := ev.(type) {
	case ui.MouseEvent:
		if e.Kind != ui.MouseDown {
			return ConfirmNone
		}
		g := d.geometry(screen)
		switch {
		case g.accept.Contains(e.X, e.Y):
			return ConfirmAccept
		case g.cancel.Contains(e.X, e.Y):
			return ConfirmCancel
		}
	case ui.KeyEvent:
		if !e.IsPress() {
			return ConfirmNone
		}
		switch {
		case e.Code == ui.KeyTab, e.Code == ui.KeyLeft, e.Code == ui.KeyRight:
			d.confirm = !d.confirm
		case e.Code == ui.KeyEnter:
			if d.confirm {
				return ConfirmAccept
			}
			return ConfirmCancel
		case e.Keystroke == "y":
			return ConfirmAccept
		case e.Keystroke == "n", e.Code == ui.KeyEsc:
			return ConfirmCancel
		}
	}
	return ConfirmNone
}

// Render dims the screen and draws the dialog.
func (d *ConfirmOverlay) Render(c *ui.Canvas, screen layout.Rect) {
	dim(c, screen, layout.Rect{})
	g := d.geometry(screen)
	if g.box.Width < 3 || g.box.Height < 3 {
		return
	}
	bg := ui.Style{Fg: theme.MenuFg(), Bg: theme.MenuBg()}
	c.Fill(g.box, " ", bg)
	c.Border(g.box, lipgloss.RoundedBorder(), ui.Style{Fg: theme.MenuBorder(), Bg: theme.MenuBg()})
	if d.Title != "" {
		title := " " + ansi.Truncate(d.Title, max(g.box.Width-4, 0), "…") + " "
		c.SetString(g.box.X+2, g.box.Y, title, ui.Style{Fg: theme.HelpTitle(), Bg: theme.MenuBg(), Bold: true}, g.box)
	}
	if g.body.Empty() {
		return
	}
	wrapped := ansi.Wordwrap(d.Body, g.body.Width, "")
	for i, line := range strings.Split(wrapped, "\n") {
		if i >= g.body.Height {
			break
		}
		c.SetString(g.body.X, g.body.Y+i, strings.TrimSpace(line), bg, g.body)
	}
	sep := ui.Style{Fg: theme.LogMuted(), Bg: theme.MenuBg()}
	c.SetString(g.body.X, g.separatorY, strings.Repeat("─", g.body.Width), sep, g.box)

	selBg, selFg := theme.MenuSelected()
	active := ui.Style{Fg: selFg, Bg: selBg, Bold: true}
	idle := ui.Style{Fg: theme.MenuFg(), Bg: theme.HandleIdle()}
	cancelStyle, acceptStyle := active, idle
	if d.confirm {
		cancelStyle, acceptStyle = idle, active
	}
	c.SetString(g.cancel.X, g.cancel.Y, cancelLabel, cancelStyle, g.box)
	c.SetString(g.accept.X, g.accept.Y, confirmLabel, acceptStyle, g.box)
}

// HelpLine is one row of the help overlay. An empty Key renders Text as a
// section heading.
type HelpLine struct {
	Key  string
	Text string
}

// HelpOverlay is a scrollable list of key bindings.
type HelpOverlay struct {
	Title  string
	Lines  []HelpLine
	offset int
}

func (*HelpOverlay) overlay() {}

// NewHelp returns a help overlay.
func NewHelp(title string, lines []HelpLine) *HelpOverlay {
	return &HelpOverlay{Title: title, Lines: lines}
}

// Offset returns the first visible line.
func (h *HelpOverlay) Offset() int { return h.offset }

func (h *HelpOverlay) box(screen layout.Rect) layout.Rect {
	w := min(max(screen.Width*2/3, 40), screen.Width)
	hgt := min(len(h.Lines)+4, screen.Height)
	return layout.Rect{
		X:      screen.X + (screen.Width-w)/2,
		Y:      screen.Y + (screen.Height-hgt)/2,
		Width:  w,
		Height: hgt,
	}
}

// HandleEvent scrolls the list. It returns false when the overlay should close.
func (h *HelpOverlay) HandleEvent(ev ui.Event, screen layout.Rect) bool {
	view := max(h.box(screen).Height-4, 1)
	maxOffset := max(len(h.Lines)-view, 0)
	switch e := ev.(type) {
	case ui.KeyEvent:
		if !e.IsPress() {
			return true
		}
		switch {
		case e.Code == ui.KeyEsc, e.Code == ui.KeyEnter, e.Keystroke == "q", e.Keystroke == "?":
			return false
		case e.Code == ui.KeyUp, e.Keystroke == "k":
			h.offset--
		case e.Code == ui.KeyDown, e.Keystroke == "j":
			h.offset++
		case e.Code == ui.KeyPgUp:
			h.offset -= view
		case e.Code == ui.KeyPgDown:
			h.offset += view
		}
	case ui.MouseEvent:
		switch e.Kind {
		case ui.ScrollUp:
			h.offset--
		case ui.ScrollDown:
			h.offset++
		case ui.MouseDown:
			if !h.box(screen).Contains(e.X, e.Y) {
				return false
			}
		}
	}
	h.offset = min(max(h.offset, 0), maxOffset)
	return true
}

// Render dims the screen and draws the list.
func (h *HelpOverlay) Render(c *ui.Canvas, screen layout.Rect) {
	dim(c, screen, layout.Rect{})
	box := h.box(screen)
	if box.Width < 6 || box.Height < 4 {
		return
	}
	bg := ui.Style{Fg: theme.HelpText(), Bg: theme.MenuBg()}
	c.Fill(box, " ", bg)
	c.Border(box, lipgloss.RoundedBorder(), ui.Style{Fg: theme.MenuBorder(), Bg: theme.MenuBg()})
	c.SetString(box.X+2, box.Y, " "+h.Title+" ", ui.Style{Fg: theme.HelpTitle(), Bg: theme.MenuBg(), Bold: true}, box)

	inner := layout.Rect{X: box.X + 2, Y: box.Y + 2, Width: box.Width - 4, Height: box.Height - 4}
	keyWidth := 0
	for _, l := range h.Lines {
		keyWidth = max(keyWidth, ansi.StringWidth(l.Key))
	}
	keyWidth = min(keyWidth, inner.Width/2)
	for row := 0; row < inner.Height; row++ {
		i := h.offset + row
		if i >= len(h.Lines) {
			break
		}
		l := h.Lines[i]
		y := inner.Y + row
		if l.Key == "" {
			c.SetString(inner.X, y, l.Text, ui.Style{Fg: theme.HelpTitle(), Bg: theme.MenuBg(), Bold: true}, inner)
			continue
		}
		c.SetString(inner.X, y, ansi.Truncate(l.Key, keyWidth, "…"), ui.Style{Fg: theme.HelpKey(), Bg: theme.MenuBg()}, inner)
		c.SetString(inner.X+keyWidth+2, y, l.Text, bg, inner)
	}
	if h.offset > 0 {
		c.SetString(box.Right()-4, box.Y+1, "↑", bg, box)
	}
	if h.offset+inner.Height < len(h.Lines) {
		c.SetString(box.Right()-4, box.Bottom()-2, "↓", bg, box)
	}
}

// dim fades every cell of area outside keep.
func dim(c *ui.Canvas, area, keep layout.Rect) {
	area = area.Intersect(c.Bounds())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if keep.Contains(x, y) {
				continue
			}
			c.Restyle(layout.Rect{X: x, Y: y, Width: 1, Height: 1}, fade)
		}
	}
}

func fade(s ui.Style) ui.Style {
	s.Faint = true
	return s
}
