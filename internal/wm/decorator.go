package wm

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// HeaderAction is what a click on a window header means.
type HeaderAction int

const (
	// HeaderNone is a click the header ignores.
	HeaderNone HeaderAction = iota
	// HeaderDrag starts moving the window.
	HeaderDrag
	HeaderMinimize
	HeaderMaximize
	HeaderClose
)

func (a HeaderAction) String() string {
	switch a {
	case HeaderDrag:
		return "drag"
	case HeaderMinimize:
		return "minimize"
	case HeaderMaximize:
		return "maximize"
	case HeaderClose:
		return "close"
	default:
		return "none"
	}
}

// Decorator draws window chrome and resolves clicks on it. frame is the
// signed full frame of the window; cells outside bounds are never drawn.
type Decorator interface {
	HitTest(frame layout.FloatRect, x, y int) HeaderAction
	Render(c *ui.Canvas, frame layout.FloatRect, bounds layout.Rect, title string, focused bool)
}

// minButtonWidth is the narrowest frame that still shows header buttons.
const minButtonWidth = 9

// FrameDecorator draws a rounded border, a title row and the
// minimize/maximize/close buttons at the right of the title row.
type FrameDecorator struct {
	Border  lipgloss.Border
	Buttons bool
}

// NewFrameDecorator returns the default decorator.
func NewFrameDecorator() *FrameDecorator {
	return &FrameDecorator{Border: lipgloss.RoundedBorder(), Buttons: true}
}

type headerButton struct {
	glyph  string
	action HeaderAction
	offset int // columns left of the last inner column
}

var headerButtons = []headerButton{
	{"_", HeaderMinimize, 6},
	{"□", HeaderMaximize, 4},
	{"×", HeaderClose, 2},
}

func buttonColor(a HeaderAction) color.Color {
	switch a {
	case HeaderMinimize:
		return theme.ButtonMinimize()
	case HeaderMaximize:
		return theme.ButtonMaximize()
	default:
		return theme.ButtonClose()
	}
}

// HitTest maps a click to a header action. Clicks outside the title row
// are HeaderNone; clicks on the title row away from a button are HeaderDrag.
func (d *FrameDecorator) HitTest(frame layout.FloatRect, x, y int) HeaderAction {
	if frame.Width < 3 || frame.Height < 3 || y != frame.Y+1 {
		return HeaderNone
	}
	if x <= frame.X || x >= frame.Right()-1 {
		return HeaderNone
	}
	if d.Buttons && frame.Width >= minButtonWidth {
		right := frame.Right() - 1
		for _, b := range headerButtons {
			if x == right-b.offset {
				return b.action
			}
		}
	}
	return HeaderDrag
}

// Render paints the border and the title row of frame.
func (d *FrameDecorator) Render(c *ui.Canvas, frame layout.FloatRect, bounds layout.Rect, title string, focused bool) {
	if frame.Width < 2 || frame.Height < 2 {
		return
	}
	borderColor, titleColor := theme.BorderUnfocused(), theme.TitleUnfocused()
	if focused {
		borderColor, titleColor = theme.BorderFocused(), theme.TitleFocused()
	}
	rect := signedRect(frame)
	bg := theme.WindowBg()
	c.BorderIn(rect, d.Border, ui.Style{Fg: borderColor, Bg: bg}, bounds)

	if frame.Width < 3 || frame.Height < 3 {
		return
	}
	row := frame.Y + 1
	header := layout.Rect{X: frame.X + 1, Y: row, Width: frame.Width - 2, Height: 1}
	clip := header.Intersect(bounds)
	c.Fill(clip, " ", ui.Style{Bg: bg})

	avail := header.Width
	buttons := d.Buttons && frame.Width >= minButtonWidth
	if buttons {
		avail -= 7
	}
	if avail > 0 && title != "" {
		t := ansi.Truncate(title, avail, "…")
		x := header.X + (avail-ansi.StringWidth(t))/2
		c.SetString(x, row, t, ui.Style{Fg: titleColor, Bg: bg, Bold: focused}, clip)
	}
	if !buttons {
		return
	}
	right := frame.Right() - 1
	for _, b := range headerButtons {
		c.SetString(right-b.offset, row, b.glyph, ui.Style{Fg: buttonColor(b.action), Bg: bg}, clip)
	}
}
