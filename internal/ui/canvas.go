package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/rivo/uniseg"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/pool"
)

// Style is the per-cell appearance. It is comparable so callers can match
// cells against a known look.
type Style struct {
	Fg        color.Color
	Bg        color.Color
	Bold      bool
	Faint     bool
	Italic    bool
	Underline bool
	Reverse   bool
}

func (s Style) cellStyle() uv.Style {
	us := uv.Style{Fg: s.Fg, Bg: s.Bg}
	if s.Bold {
		us.Attrs |= uv.AttrBold
	}
	if s.Faint {
		us.Attrs |= uv.AttrFaint
	}
	if s.Italic {
		us.Attrs |= uv.AttrItalic
	}
	if s.Reverse {
		us.Attrs |= uv.AttrReverse
	}
	if s.Underline {
		us.Underline = uv.UnderlineSingle
	}
	return us
}

func styleFromCell(us uv.Style) Style {
	return Style{
		Fg:        us.Fg,
		Bg:        us.Bg,
		Bold:      us.Attrs&uv.AttrBold != 0,
		Faint:     us.Attrs&uv.AttrFaint != 0,
		Italic:    us.Attrs&uv.AttrItalic != 0,
		Reverse:   us.Attrs&uv.AttrReverse != 0,
		Underline: us.Underline != uv.UnderlineNone,
	}
}

// Cell is a read-only view of one terminal cell.
type Cell struct {
	Content string
	Style   Style
}

// Canvas is a fixed-size cell grid backed by a lipgloss canvas. Writes are
// clipped to the canvas and to an optional clip rectangle; overwriting half
// of a wide grapheme blanks the other half.
type Canvas struct {
	scr *lipgloss.Canvas
}

// NewCanvas returns a blank canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{scr: lipgloss.NewCanvas(max(width, 0), max(height, 0))}
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(width, height int) {
	c.scr.Resize(max(width, 0), max(height, 0))
	c.Clear()
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.scr.Width() }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.scr.Height() }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() layout.Rect {
	return layout.Rect{Width: c.Width(), Height: c.Height()}
}

// Clear blanks every cell.
func (c *Canvas) Clear() { c.scr.Clear() }

// Cell returns the cell at (x, y). The trailing half of a wide grapheme
// has empty content.
func (c *Canvas) Cell(x, y int) (Cell, bool) {
	cell := c.scr.CellAt(x, y)
	if cell == nil {
		return Cell{}, false
	}
	return Cell{Content: cell.Content, Style: styleFromCell(cell.Style)}, true
}

func (c *Canvas) put(x, y int, cell uv.Cell, clip layout.Rect) {
	if !clip.Contains(x, y) || !c.Bounds().Contains(x, y) {
		return
	}
	if cell.Width > 1 && x+cell.Width > min(c.Width(), clip.Right()) {
		cell.Content, cell.Width = " ", 1
	}
	c.scr.SetCell(x, y, &cell)
}

func (c *Canvas) set(x, y int, content string, width int, style Style, clip layout.Rect) {
	c.put(x, y, uv.Cell{Content: content, Width: width, Style: style.cellStyle()}, clip)
}

// SetCell writes a single grapheme at (x, y).
func (c *Canvas) SetCell(x, y int, content string, style Style) {
	w := max(uniseg.StringWidth(content), 1)
	c.set(x, y, content, w, style, c.Bounds())
}

// SetString writes s starting at (x, y), clipped to clip, and returns the
// number of columns consumed. Control characters are skipped.
func (c *Canvas) SetString(x, y int, s string, style Style, clip layout.Rect) int {
	clip = clip.Intersect(c.Bounds())
	col := x
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := g.Width()
		if w == 0 {
			if cluster != "\t" {
				continue
			}
			cluster, w = " ", 1
		}
		if col >= clip.Right() {
			break
		}
		c.set(col, y, cluster, w, style, clip)
		col += w
	}
	return col - x
}

// Fill paints every cell of rect with content in style.
func (c *Canvas) Fill(rect layout.Rect, content string, style Style) {
	rect = rect.Intersect(c.Bounds())
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			c.set(x, y, content, 1, style, rect)
		}
	}
}

// Restyle applies fn to the style of every cell in rect, keeping content.
func (c *Canvas) Restyle(rect layout.Rect, fn func(Style) Style) {
	rect = rect.Intersect(c.Bounds())
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			cell := c.scr.CellAt(x, y)
			if cell == nil || cell.IsZero() {
				continue
			}
			next := *cell
			next.Style = fn(styleFromCell(cell.Style)).cellStyle()
			c.scr.SetCell(x, y, &next)
		}
	}
}

// Blit copies src onto the canvas with its origin at the signed position
// (x, y). Only cells inside clip are written.
func (c *Canvas) Blit(src *Canvas, x, y int, clip layout.Rect) {
	clip = clip.Intersect(c.Bounds())
	for sy := 0; sy < src.Height(); sy++ {
		dy := y + sy
		if dy < clip.Y || dy >= clip.Bottom() {
			continue
		}
		for sx := 0; sx < src.Width(); sx++ {
			dx := x + sx
			if dx < clip.X || dx >= clip.Right() {
				continue
			}
			cell := src.scr.CellAt(sx, sy)
			if cell == nil {
				continue
			}
			if cell.IsZero() {
				// The head landed off-clip; keep the row aligned with a blank.
				if dx == clip.X {
					blank := uv.EmptyCell
					if head := src.scr.CellAt(sx-1, sy); head != nil {
						blank.Style = head.Style
					}
					c.put(dx, dy, blank, clip)
				}
				continue
			}
			c.put(dx, dy, *cell, clip)
		}
	}
}

// Compose draws lipgloss layers on top of the canvas at their own
// positions, highest Z last.
func (c *Canvas) Compose(layers ...*lipgloss.Layer) {
	if len(layers) == 0 {
		return
	}
	lipgloss.NewCompositor(layers...).Draw(c.scr, c.scr.Bounds())
}

// Border paints a box outline along the edge of r with the glyphs of b.
func (c *Canvas) Border(r layout.Rect, b lipgloss.Border, style Style) {
	c.BorderIn(r, b, style, c.Bounds())
}

// BorderIn is Border restricted to the cells inside clip. r may have a
// negative origin.
func (c *Canvas) BorderIn(r layout.Rect, b lipgloss.Border, style Style, clip layout.Rect) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		c.SetString(x, r.Y, b.Top, style, clip)
		c.SetString(x, bottom, b.Bottom, style, clip)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.SetString(r.X, y, b.Left, style, clip)
		c.SetString(right, y, b.Right, style, clip)
	}
	c.SetString(r.X, r.Y, b.TopLeft, style, clip)
	c.SetString(right, r.Y, b.TopRight, style, clip)
	c.SetString(r.X, bottom, b.BottomLeft, style, clip)
	c.SetString(right, bottom, b.BottomRight, style, clip)
}

// Line returns row y as plain text without styling, padded to the canvas
// width.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.Height() {
		return ""
	}
	b := pool.GetStringBuilder()
	defer pool.PutStringBuilder(b)
	for x := 0; x < c.Width(); x++ {
		cell := c.scr.CellAt(x, y)
		if cell == nil || cell.IsZero() {
			continue
		}
		b.WriteString(cell.Content)
	}
	return b.String()
}

// Render serializes the canvas to a styled string, one line per row.
// Trailing unstyled blanks are dropped.
func (c *Canvas) Render() string {
	return c.scr.Render()
}
