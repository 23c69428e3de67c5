package debuglog

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

const scrollStep = 3

// Window is the system window that shows a Buffer. It keeps its own copy of
// the lines, refreshed by Sync once per frame.
type Window struct {
	buf    *Buffer
	lines  []string
	seq    uint64
	offset int // lines scrolled back from the tail; 0 follows new output
	width  int
	height int
}

// NewWindow returns a log view over buf.
func NewWindow(buf *Buffer) *Window {
	return &Window{buf: buf}
}

// Title implements ui.Titled.
func (w *Window) Title() string { return "Debug Log" }

// Buffer returns the backing buffer.
func (w *Window) Buffer() *Buffer { return w.buf }

// Sync copies new lines from the buffer and reports whether anything changed.
// A scrolled-back view keeps its position relative to older lines.
func (w *Window) Sync() bool {
	if w.buf.Seq() == w.seq {
		return false
	}
	lines, seq := w.buf.Snapshot()
	if w.offset > 0 {
		w.offset += max(len(lines)-len(w.lines), 0)
	}
	w.lines, w.seq = lines, seq
	w.clampOffset()
	return true
}

// Resize implements ui.Component.
func (w *Window) Resize(area layout.Rect) {
	w.width, w.height = area.Width, area.Height
	w.clampOffset()
}

func (w *Window) maxOffset() int {
	return max(len(w.lines)-w.height, 0)
}

func (w *Window) clampOffset() {
	w.offset = min(max(w.offset, 0), w.maxOffset())
}

// Following reports whether the view is pinned to the newest line.
func (w *Window) Following() bool { return w.offset == 0 }

// Scroll moves the view back (positive) or forward (negative).
func (w *Window) Scroll(delta int) {
	w.offset += delta
	w.clampOffset()
}

// Render implements ui.Component.
func (w *Window) Render(c *ui.Canvas, area layout.Rect, ctx ui.Context) {
	if area.Empty() {
		return
	}
	if len(w.lines) == 0 {
		c.SetString(area.X, area.Y, "(no log output yet)", ui.Style{Fg: theme.LogMuted(), Italic: true}, area)
		return
	}
	end := len(w.lines) - w.offset
	start := max(end-area.Height, 0)
	row := area.Y
	for _, line := range w.lines[start:end] {
		c.SetString(area.X, row, line, ui.Style{Fg: levelColor(line)}, area)
		row++
	}
	if w.offset > 0 {
		marker := " ↑ " + strconv.Itoa(w.offset) + " "
		x := area.Right() - len([]rune(marker))
		c.SetString(x, area.Y, marker, ui.Style{Reverse: true}, area)
	}
}

// HandleEvent scrolls on wheel and navigation keys.
func (w *Window) HandleEvent(ev ui.Event, ctx ui.Context) bool {
	switch e := ev.(type) {
	case ui.MouseEvent:
		switch e.Kind {
		case ui.ScrollUp:
			w.Scroll(scrollStep)
			return true
		case ui.ScrollDown:
			w.Scroll(-scrollStep)
			return true
		}
	case ui.KeyEvent:
		if !e.IsPress() {
			return false
		}
		page := max(w.height-1, 1)
		switch {
		case e.Code == ui.KeyUp || e.Keystroke == "k":
			w.Scroll(1)
		case e.Code == ui.KeyDown || e.Keystroke == "j":
			w.Scroll(-1)
		case e.Code == ui.KeyPgUp:
			w.Scroll(page)
		case e.Code == ui.KeyPgDown:
			w.Scroll(-page)
		case e.Code == ui.KeyHome || e.Keystroke == "g":
			w.offset = w.maxOffset()
		case e.Code == ui.KeyEnd || e.Keystroke == "G":
			w.offset = 0
		case e.Keystroke == "c":
			w.buf.Clear()
			w.offset = 0
		default:
			return false
		}
		return true
	}
	return false
}

func levelColor(line string) color.Color {
	switch {
	case strings.Contains(line, "ERRO"), strings.Contains(line, "FATA"):
		return theme.LogError()
	case strings.Contains(line, "WARN"):
		return theme.LogWarn()
	case strings.Contains(line, "INFO"):
		return theme.LogInfo()
	case strings.Contains(line, "DEBU"):
		return theme.LogDebug()
	}
	return nil
}
