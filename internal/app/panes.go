package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
	"github.com/Gaurav-Gosain/termwm/internal/wm"
)

// Pane is a component hosted in an app window.
type Pane interface {
	ui.Component
	Title() string
}

// PaneKind selects a demo pane.
type PaneKind int

const (
	NotesPaneKind PaneKind = iota
	KeysPaneKind
	MonitorPaneKind
)

// paneKinds is the order New Window cycles through.
var paneKinds = []PaneKind{NotesPaneKind, KeysPaneKind, MonitorPaneKind}

func newPane(kind PaneKind, id wm.AppID, info *SysInfo) Pane {
	switch kind {
	case KeysPaneKind:
		return &KeysPane{title: fmt.Sprintf("Keys %d", id)}
	case MonitorPaneKind:
		return &MonitorPane{title: fmt.Sprintf("Monitor %d", id), info: info}
	default:
		return &NotesPane{title: fmt.Sprintf("Notes %d", id), lines: []string{""}}
	}
}

// =============================================================================
// Notes
// =============================================================================

// NotesPane is a scratch text buffer. Typing appends at the end.
type NotesPane struct {
	title string
	lines []string
	area  layout.Rect
}

func (p *NotesPane) Title() string { return p.title }

// Text returns the buffer contents.
func (p *NotesPane) Text() string { return strings.Join(p.lines, "\n") }

func (p *NotesPane) Resize(area layout.Rect) { p.area = area }

func (p *NotesPane) Render(c *ui.Canvas, area layout.Rect, ctx ui.Context) {
	if area.Empty() {
		return
	}
	if len(p.lines) == 1 && p.lines[0] == "" {
		c.SetString(area.X, area.Y, "Start typing…", ui.Style{Fg: theme.LogMuted(), Italic: true}, area)
		return
	}
	start := max(len(p.lines)-area.Height, 0)
	for i, line := range p.lines[start:] {
		c.SetString(area.X, area.Y+i, line, ui.Style{}, area)
	}
	if ctx.Focused {
		last := len(p.lines) - 1 - start
		col := area.X + ansi.StringWidth(p.lines[len(p.lines)-1])
		if col < area.Right() && last < area.Height {
			c.SetCell(col, area.Y+last, " ", ui.Style{Reverse: true})
		}
	}
}

func (p *NotesPane) HandleEvent(ev ui.Event, _ ui.Context) bool {
	k, ok := ev.(ui.KeyEvent)
	if !ok || !k.IsPress() || k.Mods.Has(ui.ModCtrl) || k.Mods.Has(ui.ModAlt) {
		return false
	}
	last := len(p.lines) - 1
	switch k.Code {
	case ui.KeyRune:
		p.lines[last] += string(k.Rune)
	case ui.KeySpace:
		p.lines[last] += " "
	case ui.KeyEnter:
		p.lines = append(p.lines, "")
	case ui.KeyBackspace:
		switch line := []rune(p.lines[last]); {
		case len(line) > 0:
			p.lines[last] = string(line[:len(line)-1])
		case last > 0:
			p.lines = p.lines[:last]
		}
	default:
		return false
	}
	return true
}

// =============================================================================
// Key echo
// =============================================================================

const keysHistory = 64

// KeysPane lists the input events routed to it, newest last. Repeats of
// the same event collapse into one line with a count. Tab is recorded
// without being consumed so focus cycling keeps working.
type KeysPane struct {
	title  string
	events []keyEntry
}

type keyEntry struct {
	text  string
	count int
}

func (e keyEntry) String() string {
	if e.count > 1 {
		return fmt.Sprintf("%s ×%d", e.text, e.count)
	}
	return e.text
}

func (p *KeysPane) Title() string { return p.title }

// Events returns the recorded events, oldest first.
func (p *KeysPane) Events() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.String()
	}
	return out
}

func (p *KeysPane) Resize(layout.Rect) {}

func (p *KeysPane) Render(c *ui.Canvas, area layout.Rect, _ ui.Context) {
	if area.Empty() {
		return
	}
	if len(p.events) == 0 {
		c.SetString(area.X, area.Y, "Press keys or click here", ui.Style{Fg: theme.LogMuted(), Italic: true}, area)
		return
	}
	start := max(len(p.events)-area.Height, 0)
	for i, e := range p.events[start:] {
		style := ui.Style{Fg: theme.LogMuted()}
		if start+i == len(p.events)-1 {
			style = ui.Style{Fg: theme.HelpKey(), Bold: true}
		}
		c.SetString(area.X, area.Y+i, e.String(), style, area)
	}
}

func (p *KeysPane) HandleEvent(ev ui.Event, _ ui.Context) bool {
	switch e := ev.(type) {
	case ui.KeyEvent:
		if !e.IsPress() {
			return false
		}
		p.record("key " + e.Keystroke)
		return e.Code != ui.KeyTab
	case ui.MouseEvent:
		if e.Kind == ui.MouseMoved {
			return false
		}
		p.record(e.String())
		return true
	}
	return false
}

func (p *KeysPane) record(entry string) {
	if n := len(p.events); n > 0 && p.events[n-1].text == entry {
		p.events[n-1].count++
		return
	}
	p.events = append(p.events, keyEntry{text: entry, count: 1})
	if over := len(p.events) - keysHistory; over > 0 {
		p.events = p.events[over:]
	}
}

// =============================================================================
// System monitor
// =============================================================================

// MonitorPane shows CPU history and memory use from the shared SysInfo.
type MonitorPane struct {
	title string
	info  *SysInfo
}

func (p *MonitorPane) Title() string { return p.title }

func (p *MonitorPane) Resize(layout.Rect) {}

func (p *MonitorPane) Render(c *ui.Canvas, area layout.Rect, _ ui.Context) {
	if area.Empty() {
		return
	}
	muted := ui.Style{Fg: theme.LogMuted()}
	if p.info.LastErr != nil {
		c.SetString(area.X, area.Y, p.info.LastErr.Error(), ui.Style{Fg: theme.LogError()}, area)
		return
	}
	if p.info.LastUpdate.IsZero() {
		c.SetString(area.X, area.Y, "Sampling…", ui.Style{Fg: theme.LogMuted(), Italic: true}, area)
		return
	}

	label := ui.Style{Fg: theme.HelpKey(), Bold: true}
	y := area.Y
	c.SetString(area.X, y, fmt.Sprintf("CPU %5.1f%%", p.info.CPU()), label, area)
	y++
	if y < area.Bottom() {
		c.SetString(area.X, y, p.info.Sparkline(area.Width), ui.Style{Fg: theme.LogInfo()}, area)
		y++
	}
	if y+1 < area.Bottom() {
		y++
		c.SetString(area.X, y, fmt.Sprintf("MEM %5.1f%%", p.info.MemPercent()), label, area)
		y++
		c.SetString(area.X, y, meter(p.info.MemPercent(), area.Width), ui.Style{Fg: theme.LogWarn()}, area)
		y++
	}
	if y < area.Bottom() {
		c.SetString(area.X, y, formatBytes(p.info.MemUsed)+" / "+formatBytes(p.info.MemTotal), muted, area)
	}
}

func (p *MonitorPane) HandleEvent(ui.Event, ui.Context) bool { return false }

// meter draws a horizontal bar of width cells filled to pct.
func meter(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := min(int(pct/100*float64(width)+0.5), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
