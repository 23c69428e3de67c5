package app

import (
	"image/color"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// notification geometry
const (
	notifMaxWidth = 60
	notifMinWidth = 20
	notifSpacing  = 3
	notifVisible  = 3
	notifZ        = 1000
)

// GetCanvas composites windows, chrome, overlays and notifications.
func (m *OS) GetCanvas() *ui.Canvas {
	w, h := max(m.Width, 0), max(m.Height, 0)
	if m.canvas == nil {
		m.canvas = ui.NewCanvas(w, h)
	} else {
		m.canvas.Resize(w, h)
		m.canvas.Clear()
	}
	m.WM.Render(m.canvas, m.Pane)
	m.renderNotifications(m.canvas)
	return m.canvas
}

func (m *OS) renderNotifications(c *ui.Canvas) {
	screen := c.Bounds()
	top := m.WM.ManagedArea().Y + 1
	layers := make([]*lipgloss.Layer, 0, notifVisible)
	for i, n := range m.Notifications {
		if i >= notifVisible {
			break
		}
		accent, icon := notificationStyle(n.Type)
		width := min(max(m.Width-8, notifMinWidth), notifMaxWidth)
		message := ansi.Truncate(n.Message, width-8, "…")
		content := " " + icon + "  " + message + " "
		boxW := min(ansi.StringWidth(content)+2, screen.Width)
		y := top + i*notifSpacing
		if y+3 > screen.Bottom() {
			break
		}

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			BorderBackground(theme.MenuBg()).
			Foreground(accent).
			Background(theme.MenuBg()).
			Bold(true).
			MaxWidth(boxW).
			Render(content)
		layers = append(layers, lipgloss.NewLayer(box).
			X(max(screen.Width-boxW-2, 0)).
			Y(y).
			Z(notifZ+i))
	}
	c.Compose(layers...)
}

func notificationStyle(kind string) (color.Color, string) {
	switch kind {
	case "error":
		return theme.NotificationError(), "✕"
	case "warning":
		return theme.NotificationWarning(), "⚠"
	case "success":
		return theme.NotificationSuccess(), "✓"
	default:
		return theme.NotificationInfo(), "ℹ"
	}
}

// View returns the rendered view. Mouse reporting follows the capture
// flag so the host terminal can select text while capture is off.
func (m *OS) View() tea.View {
	var view tea.View

	view.SetContent(m.GetCanvas().Render())

	view.AltScreen = true
	view.ReportFocus = true
	view.WindowTitle = "termwm"
	if m.WM.MouseCaptureEnabled() {
		view.MouseMode = tea.MouseModeAllMotion
	} else {
		view.MouseMode = tea.MouseModeNone
	}

	return view
}
