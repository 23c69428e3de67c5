// Package app hosts the window manager inside a bubbletea program.
package app

import (
	"fmt"
	"slices"
	"time"

	"charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/termwm/internal/config"
	"github.com/Gaurav-Gosain/termwm/internal/debuglog"
	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/theme"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
	"github.com/Gaurav-Gosain/termwm/internal/wm"
)

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// OS is the bubbletea model: one window manager, its panes and the chrome
// state around them. Every SSH session gets its own OS.
type OS struct {
	WM              *wm.WindowManager
	Width           int
	Height          int
	Config          *config.UserConfig
	KeybindRegistry *config.KeybindRegistry
	Panes           map[wm.AppID]Pane
	LogMessages     []LogMessage
	Notifications   []Notification
	SysInfo         *SysInfo
	Host            *HostCapabilities
	// SessionID identifies an SSH session; empty when running locally.
	SessionID string
	// Logger writes into the debug log window.
	Logger *log.Logger

	decorator *wm.FrameDecorator
	canvas    *ui.Canvas
	nextID    wm.AppID
	nextKind  int
	cascade   int
	now       func() time.Time
}

// Options tunes NewOS. The zero value is what the binary uses.
type Options struct {
	SessionID string
	// Host describes the client terminal; nil detects it from the
	// process environment.
	Host *HostCapabilities
	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewOS builds the model for cfg. A nil cfg selects the defaults.
func NewOS(cfg *config.UserConfig, opts Options) *OS {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Host == nil {
		opts.Host = DetectHostCapabilities()
	}
	buf := debuglog.NewBuffer(debuglog.DefaultMaxLines)
	prefix := "wm"
	if opts.SessionID != "" {
		prefix = "wm " + opts.SessionID[:min(8, len(opts.SessionID))]
	}
	decorator := wm.NewFrameDecorator()
	manager := wm.NewManaged(wm.Options{
		Logger:    debuglog.NewLogger(buf, prefix),
		DebugLog:  debuglog.NewWindow(buf),
		Decorator: decorator,
		Now:       opts.Now,
	})

	m := &OS{
		WM:        manager,
		Panes:     make(map[wm.AppID]Pane),
		SysInfo:   &SysInfo{},
		Host:      opts.Host,
		SessionID: opts.SessionID,
		Logger:    debuglog.NewLogger(buf, "app"),
		decorator: decorator,
		now:       opts.Now,
	}
	m.WM.SetMouseCaptureEnabled(cfg.Behavior.MouseCapture)
	m.WM.TakeMouseCaptureChange()
	m.ApplyConfig(cfg)
	m.Logger.Debug("host terminal", "name", m.Host.TerminalName, "truecolor", m.Host.TrueColor, "utf8", m.Host.UTF8)
	return m
}

// ApplyConfig installs cfg: behavior flags, panel, border and key bindings.
// It runs at startup and again on every hot reload.
func (m *OS) ApplyConfig(cfg *config.UserConfig) {
	m.Config = cfg
	m.KeybindRegistry = config.NewKeybindRegistry(cfg)

	b := cfg.Behavior
	m.WM.SetOffscreen(b.FloatingResizeOffscreen)
	m.WM.SetMinVisibleMargin(b.MinVisibleMargin)
	m.WM.SetSnapSensitivity(b.SnapSensitivity)
	m.WM.SetDoubleClick(b.DoubleClick())
	m.WM.SetEscPassthrough(b.EscPassthrough())

	a := cfg.Appearance
	m.WM.SetPanelVisible(a.ShowPanel)
	m.WM.SetPanelHeight(a.PanelHeight)
	if !m.Host.UTF8 {
		a.ASCIIOnly = true
	}
	m.decorator.Border = a.GetBorderForStyle()
	if err := theme.Initialize(a.Theme); err != nil {
		m.LogWarn("theme %q: %v", a.Theme, err)
	}
}

func createID() string {
	return uuid.New().String()
}

// Log adds a new log message to the log buffer and mirrors it into the
// debug log window.
func (m *OS) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	m.LogMessages = append(m.LogMessages, LogMessage{
		Time:    m.now(),
		Level:   level,
		Message: message,
	})
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}

	switch level {
	case "ERROR":
		m.Logger.Error(message)
	case "WARN":
		m.Logger.Warn(message)
	default:
		m.Logger.Info(message)
	}
}

// LogInfo logs an informational message.
func (m *OS) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *OS) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *OS) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification.
func (m *OS) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: m.now(),
		Duration:  duration,
	})
	if over := len(m.Notifications) - config.MaxNotifications; over > 0 {
		m.Notifications = m.Notifications[over:]
	}

	switch notifType {
	case "error":
		m.LogError("%s", message)
	case "warning":
		m.LogWarn("%s", message)
	default:
		m.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (m *OS) CleanupNotifications() {
	now := m.now()
	m.Notifications = slices.DeleteFunc(m.Notifications, func(n Notification) bool {
		return now.Sub(n.StartTime) >= n.Duration
	})
}

// ---------------------------------------------------------------------------
// Windows
// ---------------------------------------------------------------------------

// AppIDs returns the open pane ids in creation order.
func (m *OS) AppIDs() []wm.AppID {
	ids := make([]wm.AppID, 0, len(m.Panes))
	for id := range m.Panes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Pane returns the component shown in an app window.
func (m *OS) Pane(id wm.AppID) (ui.Component, bool) {
	p, ok := m.Panes[id]
	return p, ok
}

// FocusedPane returns the focused app window and its pane.
func (m *OS) FocusedPane() (wm.AppID, Pane, bool) {
	id, ok := m.WM.WMFocusApp()
	if !ok {
		return 0, nil, false
	}
	p, ok := m.Panes[id]
	return id, p, ok
}

// NewWindow opens the next demo pane, tiled or floating per the
// new_window_mode setting, and focuses it.
func (m *OS) NewWindow() wm.AppID {
	m.nextID++
	id := m.nextID
	pane := newPane(paneKinds[m.nextKind%len(paneKinds)], id, m.SysInfo)
	m.nextKind++
	m.Panes[id] = pane
	m.WM.SetAppTitle(id, pane.Title())

	if m.Config.Behavior.NewWindowMode == config.NewWindowFloat {
		m.placeFloating(id)
	} else {
		m.WM.TileApp(id)
	}
	m.LogInfo("opened %s", pane.Title())
	return id
}

// placeFloating cascades new floating windows from the top-left of the
// managed area, starting over when the next one would not fit.
func (m *OS) placeFloating(id wm.AppID) {
	area := m.WM.ManagedArea()
	if area.Empty() {
		area = layout.Rect{Width: m.Width, Height: m.Height}
	}
	w := max(min(config.DefaultWindowWidth, area.Width), 1)
	h := max(min(config.DefaultWindowHeight, area.Height), 1)
	offset := m.cascade * config.CascadeStep
	x, y := area.X+2+offset, area.Y+1+offset
	if x+w > area.Right() || y+h > area.Bottom() {
		m.cascade = 0
		x, y = area.X, area.Y
	}
	m.cascade++

	wid := wm.AppWindow(id)
	m.WM.SetFloating(wid, layout.Absolute(layout.FloatRect{X: x, Y: y, Width: w, Height: h}))
	m.WM.BringToFront(wid)
	m.WM.SetWMFocus(wid)
}

// CloseFocused closes the focused app window.
func (m *OS) CloseFocused() {
	if id, ok := m.WM.WMFocusApp(); ok {
		m.WM.Close(wm.AppWindow(id))
	}
}

// RestoreAll restores every minimized app window.
func (m *OS) RestoreAll() {
	restored := 0
	for _, id := range m.AppIDs() {
		wid := wm.AppWindow(id)
		if m.WM.IsMinimized(wid) {
			m.WM.Restore(wid)
			restored++
		}
	}
	if restored > 0 {
		m.LogInfo("restored %d windows", restored)
	}
}

// dropClosedPanes frees panes whose windows the manager closed.
func (m *OS) dropClosedPanes() {
	for _, id := range m.WM.TakeClosedAppWindows() {
		if p, ok := m.Panes[id]; ok {
			m.LogInfo("closed %s", p.Title())
			delete(m.Panes, id)
		}
	}
}

// ---------------------------------------------------------------------------
// Frame
// ---------------------------------------------------------------------------

// Frame runs the per-frame layout pass: expire deadlines, register the
// layout, free closed panes and refresh the panel status.
func (m *OS) Frame() {
	m.WM.BeginFrame()
	m.WM.SetFocusOrder(m.AppIDs())
	m.WM.SetStatus(m.SysInfo.Badge())
	m.WM.RegisterManagedLayout(layout.Rect{Width: m.Width, Height: m.Height})
	m.dropClosedPanes()
	m.CleanupNotifications()
}

// HelpLines flattens the keybinding sections for the help overlay.
func (m *OS) HelpLines() []wm.HelpLine {
	var lines []wm.HelpLine
	for i, section := range config.GetKeybindings(m.KeybindRegistry) {
		if i > 0 {
			lines = append(lines, wm.HelpLine{})
		}
		lines = append(lines, wm.HelpLine{Text: section.Title})
		for _, b := range section.Bindings {
			lines = append(lines, wm.HelpLine{Key: b.Key, Text: b.Description})
		}
	}
	return lines
}

// ShowHelp opens the keybinding overlay.
func (m *OS) ShowHelp() {
	m.WM.OpenHelp("Keybindings", m.HelpLines())
}
