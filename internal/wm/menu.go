package wm

import (
	"time"

	"github.com/Gaurav-Gosain/termwm/internal/panel"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// MenuAction is what the host should do after a menu event.
type MenuAction int

const (
	// MenuNone means the event changed nothing the host must act on.
	MenuNone MenuAction = iota
	// MenuClose closes the menu.
	MenuClose
	// MenuNewWindow asks the host to open a window.
	MenuNewWindow
	// MenuToggleDebugLog shows or hides the diagnostic window.
	MenuToggleDebugLog
	// MenuExit asks for exit confirmation.
	MenuExit
	// MenuFloatingFront raises every floating window.
	MenuFloatingFront
	// MenuMinimize minimizes the focused window.
	MenuMinimize
	// MenuMaximize toggles maximize on the focused window.
	MenuMaximize
	// MenuCloseWindow closes the focused window.
	MenuCloseWindow
	// MenuToggleMouseCapture flips mouse capture.
	MenuToggleMouseCapture
	// MenuTile tiles the focused window.
	MenuTile
	// MenuFloat floats the focused window.
	MenuFloat
	// MenuHelp opens the key binding help.
	MenuHelp
)

var menuActionNames = map[MenuAction]string{
	MenuNone:               "none",
	MenuClose:              "close-menu",
	MenuNewWindow:          "new-window",
	MenuToggleDebugLog:     "toggle-debug-log",
	MenuExit:               "exit",
	MenuFloatingFront:      "floating-front",
	MenuMinimize:           "minimize",
	MenuMaximize:           "maximize",
	MenuCloseWindow:        "close-window",
	MenuToggleMouseCapture: "toggle-mouse-capture",
	MenuTile:               "tile",
	MenuFloat:              "float",
	MenuHelp:               "help",
}

func (a MenuAction) String() string {
	if s, ok := menuActionNames[a]; ok {
		return s
	}
	return "unknown"
}

type menuEntry struct {
	icon   string
	label  string
	action MenuAction
}

func menuEntries(captureOn bool) []menuEntry {
	capture := "Mouse Capture: Off"
	if captureOn {
		capture = "Mouse Capture: On"
	}
	return []menuEntry{
		{label: "Resume", action: MenuClose},
		{icon: "🖱", label: capture, action: MenuToggleMouseCapture},
		{icon: "↑", label: "Floating Front", action: MenuFloatingFront},
		{icon: "+", label: "New Window", action: MenuNewWindow},
		{icon: "≣", label: "Debug Log", action: MenuToggleDebugLog},
		{icon: "⏻", label: "Exit UI", action: MenuExit},
	}
}

func menuItems(captureOn bool) []panel.MenuItem {
	entries := menuEntries(captureOn)
	items := make([]panel.MenuItem, len(entries))
	for i, e := range entries {
		items[i] = panel.MenuItem{Icon: e.icon, Label: e.label}
	}
	return items
}

// OpenMenu shows the WM menu and starts the Esc passthrough window.
func (m *WindowManager) OpenMenu() {
	m.overlay = &MenuOverlay{}
	m.menuOpenedAt = m.now()
	m.state.menuSelected = 0
	m.arrangeMenu()
}

// CloseMenu hides the WM menu.
func (m *WindowManager) CloseMenu() {
	if _, ok := m.overlay.(*MenuOverlay); ok {
		m.overlay = nil
	}
	m.menuOpenedAt = time.Time{}
	m.state.menuSelected = 0
	m.panel.Menu().Close()
}

// MenuVisible reports whether the WM menu is open.
func (m *WindowManager) MenuVisible() bool {
	_, ok := m.overlay.(*MenuOverlay)
	return ok
}

// Overlay returns the active overlay, or nil.
func (m *WindowManager) Overlay() Overlay { return m.overlay }

// OpenExitConfirm replaces any overlay with the exit confirmation.
func (m *WindowManager) OpenExitConfirm() {
	m.CloseMenu()
	m.overlay = NewConfirm("Exit App", "Exit the application?\nUnsaved changes will be lost.")
}

// CloseExitConfirm hides the exit confirmation.
func (m *WindowManager) CloseExitConfirm() {
	if _, ok := m.overlay.(*ConfirmOverlay); ok {
		m.overlay = nil
	}
}

// ExitConfirmVisible reports whether the exit confirmation is open.
func (m *WindowManager) ExitConfirmVisible() bool {
	_, ok := m.overlay.(*ConfirmOverlay)
	return ok
}

// OpenHelp replaces any overlay with a help list.
func (m *WindowManager) OpenHelp(title string, lines []HelpLine) {
	m.CloseMenu()
	m.overlay = NewHelp(title, lines)
}

// HelpVisible reports whether the help overlay is open.
func (m *WindowManager) HelpVisible() bool {
	_, ok := m.overlay.(*HelpOverlay)
	return ok
}

// EscPassthroughRemaining returns how long a second Esc is still passed
// through to the focused window.
func (m *WindowManager) EscPassthroughRemaining() (time.Duration, bool) {
	if !m.MenuVisible() || m.menuOpenedAt.IsZero() {
		return 0, false
	}
	elapsed := m.now().Sub(m.menuOpenedAt)
	if elapsed >= m.escPassthrough {
		return 0, false
	}
	return m.escPassthrough - elapsed, true
}

// EscPassthroughActive reports whether the passthrough window is open.
func (m *WindowManager) EscPassthroughActive() bool {
	_, ok := m.EscPassthroughRemaining()
	return ok
}

// HandleMenuEvent runs menu navigation. It returns MenuNone for events that
// only moved the selection or that the menu ignores.
func (m *WindowManager) HandleMenuEvent(ev ui.Event) MenuAction {
	if !m.MenuVisible() {
		return MenuNone
	}
	entries := menuEntries(m.state.mouseCapture)
	switch e := ev.(type) {
	case ui.MouseEvent:
		if e.Kind != ui.MouseDown {
			return MenuNone
		}
		menu := m.panel.Menu()
		if i, ok := menu.HitItem(e.X, e.Y); ok {
			i = min(i, len(entries)-1)
			m.state.menuSelected = i
			return entries[i].action
		}
		if m.panel.HitMenuButton(e.X, e.Y) || !menu.Contains(e.X, e.Y) {
			return MenuClose
		}
	case ui.KeyEvent:
		if !e.IsPress() {
			return MenuNone
		}
		n := len(entries)
		switch {
		case e.Code == ui.KeyUp, e.Keystroke == "k":
			m.state.menuSelected = (m.state.menuSelected + n - 1) % n
			m.arrangeMenu()
		case e.Code == ui.KeyDown, e.Keystroke == "j":
			m.state.menuSelected = (m.state.menuSelected + 1) % n
			m.arrangeMenu()
		case e.Code == ui.KeyEnter:
			return entries[min(m.state.menuSelected, n-1)].action
		}
	}
	return MenuNone
}

// MenuConsumesEvent reports whether the open menu swallows ev.
func (m *WindowManager) MenuConsumesEvent(ev ui.Event) bool {
	if !m.MenuVisible() {
		return false
	}
	k, ok := ev.(ui.KeyEvent)
	if !ok {
		return false
	}
	switch {
	case k.Code == ui.KeyUp, k.Code == ui.KeyDown, k.Code == ui.KeyEnter:
		return true
	case k.Keystroke == "j", k.Keystroke == "k":
		return true
	}
	return false
}

// HandleExitConfirmEvent routes ev to the exit confirmation.
func (m *WindowManager) HandleExitConfirmEvent(ev ui.Event) ConfirmAction {
	d, ok := m.overlay.(*ConfirmOverlay)
	if !ok {
		return ConfirmNone
	}
	return d.HandleEvent(ev, m.screen)
}

// HandleHelpEvent routes ev to the help overlay, closing it when asked.
func (m *WindowManager) HandleHelpEvent(ev ui.Event) bool {
	h, ok := m.overlay.(*HelpOverlay)
	if !ok {
		return false
	}
	if !h.HandleEvent(ev, m.screen) {
		m.overlay = nil
	}
	return true
}

func (m *WindowManager) arrangeMenu() {
	menu := m.panel.Menu()
	if !m.MenuVisible() {
		menu.Close()
		return
	}
	menu.Arrange(m.panel.MenuButton(), menuItems(m.state.mouseCapture), m.state.menuSelected, m.screen)
}

func (m *WindowManager) menuStatus() string {
	if !m.MenuVisible() {
		return m.status
	}
	esc := "Esc passthrough: inactive"
	if rem, ok := m.EscPassthroughRemaining(); ok {
		esc = "Esc passthrough: " + rem.Round(time.Millisecond).String()
	}
	return esc + " · Tab: cycle windows"
}
