package input

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/termwm/internal/app"
	"github.com/Gaurav-Gosain/termwm/internal/config"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
	"github.com/Gaurav-Gosain/termwm/internal/wm"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(ev ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Window Management actions
	d.Register("new_window", handleNewWindow)
	d.Register("close_window", handleCloseWindow)
	d.Register("minimize_window", handleMinimizeWindow)
	d.Register("restore_all", handleRestoreAll)
	d.Register("toggle_maximize", handleToggleMaximize)
	d.Register("next_window", handleNextWindow)
	d.Register("prev_window", handlePrevWindow)

	// Layout actions
	d.Register("tile_window", handleTileWindow)
	d.Register("float_window", handleFloatWindow)
	d.Register("floating_front", handleFloatingFront)

	// System actions
	d.Register("toggle_menu", handleToggleMenu)
	d.Register("toggle_debug_log", handleToggleDebugLog)
	d.Register("toggle_mouse_capture", handleToggleMouseCapture)
	d.Register("toggle_help", handleToggleHelp)
	d.Register("quit", handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, ev ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(ev, o)
	}
	return o, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// focusedWindow returns the WM focus when it is a window on screen.
func focusedWindow(o *app.OS) (wm.WindowID, bool) {
	id := o.WM.WMFocus()
	return id, slices.Contains(o.WM.DrawOrder(), id)
}

// ============================================================================
// Window Management Action Handlers
// ============================================================================

func handleNewWindow(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.NewWindow()
	return o, nil
}

func handleCloseWindow(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	if id, ok := focusedWindow(o); ok {
		o.WM.Close(id)
	}
	return o, nil
}

func handleMinimizeWindow(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	if id, ok := focusedWindow(o); ok {
		o.WM.Minimize(id)
	}
	return o, nil
}

func handleRestoreAll(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.RestoreAll()
	return o, nil
}

func handleToggleMaximize(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	if id, ok := focusedWindow(o); ok {
		o.WM.ToggleMaximize(id)
	}
	return o, nil
}

func handleNextWindow(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.WM.AdvanceWMFocus(true)
	o.WM.BringFocusToFront()
	return o, nil
}

func handlePrevWindow(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.WM.AdvanceWMFocus(false)
	o.WM.BringFocusToFront()
	return o, nil
}

// ============================================================================
// Layout Action Handlers
// ============================================================================

func handleTileWindow(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	if id, ok := focusedWindow(o); ok {
		o.WM.TileWindow(id)
	}
	return o, nil
}

func handleFloatWindow(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	id, ok := focusedWindow(o)
	if !ok {
		return o, nil
	}
	if !o.WM.FloatWindow(id) {
		o.ShowNotification("Only tiled windows can float", "warning", config.NotificationDuration)
	}
	return o, nil
}

func handleFloatingFront(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.WM.BringAllFloatingToFront()
	return o, nil
}

// ============================================================================
// System Action Handlers
// ============================================================================

func handleToggleMenu(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	if o.WM.MenuVisible() {
		o.WM.CloseMenu()
	} else {
		o.WM.OpenMenu()
	}
	return o, nil
}

func handleToggleDebugLog(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.WM.ToggleDebugWindow()
	return o, nil
}

func handleToggleMouseCapture(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.WM.ToggleMouseCapture()
	if o.WM.MouseCaptureEnabled() {
		o.ShowNotification("Mouse capture on", "info", config.NotificationDuration)
	} else {
		o.ShowNotification("Mouse capture off: the terminal can select text", "info", config.NotificationDuration)
	}
	return o, nil
}

func handleToggleHelp(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.ShowHelp()
	return o, nil
}

func handleQuit(_ ui.KeyEvent, o *app.OS) (*app.OS, tea.Cmd) {
	o.WM.OpenExitConfirm()
	return o, nil
}
