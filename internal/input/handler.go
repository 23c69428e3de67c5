// Package input translates bubbletea messages into window manager events
// and routes them through overlays, key bindings and focused panes.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/termwm/internal/app"
	"github.com/Gaurav-Gosain/termwm/internal/config"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
	"github.com/Gaurav-Gosain/termwm/internal/wm"
)

// HandleInput is the main input handler that routes messages to the
// appropriate handlers. It is registered with app.SetInputHandler.
func HandleInput(msg tea.Msg, o *app.OS) (tea.Model, tea.Cmd) {
	var ev ui.Event
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		ev = TranslateKey(tea.Key(msg), ui.KeyPress)
	case tea.KeyReleaseMsg:
		ev = TranslateKey(tea.Key(msg), ui.KeyRelease)
	case tea.MouseMsg:
		mouse, ok := TranslateMouse(msg)
		if !ok {
			return o, nil
		}
		ev = mouse
	default:
		return o, nil
	}
	return o, HandleEvent(ev, o)
}

// HandleEvent routes one event. Modal overlays see it first, then the menu,
// key bindings, focus changes and finally the manager and the focused pane.
func HandleEvent(ev ui.Event, o *app.OS) tea.Cmd {
	// Exit confirmation is modal
	if o.WM.ExitConfirmVisible() {
		switch o.WM.HandleExitConfirmEvent(ev) {
		case wm.ConfirmAccept:
			return tea.Quit
		case wm.ConfirmCancel:
			o.WM.CloseExitConfirm()
		}
		return nil
	}

	if o.WM.HelpVisible() {
		o.WM.HandleHelpEvent(ev)
		return nil
	}

	key, isKey := ev.(ui.KeyEvent)

	if isKey && key.IsPress() && key.Code == ui.KeyEsc && key.Mods == 0 {
		return handleEsc(key, o)
	}

	if o.WM.MenuVisible() {
		if cmd, done := handleMenu(ev, o); done {
			return cmd
		}
	}

	if isKey && key.IsPress() {
		if action := o.KeybindRegistry.GetAction(key.Keystroke); action != "" {
			_, cmd := GetDispatcher().Dispatch(action, key, o)
			return cmd
		}
	}

	if _, isMouse := ev.(ui.MouseEvent); isMouse && !o.WM.MouseCaptureEnabled() {
		return nil
	}

	if isKey && key.IsPress() && key.Code == ui.KeyTab {
		// Tabs in quick succession keep cycling focus even when the newly
		// focused pane would take them.
		if o.WM.CaptureActive() {
			o.WM.ArmCapture(config.CaptureTimeout)
			o.WM.HandleFocusEvent(ev, nil)
			return nil
		}
		if !dispatch(ev, o) && o.WM.HandleFocusEvent(ev, nil) {
			o.WM.ArmCapture(config.CaptureTimeout)
		}
		return nil
	}

	if isKey && o.WM.CaptureActive() {
		o.WM.ClearCapture()
		dispatch(ev, o)
		return nil
	}

	o.WM.HandleFocusEvent(ev, nil)
	dispatch(ev, o)
	return nil
}

// handleEsc toggles the menu. While the passthrough window is open the
// closing Esc also reaches the focused pane.
func handleEsc(key ui.KeyEvent, o *app.OS) tea.Cmd {
	if !o.WM.MenuVisible() {
		o.WM.OpenMenu()
		return nil
	}
	passthrough := o.WM.EscPassthroughActive()
	o.WM.CloseMenu()
	if passthrough {
		dispatch(key, o)
	}
	return nil
}

// handleMenu runs menu navigation. done is false when the event should
// continue down the chain.
func handleMenu(ev ui.Event, o *app.OS) (tea.Cmd, bool) {
	switch act := o.WM.HandleMenuEvent(ev); act {
	case wm.MenuNone:
	case wm.MenuNewWindow:
		o.NewWindow()
		o.WM.CloseMenu()
		return nil, true
	case wm.MenuHelp:
		o.ShowHelp()
		return nil, true
	default:
		o.WM.ApplyMenuAction(act)
		return nil, true
	}
	if o.WM.MenuConsumesEvent(ev) {
		return nil, true
	}
	if key, ok := ev.(ui.KeyEvent); ok && key.Is("n") {
		o.NewWindow()
		o.WM.CloseMenu()
		return nil, true
	}
	return nil, false
}

// dispatch offers ev to the manager, then to the focused pane.
func dispatch(ev ui.Event, o *app.OS) bool {
	if o.WM.HandleManagedEvent(ev) {
		return true
	}
	id, pane, ok := o.FocusedPane()
	if !ok {
		return false
	}
	return o.WM.DispatchToComponent(wm.AppWindow(id), pane, ev)
}
