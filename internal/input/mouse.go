package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// TranslateMouse converts a bubbletea mouse message into a MouseEvent.
func TranslateMouse(msg tea.MouseMsg) (ui.MouseEvent, bool) {
	mouse := msg.Mouse()
	ev := ui.MouseEvent{
		X:      mouse.X,
		Y:      mouse.Y,
		Button: translateButton(mouse.Button),
		Mods:   translateMods(mouse.Mod),
	}
	switch msg.(type) {
	case tea.MouseClickMsg:
		ev.Kind = ui.MouseDown
	case tea.MouseReleaseMsg:
		ev.Kind = ui.MouseUp
	case tea.MouseMotionMsg:
		if mouse.Button == tea.MouseNone {
			ev.Kind = ui.MouseMoved
		} else {
			ev.Kind = ui.MouseDrag
		}
	case tea.MouseWheelMsg:
		switch mouse.Button {
		case tea.MouseWheelUp:
			ev.Kind = ui.ScrollUp
		case tea.MouseWheelDown:
			ev.Kind = ui.ScrollDown
		case tea.MouseWheelLeft:
			ev.Kind = ui.ScrollLeft
		case tea.MouseWheelRight:
			ev.Kind = ui.ScrollRight
		default:
			return ui.MouseEvent{}, false
		}
		ev.Button = ui.ButtonNone
	default:
		return ui.MouseEvent{}, false
	}
	return ev, true
}

func translateButton(b tea.MouseButton) ui.MouseButton {
	switch b {
	case tea.MouseLeft:
		return ui.ButtonLeft
	case tea.MouseMiddle:
		return ui.ButtonMiddle
	case tea.MouseRight:
		return ui.ButtonRight
	}
	return ui.ButtonNone
}
