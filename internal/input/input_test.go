package input

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/termwm/internal/app"
	"github.com/Gaurav-Gosain/termwm/internal/config"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
	"github.com/Gaurav-Gosain/termwm/internal/wm"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestOS(t *testing.T) (*app.OS, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}
	o := app.NewOS(config.DefaultConfig(), app.Options{Now: clock.Now})
	o.Width, o.Height = 120, 40
	o.Frame()
	return o, clock
}

// send routes ev the way Update does: handle, then lay out the next frame.
func send(o *app.OS, ev ui.Event) tea.Cmd {
	cmd := HandleEvent(ev, o)
	o.Frame()
	return cmd
}

func press(code ui.Key, stroke string) ui.KeyEvent {
	return ui.KeyEvent{Code: code, Keystroke: stroke}
}

func runeKey(r rune, mods ui.Modifiers, stroke string) ui.KeyEvent {
	return ui.KeyEvent{Code: ui.KeyRune, Rune: r, Mods: mods, Keystroke: stroke}
}

var esc = press(ui.KeyEsc, "esc")

func focusedKeys(t *testing.T, o *app.OS) *app.KeysPane {
	t.Helper()
	_, pane, ok := o.FocusedPane()
	if !ok {
		t.Fatal("no focused pane")
	}
	keys, ok := pane.(*app.KeysPane)
	if !ok {
		t.Fatalf("focused pane is %T, want *app.KeysPane", pane)
	}
	return keys
}

// =============================================================================
// Translation
// =============================================================================

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name      string
		key       tea.Key
		code      ui.Key
		r         rune
		mods      ui.Modifiers
		keystroke string
	}{
		{"printable", tea.Key{Code: 'a', Text: "a"}, ui.KeyRune, 'a', 0, "a"},
		{"shifted text", tea.Key{Code: 'a', ShiftedCode: 'A', Text: "A", Mod: tea.ModShift}, ui.KeyRune, 'A', ui.ModShift, "A"},
		{"enter", tea.Key{Code: tea.KeyEnter}, ui.KeyEnter, 0, 0, "enter"},
		{"shift tab", tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}, ui.KeyTab, 0, ui.ModShift, "shift+tab"},
		{"ctrl chord", tea.Key{Code: 'c', Mod: tea.ModCtrl}, ui.KeyRune, 'c', ui.ModCtrl, "ctrl+c"},
		{"alt chord", tea.Key{Code: 'n', Mod: tea.ModAlt}, ui.KeyRune, 'n', ui.ModAlt, "alt+n"},
		{"space", tea.Key{Code: tea.KeySpace, Text: " "}, ui.KeySpace, ' ', 0, "space"},
		{"escape", tea.Key{Code: tea.KeyEscape}, ui.KeyEsc, 0, 0, "esc"},
		{"function key", tea.Key{Code: tea.KeyF1}, ui.KeyOther, 0, 0, "f1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateKey(tt.key, ui.KeyPress)
			if got.Code != tt.code || got.Rune != tt.r || got.Mods != tt.mods || got.Keystroke != tt.keystroke {
				t.Errorf("TranslateKey() = %+v, want code %v rune %q mods %v keystroke %q",
					got, tt.code, tt.r, tt.mods, tt.keystroke)
			}
			if got.Phase != ui.KeyPress {
				t.Errorf("Phase = %v, want KeyPress", got.Phase)
			}
		})
	}
}

func TestTranslateKeyPhase(t *testing.T) {
	if got := TranslateKey(tea.Key{Code: 'x', Text: "x", IsRepeat: true}, ui.KeyPress); got.Phase != ui.KeyRepeat {
		t.Errorf("repeat Phase = %v, want KeyRepeat", got.Phase)
	}
	got := TranslateKey(tea.Key{Code: 'x'}, ui.KeyRelease)
	if got.Phase != ui.KeyRelease || got.IsPress() {
		t.Errorf("release Phase = %v, IsPress = %v", got.Phase, got.IsPress())
	}
}

func TestTranslateMouse(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.MouseMsg
		kind   ui.MouseKind
		button ui.MouseButton
	}{
		{"click", tea.MouseClickMsg{X: 3, Y: 4, Button: tea.MouseLeft}, ui.MouseDown, ui.ButtonLeft},
		{"right click", tea.MouseClickMsg{X: 3, Y: 4, Button: tea.MouseRight}, ui.MouseDown, ui.ButtonRight},
		{"release", tea.MouseReleaseMsg{X: 3, Y: 4, Button: tea.MouseLeft}, ui.MouseUp, ui.ButtonLeft},
		{"drag", tea.MouseMotionMsg{X: 3, Y: 4, Button: tea.MouseLeft}, ui.MouseDrag, ui.ButtonLeft},
		{"hover", tea.MouseMotionMsg{X: 3, Y: 4}, ui.MouseMoved, ui.ButtonNone},
		{"wheel up", tea.MouseWheelMsg{X: 3, Y: 4, Button: tea.MouseWheelUp}, ui.ScrollUp, ui.ButtonNone},
		{"wheel down", tea.MouseWheelMsg{X: 3, Y: 4, Button: tea.MouseWheelDown}, ui.ScrollDown, ui.ButtonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateMouse(tt.msg)
			if !ok {
				t.Fatal("TranslateMouse() dropped the event")
			}
			if got.X != 3 || got.Y != 4 || got.Kind != tt.kind || got.Button != tt.button {
				t.Errorf("TranslateMouse() = %+v, want kind %v button %v at 3,4", got, tt.kind, tt.button)
			}
		})
	}
}

// =============================================================================
// Routing
// =============================================================================

func TestKeybindingOpensWindow(t *testing.T) {
	o, _ := newTestOS(t)

	if _, cmd := HandleInput(tea.KeyPressMsg{Code: 'n', Mod: tea.ModAlt}, o); cmd != nil {
		t.Errorf("new_window returned a command")
	}
	o.Frame()

	if len(o.Panes) != 1 {
		t.Fatalf("len(Panes) = %d, want 1", len(o.Panes))
	}
	if id, ok := o.WM.WMFocusApp(); !ok || id != o.AppIDs()[0] {
		t.Errorf("WMFocusApp() = %v, %v; want the new window", id, ok)
	}
}

func TestKeyReleaseDoesNotTriggerBinding(t *testing.T) {
	o, _ := newTestOS(t)

	HandleInput(tea.KeyReleaseMsg{Code: 'n', Mod: tea.ModAlt}, o)
	o.Frame()

	if len(o.Panes) != 0 {
		t.Errorf("len(Panes) = %d after a release, want 0", len(o.Panes))
	}
}

func TestEscTogglesMenu(t *testing.T) {
	o, _ := newTestOS(t)

	send(o, esc)
	if !o.WM.MenuVisible() {
		t.Fatal("first Esc did not open the menu")
	}
	send(o, esc)
	if o.WM.MenuVisible() {
		t.Fatal("second Esc did not close the menu")
	}
}

func TestEscPassthrough(t *testing.T) {
	o, clock := newTestOS(t)
	o.NewWindow()
	o.NewWindow()
	o.Frame()
	keys := focusedKeys(t, o)

	// Second Esc inside the window reaches the pane.
	send(o, esc)
	send(o, esc)
	if got := keys.Events(); len(got) != 1 || got[0] != "key esc" {
		t.Fatalf("Events() = %q, want [key esc]", got)
	}

	// After the window it only closes the menu.
	send(o, esc)
	clock.Advance(5 * time.Second)
	send(o, esc)
	if o.WM.MenuVisible() {
		t.Fatal("menu still visible")
	}
	if got := keys.Events(); len(got) != 1 {
		t.Errorf("Events() = %q, want only the passthrough Esc", got)
	}
}

func TestMenuNewWindow(t *testing.T) {
	tests := []struct {
		name string
		keys []ui.KeyEvent
	}{
		{"n shortcut", []ui.KeyEvent{runeKey('n', 0, "n")}},
		{"select and enter", []ui.KeyEvent{
			press(ui.KeyDown, "down"),
			press(ui.KeyDown, "down"),
			press(ui.KeyDown, "down"),
			press(ui.KeyEnter, "enter"),
		}},
		{"j and enter", []ui.KeyEvent{
			runeKey('j', 0, "j"),
			runeKey('j', 0, "j"),
			runeKey('j', 0, "j"),
			press(ui.KeyEnter, "enter"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newTestOS(t)
			send(o, esc)
			for _, k := range tt.keys {
				send(o, k)
			}
			if len(o.Panes) != 1 {
				t.Errorf("len(Panes) = %d, want 1", len(o.Panes))
			}
			if o.WM.MenuVisible() {
				t.Error("menu still visible")
			}
		})
	}
}

func TestMenuNavigationNotForwarded(t *testing.T) {
	o, _ := newTestOS(t)
	o.NewWindow()
	o.NewWindow()
	o.Frame()
	keys := focusedKeys(t, o)

	send(o, esc)
	send(o, press(ui.KeyDown, "down"))
	send(o, runeKey('k', 0, "k"))

	if !o.WM.MenuVisible() {
		t.Fatal("navigation closed the menu")
	}
	if got := keys.Events(); len(got) != 0 {
		t.Errorf("Events() = %q, want none", got)
	}
}

func TestQuitAsksForConfirmation(t *testing.T) {
	o, _ := newTestOS(t)
	quit := runeKey('q', ui.ModCtrl, "ctrl+q")

	if cmd := send(o, quit); cmd != nil {
		t.Fatal("quit returned a command before confirmation")
	}
	if !o.WM.ExitConfirmVisible() {
		t.Fatal("exit confirmation not shown")
	}

	send(o, runeKey('n', 0, "n"))
	if o.WM.ExitConfirmVisible() {
		t.Fatal("n did not cancel")
	}
	if len(o.Panes) != 0 {
		t.Error("n leaked through the confirmation")
	}

	send(o, quit)
	cmd := send(o, runeKey('y', 0, "y"))
	if cmd == nil {
		t.Fatal("y returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestHelpOverlayConsumesKeys(t *testing.T) {
	o, _ := newTestOS(t)

	send(o, runeKey('?', ui.ModAlt, "alt+?"))
	if !o.WM.HelpVisible() {
		t.Fatal("help not shown")
	}
	send(o, runeKey('n', ui.ModAlt, "alt+n"))
	if len(o.Panes) != 0 {
		t.Error("binding ran under the help overlay")
	}
	send(o, esc)
	if o.WM.HelpVisible() {
		t.Error("Esc did not close help")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	o, _ := newTestOS(t)
	first := o.NewWindow()
	second := o.NewWindow()
	o.Frame()
	if id, _ := o.WM.WMFocusApp(); id != second {
		t.Fatalf("focus = %v, want %v", id, second)
	}

	tab := press(ui.KeyTab, "tab")
	send(o, tab)
	if id, _ := o.WM.WMFocusApp(); id != first {
		t.Fatalf("after Tab focus = %v, want %v", id, first)
	}
	if !o.WM.CaptureActive() {
		t.Error("focus change did not arm capture")
	}

	send(o, tab)
	if id, _ := o.WM.WMFocusApp(); id != second {
		t.Errorf("after second Tab focus = %v, want %v", id, second)
	}
}

func TestTypingReachesFocusedPane(t *testing.T) {
	o, _ := newTestOS(t)
	o.NewWindow()
	o.Frame()

	for _, r := range "hi" {
		send(o, runeKey(r, 0, string(r)))
	}

	_, pane, _ := o.FocusedPane()
	notes, ok := pane.(*app.NotesPane)
	if !ok {
		t.Fatalf("focused pane is %T", pane)
	}
	if got := notes.Text(); got != "hi" {
		t.Errorf("Text() = %q, want %q", got, "hi")
	}
}

func TestMouseDroppedWithoutCapture(t *testing.T) {
	o, _ := newTestOS(t)
	o.NewWindow()
	second := o.NewWindow()
	o.Frame()
	keys := focusedKeys(t, o)

	region := o.WM.Region(wm.AppWindow(second))
	click := ui.MouseEvent{X: region.X + 1, Y: region.Y + 1, Kind: ui.MouseDown, Button: ui.ButtonLeft}

	o.WM.SetMouseCaptureEnabled(false)
	send(o, click)
	if got := keys.Events(); len(got) != 0 {
		t.Fatalf("Events() = %q with capture off, want none", got)
	}

	o.WM.SetMouseCaptureEnabled(true)
	send(o, click)
	if got := keys.Events(); len(got) != 1 || got[0] != "mouse down at 1,1" {
		t.Errorf("Events() = %q, want [mouse down at 1,1]", got)
	}
}

func TestToggleMouseCaptureNotifies(t *testing.T) {
	o, _ := newTestOS(t)

	send(o, runeKey('c', ui.ModAlt, "alt+c"))

	if o.WM.MouseCaptureEnabled() {
		t.Error("capture still enabled")
	}
	if len(o.Notifications) != 1 {
		t.Errorf("len(Notifications) = %d, want 1", len(o.Notifications))
	}
}
