// Package ui holds the drawing surface and input vocabulary shared by the
// window manager, its chrome and the components it hosts.
package ui

import "fmt"

// Event is the closed set of inputs the window manager understands:
// KeyEvent, MouseEvent and ResizeEvent.
type Event interface {
	isEvent()
}

// Key identifies a non-text key, or KeyRune for printable input.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackspace
	KeyDelete
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyOther
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

// Has reports whether all of m2 are held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// KeyPhase distinguishes presses from auto-repeat and releases.
type KeyPhase int

const (
	KeyPress KeyPhase = iota
	KeyRepeat
	KeyRelease
)

// KeyEvent is a key press, repeat or release.
type KeyEvent struct {
	Code  Key
	Rune  rune
	Mods  Modifiers
	Phase KeyPhase
	// Keystroke is the normalized chord, e.g. "ctrl+c", "shift+tab" or "a",
	// used for keybinding lookups.
	Keystroke string
}

func (KeyEvent) isEvent() {}

// IsPress reports whether the event is a press or auto-repeat.
func (k KeyEvent) IsPress() bool { return k.Phase != KeyRelease }

// Is reports whether the event is a press of the given keystroke.
func (k KeyEvent) Is(keystroke string) bool {
	return k.IsPress() && k.Keystroke == keystroke
}

func (k KeyEvent) String() string { return k.Keystroke }

// MouseKind is what the pointer did.
type MouseKind int

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
	MouseMoved
	ScrollUp
	ScrollDown
	ScrollLeft
	ScrollRight
)

func (k MouseKind) String() string {
	switch k {
	case MouseDown:
		return "down"
	case MouseUp:
		return "up"
	case MouseDrag:
		return "drag"
	case MouseMoved:
		return "moved"
	case ScrollUp:
		return "scroll-up"
	case ScrollDown:
		return "scroll-down"
	case ScrollLeft:
		return "scroll-left"
	default:
		return "scroll-right"
	}
}

// MouseButton is the button involved in a mouse event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseEvent is a pointer event in screen cells.
type MouseEvent struct {
	X, Y   int
	Kind   MouseKind
	Button MouseButton
	Mods   Modifiers
}

func (MouseEvent) isEvent() {}

// IsScroll reports whether the event is a wheel event.
func (m MouseEvent) IsScroll() bool { return m.Kind >= ScrollUp }

// Translate returns the event shifted by (-dx, -dy).
func (m MouseEvent) Translate(dx, dy int) MouseEvent {
	m.X -= dx
	m.Y -= dy
	return m
}

func (m MouseEvent) String() string {
	return fmt.Sprintf("mouse %s at %d,%d", m.Kind, m.X, m.Y)
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}
