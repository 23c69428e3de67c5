// Package wm is the window manager: it owns the tiling tree and floating
// windows, keeps z-order and focus, runs drag, resize and snap gestures and
// produces the per-frame draw plan.
package wm

import (
	"fmt"
	"slices"
)

// AppID identifies a window owned by the host application.
type AppID int

// SystemWindow enumerates the windows the manager owns itself.
type SystemWindow int

const (
	// SystemDebugLog is the diagnostic log window.
	SystemDebugLog SystemWindow = iota
)

func (s SystemWindow) String() string {
	switch s {
	case SystemDebugLog:
		return "debug-log"
	default:
		return fmt.Sprintf("system-%d", int(s))
	}
}

// WindowKind tags a WindowID.
type WindowKind int

const (
	KindApp WindowKind = iota
	KindSystem
)

// WindowID is a tagged window identifier. Every geometry, focus and z-order
// structure is keyed by it.
type WindowID struct {
	Kind   WindowKind
	App    AppID
	System SystemWindow
}

// AppWindow returns the id of an application window.
func AppWindow(id AppID) WindowID {
	return WindowID{Kind: KindApp, App: id}
}

// SystemWindowID returns the id of a manager-owned window.
func SystemWindowID(s SystemWindow) WindowID {
	return WindowID{Kind: KindSystem, System: s}
}

// AsApp returns the application id when w is an app window.
func (w WindowID) AsApp() (AppID, bool) {
	if w.Kind != KindApp {
		return 0, false
	}
	return w.App, true
}

// IsSystem reports whether w is manager-owned.
func (w WindowID) IsSystem() bool { return w.Kind == KindSystem }

func (w WindowID) String() string {
	if w.Kind == KindSystem {
		return w.System.String()
	}
	return fmt.Sprintf("app-%d", int(w.App))
}

// FocusRing is a cyclic ordering with a current element.
type FocusRing[T comparable] struct {
	order   []T
	current T
}

// NewFocusRing returns a ring whose current element is current.
func NewFocusRing[T comparable](current T) FocusRing[T] {
	return FocusRing[T]{current: current}
}

// SetOrder replaces the ordering. If current is no longer present it resets
// to the first element.
func (f *FocusRing[T]) SetOrder(order []T) {
	f.order = append(f.order[:0], order...)
	if len(f.order) > 0 && !f.contains(f.current) {
		f.current = f.order[0]
	}
}

// Retain rebuilds the ordering from active: entries already in the ring
// keep their relative order, new ones are appended in the order given.
func (f *FocusRing[T]) Retain(active []T) {
	order := slices.DeleteFunc(slices.Clone(f.order), func(v T) bool { return !slices.Contains(active, v) })
	for _, v := range active {
		if !slices.Contains(order, v) {
			order = append(order, v)
		}
	}
	f.SetOrder(order)
}

// Order returns the current ordering.
func (f *FocusRing[T]) Order() []T { return f.order }

// Current returns the focused element.
func (f *FocusRing[T]) Current() T { return f.current }

// SetCurrent focuses v.
func (f *FocusRing[T]) SetCurrent(v T) { f.current = v }

// Advance moves focus forward or backward, wrapping at either end.
func (f *FocusRing[T]) Advance(forward bool) {
	if len(f.order) == 0 {
		return
	}
	idx := f.index(f.current)
	if idx < 0 {
		f.current = f.order[0]
		return
	}
	n := len(f.order)
	if forward {
		idx = (idx + 1) % n
	} else {
		idx = (idx + n - 1) % n
	}
	f.current = f.order[idx]
}

func (f *FocusRing[T]) index(v T) int {
	for i, o := range f.order {
		if o == v {
			return i
		}
	}
	return -1
}

func (f *FocusRing[T]) contains(v T) bool { return f.index(v) >= 0 }
