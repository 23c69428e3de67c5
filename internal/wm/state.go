package wm

// AppState holds the UI flags that outlive a single frame.
type AppState struct {
	mouseCapture    bool
	captureDirty    bool
	menuSelected    int
	debugLogVisible bool
}

func newAppState() AppState {
	return AppState{mouseCapture: true}
}

// MouseCapture reports whether mouse capture is on.
func (s AppState) MouseCapture() bool { return s.mouseCapture }

// SetMouseCapture sets the flag and marks it dirty when it changes.
func (s *AppState) SetMouseCapture(enabled bool) {
	if s.mouseCapture == enabled {
		return
	}
	s.mouseCapture = enabled
	s.captureDirty = true
}

// TakeMouseCaptureChange returns the flag and true once per change.
func (s *AppState) TakeMouseCaptureChange() (bool, bool) {
	if !s.captureDirty {
		return s.mouseCapture, false
	}
	s.captureDirty = false
	return s.mouseCapture, true
}

// MenuSelected returns the highlighted menu row.
func (s AppState) MenuSelected() int { return s.menuSelected }

// DebugLogVisible reports whether the diagnostic window is shown.
func (s AppState) DebugLogVisible() bool { return s.debugLogVisible }
