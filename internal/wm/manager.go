package wm

import (
	"io"
	"runtime"
	"time"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/termwm/internal/debuglog"
	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/panel"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

// LayoutContract selects who owns window geometry.
type LayoutContract int

const (
	// AppManaged means the host sets regions itself and the manager only
	// tracks focus.
	AppManaged LayoutContract = iota
	// WindowManaged means the manager owns the tiling tree, floating windows
	// and chrome.
	WindowManaged
)

const (
	// DefaultMinVisibleMargin is how many cells of an off-screen window stay visible.
	DefaultMinVisibleMargin = 4
	// DefaultSnapSensitivity is the distance from a screen edge that stages a snap.
	DefaultSnapSensitivity = 2
	// DefaultDoubleClick is the header double-click window.
	DefaultDoubleClick = 400 * time.Millisecond
	// SnapDragThreshold is the cumulative motion before a snap preview shows.
	SnapDragThreshold = 2
)

// DefaultEscPassthrough returns the platform Esc passthrough window.
func DefaultEscPassthrough() time.Duration {
	if runtime.GOOS == "windows" {
		return 1200 * time.Millisecond
	}
	return 600 * time.Millisecond
}

// Options configures a WindowManager. Zero values select the defaults.
type Options struct {
	// AppFocus is the initial application-level focus.
	AppFocus AppID
	// Offscreen allows floating windows to hang past the managed area.
	Offscreen bool
	// MinVisibleMargin is the number of cells kept on-screen when Offscreen is set.
	MinVisibleMargin int
	// SnapSensitivity is the screen edge snap distance in cells.
	SnapSensitivity int
	// DoubleClick is the header double-click window.
	DoubleClick time.Duration
	// EscPassthrough is how long after opening the menu a second Esc is
	// passed to the focused window.
	EscPassthrough time.Duration
	// Logger receives structural transitions. It defaults to a logger
	// writing into DebugLog's buffer.
	Logger *log.Logger
	// DebugLog is the manager-owned diagnostic window.
	DebugLog *debuglog.Window
	// Decorator draws window frames.
	Decorator Decorator
	// Now overrides the clock in tests.
	Now func() time.Time
}

// DefaultOptions returns the options used by the binary.
func DefaultOptions() Options {
	return Options{
		Offscreen:        true,
		MinVisibleMargin: DefaultMinVisibleMargin,
		SnapSensitivity:  DefaultSnapSensitivity,
		DoubleClick:      DefaultDoubleClick,
		EscPassthrough:   DefaultEscPassthrough(),
	}
}

type headerDrag struct {
	id         WindowID
	start      layout.FloatRect
	startCol   int
	startRow   int
	wasTiled   bool
	moved      bool
	lastCol    int
	lastRow    int
	snapTarget *WindowID
	snapPos    layout.InsertPosition
	snapRect   layout.Rect
	snapStaged bool
}

type resizeDrag struct {
	id       WindowID
	edge     layout.ResizeEdge
	start    layout.FloatRect
	startCol int
	startRow int
}

type headerClick struct {
	id  WindowID
	at  time.Time
	col int
	row int
}

// WindowManager owns window geometry, stacking and focus for one UI. It is
// not safe for concurrent use; every method runs on the UI goroutine.
type WindowManager struct {
	contract LayoutContract

	appFocus FocusRing[AppID]
	wmFocus  FocusRing[WindowID]

	windows map[WindowID]*Window
	nextSeq uint64

	regions       layout.RegionMap[WindowID]
	frames        map[WindowID]layout.FloatRect
	handles       []layout.SplitHandle
	resizeHandles []layout.ResizeHandle[WindowID]
	headers       []layout.DragHandle[WindowID]
	drawOrder     []WindowID
	zOrder        []WindowID
	tiling        *layout.TilingLayout[WindowID]
	closedApps    []AppID

	screen      layout.Rect
	managedArea layout.Rect
	panel       *panel.Panel
	status      string

	drag      *headerDrag
	resize    *resizeDrag
	lastClick *headerClick
	hover     *[2]int

	state           AppState
	captureDeadline time.Time
	pendingDeadline time.Time
	overlay         Overlay
	menuOpenedAt    time.Time

	offscreen      bool
	margin         int
	snapSens       int
	doubleClick    time.Duration
	escPassthrough time.Duration
	decorator      Decorator
	scratch        *ui.Canvas

	debugLog   *debuglog.Window
	debugLogID WindowID

	logger *log.Logger
	now    func() time.Time
}

// New returns an AppManaged window manager.
func New(opts Options) *WindowManager {
	def := DefaultOptions()
	if opts.MinVisibleMargin <= 0 {
		opts.MinVisibleMargin = def.MinVisibleMargin
	}
	if opts.SnapSensitivity <= 0 {
		opts.SnapSensitivity = def.SnapSensitivity
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = def.DoubleClick
	}
	if opts.EscPassthrough <= 0 {
		opts.EscPassthrough = def.EscPassthrough
	}
	if opts.DebugLog == nil {
		opts.DebugLog = debuglog.NewWindow(debuglog.NewBuffer(debuglog.DefaultMaxLines))
	}
	if opts.Logger == nil {
		opts.Logger = debuglog.NewLogger(opts.DebugLog.Buffer(), "wm")
	}
	if opts.Decorator == nil {
		opts.Decorator = NewFrameDecorator()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	debugID := SystemWindowID(SystemDebugLog)
	return &WindowManager{
		contract:       AppManaged,
		appFocus:       NewFocusRing(opts.AppFocus),
		wmFocus:        NewFocusRing(debugID),
		windows:        make(map[WindowID]*Window),
		frames:         make(map[WindowID]layout.FloatRect),
		panel:          panel.New(),
		state:          newAppState(),
		offscreen:      opts.Offscreen,
		margin:         opts.MinVisibleMargin,
		snapSens:       opts.SnapSensitivity,
		doubleClick:    opts.DoubleClick,
		escPassthrough: opts.EscPassthrough,
		decorator:      opts.Decorator,
		debugLog:       opts.DebugLog,
		debugLogID:     debugID,
		logger:         opts.Logger,
		now:            opts.Now,
	}
}

// NewManaged returns a WindowManaged window manager.
func NewManaged(opts Options) *WindowManager {
	m := New(opts)
	m.contract = WindowManaged
	return m
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Contract returns the layout contract.
func (m *WindowManager) Contract() LayoutContract { return m.contract }

// SetContract switches the layout contract.
func (m *WindowManager) SetContract(c LayoutContract) { m.contract = c }

// Logger returns the structural transition logger.
func (m *WindowManager) Logger() *log.Logger { return m.logger }

// DebugLog returns the manager-owned diagnostic window.
func (m *WindowManager) DebugLog() *debuglog.Window { return m.debugLog }

// DebugLogID returns the id of the diagnostic window.
func (m *WindowManager) DebugLogID() WindowID { return m.debugLogID }

// Offscreen reports whether floating windows may hang past the managed area.
func (m *WindowManager) Offscreen() bool { return m.offscreen }

// SetOffscreen toggles off-screen floating placement.
func (m *WindowManager) SetOffscreen(enabled bool) { m.offscreen = enabled }

// SetMinVisibleMargin sets how many cells of an off-screen window stay visible.
func (m *WindowManager) SetMinVisibleMargin(n int) { m.margin = max(n, 1) }

// SetSnapSensitivity sets the screen edge snap distance.
func (m *WindowManager) SetSnapSensitivity(n int) { m.snapSens = max(n, 1) }

// SetDoubleClick sets the header double-click window.
func (m *WindowManager) SetDoubleClick(d time.Duration) {
	if d > 0 {
		m.doubleClick = d
	}
}

// SetEscPassthrough sets the Esc passthrough window. Zero restores the
// platform default.
func (m *WindowManager) SetEscPassthrough(d time.Duration) {
	if d <= 0 {
		d = DefaultEscPassthrough()
	}
	m.escPassthrough = d
}

// Panel returns the panel chrome.
func (m *WindowManager) Panel() *panel.Panel { return m.panel }

// SetPanelVisible shows or hides the panel.
func (m *WindowManager) SetPanelVisible(v bool) { m.panel.SetVisible(v) }

// SetPanelHeight sets the panel row count.
func (m *WindowManager) SetPanelHeight(h int) { m.panel.SetHeight(h) }

// SetStatus sets the optional panel status badge.
func (m *WindowManager) SetStatus(s string) { m.status = s }

func (m *WindowManager) panelActive() bool {
	return m.contract == WindowManaged && m.panel.Visible() && m.panel.Height() > 0
}

// ManagedArea returns the area windows are laid out in this frame.
func (m *WindowManager) ManagedArea() layout.Rect { return m.managedArea }

// Screen returns the full area passed to the last registration.
func (m *WindowManager) Screen() layout.Rect { return m.screen }

// TakeClosedAppWindows drains the app ids closed since the last call.
func (m *WindowManager) TakeClosedAppWindows() []AppID {
	out := m.closedApps
	m.closedApps = nil
	return out
}

// ---------------------------------------------------------------------------
// Focus
// ---------------------------------------------------------------------------

// Focus returns the application-level focus.
func (m *WindowManager) Focus() AppID { return m.appFocus.Current() }

// SetFocus sets the application-level focus.
func (m *WindowManager) SetFocus(id AppID) { m.appFocus.SetCurrent(id) }

// SetFocusOrder sets the application-level focus ordering.
func (m *WindowManager) SetFocusOrder(order []AppID) { m.appFocus.SetOrder(order) }

// AdvanceFocus cycles the application-level focus.
func (m *WindowManager) AdvanceFocus(forward bool) { m.appFocus.Advance(forward) }

// WMFocus returns the window receiving raw input.
func (m *WindowManager) WMFocus() WindowID { return m.wmFocus.Current() }

// WMFocusApp returns the focused app window, if the WM focus is one.
func (m *WindowManager) WMFocusApp() (AppID, bool) { return m.wmFocus.Current().AsApp() }

// WMFocusOrder returns the WM focus ordering.
func (m *WindowManager) WMFocusOrder() []WindowID { return m.wmFocus.Order() }

// SetWMFocus focuses id and mirrors the change into the application ring
// when id is an app window the ring knows about.
func (m *WindowManager) SetWMFocus(id WindowID) {
	m.wmFocus.SetCurrent(id)
	m.syncAppFocus(id)
}

// AdvanceWMFocus cycles the WM focus and mirrors it like SetWMFocus.
func (m *WindowManager) AdvanceWMFocus(forward bool) {
	m.wmFocus.Advance(forward)
	m.syncAppFocus(m.wmFocus.Current())
}

func (m *WindowManager) syncAppFocus(id WindowID) {
	app, ok := id.AsApp()
	if !ok {
		return
	}
	if m.appFocus.contains(app) {
		m.appFocus.SetCurrent(app)
	}
}

func (m *WindowManager) selectFallbackFocus() {
	order := m.wmFocus.Order()
	for _, id := range order {
		if w, ok := m.windows[id]; ok && w.Minimized {
			continue
		}
		m.SetWMFocus(id)
		return
	}
}

// BringFocusToFront raises the WM-focused window.
func (m *WindowManager) BringFocusToFront() {
	if m.contract != WindowManaged {
		return
	}
	m.BringToFront(m.wmFocus.Current())
}

// ---------------------------------------------------------------------------
// Frame lifecycle and capture
// ---------------------------------------------------------------------------

// BeginFrame resets per-frame geometry and expires capture deadlines.
func (m *WindowManager) BeginFrame() {
	m.regions.Reset()
	clear(m.frames)
	m.handles = m.handles[:0]
	m.resizeHandles = m.resizeHandles[:0]
	m.headers = m.headers[:0]
	m.drawOrder = m.drawOrder[:0]
	if m.contract == AppManaged {
		m.ClearCapture()
	} else {
		m.refreshCapture()
	}
}

// ArmCapture starts the keyboard command capture window.
func (m *WindowManager) ArmCapture(timeout time.Duration) {
	m.captureDeadline = m.now().Add(timeout)
	m.pendingDeadline = time.Time{}
}

// ArmPending shows the "Esc pending" badge for timeout.
func (m *WindowManager) ArmPending(timeout time.Duration) {
	m.pendingDeadline = m.now().Add(timeout)
}

// PendingActive reports whether the Esc pending badge is showing.
func (m *WindowManager) PendingActive() bool {
	m.refreshCapture()
	return !m.pendingDeadline.IsZero()
}

// ClearCapture drops both deadlines and closes the menu overlay.
func (m *WindowManager) ClearCapture() {
	m.captureDeadline = time.Time{}
	m.pendingDeadline = time.Time{}
	if _, ok := m.overlay.(*MenuOverlay); ok {
		m.overlay = nil
	}
	m.menuOpenedAt = time.Time{}
	m.state.menuSelected = 0
	m.panel.Menu().Close()
}

// CaptureActive reports whether the manager is capturing input for itself.
func (m *WindowManager) CaptureActive() bool {
	if !m.state.mouseCapture {
		return false
	}
	if m.contract == WindowManaged && m.MenuVisible() {
		return true
	}
	m.refreshCapture()
	return !m.captureDeadline.IsZero()
}

func (m *WindowManager) refreshCapture() {
	now := m.now()
	if !m.captureDeadline.IsZero() && now.After(m.captureDeadline) {
		m.captureDeadline = time.Time{}
	}
	if !m.pendingDeadline.IsZero() && now.After(m.pendingDeadline) {
		m.pendingDeadline = time.Time{}
	}
}

// MouseCaptureEnabled reports whether the UI consumes mouse events.
func (m *WindowManager) MouseCaptureEnabled() bool { return m.state.mouseCapture }

// SetMouseCaptureEnabled sets the mouse capture flag.
func (m *WindowManager) SetMouseCaptureEnabled(enabled bool) {
	m.state.SetMouseCapture(enabled)
	if !enabled {
		m.ClearCapture()
	}
}

// ToggleMouseCapture flips the mouse capture flag.
func (m *WindowManager) ToggleMouseCapture() {
	m.SetMouseCaptureEnabled(!m.state.mouseCapture)
	m.logger.Debug("mouse capture toggled", "enabled", m.state.mouseCapture)
}

// TakeMouseCaptureChange returns the new capture flag once after it changes.
func (m *WindowManager) TakeMouseCaptureChange() (bool, bool) {
	return m.state.TakeMouseCaptureChange()
}

// State returns a copy of the UI state flags.
func (m *WindowManager) State() AppState { return m.state }
