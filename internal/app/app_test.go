package app

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/termwm/internal/config"
	"github.com/Gaurav-Gosain/termwm/internal/layout"
	"github.com/Gaurav-Gosain/termwm/internal/ui"
	"github.com/Gaurav-Gosain/termwm/internal/wm"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestOS(t *testing.T, cfg *config.UserConfig) (*OS, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)}
	o := NewOS(cfg, Options{
		Now:  clock.Now,
		Host: &HostCapabilities{TerminalName: "xterm", UTF8: true},
	})
	o.Width, o.Height = 120, 40
	o.Frame()
	return o, clock
}

// =============================================================================
// Windows
// =============================================================================

func TestNewWindowTiles(t *testing.T) {
	o, _ := newTestOS(t, nil)

	first := o.NewWindow()
	second := o.NewWindow()
	o.Frame()

	for _, id := range []wm.AppID{first, second} {
		if o.WM.IsFloating(wm.AppWindow(id)) {
			t.Errorf("window %v floats, want tiled", id)
		}
	}
	if got, _ := o.WM.WMFocusApp(); got != second {
		t.Errorf("focus = %v, want %v", got, second)
	}
	if got := o.AppIDs(); !slices.Equal(got, []wm.AppID{first, second}) {
		t.Errorf("AppIDs() = %v", got)
	}
	if o.Panes[first].Title() != "Notes 1" || o.Panes[second].Title() != "Keys 2" {
		t.Errorf("titles = %q, %q", o.Panes[first].Title(), o.Panes[second].Title())
	}
}

func TestNewWindowFloatsInCascade(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Behavior.NewWindowMode = config.NewWindowFloat
	o, _ := newTestOS(t, cfg)
	area := o.WM.ManagedArea()

	first := o.NewWindow()
	second := o.NewWindow()
	o.Frame()

	tests := []struct {
		id   wm.AppID
		want layout.FloatRect
	}{
		{first, layout.FloatRect{X: area.X + 2, Y: area.Y + 1, Width: config.DefaultWindowWidth, Height: config.DefaultWindowHeight}},
		{second, layout.FloatRect{X: area.X + 2 + config.CascadeStep, Y: area.Y + 1 + config.CascadeStep, Width: config.DefaultWindowWidth, Height: config.DefaultWindowHeight}},
	}
	for _, tt := range tests {
		wid := wm.AppWindow(tt.id)
		if !o.WM.IsFloating(wid) {
			t.Fatalf("window %v is not floating", tt.id)
		}
		if got, _ := o.WM.Frame(wid); got != tt.want {
			t.Errorf("Frame(%v) = %+v, want %+v", tt.id, got, tt.want)
		}
	}
}

func TestCloseFocusedDropsPane(t *testing.T) {
	o, _ := newTestOS(t, nil)
	first := o.NewWindow()
	second := o.NewWindow()
	o.Frame()

	o.CloseFocused()
	o.Frame()

	if _, ok := o.Panes[second]; ok {
		t.Error("closed pane still present")
	}
	if _, ok := o.Panes[first]; !ok {
		t.Error("other pane dropped")
	}
}

func TestRestoreAll(t *testing.T) {
	o, _ := newTestOS(t, nil)
	ids := []wm.AppID{o.NewWindow(), o.NewWindow()}
	o.Frame()
	for _, id := range ids {
		o.WM.Minimize(wm.AppWindow(id))
	}
	o.Frame()

	o.RestoreAll()
	o.Frame()

	for _, id := range ids {
		if o.WM.IsMinimized(wm.AppWindow(id)) {
			t.Errorf("window %v still minimized", id)
		}
	}
}

// =============================================================================
// Notifications and logging
// =============================================================================

func TestNotificationsExpire(t *testing.T) {
	o, clock := newTestOS(t, nil)

	o.ShowNotification("first", "info", time.Second)
	clock.Advance(500 * time.Millisecond)
	o.ShowNotification("second", "success", time.Second)

	clock.Advance(600 * time.Millisecond)
	o.Frame()
	if len(o.Notifications) != 1 || o.Notifications[0].Message != "second" {
		t.Fatalf("Notifications = %+v, want only second", o.Notifications)
	}

	clock.Advance(time.Second)
	o.Frame()
	if len(o.Notifications) != 0 {
		t.Errorf("Notifications = %+v, want none", o.Notifications)
	}
}

func TestNotificationsCapped(t *testing.T) {
	o, _ := newTestOS(t, nil)
	for i := range config.MaxNotifications + 2 {
		o.ShowNotification(strings.Repeat("x", i+1), "info", time.Minute)
	}
	if len(o.Notifications) != config.MaxNotifications {
		t.Fatalf("len(Notifications) = %d, want %d", len(o.Notifications), config.MaxNotifications)
	}
	if got := o.Notifications[0].Message; got != "xxx" {
		t.Errorf("oldest kept = %q, want %q", got, "xxx")
	}
}

func TestLogLevels(t *testing.T) {
	o, _ := newTestOS(t, nil)
	o.ShowNotification("disk full", "error", time.Second)
	o.LogWarn("slow frame %dms", 40)

	var levels []string
	for _, m := range o.LogMessages {
		levels = append(levels, m.Level)
	}
	if !slices.Equal(levels, []string{"ERROR", "WARN"}) {
		t.Errorf("levels = %v", levels)
	}
	if got := o.LogMessages[1].Message; got != "slow frame 40ms" {
		t.Errorf("Message = %q", got)
	}
}

// =============================================================================
// Config
// =============================================================================

func TestConfigReload(t *testing.T) {
	o, _ := newTestOS(t, nil)

	cfg := config.DefaultConfig()
	cfg.Appearance.BorderStyle = "double"
	cfg.Keybindings.System["quit"] = []string{"ctrl+x"}
	o.Update(config.ConfigReloadedMsg{Config: cfg})

	if o.Config != cfg {
		t.Error("config not installed")
	}
	if got := o.KeybindRegistry.GetAction("ctrl+x"); got != "quit" {
		t.Errorf("GetAction(ctrl+x) = %q, want quit", got)
	}
	if got := o.decorator.Border.TopLeft; got != "╔" {
		t.Errorf("border TopLeft = %q, want ╔", got)
	}

	o.Update(config.ConfigReloadedMsg{Err: errors.New("bad toml")})
	if o.Config != cfg {
		t.Error("failed reload replaced the config")
	}
	last := o.Notifications[len(o.Notifications)-1]
	if last.Type != "error" || !strings.Contains(last.Message, "bad toml") {
		t.Errorf("last notification = %+v", last)
	}
}

func TestNonUTF8HostUsesASCIIBorder(t *testing.T) {
	o := NewOS(nil, Options{Host: &HostCapabilities{UTF8: false}})
	if got := o.decorator.Border.TopLeft; got != "+" {
		t.Errorf("border TopLeft = %q, want +", got)
	}
}

func TestDetectHostCapabilities(t *testing.T) {
	tests := []struct {
		name string
		env  []string
		want HostCapabilities
	}{
		{"empty", nil, HostCapabilities{UTF8: true}},
		{"kitty", []string{"TERM=xterm-kitty", "LANG=en_US.UTF-8"}, HostCapabilities{TerminalName: "kitty", TrueColor: true, UTF8: true}},
		{"xterm colorterm", []string{"TERM=xterm-256color", "COLORTERM=truecolor"}, HostCapabilities{TerminalName: "xterm", TrueColor: true, UTF8: true}},
		{"plain xterm", []string{"TERM=xterm"}, HostCapabilities{TerminalName: "xterm", UTF8: true}},
		{"c locale", []string{"TERM=linux", "LANG=C"}, HostCapabilities{TerminalName: "linux"}},
		{"lc_all wins", []string{"LC_ALL=POSIX", "LANG=en_US.UTF-8"}, HostCapabilities{}},
		{"dumb", []string{"TERM=dumb", "LANG=en_US.utf8"}, HostCapabilities{TerminalName: "dumb"}},
		{"ghostty", []string{"TERM_PROGRAM=ghostty"}, HostCapabilities{TerminalName: "ghostty", TrueColor: true, UTF8: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectHostCapabilitiesFrom(Lookup(tt.env))
			if *got != tt.want {
				t.Errorf("DetectHostCapabilitiesFrom() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

// =============================================================================
// Help
// =============================================================================

func TestHelpLines(t *testing.T) {
	o, _ := newTestOS(t, nil)
	lines := o.HelpLines()

	if lines[0].Key != "" || lines[0].Text != "Window Management" {
		t.Errorf("first line = %+v, want the section heading", lines[0])
	}
	if lines[1].Key != "Alt+n" {
		t.Errorf("first binding key = %q, want Alt+n", lines[1].Key)
	}
	headings := 0
	for i, l := range lines {
		if l.Key == "" && l.Text != "" {
			headings++
			if i > 0 && lines[i-1] != (wm.HelpLine{}) {
				t.Errorf("heading %q not preceded by a blank line", l.Text)
			}
		}
	}
	if want := len(config.GetKeybindings(o.KeybindRegistry)); headings != want {
		t.Errorf("headings = %d, want %d", headings, want)
	}

	o.ShowHelp()
	if !o.WM.HelpVisible() {
		t.Error("ShowHelp() did not open the overlay")
	}
}

// =============================================================================
// Panes
// =============================================================================

func keyPress(code ui.Key, r rune, stroke string) ui.KeyEvent {
	return ui.KeyEvent{Code: code, Rune: r, Keystroke: stroke}
}

func TestNotesPaneEditing(t *testing.T) {
	p := newPane(NotesPaneKind, 1, &SysInfo{}).(*NotesPane)
	events := []ui.KeyEvent{
		keyPress(ui.KeyRune, 'h', "h"),
		keyPress(ui.KeyRune, 'i', "i"),
		keyPress(ui.KeySpace, ' ', "space"),
		keyPress(ui.KeyRune, 'x', "x"),
		keyPress(ui.KeyBackspace, 0, "backspace"),
		keyPress(ui.KeyEnter, 0, "enter"),
		keyPress(ui.KeyRune, 'y', "y"),
	}
	for _, ev := range events {
		if !p.HandleEvent(ev, ui.Context{Focused: true}) {
			t.Errorf("HandleEvent(%s) = false", ev.Keystroke)
		}
	}
	if got := p.Text(); got != "hi \ny" {
		t.Errorf("Text() = %q, want %q", got, "hi \ny")
	}

	ctrl := ui.KeyEvent{Code: ui.KeyRune, Rune: 'c', Mods: ui.ModCtrl, Keystroke: "ctrl+c"}
	if p.HandleEvent(ctrl, ui.Context{}) {
		t.Error("NotesPane consumed ctrl+c")
	}

	// Backspace at the start of a line joins it to the previous one.
	p.HandleEvent(keyPress(ui.KeyBackspace, 0, "backspace"), ui.Context{})
	p.HandleEvent(keyPress(ui.KeyBackspace, 0, "backspace"), ui.Context{})
	if got := p.Text(); got != "hi " {
		t.Errorf("Text() = %q, want %q", got, "hi ")
	}
}

func TestKeysPaneRecords(t *testing.T) {
	p := newPane(KeysPaneKind, 2, &SysInfo{}).(*KeysPane)

	if p.HandleEvent(keyPress(ui.KeyTab, 0, "tab"), ui.Context{}) {
		t.Error("KeysPane consumed Tab")
	}
	p.HandleEvent(keyPress(ui.KeyRune, 'a', "a"), ui.Context{})
	p.HandleEvent(keyPress(ui.KeyRune, 'a', "a"), ui.Context{})
	p.HandleEvent(keyPress(ui.KeyRune, 'a', "a"), ui.Context{})
	if p.HandleEvent(ui.MouseEvent{X: 1, Y: 1, Kind: ui.MouseMoved}, ui.Context{}) {
		t.Error("KeysPane consumed a hover")
	}
	p.HandleEvent(ui.MouseEvent{X: 2, Y: 3, Kind: ui.MouseDown, Button: ui.ButtonLeft}, ui.Context{})

	want := []string{"key tab", "key a ×3", "mouse down at 2,3"}
	if got := p.Events(); !slices.Equal(got, want) {
		t.Errorf("Events() = %q, want %q", got, want)
	}
}

func TestKeysPaneHistoryBounded(t *testing.T) {
	p := &KeysPane{}
	for i := range keysHistory + 10 {
		p.record(strings.Repeat("k", i+1))
	}
	if got := len(p.Events()); got != keysHistory {
		t.Errorf("len(Events()) = %d, want %d", got, keysHistory)
	}
}

// =============================================================================
// System info
// =============================================================================

func TestSysInfoApply(t *testing.T) {
	s := &SysInfo{}
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if s.Badge() != "" {
		t.Errorf("Badge() before a sample = %q, want empty", s.Badge())
	}
	for i := range config.CPUHistoryLength + 5 {
		s.Apply(SysInfoMsg{CPU: float64(i), MemUsed: 1 << 30, MemTotal: 4 << 30, At: at})
	}
	if len(s.CPUHistory) != config.CPUHistoryLength {
		t.Errorf("len(CPUHistory) = %d, want %d", len(s.CPUHistory), config.CPUHistoryLength)
	}
	if got := s.MemPercent(); got != 25 {
		t.Errorf("MemPercent() = %v, want 25", got)
	}
	s.Apply(SysInfoMsg{CPU: 140, MemUsed: 1 << 30, MemTotal: 4 << 30, At: at})
	if got := s.CPU(); got != 100 {
		t.Errorf("CPU() = %v, want clamped 100", got)
	}
	if got, want := s.Badge(), "cpu 100% · mem 1.0G/4.0G"; got != want {
		t.Errorf("Badge() = %q, want %q", got, want)
	}

	s.Apply(SysInfoMsg{Err: errors.New("no procfs"), At: at})
	if s.Badge() != "" {
		t.Error("Badge() shown after a failed sample")
	}
	if s.CPU() != 100 {
		t.Error("failed sample changed the history")
	}
}

func TestSparkline(t *testing.T) {
	s := &SysInfo{CPUHistory: []float64{0, 50, 100}}
	tests := []struct {
		width int
		want  string
	}{
		{0, ""},
		{2, "▅█"},
		{3, "▁▅█"},
		{5, "  ▁▅█"},
	}
	for _, tt := range tests {
		if got := s.Sparkline(tt.width); got != tt.want {
			t.Errorf("Sparkline(%d) = %q, want %q", tt.width, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{5 << 20, "5.0M"},
		{3 << 40, "3.0T"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// =============================================================================
// View
// =============================================================================

func TestViewMouseModeFollowsCapture(t *testing.T) {
	o, _ := newTestOS(t, nil)
	o.NewWindow()
	o.Frame()

	if got := o.View().MouseMode; got != tea.MouseModeAllMotion {
		t.Errorf("MouseMode = %v with capture on", got)
	}
	o.WM.SetMouseCaptureEnabled(false)
	if got := o.View().MouseMode; got != tea.MouseModeNone {
		t.Errorf("MouseMode = %v with capture off", got)
	}
}

func TestViewShowsNotification(t *testing.T) {
	o, _ := newTestOS(t, nil)
	o.ShowNotification("saved", "success", time.Minute)

	content := o.GetCanvas().Render()
	if !strings.Contains(content, "saved") {
		t.Error("notification text not rendered")
	}
}
