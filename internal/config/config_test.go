package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/termwm/internal/config"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Appearance.Theme != config.DefaultTheme {
		t.Errorf("Expected theme %q, got %q", config.DefaultTheme, cfg.Appearance.Theme)
	}
	if cfg.Appearance.BorderStyle == "" {
		t.Error("Expected default border style to be set")
	}
	if cfg.Appearance.PanelHeight != 1 {
		t.Errorf("Expected panel height 1, got %d", cfg.Appearance.PanelHeight)
	}
	if !cfg.Behavior.FloatingResizeOffscreen {
		t.Error("Expected offscreen floating resize to default on")
	}
	if cfg.Behavior.DoubleClick() != 400*time.Millisecond {
		t.Errorf("Expected 400ms double click, got %v", cfg.Behavior.DoubleClick())
	}
	if cfg.Behavior.EscPassthrough() != 0 {
		t.Errorf("Expected platform default Esc passthrough, got %v", cfg.Behavior.EscPassthrough())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestDefaultKeybindings(t *testing.T) {
	cfg := config.DefaultConfig()

	windowMgmt := cfg.Keybindings.WindowManagement
	if windowMgmt == nil {
		t.Fatal("Window management keybindings are nil")
	}

	requiredActions := []string{
		"new_window",
		"close_window",
		"next_window",
		"prev_window",
	}

	for _, action := range requiredActions {
		keys, ok := windowMgmt[action]
		if !ok {
			t.Errorf("Expected %s keybinding to exist", action)
			continue
		}
		if len(keys) == 0 {
			t.Errorf("Expected %s to have at least one key bound", action)
		}
	}
}

// =============================================================================
// KeybindRegistry Tests
// =============================================================================

func TestKeybindRegistry_GetKeys(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	keys := registry.GetKeys("toggle_menu")
	if !slices.Equal(keys, []string{"alt+space", "f10"}) {
		t.Errorf("Expected toggle_menu keys [alt+space f10], got %v", keys)
	}
}

func TestKeybindRegistry_GetAction(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	tests := []struct {
		key    string
		action string
	}{
		{"alt+n", "new_window"},
		{"Alt+n", "new_window"},
		{"alt+m", "minimize_window"},
		{"alt+M", "restore_all"},
		{"alt+shift+m", "restore_all"},
		{"shift+alt+m", "restore_all"},
		{"CTRL+Q", "quit"},
		{"f10", "toggle_menu"},
		{"alt+?", "toggle_help"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := registry.GetAction(tc.key); got != tc.action {
				t.Errorf("GetAction(%q) = %q, want %q", tc.key, got, tc.action)
			}
		})
	}
}

func TestKeybindRegistry_GetKeysForDisplay(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	if got := registry.GetKeysForDisplay("toggle_menu"); got != "Alt+Space, F10" {
		t.Errorf("Expected %q, got %q", "Alt+Space, F10", got)
	}
	if got := registry.GetKeysForDisplay("nonexistent_action"); got != "" {
		t.Errorf("Expected empty display for unknown action, got %q", got)
	}
}

func TestKeybindRegistry_UnknownAction(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	keys := registry.GetKeys("nonexistent_action")
	if len(keys) != 0 {
		t.Errorf("Expected empty keys for nonexistent action, got %v", keys)
	}
}

func TestKeybindRegistry_UnknownKey(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	action := registry.GetAction("ctrl+shift+alt+super+x")
	if action != "" {
		t.Errorf("Expected empty action for unbound key, got %q", action)
	}
}

func TestKeybindRegistry_EarlierSectionWins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings.System["quit"] = []string{"alt+n"}
	registry := config.NewKeybindRegistry(cfg)

	if got := registry.GetAction("alt+n"); got != "new_window" {
		t.Errorf("Expected window_management binding to win, got %q", got)
	}
}

func TestKeybindRegistry_NilConfig(t *testing.T) {
	registry := config.NewKeybindRegistry(nil)
	if got := registry.GetAction("ctrl+q"); got != "quit" {
		t.Errorf("Expected defaults for nil config, got %q", got)
	}
}

// =============================================================================
// Key Normalizer Tests
// =============================================================================

func TestKeyNormalizer(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input    string
		expected []string
	}{
		{"ctrl+a", []string{"ctrl+a"}},
		{"Ctrl+A", []string{"ctrl+a"}},
		{"CTRL+A", []string{"ctrl+a"}},
		{"Shift+Alt+x", []string{"alt+shift+x"}},
		{"alt+M", []string{"alt+M", "alt+shift+m"}},
		{"return", []string{"return", "enter"}},
		{"Escape", []string{"escape", "esc"}},
		{"ctrl++", []string{"ctrl++"}},
		{"opt+Tab", []string{"alt+tab"}},
		{"", nil},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := normalizer.NormalizeKey(tc.input)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("NormalizeKey(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestKeyNormalizer_ValidateKey(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input   string
		isValid bool
	}{
		{"ctrl+a", true},
		{"n", true},
		{"enter", true},
		{"esc", true},
		{"tab", true},
		{"+", true},
		{"ctrl++", true},
		{"", false},
		{"hyper+x", false},
		{"ctrl+", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			valid, reason := normalizer.ValidateKey(tc.input)
			if valid != tc.isValid {
				t.Errorf("ValidateKey(%q) = %v (%s), want %v", tc.input, valid, reason, tc.isValid)
			}
			if !valid && reason == "" {
				t.Errorf("ValidateKey(%q) should explain the failure", tc.input)
			}
		})
	}
}

// =============================================================================
// Parsing Tests
// =============================================================================

func TestParseConfig_KeepsDefaults(t *testing.T) {
	data := []byte(`
[appearance]
theme = "nord"

[keybindings.system]
quit = ["ctrl+x"]
toggle_help = []
`)
	cfg, err := config.ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Appearance.Theme != "nord" {
		t.Errorf("Expected theme nord, got %q", cfg.Appearance.Theme)
	}
	if cfg.Appearance.BorderStyle != "rounded" {
		t.Errorf("Expected default border style, got %q", cfg.Appearance.BorderStyle)
	}

	registry := config.NewKeybindRegistry(cfg)
	if got := registry.GetAction("ctrl+x"); got != "quit" {
		t.Errorf("Expected ctrl+x to quit, got %q", got)
	}
	if got := registry.GetAction("ctrl+q"); got != "" {
		t.Errorf("Expected ctrl+q to be unbound, got %q", got)
	}
	if got := registry.GetAction("alt+n"); got != "new_window" {
		t.Errorf("Expected untouched section to keep defaults, got %q", got)
	}
	if got := registry.GetAction("ctrl+l"); got != "toggle_debug_log" {
		t.Errorf("Expected unmentioned system action to keep defaults, got %q", got)
	}
	if keys := registry.GetKeys("toggle_help"); len(keys) != 0 {
		t.Errorf("Expected empty list to unbind toggle_help, got %v", keys)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"panel height", "[appearance]\npanel_height = 0\n", true},
		{"border style", "[appearance]\nborder_style = \"wavy\"\n", true},
		{"margin", "[behavior]\nmin_visible_margin = 0\n", true},
		{"mode", "[behavior]\nnew_window_mode = \"stack\"\n", true},
		{"negative duration", "[behavior]\ndouble_click_ms = -1\n", true},
		{"unknown action", "[keybindings.layout]\nfly = [\"alt+z\"]\n", true},
		{"bad modifier", "[keybindings.system]\nquit = [\"hyper+q\"]\n", true},
		{"syntax", "[appearance\n", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.ParseConfig([]byte(tc.data))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if got := errors.Is(err, config.ErrInvalidConfig); got != tc.invalid {
				t.Errorf("errors.Is(ErrInvalidConfig) = %v, want %v (%v)", got, tc.invalid, err)
			}
		})
	}
}

func TestBorderForStyle(t *testing.T) {
	a := config.DefaultConfig().Appearance
	if got := a.GetBorderForStyle().TopLeft; got != "╭" {
		t.Errorf("Expected rounded corner, got %q", got)
	}
	a.ASCIIOnly = true
	if got := a.GetBorderForStyle().TopLeft; got != "+" {
		t.Errorf("Expected ASCII corner with ascii_only, got %q", got)
	}
	if !slices.Contains(config.BorderStyles(), "double") {
		t.Errorf("Expected double in %v", config.BorderStyles())
	}
}

// =============================================================================
// File Tests
// =============================================================================

func TestLoadConfigFile_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termwm", "config.toml")

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if cfg.Appearance.Theme != config.DefaultTheme {
		t.Errorf("Expected default theme, got %q", cfg.Appearance.Theme)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected config file to be written: %v", err)
	}
	if !strings.HasPrefix(string(data), "# termwm configuration") {
		t.Error("Expected header comment in written config")
	}

	again, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("Reloading written config failed: %v", err)
	}
	if !slices.Equal(again.Keybindings.System["toggle_menu"], cfg.Keybindings.System["toggle_menu"]) {
		t.Errorf("Round trip changed toggle_menu: %v", again.Keybindings.System["toggle_menu"])
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.SaveConfigFile(path, config.DefaultConfig()); err != nil {
		t.Fatalf("SaveConfigFile failed: %v", err)
	}

	msgs := make(chan config.ConfigReloadedMsg, 16)
	if err := config.Watch(t.Context(), path, func(m config.ConfigReloadedMsg) {
		select {
		case msgs <- m:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("[appearance]\ntheme = \"nord\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case m := <-msgs:
			if m.Err == nil && m.Config != nil && m.Config.Appearance.Theme == "nord" {
				return
			}
		case <-deadline:
			t.Fatal("Timed out waiting for reload")
		}
	}
}

// =============================================================================
// Help Tests
// =============================================================================

func TestActionDescriptions(t *testing.T) {
	cfg := config.DefaultConfig()
	for _, section := range []map[string][]string{
		cfg.Keybindings.WindowManagement,
		cfg.Keybindings.Layout,
		cfg.Keybindings.System,
	} {
		for action := range section {
			if desc := config.ActionDescriptions[action]; desc == "" {
				t.Errorf("Expected description for action %q", action)
			}
		}
	}
}

func TestGetKeybindings(t *testing.T) {
	sections := config.GetKeybindings(nil)
	if len(sections) == 0 {
		t.Fatal("Expected help sections")
	}
	if sections[0].Title != "Window Management" {
		t.Errorf("Expected first section Window Management, got %q", sections[0].Title)
	}
	if sections[0].Bindings[0].Key != "Alt+n" {
		t.Errorf("Expected first binding Alt+n, got %q", sections[0].Bindings[0].Key)
	}
	if sections[len(sections)-1].Title != "Menu" {
		t.Errorf("Expected Menu section last, got %q", sections[len(sections)-1].Title)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkKeybindRegistry_GetAction(b *testing.B) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetAction("alt+n")
	}
}

func BenchmarkKeybindRegistry_GetKeys(b *testing.B) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetKeys("new_window")
	}
}

func BenchmarkNormalizeKey(b *testing.B) {
	normalizer := config.NewKeyNormalizer()
	keys := []string{"ctrl+a", "Ctrl+Shift+B", "alt+1", "return"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = normalizer.NormalizeKey(keys[i%len(keys)])
	}
}
