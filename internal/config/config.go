// Package config loads, saves and watches the termwm configuration file and
// resolves key bindings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Behavior    BehaviorConfig    `toml:"behavior"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig controls how windows and chrome look.
type AppearanceConfig struct {
	// Theme is a bubbletint theme id, e.g. "dracula".
	Theme string `toml:"theme"`
	// BorderStyle is one of rounded, normal, thick, double, hidden or ascii.
	BorderStyle string `toml:"border_style"`
	ShowPanel   bool   `toml:"show_panel"`
	PanelHeight int    `toml:"panel_height"`
	ASCIIOnly   bool   `toml:"ascii_only"`
}

// BehaviorConfig controls window manager behavior.
type BehaviorConfig struct {
	FloatingResizeOffscreen bool `toml:"floating_resize_offscreen"`
	MinVisibleMargin        int  `toml:"min_visible_margin"`
	SnapSensitivity         int  `toml:"snap_sensitivity"`
	DoubleClickMs           int  `toml:"double_click_ms"`
	// EscPassthroughMs of zero selects the platform default.
	EscPassthroughMs int    `toml:"esc_passthrough_ms"`
	MouseCapture     bool   `toml:"mouse_capture"`
	NewWindowMode    string `toml:"new_window_mode"`
}

// KeybindingsConfig maps action names to key lists, per section.
type KeybindingsConfig struct {
	WindowManagement map[string][]string `toml:"window_management"`
	Layout           map[string][]string `toml:"layout"`
	System           map[string][]string `toml:"system"`
}

// New window placement modes.
const (
	NewWindowTile  = "tile"
	NewWindowFloat = "float"
)

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Theme:       DefaultTheme,
			BorderStyle: "rounded",
			ShowPanel:   true,
			PanelHeight: 1,
		},
		Behavior: BehaviorConfig{
			FloatingResizeOffscreen: true,
			MinVisibleMargin:        4,
			SnapSensitivity:         2,
			DoubleClickMs:           400,
			MouseCapture:            true,
			NewWindowMode:           NewWindowTile,
		},
		Keybindings: KeybindingsConfig{
			WindowManagement: map[string][]string{
				"new_window":      {"alt+n"},
				"close_window":    {"alt+w"},
				"minimize_window": {"alt+m"},
				"restore_all":     {"alt+M"},
				"toggle_maximize": {"alt+f"},
				"next_window":     {"alt+l"},
				"prev_window":     {"alt+h"},
			},
			Layout: map[string][]string{
				"tile_window":    {"alt+t"},
				"float_window":   {"alt+g"},
				"floating_front": {"alt+u"},
			},
			System: map[string][]string{
				"toggle_menu":          {"alt+space", "f10"},
				"toggle_debug_log":     {"ctrl+l"},
				"toggle_mouse_capture": {"alt+c"},
				"toggle_help":          {"alt+?"},
				"quit":                 {"ctrl+q"},
			},
		},
	}
}

// GetConfigPath returns $XDG_CONFIG_HOME/termwm/config.toml, creating the
// directory when needed.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(AppName, "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig loads the user configuration, writing the defaults on
// first run.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads path. A missing file is created with the defaults;
// fields absent from the file keep their default values.
func LoadConfigFile(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := SaveConfigFile(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML on top of the defaults and validates the result.
func ParseConfig(data []byte) (*UserConfig, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fillMissingBindings()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillMissingBindings restores default actions a file does not mention.
// An action bound to an empty list stays unbound.
func (c *UserConfig) fillMissingBindings() {
	def := DefaultConfig().Keybindings
	fill := func(dst *map[string][]string, src map[string][]string) {
		if *dst == nil {
			*dst = make(map[string][]string, len(src))
		}
		for action, keys := range src {
			if _, ok := (*dst)[action]; !ok {
				(*dst)[action] = keys
			}
		}
	}
	fill(&c.Keybindings.WindowManagement, def.WindowManagement)
	fill(&c.Keybindings.Layout, def.Layout)
	fill(&c.Keybindings.System, def.System)
}

// Validate checks value ranges and key syntax.
func (c *UserConfig) Validate() error {
	var problems []string
	if c.Appearance.PanelHeight < 1 {
		problems = append(problems, fmt.Sprintf("appearance.panel_height must be at least 1, got %d", c.Appearance.PanelHeight))
	}
	if _, ok := borderStyles[c.Appearance.BorderStyle]; !ok {
		problems = append(problems, fmt.Sprintf("appearance.border_style %q is not one of %s", c.Appearance.BorderStyle, strings.Join(BorderStyles(), ", ")))
	}
	if c.Behavior.MinVisibleMargin < 1 {
		problems = append(problems, "behavior.min_visible_margin must be at least 1")
	}
	if c.Behavior.SnapSensitivity < 1 {
		problems = append(problems, "behavior.snap_sensitivity must be at least 1")
	}
	if c.Behavior.DoubleClickMs < 0 || c.Behavior.EscPassthroughMs < 0 {
		problems = append(problems, "behavior durations must not be negative")
	}
	switch c.Behavior.NewWindowMode {
	case NewWindowTile, NewWindowFloat:
	default:
		problems = append(problems, fmt.Sprintf("behavior.new_window_mode %q must be %q or %q", c.Behavior.NewWindowMode, NewWindowTile, NewWindowFloat))
	}

	n := NewKeyNormalizer()
	for _, section := range c.Keybindings.sections() {
		for action, keys := range section.bindings {
			if _, ok := ActionDescriptions[action]; !ok {
				problems = append(problems, fmt.Sprintf("keybindings.%s: unknown action %q", section.name, action))
			}
			for _, k := range keys {
				if ok, reason := n.ValidateKey(k); !ok {
					problems = append(problems, fmt.Sprintf("keybindings.%s.%s: %s", section.name, action, reason))
				}
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	slices.Sort(problems)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

type bindingSection struct {
	name     string
	bindings map[string][]string
}

func (k KeybindingsConfig) sections() []bindingSection {
	return []bindingSection{
		{"window_management", k.WindowManagement},
		{"layout", k.Layout},
		{"system", k.System},
	}
}

// SaveConfig writes cfg to the user config path.
func SaveConfig(cfg *UserConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigFile(path, cfg)
}

// SaveConfigFile writes cfg to path with a short header.
func SaveConfigFile(path string, cfg *UserConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("# termwm configuration\n")
	sb.WriteString("# Each keybinding action takes a list of keys, e.g. new_window = [\"alt+n\"].\n")
	sb.WriteString("# An empty list unbinds the action.\n\n")
	sb.Write(data)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DoubleClick returns the header double-click window.
func (b BehaviorConfig) DoubleClick() time.Duration {
	return time.Duration(b.DoubleClickMs) * time.Millisecond
}

// EscPassthrough returns the configured Esc passthrough window; zero means
// the platform default.
func (b BehaviorConfig) EscPassthrough() time.Duration {
	return time.Duration(b.EscPassthroughMs) * time.Millisecond
}

var borderStyles = map[string]func() lipgloss.Border{
	"rounded": lipgloss.RoundedBorder,
	"normal":  lipgloss.NormalBorder,
	"thick":   lipgloss.ThickBorder,
	"double":  lipgloss.DoubleBorder,
	"hidden":  lipgloss.HiddenBorder,
	"ascii":   lipgloss.ASCIIBorder,
}

// BorderStyles lists the accepted border_style values.
func BorderStyles() []string {
	names := make([]string, 0, len(borderStyles))
	for name := range borderStyles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetBorderForStyle returns the window border for the appearance settings.
// ascii_only forces the ASCII border.
func (a AppearanceConfig) GetBorderForStyle() lipgloss.Border {
	if a.ASCIIOnly {
		return lipgloss.ASCIIBorder()
	}
	if fn, ok := borderStyles[a.BorderStyle]; ok {
		return fn()
	}
	return lipgloss.RoundedBorder()
}
