// Package theme provides color themes and styling for termwm chrome.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the built-in palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Window frame colors
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#6c6c80")
	}
	return t.BrightBlack
}

func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

func TitleFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff")
	}
	return t.BrightWhite
}

func TitleUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#a0a0a8")
	}
	return t.White
}

func WindowBg() color.Color {
	t := Current()
	if t == nil {
		return nil
	}
	return t.Bg
}

// Header button colors
func ButtonMinimize() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

func ButtonMaximize() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

func ButtonClose() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

// Split handle colors
func HandleIdle() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#3a3a4e")
	}
	return t.BrightBlack
}

func HandleHover() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ffff")
	}
	return t.BrightCyan
}

// Resize outline of the hovered floating window
func ResizeOutline() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffff00")
	}
	return t.BrightYellow
}

// Snap preview fill
func SnapPreview() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1f3a5f")
	}
	return t.Blue
}

// Panel colors
func PanelBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

func PanelFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

func PanelAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

func PanelFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

func PanelMinimized() color.Color {
	return lipgloss.Color("#606070")
}

func CaptureOn() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

func CaptureOff() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

// Menu and dialog colors
func MenuBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func MenuFg() color.Color {
	return lipgloss.Color("#e5e5e5")
}

func MenuBorder() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

func MenuSelected() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff"), lipgloss.Color("#ffffff")
	}
	return t.BrightBlue, t.Black
}

// Log viewer colors
func LogError() color.Color {
	return lipgloss.Color("9")
}

func LogWarn() color.Color {
	return lipgloss.Color("11")
}

func LogInfo() color.Color {
	return lipgloss.Color("10")
}

func LogDebug() color.Color {
	return lipgloss.Color("12")
}

func LogMuted() color.Color {
	return lipgloss.Color("8")
}

// Notification colors
func NotificationError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

func NotificationWarning() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

func NotificationSuccess() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

func NotificationInfo() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#0000ee")
	}
	return t.Blue
}

func NotificationFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// Help overlay colors
func HelpTitle() color.Color {
	return lipgloss.Color("14")
}

func HelpKey() color.Color {
	return lipgloss.Color("11")
}

func HelpText() color.Color {
	return lipgloss.Color("7")
}
