package config

import "time"

// AppName names the config directory and the SSH banner.
const AppName = "termwm"

// DefaultTheme is the bubbletint theme used when none is configured.
const DefaultTheme = "dracula"

// =============================================================================
// Rendering
// =============================================================================

const (
	// NormalFPS is the tick rate of the UI loop.
	NormalFPS = 60
	// IdleFPS is the tick rate while nothing is animating or being dragged.
	IdleFPS = 20
)

// =============================================================================
// Windows
// =============================================================================

const (
	// DefaultWindowWidth is the width of a newly floated window.
	DefaultWindowWidth = 48
	// DefaultWindowHeight is the height of a newly floated window.
	DefaultWindowHeight = 14
	// CascadeStep offsets each new floating window from the previous one.
	CascadeStep = 2
)

// =============================================================================
// Input
// =============================================================================

// CaptureTimeout is how long the manager keeps keyboard capture after a
// focus change made while capturing.
const CaptureTimeout = 500 * time.Millisecond

// =============================================================================
// Notifications and logs
// =============================================================================

const (
	// MaxLogMessages bounds the in-app log ring.
	MaxLogMessages = 500
	// MaxNotifications bounds the visible notification stack.
	MaxNotifications = 4
	// NotificationDuration is how long a notification stays up.
	NotificationDuration = 3 * time.Second
)

// =============================================================================
// System monitor
// =============================================================================

const (
	// CPUUpdateInterval is how often CPU and memory are sampled.
	CPUUpdateInterval = 2 * time.Second
	// CPUHistoryLength is the number of samples the monitor pane keeps.
	CPUHistoryLength = 60
)

// =============================================================================
// Config reload
// =============================================================================

// ReloadDebounce coalesces the burst of events an editor save produces.
const ReloadDebounce = 150 * time.Millisecond

// =============================================================================
// SSH server
// =============================================================================

const (
	// DefaultSSHHost and DefaultSSHPort are the `termwm ssh` defaults.
	DefaultSSHHost = "localhost"
	DefaultSSHPort = "2222"
	// ShutdownTimeout bounds the graceful SSH shutdown.
	ShutdownTimeout = 5 * time.Second
)
