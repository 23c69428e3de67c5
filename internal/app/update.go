package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/termwm/internal/config"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, o *OS) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the frame ticker and the first system sample.
func (m *OS) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(config.NormalFPS),
		func() tea.Msg { return SampleSysInfo() },
	)
}

// TickCmd creates a command that generates tick messages at fps.
func TickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// tickRate runs at full speed during gestures and slows down otherwise.
func (m *OS) tickRate() int {
	if m.WM.Dragging() || m.WM.Resizing() {
		return config.NormalFPS
	}
	if t := m.WM.Tiling(); t != nil && t.Dragging() {
		return config.NormalFPS
	}
	return config.IdleFPS
}

// Update handles one message. Input is delegated to the registered
// InputHandler; the layout is re-registered afterwards so that the next
// View and the next hit test see the same geometry.
func (m *OS) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.Frame()
		return m, TickCmd(m.tickRate())

	case SysInfoMsg:
		m.SysInfo.Apply(msg)
		if msg.Err != nil {
			m.Logger.Debug("system sample failed", "err", msg.Err)
		}
		return m, SysInfoCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Frame()
		return m, nil

	case config.ConfigReloadedMsg:
		if msg.Err != nil {
			m.ShowNotification("Config not reloaded: "+msg.Err.Error(), "error", config.NotificationDuration)
			return m, nil
		}
		m.ApplyConfig(msg.Config)
		m.Frame()
		m.ShowNotification("Config reloaded", "success", config.NotificationDuration)
		return m, nil
	}

	if inputHandler == nil {
		return m, nil
	}
	model, cmd := inputHandler(msg, m)
	m.Frame()
	return model, cmd
}
