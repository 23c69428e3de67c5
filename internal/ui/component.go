package ui

import (
	"time"

	"github.com/Gaurav-Gosain/termwm/internal/layout"
)

// Context carries per-frame information to components.
type Context struct {
	Focused bool
	Now     time.Time
}

// Component is anything that can live inside a window: it is told its
// content size, paints itself and consumes input. Mouse coordinates arrive
// relative to the component's top-left cell.
type Component interface {
	Resize(area layout.Rect)
	Render(c *Canvas, area layout.Rect, ctx Context)
	HandleEvent(ev Event, ctx Context) bool
}

// Titled components supply their own window title.
type Titled interface {
	Title() string
}
