package whiteboard

import (
	"log/slog"
	"math"
	"time"
)

// Gesture thresholds.
const (
	// DoubleClickDelay is the longest gap between two ups of a double click.
	DoubleClickDelay = 300 * time.Millisecond
	// DoubleClickThreshold is the largest per-axis distance, in screen
	// pixels, between two ups of a double click.
	DoubleClickThreshold = 5.0
	// MoveThreshold is the per-axis distance below which the first move of
	// a press is treated as jitter.
	MoveThreshold = 3.0
)

// Events emitted by MouseController.
const (
	EventMouseDown   = "mouseDown"
	EventMouseMove   = "mouseMove"
	EventMouseUp     = "mouseUp"
	EventDoubleClick = "doubleClick"
)

// MouseEvent is a semantic pointer event. Pointer is Raw's position in
// world space under the canvas transform at the time of emission.
type MouseEvent struct {
	Raw     RawPointerEvent
	Pointer Vec2
	Canvas  *Canvas
}

// MouseController turns raw pointer signals into semantic gesture events.
//
// Raw moves are cached and forwarded at most once per canvas tick. The first
// move of a press is dropped when it strays less than MoveThreshold from the
// down point on either axis; later moves of the press always pass.
type MouseController struct {
	*Emitter[MouseEvent]

	canvas *Canvas
	raw    *RawInput
	logger *slog.Logger

	mouseDown      bool
	downX, downY   float64
	firstMoveTaken bool

	pending RawPointerEvent
	moved   bool

	lastClick    time.Time
	hasLastClick bool
	lastX, lastY float64
}

// NewMouseController creates an unstarted controller. Listener panics are
// logged to logger.
func NewMouseController(logger *slog.Logger) *MouseController {
	logger = componentLogger(logger, "mouse")
	return &MouseController{
		Emitter: NewEmitter[MouseEvent](logger),
		logger:  logger,
	}
}

// Start binds the controller to raw's signals and canvas's Tick.
func (m *MouseController) Start(canvas *Canvas, raw *RawInput) {
	m.canvas = canvas
	m.raw = raw
	canvas.Tick.AddContext(m, m.onTick)
	raw.PointerDown.AddContext(m, m.onDown)
	raw.PointerMove.AddContext(m, m.onMove)
	raw.PointerUp.AddContext(m, m.onUp)
}

// Dispose unbinds the controller from its sources and drops every listener.
func (m *MouseController) Dispose() {
	if m.canvas != nil {
		m.canvas.Tick.RemoveContext(m)
	}
	if m.raw != nil {
		m.raw.PointerDown.RemoveContext(m)
		m.raw.PointerMove.RemoveContext(m)
		m.raw.PointerUp.RemoveContext(m)
	}
	m.ClearEventListeners()
}

// IsMouseDown reports whether a press is in progress.
func (m *MouseController) IsMouseDown() bool { return m.mouseDown }

func (m *MouseController) onTick(struct{}) {
	if !m.moved {
		return
	}
	m.moved = false
	e := m.pending

	if m.mouseDown && !m.firstMoveTaken {
		m.firstMoveTaken = true
		dx := math.Abs(e.X - m.downX)
		dy := math.Abs(e.Y - m.downY)
		if dx < MoveThreshold || dy < MoveThreshold {
			m.logger.Debug("move suppressed as jitter", "dx", dx, "dy", dy)
			return
		}
	}
	m.Emit(EventMouseMove, m.wrap(e))
}

func (m *MouseController) onDown(e RawPointerEvent) {
	m.downX, m.downY = e.X, e.Y
	m.mouseDown = true
	m.firstMoveTaken = false
	m.Emit(EventMouseDown, m.wrap(e))
}

func (m *MouseController) onMove(e RawPointerEvent) {
	m.pending = e
	m.moved = true
}

func (m *MouseController) onUp(e RawPointerEvent) {
	ev := m.wrap(e)
	if m.hasLastClick && e.Time.Sub(m.lastClick) <= DoubleClickDelay {
		dx := math.Abs(e.X - m.lastX)
		dy := math.Abs(e.Y - m.lastY)
		if dx <= DoubleClickThreshold && dy <= DoubleClickThreshold {
			m.Emit(EventDoubleClick, ev)
		}
	}

	m.lastClick, m.hasLastClick = e.Time, true
	m.lastX, m.lastY = e.X, e.Y
	m.mouseDown = false
	m.firstMoveTaken = false

	m.Emit(EventMouseUp, ev)
}

func (m *MouseController) wrap(e RawPointerEvent) MouseEvent {
	wx, wy := m.canvas.ScreenToWorld(e.X, e.Y)
	return MouseEvent{Raw: e, Pointer: Vec2{X: wx, Y: wy}, Canvas: m.canvas}
}
