package whiteboard

// Wheel tuning.
const (
	wheelPanSpeed = 1.5
	wheelZoomOut  = 0.4
	wheelZoomIn   = 1.6
)

// WheelService pans the viewport on plain wheel input and zooms around the
// pointer when Ctrl or Meta is held. Wheel input is ignored during a press.
type WheelService struct {
	canvas *Canvas
	mouse  *MouseController
	raw    *RawInput
}

// NewWheelService creates an unstarted wheel handler.
func NewWheelService(canvas *Canvas, mouse *MouseController) *WheelService {
	return &WheelService{canvas: canvas, mouse: mouse}
}

// Start subscribes to raw's wheel signal.
func (w *WheelService) Start(raw *RawInput) {
	w.raw = raw
	raw.Wheel.AddContext(w, w.onWheel)
}

func (w *WheelService) onWheel(e WheelEvent) {
	if w.mouse != nil && w.mouse.IsMouseDown() {
		return
	}
	c := w.canvas
	tx, ty := c.Translate()

	if !e.Modifiers.Has(ModCtrl) && !e.Modifiers.Has(ModMeta) {
		speed := wheelPanSpeed / c.Zoom()
		c.SetTranslate(tx-e.DeltaX*speed, ty-e.DeltaY*speed)
		c.RequestRender()
		return
	}

	factor := wheelZoomIn
	if e.DeltaY > 0 {
		factor = wheelZoomOut
	}
	old := c.Zoom()
	c.SetZoom(old * factor)
	z := c.Zoom()
	c.SetTranslate(e.X/z-e.X/old+tx, e.Y/z-e.Y/old+ty)
	c.RequestRender()
}

// Dispose unsubscribes from the wheel signal.
func (w *WheelService) Dispose() {
	if w.raw != nil {
		w.raw.Wheel.RemoveContext(w)
	}
}
