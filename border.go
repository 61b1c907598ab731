package whiteboard

// BorderColor is the stroke of selection outlines.
var BorderColor = RGBA(29, 78, 216, .8)

// Border outlines the merged bounds of a set of widgets.
//
// It listens only to the first widget's BoundsChanged. A change marks the
// border stale; the rectangle is re-derived on the canvas's next TickBefore,
// so a drag that moves the widget many times in one frame costs one merge.
type Border struct {
	Widget

	canvas  *Canvas
	targets []*Widget
	stale   bool
}

// NewBorder creates a border around widgets. widgets must not be empty.
func NewBorder(canvas *Canvas, widgets ...*Widget) *Border {
	if len(widgets) == 0 {
		panic("whiteboard: border needs at least one widget")
	}
	b := &Border{
		canvas:  canvas,
		targets: append([]*Widget(nil), widgets...),
	}
	r := b.merged()
	b.init(b, WidgetBorder, r.X, r.Y, r.Width, r.Height)
	b.Name = "border"

	b.targets[0].BoundsChanged.AddContext(b, b.onTargetChanged)
	canvas.TickBefore.AddContext(b, b.onTickBefore)
	return b
}

// Targets returns the widgets the border was built around.
func (b *Border) Targets() []*Widget { return b.targets }

// Stale reports whether a recompute is pending for the next tick.
func (b *Border) Stale() bool { return b.stale }

func (b *Border) merged() *BoundingBox {
	rects := make([]*BoundingBox, len(b.targets))
	for i, w := range b.targets {
		rects[i] = w.Bounds()
	}
	return MergedBounds(rects...)
}

func (b *Border) onTargetChanged(*Widget) {
	b.stale = true
}

func (b *Border) onTickBefore(struct{}) {
	if !b.stale {
		return
	}
	b.stale = false
	r := b.merged()
	b.SetPosition(r.X, r.Y)
	b.SetSize(r.Width, r.Height)
}

func (b *Border) drawContent(s Surface) {
	zoom := 1.0
	if b.canvas != nil && b.canvas.Zoom() > 0 {
		zoom = b.canvas.Zoom()
	}
	s.DrawRect(0, 0, b.width, b.height, StrokePaint(BorderColor, 1/zoom))
}

// Destroy unbinds the border from its target and the canvas and detaches
// it from its parent.
func (b *Border) Destroy() {
	b.targets[0].BoundsChanged.RemoveContext(b)
	b.canvas.TickBefore.RemoveContext(b)
	b.Dispose()
}
