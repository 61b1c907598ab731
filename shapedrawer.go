package whiteboard

import "math"

// Deferrer runs a function after the current event has been handled.
type Deferrer interface {
	Defer(fn func())
}

// ShapeDrawerToolService is the CREATE mode tool. A press drops a 1x1 shape
// of the active sub-mode, dragging sizes it from the press point, and the
// release selects it and returns to SELECT. Shift keeps the shape square.
type ShapeDrawerToolService struct {
	mouse     *MouseController
	tools     *ToolService
	selection *SelectionService
	stage     *Stage
	canvas    *Canvas
	deferrer  Deferrer

	active  bool
	kind    ShapeKind
	origin  Vec2
	drawing *Shape

	// Options styles new shapes.
	Options ShapeOptions
}

// NewShapeDrawerToolService creates the tool and follows both mode signals.
func NewShapeDrawerToolService(mouse *MouseController, tools *ToolService, selection *SelectionService,
	stage *Stage, canvas *Canvas, deferrer Deferrer) *ShapeDrawerToolService {
	d := &ShapeDrawerToolService{
		mouse:     mouse,
		tools:     tools,
		selection: selection,
		stage:     stage,
		canvas:    canvas,
		deferrer:  deferrer,
	}
	tools.MainModeChanged.AddContext(d, func(MainModeChange) { d.sync() })
	tools.SubModeChanged.AddContext(d, func(SubModeChange) { d.sync() })
	return d
}

// Active reports whether the tool holds the pointer bindings.
func (d *ShapeDrawerToolService) Active() bool { return d.active }

// Drawing returns the shape being drawn, or nil.
func (d *ShapeDrawerToolService) Drawing() *Shape { return d.drawing }

func shapeKindFor(sub SubMode) (ShapeKind, bool) {
	switch sub {
	case SubModeRectangle:
		return ShapeRectangle, true
	case SubModeTriangle:
		return ShapeTriangle, true
	case SubModeEllipse:
		return ShapeEllipse, true
	}
	return 0, false
}

func (d *ShapeDrawerToolService) sync() {
	d.reset()
	mode := d.tools.Mode()
	kind, ok := shapeKindFor(mode.Sub)
	d.active = mode.Main == ModeCreate && ok
	if d.active {
		d.kind = kind
		bindPointer(d.mouse, d, d.onDown, d.onMove, d.onUp)
	}
}

func (d *ShapeDrawerToolService) onDown(e MouseEvent) {
	p := e.Pointer
	d.origin = p
	d.drawing = NewShape(d.kind, p.X, p.Y, 1, 1, d.Options)
	d.stage.AddWidget(d.drawing)
	d.canvas.RequestRender()
}

func (d *ShapeDrawerToolService) onMove(e MouseEvent) {
	s := d.drawing
	if s == nil {
		return
	}
	p := e.Pointer
	w := math.Abs(p.X - d.origin.X)
	h := math.Abs(p.Y - d.origin.Y)
	if e.Raw.Modifiers.Has(ModShift) {
		w = math.Max(w, h)
		h = w
	}
	s.SetSize(w, h)

	if p.X > d.origin.X {
		s.SetLeft(d.origin.X)
	} else {
		s.SetRight(d.origin.X)
	}
	if p.Y > d.origin.Y {
		s.SetTop(d.origin.Y)
	} else {
		s.SetBottom(d.origin.Y)
	}
	d.canvas.RequestRender()
}

func (d *ShapeDrawerToolService) onUp(MouseEvent) {
	s := d.drawing
	if s == nil {
		return
	}
	d.drawing = nil
	d.selection.SelectWidget(&s.Widget)
	// Switching tools unbinds this tool's handlers; do it after the up
	// dispatch has finished.
	d.deferrer.Defer(func() {
		d.tools.ChangeTool(ModeSelect, SubModeNone)
	})
}

func (d *ShapeDrawerToolService) reset() {
	unbindPointer(d.mouse, d)
	d.drawing = nil
}

// Dispose unbinds the tool.
func (d *ShapeDrawerToolService) Dispose() {
	d.reset()
	d.active = false
	d.tools.MainModeChanged.RemoveContext(d)
	d.tools.SubModeChanged.RemoveContext(d)
}
