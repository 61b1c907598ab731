package whiteboard

import "go.jetify.com/typeid/v2"

// WidgetType distinguishes the families of widgets.
type WidgetType uint8

const (
	WidgetShape         WidgetType = iota // user-drawn shapes
	WidgetText                            // text boxes
	WidgetMultiSelector                   // marquee rectangle
	WidgetBorder                          // selection outline
)

func (t WidgetType) String() string {
	switch t {
	case WidgetShape:
		return "shape"
	case WidgetText:
		return "text"
	case WidgetMultiSelector:
		return "multiSelector"
	case WidgetBorder:
		return "border"
	default:
		return "unknown"
	}
}

// widgetNode is implemented by Widget and every type embedding it.
type widgetNode interface {
	Node
	widget() *Widget
}

// contentDrawer is implemented by widget variants that draw something of
// their own. Drawing happens in the widget's local space.
type contentDrawer interface {
	drawContent(s Surface)
}

// Widget is a positioned, sized layer.
//
// Bounds is the widget's rectangle translated by the positions of all
// ancestor widgets; non-widget layers contribute nothing. It is recomputed
// synchronously on every position or size change, for the widget and all
// of its descendant widgets.
type Widget struct {
	Layer

	ID       string
	Type     WidgetType
	Selected bool

	// BoundsChanged fires after an interactive widget's bounds change.
	BoundsChanged *Signal[*Widget]

	x, y          float64
	width, height float64
	bounds        BoundingBox
	localBounds   BoundingBox
}

// NewWidget creates a plain widget with no content of its own.
func NewWidget(t WidgetType, x, y, w, h float64) *Widget {
	wd := &Widget{}
	wd.init(wd, t, x, y, w, h)
	return wd
}

func (w *Widget) init(self Node, t WidgetType, x, y, width, height float64) {
	w.Name = "widget"
	w.Visible = true
	w.ID = typeid.MustGenerate("widget").String()
	w.Type = t
	w.BoundsChanged = NewSignal[*Widget](WithName("boundsChanged"))
	w.self = self
	w.x, w.y = x, y
	w.width, w.height = width, height
	w.updateBounds()
}

func (w *Widget) widget() *Widget { return w }

// AsWidget returns the Widget behind n, if n is one.
func AsWidget(n Node) (*Widget, bool) {
	if wn, ok := n.(widgetNode); ok {
		return wn.widget(), true
	}
	return nil, false
}

// AddWidget appends child to this widget's children.
func (w *Widget) AddWidget(child Node) {
	w.AddChild(child)
}

func (w *Widget) X() float64       { return w.x }
func (w *Widget) Y() float64       { return w.y }
func (w *Widget) Width() float64   { return w.width }
func (w *Widget) Height() float64  { return w.height }
func (w *Widget) Left() float64    { return w.x }
func (w *Widget) Top() float64     { return w.y }
func (w *Widget) Right() float64   { return w.x + w.width }
func (w *Widget) Bottom() float64  { return w.y + w.height }
func (w *Widget) CenterX() float64 { return w.x + w.width/2 }
func (w *Widget) CenterY() float64 { return w.y + w.height/2 }

// Bounds returns the cached global bounds. The box is owned by the widget
// and must not be mutated or held across a tick.
func (w *Widget) Bounds() *BoundingBox { return &w.bounds }

// LocalBounds returns the cached bounds in the widget's own space.
func (w *Widget) LocalBounds() *BoundingBox { return &w.localBounds }

// SetPosition moves the widget's top-left corner.
func (w *Widget) SetPosition(x, y float64) {
	w.x, w.y = x, y
	w.updateBounds()
}

// MoveBy translates the widget.
func (w *Widget) MoveBy(dx, dy float64) {
	w.SetPosition(w.x+dx, w.y+dy)
}

// SetSize resizes the widget, keeping its top-left corner.
func (w *Widget) SetSize(width, height float64) {
	w.width, w.height = width, height
	w.updateBounds()
}

func (w *Widget) SetX(x float64) { w.SetPosition(x, w.y) }
func (w *Widget) SetY(y float64) { w.SetPosition(w.x, y) }

func (w *Widget) SetWidth(width float64)   { w.SetSize(width, w.height) }
func (w *Widget) SetHeight(height float64) { w.SetSize(w.width, height) }

// SetLeft moves the widget so its left edge is at v. Size is unchanged.
func (w *Widget) SetLeft(v float64) { w.SetX(v) }

// SetTop moves the widget so its top edge is at v. Size is unchanged.
func (w *Widget) SetTop(v float64) { w.SetY(v) }

// SetRight moves the widget so its right edge is at v. Size is unchanged.
func (w *Widget) SetRight(v float64) { w.SetX(v - w.width) }

// SetBottom moves the widget so its bottom edge is at v. Size is unchanged.
func (w *Widget) SetBottom(v float64) { w.SetY(v - w.height) }

func (w *Widget) SetCenterX(v float64) { w.SetX(v - w.width/2) }
func (w *Widget) SetCenterY(v float64) { w.SetY(v - w.height/2) }

func (w *Widget) updateBounds() {
	w.localBounds = BoundingBox{Width: w.width, Height: w.height}

	gx, gy := w.x, w.y
	for p := w.parent; p != nil; p = p.parent {
		if pw, ok := AsWidget(p.node()); ok {
			gx += pw.x
			gy += pw.y
		}
	}
	w.bounds = BoundingBox{X: gx, Y: gy, Width: w.width, Height: w.height}

	if w.Interactive {
		w.BoundsChanged.Dispatch(w)
	}

	w.Each(func(n Node) bool {
		if cw, ok := AsWidget(n); ok {
			cw.updateBounds()
		}
		return true
	})
}

// Render translates to the widget's position, draws its content and then
// its children.
func (w *Widget) Render(s Surface) {
	if !w.Visible {
		return
	}
	s.Save()
	s.Translate(w.x, w.y)
	if d, ok := w.node().(contentDrawer); ok {
		d.drawContent(s)
	}
	w.renderChildren(s)
	s.Restore()
}

// Dispose detaches the widget and drops every BoundsChanged listener.
func (w *Widget) Dispose() {
	w.RemoveFromParent()
	w.BoundsChanged.Dispose()
}
