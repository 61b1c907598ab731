package whiteboard

// ShapeKind selects the geometry a Shape draws.
type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota
	ShapeTriangle
	ShapeEllipse
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeTriangle:
		return "triangle"
	case ShapeEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

const (
	shapeStrokeWidth = 2
	// Strokes straddle their path; inset by half the width so the outline
	// stays inside the widget's bounds.
	shapeStrokeInset = shapeStrokeWidth / 2
	maxCornerRadius  = 20
)

// ShapeOptions holds the optional style of a new Shape.
type ShapeOptions struct {
	Stroke *Color
	Fill   *Color
	// Radius rounds rectangle corners. Values outside 0..20 are ignored.
	Radius float64
}

// Shape is an interactive user-drawn widget.
type Shape struct {
	Widget

	Kind   ShapeKind
	Stroke Color
	Fill   Color
	Radius float64
}

// NewShape creates a shape of the given kind. Stroke defaults to black and
// fill to transparent.
func NewShape(kind ShapeKind, x, y, w, h float64, opts ShapeOptions) *Shape {
	s := &Shape{
		Kind:   kind,
		Stroke: ColorBlack,
		Fill:   ColorTransparent,
	}
	if opts.Stroke != nil {
		s.Stroke = *opts.Stroke
	}
	if opts.Fill != nil {
		s.Fill = *opts.Fill
	}
	if kind == ShapeRectangle && opts.Radius >= 0 && opts.Radius <= maxCornerRadius {
		s.Radius = opts.Radius
	}
	s.Interactive = true
	s.init(s, WidgetShape, x, y, w, h)
	s.Name = kind.String()
	return s
}

// NewRectangle creates a rectangle shape.
func NewRectangle(x, y, w, h float64, opts ShapeOptions) *Shape {
	return NewShape(ShapeRectangle, x, y, w, h, opts)
}

// NewTriangle creates an isosceles triangle pointing up.
func NewTriangle(x, y, w, h float64, opts ShapeOptions) *Shape {
	return NewShape(ShapeTriangle, x, y, w, h, opts)
}

// NewEllipse creates an ellipse inscribed in the widget's rectangle.
func NewEllipse(x, y, w, h float64, opts ShapeOptions) *Shape {
	return NewShape(ShapeEllipse, x, y, w, h, opts)
}

func (s *Shape) drawContent(sf Surface) {
	w, h := s.width, s.height
	if w <= 0 || h <= 0 {
		return
	}
	fill := FillPaint(s.Fill)
	stroke := StrokePaint(s.Stroke, shapeStrokeWidth)
	const in = shapeStrokeInset

	switch s.Kind {
	case ShapeRectangle:
		if s.Radius > 0 {
			sf.DrawRoundRect(0, 0, w, h, s.Radius, fill)
			sf.DrawRoundRect(in, in, w-2*in, h-2*in, s.Radius, stroke)
			return
		}
		sf.DrawRect(0, 0, w, h, fill)
		sf.DrawRect(in, in, w-2*in, h-2*in, stroke)
	case ShapeTriangle:
		sf.DrawPath([]Vec2{{0, h}, {w / 2, 0}, {w, h}}, true, fill)
		sf.DrawPath([]Vec2{{in, h - in}, {w / 2, in}, {w - in, h - in}}, true, stroke)
	case ShapeEllipse:
		sf.DrawOval(0, 0, w, h, fill)
		sf.DrawOval(in, in, w-2*in, h-2*in, stroke)
	}
}
