package whiteboard

// PaintStyle selects whether a primitive is filled or outlined.
type PaintStyle uint8

const (
	PaintFill   PaintStyle = iota // fill the interior
	PaintStroke                   // outline with StrokeWidth
)

// Paint describes how a primitive is drawn.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
}

// FillPaint returns a fill paint of color c.
func FillPaint(c Color) Paint {
	return Paint{Color: c, Style: PaintFill}
}

// StrokePaint returns a stroke paint of color c and width w.
func StrokePaint(c Color, w float64) Paint {
	return Paint{Color: c, Style: PaintStroke, StrokeWidth: w}
}

// Surface is an immediate-mode 2D drawing target with a current transform.
// Coordinates passed to drawing calls are in the current transform's space,
// so stroke widths scale with it.
//
// Save pushes the current transform and Restore pops it.
type Surface interface {
	Size() (w, h float64)

	Save()
	Restore()
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Rotate(theta float64)

	Clear(c Color)
	DrawRect(x, y, w, h float64, p Paint)
	DrawRoundRect(x, y, w, h, radius float64, p Paint)
	DrawOval(x, y, w, h float64, p Paint)
	DrawPath(points []Vec2, closed bool, p Paint)
	DrawLine(x0, y0, x1, y1 float64, p Paint)

	// MeasureText returns the advance width and height of a single line.
	MeasureText(s string, size float64) (w, h float64)
	// LineHeight returns the baseline-to-baseline distance for size.
	LineHeight(size float64) float64
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(s string, x, y, size float64, c Color)
}
