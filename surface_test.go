package whiteboard

import (
	"math"
	"testing"
	"unicode/utf8"
)

// drawCall is one primitive recorded by recordingSurface. X and Y are the
// primitive's origin mapped through the transform active at the call.
type drawCall struct {
	Op        string
	X, Y      float64
	W, H      float64
	Points    []Vec2
	Closed    bool
	Paint     Paint
	Text      string
	Size      float64
	Color     Color
	Transform [6]float64
}

// recordingSurface is a Surface that records draw calls instead of
// rasterizing them.
type recordingSurface struct {
	w, h  float64
	m     [6]float64
	stack [][6]float64
	calls []drawCall
	clear []Color
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{w: w, h: h, m: identityTransform}
}

func (r *recordingSurface) Size() (float64, float64) { return r.w, r.h }
func (r *recordingSurface) Save()                    { r.stack = append(r.stack, r.m) }

func (r *recordingSurface) Restore() {
	if n := len(r.stack); n > 0 {
		r.m = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

func (r *recordingSurface) Translate(dx, dy float64) { r.m = translateAffine(r.m, dx, dy) }
func (r *recordingSurface) Scale(sx, sy float64)     { r.m = scaleAffine(r.m, sx, sy) }

func (r *recordingSurface) Rotate(theta float64) {
	sin, cos := math.Sincos(theta)
	r.m = multiplyAffine(r.m, [6]float64{cos, sin, -sin, cos, 0, 0})
}

func (r *recordingSurface) Clear(c Color) {
	r.clear = append(r.clear, c)
	r.calls = nil
}

func (r *recordingSurface) record(op string, x, y, w, h float64, p Paint) {
	gx, gy := transformPoint(r.m, x, y)
	r.calls = append(r.calls, drawCall{Op: op, X: gx, Y: gy, W: w, H: h, Paint: p, Transform: r.m})
}

func (r *recordingSurface) DrawRect(x, y, w, h float64, p Paint) { r.record("rect", x, y, w, h, p) }

func (r *recordingSurface) DrawRoundRect(x, y, w, h, _ float64, p Paint) {
	r.record("roundRect", x, y, w, h, p)
}

func (r *recordingSurface) DrawOval(x, y, w, h float64, p Paint) { r.record("oval", x, y, w, h, p) }

func (r *recordingSurface) DrawPath(points []Vec2, closed bool, p Paint) {
	pts := make([]Vec2, len(points))
	for i, pt := range points {
		pts[i].X, pts[i].Y = transformPoint(r.m, pt.X, pt.Y)
	}
	r.calls = append(r.calls, drawCall{Op: "path", Points: pts, Closed: closed, Paint: p, Transform: r.m})
}

func (r *recordingSurface) DrawLine(x0, y0, x1, y1 float64, p Paint) {
	r.record("line", x0, y0, x1-x0, y1-y0, p)
}

func (r *recordingSurface) MeasureText(s string, size float64) (float64, float64) {
	return fixedMeasurer{}.MeasureText(s, size)
}

func (r *recordingSurface) LineHeight(size float64) float64 {
	return fixedMeasurer{}.LineHeight(size)
}

func (r *recordingSurface) DrawText(s string, x, y, size float64, c Color) {
	gx, gy := transformPoint(r.m, x, y)
	r.calls = append(r.calls, drawCall{Op: "text", X: gx, Y: gy, Text: s, Size: size, Color: c, Transform: r.m})
}

// ops returns the recorded operation names in order.
func (r *recordingSurface) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Op
	}
	return out
}

// find returns the recorded calls named op.
func (r *recordingSurface) find(op string) []drawCall {
	var out []drawCall
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// fixedMeasurer sizes every rune at half the font size, lines at 1.25x.
type fixedMeasurer struct{}

func (fixedMeasurer) MeasureText(s string, size float64) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * size / 2, size
}

func (fixedMeasurer) LineHeight(size float64) float64 { return size * 1.25 }

func TestRecordingSurfaceTransformStack(t *testing.T) {
	s := newRecordingSurface(100, 100)
	s.Save()
	s.Translate(10, 20)
	s.Scale(2, 2)
	s.DrawRect(1, 1, 5, 5, FillPaint(ColorBlack))
	s.Restore()
	s.DrawRect(1, 1, 5, 5, FillPaint(ColorBlack))

	rects := s.find("rect")
	if len(rects) != 2 {
		t.Fatalf("rects = %d, want 2", len(rects))
	}
	if rects[0].X != 12 || rects[0].Y != 22 {
		t.Errorf("transformed origin = (%v, %v), want (12, 22)", rects[0].X, rects[0].Y)
	}
	if rects[1].X != 1 || rects[1].Y != 1 {
		t.Errorf("restored origin = (%v, %v), want (1, 1)", rects[1].X, rects[1].Y)
	}
}

func TestPaintConstructors(t *testing.T) {
	f := FillPaint(ColorWhite)
	if f.Style != PaintFill || f.Color != ColorWhite {
		t.Errorf("FillPaint = %+v", f)
	}
	s := StrokePaint(ColorBlack, 3)
	if s.Style != PaintStroke || s.StrokeWidth != 3 {
		t.Errorf("StrokePaint = %+v", s)
	}
}
