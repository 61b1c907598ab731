package whiteboard

import "math"

// BoundingBox is an axis-aligned rectangle in world space.
//
// Besides ordinary finite rectangles it has two sentinel states. An infinite
// box (-Inf, -Inf, +Inf, +Inf) contains everything. An indefinite box
// (+Inf, +Inf, -Inf, -Inf) contains nothing and is the neutral start value
// for incremental merges.
//
// Writing Left or Top keeps Right or Bottom fixed and resizes from the
// opposite edge. Writing Right or Bottom keeps Left or Top fixed. An edge
// write that produces a non-finite size collapses that axis to -Inf.
type BoundingBox struct {
	X, Y, Width, Height float64
}

// NewBoundingBox returns a finite box.
func NewBoundingBox(x, y, w, h float64) *BoundingBox {
	return &BoundingBox{X: x, Y: y, Width: w, Height: h}
}

// InfiniteBounds returns a box that contains every point.
func InfiniteBounds() *BoundingBox {
	return (&BoundingBox{}).SetInfinite()
}

// IndefiniteBounds returns the neutral element for Merge.
func IndefiniteBounds() *BoundingBox {
	return (&BoundingBox{}).SetIndefinite()
}

// MergedBounds returns the smallest box enclosing all rects. With no rects
// the result is indefinite.
func MergedBounds(rects ...*BoundingBox) *BoundingBox {
	left, top := math.Inf(1), math.Inf(1)
	right, bottom := math.Inf(-1), math.Inf(-1)
	for _, r := range rects {
		left = math.Min(left, r.Left())
		right = math.Max(right, r.Right())
		top = math.Min(top, r.Top())
		bottom = math.Max(bottom, r.Bottom())
	}
	return &BoundingBox{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Clone returns an independent copy.
func (b *BoundingBox) Clone() *BoundingBox {
	c := *b
	return &c
}

// Equal reports whether both boxes have identical fields.
func (b *BoundingBox) Equal(o *BoundingBox) bool {
	return b.X == o.X && b.Y == o.Y && b.Width == o.Width && b.Height == o.Height
}

func (b *BoundingBox) Left() float64 { return b.X }
func (b *BoundingBox) Top() float64  { return b.Y }

// Right returns X+Width, or a signed infinity matching the sign of Width
// when the sum is not finite.
func (b *BoundingBox) Right() float64 {
	return edge(b.X, b.Width)
}

// Bottom returns Y+Height with the same infinity handling as Right.
func (b *BoundingBox) Bottom() float64 {
	return edge(b.Y, b.Height)
}

func edge(origin, size float64) float64 {
	v := origin + size
	if isFinite(v) {
		return v
	}
	if math.IsInf(size, 1) {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

func (b *BoundingBox) CenterX() float64 { return b.X + b.Width/2 }
func (b *BoundingBox) CenterY() float64 { return b.Y + b.Height/2 }

func (b *BoundingBox) MinX() float64 { return b.Left() }
func (b *BoundingBox) MinY() float64 { return b.Top() }
func (b *BoundingBox) MaxX() float64 { return b.Right() }
func (b *BoundingBox) MaxY() float64 { return b.Bottom() }

// SetLeft moves the left edge, keeping the right edge fixed.
func (b *BoundingBox) SetLeft(v float64) {
	b.Width += b.X - v
	b.X = v
	if !isFinite(b.Width) {
		b.Width = math.Inf(-1)
	}
}

// SetTop moves the top edge, keeping the bottom edge fixed.
func (b *BoundingBox) SetTop(v float64) {
	b.Height += b.Y - v
	b.Y = v
	if !isFinite(b.Height) {
		b.Height = math.Inf(-1)
	}
}

// SetRight moves the right edge, keeping the left edge fixed.
func (b *BoundingBox) SetRight(v float64) {
	b.Width = v - b.X
	if !isFinite(b.Width) {
		b.Width = math.Inf(-1)
	}
}

// SetBottom moves the bottom edge, keeping the top edge fixed.
func (b *BoundingBox) SetBottom(v float64) {
	b.Height = v - b.Y
	if !isFinite(b.Height) {
		b.Height = math.Inf(-1)
	}
}

// Merge grows b to enclose every rect and returns b.
func (b *BoundingBox) Merge(rects ...*BoundingBox) *BoundingBox {
	for _, r := range rects {
		b.SetLeft(math.Min(b.Left(), r.Left()))
		b.SetRight(math.Max(b.Right(), r.Right()))
		b.SetTop(math.Min(b.Top(), r.Top()))
		b.SetBottom(math.Max(b.Bottom(), r.Bottom()))
	}
	return b
}

// SetIndefinite resets b to the indefinite state and returns it.
func (b *BoundingBox) SetIndefinite() *BoundingBox {
	b.X, b.Y = math.Inf(1), math.Inf(1)
	b.Width, b.Height = math.Inf(-1), math.Inf(-1)
	return b
}

// SetInfinite resets b to the infinite state and returns it.
func (b *BoundingBox) SetInfinite() *BoundingBox {
	b.X, b.Y = math.Inf(-1), math.Inf(-1)
	b.Width, b.Height = math.Inf(1), math.Inf(1)
	return b
}

// SetEmpty zeroes every field and returns b.
func (b *BoundingBox) SetEmpty() *BoundingBox {
	*b = BoundingBox{}
	return b
}

// IsFinite reports whether every field is a finite number.
func (b *BoundingBox) IsFinite() bool {
	return isFinite(b.X) && isFinite(b.Y) && isFinite(b.Width) && isFinite(b.Height)
}

func (b *BoundingBox) IsInfinite() bool {
	return math.IsInf(b.Width, 1) || math.IsInf(b.Height, 1)
}

func (b *BoundingBox) IsIndefinite() bool {
	return math.IsInf(b.Width, -1) || math.IsInf(b.Height, -1)
}

func (b *BoundingBox) IsEmpty() bool {
	return b.Width == 0 || b.Height == 0
}

// Contains reports whether (x, y) lies inside b. Edges are inside. A box
// with a non-positive width or height contains nothing.
func (b *BoundingBox) Contains(x, y float64) bool {
	if b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return x >= b.X && x <= b.Right() && y >= b.Y && y <= b.Bottom()
}

// ContainsRect reports whether r lies entirely inside b.
func (b *BoundingBox) ContainsRect(r *BoundingBox) bool {
	return b.Left() <= r.Left() && b.Right() >= r.Right() &&
		b.Top() <= r.Top() && b.Bottom() >= r.Bottom()
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
