package whiteboard

import "math"

// MarqueeColor fills the marquee rectangle.
var MarqueeColor = RGBA(29, 78, 216, .3)

// MultiSelector is the marquee drawn while drag-selecting. It is hidden
// between gestures.
type MultiSelector struct {
	Widget

	origin Vec2
}

// NewMultiSelector creates a hidden, empty marquee.
func NewMultiSelector() *MultiSelector {
	m := &MultiSelector{}
	m.init(m, WidgetMultiSelector, 0, 0, 0, 0)
	m.Name = "multiSelector"
	m.Visible = false
	return m
}

// Begin anchors the marquee at p and shows it.
func (m *MultiSelector) Begin(p Vec2) {
	m.origin = p
	m.SetSize(0, 0)
	m.SetPosition(p.X, p.Y)
	m.Visible = true
}

// Update stretches the marquee from its anchor to p in any direction.
func (m *MultiSelector) Update(p Vec2) {
	m.SetSize(math.Abs(p.X-m.origin.X), math.Abs(p.Y-m.origin.Y))
	if p.X > m.origin.X {
		m.SetLeft(m.origin.X)
	} else {
		m.SetRight(m.origin.X)
	}
	if p.Y > m.origin.Y {
		m.SetTop(m.origin.Y)
	} else {
		m.SetBottom(m.origin.Y)
	}
}

// End hides the marquee. Its last rectangle stays readable.
func (m *MultiSelector) End() {
	m.Visible = false
}

func (m *MultiSelector) drawContent(s Surface) {
	s.DrawRect(0, 0, m.width, m.height, FillPaint(MarqueeColor))
}
