package whiteboard

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Zoom limits applied by SetZoom.
const (
	MinZoom = 0.1
	MaxZoom = 4.0
)

// Canvas is the primary drawing surface's viewport: a uniform zoom and a pan
// offset in world units. It paces rendering with a dirty flag and exposes the
// two per-frame signals.
type Canvas struct {
	// TickBefore fires every frame before drawing.
	TickBefore *Signal[struct{}]
	// Tick fires every frame after drawing (or after skipping the draw).
	Tick *Signal[struct{}]
	// Zoomed fires with the new zoom after SetZoom.
	Zoomed *Signal[float64]

	// Background is cleared to before each draw.
	Background Color
	// GridEnabled draws the background grid.
	GridEnabled bool

	stage         *Stage
	width, height float64

	zoom       float64
	tx, ty     float64
	view       [6]float64
	invView    [6]float64
	viewDirty  bool
	needRender bool

	panTween *TweenGroup
}

// NewCanvas creates a canvas of the given screen size rendering stage.
func NewCanvas(stage *Stage, width, height float64) *Canvas {
	return &Canvas{
		TickBefore:  NewSignal[struct{}](WithName("tickBefore")),
		Tick:        NewSignal[struct{}](WithName("tick")),
		Zoomed:      NewSignal[float64](WithName("zoom")),
		Background:  ColorWhite,
		GridEnabled: true,
		stage:       stage,
		width:       width,
		height:      height,
		zoom:        1,
		viewDirty:   true,
		needRender:  true,
	}
}

// Stage returns the rendered scene.
func (c *Canvas) Stage() *Stage { return c.stage }

// Size returns the screen size.
func (c *Canvas) Size() (w, h float64) { return c.width, c.height }

// Resize changes the screen size and requests a render.
func (c *Canvas) Resize(w, h float64) {
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	c.needRender = true
}

// Zoom returns the current scale factor.
func (c *Canvas) Zoom() float64 { return c.zoom }

// SetZoom clamps z to [MinZoom, MaxZoom], requests a render and dispatches
// Zoomed.
func (c *Canvas) SetZoom(z float64) {
	z = clampZoom(z)
	c.zoom = z
	c.viewDirty = true
	c.needRender = true
	c.Zoomed.Dispatch(z)
}

func clampZoom(z float64) float64 {
	return math.Min(math.Max(MinZoom, z), MaxZoom)
}

// Translate returns the pan offset in world units.
func (c *Canvas) Translate() (x, y float64) { return c.tx, c.ty }

// SetTranslate sets the pan offset. It does not request a render; callers
// batch that themselves.
func (c *Canvas) SetTranslate(x, y float64) {
	c.tx, c.ty = x, y
	c.viewDirty = true
}

// PanTo animates the pan offset to (x, y) over duration seconds.
func (c *Canvas) PanTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.panTween = TweenXY(&c.tx, &c.ty, x, y, duration, easeFn)
}

// Panning reports whether a PanTo animation is running.
func (c *Canvas) Panning() bool { return c.panTween != nil }

// Update advances a running pan animation by dt seconds.
func (c *Canvas) Update(dt float32) {
	if c.panTween == nil {
		return
	}
	c.panTween.Update(dt)
	c.viewDirty = true
	c.needRender = true
	if c.panTween.Done {
		c.panTween = nil
	}
}

// Transform returns the world-to-screen matrix
// [zoom, 0, 0, zoom, tx*zoom, ty*zoom].
func (c *Canvas) Transform() [6]float64 {
	c.computeView()
	return c.view
}

func (c *Canvas) computeView() {
	if !c.viewDirty {
		return
	}
	c.viewDirty = false
	c.view = viewportTransform(c.zoom, c.tx, c.ty)
	c.invView = invertAffine(c.view)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Canvas) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeView()
	return transformPoint(c.invView, sx, sy)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Canvas) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeView()
	return transformPoint(c.view, wx, wy)
}

// VisibleBounds returns the world-space rectangle covered by the screen.
func (c *Canvas) VisibleBounds() BoundingBox {
	return BoundingBox{
		X:      -c.tx,
		Y:      -c.ty,
		Width:  c.width / c.zoom,
		Height: c.height / c.zoom,
	}
}

// RequestRender marks the canvas dirty; the next Draw repaints.
func (c *Canvas) RequestRender() { c.needRender = true }

// NeedsRender reports whether the next Draw repaints.
func (c *Canvas) NeedsRender() bool { return c.needRender }

// Draw runs one frame: TickBefore, then a repaint if one was requested,
// then Tick. It reports whether it repainted.
func (c *Canvas) Draw(s Surface) bool {
	c.TickBefore.Dispatch(struct{}{})
	drew := false
	if c.needRender {
		c.render(s)
		c.needRender = false
		drew = true
	}
	c.Tick.Dispatch(struct{}{})
	return drew
}

func (c *Canvas) render(s Surface) {
	s.Clear(c.Background)
	s.Save()
	s.Scale(c.zoom, c.zoom)
	s.Translate(c.tx, c.ty)
	if c.GridEnabled {
		c.drawGrid(s)
	}
	if c.stage != nil {
		c.stage.Render(s)
	}
	s.Restore()
}
