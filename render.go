package whiteboard

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// kappa places cubic control points so four curves approximate an ellipse.
const kappa = 0.5522847498

// --- White pixel singleton (the engine is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source of every untextured triangle.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// EbitenSurface implements Surface on an *ebiten.Image. Paths are built in
// screen space by applying the current transform to every point, then
// tessellated by the vector package and submitted with DrawTriangles.
type EbitenSurface struct {
	img   *ebiten.Image
	font  *TTFFont
	m     [6]float64
	stack [][6]float64

	// Scratch buffers reused across draws.
	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenSurface wraps img. A nil font uses DefaultFont.
func NewEbitenSurface(img *ebiten.Image, font *TTFFont) *EbitenSurface {
	if font == nil {
		font = DefaultFont()
	}
	return &EbitenSurface{img: img, font: font, m: identityTransform}
}

// Image returns the backing image.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

// SetImage retargets the surface, for example after a resize. The transform
// stack is reset.
func (s *EbitenSurface) SetImage(img *ebiten.Image) {
	s.img = img
	s.m = identityTransform
	s.stack = s.stack[:0]
}

// Transform returns the current transform.
func (s *EbitenSurface) Transform() [6]float64 { return s.m }

func (s *EbitenSurface) Size() (w, h float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *EbitenSurface) Save() { s.stack = append(s.stack, s.m) }

func (s *EbitenSurface) Restore() {
	if n := len(s.stack); n > 0 {
		s.m = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *EbitenSurface) Translate(dx, dy float64) { s.m = translateAffine(s.m, dx, dy) }

func (s *EbitenSurface) Scale(sx, sy float64) { s.m = scaleAffine(s.m, sx, sy) }

func (s *EbitenSurface) Rotate(theta float64) {
	sin, cos := math.Sincos(theta)
	s.m = multiplyAffine(s.m, [6]float64{cos, sin, -sin, cos, 0, 0})
}

func (s *EbitenSurface) Clear(c Color) {
	if c.IsTransparent() {
		s.img.Clear()
		return
	}
	s.img.Fill(c.toRGBA())
}

func (s *EbitenSurface) DrawRect(x, y, w, h float64, p Paint) {
	s.DrawPath([]Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, true, p)
}

func (s *EbitenSurface) DrawRoundRect(x, y, w, h, radius float64, p Paint) {
	r := math.Min(radius, math.Min(math.Abs(w), math.Abs(h))/2)
	if r <= 0 {
		s.DrawRect(x, y, w, h, p)
		return
	}
	k := r * kappa
	var path vector.Path
	s.moveTo(&path, x+r, y)
	s.lineTo(&path, x+w-r, y)
	s.cubicTo(&path, x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	s.lineTo(&path, x+w, y+h-r)
	s.cubicTo(&path, x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	s.lineTo(&path, x+r, y+h)
	s.cubicTo(&path, x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	s.lineTo(&path, x, y+r)
	s.cubicTo(&path, x, y+r-k, x+r-k, y, x+r, y)
	path.Close()
	s.submit(&path, p)
}

func (s *EbitenSurface) DrawOval(x, y, w, h float64, p Paint) {
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	kx, ky := rx*kappa, ry*kappa
	var path vector.Path
	s.moveTo(&path, cx+rx, cy)
	s.cubicTo(&path, cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	s.cubicTo(&path, cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	s.cubicTo(&path, cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	s.cubicTo(&path, cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	path.Close()
	s.submit(&path, p)
}

func (s *EbitenSurface) DrawPath(points []Vec2, closed bool, p Paint) {
	if len(points) < 2 {
		return
	}
	var path vector.Path
	s.moveTo(&path, points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		s.lineTo(&path, pt.X, pt.Y)
	}
	if closed {
		path.Close()
	}
	s.submit(&path, p)
}

func (s *EbitenSurface) DrawLine(x0, y0, x1, y1 float64, p Paint) {
	p.Style = PaintStroke
	s.DrawPath([]Vec2{{x0, y0}, {x1, y1}}, false, p)
}

func (s *EbitenSurface) MeasureText(str string, size float64) (w, h float64) {
	return s.font.MeasureText(str, size)
}

func (s *EbitenSurface) LineHeight(size float64) float64 { return s.font.LineHeight(size) }

func (s *EbitenSurface) DrawText(str string, x, y, size float64, c Color) {
	if str == "" || c.IsTransparent() {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geoM(s.m))
	op.ColorScale.ScaleWithColor(c.toRGBA())
	op.LineSpacing = s.font.LineHeight(size)
	text.Draw(s.img, str, s.font.Face(size), op)
}

func (s *EbitenSurface) moveTo(path *vector.Path, x, y float64) {
	tx, ty := transformPoint(s.m, x, y)
	path.MoveTo(float32(tx), float32(ty))
}

func (s *EbitenSurface) lineTo(path *vector.Path, x, y float64) {
	tx, ty := transformPoint(s.m, x, y)
	path.LineTo(float32(tx), float32(ty))
}

func (s *EbitenSurface) cubicTo(path *vector.Path, x1, y1, x2, y2, x3, y3 float64) {
	ax, ay := transformPoint(s.m, x1, y1)
	bx, by := transformPoint(s.m, x2, y2)
	cx, cy := transformPoint(s.m, x3, y3)
	path.CubicTo(float32(ax), float32(ay), float32(bx), float32(by), float32(cx), float32(cy))
}

// submit tessellates path with p and draws it.
func (s *EbitenSurface) submit(path *vector.Path, p Paint) {
	if p.Color.IsTransparent() {
		return
	}
	s.verts, s.inds = s.verts[:0], s.inds[:0]
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	switch p.Style {
	case PaintStroke:
		w := p.StrokeWidth * strokeScale(s.m)
		if w <= 0 {
			return
		}
		s.verts, s.inds = path.AppendVerticesAndIndicesForStroke(s.verts, s.inds, &vector.StrokeOptions{
			Width:      float32(w),
			LineJoin:   vector.LineJoinMiter,
			MiterLimit: 10,
		})
		op.FillRule = ebiten.FillRuleFillAll
	default:
		s.verts, s.inds = path.AppendVerticesAndIndicesForFilling(s.verts, s.inds)
		op.FillRule = ebiten.FillRuleNonZero
	}
	if len(s.inds) == 0 {
		return
	}
	c := p.Color.toRGBA()
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range s.verts {
		s.verts[i].SrcX, s.verts[i].SrcY = 0, 0
		s.verts[i].ColorR, s.verts[i].ColorG, s.verts[i].ColorB, s.verts[i].ColorA = r, g, b, a
	}
	s.img.DrawTriangles(s.verts, s.inds, ensureWhitePixel(), op)
}

// strokeScale is the factor by which m scales lengths, exact for uniform
// scale and rotation.
func strokeScale(m [6]float64) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
