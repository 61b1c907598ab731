package whiteboard

import "math"

const (
	baseGridSize = 50
	maxGridAlpha = 0.3
)

// gridLevel is one set of evenly spaced grid lines.
type gridLevel struct {
	size  float64
	alpha float64
}

// gridLevels returns the two grid spacings blended at zoom. The coarse level
// fades out and the fine one fades in as zoom crosses a power of ten.
func gridLevels(zoom float64) [2]gridLevel {
	l := math.Log10(zoom)
	power := math.Floor(l)
	fraction := l - power

	coarse := baseGridSize * math.Pow(10, -power)
	base := maxGridAlpha / zoom
	return [2]gridLevel{
		{size: coarse, alpha: math.Min(base, (1-fraction)*base)},
		{size: coarse / 10, alpha: math.Min(base, fraction*base)},
	}
}

// gridLineWidth thins lines as zoom grows so they stay hairlines on screen.
func gridLineWidth(zoom float64) float64 {
	if zoom < 1 {
		return math.Min(0.6, 2/zoom)
	}
	return math.Min(0.3, 2/zoom)
}

// drawGrid draws the background grid in world space covering the visible
// area. It must run inside the viewport transform.
func (c *Canvas) drawGrid(s Surface) {
	vis := c.VisibleBounds()
	width := gridLineWidth(c.zoom)

	for _, lv := range gridLevels(c.zoom) {
		if lv.alpha <= 0 || lv.size <= 0 {
			continue
		}
		p := StrokePaint(Color{A: lv.alpha}, width)

		startX := math.Floor(vis.Left()/lv.size) * lv.size
		endX := math.Ceil(vis.Right()/lv.size) * lv.size
		startY := math.Floor(vis.Top()/lv.size) * lv.size
		endY := math.Ceil(vis.Bottom()/lv.size) * lv.size

		for y := startY; y <= endY; y += lv.size {
			s.DrawLine(startX, y, endX, y, p)
		}
		for x := startX; x <= endX; x += lv.size {
			s.DrawLine(x, startY, x, endY, p)
		}
	}
}
