package whiteboard

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to four float64 fields together. Call Update(dt)
// each frame. When every tween has finished, each field is set exactly to
// its target, so float32 tween rounding never leaks into the result.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	to     [4]float64
	count  int
	Done   bool
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.to[g.count] = to
	g.count++
}

// Update advances all tweens by dt seconds and writes the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			*g.fields[i] = g.to[i]
			continue
		}
		*g.fields[i] = float64(val)
		allDone = false
	}
	g.Done = allDone
}

// Finish jumps every field to its target.
func (g *TweenGroup) Finish() {
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.to[i]
	}
	g.Done = true
}

// TweenXY animates *x and *y to (toX, toY) over duration seconds.
func TweenXY(x, y *float64, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(x, toX, duration, fn)
	g.add(y, toY, duration, fn)
	return g
}

// TweenPoint animates p to to over duration seconds.
func TweenPoint(p *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenXY(&p.X, &p.Y, to.X, to.Y, duration, fn)
}
