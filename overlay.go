package whiteboard

import (
	"log/slog"
	"math"
	"slices"

	"github.com/phanxgames/whiteboard/wsclient"
	"github.com/tanema/gween/ease"
)

// Peer cursor glyph and label geometry, in screen pixels.
const (
	// CursorAnimDuration is the glide time, in seconds, towards a new
	// cursor position.
	CursorAnimDuration = 0.4

	cursorWidth    = 20
	cursorHeight   = 20
	cursorRotation = 320 * math.Pi / 180
	labelHeight    = 25
	labelRadius    = 7
	labelPadding   = 20
	labelFontSize  = 14
)

var labelTextColor = RGBA(0xf2, 0xf2, 0xf2, 1)

// PeerCursor is the overlay's record of one collaborator's pointer. Pos is
// in world space and is what the overlay draws.
type PeerCursor struct {
	UserID   int64
	UserName string
	Pos      Vec2
	Target   Vec2

	anim *TweenGroup
}

// Animating reports whether the cursor is gliding towards Target.
func (p *PeerCursor) Animating() bool { return p.anim != nil }

// CursorOverlay draws collaborators' cursors on a transparent surface above
// the board. It redraws only when marked dirty.
//
// A cursor seen for the first time appears at its position at once. Later
// positions are reached with an ease-out cubic glide from wherever the
// cursor was last drawn. Records are never expired; Remove and Reset are the
// only ways to drop them.
type CursorOverlay struct {
	canvas  *Canvas
	cursors []*PeerCursor
	dirty   bool
	logger  *slog.Logger
}

// NewCursorOverlay creates an empty overlay projecting through canvas.
func NewCursorOverlay(canvas *Canvas, logger *slog.Logger) *CursorOverlay {
	return &CursorOverlay{canvas: canvas, logger: componentLogger(logger, "overlay")}
}

func (o *CursorOverlay) find(id int64) *PeerCursor {
	for _, c := range o.cursors {
		if c.UserID == id {
			return c
		}
	}
	return nil
}

// HandleCursor records a peer's new position.
func (o *CursorOverlay) HandleCursor(c wsclient.Cursor) {
	target := Vec2{X: c.X, Y: c.Y}
	pc := o.find(c.UserID)
	if pc == nil {
		o.cursors = append(o.cursors, &PeerCursor{
			UserID:   c.UserID,
			UserName: c.UserName,
			Pos:      target,
			Target:   target,
		})
		o.logger.Debug("peer cursor added", "user_id", c.UserID)
		o.MarkDirty()
		return
	}
	if c.UserName != "" {
		pc.UserName = c.UserName
	}
	pc.Target = target
	pc.anim = TweenPoint(&pc.Pos, target, CursorAnimDuration, ease.OutCubic)
	o.MarkDirty()
}

// Update advances running glides by dt seconds.
func (o *CursorOverlay) Update(dt float32) {
	for _, c := range o.cursors {
		if c.anim == nil {
			continue
		}
		c.anim.Update(dt)
		if c.anim.Done {
			c.anim = nil
		}
		o.dirty = true
	}
}

// Cursors returns a snapshot of the records in insertion order.
func (o *CursorOverlay) Cursors() []PeerCursor {
	out := make([]PeerCursor, len(o.cursors))
	for i, c := range o.cursors {
		out[i] = *c
		out[i].anim = nil
	}
	return out
}

// Cursor returns the record for id.
func (o *CursorOverlay) Cursor(id int64) (PeerCursor, bool) {
	if c := o.find(id); c != nil {
		out := *c
		out.anim = nil
		return out, true
	}
	return PeerCursor{}, false
}

// Remove drops the record for id and reports whether it existed.
func (o *CursorOverlay) Remove(id int64) bool {
	i := slices.IndexFunc(o.cursors, func(c *PeerCursor) bool { return c.UserID == id })
	if i < 0 {
		return false
	}
	o.cursors = slices.Delete(o.cursors, i, i+1)
	o.MarkDirty()
	return true
}

// Reset drops every record.
func (o *CursorOverlay) Reset() {
	o.cursors = nil
	o.MarkDirty()
}

// MarkDirty schedules a redraw.
func (o *CursorOverlay) MarkDirty() { o.dirty = true }

// Dirty reports whether the next Draw repaints.
func (o *CursorOverlay) Dirty() bool { return o.dirty }

// Draw repaints the overlay if it is dirty and reports whether it did.
func (o *CursorOverlay) Draw(s Surface) bool {
	if !o.dirty {
		return false
	}
	o.dirty = false
	s.Clear(ColorTransparent)
	for _, c := range o.cursors {
		sx, sy := c.Pos.X, c.Pos.Y
		if o.canvas != nil {
			sx, sy = o.canvas.WorldToScreen(sx, sy)
		}
		drawPeerCursor(s, sx, sy, c.UserName)
	}
	return true
}

func drawPeerCursor(s Surface, x, y float64, name string) {
	s.Save()
	s.Translate(x, y)
	s.Rotate(cursorRotation)
	s.DrawPath([]Vec2{
		{0, 0},
		{-cursorWidth / 2, cursorHeight},
		{0, cursorHeight * 0.7},
		{cursorWidth / 2, cursorHeight},
	}, true, FillPaint(ColorBlack))
	s.Restore()

	tw, th := s.MeasureText(name, labelFontSize)
	lx, ly := x+cursorWidth, y+cursorHeight
	w := tw + labelPadding
	s.DrawRoundRect(lx, ly, w, labelHeight, labelRadius, FillPaint(ColorBlack))
	s.DrawText(name, lx+(w-tw)/2, ly+(labelHeight-th)/2, labelFontSize, labelTextColor)
}
