package whiteboard

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// frameStats holds per-frame timing and scene metrics.
// Only collected when Options.Debug is set.
type frameStats struct {
	drawTime    time.Duration
	drewBoard   bool
	drewOverlay bool
	widgets     int
	selected    int
	cursors     int
}

// debugMaxChildCount is the widget count above which debug mode warns.
const debugMaxChildCount = 1000

// debugLog logs frame stats at debug level. Frames that repainted nothing
// are not logged.
func (e *Engine) debugLog(stats frameStats) {
	if !stats.drewBoard && !stats.drewOverlay {
		return
	}
	e.logger.Debug("frame",
		"draw", stats.drawTime,
		"board", stats.drewBoard,
		"overlay", stats.drewOverlay,
		"widgets", stats.widgets,
		"selected", stats.selected,
		"cursors", stats.cursors,
	)
	if stats.widgets > debugMaxChildCount {
		e.logger.Warn("widget count exceeds threshold",
			"widgets", stats.widgets, "threshold", debugMaxChildCount)
	}
}

// updateFPS refreshes the on-screen FPS line every half second.
func (e *Engine) updateFPS(dt float64) {
	if !e.opts.Debug {
		return
	}
	e.fpsElapsed += dt
	if e.fpsElapsed < 0.5 && e.fpsLine != "" {
		return
	}
	e.fpsElapsed = 0
	e.fpsLine = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nZoom: %.2f", ebiten.ActualFPS(), ebiten.ActualTPS(), e.canvas.Zoom())
}

var fpsBackground = color.RGBA{0, 0, 0, 128}

// drawFPS prints the FPS line in the top-left corner of screen.
func (e *Engine) drawFPS(screen *ebiten.Image) {
	if e.fpsLine == "" {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, 100, 48, fpsBackground, false)
	ebitenutil.DebugPrint(screen, e.fpsLine)
}
