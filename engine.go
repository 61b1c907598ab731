package whiteboard

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Options configures an Engine.
type Options struct {
	// Width and Height are the initial screen size. Zero uses 1280x720.
	Width, Height int
	// Logger receives component logs. Nil uses slog.Default.
	Logger *slog.Logger
	// Debug logs per-frame render stats and prints FPS on screen.
	Debug bool
	// Font draws every label and text box. Nil uses DefaultFont.
	Font *TTFFont
	// CursorThrottle is the minimum gap between cursor sends.
	CursorThrottle time.Duration
	// ScreenshotDir receives PNGs queued with Screenshot. Empty uses
	// "screenshots".
	ScreenshotDir string
}

// Engine hosts the board: it owns the stage, canvas, pointer pipeline, tools
// and cursor overlay, and implements ebiten.Game.
//
// All engine state is owned by the update goroutine. Other goroutines hand
// work over with Post.
type Engine struct {
	// App is the state context shared with the embedding program.
	App *AppState
	// Services holds every tool and service by name.
	Services *ServiceManager
	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string

	opts   Options
	logger *slog.Logger
	width  int
	height int

	stage          *Stage
	canvas         *Canvas
	raw            *RawInput
	mouse          *MouseController
	tools          *ToolService
	selection      *SelectionService
	selectionLayer *SelectionLayer
	multi          *MultiSelector
	overlay        *CursorOverlay

	primary        *ebiten.Image
	overlayImg     *ebiten.Image
	surface        *EbitenSurface
	overlaySurface *EbitenSurface

	mu     sync.Mutex
	posted []func()

	deferred        []func()
	testRunner      *TestRunner
	screenshotQueue []string
	fpsElapsed      float64
	fpsLine         string
	disposed        bool
}

// NewEngine builds the scene, the pointer pipeline and every tool, and
// starts in SELECT mode.
func NewEngine(opts Options) *Engine {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		App:           NewAppState(),
		Services:      NewServiceManager(),
		ScreenshotDir: opts.ScreenshotDir,
		opts:          opts,
		logger:        componentLogger(logger, "engine"),
		width:         opts.Width,
		height:        opts.Height,
	}

	e.stage = NewStage()
	e.canvas = NewCanvas(e.stage, float64(opts.Width), float64(opts.Height))
	e.raw = NewRawInput()
	e.mouse = NewMouseController(logger)
	e.mouse.Start(e.canvas, e.raw)

	e.tools = NewToolService(e.App.Mode)
	e.Services.Register(ServiceTools, e.tools)

	e.selection = NewSelectionService(e.stage, e.canvas, e.tools)
	e.Services.Register(ServiceSelection, e.selection)

	e.selectionLayer = NewSelectionLayer(e.canvas, e.selection)
	e.stage.AddChildToParent(e.stage.NonCanvasDynamic(), e.selectionLayer)
	e.multi = NewMultiSelector()
	e.stage.AddDynamicNonCanvasWidget(e.multi)

	e.Services.Register(ServiceSelectTool,
		NewSelectToolService(e.mouse, e.tools, e.selection, e.selectionLayer, e.multi, e.canvas))
	e.Services.Register(ServicePanTool, NewPanToolService(e.mouse, e.tools, e.canvas))
	e.Services.Register(ServiceShapeDrawer,
		NewShapeDrawerToolService(e.mouse, e.tools, e.selection, e.stage, e.canvas, e))
	wheel := NewWheelService(e.canvas, e.mouse)
	wheel.Start(e.raw)
	e.Services.Register(ServiceWheel, wheel)

	e.overlay = NewCursorOverlay(e.canvas, logger)
	e.logger.Debug("engine ready", "width", opts.Width, "height", opts.Height)
	return e
}

// Stage returns the scene graph.
func (e *Engine) Stage() *Stage { return e.stage }

// Canvas returns the viewport.
func (e *Engine) Canvas() *Canvas { return e.canvas }

// Input returns the raw pointer source, for injecting synthetic input.
func (e *Engine) Input() *RawInput { return e.raw }

// Mouse returns the gesture controller.
func (e *Engine) Mouse() *MouseController { return e.mouse }

// Tools returns the mode switcher.
func (e *Engine) Tools() *ToolService { return e.tools }

// Selection returns the selection engine.
func (e *Engine) Selection() *SelectionService { return e.selection }

// SelectionLayer returns the selection feedback layer.
func (e *Engine) SelectionLayer() *SelectionLayer { return e.selectionLayer }

// MultiSelector returns the marquee widget.
func (e *Engine) MultiSelector() *MultiSelector { return e.multi }

// Overlay returns the collaborators' cursor overlay.
func (e *Engine) Overlay() *CursorOverlay { return e.overlay }

// ConnectCursorSender starts sharing the local pointer through sink.
func (e *Engine) ConnectCursorSender(sink CursorSink) *CursorSenderService {
	s := NewCursorSenderService(e.mouse, sink, e.opts.CursorThrottle, e.opts.Logger)
	e.Services.Register(ServiceCursorSender, s)
	return s
}

// Post queues fn to run at the start of the next update. It is safe to call
// from any goroutine.
func (e *Engine) Post(fn func()) {
	e.mu.Lock()
	e.posted = append(e.posted, fn)
	e.mu.Unlock()
}

// Defer queues fn to run once the input event being dispatched has been
// delivered to every listener. It must be called on the update goroutine.
func (e *Engine) Defer(fn func()) {
	e.deferred = append(e.deferred, fn)
}

func (e *Engine) runPosted() {
	e.mu.Lock()
	fns := e.posted
	e.posted = nil
	e.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (e *Engine) runDeferred() {
	for len(e.deferred) > 0 {
		fns := e.deferred
		e.deferred = nil
		for _, fn := range fns {
			fn()
		}
	}
}

// Update implements ebiten.Game.
func (e *Engine) Update() error {
	if e.disposed {
		return ebiten.Termination
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	e.update(dt, e.raw.PollEbiten)
	return nil
}

// Tick advances the engine by dt seconds using injected input only. It is
// Update without the window, for headless drivers and tests.
func (e *Engine) Tick(dt float32) {
	e.update(dt, func() { e.raw.processInjected() })
}

func (e *Engine) update(dt float32, poll func()) {
	e.runPosted()
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	poll()
	e.runDeferred()
	e.canvas.Update(dt)
	e.overlay.Update(dt)
	e.updateFPS(float64(dt))
}

// Frame draws the board onto primary and the cursor overlay onto overlay,
// each only when it needs repainting, and reports what was drawn.
func (e *Engine) Frame(primary, overlay Surface) (drewBoard, drewOverlay bool) {
	drewBoard = e.canvas.Draw(primary)
	if drewBoard {
		// The viewport may have moved; cursors are projected at draw time.
		e.overlay.MarkDirty()
	}
	drewOverlay = e.overlay.Draw(overlay)
	return drewBoard, drewOverlay
}

// Draw implements ebiten.Game. The board and the overlay keep their own
// offscreen images so a frame with nothing new only re-blits them.
func (e *Engine) Draw(screen *ebiten.Image) {
	e.ensureTargets()
	start := time.Now()
	drewBoard, drewOverlay := e.Frame(e.surface, e.overlaySurface)
	drawTime := time.Since(start)

	screen.DrawImage(e.primary, nil)
	screen.DrawImage(e.overlayImg, nil)
	e.flushScreenshots(screen)

	if e.opts.Debug {
		e.debugLog(frameStats{
			drawTime:    drawTime,
			drewBoard:   drewBoard,
			drewOverlay: drewOverlay,
			widgets:     e.stage.DefaultLayer().Len(),
			selected:    len(e.selection.Selected()),
			cursors:     len(e.overlay.cursors),
		})
		e.drawFPS(screen)
	}
}

// Layout implements ebiten.Game. The logical screen follows the window.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.Resize(outsideWidth, outsideHeight)
	return e.width, e.height
}

// Resize changes the screen size.
func (e *Engine) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == e.width && h == e.height) {
		return
	}
	e.width, e.height = w, h
	e.canvas.Resize(float64(w), float64(h))
	e.overlay.MarkDirty()
	e.releaseTargets()
}

// Size returns the screen size.
func (e *Engine) Size() (w, h int) { return e.width, e.height }

func (e *Engine) ensureTargets() {
	if e.primary != nil {
		return
	}
	e.primary = ebiten.NewImage(e.width, e.height)
	e.overlayImg = ebiten.NewImage(e.width, e.height)
	if e.surface == nil {
		e.surface = NewEbitenSurface(e.primary, e.opts.Font)
		e.overlaySurface = NewEbitenSurface(e.overlayImg, e.opts.Font)
	} else {
		e.surface.SetImage(e.primary)
		e.overlaySurface.SetImage(e.overlayImg)
	}
	e.canvas.RequestRender()
	e.overlay.MarkDirty()
}

func (e *Engine) releaseTargets() {
	if e.primary == nil {
		return
	}
	e.primary.Deallocate()
	e.overlayImg.Deallocate()
	e.primary, e.overlayImg = nil, nil
}

// Run opens a window titled title and runs the engine until the window
// closes or Dispose is called.
func (e *Engine) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(e.width, e.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Dispose releases every service and listener. A running game loop exits on
// its next update.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.Services.DisposeAll()
	e.selectionLayer.Dispose()
	e.mouse.Dispose()
	e.overlay.Reset()
	e.releaseTargets()
}
