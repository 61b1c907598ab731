package whiteboard

// PanToolService is the PAN mode tool: dragging moves the viewport.
type PanToolService struct {
	mouse  *MouseController
	tools  *ToolService
	canvas *Canvas

	active         bool
	panning        bool
	startX, startY float64
}

// NewPanToolService creates the tool and follows the main mode.
func NewPanToolService(mouse *MouseController, tools *ToolService, canvas *Canvas) *PanToolService {
	p := &PanToolService{mouse: mouse, tools: tools, canvas: canvas}
	tools.MainModeChanged.AddContext(p, p.onMainModeChanged)
	return p
}

// Active reports whether the tool holds the pointer bindings.
func (p *PanToolService) Active() bool { return p.active }

// Panning reports whether a pan drag is in progress.
func (p *PanToolService) Panning() bool { return p.panning }

func (p *PanToolService) onMainModeChanged(ch MainModeChange) {
	p.reset()
	p.active = ch.Tool == ModePan
	if p.active {
		bindPointer(p.mouse, p, p.onDown, p.onMove, p.onUp)
	}
}

func (p *PanToolService) onDown(e MouseEvent) {
	tx, ty := e.Canvas.Translate()
	z := e.Canvas.Zoom()
	p.panning = true
	p.startX = e.Raw.X - tx*z
	p.startY = e.Raw.Y - ty*z
}

func (p *PanToolService) onMove(e MouseEvent) {
	if !p.panning {
		return
	}
	z := e.Canvas.Zoom()
	e.Canvas.SetTranslate((e.Raw.X-p.startX)/z, (e.Raw.Y-p.startY)/z)
	e.Canvas.RequestRender()
}

func (p *PanToolService) onUp(MouseEvent) {
	p.panning = false
}

func (p *PanToolService) reset() {
	unbindPointer(p.mouse, p)
	p.panning = false
}

// Dispose unbinds the tool.
func (p *PanToolService) Dispose() {
	p.reset()
	p.active = false
	p.tools.MainModeChanged.RemoveContext(p)
}
