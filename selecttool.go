package whiteboard

// SelectToolService is the SELECT mode tool: click to select, drag to move,
// drag on empty space to marquee-select.
type SelectToolService struct {
	mouse     *MouseController
	tools     *ToolService
	selection *SelectionService
	layer     *SelectionLayer
	multi     *MultiSelector
	canvas    *Canvas

	active    bool
	isDrawing bool
	move      moveState
}

// moveState tracks one move gesture.
type moveState struct {
	widgets         []*Widget
	initial         []Vec2
	start           Vec2
	moved           bool
	alreadySelected bool
}

// NewSelectToolService creates the tool and follows the main mode.
func NewSelectToolService(mouse *MouseController, tools *ToolService, selection *SelectionService,
	layer *SelectionLayer, multi *MultiSelector, canvas *Canvas) *SelectToolService {
	s := &SelectToolService{
		mouse:     mouse,
		tools:     tools,
		selection: selection,
		layer:     layer,
		multi:     multi,
		canvas:    canvas,
	}
	tools.MainModeChanged.AddContext(s, s.onMainModeChanged)
	return s
}

// Active reports whether the tool holds the pointer bindings.
func (s *SelectToolService) Active() bool { return s.active }

func (s *SelectToolService) onMainModeChanged(ch MainModeChange) {
	s.reset()
	s.active = ch.Tool == ModeSelect
	if s.active {
		bindPointer(s.mouse, s, s.onDown, s.onMove, s.onUp)
	}
}

func (s *SelectToolService) onDown(e MouseEvent) {
	s.move = moveState{}
	p := e.Pointer

	if b := s.selection.Bounds(); b.IsFinite() && b.Contains(p.X, p.Y) {
		s.isDrawing = false
		s.beginMove(s.selection.Selected(), p, true)
		return
	}
	if w := s.selection.HitTest(p.X, p.Y); w != nil {
		s.isDrawing = false
		already := w.Selected
		if !already {
			s.selection.ClearSelection()
		}
		s.beginMove([]*Widget{w}, p, already)
		return
	}

	s.selection.ClearSelection()
	s.isDrawing = true
	s.multi.Begin(p)
	s.canvas.RequestRender()
}

func (s *SelectToolService) beginMove(ws []*Widget, p Vec2, alreadySelected bool) {
	s.move.widgets = ws
	s.move.start = p
	s.move.alreadySelected = alreadySelected
	s.move.initial = make([]Vec2, len(ws))
	for i, w := range ws {
		s.move.initial[i] = Vec2{X: w.Left(), Y: w.Top()}
	}
}

func (s *SelectToolService) onMove(e MouseEvent) {
	if len(s.move.widgets) > 0 {
		d := e.Pointer.Sub(s.move.start)
		for i, w := range s.move.widgets {
			w.SetPosition(s.move.initial[i].X+d.X, s.move.initial[i].Y+d.Y)
		}
		s.canvas.RequestRender()

		if len(s.move.widgets) == 1 && !s.move.moved && !s.move.alreadySelected {
			s.layer.StartInstantMoving(s.move.widgets[0])
		}
		s.move.moved = true
		return
	}
	if !s.isDrawing {
		return
	}
	s.multi.Update(e.Pointer)
	s.selection.SelectObjectsWithDrawing(s.multi.Bounds())
	s.canvas.RequestRender()
}

func (s *SelectToolService) onUp(e MouseEvent) {
	mv := s.move
	s.move.widgets = nil

	if mv.moved && !mv.alreadySelected {
		s.layer.FinishMoving()
		s.canvas.RequestRender()
		return
	}

	if s.isDrawing {
		s.isDrawing = false
		s.selection.SelectRectangularArea(s.multi.Bounds())
		s.multi.End()
		s.canvas.RequestRender()
		return
	}

	if !mv.alreadySelected {
		if w := s.selection.HitTest(e.Pointer.X, e.Pointer.Y); w != nil {
			s.selection.SelectWidget(w)
		}
	}
}

func (s *SelectToolService) reset() {
	unbindPointer(s.mouse, s)
	if s.isDrawing {
		s.isDrawing = false
		s.multi.End()
	}
	s.move = moveState{}
}

// Dispose unbinds the tool.
func (s *SelectToolService) Dispose() {
	s.reset()
	s.active = false
	s.tools.MainModeChanged.RemoveContext(s)
}
