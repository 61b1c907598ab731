package whiteboard

// Names of the fixed containers a Stage builds.
const (
	LayerRoot              = "root"
	LayerCanvas            = "canvasContainer"
	LayerCanvasStatic      = "canvasStaticContainer"
	LayerCanvasDynamic     = "canvasDynamicContainer"
	LayerWidgetsDefault    = "widgetsDefaultLayer"
	LayerNonCanvas         = "nonCanvasContainer"
	LayerNonCanvasStatic   = "nonCanvasStaticContainer"
	LayerNonCanvasDynamic  = "nonCanvasDynamicContainer"
	layerSelectionFeedback = "selectionLayer"
)

// Stage owns the scene graph. Its tree is fixed at construction:
//
//	root
//	├── canvasContainer
//	│   ├── canvasStaticContainer
//	│   │   └── widgetsDefaultLayer   user shapes
//	│   └── canvasDynamicContainer
//	└── nonCanvasContainer
//	    ├── nonCanvasStaticContainer
//	    └── nonCanvasDynamicContainer  selection feedback, marquee
//
// Every container gets a fractional z-index when it is attached.
type Stage struct {
	root             *Layer
	canvas           *Layer
	canvasStatic     *Layer
	canvasDynamic    *Layer
	widgets          *Layer
	nonCanvas        *Layer
	nonCanvasStatic  *Layer
	nonCanvasDynamic *Layer
}

// NewStage builds the container tree.
func NewStage() *Stage {
	s := &Stage{
		root:             NewLayer(LayerRoot),
		canvas:           NewLayer(LayerCanvas),
		canvasStatic:     NewLayer(LayerCanvasStatic),
		canvasDynamic:    NewLayer(LayerCanvasDynamic),
		widgets:          NewLayer(LayerWidgetsDefault),
		nonCanvas:        NewLayer(LayerNonCanvas),
		nonCanvasStatic:  NewLayer(LayerNonCanvasStatic),
		nonCanvasDynamic: NewLayer(LayerNonCanvasDynamic),
	}
	s.root.ZIndex = GenerateRootIndex()

	s.AddChildToParent(s.root, s.canvas)
	s.AddChildToParent(s.root, s.nonCanvas)

	s.AddChildToParent(s.canvas, s.canvasStatic)
	s.AddChildToParent(s.canvas, s.canvasDynamic)
	s.AddChildToParent(s.canvasStatic, s.widgets)

	s.AddChildToParent(s.nonCanvas, s.nonCanvasStatic)
	s.AddChildToParent(s.nonCanvas, s.nonCanvasDynamic)
	return s
}

// Root returns the top of the tree.
func (s *Stage) Root() *Layer { return s.root }

// DefaultLayer returns the layer holding user shapes. It sits under the
// canvas static container, not the dynamic one.
func (s *Stage) DefaultLayer() *Layer { return s.widgets }

// CanvasStatic returns the static canvas-space container.
func (s *Stage) CanvasStatic() *Layer { return s.canvasStatic }

// CanvasDynamic returns the dynamic canvas-space container.
func (s *Stage) CanvasDynamic() *Layer { return s.canvasDynamic }

// NonCanvasStatic returns the static overlay container.
func (s *Stage) NonCanvasStatic() *Layer { return s.nonCanvasStatic }

// NonCanvasDynamic returns the overlay container holding selection feedback.
func (s *Stage) NonCanvasDynamic() *Layer { return s.nonCanvasDynamic }

// AddWidget appends w to the default layer with a trailing z-index.
func (s *Stage) AddWidget(w Node) {
	s.appendIndexed(s.widgets, w)
}

// AddDynamicNonCanvasWidget appends w to the dynamic overlay container.
func (s *Stage) AddDynamicNonCanvasWidget(w Node) {
	s.appendIndexed(s.nonCanvasDynamic, w)
}

// AddChildToParent gives child a z-index after parent's last child and
// appends it.
func (s *Stage) AddChildToParent(parent, child Node) {
	s.appendIndexed(parent.Base(), child)
}

func (s *Stage) appendIndexed(parent *Layer, child Node) {
	if child == nil {
		panic("whiteboard: cannot add nil child")
	}
	key, err := GenerateIndexForChild(parent)
	if err != nil {
		panic("whiteboard: " + err.Error())
	}
	child.Base().ZIndex = key
	parent.AddChild(child)
}

// RemoveWidget detaches w from the default layer and reports whether it
// was there.
func (s *Stage) RemoveWidget(w Node) bool {
	return s.widgets.RemoveChild(w)
}

// Widgets returns the widgets of the default layer in list order.
func (s *Stage) Widgets() []*Widget {
	out := make([]*Widget, 0, s.widgets.Len())
	s.widgets.Each(func(n Node) bool {
		if w, ok := AsWidget(n); ok {
			out = append(out, w)
		}
		return true
	})
	return out
}

// Render draws the whole tree depth-first.
func (s *Stage) Render(sf Surface) {
	s.root.Render(sf)
}
