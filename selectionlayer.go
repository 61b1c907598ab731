package whiteboard

// SelectionLayer draws selection feedback: one border per widget and, when
// several widgets are involved, one more around all of them. Borders are
// destroyed and rebuilt on every selection signal.
type SelectionLayer struct {
	Layer

	canvas    *Canvas
	selection *SelectionService
}

// NewSelectionLayer creates the feedback layer and subscribes it to
// selection.
func NewSelectionLayer(canvas *Canvas, selection *SelectionService) *SelectionLayer {
	l := &SelectionLayer{canvas: canvas, selection: selection}
	l.Name = layerSelectionFeedback
	l.Visible = true
	l.self = l

	selection.SelectionChanged.AddContext(l, l.rebuild)
	selection.DrawingSelectionUpdated.AddContext(l, l.rebuild)
	return l
}

// StartInstantMoving outlines w while it is dragged before being selected.
func (l *SelectionLayer) StartInstantMoving(w *Widget) {
	l.addBorders([]*Widget{w})
}

// FinishMoving removes the outlines added for a drag.
func (l *SelectionLayer) FinishMoving() {
	l.clear()
}

// Borders returns the borders currently shown.
func (l *SelectionLayer) Borders() []*Border {
	var out []*Border
	l.Each(func(n Node) bool {
		if b, ok := n.(*Border); ok {
			out = append(out, b)
		}
		return true
	})
	return out
}

func (l *SelectionLayer) rebuild(widgets []*Widget) {
	l.clear()
	if len(widgets) == 0 {
		return
	}
	l.addBorders(widgets)
	if len(widgets) > 1 {
		l.AddChild(NewBorder(l.canvas, widgets...))
	}
}

func (l *SelectionLayer) addBorders(widgets []*Widget) {
	for _, w := range widgets {
		l.AddChild(NewBorder(l.canvas, w))
	}
}

func (l *SelectionLayer) clear() {
	l.Each(func(n Node) bool {
		if b, ok := n.(*Border); ok {
			b.Destroy()
		} else {
			l.RemoveChild(n)
		}
		return true
	})
}

// Dispose removes every border and unsubscribes from the selection.
func (l *SelectionLayer) Dispose() {
	l.clear()
	l.selection.SelectionChanged.RemoveContext(l)
	l.selection.DrawingSelectionUpdated.RemoveContext(l)
	l.RemoveFromParent()
}
