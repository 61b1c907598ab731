package whiteboard

import "slices"

// SelectionService owns the committed selection and the candidate set shown
// while a marquee is being dragged.
type SelectionService struct {
	// SelectionChanged fires with the committed selection after it changes.
	SelectionChanged *Signal[[]*Widget]
	// DrawingSelectionUpdated fires with the marquee candidates whenever
	// their membership changes.
	DrawingSelectionUpdated *Signal[[]*Widget]

	stage  *Stage
	canvas *Canvas
	tools  *ToolService

	selected []*Widget
	drawing  []*Widget
	merged   BoundingBox
}

// NewSelectionService creates an empty selection over stage's default
// layer. The selection clears itself whenever the main mode leaves SELECT.
func NewSelectionService(stage *Stage, canvas *Canvas, tools *ToolService) *SelectionService {
	s := &SelectionService{
		SelectionChanged:        NewSignal[[]*Widget](WithName("selectionChanged")),
		DrawingSelectionUpdated: NewSignal[[]*Widget](WithName("drawingSelectionUpdated")),
		stage:                   stage,
		canvas:                  canvas,
		tools:                   tools,
	}
	tools.MainModeChanged.AddContext(s, s.onMainModeChanged)
	return s
}

func (s *SelectionService) onMainModeChanged(ch MainModeChange) {
	if ch.Tool == ModeSelect {
		return
	}
	s.ClearSelection()
	s.canvas.RequestRender()
}

// Selected returns the committed selection.
func (s *SelectionService) Selected() []*Widget { return slices.Clone(s.selected) }

// DrawingSelection returns the marquee candidates.
func (s *SelectionService) DrawingSelection() []*Widget { return slices.Clone(s.drawing) }

// IsSelected reports whether w is in the committed selection.
func (s *SelectionService) IsSelected(w *Widget) bool {
	return slices.Contains(s.selected, w)
}

// SelectWidget makes w the only selected widget.
func (s *SelectionService) SelectWidget(w *Widget) {
	s.SelectWidgets([]*Widget{w})
}

// SelectWidgets replaces the selection with ws.
func (s *SelectionService) SelectWidgets(ws []*Widget) {
	s.setSelected(slices.Clone(ws))
	s.drawing = nil
	s.SelectionChanged.Dispatch(s.Selected())
	s.canvas.RequestRender()
}

// ClearSelection empties both sets and dispatches SelectionChanged.
func (s *SelectionService) ClearSelection() {
	s.setSelected(nil)
	s.drawing = nil
	s.SelectionChanged.Dispatch(nil)
}

func (s *SelectionService) setSelected(ws []*Widget) {
	for _, w := range s.selected {
		w.Selected = false
	}
	s.selected = ws
	for _, w := range ws {
		w.Selected = true
	}
}

// HitTest returns the first interactive widget of the default layer, in
// list order, whose bounds contain (x, y).
func (s *SelectionService) HitTest(x, y float64) *Widget {
	var hit *Widget
	s.stage.DefaultLayer().Each(func(n Node) bool {
		w, ok := AsWidget(n)
		if !ok || !w.Interactive {
			return true
		}
		if w.Bounds().Contains(x, y) {
			hit = w
			return false
		}
		return true
	})
	return hit
}

// CheckObjectsInRect returns the interactive widgets of the default layer
// whose bounds lie entirely inside r.
func (s *SelectionService) CheckObjectsInRect(r *BoundingBox) []*Widget {
	var out []*Widget
	s.stage.DefaultLayer().Each(func(n Node) bool {
		if w, ok := AsWidget(n); ok && w.Interactive && r.ContainsRect(w.Bounds()) {
			out = append(out, w)
		}
		return true
	})
	return out
}

// SelectObjectsWithDrawing recomputes the marquee candidates for r and
// dispatches DrawingSelectionUpdated when their membership changed.
func (s *SelectionService) SelectObjectsWithDrawing(r *BoundingBox) {
	found := s.CheckObjectsInRect(r)
	if sameWidgets(found, s.drawing) {
		return
	}
	s.drawing = found
	s.DrawingSelectionUpdated.Dispatch(s.DrawingSelection())
}

// SelectRectangularArea commits the widgets inside r as the selection,
// replacing the previous one. An empty result clears the selection.
func (s *SelectionService) SelectRectangularArea(r *BoundingBox) {
	found := s.CheckObjectsInRect(r)
	if len(found) == 0 {
		if len(s.selected) > 0 || len(s.drawing) > 0 {
			s.ClearSelection()
		}
		return
	}
	s.SelectWidgets(found)
}

// Bounds returns the selection's bounds: indefinite when empty, the widget's
// own box for a single widget (do not mutate it), and a merge of all boxes
// otherwise. The merge is recomputed on every call.
func (s *SelectionService) Bounds() *BoundingBox {
	switch len(s.selected) {
	case 0:
		return IndefiniteBounds()
	case 1:
		return s.selected[0].Bounds()
	}
	s.merged.SetIndefinite()
	for _, w := range s.selected {
		s.merged.Merge(w.Bounds())
	}
	return &s.merged
}

// Dispose stops following mode changes and drops every listener.
func (s *SelectionService) Dispose() {
	s.tools.MainModeChanged.RemoveContext(s)
	s.SelectionChanged.Dispose()
	s.DrawingSelectionUpdated.Dispose()
}

func sameWidgets(a, b []*Widget) bool {
	if len(a) != len(b) {
		return false
	}
	for _, w := range a {
		if !slices.Contains(b, w) {
			return false
		}
	}
	return true
}
