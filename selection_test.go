package whiteboard

import "testing"

type selectionRig struct {
	app       *AppState
	stage     *Stage
	canvas    *Canvas
	tools     *ToolService
	selection *SelectionService
}

func newSelectionRig() *selectionRig {
	r := &selectionRig{app: NewAppState(), stage: NewStage()}
	r.canvas = NewCanvas(r.stage, 800, 600)
	r.tools = NewToolService(r.app.Mode)
	r.selection = NewSelectionService(r.stage, r.canvas, r.tools)
	return r
}

func (r *selectionRig) rect(x, y, w, h float64) *Widget {
	s := NewRectangle(x, y, w, h, ShapeOptions{})
	r.stage.AddWidget(s)
	return &s.Widget
}

func TestSelectionHitTestFirstMatch(t *testing.T) {
	r := newSelectionRig()
	a := r.rect(0, 0, 100, 100)
	b := r.rect(50, 50, 100, 100)

	if got := r.selection.HitTest(75, 75); got != a {
		t.Errorf("overlap hit = %v, want the first widget in list order", got)
	}
	if got := r.selection.HitTest(140, 140); got != b {
		t.Errorf("hit = %v, want b", got)
	}
	if got := r.selection.HitTest(500, 500); got != nil {
		t.Errorf("empty space hit = %v, want nil", got)
	}

	a.Interactive = false
	if got := r.selection.HitTest(75, 75); got != b {
		t.Error("non-interactive widgets should be skipped")
	}
}

func TestSelectionCheckObjectsInRect(t *testing.T) {
	r := newSelectionRig()
	inside := r.rect(10, 10, 20, 20)
	r.rect(40, 40, 100, 100)

	got := r.selection.CheckObjectsInRect(NewBoundingBox(0, 0, 50, 50))
	if len(got) != 1 || got[0] != inside {
		t.Errorf("CheckObjectsInRect = %v, want only the fully contained widget", got)
	}
}

func TestSelectWidgetsFlagsAndSignal(t *testing.T) {
	r := newSelectionRig()
	a := r.rect(0, 0, 10, 10)
	b := r.rect(20, 0, 10, 10)

	var got [][]*Widget
	r.selection.SelectionChanged.Add(func(ws []*Widget) { got = append(got, ws) })

	r.selection.SelectWidgets([]*Widget{a, b})
	if !a.Selected || !b.Selected || !r.selection.IsSelected(a) {
		t.Error("selected widgets should be flagged")
	}
	r.selection.SelectWidget(b)
	if a.Selected || !b.Selected {
		t.Error("SelectWidget should replace the selection")
	}
	r.selection.ClearSelection()
	if b.Selected || len(r.selection.Selected()) != 0 {
		t.Error("ClearSelection should empty the selection")
	}

	if len(got) != 3 || len(got[0]) != 2 || len(got[1]) != 1 || len(got[2]) != 0 {
		t.Errorf("SelectionChanged payloads = %v", got)
	}
}

func TestSelectObjectsWithDrawingDispatchesOnMembershipChange(t *testing.T) {
	r := newSelectionRig()
	a := r.rect(10, 10, 10, 10)
	r.rect(100, 100, 10, 10)

	calls := 0
	r.selection.DrawingSelectionUpdated.Add(func([]*Widget) { calls++ })

	r.selection.SelectObjectsWithDrawing(NewBoundingBox(0, 0, 5, 5))
	if calls != 0 {
		t.Error("empty to empty should not dispatch")
	}
	r.selection.SelectObjectsWithDrawing(NewBoundingBox(0, 0, 30, 30))
	r.selection.SelectObjectsWithDrawing(NewBoundingBox(0, 0, 40, 40))
	if calls != 1 {
		t.Errorf("dispatches = %d, want 1", calls)
	}
	if d := r.selection.DrawingSelection(); len(d) != 1 || d[0] != a {
		t.Errorf("DrawingSelection = %v", d)
	}
	r.selection.SelectObjectsWithDrawing(NewBoundingBox(0, 0, 200, 200))
	if calls != 2 {
		t.Errorf("dispatches = %d, want 2", calls)
	}
}

func TestSelectRectangularArea(t *testing.T) {
	r := newSelectionRig()
	a := r.rect(10, 10, 10, 10)
	r.selection.SelectObjectsWithDrawing(NewBoundingBox(0, 0, 30, 30))

	r.selection.SelectRectangularArea(NewBoundingBox(0, 0, 30, 30))
	if sel := r.selection.Selected(); len(sel) != 1 || sel[0] != a {
		t.Fatalf("Selected = %v", sel)
	}
	if len(r.selection.DrawingSelection()) != 0 {
		t.Error("committing should clear the drawing selection")
	}

	r.selection.SelectRectangularArea(NewBoundingBox(500, 500, 10, 10))
	if len(r.selection.Selected()) != 0 || a.Selected {
		t.Error("an empty area should clear the selection")
	}
}

func TestSelectionBounds(t *testing.T) {
	r := newSelectionRig()
	if !r.selection.Bounds().IsIndefinite() {
		t.Error("empty selection bounds should be indefinite")
	}

	a := r.rect(10, 10, 10, 10)
	b := r.rect(50, 40, 20, 20)
	r.selection.SelectWidget(a)
	if r.selection.Bounds() != a.Bounds() {
		t.Error("single selection should return the widget's own box")
	}

	r.selection.SelectWidgets([]*Widget{a, b})
	assertBox(t, r.selection.Bounds(), 10, 10, 60, 50)

	b.SetPosition(100, 100)
	assertBox(t, r.selection.Bounds(), 10, 10, 110, 110)
}

func TestSelectionClearsWhenLeavingSelectMode(t *testing.T) {
	r := newSelectionRig()
	a := r.rect(0, 0, 10, 10)
	r.selection.SelectWidget(a)

	r.tools.ChangeTool(ModeSelect, SubModeNone)
	if !a.Selected {
		t.Fatal("re-entering SELECT should keep the selection")
	}
	r.tools.ChangeTool(ModePan, SubModeNone)
	if a.Selected || len(r.selection.Selected()) != 0 {
		t.Error("leaving SELECT should clear the selection")
	}
}

func TestSelectionDispose(t *testing.T) {
	r := newSelectionRig()
	r.selection.Dispose()
	if r.tools.MainModeChanged.HasContext(r.selection) {
		t.Error("Dispose should stop following mode changes")
	}
	if r.selection.SelectionChanged.NumListeners() != 0 {
		t.Error("Dispose should drop listeners")
	}
}
