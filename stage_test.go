package whiteboard

import "testing"

func TestNewStageTree(t *testing.T) {
	s := NewStage()
	root := s.Root()
	assertNames(t, root.Children(), LayerCanvas, LayerNonCanvas)

	canvas := root.FirstChild().Base()
	assertNames(t, canvas.Children(), LayerCanvasStatic, LayerCanvasDynamic)
	assertNames(t, s.CanvasStatic().Children(), LayerWidgetsDefault)

	nonCanvas := root.LastChild().Base()
	assertNames(t, nonCanvas.Children(), LayerNonCanvasStatic, LayerNonCanvasDynamic)

	if s.DefaultLayer().Parent() != s.CanvasStatic() {
		t.Error("default widgets layer should sit under the static canvas container")
	}
	if s.CanvasDynamic().Name != LayerCanvasDynamic || s.NonCanvasStatic().Name != LayerNonCanvasStatic ||
		s.NonCanvasDynamic().Name != LayerNonCanvasDynamic {
		t.Error("accessors return the wrong containers")
	}
}

func TestStageSiblingKeysIncrease(t *testing.T) {
	s := NewStage()
	var check func(l *Layer)
	check = func(l *Layer) {
		prev := l.ZIndex
		l.Each(func(n Node) bool {
			k := n.Base().ZIndex
			if k == "" || k <= prev {
				t.Errorf("%s key %q not after %q", n.Base().Name, k, prev)
			}
			prev = k
			check(n.Base())
			return true
		})
	}
	check(s.Root())
}

func TestStageAddWidget(t *testing.T) {
	s := NewStage()
	a := NewRectangle(0, 0, 1, 1, ShapeOptions{})
	b := NewEllipse(0, 0, 1, 1, ShapeOptions{})
	s.AddWidget(a)
	s.AddWidget(b)

	ws := s.Widgets()
	if len(ws) != 2 || ws[0] != &a.Widget || ws[1] != &b.Widget {
		t.Fatalf("Widgets = %v", ws)
	}
	if !(a.ZIndex < b.ZIndex) {
		t.Errorf("keys %q, %q not increasing", a.ZIndex, b.ZIndex)
	}
	if a.Parent() != s.DefaultLayer() {
		t.Error("AddWidget should attach to the default layer")
	}

	if !s.RemoveWidget(a) {
		t.Error("RemoveWidget(a) = false")
	}
	if s.RemoveWidget(a) {
		t.Error("second RemoveWidget(a) = true")
	}
	if len(s.Widgets()) != 1 {
		t.Errorf("Widgets after remove = %d, want 1", len(s.Widgets()))
	}
}

func TestStageAddDynamicNonCanvasWidget(t *testing.T) {
	s := NewStage()
	m := NewMultiSelector()
	s.AddDynamicNonCanvasWidget(m)
	if m.Parent() != s.NonCanvasDynamic() {
		t.Error("marquee should attach to the dynamic non-canvas container")
	}
	if len(s.Widgets()) != 0 {
		t.Error("non-canvas widgets are not board widgets")
	}
}

func TestStageAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AddWidget(nil) should panic")
		}
	}()
	NewStage().AddWidget(nil)
}

func TestStageRenderOrder(t *testing.T) {
	s := NewStage()
	s.AddWidget(NewRectangle(0, 0, 10, 10, ShapeOptions{}))
	m := NewMultiSelector()
	s.AddDynamicNonCanvasWidget(m)
	m.Begin(Vec2{0, 0})
	m.Update(Vec2{5, 5})

	sf := newRecordingSurface(100, 100)
	s.Render(sf)
	rects := sf.find("rect")
	if len(rects) != 3 {
		t.Fatalf("rects = %d, want 3", len(rects))
	}
	if rects[2].Paint.Color != MarqueeColor {
		t.Error("non-canvas feedback should draw after board widgets")
	}
}
