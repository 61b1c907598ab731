package whiteboard

import "testing"

func TestToolServiceDispatchesInitialMode(t *testing.T) {
	mode := NewState(ModeState{Main: ModeSelect})
	ts := NewToolService(mode)

	// Memorized: a late subscriber still learns the current mode.
	var main []MainModeChange
	var sub []SubModeChange
	ts.MainModeChanged.Add(func(c MainModeChange) { main = append(main, c) })
	ts.SubModeChanged.Add(func(c SubModeChange) { sub = append(sub, c) })

	if len(main) != 1 || main[0].Tool != ModeSelect {
		t.Errorf("initial main = %+v", main)
	}
	if len(sub) != 1 || sub[0].SubTool != SubModeNone {
		t.Errorf("initial sub = %+v", sub)
	}
	if ts.Mode() != (ModeState{Main: ModeSelect}) {
		t.Errorf("Mode = %+v", ts.Mode())
	}
}

func TestToolServiceEdgeTriggered(t *testing.T) {
	mode := NewState(ModeState{Main: ModeSelect})
	ts := NewToolService(mode)
	var main []MainModeChange
	var sub []SubModeChange
	ts.MainModeChanged.Add(func(c MainModeChange) { main = append(main, c) })
	ts.SubModeChanged.Add(func(c SubModeChange) { sub = append(sub, c) })
	main, sub = nil, nil

	ts.ChangeTool(ModePan, SubModeNone)
	ts.ChangeTool(ModePan, SubModeNone)
	if len(main) != 1 || main[0] != (MainModeChange{Tool: ModePan, PrevTool: ModeSelect}) {
		t.Errorf("main changes = %+v", main)
	}
	if len(sub) != 0 {
		t.Errorf("sub changes = %+v, want none", sub)
	}

	ts.ChangeTool(ModeCreate, SubModeEllipse)
	want := SubModeChange{SubTool: SubModeEllipse, PrevSubTool: SubModeNone, Tool: ModeCreate, PrevTool: ModePan}
	if len(sub) != 1 || sub[0] != want {
		t.Errorf("sub changes = %+v, want %+v", sub, want)
	}

	ts.ChangeTool(ModeCreate, SubModeRectangle)
	if len(main) != 2 || len(sub) != 2 {
		t.Errorf("changing only the sub-mode: main %d sub %d, want 2, 2", len(main), len(sub))
	}
	if mode.Get() != (ModeState{Main: ModeCreate, Sub: SubModeRectangle}) {
		t.Errorf("state = %+v", mode.Get())
	}
}

func TestToolServiceDispose(t *testing.T) {
	mode := NewState(ModeState{Main: ModeSelect})
	ts := NewToolService(mode)
	calls := 0
	ts.MainModeChanged.Add(func(MainModeChange) { calls++ })
	ts.Dispose()
	mode.Set(ModeState{Main: ModePan})
	if calls != 1 {
		t.Errorf("calls = %d, want only the replayed initial mode", calls)
	}
}

func TestBindPointerIsIdempotent(t *testing.T) {
	m := NewMouseController(nil)
	ctx := new(int)
	noop := func(MouseEvent) {}
	bindPointer(m, ctx, noop, noop, noop)
	bindPointer(m, ctx, noop, noop, noop)
	for _, ev := range []string{EventMouseDown, EventMouseMove, EventMouseUp} {
		if n := m.ListenerCount(ev); n != 1 {
			t.Errorf("%s listeners = %d, want 1", ev, n)
		}
	}
	unbindPointer(m, ctx)
	unbindPointer(m, ctx)
	if n := m.ListenerCount(EventMouseDown); n != 0 {
		t.Errorf("listeners after unbind = %d, want 0", n)
	}
}
