package ecs

import (
	"testing"

	"github.com/phanxgames/whiteboard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiStore(world) == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStoreEmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []whiteboard.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e whiteboard.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(whiteboard.InteractionEvent{
		Type:    whiteboard.InteractionMouseDown,
		ScreenX: 100,
		ScreenY: 200,
		WorldX:  50,
		WorldY:  100,
		Button:  whiteboard.MouseButtonLeft,
	})
	store.EmitEvent(whiteboard.InteractionEvent{
		Type:     whiteboard.InteractionModeChanged,
		Mode:     whiteboard.ModePan,
		PrevMode: whiteboard.ModeSelect,
	})

	if len(received) != 0 {
		t.Fatal("events should wait for ProcessEvents")
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != whiteboard.InteractionMouseDown || e.WorldX != 50 || e.WorldY != 100 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Mode != whiteboard.ModePan || e.PrevMode != whiteboard.ModeSelect {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStoreSelectionEvents(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var all, selections int
	var ids []string
	InteractionEventType.Subscribe(world, func(w donburi.World, e whiteboard.InteractionEvent) {
		all++
	})
	SelectionEventType.Subscribe(world, func(w donburi.World, e SelectionEvent) {
		selections++
		ids = e.WidgetIDs
	})

	store.EmitEvent(whiteboard.InteractionEvent{Type: whiteboard.InteractionMouseUp})
	store.EmitEvent(whiteboard.InteractionEvent{
		Type:      whiteboard.InteractionSelectionChanged,
		WidgetIDs: []string{"widget_a", "widget_b"},
	})
	events.ProcessAllEvents(world)

	if all != 2 || selections != 1 {
		t.Fatalf("interaction events = %d, selection events = %d, want 2 and 1", all, selections)
	}
	if len(ids) != 2 || ids[0] != "widget_a" || ids[1] != "widget_b" {
		t.Errorf("ids = %v", ids)
	}
}

func TestDonburiStoreWithEngine(t *testing.T) {
	world := donburi.NewWorld()
	e := whiteboard.NewEngine(whiteboard.Options{Width: 200, Height: 200})
	defer e.Dispose()
	e.SetEntityStore(NewDonburiStore(world))

	var modes []whiteboard.MainMode
	InteractionEventType.Subscribe(world, func(w donburi.World, ev whiteboard.InteractionEvent) {
		if ev.Type == whiteboard.InteractionModeChanged {
			modes = append(modes, ev.Mode)
		}
	})

	e.Tools().ChangeTool(whiteboard.ModeCreate, whiteboard.SubModeEllipse)
	InteractionEventType.ProcessEvents(world)

	want := []whiteboard.MainMode{whiteboard.ModeSelect, whiteboard.ModeCreate}
	if len(modes) != len(want) || modes[0] != want[0] || modes[1] != want[1] {
		t.Errorf("modes = %v, want %v", modes, want)
	}
}
