package ecs

import (
	"github.com/phanxgames/whiteboard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for board interactions.
var InteractionEventType = events.NewEventType[whiteboard.InteractionEvent]()

// SelectionEventType carries only selection commits, as widget ids.
var SelectionEventType = events.NewEventType[SelectionEvent]()

// SelectionEvent is published after the committed selection changes.
type SelectionEvent struct {
	WidgetIDs []string
}

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world. Every
// event is published to InteractionEventType; selection commits are also
// published to SelectionEventType.
func NewDonburiStore(world donburi.World) whiteboard.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event whiteboard.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
	if event.Type == whiteboard.InteractionSelectionChanged {
		SelectionEventType.Publish(s.world, SelectionEvent{WidgetIDs: event.WidgetIDs})
	}
}
