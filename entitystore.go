package whiteboard

// EntityStore is the interface for optional ECS integration. When set on an
// Engine, board interaction events are forwarded to the store.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionType identifies the kind of InteractionEvent.
type InteractionType uint8

// Interaction types forwarded to an EntityStore.
const (
	InteractionMouseDown InteractionType = iota
	InteractionMouseMove
	InteractionMouseUp
	InteractionDoubleClick
	InteractionSelectionChanged
	InteractionModeChanged
)

var interactionNames = [...]string{
	InteractionMouseDown:        "mouseDown",
	InteractionMouseMove:        "mouseMove",
	InteractionMouseUp:          "mouseUp",
	InteractionDoubleClick:      "doubleClick",
	InteractionSelectionChanged: "selectionChanged",
	InteractionModeChanged:      "modeChanged",
}

func (t InteractionType) String() string {
	if int(t) < len(interactionNames) {
		return interactionNames[t]
	}
	return "unknown"
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type InteractionType
	// Pointer fields (valid for the mouse types). World is the pointer
	// under the canvas transform.
	ScreenX, ScreenY float64
	WorldX, WorldY   float64
	Button           MouseButton
	Modifiers        KeyModifiers
	// WidgetIDs is the committed selection (InteractionSelectionChanged).
	WidgetIDs []string
	// Mode and PrevMode are set for InteractionModeChanged.
	Mode, PrevMode MainMode
}

var gestureTypes = map[string]InteractionType{
	EventMouseDown:   InteractionMouseDown,
	EventMouseMove:   InteractionMouseMove,
	EventMouseUp:     InteractionMouseUp,
	EventDoubleClick: InteractionDoubleClick,
}

// entityBridge forwards gestures, selection commits and mode switches to an
// EntityStore.
type entityBridge struct {
	store     EntityStore
	mouse     *MouseController
	tools     *ToolService
	selection *SelectionService
}

func newEntityBridge(store EntityStore, mouse *MouseController, tools *ToolService, selection *SelectionService) *entityBridge {
	b := &entityBridge{store: store, mouse: mouse, tools: tools, selection: selection}
	for name, typ := range gestureTypes {
		mouse.OnContext(name, b, func(ev MouseEvent) bool {
			b.store.EmitEvent(InteractionEvent{
				Type:      typ,
				ScreenX:   ev.Raw.X,
				ScreenY:   ev.Raw.Y,
				WorldX:    ev.Pointer.X,
				WorldY:    ev.Pointer.Y,
				Button:    ev.Raw.Button,
				Modifiers: ev.Raw.Modifiers,
			})
			return true
		})
	}
	selection.SelectionChanged.AddContext(b, func(ws []*Widget) {
		ids := make([]string, len(ws))
		for i, w := range ws {
			ids[i] = w.ID
		}
		b.store.EmitEvent(InteractionEvent{Type: InteractionSelectionChanged, WidgetIDs: ids})
	})
	tools.MainModeChanged.AddContext(b, func(ch MainModeChange) {
		b.store.EmitEvent(InteractionEvent{Type: InteractionModeChanged, Mode: ch.Tool, PrevMode: ch.PrevTool})
	})
	return b
}

func (b *entityBridge) Dispose() {
	for name := range gestureTypes {
		b.mouse.OffContext(name, b)
	}
	b.selection.SelectionChanged.RemoveContext(b)
	b.tools.MainModeChanged.RemoveContext(b)
}

// SetEntityStore forwards interaction events to store, replacing any
// previous store. A nil store stops forwarding.
func (e *Engine) SetEntityStore(store EntityStore) {
	if e.Services.Has(ServiceEntityBridge) {
		e.Services.Get(ServiceEntityBridge).Dispose()
		e.Services.Remove(ServiceEntityBridge)
	}
	if store == nil {
		return
	}
	e.Services.Register(ServiceEntityBridge, newEntityBridge(store, e.mouse, e.tools, e.selection))
}
