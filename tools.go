package whiteboard

// MainModeChange is dispatched when the main mode differs from the last one
// seen.
type MainModeChange struct {
	Tool     MainMode
	PrevTool MainMode
}

// SubModeChange is dispatched when the sub-mode differs from the last one
// seen.
type SubModeChange struct {
	SubTool     SubMode
	PrevSubTool SubMode
	Tool        MainMode
	PrevTool    MainMode
}

// ToolService turns the mode held in application state into edge-triggered
// signals. Both signals memorize, so a tool created after the first change
// still learns the current mode when it subscribes.
type ToolService struct {
	MainModeChanged *Signal[MainModeChange]
	SubModeChanged  *Signal[SubModeChange]

	mode   *State[ModeState]
	unbind Unbind

	seen        bool
	tool        MainMode
	prevTool    MainMode
	subTool     SubMode
	prevSubTool SubMode
}

// NewToolService subscribes to mode and dispatches the current mode once.
func NewToolService(mode *State[ModeState]) *ToolService {
	t := &ToolService{
		MainModeChanged: NewSignal[MainModeChange](WithMemorize(), WithName("mainModeChanged")),
		SubModeChanged:  NewSignal[SubModeChange](WithMemorize(), WithName("subModeChanged")),
		mode:            mode,
	}
	t.unbind = mode.Bind(t.onStateChange)
	t.onStateChange(mode.Get())
	return t
}

func (t *ToolService) onStateChange(st ModeState) {
	first := !t.seen
	t.seen = true

	if first || st.Main != t.tool {
		t.prevTool, t.tool = t.tool, st.Main
		t.MainModeChanged.Dispatch(MainModeChange{Tool: t.tool, PrevTool: t.prevTool})
	}
	if first || st.Sub != t.subTool {
		t.prevSubTool, t.subTool = t.subTool, st.Sub
		t.SubModeChanged.Dispatch(SubModeChange{
			SubTool:     t.subTool,
			PrevSubTool: t.prevSubTool,
			Tool:        t.tool,
			PrevTool:    t.prevTool,
		})
	}
}

// ChangeTool writes a mode transition back to application state.
func (t *ToolService) ChangeTool(mode MainMode, sub SubMode) {
	t.mode.Set(ModeState{Main: mode, Sub: sub})
}

// Mode returns the last mode seen.
func (t *ToolService) Mode() ModeState {
	return ModeState{Main: t.tool, Sub: t.subTool}
}

// Dispose stops following application state.
func (t *ToolService) Dispose() {
	t.unbind()
	t.MainModeChanged.Dispose()
	t.SubModeChanged.Dispose()
}

// bindPointer subscribes a tool's gesture handlers under the identity key
// ctx. Binding twice with the same key is a no-op.
func bindPointer(m *MouseController, ctx any, down, move, up func(MouseEvent)) {
	m.OnContext(EventMouseDown, ctx, handled(down))
	m.OnContext(EventMouseMove, ctx, handled(move))
	m.OnContext(EventMouseUp, ctx, handled(up))
}

// unbindPointer removes the handlers bound under ctx. It is safe to call
// when nothing is bound.
func unbindPointer(m *MouseController, ctx any) {
	m.OffContext(EventMouseDown, ctx)
	m.OffContext(EventMouseMove, ctx)
	m.OffContext(EventMouseUp, ctx)
}

func handled(fn func(MouseEvent)) func(MouseEvent) bool {
	return func(e MouseEvent) bool {
		fn(e)
		return true
	}
}
