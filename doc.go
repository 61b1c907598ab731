// Package whiteboard is a collaborative whiteboard client for [Ebitengine].
//
// It provides the scene graph of board widgets, a zoomable and pannable
// canvas, a pointer pipeline that turns raw input into gestures, the select,
// pan and shape tools, and an overlay that animates the cursors of everyone
// else on the board.
//
// # Quick start
//
// [NewEngine] builds every component and starts in select mode. [Engine.Run]
// opens a window and runs the game loop:
//
//	engine := whiteboard.NewEngine(whiteboard.Options{Width: 1280, Height: 720})
//	engine.Stage().AddWidget(whiteboard.NewRectangle(100, 100, 160, 90, whiteboard.ShapeOptions{}))
//	if err := engine.Run("Whiteboard"); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, wrap the engine in your own [ebiten.Game] and call
// [Engine.Update], [Engine.Draw] and [Engine.Layout] yourself.
//
// # Scene graph
//
// The [Stage] owns a fixed tree of [Layer] containers. Board widgets live in
// the canvas-space default layer and are drawn under the canvas transform;
// selection borders and the marquee live in the screen-space layers on top.
// Sibling order is an opaque string key from [GenerateIndex], so a widget
// can be inserted anywhere without renumbering its neighbors.
//
// # Input
//
// [RawInput] polls the mouse once per update and emits edge signals.
// [MouseController] converts them to world space, coalesces moves to one
// per canvas tick and recognizes double clicks. Tools subscribe to the
// controller while their mode is active; switch modes with
// [ToolService.ChangeTool]. Synthetic input for tests and scripts goes
// through [RawInput.InjectClick], [RawInput.InjectDrag] and friends.
//
// # Collaboration
//
// A [Session] joins a board over a [wsclient.Client], keeps the roster in
// [AppState] and feeds remote cursors to the [CursorOverlay].
// [Engine.ConnectCursorSender] shares the local pointer, throttled. Network
// callbacks hand their work to the update goroutine with [Engine.Post].
//
// ECS integration is available through [Engine.SetEntityStore] and the
// [Donburi] adapter in whiteboard/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package whiteboard
