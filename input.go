package whiteboard

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// wheelPixelsPerNotch converts ebiten wheel offsets to pixel deltas.
const wheelPixelsPerNotch = 100

// RawPointerEvent is a pointer sample in screen coordinates.
type RawPointerEvent struct {
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	Time      time.Time
}

// WheelEvent is a wheel or trackpad scroll in screen coordinates. Positive
// DeltaY scrolls down.
type WheelEvent struct {
	X, Y           float64
	DeltaX, DeltaY float64
	Modifiers      KeyModifiers
}

// RawInput turns polled pointer state into raw edge signals. PointerMove
// fires whenever the position changes, pressed or not.
type RawInput struct {
	PointerDown *Signal[RawPointerEvent]
	PointerMove *Signal[RawPointerEvent]
	PointerUp   *Signal[RawPointerEvent]
	Wheel       *Signal[WheelEvent]

	// Now stamps events. Defaults to time.Now.
	Now func() time.Time

	down         bool
	button       MouseButton
	lastX, lastY float64
	hasLast      bool

	injectQueue []syntheticPointerEvent
	injectMods  KeyModifiers
}

// NewRawInput creates an input source with no pointer history.
func NewRawInput() *RawInput {
	return &RawInput{
		PointerDown: NewSignal[RawPointerEvent](WithName("pointerDown")),
		PointerMove: NewSignal[RawPointerEvent](WithName("pointerMove")),
		PointerUp:   NewSignal[RawPointerEvent](WithName("pointerUp")),
		Wheel:       NewSignal[WheelEvent](WithName("wheel")),
		Now:         time.Now,
	}
}

// IsDown reports whether a button is held.
func (in *RawInput) IsDown() bool { return in.down }

// Feed runs one pointer sample through the edge detector. A position change
// dispatches PointerMove before any press or release edge.
func (in *RawInput) Feed(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	// Keep the button of an ongoing press so the up matches the down.
	if in.down {
		button = in.button
	}
	ev := RawPointerEvent{X: x, Y: y, Button: button, Modifiers: mods, Time: in.Now()}

	if !in.hasLast || x != in.lastX || y != in.lastY {
		in.lastX, in.lastY, in.hasLast = x, y, true
		in.PointerMove.Dispatch(ev)
	}

	switch {
	case pressed && !in.down:
		in.down = true
		in.button = button
		in.PointerDown.Dispatch(ev)
	case !pressed && in.down:
		in.down = false
		in.PointerUp.Dispatch(ev)
	}
}

// FeedWheel dispatches a wheel event. Zero deltas are dropped.
func (in *RawInput) FeedWheel(ev WheelEvent) {
	if ev.DeltaX == 0 && ev.DeltaY == 0 {
		return
	}
	in.Wheel.Dispatch(ev)
}

// PollEbiten reads ebiten's mouse, wheel and modifier state and feeds it.
// A queued injected event replaces real pointer input for the frame.
func (in *RawInput) PollEbiten() {
	if in.processInjected() {
		return
	}

	mods := readModifiers()
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}
	in.Feed(sx, sy, pressed, button, mods)

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		in.FeedWheel(WheelEvent{
			X: sx, Y: sy,
			DeltaX:    -wx * wheelPixelsPerNotch,
			DeltaY:    -wy * wheelPixelsPerNotch,
			Modifiers: mods,
		})
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
