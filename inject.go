package whiteboard

// syntheticPointerEvent is one queued scripted input. Coordinates are screen
// coordinates, so scripted input goes through the same viewport conversion
// as real input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	mods             KeyModifiers

	wheel  bool
	dx, dy float64
}

// InjectModifiers sets the modifiers held by events injected after it.
func (in *RawInput) InjectModifiers(mods KeyModifiers) {
	in.injectMods = mods
}

// InjectPress queues a left-button press at the given screen coordinates.
// Each queued event is consumed by one PollEbiten call.
func (in *RawInput) InjectPress(x, y float64) {
	in.enqueue(syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a move with the button held. Use it between InjectPress
// and InjectRelease to simulate a drag.
func (in *RawInput) InjectMove(x, y float64) {
	in.enqueue(syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectHover queues a move with no button held.
func (in *RawInput) InjectHover(x, y float64) {
	in.enqueue(syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectRelease queues a release at the given screen coordinates.
func (in *RawInput) InjectRelease(x, y float64) {
	in.enqueue(syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectClick queues a press and a release at the same point. Consumes two
// frames.
func (in *RawInput) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// ending on (toX, toY) and a release there. The sequence consumes frames
// frames. Minimum frames is 2.
func (in *RawInput) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at the given screen coordinates.
func (in *RawInput) InjectWheel(x, y, dx, dy float64) {
	in.enqueue(syntheticPointerEvent{screenX: x, screenY: y, wheel: true, dx: dx, dy: dy})
}

// Pending returns the number of queued injected events.
func (in *RawInput) Pending() int { return len(in.injectQueue) }

func (in *RawInput) enqueue(ev syntheticPointerEvent) {
	ev.mods = in.injectMods
	in.injectQueue = append(in.injectQueue, ev)
}

// processInjected pops one queued event and feeds it. It reports whether
// an event was consumed.
func (in *RawInput) processInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	ev := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if ev.wheel {
		in.FeedWheel(WheelEvent{X: ev.screenX, Y: ev.screenY, DeltaX: ev.dx, DeltaY: ev.dy, Modifiers: ev.mods})
		return true
	}
	in.Feed(ev.screenX, ev.screenY, ev.pressed, ev.button, ev.mods)
	return true
}
