package whiteboard

import "log/slog"

// Emitter maps event names to isolated Signals sharing one payload type.
//
// A listener that panics is recovered and logged; the remaining listeners
// still run. A listener returning false stops propagation, which Emit
// reports to its caller.
type Emitter[T any] struct {
	signals map[string]*Signal[T]
	logger  *slog.Logger
}

// NewEmitter creates an Emitter that logs listener failures to logger.
func NewEmitter[T any](logger *slog.Logger) *Emitter[T] {
	return &Emitter[T]{logger: logger}
}

func (e *Emitter[T]) signal(event string) *Signal[T] {
	if s, ok := e.signals[event]; ok {
		return s
	}
	if e.signals == nil {
		e.signals = make(map[string]*Signal[T])
	}
	s := NewSignal[T](WithIsolation(e.logger), WithName(event))
	e.signals[event] = s
	return s
}

// On subscribes fn to event and returns a function that unsubscribes it.
func (e *Emitter[T]) On(event string, fn func(T) bool) (unsubscribe func()) {
	return e.signal(event).register(fn, nil, false).Detach
}

// OnContext subscribes fn under the identity key ctx so it can later be
// removed with OffContext.
func (e *Emitter[T]) OnContext(event string, ctx any, fn func(T) bool) (unsubscribe func()) {
	return e.signal(event).register(fn, ctx, false).Detach
}

// Once subscribes fn for the next emission of event only.
func (e *Emitter[T]) Once(event string, fn func(T) bool) (unsubscribe func()) {
	return e.signal(event).register(fn, nil, true).Detach
}

// Off removes every listener of event.
func (e *Emitter[T]) Off(event string) {
	if s, ok := e.signals[event]; ok {
		s.RemoveAll()
	}
}

// OffContext removes the listener of event registered under ctx.
func (e *Emitter[T]) OffContext(event string, ctx any) {
	if s, ok := e.signals[event]; ok {
		s.RemoveContext(ctx)
	}
}

// Emit dispatches payload to the listeners of event. It returns true iff a
// listener returned false.
func (e *Emitter[T]) Emit(event string, payload T) bool {
	s, ok := e.signals[event]
	if !ok {
		return false
	}
	return s.Dispatch(payload)
}

// ClearEventListeners removes the listeners of the named events, or of every
// event when none are named.
func (e *Emitter[T]) ClearEventListeners(events ...string) {
	if len(events) == 0 {
		for _, s := range e.signals {
			s.RemoveAll()
		}
		return
	}
	for _, ev := range events {
		e.Off(ev)
	}
}

// ListenerCount returns the number of listeners attached to event.
func (e *Emitter[T]) ListenerCount(event string) int {
	if s, ok := e.signals[event]; ok {
		return s.NumListeners()
	}
	return 0
}
