package whiteboard

import (
	"fmt"
	"log/slog"
)

// Signal is a single typed event channel.
//
// Dispatch is synchronous. Listeners added while a dispatch is running do not
// receive that dispatch. Listeners removed while a dispatch is running are
// marked and compacted once the outermost dispatch returns, so the live
// iteration is never invalidated.
//
// By default a panicking listener aborts the rest of the dispatch and the
// panic propagates to the caller. A signal created WithIsolation recovers the
// panic, logs it and keeps dispatching.
type Signal[T any] struct {
	name     string
	bindings []*Binding[T]

	depth         int
	dirty         bool
	haltRequested bool
	didHalt       bool

	inactive bool
	memorize bool
	isolate  bool
	logger   *slog.Logger

	last    T
	hasLast bool
}

// Binding is the handle for one listener on a Signal.
type Binding[T any] struct {
	signal  *Signal[T]
	fn      func(T) bool
	ctx     any
	once    bool
	removed bool
}

// Detach removes the listener from its signal. Safe to call more than once.
func (b *Binding[T]) Detach() {
	if b != nil && b.signal != nil {
		b.signal.Remove(b)
	}
}

// IsOnce reports whether the listener detaches after its first call.
func (b *Binding[T]) IsOnce() bool { return b.once }

// Context returns the identity key the listener was added with, or nil.
func (b *Binding[T]) Context() any { return b.ctx }

type signalConfig struct {
	name     string
	memorize bool
	isolate  bool
	logger   *slog.Logger
}

// SignalOption configures a Signal at construction.
type SignalOption func(*signalConfig)

// WithMemorize makes a signal remember its last dispatched value and replay
// it to every listener added afterwards.
func WithMemorize() SignalOption {
	return func(c *signalConfig) { c.memorize = true }
}

// WithIsolation recovers listener panics, logs them to logger and continues
// the dispatch. A nil logger uses slog.Default.
func WithIsolation(logger *slog.Logger) SignalOption {
	return func(c *signalConfig) {
		c.isolate = true
		c.logger = logger
	}
}

// WithName labels the signal in log output.
func WithName(name string) SignalOption {
	return func(c *signalConfig) { c.name = name }
}

// NewSignal creates an active signal.
func NewSignal[T any](opts ...SignalOption) *Signal[T] {
	var cfg signalConfig
	for _, o := range opts {
		o(&cfg)
	}
	s := &Signal[T]{
		name:     cfg.name,
		memorize: cfg.memorize,
		isolate:  cfg.isolate,
	}
	if cfg.isolate {
		s.logger = componentLogger(cfg.logger, "signal")
	}
	return s
}

// Add registers fn for every dispatch.
func (s *Signal[T]) Add(fn func(T)) *Binding[T] {
	return s.register(always(fn), nil, false)
}

// AddOnce registers fn for the next dispatch only.
func (s *Signal[T]) AddOnce(fn func(T)) *Binding[T] {
	return s.register(always(fn), nil, true)
}

// AddContext registers fn under the identity key ctx. Adding again with the
// same key returns the existing binding instead of a duplicate. ctx must be
// comparable.
func (s *Signal[T]) AddContext(ctx any, fn func(T)) *Binding[T] {
	return s.register(always(fn), ctx, false)
}

// AddOnceContext is AddOnce with an identity key.
func (s *Signal[T]) AddOnceContext(ctx any, fn func(T)) *Binding[T] {
	return s.register(always(fn), ctx, true)
}

// Listen registers a listener that can halt the dispatch by returning false.
func (s *Signal[T]) Listen(fn func(T) bool) *Binding[T] {
	return s.register(fn, nil, false)
}

func always[T any](fn func(T)) func(T) bool {
	if fn == nil {
		return nil
	}
	return func(v T) bool {
		fn(v)
		return true
	}
}

func (s *Signal[T]) register(fn func(T) bool, ctx any, once bool) *Binding[T] {
	if fn == nil {
		panic("whiteboard: nil listener")
	}
	if ctx != nil {
		if b := s.find(ctx); b != nil {
			if b.once != once {
				panic(fmt.Sprintf("whiteboard: listener for context %v already added with once=%v", ctx, b.once))
			}
			return b
		}
	}

	b := &Binding[T]{signal: s, fn: fn, ctx: ctx, once: once}
	s.bindings = append(s.bindings, b)

	if s.memorize && s.hasLast {
		if once {
			s.Remove(b)
		}
		s.call(b, s.last)
	}
	return b
}

func (s *Signal[T]) find(ctx any) *Binding[T] {
	for _, b := range s.bindings {
		if !b.removed && b.ctx == ctx {
			return b
		}
	}
	return nil
}

// Remove detaches b. It reports whether b was attached to this signal.
func (s *Signal[T]) Remove(b *Binding[T]) bool {
	if b == nil || b.signal != s || b.removed {
		return false
	}
	b.removed = true
	if s.depth > 0 {
		s.dirty = true
		return true
	}
	s.compact()
	return true
}

// RemoveContext detaches the listener registered under ctx.
func (s *Signal[T]) RemoveContext(ctx any) bool {
	return s.Remove(s.find(ctx))
}

// RemoveAll detaches every listener.
func (s *Signal[T]) RemoveAll() {
	for _, b := range s.bindings {
		b.removed = true
	}
	if s.depth > 0 {
		s.dirty = true
		return
	}
	s.bindings = s.bindings[:0]
}

// HasContext reports whether a listener is registered under ctx.
func (s *Signal[T]) HasContext(ctx any) bool {
	return s.find(ctx) != nil
}

// NumListeners returns the number of attached listeners.
func (s *Signal[T]) NumListeners() int {
	n := 0
	for _, b := range s.bindings {
		if !b.removed {
			n++
		}
	}
	return n
}

// Dispatch calls every attached listener in registration order with v and
// reports whether the dispatch was halted. An inactive signal does nothing.
func (s *Signal[T]) Dispatch(v T) bool {
	if s.inactive {
		return false
	}
	if s.memorize {
		s.last = v
		s.hasLast = true
	}

	// A nested dispatch must not swallow a Halt from the outer one.
	outer := s.haltRequested
	s.haltRequested = false
	s.didHalt = false
	n := len(s.bindings)
	if n == 0 {
		s.haltRequested = outer
		return false
	}

	s.depth++
	defer s.endDispatch()

	halted := false
	for i := 0; i < n; i++ {
		b := s.bindings[i]
		if b.removed {
			continue
		}
		if b.once {
			s.Remove(b)
		}
		if !s.call(b, v) || s.haltRequested {
			halted = true
			break
		}
	}
	s.didHalt = halted
	s.haltRequested = outer
	return halted
}

func (s *Signal[T]) call(b *Binding[T], v T) (cont bool) {
	if !s.isolate {
		return b.fn(v)
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("listener panicked", "signal", s.name, "panic", r)
			cont = true
		}
	}()
	return b.fn(v)
}

func (s *Signal[T]) endDispatch() {
	s.depth--
	if s.depth == 0 && s.dirty {
		s.compact()
	}
}

func (s *Signal[T]) compact() {
	live := s.bindings[:0]
	for _, b := range s.bindings {
		if !b.removed {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(s.bindings); i++ {
		s.bindings[i] = nil
	}
	s.bindings = live
	s.dirty = false
}

// Halt stops the dispatch in progress after the current listener returns.
func (s *Signal[T]) Halt() {
	if s.depth > 0 {
		s.haltRequested = true
	}
}

// DidHalt reports whether the most recent dispatch was halted.
func (s *Signal[T]) DidHalt() bool { return s.didHalt }

// Values returns the memorized value, if any.
func (s *Signal[T]) Values() (T, bool) {
	return s.last, s.hasLast
}

// Forget drops the memorized value.
func (s *Signal[T]) Forget() {
	var zero T
	s.last = zero
	s.hasLast = false
}

// SetActive enables or disables dispatching.
func (s *Signal[T]) SetActive(active bool) { s.inactive = !active }

// Active reports whether Dispatch delivers values.
func (s *Signal[T]) Active() bool { return !s.inactive }

// Dispose detaches every listener and drops the memorized value.
func (s *Signal[T]) Dispose() {
	s.RemoveAll()
	s.Forget()
}
