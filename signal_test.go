package whiteboard

import (
	"testing"
)

func TestSignalDispatchOrder(t *testing.T) {
	s := NewSignal[int]()
	var got []string
	s.Add(func(v int) { got = append(got, "a") })
	s.Add(func(v int) { got = append(got, "b") })
	s.Add(func(v int) { got = append(got, "c") })

	if halted := s.Dispatch(1); halted {
		t.Error("Dispatch reported halted without Halt")
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("call order = %v, want [a b c]", got)
	}
}

func TestSignalAddOnce(t *testing.T) {
	s := NewSignal[int]()
	calls := 0
	s.AddOnce(func(int) { calls++ })
	s.Dispatch(1)
	s.Dispatch(2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n := s.NumListeners(); n != 0 {
		t.Errorf("NumListeners = %d, want 0", n)
	}
}

func TestSignalHalt(t *testing.T) {
	s := NewSignal[int]()
	var got []int
	s.Add(func(v int) {
		got = append(got, 1)
		s.Halt()
	})
	s.Add(func(v int) { got = append(got, 2) })

	if !s.Dispatch(0) {
		t.Error("Dispatch = false, want halted")
	}
	if !s.DidHalt() {
		t.Error("DidHalt = false after halted dispatch")
	}
	if len(got) != 1 {
		t.Errorf("listeners run = %v, want only the first", got)
	}

	// The halt applies to one dispatch only.
	got = nil
	s.RemoveAll()
	s.Add(func(int) { got = append(got, 3) })
	s.Dispatch(0)
	if s.DidHalt() || len(got) != 1 {
		t.Errorf("next dispatch halted=%v got=%v", s.DidHalt(), got)
	}
}

func TestSignalHaltSurvivesNestedDispatch(t *testing.T) {
	s := NewSignal[int]()
	var got []int
	s.Add(func(v int) {
		if v == 0 {
			s.Halt()
			s.Dispatch(1)
		}
	})
	s.Add(func(v int) { got = append(got, v) })

	if !s.Dispatch(0) {
		t.Error("Dispatch = false, want the outer halt kept")
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("second listener saw %v, want only the nested value [1]", got)
	}
}

func TestSignalListenReturningFalseHalts(t *testing.T) {
	s := NewSignal[string]()
	second := false
	s.Listen(func(string) bool { return false })
	s.Add(func(string) { second = true })
	if !s.Dispatch("x") {
		t.Error("Dispatch = false, want halted")
	}
	if second {
		t.Error("listener after a false return should not run")
	}
}

func TestSignalContextIdentity(t *testing.T) {
	s := NewSignal[int]()
	owner := &struct{ name string }{"owner"}

	b1 := s.AddContext(owner, func(int) {})
	b2 := s.AddContext(owner, func(int) {})
	if b1 != b2 {
		t.Error("same context should return the same binding")
	}
	if n := s.NumListeners(); n != 1 {
		t.Errorf("NumListeners = %d, want 1", n)
	}
	if !s.HasContext(owner) {
		t.Error("HasContext = false, want true")
	}
	if !s.RemoveContext(owner) {
		t.Error("RemoveContext = false, want true")
	}
	if s.HasContext(owner) {
		t.Error("HasContext after RemoveContext = true")
	}
}

func TestSignalMixedOncePanics(t *testing.T) {
	s := NewSignal[int]()
	owner := "tool"
	s.AddContext(owner, func(int) {})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when adding the same context with AddOnce")
		}
	}()
	s.AddOnceContext(owner, func(int) {})
}

func TestSignalNilListenerPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil listener")
		}
	}()
	NewSignal[int]().Add(nil)
}

func TestSignalMemorizeReplays(t *testing.T) {
	s := NewSignal[string](WithMemorize())
	s.Dispatch("first")
	s.Dispatch("second")

	var got string
	s.Add(func(v string) { got = v })
	if got != "second" {
		t.Errorf("replayed = %q, want %q", got, "second")
	}

	v, ok := s.Values()
	if !ok || v != "second" {
		t.Errorf("Values() = %q, %v, want second, true", v, ok)
	}

	s.Forget()
	got = ""
	s.Add(func(v string) { got = v })
	if got != "" {
		t.Errorf("after Forget replayed %q, want nothing", got)
	}
}

func TestSignalMemorizeOnceReplaysAndDetaches(t *testing.T) {
	s := NewSignal[int](WithMemorize())
	s.Dispatch(7)
	calls := 0
	s.AddOnce(func(int) { calls++ })
	s.Dispatch(8)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSignalWithoutMemorizeDoesNotReplay(t *testing.T) {
	s := NewSignal[int]()
	s.Dispatch(1)
	called := false
	s.Add(func(int) { called = true })
	if called {
		t.Error("non-memorizing signal replayed a value")
	}
}

func TestSignalRemoveDuringDispatchIsDeferred(t *testing.T) {
	s := NewSignal[int]()
	var got []string
	var b2 *Binding[int]
	s.Add(func(int) {
		got = append(got, "a")
		b2.Detach()
	})
	b2 = s.Add(func(int) { got = append(got, "b") })
	s.Add(func(int) { got = append(got, "c") })

	s.Dispatch(0)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("got %v, want [a c]", got)
	}
	if n := s.NumListeners(); n != 2 {
		t.Errorf("NumListeners = %d, want 2", n)
	}
	if len(s.bindings) != 2 {
		t.Errorf("bindings not compacted: len = %d", len(s.bindings))
	}
}

func TestSignalAddDuringDispatchWaitsForNext(t *testing.T) {
	s := NewSignal[int]()
	lateCalls := 0
	added := false
	s.Add(func(int) {
		if !added {
			added = true
			s.Add(func(int) { lateCalls++ })
		}
	})
	s.Dispatch(0)
	if lateCalls != 0 {
		t.Errorf("late listener ran during the dispatch that added it")
	}
	s.Dispatch(0)
	if lateCalls != 1 {
		t.Errorf("lateCalls = %d, want 1", lateCalls)
	}
}

func TestSignalPanicPropagates(t *testing.T) {
	s := NewSignal[int]()
	after := false
	s.Add(func(int) { panic("boom") })
	s.Add(func(int) { after = true })

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("recovered %v, want boom", r)
			}
		}()
		s.Dispatch(0)
	}()
	if after {
		t.Error("listener after a panicking one should not run")
	}

	// Bookkeeping must survive the unwinding.
	s.RemoveAll()
	calls := 0
	s.Add(func(int) { calls++ })
	s.Dispatch(0)
	if calls != 1 || s.NumListeners() != 1 {
		t.Errorf("signal unusable after panic: calls=%d listeners=%d", calls, s.NumListeners())
	}
}

func TestSignalIsolationContinues(t *testing.T) {
	s := NewSignal[int](WithIsolation(discardLogger()), WithName("test"))
	after := false
	s.Add(func(int) { panic("boom") })
	s.Add(func(int) { after = true })
	s.Dispatch(0)
	if !after {
		t.Error("isolated signal should keep dispatching after a panic")
	}
}

func TestSignalInactive(t *testing.T) {
	s := NewSignal[int]()
	calls := 0
	s.Add(func(int) { calls++ })
	s.SetActive(false)
	if s.Active() {
		t.Error("Active = true after SetActive(false)")
	}
	s.Dispatch(0)
	s.SetActive(true)
	s.Dispatch(0)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSignalDispose(t *testing.T) {
	s := NewSignal[int](WithMemorize())
	s.Add(func(int) {})
	s.Dispatch(3)
	s.Dispose()
	if s.NumListeners() != 0 {
		t.Errorf("NumListeners = %d after Dispose", s.NumListeners())
	}
	if _, ok := s.Values(); ok {
		t.Error("Dispose should drop the memorized value")
	}
}

func TestBindingDetachTwice(t *testing.T) {
	s := NewSignal[int]()
	b := s.Add(func(int) {})
	b.Detach()
	b.Detach()
	if s.Remove(b) {
		t.Error("Remove of a detached binding = true")
	}
}
