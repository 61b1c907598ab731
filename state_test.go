package whiteboard

import (
	"sync"
	"testing"

	"github.com/phanxgames/whiteboard/wsclient"
)

func TestStateSetNotifiesEveryTime(t *testing.T) {
	s := NewState(1)
	var got []int
	s.Bind(func(v int) { got = append(got, v) })

	s.Set(2)
	s.Set(2)
	s.Update(func(v int) int { return v * 10 })

	if len(got) != 3 || got[0] != 2 || got[1] != 2 || got[2] != 20 {
		t.Errorf("notifications = %v, want [2 2 20]", got)
	}
	if s.Get() != 20 {
		t.Errorf("Get = %d, want 20", s.Get())
	}
}

func TestStateUnbind(t *testing.T) {
	s := NewState("a")
	calls := 0
	unbind := s.Bind(func(string) { calls++ })
	s.Set("b")
	unbind()
	unbind()
	s.Set("c")
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestStateUnbindDuringNotify(t *testing.T) {
	s := NewState(0)
	var second Unbind
	firstCalls, secondCalls := 0, 0
	s.Bind(func(int) {
		firstCalls++
		second()
	})
	second = s.Bind(func(int) { secondCalls++ })

	s.Set(1)
	s.Set(2)
	if firstCalls != 2 || secondCalls != 0 {
		t.Errorf("calls = %d, %d; want 2, 0", firstCalls, secondCalls)
	}
}

func TestStateConcurrentGet(t *testing.T) {
	s := NewState(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Get()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		s.Set(j)
	}
	wg.Wait()
}

func TestRoster(t *testing.T) {
	r := NewRoster()
	var snapshots [][]wsclient.User
	r.Changed.Add(func(u []wsclient.User) { snapshots = append(snapshots, u) })

	r.Set([]wsclient.User{{ID: 1, FullName: "Ann"}, {ID: 2, FullName: "Bo"}})
	r.Add(wsclient.User{ID: 3, FullName: "Cy"})
	r.Add(wsclient.User{ID: 1, FullName: "Ann B"})

	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
	if u, ok := r.Get(1); !ok || u.FullName != "Ann B" {
		t.Errorf("Get(1) = %+v, %v; want replaced entry", u, ok)
	}
	if all := r.All(); all[0].ID != 1 || all[2].ID != 3 {
		t.Errorf("order = %+v, want join order", all)
	}

	if !r.Remove(2) {
		t.Error("Remove(2) = false")
	}
	if r.Remove(2) {
		t.Error("second Remove(2) = true")
	}
	if _, ok := r.Get(2); ok {
		t.Error("removed user still present")
	}
	if len(snapshots) != 4 {
		t.Errorf("Changed dispatches = %d, want 4", len(snapshots))
	}

	// Snapshots are copies.
	all := r.All()
	all[0].FullName = "mutated"
	if u, _ := r.Get(1); u.FullName == "mutated" {
		t.Error("All should return a copy")
	}
}

func TestNewAppState(t *testing.T) {
	app := NewAppState()
	if m := app.Mode.Get(); m.Main != ModeSelect || m.Sub != SubModeNone {
		t.Errorf("initial mode = %+v, want SELECT", m)
	}
	if app.User.Get() != nil {
		t.Error("initial user should be nil")
	}
	if app.Roster.Len() != 0 {
		t.Error("initial roster should be empty")
	}
}
