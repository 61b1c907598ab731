package whiteboard

import (
	"slices"
	"sync"

	"github.com/phanxgames/whiteboard/wsclient"
)

// MainMode is the active interaction mode.
type MainMode string

const (
	ModeSelect MainMode = "SELECT"
	ModePan    MainMode = "PAN"
	ModeCreate MainMode = "CREATE"
)

// SubMode refines ModeCreate with the shape to draw.
type SubMode string

const (
	SubModeNone      SubMode = ""
	SubModeRectangle SubMode = "CREATE_RECTANGLE"
	SubModeTriangle  SubMode = "CREATE_TRIANGLE"
	SubModeEllipse   SubMode = "CREATE_ELLIPSE"
)

// ModeState is the mode pair held in application state.
type ModeState struct {
	Main MainMode
	Sub  SubMode
}

// Unbind removes a State binding.
type Unbind func()

// State wraps a value and notifies bindings on every Set, changed or not.
//
// Get is safe from any goroutine. Set must be called from the engine's
// update loop; other goroutines go through Engine.Post.
type State[T any] struct {
	mu       sync.RWMutex
	value    T
	bindings []*stateBinding[T]
}

type stateBinding[T any] struct {
	fn     func(T)
	active bool
}

// NewState creates a state holding initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and calls every binding with it.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	live := s.bindings[:0]
	for _, b := range s.bindings {
		if b.active {
			live = append(live, b)
		}
	}
	s.bindings = live
	snapshot := slices.Clone(live)
	s.mu.Unlock()

	for _, b := range snapshot {
		if b.active {
			b.fn(v)
		}
	}
}

// Update replaces the value with fn applied to it.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Bind calls fn after every Set. It does not call fn with the current value.
func (s *State[T]) Bind(fn func(T)) Unbind {
	b := &stateBinding[T]{fn: fn, active: true}
	s.mu.Lock()
	s.bindings = append(s.bindings, b)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		b.active = false
		s.mu.Unlock()
	}
}

// Roster is the set of collaborators known to be on the board, in join
// order.
type Roster struct {
	// Changed fires with a snapshot after every mutation.
	Changed *Signal[[]wsclient.User]

	mu    sync.RWMutex
	users []wsclient.User
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{Changed: NewSignal[[]wsclient.User](WithName("rosterChanged"))}
}

// Set replaces the roster.
func (r *Roster) Set(users []wsclient.User) {
	r.mu.Lock()
	r.users = slices.Clone(users)
	r.mu.Unlock()
	r.Changed.Dispatch(r.All())
}

// Add inserts u, or replaces the entry with the same id.
func (r *Roster) Add(u wsclient.User) {
	r.mu.Lock()
	if i := r.index(u.ID); i >= 0 {
		r.users[i] = u
	} else {
		r.users = append(r.users, u)
	}
	r.mu.Unlock()
	r.Changed.Dispatch(r.All())
}

// Remove drops the user with id and reports whether it was present.
func (r *Roster) Remove(id int64) bool {
	r.mu.Lock()
	i := r.index(id)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	r.users = slices.Delete(r.users, i, i+1)
	r.mu.Unlock()
	r.Changed.Dispatch(r.All())
	return true
}

// Get returns the user with id.
func (r *Roster) Get(id int64) (wsclient.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		return r.users[i], true
	}
	return wsclient.User{}, false
}

// All returns a snapshot of the roster.
func (r *Roster) All() []wsclient.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users)
}

// Len returns the number of users.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *Roster) index(id int64) int {
	return slices.IndexFunc(r.users, func(u wsclient.User) bool { return u.ID == id })
}

// AppState is the application state the core reads reactively and writes
// mode transitions back to.
type AppState struct {
	Mode   *State[ModeState]
	User   *State[*wsclient.User]
	Roster *Roster
}

// NewAppState returns state in SELECT mode with no user.
func NewAppState() *AppState {
	return &AppState{
		Mode:   NewState(ModeState{Main: ModeSelect}),
		User:   NewState[*wsclient.User](nil),
		Roster: NewRoster(),
	}
}
