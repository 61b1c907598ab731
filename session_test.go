package whiteboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/phanxgames/whiteboard/wsclient"
)

// queuePoster collects posted work until run is called.
type queuePoster struct{ fns []func() }

func (q *queuePoster) Post(fn func()) { q.fns = append(q.fns, fn) }

func (q *queuePoster) run() {
	fns := q.fns
	q.fns = nil
	for _, fn := range fns {
		fn()
	}
}

func newTestSession(t *testing.T) (*Session, *AppState, *CursorOverlay, *queuePoster) {
	t.Helper()
	client := wsclient.New("ws://127.0.0.1:1/ws", wsclient.WithLogger(discardLogger()))
	app := NewAppState()
	_, overlay := newTestOverlay()
	poster := &queuePoster{}
	s := NewSession(client, app, overlay, poster, discardLogger())
	t.Cleanup(s.Close)
	return s, app, overlay, poster
}

func wsEvent(name, data string) wsclient.Event {
	return wsclient.Event{Name: name, Data: json.RawMessage(data)}
}

func TestSessionApplyJoinSeedsRosterAndCursors(t *testing.T) {
	s, app, overlay, _ := newTestSession(t)
	app.User.Set(&wsclient.User{ID: 1, FullName: "Me"})

	s.applyJoin(&wsclient.JoinResponse{OnlineUsers: []wsclient.OnlineUser{
		{User: wsclient.User{ID: 1, FullName: "Me"}, Cursor: &wsclient.CursorPos{X: 1, Y: 1}},
		{User: wsclient.User{ID: 2, FullName: "Ann"}, Cursor: &wsclient.CursorPos{X: 10, Y: 20}},
		{User: wsclient.User{ID: 3, FullName: "Bo"}},
	}})

	if app.Roster.Len() != 3 {
		t.Errorf("roster = %d users, want 3", app.Roster.Len())
	}
	cursors := overlay.Cursors()
	if len(cursors) != 1 {
		t.Fatalf("cursors = %+v, want only Ann's", cursors)
	}
	if c := cursors[0]; c.UserID != 2 || c.UserName != "Ann" || c.Pos != (Vec2{10, 20}) {
		t.Errorf("cursor = %+v", c)
	}
}

func TestSessionEventsArePosted(t *testing.T) {
	s, app, overlay, poster := newTestSession(t)

	s.onEvent(wsEvent(wsclient.EventUserJoined, `{"user":{"id":5,"full_name":"Cy"}}`))
	s.onEvent(wsEvent(wsclient.EventCursor, `{"cursor":{"user_id":5,"user_name":"Cy","x":3,"y":4}}`))
	if app.Roster.Len() != 0 || len(overlay.Cursors()) != 0 {
		t.Fatal("state should change only on the update loop")
	}

	poster.run()
	if u, ok := app.Roster.Get(5); !ok || u.FullName != "Cy" {
		t.Errorf("roster entry = %+v, %v", u, ok)
	}
	if c, ok := overlay.Cursor(5); !ok || c.Pos != (Vec2{3, 4}) {
		t.Errorf("cursor = %+v, %v", c, ok)
	}

	s.onEvent(wsEvent(wsclient.EventUserLeft, `{"user":{"id":5}}`))
	poster.run()
	if app.Roster.Len() != 0 {
		t.Error("USER_LEFT should drop the user")
	}
}

func TestSessionIgnoresOwnCursor(t *testing.T) {
	s, app, overlay, poster := newTestSession(t)
	app.User.Set(&wsclient.User{ID: 9})

	s.onEvent(wsEvent(wsclient.EventCursor, `{"cursor":{"user_id":9,"x":1,"y":1}}`))
	poster.run()
	if len(overlay.Cursors()) != 0 {
		t.Error("the local user's cursor should not be drawn")
	}
}

func TestSessionDropsMalformedEvents(t *testing.T) {
	s, _, _, poster := newTestSession(t)
	s.onEvent(wsEvent(wsclient.EventUserJoined, `not json`))
	s.onEvent(wsEvent(wsclient.EventCursor, `[1,2]`))
	s.onEvent(wsEvent("SOMETHING_ELSE", `{}`))
	if len(poster.fns) != 0 {
		t.Errorf("posted %d updates, want none", len(poster.fns))
	}
}

func TestSessionJoinReportsConnectError(t *testing.T) {
	client := wsclient.New("ws://127.0.0.1:1/ws",
		wsclient.WithLogger(discardLogger()),
		wsclient.WithOpenTimeout(200*time.Millisecond))
	defer client.Close()
	poster := &queuePoster{}
	s := NewSession(client, NewAppState(), NewCursorOverlay(nil, nil), poster, discardLogger())
	defer s.Close()

	if err := s.Join(context.Background(), "board", "token"); err == nil {
		t.Fatal("Join against a closed port should fail")
	}
	if len(poster.fns) != 0 {
		t.Error("a failed join should not touch state")
	}
}

func TestEngineSessionKnowsLocalUser(t *testing.T) {
	h := newHeadless(t)
	client := wsclient.New("ws://127.0.0.1:1/ws", wsclient.WithLogger(discardLogger()))
	s := h.NewSession(client, wsclient.User{ID: 9, FullName: "Me"})
	t.Cleanup(s.Close)

	if u := h.App.User.Get(); u == nil || u.ID != 9 {
		t.Fatalf("App.User = %+v, want user 9", u)
	}

	s.applyJoin(&wsclient.JoinResponse{OnlineUsers: []wsclient.OnlineUser{
		{User: wsclient.User{ID: 9, FullName: "Me"}, Cursor: &wsclient.CursorPos{X: 1, Y: 1}},
	}})
	s.onEvent(wsEvent(wsclient.EventCursor, `{"cursor":{"user_id":9,"x":2,"y":2}}`))
	s.onEvent(wsEvent(wsclient.EventCursor, `{"cursor":{"user_id":5,"user_name":"Cy","x":3,"y":4}}`))
	h.frame()

	cursors := h.Overlay().Cursors()
	if len(cursors) != 1 || cursors[0].UserID != 5 {
		t.Errorf("cursors = %+v, want only user 5", cursors)
	}
}

func TestEngineSessionWithoutUserID(t *testing.T) {
	h := newHeadless(t)
	client := wsclient.New("ws://127.0.0.1:1/ws", wsclient.WithLogger(discardLogger()))
	s := h.NewSession(client, wsclient.User{})
	t.Cleanup(s.Close)

	if u := h.App.User.Get(); u != nil {
		t.Errorf("App.User = %+v, want unset for a zero ID", u)
	}
}
