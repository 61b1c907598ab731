package whiteboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phanxgames/whiteboard/wsclient"
)

// Poster runs fn on the engine's update loop. It must be safe to call from
// any goroutine.
type Poster interface {
	Post(fn func())
}

// Session connects the network channel to application state and the cursor
// overlay. Network callbacks arrive on the client's read goroutine; Session
// hands every state change to the engine through Post.
type Session struct {
	client  *wsclient.Client
	app     *AppState
	overlay *CursorOverlay
	poster  Poster
	logger  *slog.Logger

	unsubscribe []func()
}

// NewSession subscribes to client's events.
func NewSession(client *wsclient.Client, app *AppState, overlay *CursorOverlay, poster Poster, logger *slog.Logger) *Session {
	s := &Session{
		client:  client,
		app:     app,
		overlay: overlay,
		poster:  poster,
		logger:  componentLogger(logger, "session"),
	}
	s.unsubscribe = append(s.unsubscribe,
		client.OnEvent(s.onEvent),
		client.OnStatus(func(st wsclient.Status) {
			s.logger.Info("connection status", "status", st)
		}),
	)
	return s
}

// NewSession records me as the local user, unless its ID is zero, and
// builds a Session feeding the engine's state and overlay. Call it on the
// update goroutine, or before Run, so the local user is known before any
// reply is applied.
func (e *Engine) NewSession(client *wsclient.Client, me wsclient.User) *Session {
	if me.ID != 0 {
		e.App.User.Set(&me)
	}
	return NewSession(client, e.App, e.overlay, e, e.opts.Logger)
}

// Join opens the channel if needed, joins the board and seeds the roster
// and the overlay from the reply.
func (s *Session) Join(ctx context.Context, slug, token string) error {
	if err := s.client.Initialize(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	jr, err := s.client.Join(ctx, slug, token)
	if err != nil {
		return err
	}
	s.logger.Info("joined board", "board", slug, "online", len(jr.OnlineUsers))
	s.poster.Post(func() { s.applyJoin(jr) })
	return nil
}

func (s *Session) applyJoin(jr *wsclient.JoinResponse) {
	users := make([]wsclient.User, 0, len(jr.OnlineUsers))
	for _, ou := range jr.OnlineUsers {
		users = append(users, ou.User)
		if ou.Cursor != nil && !s.isLocal(ou.User.ID) {
			s.overlay.HandleCursor(wsclient.Cursor{
				UserID:   ou.User.ID,
				UserName: ou.User.FullName,
				X:        ou.Cursor.X,
				Y:        ou.Cursor.Y,
			})
		}
	}
	s.app.Roster.Set(users)
}

func (s *Session) isLocal(id int64) bool {
	u := s.app.User.Get()
	return u != nil && u.ID == id
}

func (s *Session) onEvent(ev wsclient.Event) {
	switch ev.Name {
	case wsclient.EventUserJoined:
		u, err := ev.User()
		if err != nil {
			s.logger.Warn("bad event", "event", ev.Name, "error", err)
			return
		}
		s.poster.Post(func() { s.app.Roster.Add(u) })
	case wsclient.EventUserLeft:
		u, err := ev.User()
		if err != nil {
			s.logger.Warn("bad event", "event", ev.Name, "error", err)
			return
		}
		s.poster.Post(func() { s.app.Roster.Remove(u.ID) })
	case wsclient.EventCursor:
		c, err := ev.Cursor()
		if err != nil {
			s.logger.Warn("bad event", "event", ev.Name, "error", err)
			return
		}
		s.poster.Post(func() {
			if !s.isLocal(c.UserID) {
				s.overlay.HandleCursor(c)
			}
		})
	default:
		s.logger.Debug("unhandled event", "event", ev.Name)
	}
}

// Close unsubscribes from the client. It does not close the client.
func (s *Session) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}
