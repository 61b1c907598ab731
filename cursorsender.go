package whiteboard

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultCursorThrottle is the minimum gap between two cursor sends.
const DefaultCursorThrottle = 300 * time.Millisecond

// CursorSink receives the local pointer position. *wsclient.Client
// implements it.
type CursorSink interface {
	SendCursor(x, y float64) error
}

// CursorSenderService shares the local pointer with collaborators. A move
// is sent at once if the last send is older than the throttle interval;
// otherwise it replaces any pending trailing send, which fires one interval
// later with the newest position.
type CursorSenderService struct {
	mouse    *MouseController
	sink     CursorSink
	interval time.Duration
	logger   *slog.Logger

	// now is swapped in tests.
	now func() time.Time

	mu       sync.Mutex
	lastSend time.Time
	trailing *time.Timer
	disposed bool
}

// NewCursorSenderService subscribes to mouse moves. A non-positive interval
// uses DefaultCursorThrottle.
func NewCursorSenderService(mouse *MouseController, sink CursorSink, interval time.Duration, logger *slog.Logger) *CursorSenderService {
	if interval <= 0 {
		interval = DefaultCursorThrottle
	}
	s := &CursorSenderService{
		mouse:    mouse,
		sink:     sink,
		interval: interval,
		logger:   componentLogger(logger, "cursorSender"),
		now:      time.Now,
	}
	mouse.OnContext(EventMouseMove, s, func(e MouseEvent) bool {
		s.onMouseMove(e.Pointer)
		return true
	})
	return s
}

func (s *CursorSenderService) onMouseMove(p Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	if s.trailing != nil {
		s.trailing.Stop()
		s.trailing = nil
	}
	now := s.now()
	if s.lastSend.IsZero() || now.After(s.lastSend.Add(s.interval)) {
		s.lastSend = now
		s.send(p)
		return
	}
	s.trailing = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.disposed {
			return
		}
		s.trailing = nil
		s.send(p)
	})
}

func (s *CursorSenderService) send(p Vec2) {
	if err := s.sink.SendCursor(p.X, p.Y); err != nil {
		s.logger.Debug("cursor not sent", "error", err)
	}
}

// Dispose unsubscribes and cancels a pending trailing send.
func (s *CursorSenderService) Dispose() {
	s.mouse.OffContext(EventMouseMove, s)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	if s.trailing != nil {
		s.trailing.Stop()
		s.trailing = nil
	}
}
