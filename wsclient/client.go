package wsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

const (
	DefaultOpenTimeout  = 5 * time.Second
	DefaultReplyTimeout = 10 * time.Second

	writeWait  = 10 * time.Second
	maxMsgSize = 1 << 20
	sendBuffer = 256
)

// ErrBufferFull is returned when the outbound queue is saturated.
var ErrBufferFull = errors.New("wsclient: send buffer full")

// Status is the connection state.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusOpen   Status = "open"
	StatusError  Status = "error"
	StatusClosed Status = "closed"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithOpenTimeout bounds how long Initialize waits for the connection.
func WithOpenTimeout(d time.Duration) Option {
	return func(c *Client) { c.openTimeout = d }
}

// WithReplyTimeout bounds how long Request waits for a reply.
func WithReplyTimeout(d time.Duration) Option {
	return func(c *Client) { c.replyTimeout = d }
}

// WithDialOptions passes options through to websocket.Dial.
func WithDialOptions(o *websocket.DialOptions) Option {
	return func(c *Client) { c.dialOpts = o }
}

// WithIDGenerator replaces the correlation id source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// Client is a duplex board channel. Every outbound frame carries a fresh
// correlation id; replies are routed back to the request that produced them
// and server events fan out to every OnEvent subscriber.
//
// Reply callbacks and event/status listeners run on the client's read
// goroutine. Consumers that touch single-threaded state must hand the work
// to their own loop. A listener may call Close; it then returns without
// waiting for the read goroutine.
type Client struct {
	url          string
	logger       *slog.Logger
	openTimeout  time.Duration
	replyTimeout time.Duration
	dialOpts     *websocket.DialOptions
	newID        func() string

	dialMu    sync.Mutex
	closeOnce sync.Once
	wg        sync.WaitGroup

	// inListener counts read-goroutine listener calls in progress.
	inListener atomic.Int32

	mu      sync.Mutex
	status  Status
	closing bool
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	cancel  context.CancelFunc
	pending map[string]func(*Reply)

	events   listeners[Event]
	statuses listeners[Status]
}

// New creates an idle client for url. No connection is made until
// Initialize.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:          url,
		openTimeout:  DefaultOpenTimeout,
		replyTimeout: DefaultReplyTimeout,
		newID:        uuid.NewString,
		status:       StatusIdle,
		pending:      make(map[string]func(*Reply)),
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "wsclient")
	return c
}

// Status returns the current connection state.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	if c.status == s {
		c.mu.Unlock()
		return
	}
	prev := c.status
	c.status = s
	c.mu.Unlock()
	c.logger.Debug("status changed", "from", prev, "to", s)
	c.statuses.emit(s)
}

// OnStatus subscribes fn to status transitions.
func (c *Client) OnStatus(fn func(Status)) (unsubscribe func()) {
	return c.statuses.add(fn)
}

// OnEvent subscribes fn to server events.
func (c *Client) OnEvent(fn func(Event)) (unsubscribe func()) {
	return c.events.add(fn)
}

// Initialize opens the connection, racing the dial against the open
// timeout. It returns nil at once when already open and ErrClosed after
// Close.
func (c *Client) Initialize(ctx context.Context) error {
	c.dialMu.Lock()
	defer c.dialMu.Unlock()

	switch c.Status() {
	case StatusOpen:
		return nil
	case StatusClosed:
		return ErrClosed
	}

	dctx, cancel := context.WithTimeout(ctx, c.openTimeout)
	defer cancel()
	conn, _, err := websocket.Dial(dctx, c.url, c.dialOpts)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(dctx.Err(), context.DeadlineExceeded) {
			c.logger.Warn("connection timeout", "url", c.url, "timeout", c.openTimeout)
			return ErrOpenTimeout
		}
		c.setStatus(StatusError)
		return fmt.Errorf("wsclient: dial %s: %w", c.url, err)
	}
	conn.SetReadLimit(maxMsgSize)

	runCtx, runCancel := context.WithCancel(context.Background())
	send := make(chan []byte, sendBuffer)
	c.mu.Lock()
	c.conn = conn
	c.send = send
	c.done = make(chan struct{})
	c.cancel = runCancel
	c.mu.Unlock()

	c.setStatus(StatusOpen)
	c.logger.Info("connected", "url", c.url)

	c.wg.Add(2)
	go c.readPump(runCtx, conn)
	go c.writePump(runCtx, conn, send)
	return nil
}

func (c *Client) readPump(ctx context.Context, conn *websocket.Conn) {
	defer func() {
		c.shutdown()
		c.listening(func() { c.setStatus(StatusClosed) })
		c.wg.Done()
	}()

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			code := websocket.CloseStatus(err)
			if !c.isClosing() && code != websocket.StatusNormalClosure && code != websocket.StatusGoingAway {
				c.logger.Debug("read error", "error", err)
				c.listening(func() { c.setStatus(StatusError) })
			}
			return
		}
		if typ != websocket.MessageBinary {
			c.logger.Debug("dropping non-binary frame")
			continue
		}
		c.listening(func() { c.handleFrame(data) })
	}
}

// listening runs fn, which may call listeners, on the read goroutine.
func (c *Client) listening(fn func()) {
	c.inListener.Add(1)
	defer c.inListener.Add(-1)
	fn()
}

func (c *Client) writePump(ctx context.Context, conn *websocket.Conn, send <-chan []byte) {
	defer c.wg.Done()
	for {
		select {
		case msg := <-send:
			wctx, cancel := context.WithTimeout(ctx, writeWait)
			err := conn.Write(wctx, websocket.MessageBinary, msg)
			cancel()
			if err != nil {
				if ctx.Err() == nil {
					c.logger.Debug("write error", "error", err)
					conn.Close(websocket.StatusInternalError, "write failed")
				}
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) handleFrame(data []byte) {
	raw, err := decodeFrame(data)
	if err != nil {
		c.logger.Warn("invalid frame", "error", err)
		return
	}
	var in inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.logger.Warn("invalid message", "error", err)
		return
	}

	switch {
	case in.ReplyTo != "":
		c.mu.Lock()
		cb, ok := c.pending[in.ReplyTo]
		delete(c.pending, in.ReplyTo)
		c.mu.Unlock()
		if !ok {
			c.logger.Debug("dropping unmatched reply", "reply_to", in.ReplyTo)
			return
		}
		r, err := parseReply(raw)
		if err != nil {
			c.logger.Warn("invalid reply", "reply_to", in.ReplyTo, "error", err)
			return
		}
		cb(r)
	case in.Event != "":
		c.events.emit(Event{Name: in.Event, Data: in.Data})
	}
}

// Send queues a frame {type, data, id} and returns its correlation id. A
// non-nil cb receives the matching reply, if one ever arrives.
func (c *Client) Send(typ string, data any, cb func(*Reply)) (string, error) {
	id := c.newID()
	frame, err := encodeFrame(outbound{Type: typ, Data: data, ID: id})
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	switch c.status {
	case StatusOpen:
	case StatusClosed:
		c.mu.Unlock()
		return "", ErrClosed
	default:
		c.mu.Unlock()
		return "", ErrNotOpen
	}
	send := c.send
	if cb != nil {
		c.pending[id] = cb
	}
	c.mu.Unlock()

	select {
	case send <- frame:
		return id, nil
	default:
		c.forget(id)
		c.logger.Warn("send buffer full, dropping message", "type", typ)
		return "", ErrBufferFull
	}
}

// Request sends a frame and waits for its reply. It fails with
// ErrReplyTimeout when no reply arrives within the reply timeout; a reply
// arriving later is dropped.
func (c *Client) Request(ctx context.Context, typ string, data any) (*Reply, error) {
	ch := make(chan *Reply, 1)
	id, err := c.Send(typ, data, func(r *Reply) { ch <- r })
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	timer := time.NewTimer(c.replyTimeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		return r, nil
	case <-timer.C:
		c.forget(id)
		c.logger.Warn("reply timeout", "type", typ, "id", id)
		return nil, ErrReplyTimeout
	case <-ctx.Done():
		c.forget(id)
		return nil, ctx.Err()
	case <-done:
		return nil, ErrClosed
	}
}

// Join enters a board. A rejected join returns a *ServerError.
func (c *Client) Join(ctx context.Context, boardSlug, authToken string) (*JoinResponse, error) {
	r, err := c.Request(ctx, CmdJoin, JoinRequest{BoardSlugID: boardSlug, UserAuthToken: authToken})
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", boardSlug, err)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("join %s: %w", boardSlug, err)
	}
	var jr JoinResponse
	if err := r.Decode(CmdJoin, &jr); err != nil {
		return nil, err
	}
	return &jr, nil
}

// SendCursor publishes the local pointer position. No reply is expected.
func (c *Client) SendCursor(x, y float64) error {
	_, err := c.Send(CmdCursor, CursorPos{X: x, Y: y}, nil)
	return err
}

// Pending returns the number of requests awaiting a reply.
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Client) isClosing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closing
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		cancel, done := c.cancel, c.done
		clear(c.pending)
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		if done != nil {
			close(done)
		}
	})
}

// Close shuts the connection down and forgets pending callbacks. The client
// cannot be reopened.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.closing = true
	c.mu.Unlock()

	if conn != nil {
		if err := conn.Close(websocket.StatusNormalClosure, ""); err != nil {
			c.logger.Debug("close handshake", "error", err)
		}
	}
	c.shutdown()
	if c.inListener.Load() == 0 {
		c.wg.Wait()
	}
	c.setStatus(StatusClosed)
	return nil
}

// listeners is a goroutine-safe ordered subscriber list.
type listeners[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscriber[T]{id: id, fn: fn})
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners[T]) emit(v T) {
	l.mu.Lock()
	subs := append([]subscriber[T](nil), l.subs...)
	l.mu.Unlock()
	for _, s := range subs {
		s.fn(v)
	}
}
