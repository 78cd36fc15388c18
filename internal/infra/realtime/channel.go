package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/errs"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/session"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	}
	return "disconnected"
}

type Handler func(Event)

// Subscription is the disposable handle returned by Subscribe. Holding the
// handle is the only way to have a registration, which keeps duplicate
// handler bugs out of the type system entirely.
type Subscription struct {
	ch    *Channel
	event string
	id    uint64
}

func (s *Subscription) Close() {
	if s == nil || s.ch == nil {
		return
	}
	s.ch.unsubscribe(s.event, s.id)
}

type registration struct {
	id      uint64
	handler Handler
}

// Channel is the single authenticated duplex socket to the backend. All
// events are dispatched from one goroutine in server-send order.
type Channel struct {
	cfg     config.SocketConfig
	session *session.Session
	logger  *slog.Logger

	mu          sync.Mutex
	writeMu     sync.Mutex // gorilla allows one writer per conn
	conn        *websocket.Conn
	handlers    map[string]registration
	onReconnect []func()
	nextID      uint64
	cancel      context.CancelFunc

	state atomic.Int32
}

func NewChannel(cfg config.SocketConfig, sess *session.Session, logger *slog.Logger) *Channel {
	return &Channel{
		cfg:      cfg,
		session:  sess,
		logger:   logger,
		handlers: make(map[string]registration),
	}
}

func (c *Channel) State() State {
	return State(c.state.Load())
}

// Subscribe registers handler for the named event and returns its handle.
// Re-subscribing to the same event replaces the previous registration; the
// stale handle's Close becomes a no-op.
func (c *Channel) Subscribe(event string, handler Handler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.handlers[event] = registration{id: c.nextID, handler: handler}
	return &Subscription{ch: c, event: event, id: c.nextID}
}

func (c *Channel) unsubscribe(event string, id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if reg, ok := c.handlers[event]; ok && reg.id == id {
		delete(c.handlers, event)
	}
}

// OnReconnect registers a hook run after every successful re-dial. The
// backend does not replay missed events, so subscribers use this to force a
// fresh snapshot fetch.
func (c *Channel) OnReconnect(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReconnect = append(c.onReconnect, fn)
}

// Connect dials the socket and starts the read loop. It returns once the
// initial handshake settles; reconnection afterwards is automatic with
// capped backoff and bounded attempts.
func (c *Channel) Connect(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		cancel()
		return errs.New("channel already connected")
	}
	c.cancel = cancel
	c.mu.Unlock()

	conn, err := c.dial(ctx)
	if err != nil {
		c.teardown()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.state.Store(int32(StateConnected))
	c.logger.Info("realtime channel connected")

	go c.readLoop(ctx, conn)
	return nil
}

func (c *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	token, err := c.session.Token()
	if err != nil {
		return nil, err
	}
	c.state.Store(int32(StateConnecting))

	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
	header := http.Header{"Authorization": {"Bearer " + token}}
	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, header)
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		return nil, errs.Mark(errs.Wrap(err, "dial realtime channel"), errs.ErrNetwork)
	}
	return conn, nil
}

func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("realtime read failed, reconnecting", "error", err)
			c.state.Store(int32(StateDisconnected))
			conn, err = c.reconnect(ctx)
			if err != nil {
				c.logger.Error("realtime reconnection exhausted", "error", err)
				return
			}
			continue
		}
		c.dispatch(ev)
	}
}

func (c *Channel) reconnect(ctx context.Context) (*websocket.Conn, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.ReconnectBaseDelay
	bo.MaxInterval = c.cfg.ReconnectMaxDelay

	var conn *websocket.Conn
	operation := func() error {
		var err error
		conn, err = c.dial(ctx)
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.cfg.ReconnectAttempts), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.conn = conn
	hooks := make([]func(), len(c.onReconnect))
	copy(hooks, c.onReconnect)
	c.mu.Unlock()
	c.state.Store(int32(StateConnected))
	c.logger.Info("realtime channel reconnected")

	// No replay on reconnect; hooks force the fresh snapshot instead.
	for _, fn := range hooks {
		fn()
	}
	return conn, nil
}

// dispatch runs the registered handler inline so that delivery order is
// exactly server-send order.
func (c *Channel) dispatch(ev Event) {
	c.mu.Lock()
	reg, ok := c.handlers[ev.Name]
	c.mu.Unlock()
	if !ok {
		c.logger.Debug("unhandled realtime event", "event", ev.Name)
		return
	}
	reg.handler(ev)
}

// Emit sends a named event to the backend.
func (c *Channel) Emit(event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "encode emit payload")
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil || c.State() != StateConnected {
		return errs.ErrChannelDisconnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteJSON(Event{Name: event, Payload: raw}); err != nil {
		return errs.Mark(errs.Wrap(err, "emit "+event), errs.ErrNetwork)
	}
	return nil
}

// Close disconnects and clears every handler registration. Logout path.
func (c *Channel) Close() {
	c.teardown()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.handlers = make(map[string]registration)
}

func (c *Channel) teardown() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.state.Store(int32(StateDisconnected))
}
