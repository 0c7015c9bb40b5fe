package ws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

var (
	ErrClosed     = errors.New("ws: connection closed")
	ErrInvalidURL = errors.New("ws: invalid url")
)

const (
	stateOpen int32 = iota
	stateClosing
	stateClosed
)

// Conn is a client WebSocket connection.
type Conn struct {
	url     string
	cfg     Config
	ws      *websocket.Conn
	state   atomic.Int32
	writeMu sync.Mutex
	done    chan struct{}
}

// Dial connects to url, retrying with backoff up to cfg.MaxConnectAttempts.
func Dial(ctx context.Context, url string, cfg Config) (*Conn, error) {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	attempts := cfg.MaxConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}
	tlsCfg, err := cfg.TLS.clientConfig()
	if err != nil {
		return nil, err
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.HandshakeTimeout,
		TLSClientConfig:  tlsCfg,
	}
	jitter := cfg.Jitter
	if jitter == nil {
		jitter = globalJitter{}
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			cfg.Logger.Warn().
				Err(lastErr).
				Str("url", url).
				Int("attempt", attempt).
				Msg("dial retry")
			if err := cfg.Backoff.wait(ctx, attempt-1, jitter); err != nil {
				return nil, err
			}
		}
		wsConn, _, err := dialer.DialContext(ctx, url, nil)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		c := newConn(url, wsConn, cfg)
		cfg.Logger.Info().Str("url", url).Int("attempt", attempt).Msg("connected")
		return c, nil
	}
	return nil, fmt.Errorf("ws: dial %s failed after %d attempts: %w", url, attempts, lastErr)
}

func newConn(url string, wsConn *websocket.Conn, cfg Config) *Conn {
	c := &Conn{
		url:  url,
		cfg:  cfg,
		ws:   wsConn,
		done: make(chan struct{}),
	}
	if cfg.ReadLimit > 0 {
		wsConn.SetReadLimit(cfg.ReadLimit)
	}
	go c.readLoop()
	return c
}

func (c *Conn) URL() string { return c.url }

func (c *Conn) IsClosing() bool { return c.state.Load() == stateClosing }

func (c *Conn) IsClosed() bool { return c.state.Load() == stateClosed }

// Done is closed once the read side of the connection has ended.
func (c *Conn) Done() <-chan struct{} { return c.done }

func (c *Conn) SendText(text string) error {
	return c.write(websocket.TextMessage, []byte(text))
}

func (c *Conn) SendBinary(data []byte) error {
	return c.write(websocket.BinaryMessage, data)
}

func (c *Conn) write(messageType int, data []byte) error {
	if c.state.Load() != stateOpen {
		return ErrClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.cfg.WriteTimeout > 0 {
		if err := c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	return c.ws.WriteMessage(messageType, data)
}

// Close sends a close frame, waits briefly for the peer, and releases the socket.
func (c *Conn) Close() error {
	if !c.state.CompareAndSwap(stateOpen, stateClosing) {
		<-c.done
		c.state.Store(stateClosed)
		_ = c.ws.Close()
		return nil
	}
	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.cfg.CloseTimeout))
	c.writeMu.Unlock()
	if err == nil {
		select {
		case <-c.done:
		case <-time.After(c.cfg.CloseTimeout):
		}
	}
	closeErr := c.ws.Close()
	<-c.done
	c.state.Store(stateClosed)
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return err
	}
	if closeErr != nil && !isClosedErr(closeErr) {
		return closeErr
	}
	return nil
}

func (c *Conn) readLoop() {
	defer close(c.done)
	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.cfg.Logger.Warn().Err(err).Str("url", c.url).Msg("connection lost")
			}
			c.state.CompareAndSwap(stateOpen, stateClosed)
			return
		}
		if c.cfg.OnMessage != nil {
			c.cfg.OnMessage(Message{Binary: messageType == websocket.BinaryMessage, Data: data})
		}
	}
}

func isClosedErr(err error) bool {
	return strings.Contains(err.Error(), "use of closed network connection")
}
