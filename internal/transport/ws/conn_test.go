package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danmuck/wsterm/internal/testutil/testlog"
)

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if string(data) == "bye" {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func testConfig(received chan Message) Config {
	cfg := DefaultConfig()
	cfg.MaxConnectAttempts = 2
	cfg.Backoff = BackoffConfig{InitialDelay: 10 * time.Millisecond, Multiplier: 2}
	cfg.OnMessage = func(m Message) { received <- m }
	return cfg
}

func TestConnSendTextAndBinaryEcho(t *testing.T) {
	testlog.Start(t)
	srv := newEchoServer(t)
	received := make(chan Message, 4)

	conn, err := Dial(context.Background(), wsURL(srv), testConfig(received))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if conn.IsClosing() || conn.IsClosed() {
		t.Fatalf("fresh connection should be open")
	}
	if err := conn.SendText("hello"); err != nil {
		t.Fatalf("send text: %v", err)
	}
	if err := conn.SendBinary([]byte{0x52, 0x00}); err != nil {
		t.Fatalf("send binary: %v", err)
	}

	for i, want := range []Message{{Binary: false, Data: []byte("hello")}, {Binary: true, Data: []byte{0x52, 0x00}}} {
		select {
		case got := <-received:
			if got.Binary != want.Binary || string(got.Data) != string(want.Data) {
				t.Fatalf("message %d mismatch: got=%+v want=%+v", i, got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for echo %d", i)
		}
	}
}

func TestConnCloseTransitionsState(t *testing.T) {
	testlog.Start(t)
	srv := newEchoServer(t)
	received := make(chan Message, 1)

	conn, err := Dial(context.Background(), wsURL(srv), testConfig(received))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !conn.IsClosed() {
		t.Fatalf("expected closed state after Close")
	}
	if err := conn.SendText("late"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
}

func TestConnPeerCloseMarksClosed(t *testing.T) {
	testlog.Start(t)
	srv := newEchoServer(t)
	received := make(chan Message, 1)

	conn, err := Dial(context.Background(), wsURL(srv), testConfig(received))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if err := conn.SendText("bye"); err != nil {
		t.Fatalf("send: %v", err)
	}
	select {
	case <-conn.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for peer close")
	}
	if !conn.IsClosed() {
		t.Fatalf("expected closed state after peer close")
	}
}

func TestDialFailsAfterAttempts(t *testing.T) {
	testlog.Start(t)
	srv := newEchoServer(t)
	url := wsURL(srv)
	srv.Close()

	_, err := Dial(context.Background(), url, testConfig(make(chan Message)))
	if err == nil || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("expected dial failure after 2 attempts, got %v", err)
	}

	if _, err := Dial(context.Background(), "http://example.invalid", DefaultConfig()); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}
