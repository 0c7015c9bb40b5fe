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
	"github.com/danmuck/wsterm/internal/testutil/tlstest"
)

func TestDialSecureWithCAFile(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	ca := tlstest.NewAuthority(t, dir, "wsterm-test-ca")

	upgrader := websocket.Upgrader{}
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.WriteMessage(mt, data)
	}))
	srv.TLS = ca.ServerTLS(t, dir)
	srv.StartTLS()
	t.Cleanup(srv.Close)

	received := make(chan Message, 1)
	cfg := testConfig(received)
	cfg.TLS = TLSConfig{CAFile: ca.CAFile()}
	url := "wss" + strings.TrimPrefix(srv.URL, "https")

	conn, err := Dial(context.Background(), url, cfg)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if err := conn.SendText("secure"); err != nil {
		t.Fatalf("send: %v", err)
	}
	select {
	case got := <-received:
		if string(got.Data) != "secure" {
			t.Fatalf("unexpected echo %q", got.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for echo")
	}
}

func TestTLSConfigRejectsPartialKeyPair(t *testing.T) {
	testlog.Start(t)
	_, err := Dial(context.Background(), "wss://127.0.0.1:1", Config{
		TLS: TLSConfig{CertFile: "client.crt"},
	})
	if !errors.Is(err, ErrTLSKeyPairIncomplete) {
		t.Fatalf("expected ErrTLSKeyPairIncomplete, got %v", err)
	}
}

func TestTLSConfigZeroUsesDefaults(t *testing.T) {
	testlog.Start(t)
	cfg, err := TLSConfig{}.clientConfig()
	if err != nil || cfg != nil {
		t.Fatalf("expected nil config for zero TLSConfig, got %v %v", cfg, err)
	}
}

func TestTLSConfigLoadsClientPair(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	ca := tlstest.NewAuthority(t, dir, "wsterm-test-ca")
	certPath, keyPath := ca.IssueClientCert(t, dir, "wsterm-client")

	cfg, err := TLSConfig{CAFile: ca.CAFile(), CertFile: certPath, KeyFile: keyPath, ServerName: "localhost"}.clientConfig()
	if err != nil {
		t.Fatalf("client config: %v", err)
	}
	if len(cfg.Certificates) != 1 || cfg.RootCAs == nil || cfg.ServerName != "localhost" {
		t.Fatalf("unexpected tls config: certs=%d roots=%v server=%q", len(cfg.Certificates), cfg.RootCAs != nil, cfg.ServerName)
	}
}
