package main

import (
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/wsterm/internal/testutil/testlog"
)

func TestServeMetricsStopsOnShutdown(t *testing.T) {
	testlog.Start(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	stop := serveMetrics(ln, zerolog.Nop())

	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "go_goroutines") {
		t.Fatalf("unexpected metrics response: %d", resp.StatusCode)
	}

	stop()
	if _, err := http.Get("http://" + addr + "/metrics"); err == nil {
		t.Fatalf("listener should be closed after stop")
	}
}

func TestStartMetricsRejectsBadAddress(t *testing.T) {
	testlog.Start(t)
	if _, err := startMetrics("not-an-address", zerolog.Nop()); err == nil {
		t.Fatalf("expected listen error")
	}
}
