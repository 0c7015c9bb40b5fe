package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/danmuck/wsterm/internal/observability"
)

const metricsShutdownTimeout = 2 * time.Second

// startMetrics binds addr and serves /metrics until the returned stop is called.
func startMetrics(addr string, logger zerolog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	stop := serveMetrics(ln, logger)
	return stop, nil
}

func serveMetrics(ln net.Listener, logger zerolog.Logger) func() {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Handler:           observability.NewRouter(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	addr := ln.Addr().String()
	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Str("addr", addr).Msg("metrics shutdown")
		}
		<-done
	}
}
