package ws

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BackoffConfig defines dial retry backoff behavior.
type BackoffConfig struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	Jitter       bool
}

// Message is one frame received from the peer.
type Message struct {
	Binary bool
	Data   []byte
}

// Config defines connection timeouts and callbacks.
type Config struct {
	HandshakeTimeout   time.Duration
	WriteTimeout       time.Duration
	CloseTimeout       time.Duration
	MaxConnectAttempts int
	ReadLimit          int64
	Backoff            BackoffConfig
	TLS                TLSConfig
	Jitter             Jitter
	OnMessage          func(Message)
	Logger             zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		HandshakeTimeout:   5 * time.Second,
		WriteTimeout:       15 * time.Second,
		CloseTimeout:       2 * time.Second,
		MaxConnectAttempts: 3,
		ReadLimit:          8 * 1024 * 1024,
		Backoff: BackoffConfig{
			InitialDelay: 250 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     5 * time.Second,
			Jitter:       true,
		},
		Logger: log.Logger,
	}
}
