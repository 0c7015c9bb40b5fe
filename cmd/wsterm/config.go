package main

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/wsterm/internal/compose"
	"github.com/danmuck/wsterm/internal/logging"
	"github.com/danmuck/wsterm/internal/transport/ws"
	"github.com/rs/zerolog"
)

type fileConfig struct {
	URL                string            `toml:"url"`
	LogLevel           string            `toml:"log_level"`
	ConnectTimeout     string            `toml:"connect_timeout"`
	HandshakeTimeout   string            `toml:"handshake_timeout"`
	WriteTimeout       string            `toml:"write_timeout"`
	MaxConnectAttempts int               `toml:"max_connect_attempts"`
	MaxPayloadBytes    int               `toml:"max_payload_bytes"`
	MetricsAddr        string            `toml:"metrics_addr"`
	Texts              map[string]string `toml:"texts"`
	Bins               map[string]string `toml:"bins"`
	TLS                tlsFileConfig     `toml:"tls"`
}

type tlsFileConfig struct {
	CAFile             string `toml:"ca_file"`
	CertFile           string `toml:"cert_file"`
	KeyFile            string `toml:"key_file"`
	ServerName         string `toml:"server_name"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
}

type appConfig struct {
	URL            string
	LogLevel       zerolog.Level
	ConnectTimeout time.Duration
	Conn           ws.Config
	Limits         compose.Limits
	MetricsAddr    string
	Texts          map[string]string
	Bins           map[string][]byte
}

func defaultAppConfig() appConfig {
	return appConfig{
		LogLevel:       zerolog.InfoLevel,
		ConnectTimeout: 10 * time.Second,
		Conn:           ws.DefaultConfig(),
		Limits:         compose.DefaultLimits(),
		Texts:          map[string]string{},
		Bins:           map[string][]byte{},
	}
}

func loadAppConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return appConfig{}, fmt.Errorf("load wsterm config: %w", err)
	}

	if meta.IsDefined("url") {
		cfg.URL = strings.TrimSpace(raw.URL)
	}

	if meta.IsDefined("log_level") {
		lvl, ok := logging.ParseLevel(raw.LogLevel)
		if !ok {
			return appConfig{}, fmt.Errorf("parse log_level: unknown level %q", raw.LogLevel)
		}
		cfg.LogLevel = lvl
	}

	if meta.IsDefined("connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ConnectTimeout))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse connect_timeout: %w", err)
		}
		cfg.ConnectTimeout = d
	}

	if meta.IsDefined("handshake_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.HandshakeTimeout))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse handshake_timeout: %w", err)
		}
		cfg.Conn.HandshakeTimeout = d
	}

	if meta.IsDefined("write_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.WriteTimeout))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse write_timeout: %w", err)
		}
		cfg.Conn.WriteTimeout = d
	}

	if meta.IsDefined("max_connect_attempts") {
		cfg.Conn.MaxConnectAttempts = raw.MaxConnectAttempts
	}

	if meta.IsDefined("max_payload_bytes") {
		cfg.Limits.MaxUnits = raw.MaxPayloadBytes
		cfg.Conn.ReadLimit = int64(raw.MaxPayloadBytes)
	}

	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	cfg.Conn.TLS = ws.TLSConfig{
		CAFile:             strings.TrimSpace(raw.TLS.CAFile),
		CertFile:           strings.TrimSpace(raw.TLS.CertFile),
		KeyFile:            strings.TrimSpace(raw.TLS.KeyFile),
		ServerName:         strings.TrimSpace(raw.TLS.ServerName),
		InsecureSkipVerify: raw.TLS.InsecureSkipVerify,
	}

	for name, value := range raw.Texts {
		cfg.Texts[name] = value
	}
	for name, value := range raw.Bins {
		b, err := hex.DecodeString(strings.TrimSpace(value))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse bins.%s: %w", name, err)
		}
		cfg.Bins[name] = b
	}

	return cfg, nil
}
