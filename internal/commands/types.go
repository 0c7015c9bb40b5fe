package commands

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danmuck/wsterm/internal/compose"
	"github.com/danmuck/wsterm/internal/vars"
	"github.com/rs/zerolog"
)

var (
	ErrNoConnection   = errors.New("commands: no connection")
	ErrUnknownCommand = errors.New("commands: unknown command")
	ErrCommandExists  = errors.New("commands: command already registered")
	ErrCommandNil     = errors.New("commands: command is nil")
)

// Connection is the transmission boundary commands send payloads through.
type Connection interface {
	IsClosing() bool
	IsClosed() bool
	SendText(text string) error
	SendBinary(data []byte) error
}

// Command is one operator command.
type Command interface {
	Names() []string
	Usage() []string
	Examples() []string
	Info() string
	Run(param string) error
}

// NoConnectionError reports a composed payload that could not be sent.
type NoConnectionError struct {
	Payload string
}

func (e *NoConnectionError) Error() string {
	return fmt.Sprintf("%s: cannot send: %s", ErrNoConnection, e.Payload)
}

func (e *NoConnectionError) Unwrap() error {
	return ErrNoConnection
}

// Host carries the shared state commands run against.
type Host struct {
	mu       sync.RWMutex
	conn     Connection
	texts    *vars.Store[string]
	bins     *vars.Store[[]byte]
	composer *compose.Composer
	logger   zerolog.Logger
}

func NewHost(composer *compose.Composer, texts *vars.Store[string], bins *vars.Store[[]byte], logger zerolog.Logger) *Host {
	if texts == nil {
		texts = vars.NewTexts()
	}
	if bins == nil {
		bins = vars.NewBins()
	}
	if composer == nil {
		cfg := compose.DefaultConfig()
		cfg.Logger = &logger
		composer = compose.New(cfg)
	}
	return &Host{
		texts:    texts,
		bins:     bins,
		composer: composer,
		logger:   logger,
	}
}

func (h *Host) SetConnection(conn Connection) {
	h.mu.Lock()
	h.conn = conn
	h.mu.Unlock()
}

func (h *Host) Connection() Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conn
}

// snapshotComposer binds the composer to point-in-time copies of the stores.
func (h *Host) snapshotComposer() *compose.Composer {
	return h.composer.WithStores(h.texts.Snapshot(), h.bins.Snapshot())
}

// openConnection returns the connection when it can accept a payload.
func (h *Host) openConnection() (Connection, bool) {
	conn := h.Connection()
	if conn == nil || conn.IsClosing() || conn.IsClosed() {
		return nil, false
	}
	return conn, true
}
