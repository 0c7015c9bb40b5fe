package commands

import (
	"fmt"

	"github.com/danmuck/wsterm/internal/observability"
)

const modeText = "text"

// Send composes a ${...} template and transmits it as a text message.
type Send struct {
	host *Host
}

func NewSend(host *Host) *Send {
	return &Send{host: host}
}

func (s *Send) Names() []string {
	return []string{"send", "s", ""}
}

func (s *Send) Usage() []string {
	return []string{
		"/send [template]",
		"/s [template]",
	}
}

func (s *Send) Examples() []string {
	return []string{
		"/send Hello world!",
		"/send rpc(${random(5)})",
		"/send ${text()}",
		`/send ["JSON","is","cool"]`,
		"/send ${time()}s since epoch",
		"/send From a to z: ${range(97,122)}",
		"/s Available now with 60% less typing!",
	}
}

func (s *Send) Info() string {
	return "send textual data"
}

func (s *Send) Run(param string) error {
	msg, err := s.host.snapshotComposer().Text(param)
	observability.RecordCompose(modeText, len(msg), err)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	conn, ok := s.host.openConnection()
	if !ok {
		return &NoConnectionError{Payload: msg}
	}
	s.host.logger.Info().Str("mode", modeText).Str("sent", msg).Msg("sent")
	err = conn.SendText(msg)
	observability.RecordSend(modeText, err)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}
