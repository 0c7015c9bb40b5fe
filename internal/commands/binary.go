package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/danmuck/wsterm/internal/observability"
)

const modeBinary = "binary"

// Binary composes a [...] template and transmits it as a binary message.
type Binary struct {
	host *Host
}

func NewBinary(host *Host) *Binary {
	return &Binary{host: host}
}

func (b *Binary) Names() []string {
	return []string{"binary", "b"}
}

func (b *Binary) Usage() []string {
	return []string{
		"/binary [components...]",
		"/b [components...]",
	}
}

func (b *Binary) Examples() []string {
	return []string{
		`/binary Hello\ world!`,
		"/binary [random(16)]",
		"/binary [text]",
		"/binary [bin]",
		`/binary \["JSON","is","cool"\]`,
		"/binary [range(0,0xff)]",
		"/binary [hex(1234567890abcdef)]",
		"/binary [hex(52)] [random(1)] lol",
		`/b Available\ now\ with\ ~71.43%\ less\ typing!`,
	}
}

func (b *Binary) Info() string {
	return "send binary data"
}

func (b *Binary) Run(param string) error {
	data, err := b.host.snapshotComposer().Binary(param)
	observability.RecordCompose(modeBinary, len(data), err)
	if err != nil {
		return fmt.Errorf("binary: %w", err)
	}

	conn, ok := b.host.openConnection()
	if !ok {
		return &NoConnectionError{Payload: DescribeBinary(data)}
	}
	b.host.logger.Info().
		Str("mode", modeBinary).
		Str("sent", DescribeBinary(data)).
		Msg("sent")
	b.host.logger.Debug().Msg("\n" + hex.Dump(data))
	err = conn.SendBinary(data)
	observability.RecordSend(modeBinary, err)
	if err != nil {
		return fmt.Errorf("binary: %w", err)
	}
	return nil
}

// DescribeBinary renders the short form a binary payload is reported as.
func DescribeBinary(data []byte) string {
	return fmt.Sprintf("<%dB of data>", len(data))
}
