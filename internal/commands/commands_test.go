package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/wsterm/internal/compose"
	"github.com/danmuck/wsterm/internal/template"
	"github.com/danmuck/wsterm/internal/testutil/testlog"
	"github.com/danmuck/wsterm/internal/vars"
	"github.com/rs/zerolog"
)

type fakeConn struct {
	closing bool
	closed  bool
	texts   []string
	bins    [][]byte
	err     error
}

func (c *fakeConn) IsClosing() bool { return c.closing }
func (c *fakeConn) IsClosed() bool { return c.closed }

func (c *fakeConn) SendText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

func (c *fakeConn) SendBinary(data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.bins = append(c.bins, data)
	return nil
}

func newTestRegistry(t *testing.T) (*Registry, *Host, *bytes.Buffer) {
	t.Helper()
	texts := vars.NewTexts()
	bins := vars.NewBins()
	composer := compose.New(compose.Config{
		Clock:  func() time.Time { return time.Unix(42, 0) },
		Limits: compose.DefaultLimits(),
	})
	host := NewHost(composer, texts, bins, zerolog.Nop())
	var help bytes.Buffer
	reg, err := NewDefaultRegistry(host, &help)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg, host, &help
}

func TestSplitLine(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		line, name, param string
	}{
		{line: "/send Hello world!", name: "send", param: "Hello world!"},
		{line: "/s", name: "s", param: ""},
		{line: "/b [hex(52)] [random(1)] lol", name: "b", param: "[hex(52)] [random(1)] lol"},
		{line: "plain text", name: "", param: "plain text"},
		{line: "//not a command", name: "", param: "/not a command"},
	}
	for _, tc := range cases {
		name, param := SplitLine(tc.line)
		if name != tc.name || param != tc.param {
			t.Fatalf("SplitLine(%q) = (%q,%q), want (%q,%q)", tc.line, name, param, tc.name, tc.param)
		}
	}
}

func TestDispatchSendText(t *testing.T) {
	testlog.Start(t)
	reg, host, _ := newTestRegistry(t)
	conn := &fakeConn{}
	host.SetConnection(conn)

	for _, line := range []string{"/send From a to z: ${range(97,122)}", "/s ${time()}", "plain"} {
		if err := reg.Dispatch(line); err != nil {
			t.Fatalf("dispatch %q: %v", line, err)
		}
	}
	want := []string{"From a to z: abcdefghijklmnopqrstuvwxyz", "42", "plain"}
	if strings.Join(conn.texts, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected sends: %q", conn.texts)
	}
}

func TestDispatchBinary(t *testing.T) {
	testlog.Start(t)
	reg, host, _ := newTestRegistry(t)
	conn := &fakeConn{}
	host.SetConnection(conn)
	host.bins.Put(vars.DefaultName, []byte{0xca, 0xfe})

	if err := reg.Dispatch(`/binary Hello\ world!`); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := reg.Dispatch("/b [bin][nope]"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(conn.bins) != 2 {
		t.Fatalf("expected 2 binary sends, got %d", len(conn.bins))
	}
	if string(conn.bins[0]) != "Hello world!" {
		t.Fatalf("unexpected first payload: %q", conn.bins[0])
	}
	if !bytes.Equal(conn.bins[1], []byte{0xca, 0xfe}) {
		t.Fatalf("unexpected second payload: %x", conn.bins[1])
	}
}

func TestSendFailuresNeverTransmit(t *testing.T) {
	testlog.Start(t)
	reg, host, _ := newTestRegistry(t)
	conn := &fakeConn{}
	host.SetConnection(conn)

	err := reg.Dispatch("/send a ${nope()} b")
	var unknown *compose.UnknownInstructionError
	if !errors.As(err, &unknown) || unknown.Name != "nope" {
		t.Fatalf("expected unknown instruction nope, got %v", err)
	}
	if err := reg.Dispatch("/send ${random(1)"); !errors.Is(err, template.ErrInvalidSyntax) {
		t.Fatalf("expected ErrInvalidSyntax, got %v", err)
	}
	if err := reg.Dispatch("/binary [hex(52)"); !errors.Is(err, template.ErrInvalidSyntax) {
		t.Fatalf("expected ErrInvalidSyntax, got %v", err)
	}
	if len(conn.texts) != 0 || len(conn.bins) != 0 {
		t.Fatalf("failed compositions should not transmit: %v %v", conn.texts, conn.bins)
	}
}

func TestNoConnection(t *testing.T) {
	testlog.Start(t)
	reg, host, _ := newTestRegistry(t)

	err := reg.Dispatch("/send hi")
	var noConn *NoConnectionError
	if !errors.Is(err, ErrNoConnection) || !errors.As(err, &noConn) || noConn.Payload != "hi" {
		t.Fatalf("expected no connection for hi, got %v", err)
	}

	for _, conn := range []*fakeConn{{closing: true}, {closed: true}} {
		host.SetConnection(conn)
		err = reg.Dispatch("/binary [range(1,3)]")
		if !errors.As(err, &noConn) || noConn.Payload != "<3B of data>" {
			t.Fatalf("expected no connection for binary payload, got %v", err)
		}
		if len(conn.bins) != 0 {
			t.Fatalf("closing or closed connection should not be written")
		}
	}
}

func TestSendWrapsTransportError(t *testing.T) {
	testlog.Start(t)
	reg, host, _ := newTestRegistry(t)
	boom := errors.New("boom")
	host.SetConnection(&fakeConn{err: boom})

	if err := reg.Dispatch("/s x"); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestUnknownCommandAndHelp(t *testing.T) {
	testlog.Start(t)
	reg, _, help := newTestRegistry(t)

	if err := reg.Dispatch("/connect ws://x"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if err := reg.Dispatch("/help"); err != nil {
		t.Fatalf("help: %v", err)
	}
	out := help.String()
	for _, name := range []string{"/binary", "/help", "/send"} {
		if !strings.Contains(out, name) {
			t.Fatalf("help listing missing %s: %q", name, out)
		}
	}
	help.Reset()
	if err := reg.Dispatch("/help b"); err != nil {
		t.Fatalf("help b: %v", err)
	}
	if !strings.Contains(help.String(), "[hex(52)] [random(1)] lol") {
		t.Fatalf("help b should list binary examples: %q", help.String())
	}
}

func TestRegisterRejectsDuplicateNames(t *testing.T) {
	testlog.Start(t)
	reg, host, _ := newTestRegistry(t)
	if err := reg.Register(NewSend(host)); !errors.Is(err, ErrCommandExists) {
		t.Fatalf("expected ErrCommandExists, got %v", err)
	}
	if err := reg.Register(nil); !errors.Is(err, ErrCommandNil) {
		t.Fatalf("expected ErrCommandNil, got %v", err)
	}
}

func TestBuiltinExamplesCompose(t *testing.T) {
	testlog.Start(t)
	reg, host, _ := newTestRegistry(t)
	conn := &fakeConn{}
	host.SetConnection(conn)

	for _, cmd := range reg.Commands() {
		for _, example := range cmd.Examples() {
			if err := reg.Dispatch(example); err != nil {
				t.Fatalf("example %q: %v", example, err)
			}
		}
	}
	if err := reg.Dispatch(`/binary \["JSON","is","cool"]`); !errors.Is(err, template.ErrInvalidSyntax) {
		t.Fatalf("unescaped closing bracket should be rejected, got %v", err)
	}
	if err := reg.Dispatch(`/binary \["JSON","is","cool"\]`); err != nil {
		t.Fatalf("escaped form: %v", err)
	}
	if got := string(conn.bins[len(conn.bins)-1]); got != `["JSON","is","cool"]` {
		t.Fatalf("unexpected payload %q", got)
	}
}
