package commands

import (
	"fmt"
	"io"
	"strings"
)

// Help lists registered commands, or the usage and examples of one.
type Help struct {
	registry *Registry
	out      io.Writer
}

func NewHelp(registry *Registry, out io.Writer) *Help {
	return &Help{registry: registry, out: out}
}

func (h *Help) Names() []string { return []string{"help", "h"} }
func (h *Help) Usage() []string { return []string{"/help", "/help [command]"} }
func (h *Help) Examples() []string { return []string{"/help", "/help binary"} }
func (h *Help) Info() string { return "list commands or show command usage" }

func (h *Help) Run(param string) error {
	name := strings.TrimSpace(param)
	if name == "" {
		for _, cmd := range h.registry.Commands() {
			fmt.Fprintf(h.out, "  /%-10s %s\n", cmd.Names()[0], cmd.Info())
		}
		return nil
	}
	cmd, ok := h.registry.Resolve(strings.TrimPrefix(name, "/"))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	fmt.Fprintf(h.out, "%s\n", cmd.Info())
	fmt.Fprintln(h.out, "usage:")
	for _, u := range cmd.Usage() {
		fmt.Fprintf(h.out, "  %s\n", u)
	}
	fmt.Fprintln(h.out, "examples:")
	for _, ex := range cmd.Examples() {
		fmt.Fprintf(h.out, "  %s\n", ex)
	}
	return nil
}

// NewDefaultRegistry registers send, binary and help against host.
func NewDefaultRegistry(host *Host, helpOut io.Writer) (*Registry, error) {
	reg := NewRegistry()
	for _, cmd := range []Command{NewSend(host), NewBinary(host), NewHelp(reg, helpOut)} {
		if err := reg.Register(cmd); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
