package commands

import (
	"fmt"
	"sort"
	"strings"
)

// Registry resolves command names, including aliases, to commands.
type Registry struct {
	items map[string]Command
	order []Command
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Command)}
}

// Register adds cmd under every name it reports.
func (r *Registry) Register(cmd Command) error {
	if cmd == nil {
		return ErrCommandNil
	}
	names := cmd.Names()
	for _, name := range names {
		if _, ok := r.items[name]; ok {
			return fmt.Errorf("%w: %q", ErrCommandExists, name)
		}
	}
	for _, name := range names {
		r.items[name] = cmd
	}
	r.order = append(r.order, cmd)
	return nil
}

func (r *Registry) Resolve(name string) (Command, bool) {
	cmd, ok := r.items[name]
	return cmd, ok
}

// Commands returns registered commands ordered by primary name.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.order))
	copy(out, r.order)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Names()[0] < out[j].Names()[0]
	})
	return out
}

// SplitLine separates an input line into command name and parameter string.
// Lines without a leading slash, and lines starting with "//", address the
// empty-named command; "//x" carries the parameter "/x".
func SplitLine(line string) (string, string) {
	if !strings.HasPrefix(line, "/") {
		return "", line
	}
	if strings.HasPrefix(line, "//") {
		return "", line[1:]
	}
	rest := line[1:]
	name, param, _ := strings.Cut(rest, " ")
	return name, param
}

// Dispatch runs the command a line addresses.
func (r *Registry) Dispatch(line string) error {
	name, param := SplitLine(line)
	cmd, ok := r.Resolve(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd.Run(param)
}
