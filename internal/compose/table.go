package compose

import (
	"fmt"
	"sort"
	"strings"
)

// Func evaluates one instruction call to a text or byte result.
type Func[T any] func(env Env, args []string) (T, error)

// Table maps instruction names to their evaluators.
type Table[T any] struct {
	items map[string]Func[T]
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{items: make(map[string]Func[T])}
}

// Register adds one instruction. Names are unique per table.
func (t *Table[T]) Register(name string, fn Func[T]) error {
	if fn == nil {
		return ErrInstructionNil
	}
	if strings.TrimSpace(name) != name || name == "" {
		return fmt.Errorf("%w: %q", ErrInvalidInstructionName, name)
	}
	if _, ok := t.items[name]; ok {
		return fmt.Errorf("%w: %s", ErrInstructionExists, name)
	}
	t.items[name] = fn
	return nil
}

func (t *Table[T]) Resolve(name string) (Func[T], bool) {
	fn, ok := t.items[name]
	return fn, ok
}

// Names returns registered instruction names in sorted order.
func (t *Table[T]) Names() []string {
	names := make([]string, 0, len(t.items))
	for name := range t.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegister[T any](t *Table[T], name string, fn Func[T]) {
	if err := t.Register(name, fn); err != nil {
		panic(err)
	}
}
