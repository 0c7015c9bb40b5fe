package compose

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownInstruction     = errors.New("compose: unknown instruction")
	ErrPayloadTooLarge        = errors.New("compose: payload too large")
	ErrInstructionExists      = errors.New("compose: instruction already registered")
	ErrInstructionNil         = errors.New("compose: instruction is nil")
	ErrInvalidInstructionName = errors.New("compose: invalid instruction name")
)

// UnknownInstructionError names the instruction a text template called.
type UnknownInstructionError struct {
	Name string
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownInstruction, e.Name)
}

func (e *UnknownInstructionError) Unwrap() error {
	return ErrUnknownInstruction
}

func tooLarge(what string, n int64, limit int) error {
	return fmt.Errorf("%w: %s requests %d units (limit %d)", ErrPayloadTooLarge, what, n, limit)
}
