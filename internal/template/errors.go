package template

import (
	"errors"
	"fmt"
)

var ErrInvalidSyntax = errors.New("template: invalid syntax")

// SyntaxError locates the first structural problem in a raw template.
type SyntaxError struct {
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrInvalidSyntax, e.Offset, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrInvalidSyntax
}

func syntaxErr(offset int, reason string) error {
	return &SyntaxError{Offset: offset, Reason: reason}
}
