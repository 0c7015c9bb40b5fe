package template

import (
	"fmt"
	"strings"
)

// DefaultInstruction is the instruction that evaluates literal particles.
const DefaultInstruction = "default"

type Kind uint8

const (
	KindLiteral Kind = iota + 1
	KindInstruction
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindInstruction:
		return "instruction"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Particle is one literal run or one instruction call of a parsed template.
type Particle struct {
	Kind Kind
	Text string
	Name string
	Args []string
}

func LiteralParticle(text string) Particle {
	return Particle{Kind: KindLiteral, Text: text}
}

func InstructionParticle(name string, args ...string) Particle {
	if args == nil {
		args = []string{}
	}
	return Particle{Kind: KindInstruction, Name: name, Args: args}
}

// Call returns the instruction name and arguments a particle evaluates with.
// Literals go through DefaultInstruction with their text as the only argument.
func (p Particle) Call() (string, []string) {
	if p.Kind == KindLiteral {
		return DefaultInstruction, []string{p.Text}
	}
	return p.Name, p.Args
}

func (p Particle) String() string {
	if p.Kind == KindLiteral {
		return fmt.Sprintf("literal(%q)", p.Text)
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(p.Args, ","))
}

// Syntax selects the instruction delimiters of one evaluation mode.
type Syntax struct {
	Name  string
	Open  string
	Close rune
}

var (
	TextSyntax   = Syntax{Name: "text", Open: "${", Close: '}'}
	BinarySyntax = Syntax{Name: "binary", Open: "[", Close: ']'}
)
