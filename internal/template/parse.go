package template

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const escapeRune = '\\'

type scanState uint8

const (
	stateLiteral scanState = iota
	stateCapture
)

// unit is one captured rune plus whether it was escaped.
type unit struct {
	r       rune
	escaped bool
}

type parser struct {
	raw       string
	syntax    Syntax
	state     scanState
	literal   strings.Builder
	capture   []unit
	captureAt int
	out       []Particle
}

// Parse scans raw into ordered particles using syntax's delimiters.
// Parsing is atomic: on error no particles are returned.
func Parse(raw string, syntax Syntax) ([]Particle, error) {
	p := &parser{raw: raw, syntax: syntax, out: make([]Particle, 0)}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.out, nil
}

func (p *parser) run() error {
	escaped := false
	escapeAt := 0
	i := 0
	for i < len(p.raw) {
		r, size := utf8.DecodeRuneInString(p.raw[i:])
		if escaped {
			p.accept(r, true)
			escaped = false
			i += size
			continue
		}
		if r == escapeRune {
			escaped = true
			escapeAt = i
			i += size
			continue
		}

		switch p.state {
		case stateLiteral:
			if strings.HasPrefix(p.raw[i:], p.syntax.Open) {
				p.flushLiteral()
				p.state = stateCapture
				p.captureAt = i
				p.capture = p.capture[:0]
				i += len(p.syntax.Open)
				continue
			}
			if r == p.syntax.Close {
				return syntaxErr(i, "unmatched closing delimiter")
			}
			p.literal.WriteRune(r)
		case stateCapture:
			if r == p.syntax.Close {
				particle, err := parseInstruction(p.capture, p.captureAt)
				if err != nil {
					return err
				}
				p.out = append(p.out, particle)
				p.state = stateLiteral
				i += size
				continue
			}
			if strings.HasPrefix(p.raw[i:], p.syntax.Open) {
				return syntaxErr(i, "nested opening delimiter")
			}
			p.capture = append(p.capture, unit{r: r})
		}
		i += size
	}

	if escaped {
		return syntaxErr(escapeAt, "dangling escape")
	}
	if p.state == stateCapture {
		return syntaxErr(p.captureAt, "unmatched opening delimiter")
	}
	p.flushLiteral()
	return nil
}

func (p *parser) accept(r rune, escaped bool) {
	if p.state == stateCapture {
		p.capture = append(p.capture, unit{r: r, escaped: escaped})
		return
	}
	p.literal.WriteRune(r)
}

func (p *parser) flushLiteral() {
	if p.literal.Len() == 0 {
		return
	}
	p.out = append(p.out, LiteralParticle(p.literal.String()))
	p.literal.Reset()
}

// parseInstruction splits captured text into name(arg,...).
func parseInstruction(units []unit, offset int) (Particle, error) {
	open := -1
	for i, u := range units {
		if u.escaped {
			continue
		}
		if u.r == '(' {
			open = i
			break
		}
		if u.r == ')' || u.r == ',' {
			return Particle{}, syntaxErr(offset, "unexpected "+string(u.r)+" in instruction name")
		}
	}

	nameUnits := units
	if open >= 0 {
		nameUnits = units[:open]
	}
	name := strings.TrimSpace(joinUnits(nameUnits))
	if name == "" {
		return Particle{}, syntaxErr(offset, "missing instruction name")
	}
	if open < 0 {
		return InstructionParticle(name), nil
	}

	args := make([]string, 0)
	var cur []unit
	closed := -1
	for i := open + 1; i < len(units); i++ {
		u := units[i]
		if !u.escaped && u.r == ')' {
			closed = i
			break
		}
		if !u.escaped && u.r == ',' {
			args = append(args, joinUnits(cur))
			cur = cur[:0]
			continue
		}
		cur = append(cur, u)
	}
	if closed < 0 {
		return Particle{}, syntaxErr(offset, "missing closing parenthesis")
	}
	for _, u := range units[closed+1:] {
		if u.escaped || !unicode.IsSpace(u.r) {
			return Particle{}, syntaxErr(offset, "unexpected text after argument list")
		}
	}
	if len(args) > 0 || len(cur) > 0 {
		args = append(args, joinUnits(cur))
	}
	return InstructionParticle(name, args...), nil
}

func joinUnits(units []unit) string {
	var b strings.Builder
	for _, u := range units {
		b.WriteRune(u.r)
	}
	return b.String()
}
