package compose

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/danmuck/wsterm/internal/template"
	"github.com/danmuck/wsterm/internal/vars"
)

// Rand is the randomness source instructions draw from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Limits bounds the size of a single instruction result and of a payload.
type Limits struct {
	MaxUnits int
}

func DefaultLimits() Limits {
	return Limits{MaxUnits: 8 * 1024 * 1024}
}

// Env is the read-only context instructions evaluate against.
type Env struct {
	Texts  vars.Reader[string]
	Bins   vars.Reader[[]byte]
	Rand   Rand
	Now    func() time.Time
	Limits Limits
}

func (e Env) text(name string) (string, bool) {
	if e.Texts == nil {
		return "", false
	}
	return e.Texts.Get(name)
}

func (e Env) bin(name string) ([]byte, bool) {
	if e.Bins == nil {
		return nil, false
	}
	return e.Bins.Get(name)
}

func (e Env) intN(n int) int {
	if e.Rand == nil {
		return rand.IntN(n)
	}
	return e.Rand.IntN(n)
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) checkUnits(what string, n int64) error {
	if e.Limits.MaxUnits > 0 && n > int64(e.Limits.MaxUnits) {
		return tooLarge(what, n, e.Limits.MaxUnits)
	}
	return nil
}

// countArg reads the single-argument count form, falling back to def.
func countArg(args []string, def int64) int64 {
	if len(args) == 1 {
		return template.ParseNum(args[0])
	}
	return def
}

// rangeArgs reads (end) or (start,end), falling back to the mode defaults.
func rangeArgs(args []string, start, end int64) (int64, int64) {
	switch len(args) {
	case 1:
		end = template.ParseNum(args[0])
	case 2:
		start = template.ParseNum(args[0])
		end = template.ParseNum(args[1])
	}
	return start, end
}

// nameArg reads the single-argument variable name form.
func nameArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return vars.DefaultName
}

// span is the inclusive unit count of start..end, zero when start > end.
// Counts that overflow int64 saturate.
func span(start, end int64) int64 {
	if start > end {
		return 0
	}
	n := end - start + 1
	if n <= 0 {
		return math.MaxInt64
	}
	return n
}
