package compose

import (
	"strconv"
	"strings"
)

const (
	// TextUndefined is returned by the text instruction for an absent variable.
	TextUndefined = "undefined"

	textRandomCount = 16
	// Random characters stay in the lower half of the 16-bit range.
	textRandomMax  = 0x7fff
	textRangeStart = 32
	textRangeEnd   = 126
)

// TextInstructions returns the instruction table of the text mode.
func TextInstructions() *Table[string] {
	t := NewTable[string]()
	mustRegister(t, "default", textDefault)
	mustRegister(t, "random", textRandom)
	mustRegister(t, "text", textVariable)
	mustRegister(t, "time", textTime)
	mustRegister(t, "range", textRange)
	return t
}

func textDefault(_ Env, args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], nil
}

func textRandom(env Env, args []string) (string, error) {
	n := countArg(args, textRandomCount)
	if n <= 0 {
		return "", nil
	}
	if err := env.checkUnits("random", n); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(int(n))
	for i := int64(0); i < n; i++ {
		b.WriteRune(rune(env.intN(textRandomMax + 1)))
	}
	return b.String(), nil
}

func textVariable(env Env, args []string) (string, error) {
	v, ok := env.text(nameArg(args))
	if !ok {
		return TextUndefined, nil
	}
	return v, nil
}

func textTime(env Env, _ []string) (string, error) {
	return strconv.FormatInt(env.now().Unix(), 10), nil
}

// textRange wraps values to 16-bit code units; surrogates encode as U+FFFD.
func textRange(env Env, args []string) (string, error) {
	start, end := rangeArgs(args, textRangeStart, textRangeEnd)
	n := span(start, end)
	if n == 0 {
		return "", nil
	}
	if err := env.checkUnits("range", n); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(int(n))
	for i := start; i <= end; i++ {
		b.WriteRune(rune(uint16(i)))
	}
	return b.String(), nil
}
