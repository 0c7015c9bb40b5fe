package compose

import (
	"strconv"
)

const (
	binaryRandomCount = 16
	binaryRangeStart  = 0
	binaryRangeEnd    = 0xff
)

// BinaryInstructions returns the instruction table of the binary mode.
func BinaryInstructions() *Table[[]byte] {
	t := NewTable[[]byte]()
	mustRegister(t, "default", binaryDefault)
	mustRegister(t, "random", binaryRandom)
	mustRegister(t, "range", binaryRange)
	mustRegister(t, "bin", binaryVariable)
	mustRegister(t, "text", binaryText)
	mustRegister(t, "hex", binaryHex)
	return t
}

// ByteValue maps a character to its byte; code points above 0xff map to 0.
func ByteValue(r rune) byte {
	if r < 0 || r > 0xff {
		return 0
	}
	return byte(r)
}

// TextBytes converts text to bytes one character at a time using ByteValue.
func TextBytes(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		out = append(out, ByteValue(r))
	}
	return out
}

func binaryDefault(_ Env, args []string) ([]byte, error) {
	if len(args) == 0 {
		return []byte{}, nil
	}
	return TextBytes(args[0]), nil
}

func binaryRandom(env Env, args []string) ([]byte, error) {
	n := countArg(args, binaryRandomCount)
	if n <= 0 {
		return []byte{}, nil
	}
	if err := env.checkUnits("random", n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(env.intN(0xff + 1))
	}
	return out, nil
}

// binaryRange values outside 0..255 are truncated to their low 8 bits.
func binaryRange(env Env, args []string) ([]byte, error) {
	start, end := rangeArgs(args, binaryRangeStart, binaryRangeEnd)
	n := span(start, end)
	if n == 0 {
		return []byte{}, nil
	}
	if err := env.checkUnits("range", n); err != nil {
		return nil, err
	}
	out := make([]byte, 0, n)
	for i := start; i <= end; i++ {
		out = append(out, byte(i))
	}
	return out, nil
}

func binaryVariable(env Env, args []string) ([]byte, error) {
	v, ok := env.bin(nameArg(args))
	if !ok {
		return []byte{}, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func binaryText(env Env, args []string) ([]byte, error) {
	v, ok := env.text(nameArg(args))
	if !ok {
		return []byte{}, nil
	}
	return TextBytes(v), nil
}

// binaryHex decodes consecutive digit pairs. A trailing odd digit and pairs
// that are not hexadecimal are dropped.
func binaryHex(_ Env, args []string) ([]byte, error) {
	if len(args) != 1 {
		return []byte{}, nil
	}
	digits := []rune(args[0])
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out, nil
}
