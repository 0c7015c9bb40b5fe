package template

import (
	"strconv"
	"strings"
)

// ParseNum decodes a decimal or 0x-prefixed hexadecimal integer.
// Malformed input decodes to 0.
func ParseNum(raw string) int64 {
	s := strings.TrimSpace(raw)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil {
			return 0
		}
		return v
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
