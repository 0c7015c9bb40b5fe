package compose

import "strings"

// AssembleText joins per-particle strings in particle order.
func AssembleText(parts []string) string {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	var b strings.Builder
	b.Grow(total)
	for _, p := range parts {
		b.WriteString(p)
	}
	return b.String()
}

// AssembleBinary joins per-particle buffers into one buffer allocated once.
func AssembleBinary(parts [][]byte) []byte {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, total)
	offset := 0
	for _, p := range parts {
		offset += copy(out[offset:], p)
	}
	return out
}
