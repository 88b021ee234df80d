package utils

import (
	"strings"
	"unicode"
)

// NormalizeMobile reduces a free-text phone number to its canonical digit
// sequence for matching: all whitespace and the characters + - ( ) are
// removed, then the result is trimmed. Pure and idempotent; empty input
// yields empty output.
func NormalizeMobile(mobile string) string {
	var b strings.Builder
	b.Grow(len(mobile))

	for _, r := range mobile {
		switch {
		case unicode.IsSpace(r):
		case r == '+', r == '-', r == '(', r == ')':
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
