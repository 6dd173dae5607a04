package textutil

import (
	"strings"
	"unicode"
)

// SanitizeComponent strips characters that are unsafe in a single path
// component. Kept characters are letters, digits, '.', '_', '-', '(', ')',
// and spaces; runs of whitespace collapse to a single space and the result
// is trimmed.
func SanitizeComponent(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	space := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			space = false
		case r == '.' || r == '_' || r == '-' || r == '(' || r == ')':
			b.WriteRune(r)
			space = false
		case unicode.IsSpace(r):
			if !space && b.Len() > 0 {
				b.WriteByte(' ')
				space = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}
