package lib

import (
	"strings"
	"unicode"
)

// SanitizeString strips control characters and collapses runs of whitespace
// in free-text input before it reaches storage or templates.
func SanitizeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteRune(' ')
			}
			lastSpace = true
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}
