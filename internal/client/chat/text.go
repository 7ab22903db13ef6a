package chat

import (
	"strings"
	"unicode"
)

// Printable makes s safe to put on a terminal as plain text.
// Control characters (escape sequences included) become U+FFFD, so user text can
// never restyle or move the cursor. Everything else is left exactly as sent.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}
