package junit

import "strings"

// Sanitize drops every code point outside the XML 1.0 character range:
// controls below U+0020 except tab, newline and carriage return, the
// surrogate range U+D800-U+DFFF, and U+FFFE/U+FFFF. Invalid UTF-8 bytes
// decode to U+FFFD and survive, so captured binary garbage still yields
// a well-formed document.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if legalXMLRune(r) {
			return r
		}

		return -1
	}, s)
}

func legalXMLRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}

	return false
}
