package charset

import (
	"unicode/utf8"
)

// EncodeUniversal returns the UTF-8 bytes of char. It never fails.
func EncodeUniversal(char string) []byte {
	return []byte(char)
}

// DecodeUniversal decodes b with UTF-8 rules. Every byte that does not start
// a valid sequence becomes one U+FFFD.
func DecodeUniversal(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	out := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, width := utf8.DecodeRune(b)
		out = append(out, r)
		b = b[width:]
	}
	return string(out)
}

// Sanitize replaces invalid UTF-8 in s the same way DecodeUniversal does
func Sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return DecodeUniversal([]byte(s))
}
