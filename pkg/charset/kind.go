// Package charset adapts the two encodings mojilens compares: UTF-8, which is
// total, and Shift_JIS, which is partial and may be absent at runtime.
package charset

import (
	"fmt"
	"strings"
)

// EncodingKind names one of the supported encodings
type EncodingKind string

const (
	UTF8     EncodingKind = "utf8"
	ShiftJIS EncodingKind = "shift_jis"
)

// DisplayName returns the conventional spelling of the encoding
func (k EncodingKind) DisplayName() string {
	switch k {
	case UTF8:
		return "UTF-8"
	case ShiftJIS:
		return "Shift_JIS"
	default:
		return string(k)
	}
}

// ParseEncodingKind accepts the usual aliases of the supported encodings
func ParseEncodingKind(s string) (EncodingKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utf8", "utf-8":
		return UTF8, nil
	case "sjis", "shift_jis", "shift-jis", "shiftjis":
		return ShiftJIS, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %q", s)
	}
}
