package analyzer

import (
	"fmt"
	"strings"

	"github.com/ssargent/mojilens/pkg/charset"
	"github.com/ssargent/mojilens/pkg/codec"
)

// UTF8View is the UTF-8 rendering of one character
type UTF8View struct {
	codec.ByteView
	IsValid bool `json:"isValid"`
}

// LegacyView is the Shift_JIS rendering of one character
type LegacyView struct {
	codec.ByteView
	IsValid bool                 `json:"isValid"`
	Status  charset.LegacyStatus `json:"status"`
}

// CharacterRecord describes one grapheme cluster of the input
type CharacterRecord struct {
	Char       string     `json:"char"`
	CodePoint  string     `json:"codePoint"`
	CodePoints []string   `json:"codePoints"`
	UTF8       UTF8View   `json:"utf8"`
	Legacy     LegacyView `json:"legacy"`
}

// FormatCodePoint renders r as U+XXXX with at least four uppercase digits
func FormatCodePoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

func codePoints(char string) []string {
	points := make([]string, 0, len(char))
	for _, r := range char {
		points = append(points, FormatCodePoint(r))
	}
	return points
}

// String renders the record on one line, e.g. `あ U+3042 utf8=[E3 81 82] sjis=[82 A0] ok`
func (r CharacterRecord) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s utf8=[%s]", r.Char, strings.Join(r.CodePoints, "+"), r.UTF8.Hex)

	switch {
	case r.Legacy.Status == charset.LegacyUnavailable:
		sb.WriteString(" sjis=unavailable")
	case r.Legacy.Status == charset.LegacyFailed:
		sb.WriteString(" sjis=error")
	case r.Legacy.IsValid:
		fmt.Fprintf(&sb, " sjis=[%s] ok", r.Legacy.Hex)
	default:
		fmt.Fprintf(&sb, " sjis=[%s] unrepresentable", r.Legacy.Hex)
	}
	return sb.String()
}
