package charset

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// SubstituteByte is written in place of a rune the legacy repertoire lacks
const SubstituteByte = '?'

// LegacyCodec converts between strings and a legacy byte encoding.
// Encode substitutes SubstituteByte for runes outside the repertoire and
// only fails when the input cannot be processed at all.
type LegacyCodec interface {
	Kind() EncodingKind
	Encode(s string) ([]byte, error)
	Decode(b []byte) (string, error)
}

type shiftJISCodec struct {
	enc encoding.Encoding
}

// NewShiftJIS returns the Shift_JIS codec backed by golang.org/x/text
func NewShiftJIS() LegacyCodec {
	return &shiftJISCodec{enc: japanese.ShiftJIS}
}

func (c *shiftJISCodec) Kind() EncodingKind {
	return ShiftJIS
}

func (c *shiftJISCodec) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("cannot encode invalid UTF-8 %q", s)
	}

	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		encoded, _, err := transform.String(c.enc.NewEncoder(), string(r))
		if err != nil {
			if !isRepertoireError(err) {
				return nil, fmt.Errorf("failed to encode %U: %w", r, err)
			}
			out = append(out, SubstituteByte)
			continue
		}
		out = append(out, encoded...)
	}
	return out, nil
}

func (c *shiftJISCodec) Decode(b []byte) (string, error) {
	decoded, _, err := transform.Bytes(c.enc.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("failed to decode %d bytes: %w", len(b), err)
	}
	return string(decoded), nil
}

// isRepertoireError matches the x/text error for a rune with no mapping,
// which carries the replacement byte the encoding would have used.
func isRepertoireError(err error) bool {
	var rep interface{ Replacement() byte }
	return errors.As(err, &rep)
}
