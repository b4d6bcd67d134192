package charset

import (
	"fmt"
)

// LegacyStatus describes the outcome of a legacy encoding attempt
type LegacyStatus string

const (
	// LegacyEncoded means bytes were produced; they may contain substitutes
	LegacyEncoded LegacyStatus = "encoded"

	// LegacyUnavailable means no legacy codec is loaded
	LegacyUnavailable LegacyStatus = "unavailable"

	// LegacyFailed means the codec could not process the input at all
	LegacyFailed LegacyStatus = "error"
)

// LegacyResult is the tagged result of encoding one character
type LegacyResult struct {
	Bytes  []byte
	Status LegacyStatus
	Err    error
}

// Legacy is the optional legacy codec capability. The zero value is an
// unavailable backend, so callers never hold a nil codec.
type Legacy struct {
	codec LegacyCodec
}

// NewLegacy wraps codec. A nil codec yields an unavailable backend.
func NewLegacy(codec LegacyCodec) Legacy {
	return Legacy{codec: codec}
}

// MissingLegacy returns a backend that reports every character as unavailable
func MissingLegacy() Legacy {
	return Legacy{}
}

// Available reports whether a legacy codec is loaded
func (l Legacy) Available() bool {
	return l.codec != nil
}

// Kind returns the encoding of the loaded codec, defaulting to Shift_JIS
func (l Legacy) Kind() EncodingKind {
	if l.codec == nil {
		return ShiftJIS
	}
	return l.codec.Kind()
}

// Encode converts char to legacy bytes. Codec errors and panics are folded
// into a LegacyFailed result so one character cannot abort a whole analysis.
func (l Legacy) Encode(char string) (res LegacyResult) {
	if l.codec == nil {
		return LegacyResult{Status: LegacyUnavailable}
	}

	defer func() {
		if r := recover(); r != nil {
			res = LegacyResult{Status: LegacyFailed, Err: fmt.Errorf("legacy codec panicked: %v", r)}
		}
	}()

	b, err := l.codec.Encode(char)
	if err != nil {
		return LegacyResult{Status: LegacyFailed, Err: err}
	}
	return LegacyResult{Bytes: b, Status: LegacyEncoded}
}

// Decode converts legacy bytes back to a string
func (l Legacy) Decode(b []byte) (s string, err error) {
	if l.codec == nil {
		return "", ErrLegacyUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			s, err = "", fmt.Errorf("legacy codec panicked: %v", r)
		}
	}()

	return l.codec.Decode(b)
}

// RoundTrips reports whether decoding legacyBytes reproduces char exactly.
// This is the only test of representability: a substitute byte looks like a
// genuine '?' and the byte count says nothing about correctness.
func (l Legacy) RoundTrips(char string, legacyBytes []byte) bool {
	if l.codec == nil || len(legacyBytes) == 0 {
		return false
	}

	decoded, err := l.Decode(legacyBytes)
	if err != nil {
		return false
	}
	return decoded == char
}
