package analyzer

import (
	"github.com/ssargent/mojilens/pkg/charset"
	"github.com/ssargent/mojilens/pkg/codec"
)

// Analyzer produces per-character encoding breakdowns
type Analyzer struct {
	legacy charset.Legacy
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLegacy replaces the legacy backend. Pass charset.MissingLegacy() to
// run without a legacy codec.
func WithLegacy(legacy charset.Legacy) Option {
	return func(a *Analyzer) {
		a.legacy = legacy
	}
}

// New creates an analyzer using the Shift_JIS codec unless overridden
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		legacy: charset.NewLegacy(charset.NewShiftJIS()),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LegacyAvailable reports whether the analyzer has a legacy codec
func (a *Analyzer) LegacyAvailable() bool {
	return a.legacy.Available()
}

// LegacyKind returns the legacy encoding this analyzer compares against
func (a *Analyzer) LegacyKind() charset.EncodingKind {
	return a.legacy.Kind()
}

// EncodeUniversal returns the UTF-8 bytes of char
func (a *Analyzer) EncodeUniversal(char string) []byte {
	return charset.EncodeUniversal(char)
}

// EncodeLegacy returns the legacy bytes of char, or a non-encoded status
func (a *Analyzer) EncodeLegacy(char string) charset.LegacyResult {
	return a.legacy.Encode(char)
}

// IsLegacyRoundTripValid reports whether legacyBytes decode back to char
func (a *Analyzer) IsLegacyRoundTripValid(char string, legacyBytes []byte) bool {
	return a.legacy.RoundTrips(char, legacyBytes)
}

// Analyze returns one record per grapheme cluster of text, in input order.
// Invalid UTF-8 is first replaced with U+FFFD, one per bad byte.
func (a *Analyzer) Analyze(text string) []CharacterRecord {
	chars := Segment(charset.Sanitize(text))

	records := make([]CharacterRecord, 0, len(chars))
	for _, char := range chars {
		records = append(records, a.analyzeChar(char))
	}
	return records
}

func (a *Analyzer) analyzeChar(char string) CharacterRecord {
	points := codePoints(char)

	record := CharacterRecord{
		Char:       char,
		CodePoint:  points[0],
		CodePoints: points,
		UTF8: UTF8View{
			ByteView: codec.NewByteView(a.EncodeUniversal(char)),
			IsValid:  true,
		},
	}

	res := a.EncodeLegacy(char)
	record.Legacy = LegacyView{
		ByteView: codec.NewByteView(res.Bytes),
		Status:   res.Status,
	}
	if res.Status == charset.LegacyEncoded {
		record.Legacy.IsValid = a.IsLegacyRoundTripValid(char, res.Bytes)
	}

	return record
}
