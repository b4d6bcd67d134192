package analyzer

import (
	"fmt"

	"github.com/ssargent/mojilens/pkg/charset"
	"github.com/ssargent/mojilens/pkg/codec"
)

// MisreadStatus is the outcome of a misread simulation
type MisreadStatus string

const (
	MisreadOK          MisreadStatus = "ok"
	MisreadUnavailable MisreadStatus = "unavailable"
	MisreadError       MisreadStatus = "error"
)

// Misread is bytes from one encoding decoded with another encoding's rules
type Misread struct {
	DecodedAs charset.EncodingKind `json:"decodedAs"`
	Status    MisreadStatus        `json:"status"`
	Text      string               `json:"text"`
	Message   string               `json:"message,omitempty"`
}

// SimulateMisread decodes b as decodeAs, keeping whatever garbage results
func (a *Analyzer) SimulateMisread(b []byte, decodeAs charset.EncodingKind) Misread {
	m := Misread{DecodedAs: decodeAs}

	switch decodeAs {
	case charset.UTF8:
		m.Status = MisreadOK
		m.Text = charset.DecodeUniversal(b)
	case charset.ShiftJIS:
		if !a.legacy.Available() {
			m.Status = MisreadUnavailable
			m.Message = fmt.Sprintf("%s codec is not loaded; simulation unavailable", decodeAs.DisplayName())
			return m
		}
		text, err := a.legacy.Decode(b)
		if err != nil {
			m.Status = MisreadError
			m.Message = fmt.Sprintf("conversion error: %v", err)
			return m
		}
		m.Status = MisreadOK
		m.Text = text
	default:
		m.Status = MisreadError
		m.Message = fmt.Sprintf("conversion error: unsupported encoding %q", decodeAs)
	}

	return m
}

// MojibakeReport shows both mismatch directions for one string
type MojibakeReport struct {
	Text string `json:"text"`

	// UTF8Bytes is the input as written by a UTF-8 system
	UTF8Bytes codec.ByteView `json:"utf8Bytes"`

	// LegacyBytes is the input as written by a Shift_JIS system
	LegacyBytes codec.ByteView `json:"legacyBytes"`

	// Lossy is set when LegacyBytes contains substitutes or could not be produced
	Lossy bool `json:"lossy"`

	UTF8AsLegacy Misread `json:"utf8AsLegacy"`
	LegacyAsUTF8 Misread `json:"legacyAsUtf8"`
}

// Mojibake simulates UTF-8 bytes read as Shift_JIS and the reverse
func (a *Analyzer) Mojibake(text string) MojibakeReport {
	text = charset.Sanitize(text)
	utf8Bytes := charset.EncodeUniversal(text)

	report := MojibakeReport{
		Text:         text,
		UTF8Bytes:    codec.NewByteView(utf8Bytes),
		UTF8AsLegacy: a.SimulateMisread(utf8Bytes, a.legacy.Kind()),
	}

	if !a.legacy.Available() {
		report.Lossy = true
		report.LegacyBytes = codec.NewByteView(nil)
		report.LegacyAsUTF8 = Misread{
			DecodedAs: charset.UTF8,
			Status:    MisreadUnavailable,
			Message:   fmt.Sprintf("%s codec is not loaded; simulation unavailable", a.legacy.Kind().DisplayName()),
		}
		return report
	}

	var legacyBytes []byte
	for _, r := range a.Analyze(text) {
		if !r.Legacy.IsValid {
			report.Lossy = true
		}
		legacyBytes = append(legacyBytes, r.Legacy.Bytes...)
	}
	report.LegacyBytes = codec.NewByteView(legacyBytes)
	report.LegacyAsUTF8 = a.SimulateMisread(legacyBytes, charset.UTF8)

	return report
}
