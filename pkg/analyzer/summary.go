package analyzer

import (
	"fmt"
	"strings"
)

// Analysis is the full breakdown of one input string
type Analysis struct {
	Text                string            `json:"text"`
	Records             []CharacterRecord `json:"records"`
	CharacterCount      int               `json:"characterCount"`
	TotalUTF8Bytes      int               `json:"totalUtf8Bytes"`
	TotalLegacyBytes    int               `json:"totalLegacyBytes"`
	LegacyRepresentable bool              `json:"legacyRepresentable"`
	LegacyAvailable     bool              `json:"legacyAvailable"`
	UniversalEncoding   string            `json:"universalEncoding"`
	LegacyEncoding      string            `json:"legacyEncoding"`
}

// Summarize analyzes text and computes the whole-string aggregates.
// TotalLegacyBytes is only meaningful when LegacyRepresentable is true.
func (a *Analyzer) Summarize(text string) Analysis {
	records := a.Analyze(text)

	analysis := Analysis{
		Text:                text,
		Records:             records,
		CharacterCount:      len(records),
		LegacyRepresentable: true,
		LegacyAvailable:     a.LegacyAvailable(),
		UniversalEncoding:   "UTF-8",
		LegacyEncoding:      a.LegacyKind().DisplayName(),
	}

	for _, r := range records {
		analysis.TotalUTF8Bytes += r.UTF8.Length
		analysis.TotalLegacyBytes += r.Legacy.Length
		analysis.LegacyRepresentable = analysis.LegacyRepresentable && r.Legacy.IsValid
	}

	return analysis
}

// InvalidChars returns the characters the legacy encoding cannot represent
func (an Analysis) InvalidChars() []string {
	var out []string
	for _, r := range an.Records {
		if !r.Legacy.IsValid {
			out = append(out, r.Char)
		}
	}
	return out
}

// Context renders the analysis as a short plain-text block for the tutor
func (an Analysis) Context() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Input %q: %d characters, %d bytes in %s", an.Text, an.CharacterCount, an.TotalUTF8Bytes, an.UniversalEncoding)

	switch {
	case !an.LegacyAvailable:
		fmt.Fprintf(&sb, ", %s codec unavailable.\n", an.LegacyEncoding)
	case an.LegacyRepresentable:
		fmt.Fprintf(&sb, ", %d bytes in %s.\n", an.TotalLegacyBytes, an.LegacyEncoding)
	default:
		fmt.Fprintf(&sb, ", not representable in %s (%s).\n", an.LegacyEncoding, strings.Join(an.InvalidChars(), " "))
	}

	for _, r := range an.Records {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
