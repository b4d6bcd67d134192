package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/ssargent/mojilens/pkg/analyzer"
	"github.com/ssargent/mojilens/pkg/charset"
	"github.com/ssargent/mojilens/pkg/codec"
	"github.com/ssargent/mojilens/pkg/storage"
)

var (
	okText   = color.New(color.FgGreen).SprintFunc()
	badText  = color.New(color.FgRed).SprintFunc()
	dimText  = color.New(color.FgHiBlack).SprintFunc()
	boldText = color.New(color.Bold).SprintFunc()
)

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// validityLabel renders a legacy cell's round-trip outcome
func validityLabel(legacy analyzer.LegacyView) string {
	switch legacy.Status {
	case charset.LegacyUnavailable:
		return dimText("n/a")
	case charset.LegacyFailed:
		return badText("error")
	}
	if legacy.IsValid {
		return okText("✓")
	}
	return badText("✗")
}

// orDash shows a dash for empty cells
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// writeAnalysisTable prints one row per character followed by the totals
func writeAnalysisTable(w io.Writer, analysis analyzer.Analysis, showBinary bool) {
	if analysis.CharacterCount == 0 {
		fmt.Fprintln(w, "No characters to analyze")
		return
	}

	header := []string{"#", "Char", "Code point", analysis.UniversalEncoding}
	if showBinary {
		header = append(header, analysis.UniversalEncoding+" binary")
	}
	header = append(header, analysis.LegacyEncoding)
	if showBinary {
		header = append(header, analysis.LegacyEncoding+" binary")
	}
	header = append(header, "Valid")

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i, rec := range analysis.Records {
		row := []string{strconv.Itoa(i + 1), rec.Char, strings.Join(rec.CodePoints, " "), rec.UTF8.Hex}
		if showBinary {
			row = append(row, rec.UTF8.Binary)
		}
		row = append(row, orDash(rec.Legacy.Hex))
		if showBinary {
			row = append(row, orDash(rec.Legacy.Binary))
		}
		row = append(row, validityLabel(rec.Legacy))
		table.Append(row)
	}
	table.Render()

	fmt.Fprintf(w, "%s %d characters, %d bytes\n", boldText(analysis.UniversalEncoding+":"), analysis.CharacterCount, analysis.TotalUTF8Bytes)
	switch {
	case !analysis.LegacyAvailable:
		fmt.Fprintf(w, "%s %s\n", boldText(analysis.LegacyEncoding+":"), dimText("codec not loaded"))
	case analysis.LegacyRepresentable:
		fmt.Fprintf(w, "%s %d bytes, %s\n", boldText(analysis.LegacyEncoding+":"), analysis.TotalLegacyBytes, okText("fully representable"))
	default:
		fmt.Fprintf(w, "%s %s %s\n", boldText(analysis.LegacyEncoding+":"), badText("cannot represent"), strings.Join(analysis.InvalidChars(), " "))
	}
}

// writeMisread prints one mismatch direction
func writeMisread(w io.Writer, title string, bytes codec.ByteView, m analyzer.Misread) {
	fmt.Fprintf(w, "%s\n", boldText(title))
	fmt.Fprintf(w, "  bytes: %s\n", orDash(bytes.Hex))
	switch m.Status {
	case analyzer.MisreadOK:
		fmt.Fprintf(w, "  reads: %s\n", m.Text)
	default:
		fmt.Fprintf(w, "  %s\n", badText(m.Message))
	}
}

// writeMojibakeReport prints both mismatch directions
func writeMojibakeReport(w io.Writer, report analyzer.MojibakeReport) {
	fmt.Fprintf(w, "Input: %s\n\n", report.Text)
	writeMisread(w, "UTF-8 bytes read as Shift_JIS", report.UTF8Bytes, report.UTF8AsLegacy)
	fmt.Fprintln(w)
	writeMisread(w, "Shift_JIS bytes read as UTF-8", report.LegacyBytes, report.LegacyAsUTF8)
	if report.Lossy {
		fmt.Fprintf(w, "\n%s Shift_JIS cannot hold every character; substitutes were written\n", badText("note:"))
	}
}

// writeSnippetTable lists saved snippets
func writeSnippetTable(w io.Writer, snippets []*storage.Snippet) {
	if len(snippets) == 0 {
		fmt.Fprintln(w, "No snippets found")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Label", "Text", "Created"})
	table.SetAutoWrapText(false)
	for _, s := range snippets {
		table.Append([]string{s.ID, s.Label, s.Text, s.CreatedAt.Format("2006-01-02 15:04")})
	}
	table.Render()
}
