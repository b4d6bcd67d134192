/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Show each character's UTF-8 and Shift_JIS bytes",
	Long: `Break the text into characters (grapheme clusters) and show, for each one,
its code point, its UTF-8 bytes, its Shift_JIS bytes and whether Shift_JIS can
represent it (checked by encoding and decoding it again).

Examples:
  mojilens analyze あ
  mojilens analyze "Hello 🚀" --binary
  mojilens analyze 文字化け --json
  mojilens analyze あ --no-legacy`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showBinary, _ := cmd.Flags().GetBool("binary")

		engine, err := newAnalyzer()
		if err != nil {
			return err
		}

		analysis := engine.Summarize(strings.Join(args, " "))
		logger.Debug("analyzed input", "chars", analysis.CharacterCount, "legacy_representable", analysis.LegacyRepresentable)

		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), analysis)
		}
		writeAnalysisTable(cmd.OutOrStdout(), analysis, showBinary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolP("binary", "b", false, "Also show bytes in binary")
}
