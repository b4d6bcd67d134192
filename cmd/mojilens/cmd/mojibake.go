/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// mojibakeCmd represents the mojibake command
var mojibakeCmd = &cobra.Command{
	Use:   "mojibake <text>",
	Short: "Show what the text turns into when read with the wrong encoding",
	Long: `Simulate both encoding mismatches for the text: its UTF-8 bytes read by a
Shift_JIS system, and its Shift_JIS bytes read by a UTF-8 system.

Examples:
  mojilens mojibake 文字化け
  mojilens mojibake "テスト" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newAnalyzer()
		if err != nil {
			return err
		}

		report := engine.Mojibake(strings.Join(args, " "))

		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		writeMojibakeReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mojibakeCmd)
}
