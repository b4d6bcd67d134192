/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/mojilens/pkg/analyzer"
	"github.com/ssargent/mojilens/pkg/charset"
	"github.com/ssargent/mojilens/pkg/codec"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <bytes>",
	Short: "Read hex or binary bytes with a chosen encoding",
	Long: `Parse space-separated byte groups and decode them with UTF-8 or Shift_JIS.
Bytes that are invalid for the chosen encoding show up as U+FFFD.

Examples:
  mojilens decode "E3 81 82" --as utf8
  mojilens decode "E3 81 82" --as sjis
  mojilens decode "10000010 10100000" --binary --as sjis`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		as, _ := cmd.Flags().GetString("as")
		binary, _ := cmd.Flags().GetBool("binary")

		kind, err := charset.ParseEncodingKind(as)
		if err != nil {
			return err
		}

		input := strings.Join(args, " ")
		var b []byte
		if binary {
			b, err = codec.ParseBinary(input)
		} else {
			b, err = codec.ParseHex(input)
		}
		if err != nil {
			return fmt.Errorf("failed to parse bytes: %w", err)
		}

		engine, err := newAnalyzer()
		if err != nil {
			return err
		}

		misread := engine.SimulateMisread(b, kind)

		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), struct {
				Bytes  codec.ByteView   `json:"bytes"`
				Result analyzer.Misread `json:"result"`
			}{codec.NewByteView(b), misread})
		}

		writeMisread(cmd.OutOrStdout(), "Read as "+kind.DisplayName(), codec.NewByteView(b), misread)
		if misread.Status != analyzer.MisreadOK {
			return errors.New(misread.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("as", "utf8", "Encoding to decode with: utf8 or sjis")
	decodeCmd.Flags().Bool("binary", false, "Input is 8-digit binary groups instead of hex")
}
