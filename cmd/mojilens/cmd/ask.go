/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/mojilens/pkg/tutor"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the tutor a question about encodings",
	Long: `Send a question to the tutoring service. With --context, the analysis of
that text is sent along so the tutor can refer to its actual bytes.

The tutor needs an API key in tutor.api_key or ` + "`" + `MOJILENS_TUTOR_API_KEY` + "`" + `.

Examples:
  mojilens ask "Why can't Shift_JIS store emoji?" --context 🚀
  mojilens ask "What does the first byte 0x82 mean?" --context あ`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contextText, _ := cmd.Flags().GetString("context")

		if container == nil {
			return errors.New("dependency container not initialized")
		}

		asker := container.NewTutor(tutor.Config{
			Endpoint: appConfig.Tutor.Endpoint,
			Model:    appConfig.Tutor.Model,
			APIKey:   appConfig.Tutor.APIKey,
			Timeout:  appConfig.Tutor.Timeout,
		})
		if !asker.Enabled() {
			return tutor.ErrNotConfigured
		}

		analysisContext := ""
		if contextText != "" {
			engine, err := newAnalyzer()
			if err != nil {
				return err
			}
			analysisContext = engine.Summarize(contextText).Context()
		}

		session := tutor.NewSession(asker, "")
		done := session.Submit(cmd.Context(), strings.Join(args, " "), analysisContext)

		if session.Snapshot().Loading {
			cmd.PrintErrln(dimText("Asking the tutor..."))
		}

		state := <-done
		fmt.Fprintln(cmd.OutOrStdout(), state.Answer)
		if state.Phase == tutor.PhaseFailed {
			logger.Warn("tutor request failed", "error", state.Error)
			return errors.New(state.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringP("context", "c", "", "Text whose analysis is sent with the question")
}
