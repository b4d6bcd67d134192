/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ssargent/mojilens/pkg/di"
)

// snippetsCmd represents the snippets command
var snippetsCmd = &cobra.Command{
	Use:   "snippets",
	Short: "Manage saved sample inputs",
	Long: `Manage the sample inputs saved in the local snippet store. The store lives
under data_dir and is the same one the REST API serves.`,
}

var listSnippetsCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snippets, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withSnippetStore(func(store di.SnippetStore) error {
			snippets, err := store.List(limit)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), snippets)
			}
			writeSnippetTable(cmd.OutOrStdout(), snippets)
			return nil
		})
	},
}

var addSnippetCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Save a snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, _ := cmd.Flags().GetString("label")

		return withSnippetStore(func(store di.SnippetStore) error {
			snippet, err := store.Create(label, args[0])
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), snippet)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved snippet %s\n", snippet.ID)
			return nil
		})
	},
}

var showSnippetCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Analyze a saved snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newAnalyzer()
		if err != nil {
			return err
		}

		return withSnippetStore(func(store di.SnippetStore) error {
			snippet, err := store.Read(args[0])
			if err != nil {
				return err
			}
			analysis := engine.Summarize(snippet.Text)
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", boldText(snippet.Label), snippet.ID)
			writeAnalysisTable(cmd.OutOrStdout(), analysis, false)
			return nil
		})
	},
}

var removeSnippetCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSnippetStore(func(store di.SnippetStore) error {
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snippet %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(snippetsCmd)
	snippetsCmd.AddCommand(listSnippetsCmd)
	snippetsCmd.AddCommand(addSnippetCmd)
	snippetsCmd.AddCommand(showSnippetCmd)
	snippetsCmd.AddCommand(removeSnippetCmd)

	listSnippetsCmd.Flags().IntP("limit", "n", 0, "Maximum number of snippets (0 for all)")
	addSnippetCmd.Flags().StringP("label", "l", "", "Label for the snippet")
}

// snippetStorePath is where the snippet database lives under data_dir
func snippetStorePath(dataDir string) string {
	return filepath.Join(dataDir, "snippets")
}

// withSnippetStore opens and seeds the store, runs fn and closes it
func withSnippetStore(fn func(store di.SnippetStore) error) error {
	if container == nil {
		return errors.New("dependency container not initialized")
	}

	store, err := openSnippetStore(appConfig.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close snippet store", "error", err)
		}
	}()

	return fn(store)
}

// openSnippetStore opens the store under dataDir and seeds it on first use
func openSnippetStore(dataDir string) (di.SnippetStore, error) {
	store, err := container.OpenSnippetStore(snippetStorePath(dataDir))
	if err != nil {
		return nil, err
	}

	seeded, err := store.Seed()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed snippet store: %w", err)
	}
	if seeded > 0 {
		logger.Info("seeded snippet store", "count", seeded)
	}
	return store, nil
}
