/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/mojilens/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a mojilens configuration file",
	Long: `Write a configuration file with default settings and a freshly generated
client API key, and create the data directory.

The tutor API key is not written; put it in MOJILENS_TUTOR_API_KEY or a .env file.

Examples:
  mojilens init
  mojilens init --config ./mojilens.yaml --data-dir ./data
  mojilens init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		configPath := configPathFlag(cmd)
		cfg, err := initializeConfig(configPath, dataDir, force)
		if err != nil {
			return err
		}

		cmd.Printf("✅ mojilens configuration written to %s\n", configPath)
		cmd.Printf("Data directory: %s\n", cfg.DataDir)
		cmd.Printf("Client API key: %s\n", cfg.Security.ClientAPIKey)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  mojilens serve --config %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for mojilens")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

// initializeConfig bootstraps a config file and its data directory
func initializeConfig(configPath, dataDir string, force bool) (*config.Config, error) {
	if config.ConfigExists(configPath) && !force {
		return nil, fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
	}

	cfg, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return cfg, nil
}
