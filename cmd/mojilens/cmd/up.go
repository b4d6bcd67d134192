/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/mojilens/pkg/config"
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bootstrap and start the mojilens server",
	Long: `Bootstrap mojilens by creating a configuration with a client API key if
none exists, then start the REST API server. This is the recommended way to
get mojilens running.

Examples:
  mojilens up
  mojilens up --data-dir ./mydata --port 9000
  mojilens up --config ./custom-config.yaml --print-keys`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printKeys, _ := cmd.Flags().GetBool("print-keys")

		cfg, err := ensureConfig(cmd, configPathFlag(cmd), printKeys)
		if err != nil {
			return err
		}

		applyServeFlags(cmd, cfg)

		cmd.Printf("🚀 Starting mojilens server on %s:%d\n", cfg.Bind, cfg.Port)
		cmd.Printf("📁 Data directory: %s\n", cfg.DataDir)

		return runServer(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(upCmd)

	upCmd.Flags().StringP("data-dir", "d", "", "Data directory for the snippet store")
	upCmd.Flags().IntP("port", "p", 0, "Port to listen on")
	upCmd.Flags().String("bind", "", "Address to bind server to")
	upCmd.Flags().String("api-key", "", "Client API key for write endpoints")
	upCmd.Flags().Bool("print-keys", false, "Print generated API keys to console")
}

// ensureConfig bootstraps the config file on first run. Otherwise it keeps
// the configuration the root command already loaded.
func ensureConfig(cmd *cobra.Command, configPath string, printKeys bool) (*config.Config, error) {
	if config.ConfigExists(configPath) {
		cmd.Printf("✅ Loaded existing configuration from %s\n", configPath)
		return appConfig, nil
	}

	cmd.Printf("🔧 First run detected. Bootstrapping mojilens...\n")

	dataDir, _ := cmd.Flags().GetString("data-dir")
	cfg, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap config: %w", err)
	}
	cmd.Printf("✅ Configuration created at %s\n", configPath)

	if printKeys {
		cmd.Printf("\n🔑 Generated Keys:\n")
		cmd.Printf("Client API Key: %s\n", cfg.Security.ClientAPIKey)
		cmd.Printf("\n⚠️  Store this key securely! It is also saved in %s\n", configPath)
	}

	// Keep environment and flag overrides from the root command
	cfg.Tutor.APIKey = appConfig.Tutor.APIKey
	cfg.Analyzer.LegacyEnabled = appConfig.Analyzer.LegacyEnabled
	cfg.Logging = appConfig.Logging

	return cfg, nil
}
