/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/mojilens/pkg/analyzer"
	"github.com/ssargent/mojilens/pkg/config"
	"github.com/ssargent/mojilens/pkg/di"
	"github.com/ssargent/mojilens/pkg/logging"
)

var (
	container *di.Container

	// appConfig is loaded by the root command before any subcommand runs
	appConfig *config.Config
	logger    *slog.Logger
)

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mojilens",
	Short: "mojilens - see how characters become bytes",
	Long: `mojilens shows how each character of a string is stored as bytes in
UTF-8 and in Shift_JIS, whether Shift_JIS can represent it at all, and what
mojibake appears when bytes are read with the wrong encoding.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional .env file with secrets such as "+config.EnvTutorAPIKey)
	rootCmd.PersistentFlags().Bool("no-legacy", false, "Run without the Shift_JIS codec")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")
}

// configPathFlag returns the --config value or the default location
func configPathFlag(cmd *cobra.Command) string {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}
	return configPath
}

// loadConfig reads the config file if there is one, then applies the
// environment and command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath := configPathFlag(cmd)

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return nil, err
	}

	if noLegacy, _ := cmd.Flags().GetBool("no-legacy"); noLegacy {
		cfg.Analyzer.LegacyEnabled = false
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newAnalyzer builds the engine from the loaded config
func newAnalyzer() (*analyzer.Analyzer, error) {
	if container == nil {
		return nil, fmt.Errorf("dependency container not initialized")
	}
	return container.NewAnalyzer(appConfig.Analyzer.LegacyEnabled), nil
}

// jsonOutput reports whether --json was given
func jsonOutput(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}
