/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/mojilens/pkg/api"
	"github.com/ssargent/mojilens/pkg/config"
	"github.com/ssargent/mojilens/pkg/tutor"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the mojilens REST API server using the loaded configuration.

The analysis endpoints are open. The tutor and snippet write endpoints require
the X-API-Key header when security.client_api_key is set.

Examples:
  mojilens serve
  mojilens serve --port 9000 --api-key mysecretkey
  mojilens serve --no-legacy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyServeFlags(cmd, appConfig)
		return runServer(cmd.Context(), appConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().String("bind", "", "Address to bind server to (default from config)")
	serveCmd.Flags().StringP("data-dir", "d", "", "Data directory for the snippet store (default from config)")
	serveCmd.Flags().String("api-key", "", "Client API key for write endpoints (default from config)")
}

// applyServeFlags overrides cfg with any server flags that were set
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
		cfg.Bind = bind
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
		cfg.Security.ClientAPIKey = apiKey
	}
}

// runServer wires the engine, tutor and snippet store and serves until interrupted
func runServer(ctx context.Context, cfg *config.Config) error {
	if container == nil {
		return errors.New("dependency container not initialized")
	}

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return err
	}

	store, err := openSnippetStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close snippet store", "error", err)
		}
	}()

	asker := container.NewTutor(tutor.Config{
		Endpoint: cfg.Tutor.Endpoint,
		Model:    cfg.Tutor.Model,
		APIKey:   cfg.Tutor.APIKey,
		Timeout:  cfg.Tutor.Timeout,
	})
	if !asker.Enabled() {
		logger.Info("tutor disabled; set " + config.EnvTutorAPIKey + " to enable /ask")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	starter := container.GetServerFactory().CreateServerStarter()
	return starter.StartServer(ctx, api.Dependencies{
		Engine:   container.NewAnalyzer(cfg.Analyzer.LegacyEnabled),
		Tutor:    asker,
		Snippets: store,
	}, api.ServerConfig{
		Port:          cfg.Port,
		Bind:          cfg.Bind,
		APIKey:        cfg.Security.ClientAPIKey,
		MaxInputChars: cfg.Analyzer.MaxInputChars,
		Logger:        logger,
	})
}
