/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ssargent/mojilens/pkg/config"
)

const (
	serviceName = "mojilens.service"
	unitPath    = "/etc/systemd/system/" + serviceName
)

// serviceCmd represents the service command
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage mojilens as a systemd service",
	Long: `Manage mojilens as a systemd service. This command provides
native integration with systemd for production deployments.

The service will be installed with proper security settings and
automatic restart on failure.`,
}

// installServiceCmd represents the service install command
var installServiceCmd = &cobra.Command{
	Use:   "install",
	Short: "Install mojilens as a systemd service",
	Long: `Install mojilens as a systemd service with proper configuration.

This will:
- Create or use existing configuration
- Generate systemd unit file
- Enable and optionally start the service

Examples:
  mojilens service install
  mojilens service install --data-dir /var/lib/mojilens --user mojilens`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		startNow, _ := cmd.Flags().GetBool("start")
		configPath := configPathFlag(cmd)

		// systemd operations need root
		if os.Geteuid() != 0 {
			return fmt.Errorf("service install requires root privileges (run with: sudo mojilens service install)")
		}

		cmd.Printf("🔧 Installing mojilens systemd service...\n")

		cfg, err := prepareServiceConfig(cmd, configPath)
		if err != nil {
			return err
		}

		if err := createSystemdUnit(cfg, configPath, user); err != nil {
			return fmt.Errorf("failed to create systemd unit: %w", err)
		}
		if err := runSystemctlCommand("daemon-reload"); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}
		if err := runSystemctlCommand("enable", serviceName); err != nil {
			return fmt.Errorf("failed to enable service: %w", err)
		}
		cmd.Printf("✅ Service enabled successfully\n")

		if startNow {
			if err := runSystemctlCommand("start", serviceName); err != nil {
				return fmt.Errorf("failed to start service: %w", err)
			}
			cmd.Printf("✅ Service started successfully\n")
		}

		cmd.Printf("\n🎉 mojilens service installed!\n")
		cmd.Printf("Service: %s\n", serviceName)
		cmd.Printf("Config: %s\n", configPath)
		cmd.Printf("Data: %s\n", cfg.DataDir)
		cmd.Printf("Listening on: %s:%d\n", cfg.Bind, cfg.Port)

		if !startNow {
			cmd.Printf("\nTo start the service: sudo systemctl start %s\n", serviceName)
		}
		cmd.Printf("To check status: sudo systemctl status %s\n", serviceName)
		cmd.Printf("To view logs: sudo journalctl -u %s -f\n", serviceName)
		return nil
	},
}

// prepareServiceConfig loads or bootstraps the config the service will run
// with, applies the install flags and saves it
func prepareServiceConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	port, _ := cmd.Flags().GetInt("port")

	var cfg *config.Config
	var err error
	if config.ConfigExists(configPath) {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cmd.Printf("✅ Loaded existing configuration\n")
	} else {
		cfg, err = config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap config: %w", err)
		}
		cmd.Printf("✅ Created new configuration at %s\n", configPath)
	}

	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startCmd represents the service start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the mojilens service",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSystemctlCommand("start", serviceName); err != nil {
			cmd.Printf("Error starting service: %v\n", err)
			os.Exit(1)
		}
		cmd.Printf("✅ mojilens service started\n")
	},
}

// stopCmd represents the service stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the mojilens service",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSystemctlCommand("stop", serviceName); err != nil {
			cmd.Printf("Error stopping service: %v\n", err)
			os.Exit(1)
		}
		cmd.Printf("✅ mojilens service stopped\n")
	},
}

// restartCmd represents the service restart command
var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the mojilens service",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSystemctlCommand("restart", serviceName); err != nil {
			cmd.Printf("Error restarting service: %v\n", err)
			os.Exit(1)
		}
		cmd.Printf("✅ mojilens service restarted\n")
	},
}

// statusCmd represents the service status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show mojilens service status",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSystemctlCommand("status", serviceName); err != nil {
			cmd.Printf("Error getting service status: %v\n", err)
			os.Exit(1)
		}
	},
}

// logsCmd represents the service logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show mojilens service logs",
	Long: `Show mojilens service logs using journalctl.

Examples:
  mojilens service logs
  mojilens service logs -f  # Follow logs`,
	Run: func(cmd *cobra.Command, args []string) {
		follow, _ := cmd.Flags().GetBool("follow")
		lines, _ := cmd.Flags().GetInt("lines")

		journalArgs := []string{"-u", serviceName}
		if follow {
			journalArgs = append(journalArgs, "-f")
		}
		if lines > 0 {
			journalArgs = append(journalArgs, fmt.Sprintf("-n%d", lines))
		}

		if err := runCommand("journalctl", journalArgs...); err != nil {
			cmd.Printf("Error getting service logs: %v\n", err)
			os.Exit(1)
		}
	},
}

// uninstallCmd represents the service uninstall command
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the mojilens service",
	Run: func(cmd *cobra.Command, args []string) {
		// Check if running as root
		if os.Geteuid() != 0 {
			cmd.Printf("Error: service uninstall requires root privileges\n")
			cmd.Printf("Run with: sudo mojilens service uninstall\n")
			os.Exit(1)
		}

		cmd.Printf("🗑️  Uninstalling mojilens service...\n")

		// Stop service first
		_ = runSystemctlCommand("stop", serviceName) // Ignore errors if already stopped

		// Disable service
		if err := runSystemctlCommand("disable", serviceName); err != nil {
			cmd.Printf("Warning: could not disable service: %v\n", err)
		}

		// Remove unit file
		if _, err := os.Stat(unitPath); err == nil {
			if err := os.Remove(unitPath); err != nil {
				cmd.Printf("Error removing unit file: %v\n", err)
				os.Exit(1)
			}
		}

		// Reload systemd
		if err := runSystemctlCommand("daemon-reload"); err != nil {
			cmd.Printf("Error reloading systemd: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("✅ mojilens service uninstalled\n")
		cmd.Printf("Note: Configuration and data files were not removed\n")
	},
}

func init() {
	rootCmd.AddCommand(serviceCmd)

	// Add subcommands
	serviceCmd.AddCommand(installServiceCmd)
	serviceCmd.AddCommand(startCmd)
	serviceCmd.AddCommand(stopCmd)
	serviceCmd.AddCommand(restartCmd)
	serviceCmd.AddCommand(statusCmd)
	serviceCmd.AddCommand(logsCmd)
	serviceCmd.AddCommand(uninstallCmd)

	// Install command flags
	installServiceCmd.Flags().String("data-dir", "/var/lib/mojilens", "Data directory for the service")
	installServiceCmd.Flags().String("user", "mojilens", "User to run the service as")
	installServiceCmd.Flags().Int("port", 8080, "Port for the service")
	installServiceCmd.Flags().Bool("start", true, "Start the service after installation")

	// Logs command flags
	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().IntP("lines", "n", 0, "Number of lines to show")
}

// renderSystemdUnit returns the unit file for running mojilens under systemd
func renderSystemdUnit(cfg *config.Config, configPath, user, binary string) string {
	return fmt.Sprintf(`[Unit]
Description=mojilens encoding analysis server
After=network-online.target
Wants=network-online.target

[Service]
User=%s
Group=%s
EnvironmentFile=-%s
ExecStart=%s up --config %s
Restart=on-failure
NoNewPrivileges=true
UMask=0077
ReadWritePaths=%s
ReadWritePaths=%s

[Install]
WantedBy=multi-user.target
`, user, user, filepath.Join(filepath.Dir(configPath), ".env"), binary, configPath, cfg.DataDir, filepath.Dir(configPath))
}

// createSystemdUnit writes the unit file for the running binary
func createSystemdUnit(cfg *config.Config, configPath, user string) error {
	binary, err := os.Executable()
	if err != nil {
		binary = "/usr/local/bin/mojilens"
	}
	return os.WriteFile(unitPath, []byte(renderSystemdUnit(cfg, configPath, user, binary)), 0600)
}

// runSystemctlCommand runs a systemctl command
func runSystemctlCommand(args ...string) error {
	return runCommand("systemctl", args...)
}

// runCommand runs a system command and returns its error
func runCommand(command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
