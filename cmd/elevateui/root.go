// Package main provides the CLI entrypoint for elevateui.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/elevateui/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "elevateui",
	Short: "Alert containers and page helpers for the Elevate site",
	Long: `elevateui drives the transient alerts and page helpers of the Elevate
learning site from the terminal.

It shows alerts in named containers with auto-dismiss, renders their markup,
and formats file sizes, dates, navigation and bar charts the way the pages do.

Running elevateui without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "elevateui %s\n", rootCmd.Version)
	},
}

// Execute adds all child commands to the root command and runs it until it
// finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/elevateui/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// configPath returns the effective config file path.
func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}
