package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/elevateui/internal/config"
)

var configOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		encoder := toml.NewEncoder(cmd.OutOrStdout())
		return encoder.Encode(getConfig())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configOpts.force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd, configPathCmd)

	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file")
}
