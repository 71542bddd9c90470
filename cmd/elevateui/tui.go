package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/elevateui/internal/alert"
	"github.com/jmylchreest/elevateui/internal/tui"
)

var tuiOpts struct {
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive alert page",
	Long: `Launch the interactive terminal page for showing and dismissing alerts.

Each container is drawn as a box. Alerts auto-dismiss after the configured
duration unless persistent mode is on. Changes to the config file are picked
up while the TUI runs.

Key bindings:
  i/s/w/d     Show an info/success/warning/danger alert
  x           Dismiss the newest alert in the focused container
  X           Clear the focused container
  p           Toggle persistent mode for new alerts
  tab         Focus the next container
  c/C         Copy the focused container as JSON/YAML
  ?           Toggle help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()

	watchPath := configPath()
	if tuiOpts.noWatch {
		watchPath = ""
	}

	mgr := alert.NewManager(
		alert.WithLogger(logger),
		alert.WithSettings(c.AlertSettings()),
	)
	defer mgr.Close()

	return tui.Run(cmd.Context(), tui.RunOptions{
		Config:     c,
		Manager:    mgr,
		ConfigPath: watchPath,
		Logger:     logger,
	})
}
