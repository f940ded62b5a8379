// Package cmd provides Cobra CLI commands for egdesk.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/egdesk/taehwa/internal/cli"
	"github.com/egdesk/taehwa/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "egdesk",
		Short: "Tabbed Chromium shell with a command console and automation surface",
		Long: `EG-Desk - a tabbed browser shell driven from the terminal.

Every tab is a Chromium page surface. Only the active one is attached to
the window, and its bounds follow the window size and the docked console.

Features:
  - Tabs that keep their own history, loading state and title
  - A command console with free-text navigation and !bang search shortcuts
  - The same commands exposed to LLM agents over MCP (stdio)
  - JavaScript automation scripts against the command surface
  - Session snapshots with restore on startup

Use 'egdesk browse' to open the browser with its console, or explore the
subcommands for automation and session management.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/egdesk/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
