package cmd

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/egdesk/taehwa/internal/bootstrap"
	"github.com/egdesk/taehwa/internal/cli"
	"github.com/egdesk/taehwa/internal/cli/console"
	"github.com/egdesk/taehwa/internal/config"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/infrastructure/persistence/sqlite"
)

const consoleEventDepth = 256

var (
	browseEngine    string
	browseHeadless  bool
	browseRestore   string
	browseNoRestore bool
	browseNoConsole bool
	browseInstall   bool
	browseNoPersist bool
)

var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Open the browser with its command console",
	Long: `Launch Chromium and the command console.

If a URL is provided, navigate to it. Otherwise the previous session is
restored (when session.restore_on_startup is set) or the homepage opens.

Type an address or search terms to navigate the active tab, or /help for
the console commands.

Examples:
  egdesk browse                      # Restore the last session
  egdesk browse example.com          # Open a URL
  egdesk browse --restore 20261018_143022_ab12
  egdesk browse --no-console         # Window only; stop with Ctrl+C
  egdesk browse --no-persist         # Keep sessions and settings in memory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	addEngineFlags(browseCmd)
	browseCmd.Flags().StringVar(&browseRestore, "restore", "", "restore this session id instead of the latest")
	browseCmd.Flags().BoolVar(&browseNoRestore, "no-restore", false, "do not restore the previous session")
	browseCmd.Flags().BoolVar(&browseNoConsole, "no-console", false, "run without the terminal console")
	browseCmd.Flags().BoolVar(&browseNoPersist, "no-persist", false, "keep sessions and settings in memory only")
}

func addEngineFlags(c *cobra.Command) {
	c.Flags().StringVar(&browseEngine, "engine", "", "browser engine: cdp or playwright (default from config)")
	c.Flags().BoolVar(&browseHeadless, "headless", false, "run Chromium without a window")
	c.Flags().BoolVar(&browseInstall, "install", false, "let the playwright engine download its browser")
}

// applyEngineFlags overrides the browser section with command-line flags.
func applyEngineFlags(c *cobra.Command, a *cli.App) bootstrap.HostFactory {
	if browseEngine != "" {
		a.Config.Browser.Engine = config.Engine(browseEngine)
	}
	if c.Flags().Changed("headless") {
		a.Config.Browser.Headless = browseHeadless
	}
	return bootstrap.EngineHost(browseInstall)
}

func runBrowse(c *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	opts := bootstrap.Options{
		NewHost:          applyEngineFlags(c, a),
		RestoreSessionID: entity.SessionID(browseRestore),
		NoRestore:        browseNoRestore,
	}
	if len(args) > 0 {
		opts.InitialURL = args[0]
	}
	if browseNoPersist {
		a.Config.Database.Path = sqlite.MemoryPath
		opts.NoRestore = true
	}

	if browseNoConsole {
		return runBrowser(a, opts, false, nil)
	}
	return runBrowser(a, opts, true, func(_ context.Context, rt *bootstrap.Runtime) []func(context.Context) error {
		return []func(context.Context) error{consoleFrontend(a, rt)}
	})
}

func consoleFrontend(a *cli.App, rt *bootstrap.Runtime) func(context.Context) error {
	return func(ctx context.Context) error {
		events, cancel := rt.Events(consoleEventDepth)
		defer cancel()

		m := console.New(ctx, console.Config{
			Theme:      a.Theme,
			Dispatcher: rt.Dispatcher(),
			Events:     events,
			MaxLines:   a.Config.Console.MaxLogLines,
		})
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
}
