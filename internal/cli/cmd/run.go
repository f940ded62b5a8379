package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/egdesk/taehwa/internal/bootstrap"
	"github.com/egdesk/taehwa/internal/infrastructure/scripting"
	"github.com/egdesk/taehwa/internal/logging"
)

var runKeepOpen bool

var runCmd = &cobra.Command{
	Use:   "run <script.js>",
	Short: "Run a JavaScript automation script",
	Long: `Launch Chromium and run a script against the tab commands.

Every command is a method of the global tabs object taking one arguments
object, under its own name and in camelCase (tabs.createTab, tabs.loadUrl,
tabs.waitForElement, ...). console.log() prints a line and sleep(ms) waits.
The completion value of the script is printed as JSON.

Example script:
  const nav = tabs.navigateInput({input: "example.com"});
  tabs.waitForElement({selector: "h1", tab_id: nav.tab_id});
  tabs.executeScript({code: "document.title"});`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addEngineFlags(runCmd)
	runCmd.Flags().BoolVar(&runKeepOpen, "keep-open", false, "keep the browser open after the script finishes")
}

func runScript(c *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path := args[0]
	out := c.OutOrStdout()

	opts := bootstrap.Options{
		NewHost:      applyEngineFlags(c, a),
		NoRestore:    true,
		NoInitialTab: true,
	}
	return runBrowser(a, opts, false, func(_ context.Context, rt *bootstrap.Runtime) []func(context.Context) error {
		runner := scripting.NewRunner(rt.Dispatcher(), scripting.Options{
			Timeout: time.Duration(a.Config.Automation.ScriptTimeoutMs) * time.Millisecond,
			Output:  out,
		})
		return []func(context.Context) error{func(ctx context.Context) error {
			res, err := runner.RunFile(ctx, path)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Info().
				Int("commands", res.Commands).
				Dur("elapsed", res.Elapsed).
				Msg("script finished")
			if res.Value != nil {
				data, err := json.MarshalIndent(res.Value, "", "  ")
				if err != nil {
					return fmt.Errorf("encode script result: %w", err)
				}
				fmt.Fprintln(out, string(data))
			}
			if runKeepOpen {
				<-ctx.Done()
			}
			return nil
		}}
	})
}
