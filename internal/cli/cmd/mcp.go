package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/egdesk/taehwa/internal/bootstrap"
	"github.com/egdesk/taehwa/internal/infrastructure/mcp"
)

var mcpURL string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tab commands to an agent over MCP (stdio)",
	Long: `Launch Chromium and serve every tab command as an MCP tool on
stdin/stdout. Logs go to stderr and the session log file.

Register it with an MCP client, for example:
  {"command": "egdesk", "args": ["mcp", "--headless"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	addEngineFlags(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpURL, "url", "", "address to open before serving")
}

func runMCP(c *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	opts := bootstrap.Options{
		NewHost:    applyEngineFlags(c, a),
		InitialURL: mcpURL,
		NoRestore:  true,
	}
	return runBrowser(a, opts, false, func(ctx context.Context, rt *bootstrap.Runtime) []func(context.Context) error {
		server := mcp.NewServer(ctx, rt.Dispatcher(), a.BuildInfo.Version)
		return []func(context.Context) error{server.Serve}
	})
}
