package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tab commands as LLM tool definitions (JSON)",
	Long: `Print every tab command with its description and the JSON schema of
its arguments. The same definitions are served by 'egdesk mcp'.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		data, err := a.Catalog().ToolsJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
