package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egdesk/taehwa/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildInfo.String())
		fmt.Fprintln(cmd.OutOrStdout(), build.RepoURL())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
