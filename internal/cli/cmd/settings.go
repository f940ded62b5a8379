package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write runtime settings",
	Long: `Runtime settings are small key/value pairs stored in the database.
Agents read and write them with the get_setting and set_setting commands.`,
	RunE: runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		value, found, err := a.SettingsUC.Get(a.Ctx(), args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("setting not found: %s", args[0])
		}
		fmt.Fprintln(c.OutOrStdout(), value)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		return a.SettingsUC.Set(a.Ctx(), args[0], args[1])
	},
}

var settingsDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Remove a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		return a.SettingsUC.Delete(a.Ctx(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsDeleteCmd)
}

func runSettingsList(c *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	settings, err := a.SettingsUC.List(a.Ctx())
	if err != nil {
		return err
	}
	if len(settings) == 0 {
		fmt.Fprintln(c.OutOrStdout(), a.Theme.Subtle.Render("No settings stored."))
		return nil
	}

	w := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tVALUE\tUPDATED")
	for _, s := range settings {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Value, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
