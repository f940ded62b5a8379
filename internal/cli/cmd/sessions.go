package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/egdesk/taehwa/internal/cli/styles"
	"github.com/egdesk/taehwa/internal/domain/entity"
)

const (
	defaultSessionsLimit = 20
	// sessionLookupLimit bounds the suffix search of delete.
	sessionLookupLimit = 500
)

var (
	sessionsJSON  bool
	sessionsLimit int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved sessions",
	Long: `View and prune session snapshots.

The browser snapshots its open tabs while it runs and on exit. The latest
snapshot is restored by 'egdesk browse' when session.restore_on_startup is
set; 'egdesk browse --restore <id>' picks another one.`,
	RunE: runSessionsList,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	RunE:  runSessionsList,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a saved session",
	Long: `Delete one session snapshot.

You can use a short suffix of the session ID as long as it's unique.

Example:
  egdesk sessions delete 20261018_143022_ab12
  egdesk sessions delete ab12`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionsDelete,
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved session",
	Args:  cobra.NoArgs,
	RunE:  runSessionsClear,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsDeleteCmd, sessionsClearCmd)
	for _, c := range []*cobra.Command{sessionsCmd, sessionsListCmd} {
		c.Flags().BoolVar(&sessionsJSON, "json", false, "output as JSON")
		c.Flags().IntVar(&sessionsLimit, "limit", defaultSessionsLimit, "maximum sessions to show")
	}
}

func runSessionsList(c *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	sessions, err := a.ListSessionsUC.Execute(a.Ctx(), sessionsLimit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if sessionsJSON {
		enc := json.NewEncoder(c.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	renderer := styles.NewSessionsCLIRenderer(a.Theme)
	if len(sessions) == 0 {
		fmt.Fprintln(c.OutOrStdout(), renderer.RenderEmptyList())
		return nil
	}
	fmt.Fprintln(c.OutOrStdout(), renderer.RenderList(sessions, sessionsLimit))
	return nil
}

func runSessionsDelete(c *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewSessionsCLIRenderer(a.Theme)

	sessions, err := a.ListSessionsUC.Execute(a.Ctx(), sessionLookupLimit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	id, err := findSessionByIDOrSuffix(sessions, args[0])
	if err != nil {
		fmt.Fprintln(c.OutOrStdout(), renderer.RenderError(err))
		return err
	}

	if err := a.DeleteSessionUC.Execute(a.Ctx(), "", id); err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), renderer.RenderDeleted(id))
	return nil
}

func runSessionsClear(c *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	n, err := a.DeleteSessionUC.ClearAll(a.Ctx(), "")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), styles.NewSessionsCLIRenderer(a.Theme).RenderCleared(n))
	return nil
}

// findSessionByIDOrSuffix matches an exact id first, then a unique suffix.
func findSessionByIDOrSuffix(sessions []entity.SessionInfo, query string) (entity.SessionID, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("session id required")
	}

	var matches []entity.SessionID
	for _, s := range sessions {
		if string(s.SessionID) == query {
			return s.SessionID, nil
		}
		if strings.HasSuffix(string(s.SessionID), query) {
			matches = append(matches, s.SessionID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session not found: %s", query)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous session id %q matches %d sessions", query, len(matches))
	}
}
