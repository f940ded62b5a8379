package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

// execute runs the root command against an isolated config and data dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("ENV", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configFile = ""
		app = nil
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestFindSessionByIDOrSuffix(t *testing.T) {
	sessions := []entity.SessionInfo{
		{SessionID: "20261018_143022_ab12"},
		{SessionID: "20261017_090000_cd12"},
		{SessionID: "20261016_120000_ef34"},
	}

	tests := []struct {
		name    string
		query   string
		want    entity.SessionID
		wantErr string
	}{
		{name: "exact", query: "20261017_090000_cd12", want: "20261017_090000_cd12"},
		{name: "unique suffix", query: "ef34", want: "20261016_120000_ef34"},
		{name: "ambiguous suffix", query: "12", wantErr: "ambiguous"},
		{name: "unknown", query: "zz99", wantErr: "not found"},
		{name: "blank", query: "  ", wantErr: "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findSessionByIDOrSuffix(sessions, tt.query)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToolsCommand_ListsCommands(t *testing.T) {
	out, err := execute(t, "tools")
	require.NoError(t, err)
	assert.Contains(t, out, `"create_tab"`)
	assert.Contains(t, out, `"navigate_input"`)
	assert.Contains(t, out, `"set_setting"`)
	assert.Contains(t, out, `"input_schema"`)
}

func TestSessionsList_Empty(t *testing.T) {
	out, err := execute(t, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved sessions found.")
}

func TestConfigShow_PrintsTOML(t *testing.T) {
	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[browser]")
	assert.Contains(t, out, "[session]")
}

func TestConfigPath_UsesFlag(t *testing.T) {
	file := filepath.Join(t.TempDir(), "custom.toml")
	out, err := execute(t, "--config", file, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, file)
	assert.FileExists(t, file)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "egdesk")
	assert.Contains(t, out, "github.com/egdesk/taehwa")
}
