package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortTOMLSections(t *testing.T) {
	in := "[zeta]\n  a = 1\n\n[alpha]\n  b = 2\n[alpha.inner]\n  c = 3\n"
	got := sortTOMLSections(in)
	assert.Equal(t, "[alpha]\n  b = 2\n\n[alpha.inner]\n  c = 3\n\n[zeta]\n  a = 1\n", got)
}

func TestWriteConfigOrdered_Stable(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.toml")
	second := filepath.Join(dir, "b.toml")

	require.NoError(t, WriteConfigOrdered(DefaultConfig(), first))
	require.NoError(t, WriteConfigOrdered(DefaultConfig(), second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Less(t, strings.Index(string(a), "[automation]"), strings.Index(string(a), "[browser]"))
}

func TestWriteConfigOrdered_Nil(t *testing.T) {
	require.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "x.toml")))
}

func TestEncodeTOML_ContainsSections(t *testing.T) {
	data, err := EncodeTOML(DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[layout]")
	assert.Regexp(t, `engine = ["']cdp["']`, string(data))
}
