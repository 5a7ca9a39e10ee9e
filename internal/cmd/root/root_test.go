package root

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"init", "config", "render", "extract", "process", "mentions", "import", "db", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestNewCmdRoot_GlobalFlags(t *testing.T) {
	cmd := NewCmdRoot()

	for _, name := range []string{"config", "output", "no-color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "table", cmd.PersistentFlags().Lookup("output").DefValue)
}

func TestRoot_RenderFromStdin(t *testing.T) {
	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("Hello **world**"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"render"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "<p>Hello <strong>world</strong></p>\n", out.String())
}

func TestRoot_ConfigFlag(t *testing.T) {
	t.Cleanup(func() { cmdutil.SetConfigPath("") })
	path := filepath.Join(t.TempDir(), "custom.yml")

	cmd := NewCmdRoot()
	cmd.SetIn(strings.NewReader("#one"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "extract", "tags"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, path, cmdutil.ConfigPath())
}
