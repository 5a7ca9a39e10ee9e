package importcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunImport(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		keepComments bool
		contains     []string
		excludes     []string
	}{
		{
			name:     "heading and list",
			input:    "<h2>Plan</h2><ul><li>one</li><li>two</li></ul>",
			contains: []string{"## Plan", "- one", "- two"},
		},
		{
			name:     "script dropped",
			input:    "<p>Hi</p><script>alert(1)</script>",
			contains: []string{"Hi"},
			excludes: []string{"alert"},
		},
		{
			name:     "comments dropped by default",
			input:    "<p>Body</p><!-- hidden note -->",
			excludes: []string{"hidden note"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runImport(&importOptions{
				keepComments: tt.keepComments,
				stdin:        strings.NewReader(tt.input),
				stdout:       &out,
			})
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out.String(), s)
			}
			assert.True(t, strings.HasSuffix(out.String(), "\n"))
		})
	}
}

func TestRunImport_ToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.html")
	out := filepath.Join(dir, "page.md")
	require.NoError(t, os.WriteFile(in, []byte("<p><strong>Ship</strong> it</p>"), 0600))

	var stdout bytes.Buffer
	require.NoError(t, runImport(&importOptions{file: in, out: out, stdout: &stdout}))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "**Ship** it\n", string(data))
}

func TestRunImport_MissingFile(t *testing.T) {
	err := runImport(&importOptions{file: filepath.Join(t.TempDir(), "nope.html"), stdout: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
