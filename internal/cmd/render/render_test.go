package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRender(t *testing.T) {
	tests := []struct {
		name     string
		engine   string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "builtin heading and bold",
			input:    "# Title\n\nSome **bold** text",
			contains: []string{"<h1>Title</h1>", "<strong>bold</strong>"},
		},
		{
			name:     "builtin escapes raw html",
			engine:   "builtin",
			input:    "<script>alert(1)</script>",
			contains: []string{"&lt;script&gt;"},
			excludes: []string{"<script>"},
		},
		{
			name:     "commonmark table",
			engine:   "commonmark",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "commonmark drops javascript links",
			engine:   "commonmark",
			input:    "[x](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runRender(&renderOptions{
				engine: tt.engine,
				stdin:  strings.NewReader(tt.input),
				stdout: &out,
			})
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestRunRender_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")
	require.NoError(t, os.WriteFile(path, []byte("- one\n- two"), 0600))

	var out bytes.Buffer
	err := runRender(&renderOptions{file: path, stdout: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "<ul>")
	assert.Contains(t, out.String(), "<li>two</li>")
}

func TestRunRender_InvalidEngine(t *testing.T) {
	err := runRender(&renderOptions{engine: "pandoc", stdin: strings.NewReader(""), stdout: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown markdown engine")
}

func TestNewCmdRender(t *testing.T) {
	cmd := NewCmdRender()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("*hi*"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "<em>hi</em>")

	flag := cmd.Flags().Lookup("engine")
	require.NotNil(t, flag)
	assert.Equal(t, "builtin", flag.DefValue)
}
