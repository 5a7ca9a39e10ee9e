// Package render provides the render command.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/pkg/md"
)

type renderOptions struct {
	file   string
	engine string
	stdin  io.Reader
	stdout io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render wiki markdown to HTML",
		Long: `Render wiki markdown to HTML.

The builtin engine escapes all raw HTML and only allows http, https and
mailto links. The commonmark engine uses a full CommonMark parser with the
same link restrictions and is meant for trusted long-form documents.

Reads from stdin when no file is given.`,
		Example: `  # Render a file
  twk render notes.md

  # Render from stdin
  echo "**bold**" | twk render

  # Use the CommonMark engine
  twk render README.md --engine commonmark`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = cmdutil.InputArg(args)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runRender(opts)
		},
	}

	cmd.Flags().StringVar(&opts.engine, "engine", string(md.EngineBuiltin), "markdown engine: builtin, commonmark")

	return cmd
}

func runRender(opts *renderOptions) error {
	engine, err := md.ParseEngine(opts.engine)
	if err != nil {
		return err
	}

	input, err := cmdutil.ReadInput(opts.file, opts.stdin)
	if err != nil {
		return err
	}

	html, err := md.RenderWith(engine, input)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = fmt.Fprintln(opts.stdout, strings.TrimRight(html, "\n"))
	return err
}
