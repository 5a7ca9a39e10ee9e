// Package importcmd provides the import command, which converts legacy HTML
// bodies to wiki markdown.
package importcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/pkg/md"
)

type importOptions struct {
	file         string
	out          string
	keepComments bool
	stdin        io.Reader
	stdout       io.Writer
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import [file.html]",
		Short: "Convert an HTML body to wiki markdown",
		Long: `Convert a legacy HTML page body to wiki markdown so it can be edited,
rendered and processed like any other text.

Script and style elements are dropped. HTML comments are dropped unless
--keep-comments is set. Reads from stdin when no file is given.`,
		Example: `  # Convert a file and print the result
  twk import old-page.html

  # Write the result to a file
  twk import old-page.html --out page.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = cmdutil.InputArg(args)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runImport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "write markdown to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.keepComments, "keep-comments", false, "keep HTML comments")

	return cmd
}

func runImport(opts *importOptions) error {
	html, err := cmdutil.ReadInput(opts.file, opts.stdin)
	if err != nil {
		return err
	}

	markdown, err := md.FromHTMLWithOptions(html, md.ImportOptions{KeepComments: opts.keepComments})
	if err != nil {
		return fmt.Errorf("failed to convert HTML: %w", err)
	}
	markdown = strings.TrimRight(markdown, "\n") + "\n"

	if opts.out != "" {
		if err := os.WriteFile(opts.out, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	_, err = io.WriteString(opts.stdout, markdown)
	return err
}
