// Package extract provides commands that list the mentions, tags and
// commands found in a text without executing anything.
package extract

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/view"
)

// extractOptions are shared by the extract subcommands.
type extractOptions struct {
	file    string
	output  string
	noColor bool
	stdin   io.Reader
	stdout  io.Writer
}

// NewCmdExtract creates the extract command.
func NewCmdExtract() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "List mentions, tags or commands in a text",
		Long: `List the @mentions, #tags or /commands found in a text.

Extraction never touches the backend.`,
	}

	cmd.AddCommand(newCmdMentions())
	cmd.AddCommand(newCmdTags())
	cmd.AddCommand(newCmdCommands())

	return cmd
}

// bind fills the shared options from the command before it runs.
func (o *extractOptions) bind(cmd *cobra.Command, args []string) {
	o.file = cmdutil.InputArg(args)
	o.output, _ = cmd.Flags().GetString("output")
	o.noColor, _ = cmd.Flags().GetBool("no-color")
	o.stdin = cmd.InOrStdin()
	o.stdout = cmd.OutOrStdout()
}

// prepare validates the output format and reads the input text.
func (o *extractOptions) prepare() (string, *view.Renderer, error) {
	if err := view.ValidateFormat(o.output); err != nil {
		return "", nil, err
	}

	text, err := cmdutil.ReadInput(o.file, o.stdin)
	if err != nil {
		return "", nil, err
	}

	renderer := view.NewRenderer(view.Format(o.output), o.noColor)
	if o.stdout != nil {
		renderer.SetWriter(o.stdout)
	}
	return text, renderer, nil
}
