package extract

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/view"
	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

type commandsOptions struct {
	extractOptions
	context string
	all     bool
}

func newCmdCommands() *cobra.Command {
	opts := &commandsOptions{}

	cmd := &cobra.Command{
		Use:   "commands [file]",
		Short: "List slash commands",
		Long: `List the /commands a text would run when saved in the given context.

Lines whose verb is not allowed in the context are ordinary text and are not
listed. Use --all to list every well-formed command line regardless of context.`,
		Example: `  # Commands that run when saving a page
  twk extract commands page.md --context page

  # Every command line
  twk extract commands page.md --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bind(cmd, args)
			return runCommands(opts)
		},
	}

	cmd.Flags().StringVar(&opts.context, "context", string(smarttext.ContextTask), "entity context: page, task, comment")
	cmd.Flags().BoolVar(&opts.all, "all", false, "ignore the context allow-list")

	return cmd
}

func runCommands(opts *commandsOptions) error {
	ctx, err := smarttext.ParseContext(opts.context)
	if err != nil {
		return err
	}

	text, renderer, err := opts.prepare()
	if err != nil {
		return err
	}

	var tokens []smarttext.CommandToken
	if opts.all {
		tokens = smarttext.ExtractAllCommands(text)
	} else {
		tokens = smarttext.ExtractCommands(text, ctx)
	}

	if renderer.Format() == view.FormatJSON {
		if tokens == nil {
			tokens = []smarttext.CommandToken{}
		}
		return renderer.RenderJSON(tokens)
	}
	if len(tokens) == 0 && renderer.Format() == view.FormatTable {
		renderer.Info("No commands found")
		return nil
	}

	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		rows = append(rows, []string{strconv.Itoa(tok.Line), tok.Verb, view.Truncate(tok.Args, 60)})
	}
	renderer.RenderTable([]string{"LINE", "VERB", "ARGS"}, rows)
	return nil
}
