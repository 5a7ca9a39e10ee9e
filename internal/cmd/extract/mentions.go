package extract

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/view"
	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

func newCmdMentions() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "mentions [file]",
		Short: "List mentioned users",
		Long:  `List the users mentioned with @[Name](user:ID), once each, in order of first mention.`,
		Example: `  # List mentions in a file
  twk extract mentions notes.md

  # As JSON
  echo "Ping @[Ana](user:7)" | twk extract mentions -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bind(cmd, args)
			return runMentions(opts)
		},
	}

	return cmd
}

func runMentions(opts *extractOptions) error {
	text, renderer, err := opts.prepare()
	if err != nil {
		return err
	}

	tokens := smarttext.ExtractMentionTokens(text)
	if renderer.Format() == view.FormatJSON {
		if tokens == nil {
			tokens = []smarttext.MentionToken{}
		}
		return renderer.RenderJSON(tokens)
	}

	if len(tokens) == 0 && renderer.Format() == view.FormatTable {
		renderer.Info("No mentions found")
		return nil
	}

	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		rows = append(rows, []string{strconv.FormatInt(tok.UserID, 10), tok.DisplayName})
	}
	renderer.RenderTable([]string{"ID", "NAME"}, rows)
	return nil
}
