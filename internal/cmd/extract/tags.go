package extract

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/view"
	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

type tagsOptions struct {
	extractOptions
	every bool
}

func newCmdTags() *cobra.Command {
	opts := &tagsOptions{}

	cmd := &cobra.Command{
		Use:   "tags [file]",
		Short: "List referenced tags",
		Long: `List the #tags referenced in a text, lower-cased and de-duplicated.

With --every, each occurrence is listed with its byte offset.`,
		Example: `  # Unique tags
  twk extract tags notes.md

  # Every occurrence with its offset
  twk extract tags notes.md --every`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bind(cmd, args)
			return runTags(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.every, "every", false, "list every occurrence with its position")

	return cmd
}

func runTags(opts *tagsOptions) error {
	text, renderer, err := opts.prepare()
	if err != nil {
		return err
	}

	if opts.every {
		return renderTagTokens(renderer, smarttext.ScanTags(text))
	}

	names := smarttext.ExtractTagRefs(text)
	if renderer.Format() == view.FormatJSON {
		if names == nil {
			names = []string{}
		}
		return renderer.RenderJSON(names)
	}
	if len(names) == 0 && renderer.Format() == view.FormatTable {
		renderer.Info("No tags found")
		return nil
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name})
	}
	renderer.RenderTable([]string{"TAG"}, rows)
	return nil
}

func renderTagTokens(renderer *view.Renderer, tokens []smarttext.TagToken) error {
	if renderer.Format() == view.FormatJSON {
		if tokens == nil {
			tokens = []smarttext.TagToken{}
		}
		return renderer.RenderJSON(tokens)
	}
	if len(tokens) == 0 && renderer.Format() == view.FormatTable {
		renderer.Info("No tags found")
		return nil
	}

	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		rows = append(rows, []string{tok.Name, strconv.Itoa(tok.Position)})
	}
	renderer.RenderTable([]string{"TAG", "POSITION"}, rows)
	return nil
}
