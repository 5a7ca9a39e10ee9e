// Package process provides the process command, which runs the slash
// commands of a text against the configured backend.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/view"
	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

type processOptions struct {
	file         string
	context      string
	pageID       int64
	taskID       int64
	actor        int64
	syncMentions bool
	entityID     int64
	output       string
	noColor      bool
	verbose      bool
	stdin        io.Reader
	stdout       io.Writer
}

// processOutput is the JSON document printed by process.
type processOutput struct {
	smarttext.Outcome
	Mentions []int64 `json:"mentions,omitempty"`
}

// NewCmdProcess creates the process command.
func NewCmdProcess() *cobra.Command {
	opts := &processOptions{}

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Run the slash commands in a text",
		Long: `Run the /commands of a text as if it had just been saved, then print the
text with the command lines removed followed by one result per command.

Pages accept /task. Tasks accept /due, /assign and /tag, which need --task-id.
Comments accept no commands.

A failing command is reported and the remaining commands still run.`,
		Example: `  # Create tasks from a page and link them to it
  twk process page.md --context page --page-id 12

  # Update a task from its description
  echo "/due 2026-11-02" | twk process --context task --task-id 40

  # Also store the mentions of the cleaned text
  twk process page.md --context page --page-id 12 --sync-mentions`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = cmdutil.InputArg(args)
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runProcess(cmd.Context(), opts, nil, nil)
		},
	}

	cmd.Flags().StringVar(&opts.context, "context", string(smarttext.ContextTask), "entity context: page, task, comment")
	cmd.Flags().Int64Var(&opts.pageID, "page-id", 0, "id of the page being saved")
	cmd.Flags().Int64Var(&opts.taskID, "task-id", 0, "id of the task being saved")
	cmd.Flags().Int64Var(&opts.actor, "actor", 0, "acting user id (default: actor_id from config)")
	cmd.Flags().BoolVar(&opts.syncMentions, "sync-mentions", false, "store the mentions of the cleaned text")
	cmd.Flags().Int64Var(&opts.entityID, "entity-id", 0, "entity id for --sync-mentions (default: --page-id or --task-id)")

	return cmd
}

// runProcess executes the commands of the input. backend and logger are
// injected by tests; when backend is nil the configured one is opened.
func runProcess(ctx context.Context, opts *processOptions, backend smarttext.Collaborator, logger smarttext.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	entity, err := smarttext.ParseContext(opts.context)
	if err != nil {
		return err
	}
	entityID, err := mentionEntityID(opts, entity)
	if err != nil {
		return err
	}

	text, err := cmdutil.ReadInput(opts.file, opts.stdin)
	if err != nil {
		return err
	}

	if backend == nil {
		cfg, b, err := cmdutil.Connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		backend = b
		logger = cmdutil.NewLogger(cfg, "twk.process", opts.verbose)
		if opts.actor == 0 {
			opts.actor = cfg.ActorID
		}
	}

	executor := smarttext.NewExecutor(backend, smarttext.WithLogger(logger))
	outcome, err := executor.Process(ctx, text, entity, opts.actor, params(opts))
	if err != nil {
		return fmt.Errorf("failed to process commands: %w", err)
	}

	result := processOutput{Outcome: outcome}
	if opts.syncMentions {
		syncer := smarttext.NewMentionSyncer(backend, backend, smarttext.WithLogger(logger))
		result.Mentions, err = syncer.Sync(ctx, outcome.CleanedText, entity, entityID, opts.actor)
		if err != nil {
			return fmt.Errorf("failed to sync mentions: %w", err)
		}
		if result.Mentions == nil {
			result.Mentions = []int64{}
		}
	}

	return render(opts, result)
}

func render(opts *processOptions, result processOutput) error {
	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(result)
	}

	renderer.RenderText(result.CleanedText)
	renderer.RenderText("")
	if err := renderer.RenderResults(result.Outcome); err != nil {
		return err
	}
	if opts.syncMentions && renderer.Format() == view.FormatTable {
		renderer.Info(fmt.Sprintf("Synced %d mention(s)", len(result.Mentions)))
	}
	return nil
}

func params(opts *processOptions) smarttext.Params {
	var p smarttext.Params
	if opts.pageID > 0 {
		p.PageID = &opts.pageID
	}
	if opts.taskID > 0 {
		p.TaskID = &opts.taskID
	}
	return p
}

// mentionEntityID picks the entity the mentions are stored under.
func mentionEntityID(opts *processOptions, entity smarttext.Context) (int64, error) {
	if !opts.syncMentions {
		return 0, nil
	}
	if opts.entityID > 0 {
		return opts.entityID, nil
	}
	switch {
	case entity == smarttext.ContextPage && opts.pageID > 0:
		return opts.pageID, nil
	case entity == smarttext.ContextTask && opts.taskID > 0:
		return opts.taskID, nil
	}
	return 0, errors.New("--sync-mentions needs --entity-id (or --page-id/--task-id matching --context)")
}
