package mentions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/view"
	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

type syncOptions struct {
	file     string
	entity   string
	entityID int64
	actor    int64
	output   string
	noColor  bool
	verbose  bool
	stdin    io.Reader
	stdout   io.Writer
}

// NewCmdSync creates the mentions sync command.
func NewCmdSync() *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync [file]",
		Short: "Replace an entity's mentions with those in a text",
		Long: `Replace the stored mentions of a page, task or comment with the users
mentioned in a text. Mentions of users that do not exist are dropped.`,
		Example: `  # Sync the mentions of task 40
  twk mentions sync description.md --entity task --entity-id 40`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = cmdutil.InputArg(args)
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runSync(cmd.Context(), opts, nil, nil)
		},
	}

	cmd.Flags().StringVar(&opts.entity, "entity", "", "entity type: page, task, comment (required)")
	cmd.Flags().Int64Var(&opts.entityID, "entity-id", 0, "entity id (required)")
	cmd.Flags().Int64Var(&opts.actor, "actor", 0, "acting user id (default: actor_id from config)")
	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("entity-id")

	return cmd
}

func runSync(ctx context.Context, opts *syncOptions, backend smarttext.Collaborator, logger smarttext.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	entity, err := smarttext.ParseContext(opts.entity)
	if err != nil {
		return err
	}
	if opts.entityID <= 0 {
		return errors.New("--entity-id must be a positive id")
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
		logger = cmdutil.NewLogger(cfg, "twk.mentions", opts.verbose)
		if opts.actor == 0 {
			opts.actor = cfg.ActorID
		}
	}

	syncer := smarttext.NewMentionSyncer(backend, backend, smarttext.WithLogger(logger))
	ids, err := syncer.Sync(ctx, text, entity, opts.entityID, opts.actor)
	if err != nil {
		return fmt.Errorf("failed to sync mentions: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	switch renderer.Format() {
	case view.FormatJSON:
		if ids == nil {
			ids = []int64{}
		}
		return renderer.RenderJSON(map[string]any{
			"entity":    entity,
			"entity_id": opts.entityID,
			"user_ids":  ids,
		})
	case view.FormatPlain:
		for _, id := range ids {
			renderer.RenderText(strconv.FormatInt(id, 10))
		}
	default:
		renderer.Success(fmt.Sprintf("Synced %d mention(s) for %s #%d", len(ids), entity, opts.entityID))
	}
	return nil
}
