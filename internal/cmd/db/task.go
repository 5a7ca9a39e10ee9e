package db

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/view"
)

type taskOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
}

// taskView is a task as shown by db task, whichever backend it came from.
type taskView struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Column  int64    `json:"column_id"`
	OwnerID *int64   `json:"owner_id,omitempty"`
	DueDate string   `json:"due_date,omitempty"`
	Tags    []string `json:"tags"`
}

// NewCmdTask creates the db task command.
func NewCmdTask() *cobra.Command {
	opts := &taskOptions{}

	cmd := &cobra.Command{
		Use:   "task <task-id>",
		Short: "Show a task",
		Long:  `Show a task with its owner, due date and tags.`,
		Example: `  # Show task 40
  twk db task 40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runTask(cmd.Context(), args[0], opts, nil)
		},
	}

	return cmd
}

func runTask(ctx context.Context, rawID string, opts *taskOptions, backend *cmdutil.Backend) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid task id %q", rawID)
	}

	if backend == nil {
		_, b, err := cmdutil.Connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()
		backend = b
	}

	task, err := loadTask(ctx, backend, id)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(task)
	}

	owner := "-"
	if task.OwnerID != nil {
		owner = strconv.FormatInt(*task.OwnerID, 10)
	}
	due := task.DueDate
	if due == "" {
		due = "-"
	}
	tags := "-"
	if len(task.Tags) > 0 {
		tags = "#" + strings.Join(task.Tags, " #")
	}

	renderer.RenderKeyValue("ID", strconv.FormatInt(task.ID, 10))
	renderer.RenderKeyValue("Title", task.Title)
	renderer.RenderKeyValue("Column", strconv.FormatInt(task.Column, 10))
	renderer.RenderKeyValue("Owner", owner)
	renderer.RenderKeyValue("Due", due)
	renderer.RenderKeyValue("Tags", tags)
	return nil
}

func loadTask(ctx context.Context, backend *cmdutil.Backend, id int64) (*taskView, error) {
	if backend.Store != nil {
		t, err := backend.Store.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		v := &taskView{ID: t.ID, Title: t.Title, Column: t.ColumnID, OwnerID: t.OwnerID, Tags: t.Tags}
		if t.DueDate != nil {
			v.DueDate = t.DueDate.UTC().Format(time.DateOnly)
		}
		if v.Tags == nil {
			v.Tags = []string{}
		}
		return v, nil
	}

	t, err := backend.Client.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	v := &taskView{ID: t.ID, Title: t.Title, Column: t.ColumnID, OwnerID: t.OwnerID, DueDate: t.DueDate, Tags: t.Tags}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return v, nil
}
