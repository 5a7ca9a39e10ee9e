package db

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/view"
	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

type usersOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
}

// NewCmdUsers creates the db users command.
func NewCmdUsers() *cobra.Command {
	opts := &usersOptions{}

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Long:  `List the users that can be mentioned and assigned.`,
		Example: `  # List users
  twk db users

  # As JSON
  twk db users -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runUsers(cmd.Context(), opts, nil)
		},
	}

	return cmd
}

func runUsers(ctx context.Context, opts *usersOptions, backend *cmdutil.Backend) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	if backend == nil {
		_, b, err := cmdutil.Connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()
		backend = b
	}

	users, err := listUsers(ctx, backend)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(users)
	}
	if len(users) == 0 && renderer.Format() == view.FormatTable {
		renderer.Info("No users found. Add some with: twk db init --user NAME")
		return nil
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.DisplayName, u.Email})
	}
	renderer.RenderTable([]string{"ID", "NAME", "EMAIL"}, rows)
	return nil
}

// listUsers reads the directory from whichever backend is open.
func listUsers(ctx context.Context, backend *cmdutil.Backend) ([]smarttext.User, error) {
	users := []smarttext.User{}

	if backend.Store != nil {
		stored, err := backend.Store.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range stored {
			users = append(users, smarttext.User{ID: u.ID, DisplayName: u.DisplayName, Email: u.Email})
		}
		return users, nil
	}

	remote, err := backend.Client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range remote {
		users = append(users, smarttext.User{ID: u.ID, DisplayName: u.DisplayName, Email: u.Email})
	}
	return users, nil
}
