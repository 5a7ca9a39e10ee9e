package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/config"
	"github.com/open-cli-collective/taskwiki-cli/internal/store"
	"github.com/open-cli-collective/taskwiki-cli/internal/view"
)

type initOptions struct {
	users   []string
	noColor bool
	stdout  io.Writer
}

// NewCmdInit creates the db init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database schema and seed users",
		Long: `Create the sqlite schema and the default column if they do not exist yet,
then add one user per --user flag.

A user is given as "Display Name" or "Display Name <email>".`,
		Example: `  # Create the schema
  twk db init

  # Create the schema and two users
  twk db init --user "Ana Lima <ana@example.com>" --user Bo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runInit(cmd.Context(), opts, nil)
		},
	}

	cmd.Flags().StringArrayVar(&opts.users, "user", nil, `user to create, "Name" or "Name <email>" (repeatable)`)

	return cmd
}

func runInit(ctx context.Context, opts *initOptions, s *store.Store) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if s == nil {
		cfg, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}
		if cfg.Backend != config.BackendSQLite {
			return errors.New("db init only applies to the sqlite backend")
		}
		b, err := cmdutil.OpenBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer b.Close()
		s = b.Store
	} else if err := s.Migrate(ctx); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	renderer.Success("Database ready")

	for _, entry := range opts.users {
		name, email, err := parseUser(entry)
		if err != nil {
			return err
		}
		u, err := s.CreateUser(ctx, name, email)
		if err != nil {
			return err
		}
		renderer.Success(fmt.Sprintf("Created user #%d %s", u.ID, u.DisplayName))
	}
	return nil
}

// parseUser splits "Name" or "Name <email>".
func parseUser(entry string) (string, string, error) {
	entry = strings.TrimSpace(entry)
	if !strings.Contains(entry, "<") {
		if entry == "" {
			return "", "", errors.New("user name cannot be empty")
		}
		return entry, "", nil
	}

	addr, err := mail.ParseAddress(entry)
	if err != nil {
		return "", "", fmt.Errorf("invalid user %q: %w", entry, err)
	}
	if addr.Name == "" {
		return "", "", fmt.Errorf("invalid user %q: missing display name", entry)
	}
	return addr.Name, addr.Address, nil
}
