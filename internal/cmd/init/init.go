// Package init provides the init command for twk.
package init

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/api"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/config"
)

type initOptions struct {
	backend        string
	database       string
	url            string
	email          string
	actor          int64
	noVerify       bool
	nonInteractive bool
	configPath     string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize twk configuration",
		Long: `Initialize twk with a backend for command execution.

Two backends are supported:
  sqlite  a local database file, created and migrated on first use
  api     a remote task board reached over HTTPS with an API token

The configuration will be saved to ~/.config/twk/config.yml.`,
		Example: `  # Interactive setup
  twk init

  # Local database without prompts
  twk init --backend sqlite --database ~/notes/twk.db --non-interactive

  # Pre-populate the remote board URL
  twk init --backend api --url https://board.example.com`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.backend, "backend", "", "Backend: sqlite or api")
	cmd.Flags().StringVar(&opts.database, "database", "", "SQLite database path")
	cmd.Flags().StringVar(&opts.url, "url", "", "Task board URL (e.g., https://board.example.com)")
	cmd.Flags().StringVar(&opts.email, "email", "", "Your task board account email")
	cmd.Flags().Int64Var(&opts.actor, "actor", 0, "User id recorded as the actor of changes")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip backend verification")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Do not prompt; use flags and environment only")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = cmdutil.ConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.nonInteractive {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := prefill(opts)

	if !opts.nonInteractive {
		if err := runForm(cfg); err != nil {
			return err
		}
	}

	cfg.ApplyDefaults()
	cfg.NormalizeURL()

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Verify backend unless skipped
	if !opts.noVerify {
		fmt.Print("Verifying backend... ")
		if err := verify(cfg); err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("backend verification failed: %w", err)
		}
		fmt.Println("success!")
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  echo '/task Try twk' | twk process --context page")
	fmt.Println("  twk render README.md")

	return nil
}

// prefill starts from the environment and applies the flag values.
func prefill(opts *initOptions) *config.Config {
	cfg := &config.Config{}
	cfg.LoadFromEnv()

	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.database != "" {
		cfg.Database = opts.database
	}
	if opts.url != "" {
		cfg.URL = opts.url
	}
	if opts.email != "" {
		cfg.Email = opts.email
	}
	if opts.actor != 0 {
		cfg.ActorID = opts.actor
	}
	if cfg.Backend == "" {
		cfg.Backend = config.BackendSQLite
	}
	return cfg
}

func runForm(cfg *config.Config) error {
	if cfg.Database == "" {
		cfg.Database = config.DefaultDatabasePath()
	}
	actor := ""
	if cfg.ActorID != 0 {
		actor = strconv.FormatInt(cfg.ActorID, 10)
	}

	required := func(name string) func(string) error {
		return func(s string) error {
			if s == "" {
				return fmt.Errorf("%s is required", name)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Backend").
				Description("Where commands create and update tasks").
				Options(
					huh.NewOption("Local SQLite database", config.BackendSQLite),
					huh.NewOption("Remote task board API", config.BackendAPI),
				).
				Value(&cfg.Backend),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Database").
				Description("Path of the SQLite database file").
				Value(&cfg.Database).
				Validate(required("database path")),
		).WithHideFunc(func() bool { return cfg.Backend != config.BackendSQLite }),

		huh.NewGroup(
			huh.NewInput().
				Title("Board URL").
				Description("Your task board instance URL").
				Placeholder("https://board.example.com").
				Value(&cfg.URL).
				Validate(required("URL")),

			huh.NewInput().
				Title("Email").
				Description("Your task board account email").
				Placeholder("you@example.com").
				Value(&cfg.Email).
				Validate(required("email")),

			huh.NewInput().
				Title("API Token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.APIToken).
				Validate(required("API token")),
		).WithHideFunc(func() bool { return cfg.Backend != config.BackendAPI }),

		huh.NewGroup(
			huh.NewInput().
				Title("Actor ID (optional)").
				Description("User id recorded as the author of changes").
				Placeholder("1").
				Value(&actor).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.ParseInt(s, 10, 64); err != nil {
						return fmt.Errorf("actor id must be a number")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if actor != "" {
		cfg.ActorID, _ = strconv.ParseInt(actor, 10, 64)
	}
	if cfg.Backend == config.BackendAPI {
		cfg.Database = ""
	}
	return nil
}

func verify(cfg *config.Config) error {
	if cfg.Backend == config.BackendAPI {
		return verifyConnection(cfg)
	}

	b, err := cmdutil.OpenBackend(context.Background(), cfg)
	if err != nil {
		return err
	}
	return b.Close()
}

func verifyConnection(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := api.NewClient(cfg.URL, cfg.Email, cfg.APIToken).DefaultColumn(ctx)
	switch {
	case err == nil:
		return nil
	case api.IsStatus(err, http.StatusUnauthorized):
		return errors.New("authentication failed - check your email and API token")
	case api.IsStatus(err, http.StatusForbidden):
		return errors.New("access denied - check your permissions")
	}

	var apiErr *api.ErrorResponse
	if errors.As(err, &apiErr) {
		return fmt.Errorf("unexpected status code: %d", apiErr.StatusCode)
	}
	return err
}
