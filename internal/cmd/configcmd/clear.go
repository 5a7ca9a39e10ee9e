package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/config"
)

type clearOptions struct {
	out      io.Writer
	noColor  bool
	database bool
}

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	opts := &clearOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long: `Delete the twk configuration file. With --database the local SQLite
store is removed as well. TWK_* and TASKWIKI_* variables still apply afterwards.`,
		Example: `  # Clear config
  twk config clear

  # Also drop the local store
  twk config clear --database`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.out = cmd.OutOrStdout()
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runClear(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.database, "database", false, "Also delete the SQLite database file")

	return cmd
}

func runClear(opts *clearOptions) error {
	if opts.noColor {
		color.NoColor = true
	}

	configPath := cmdutil.ConfigPath()
	// Resolve the store before the file that may name it goes away.
	cfg, _ := config.LoadWithEnv(configPath)

	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	removed, err := removeFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to remove config file: %w", err)
	}
	if removed {
		_, _ = green.Fprintf(opts.out, "✓ Configuration cleared from %s\n", configPath)
	} else {
		_, _ = green.Fprintln(opts.out, "✓ No config file to remove")
	}

	if opts.database {
		if cfg.Backend != config.BackendSQLite {
			_, _ = dim.Fprintf(opts.out, "Backend is %q, no local database to remove\n", cfg.Backend)
		} else {
			removed, err := removeFile(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to remove database: %w", err)
			}
			if removed {
				_, _ = green.Fprintf(opts.out, "✓ Database removed from %s\n", cfg.Database)
			} else {
				_, _ = green.Fprintln(opts.out, "✓ No database to remove")
			}
		}
	}

	if active := activeEnvVars(); len(active) > 0 {
		_, _ = dim.Fprintf(opts.out, "\nStill set in the environment: %s\n", strings.Join(active, ", "))
	}

	return nil
}

// removeFile reports whether path existed and was deleted.
func removeFile(path string) (bool, error) {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

// activeEnvVars returns the twk variables that are set, in declaration order.
func activeEnvVars() []string {
	var active []string
	for _, v := range envVars {
		if os.Getenv(v) != "" {
			active = append(active, v)
		}
	}
	return active
}
